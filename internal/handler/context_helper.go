package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jain-Tirth/OpportuneX/internal/middleware"
	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

// currentUserID extracts the authenticated user from claims stored by
// the JWT middleware.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return "", false
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok || claims.UserID() == "" {
		return "", false
	}
	return claims.UserID(), true
}
