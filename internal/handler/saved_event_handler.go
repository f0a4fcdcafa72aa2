package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jain-Tirth/OpportuneX/internal/service"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
	"github.com/Jain-Tirth/OpportuneX/pkg/response"
)

// SavedEventHandler exposes per-user bookmark endpoints. All routes
// sit behind the JWT middleware.
type SavedEventHandler struct {
	saved *service.SavedEventService
}

// NewSavedEventHandler constructs a saved-event handler.
func NewSavedEventHandler(saved *service.SavedEventService) *SavedEventHandler {
	return &SavedEventHandler{saved: saved}
}

// List godoc
// @Summary List saved events
// @Tags Saved
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /saved [get]
func (h *SavedEventHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	saved, err := h.saved.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved)
}

// Save godoc
// @Summary Save an event
// @Tags Saved
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SaveEventRequest true "Event snapshot"
// @Success 201 {object} response.Envelope
// @Router /saved [post]
func (h *SavedEventHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	saved, err := h.saved.Save(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// Unsave godoc
// @Summary Remove a saved event
// @Tags Saved
// @Produce json
// @Security BearerAuth
// @Param key path string true "Event key"
// @Success 204
// @Router /saved/{key} [delete]
func (h *SavedEventHandler) Unsave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	// The route is a catch-all so url-form keys keep their slashes;
	// gin hands the match back with a leading slash.
	key := strings.TrimPrefix(c.Param("key"), "/")
	if err := h.saved.Unsave(c.Request.Context(), userID, key); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
