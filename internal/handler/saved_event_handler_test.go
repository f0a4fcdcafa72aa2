package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/middleware"
	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/internal/service"
)

type savedRepoStub struct {
	store map[string]models.SavedEvent
}

func newSavedRepoStub() *savedRepoStub {
	return &savedRepoStub{store: map[string]models.SavedEvent{}}
}

func (s *savedRepoStub) ListByUser(ctx context.Context, userID string) ([]models.SavedEvent, error) {
	var result []models.SavedEvent
	for _, saved := range s.store {
		if saved.UserID == userID {
			result = append(result, saved)
		}
	}
	return result, nil
}

func (s *savedRepoStub) Upsert(ctx context.Context, saved *models.SavedEvent) error {
	s.store[saved.UserID+"|"+saved.EventKey] = *saved
	return nil
}

func (s *savedRepoStub) Delete(ctx context.Context, userID, eventKey string) (int64, error) {
	key := userID + "|" + eventKey
	if _, ok := s.store[key]; !ok {
		return 0, nil
	}
	delete(s.store, key)
	return 1, nil
}

func userContext(w *httptest.ResponseRecorder, userID string) (*gin.Context, *gin.Engine) {
	c, engine := gin.CreateTestContext(w)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	})
	return c, engine
}

func TestSavedEventHandlerSave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSavedRepoStub()
	h := NewSavedEventHandler(service.NewSavedEventService(repo, nil, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := userContext(w, "user-1")
	body := `{"event": {"id": "ev-1", "title": "Bookmark Hack"}}`
	req, _ := http.NewRequest(http.MethodPost, "/api/saved", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Save(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.store, 1)
}

func TestSavedEventHandlerUnsave(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newSavedRepoStub()
	repo.store["user-1|id:ev-1"] = models.SavedEvent{UserID: "user-1", EventKey: "id:ev-1"}
	h := NewSavedEventHandler(service.NewSavedEventService(repo, nil, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := userContext(w, "user-1")
	req, _ := http.NewRequest(http.MethodDelete, "/api/saved/id:ev-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "key", Value: "id:ev-1"}}

	h.Unsave(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.store)
}

func TestSavedEventHandlerRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSavedEventHandler(service.NewSavedEventService(newSavedRepoStub(), nil, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/saved", nil)
	c.Request = req

	h.List(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
