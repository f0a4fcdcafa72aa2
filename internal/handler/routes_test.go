package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jain-Tirth/OpportuneX/internal/middleware"
	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/internal/service"
	"github.com/Jain-Tirth/OpportuneX/pkg/jobs"
)

func stubAuthGuard(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		})
	}
}

func newTestRouter(t *testing.T, savedRepo *savedRepoStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	queue := jobs.NewQueue("scrape", func(ctx context.Context, job jobs.Job) error {
		return nil
	}, jobs.QueueConfig{BufferSize: 4})
	queue.Start(context.Background())
	t.Cleanup(queue.Stop)

	eventSvc := service.NewEventService(&eventRepoStub{}, nil, 0, nil, zap.NewNop())
	events := NewEventHandler(eventSvc, service.NewExportService(eventSvc, zap.NewNop()), queue)
	scheduler := newSchedulerHandler(&aggregatorStub{})
	saved := NewSavedEventHandler(service.NewSavedEventService(savedRepo, nil, zap.NewNop()))

	r := gin.New()
	Routes(r.Group("/api"), events, scheduler, saved, stubAuthGuard("user-1"))
	return r
}

func TestRoutesScrapeAcceptsGet(t *testing.T) {
	r := newTestRouter(t, newSavedRepoStub())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/events/scrape", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "jobId")
}

func TestRoutesScrapeKeepsPostAlias(t *testing.T) {
	r := newTestRouter(t, newSavedRepoStub())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/events/scrape", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRoutesUnsaveURLFormKey(t *testing.T) {
	repo := newSavedRepoStub()
	key := "url:https://unstop.com/o/some-hack"
	repo.store["user-1|"+key] = models.SavedEvent{UserID: "user-1", EventKey: key}
	r := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/saved/"+key, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.store)
}

func TestRoutesUnsaveIDFormKey(t *testing.T) {
	repo := newSavedRepoStub()
	repo.store["user-1|id:ev-1"] = models.SavedEvent{UserID: "user-1", EventKey: "id:ev-1"}
	r := newTestRouter(t, repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/saved/id:ev-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.store)
}
