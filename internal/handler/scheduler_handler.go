package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jain-Tirth/OpportuneX/internal/service"
	"github.com/Jain-Tirth/OpportuneX/pkg/response"
)

// SchedulerHandler exposes the scrape-scheduler control plane.
type SchedulerHandler struct {
	scheduler *service.SchedulerService
}

// NewSchedulerHandler constructs a scheduler handler.
func NewSchedulerHandler(scheduler *service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{scheduler: scheduler}
}

// Status godoc
// @Summary Scheduler status
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/status [get]
func (h *SchedulerHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.scheduler.Status())
}

// Start godoc
// @Summary Start the scheduler
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/start [post]
func (h *SchedulerHandler) Start(c *gin.Context) {
	if err := h.scheduler.Start(); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.scheduler.Status())
}

// Stop godoc
// @Summary Stop the scheduler
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /scheduler/stop [post]
func (h *SchedulerHandler) Stop(c *gin.Context) {
	h.scheduler.Stop()
	response.JSON(c, http.StatusOK, h.scheduler.Status())
}

// Trigger godoc
// @Summary Run one scrape cycle now
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /scheduler/trigger [post]
func (h *SchedulerHandler) Trigger(c *gin.Context) {
	summary, err := h.scheduler.Trigger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
