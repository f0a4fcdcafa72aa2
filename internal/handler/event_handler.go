package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
	"github.com/Jain-Tirth/OpportuneX/internal/service"
	appErrors "github.com/Jain-Tirth/OpportuneX/pkg/errors"
	"github.com/Jain-Tirth/OpportuneX/pkg/jobs"
	"github.com/Jain-Tirth/OpportuneX/pkg/response"
)

// EventHandler exposes the listing endpoints.
type EventHandler struct {
	events  *service.EventService
	export  *service.ExportService
	scrapes *jobs.Queue
}

// NewEventHandler constructs an event handler.
func NewEventHandler(events *service.EventService, export *service.ExportService, scrapes *jobs.Queue) *EventHandler {
	return &EventHandler{events: events, export: export, scrapes: scrapes}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param search query string false "Search keyword"
// @Param platform query string false "Platform filter"
// @Param sortBy query string false "Sort order"
// @Param free query bool false "Only free events"
// @Param online query bool false "Only online events"
// @Param beginner query bool false "Only beginner-friendly events"
// @Param prize query bool false "Only events with prizes"
// @Param location query string false "Location keyword"
// @Success 200 {object} models.EventPage
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Platform: c.Query("platform"),
		SortBy:   c.Query("sortBy"),
		Free:     queryBool(c, "free"),
		Online:   queryBool(c, "online"),
		Beginner: queryBool(c, "beginner"),
		Prize:    queryBool(c, "prize"),
		Location: strings.TrimSpace(c.Query("location")),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "12")); err == nil {
		filter.Limit = limit
	}

	page, err := h.events.Query(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	// The list shape is part of the public contract consumed by the
	// SPA, so it goes out flat rather than enveloped.
	response.Raw(c, http.StatusOK, page)
}

// Create godoc
// @Summary Submit an event manually
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Scrape godoc
// @Summary Queue a background scrape
// @Tags Events
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /events/scrape [get]
// @Router /events/scrape [post]
func (h *EventHandler) Scrape(c *gin.Context) {
	job := jobs.Job{ID: uuid.NewString(), Type: "scrape"}
	if err := h.scrapes.Enqueue(job); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrConflict.Code, http.StatusConflict, "scrape could not be queued"))
		return
	}
	response.Accepted(c, gin.H{"jobId": job.ID})
}

// Export godoc
// @Summary Export the event feed
// @Tags Events
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} binary
// @Router /events/export [get]
func (h *EventHandler) Export(c *gin.Context) {
	result, err := h.export.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(c.Query(key))
	return err == nil && value
}
