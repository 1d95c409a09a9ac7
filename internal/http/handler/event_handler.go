package handler

import (
	"errors"
	"net/http"

	"github.com/eest6/calendar-api/internal/domain"
	"github.com/eest6/calendar-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler handles HTTP requests for calendar events
type EventHandler struct {
	eventService *service.EventService
	feedService  *service.FeedService
	logger       *zap.Logger
}

// NewEventHandler creates a new EventHandler instance
func NewEventHandler(eventService *service.EventService, feedService *service.FeedService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		feedService:  feedService,
		logger:       logger,
	}
}

// List godoc
// @Summary List calendar events
// @Description Get all events from the current snapshot, with their data source
// @Tags Events
// @Produce json
// @Success 200 {object} domain.EventListResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.eventService.Events(r.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Refresh godoc
// @Summary Refresh the calendar
// @Description Re-fetch the spreadsheet and rebuild the snapshot
// @Tags Events
// @Produce json
// @Success 200 {object} domain.EventListResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /events/refresh [post]
func (h *EventHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.Refresh(r.Context(), domain.TriggerManual); err != nil {
		if errors.Is(err, service.ErrRefreshInProgress) {
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "A refresh is already in progress",
			})
			return
		}
		h.logger.Error("manual refresh failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh events")
		return
	}

	result, err := h.eventService.Events(r.Context())
	if err != nil {
		h.logger.Error("failed to read refreshed events", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh events")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Toggle godoc
// @Summary Toggle event completion
// @Description Flip the completed flag of one event in the current snapshot
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} domain.ToggleResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /events/{id}/toggle [post]
func (h *EventHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.eventService.ToggleCompleted(id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Event not found: " + id,
			})
			return
		}
		h.logger.Error("failed to toggle event", zap.String("id", id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to toggle event")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Feed godoc
// @Summary iCalendar feed
// @Description Get the current snapshot as an iCalendar document
// @Tags Events
// @Produce text/calendar
// @Success 200 {string} string "iCalendar document"
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /events/feed.ics [get]
func (h *EventHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Render(r.Context())
	if err != nil {
		h.logger.Error("failed to render calendar feed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to render calendar feed")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="eest6-calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}
