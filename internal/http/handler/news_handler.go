package handler

import (
	"net/http"
	"time"

	"github.com/eest6/calendar-api/internal/service"
	"go.uber.org/zap"
)

// NewsHandler handles HTTP requests for the news feed
type NewsHandler struct {
	eventService *service.EventService
	logger       *zap.Logger
}

// NewNewsHandler creates a new NewsHandler instance
func NewNewsHandler(eventService *service.EventService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// List godoc
// @Summary News feed
// @Description Get all events ordered by effective date, newest first, with a freshness flag
// @Tags News
// @Produce json
// @Success 200 {array} domain.NewsItemDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /news [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.eventService.News(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("failed to build news feed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build news feed")
		return
	}

	respondJSON(w, http.StatusOK, items)
}
