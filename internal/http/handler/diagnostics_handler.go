package handler

import (
	"net/http"
	"strconv"

	"github.com/eest6/calendar-api/internal/service"
	"go.uber.org/zap"
)

// DiagnosticsHandler exposes the raw sheet state and the refresh history for
// troubleshooting spreadsheet layout drift.
type DiagnosticsHandler struct {
	eventService *service.EventService
	logger       *zap.Logger
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler instance
func NewDiagnosticsHandler(eventService *service.EventService, logger *zap.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// Sheets godoc
// @Summary Sheet diagnostics
// @Description Fetch every sheet fresh and report its raw shape (header, row count, sample rows)
// @Tags Diagnostics
// @Produce json
// @Success 200 {array} domain.SheetDiagnostics
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /diagnostics [get]
func (h *DiagnosticsHandler) Sheets(w http.ResponseWriter, r *http.Request) {
	diags, err := h.eventService.Diagnostics(r.Context())
	if err != nil {
		h.logger.Error("failed to collect diagnostics", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to collect diagnostics")
		return
	}

	respondJSON(w, http.StatusOK, diags)
}

// Refreshes godoc
// @Summary Refresh history
// @Description Get the most recent recorded refreshes, newest first
// @Tags Diagnostics
// @Produce json
// @Param limit query int false "Maximum records to return (max 100)" default(20)
// @Success 200 {array} domain.FetchLogDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /refreshes [get]
func (h *DiagnosticsHandler) Refreshes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.eventService.RecentRefreshes(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list refreshes", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list refreshes")
		return
	}

	respondJSON(w, http.StatusOK, logs)
}
