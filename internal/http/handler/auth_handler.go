package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eest6/calendar-api/internal/auth"
	"github.com/eest6/calendar-api/internal/domain"
	"go.uber.org/zap"
)

// AuthHandler handles the password gate
type AuthHandler struct {
	sessions *auth.SessionManager
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(sessions *auth.SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Login godoc
// @Summary Enter the calendar
// @Description Exchange the shared access password for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Access password"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.sessions.CheckPassword(req.Password); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			h.logger.Warn("login rejected",
				zap.String("remote_addr", r.RemoteAddr))
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Wrong password",
			})
			return
		}
		h.logger.Error("password check failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to process login")
		return
	}

	token, session, err := h.sessions.Issue()
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to process login")
		return
	}

	h.logger.Info("session issued",
		zap.String("session_id", session.SessionID),
		zap.Time("expires_at", session.ExpiresAt))

	respondJSON(w, http.StatusOK, domain.LoginResponse{
		Token:     token,
		ExpiresAt: domain.FormatInstant(session.ExpiresAt),
	})
}
