package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eest6/calendar-api/internal/config"
	"github.com/eest6/calendar-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// calendarCORSConfig mirrors the header surface the API actually serves: the
// SPA sends the session token and JSON bodies, and reads the request ID back.
func calendarCORSConfig(origins ...string) *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func serveCORS(cfg *config.CORSConfig, environment string, req *http.Request) (*httptest.ResponseRecorder, *bool) {
	handlerCalled := false
	handler := middleware.CORS(cfg, environment, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, &handlerCalled
}

func preflight(origin, method string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	return req
}

func TestCORS_DevelopmentAllowsAllOrigins(t *testing.T) {
	w, _ := serveCORS(calendarCORSConfig(), "development", preflight("http://localhost:3000", "GET"))

	// No configured origins in development means any origin
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := calendarCORSConfig("https://calendario.eest6.edu.ar")

	w, _ := serveCORS(cfg, "production", preflight("https://calendario.eest6.edu.ar", "GET"))
	assert.Equal(t, "https://calendario.eest6.edu.ar", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := calendarCORSConfig("https://calendario.eest6.edu.ar")

	w, _ := serveCORS(cfg, "production", preflight("https://malicious.example", "GET"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardOrigin(t *testing.T) {
	cfg := calendarCORSConfig("*")

	w, _ := serveCORS(cfg, "development", preflight("http://any-origin.example", "GET"))
	assert.Equal(t, "http://any-origin.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightRequest(t *testing.T) {
	cfg := calendarCORSConfig("https://calendario.eest6.edu.ar")
	cfg.MaxAge = 600

	req := preflight("https://calendario.eest6.edu.ar", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")

	w, _ := serveCORS(cfg, "production", req)

	assert.Equal(t, "https://calendario.eest6.edu.ar", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_ActualRequest(t *testing.T) {
	cfg := calendarCORSConfig("https://calendario.eest6.edu.ar")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://calendario.eest6.edu.ar")

	w, called := serveCORS(cfg, "production", req)

	assert.True(t, *called, "actual requests must reach the handler")
	assert.Equal(t, "https://calendario.eest6.edu.ar", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
}

func TestCORS_ProductionNoConfiguredOrigins(t *testing.T) {
	// A production deploy without an origin list fails closed
	w, _ := serveCORS(calendarCORSConfig(), "production", preflight("http://any-origin.example", "GET"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_LocalEnvironment(t *testing.T) {
	w, _ := serveCORS(calendarCORSConfig(), "local", preflight("http://localhost:3000", "GET"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
