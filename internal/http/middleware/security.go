package middleware

import (
	"fmt"
	"net/http"

	"github.com/eest6/calendar-api/internal/config"
)

// SecurityHeaders applies the configured browser hardening headers to every
// response. Empty config values leave their header unset.
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			if cfg.ContentTypeNosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}
			setIfConfigured(h, "X-Frame-Options", cfg.FrameOptions)
			setIfConfigured(h, "X-XSS-Protection", cfg.XSSProtection)
			setIfConfigured(h, "Content-Security-Policy", cfg.ContentSecurityPolicy)
			setIfConfigured(h, "Referrer-Policy", cfg.ReferrerPolicy)
			setIfConfigured(h, "Permissions-Policy", cfg.PermissionsPolicy)

			if cfg.EnableHSTS {
				h.Set("Strict-Transport-Security", hstsValue(cfg))
			}

			// Drop headers that leak server details
			h.Del("X-Powered-By")
			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

func setIfConfigured(h http.Header, name, value string) {
	if value != "" {
		h.Set(name, value)
	}
}

func hstsValue(cfg *config.SecurityConfig) string {
	v := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
	if cfg.HSTSIncludeSubdomains {
		v += "; includeSubDomains"
	}
	if cfg.HSTSPreload {
		v += "; preload"
	}
	return v
}
