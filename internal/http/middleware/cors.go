package middleware

import (
	"net/http"

	"github.com/eest6/calendar-api/internal/config"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// CORS builds the cross-origin policy for the SPA frontend. Origins come from
// config; an empty list means "any origin" while developing and "no origin"
// everywhere else, so a deploy that forgets to list the frontend fails closed
// instead of open.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	switch {
	case hasWildcardOrigin(cfg.AllowedOrigins):
		if environment != "development" && environment != "local" {
			logger.Warn("CORS wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAnyOrigin

	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS origins configured",
			zap.Strings("origins", cfg.AllowedOrigins))

	case environment == "development" || environment == "local" || environment == "":
		options.AllowOriginFunc = allowAnyOrigin
		logger.Info("CORS allowing all origins in development")

	default:
		// An empty AllowedOrigins list defaults to "*" inside the cors
		// package, so denial has to be explicit
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS has no allowed origins, denying all cross-origin requests",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func hasWildcardOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func allowAnyOrigin(r *http.Request, origin string) bool {
	return origin != ""
}
