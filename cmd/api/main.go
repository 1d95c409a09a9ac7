package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eest6/calendar-api/docs"
	"github.com/eest6/calendar-api/internal/auth"
	"github.com/eest6/calendar-api/internal/config"
	"github.com/eest6/calendar-api/internal/database"
	"github.com/eest6/calendar-api/internal/http/handler"
	"github.com/eest6/calendar-api/internal/http/middleware"
	"github.com/eest6/calendar-api/internal/http/router"
	"github.com/eest6/calendar-api/internal/jobs"
	"github.com/eest6/calendar-api/internal/logger"
	"github.com/eest6/calendar-api/internal/repository"
	"github.com/eest6/calendar-api/internal/service"
	"github.com/eest6/calendar-api/internal/sheets"
	"go.uber.org/zap"
)

// @title EEST6 Calendar API
// @version 1.0
// @description Password-gated school event calendar fed by a published Google Sheets document

// @contact.name API Support
// @contact.email sistemas@eest6.edu.ar

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session Bearer token issued by /auth/login

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch cfg.App.Environment {
	case "production":
		docs.SwaggerInfo.Host = "calendario.eest6.edu.ar"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Sqlite schemas are managed in-process; postgres deployments run cmd/migrate
	if cfg.Database.Driver != "postgres" || cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	}

	// Initialize repositories
	fetchLogRepo := repository.NewFetchLogRepository(db)

	// Initialize services
	sheetsClient := sheets.NewClient(&cfg.Sheets, log)
	eventService := service.NewEventService(sheetsClient, fetchLogRepo, &cfg.News, log)
	feedService := service.NewFeedService(eventService, log)

	// Initialize middleware
	sessions := auth.NewSessionManager(&cfg.Auth)
	authMiddleware := auth.NewMiddleware(sessions, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessions, log)
	eventHandler := handler.NewEventHandler(eventService, feedService, log)
	newsHandler := handler.NewNewsHandler(eventService, log)
	diagnosticsHandler := handler.NewDiagnosticsHandler(eventService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		eventHandler,
		newsHandler,
		diagnosticsHandler,
	)

	// Initialize and start scheduler for the background refresh
	var scheduler *jobs.Scheduler
	if cfg.Refresh.Enabled {
		scheduler = jobs.NewScheduler(log)

		// runStartupRefresh=true fills the snapshot immediately so the first
		// request doesn't pay the fetch
		if err := jobs.RegisterRefreshJob(
			scheduler,
			eventService,
			log,
			cfg.Refresh.Cron,
			cfg.Refresh.TimeoutDuration(),
			true,
		); err != nil {
			log.Error("Failed to register refresh job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with refresh job",
				zap.String("cron_expr", cfg.Refresh.Cron),
				zap.Duration("timeout", cfg.Refresh.TimeoutDuration()),
			)
		}
	} else {
		log.Info("Periodic refresh disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
