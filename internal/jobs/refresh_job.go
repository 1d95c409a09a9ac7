package jobs

import (
	"context"
	"time"

	"github.com/eest6/calendar-api/internal/domain"
	"go.uber.org/zap"
)

// RefreshJobName is the name of the calendar refresh job
const RefreshJobName = "calendar_refresh"

// EventRefresher defines the interface for rebuilding the calendar snapshot.
// This interface allows the job to call the service without importing the service package directly.
type EventRefresher interface {
	// Refresh rebuilds the snapshot from the spreadsheet, falling back to
	// placeholder events when every sheet is empty.
	Refresh(ctx context.Context, trigger domain.FetchTrigger) error
}

// RefreshJob periodically re-fetches the spreadsheet so the calendar keeps
// tracking edits without anyone hitting the manual refresh endpoint.
type RefreshJob struct {
	events  EventRefresher
	logger  *zap.Logger
	timeout time.Duration
}

// NewRefreshJob creates a new calendar refresh job.
// The timeout controls how long one refresh is allowed to run.
func NewRefreshJob(events EventRefresher, logger *zap.Logger, timeout time.Duration) *RefreshJob {
	return &RefreshJob{
		events:  events,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the calendar refresh job.
// This is called by the scheduler according to the cron expression.
func (j *RefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.events.Refresh(ctx, domain.TriggerScheduled); err != nil {
		j.logger.Error("scheduled calendar refresh failed", zap.Error(err))
	}
}

// RunStartup runs the initial refresh on startup in a background goroutine so
// it doesn't block API startup.
func (j *RefreshJob) RunStartup() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.events.Refresh(ctx, domain.TriggerStartup); err != nil {
			j.logger.Error("startup calendar refresh failed", zap.Error(err))
		}
	}()
}

// RegisterRefreshJob registers the calendar refresh job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "@every 10m").
// If runStartupRefresh is true, it also runs one refresh immediately in a
// background goroutine.
func RegisterRefreshJob(scheduler *Scheduler, events EventRefresher, logger *zap.Logger, cronExpr string, timeout time.Duration, runStartupRefresh bool) error {
	job := NewRefreshJob(events, logger, timeout)

	if runStartupRefresh {
		job.RunStartup()
	}

	return scheduler.AddJob(RefreshJobName, cronExpr, job.Run)
}
