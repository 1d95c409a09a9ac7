package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eest6/calendar-api/internal/config"
	"github.com/eest6/calendar-api/internal/domain"
	"github.com/eest6/calendar-api/internal/mapper"
	"github.com/eest6/calendar-api/internal/repository"
	"github.com/eest6/calendar-api/internal/sheets"
	"go.uber.org/zap"
)

// diagnosticsSampleRows is how many data rows the diagnostics view shows per sheet.
const diagnosticsSampleRows = 3

// EventService owns the calendar state: it fetches the three sheets, keeps
// the latest normalized snapshot in memory and records every refresh. Events
// are never persisted; the snapshot is rebuilt from the spreadsheet and only
// the completed flags survive a refresh.
type EventService struct {
	client       *sheets.Client
	fetchLogRepo *repository.FetchLogRepository
	newsCfg      *config.NewsConfig
	logger       *zap.Logger

	mu         sync.RWMutex
	events     []domain.Event
	source     domain.DataSource
	refreshing bool
}

// NewEventService creates a new EventService instance
func NewEventService(
	client *sheets.Client,
	fetchLogRepo *repository.FetchLogRepository,
	newsCfg *config.NewsConfig,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		client:       client,
		fetchLogRepo: fetchLogRepo,
		newsCfg:      newsCfg,
		logger:       logger,
	}
}

// fetchAll downloads and normalizes all three sheets concurrently. Sheet
// order in the result is fixed: deliveries, then calls, then requests. It
// returns ErrNoEvents when every sheet produced nothing, leaving the caller
// to decide on the placeholder fallback.
func (s *EventService) fetchAll(ctx context.Context) ([]domain.Event, map[domain.SheetKind]int, error) {
	perKind := make([][]domain.Event, len(domain.AllKinds))

	var wg sync.WaitGroup
	for i, kind := range domain.AllKinds {
		wg.Add(1)
		go func(slot int, kind domain.SheetKind) {
			defer wg.Done()
			rows := s.client.FetchSheet(ctx, kind)
			perKind[slot] = sheets.EventsFromRows(kind, rows)
		}(i, kind)
	}
	wg.Wait()

	counts := make(map[domain.SheetKind]int, len(domain.AllKinds))
	var events []domain.Event
	for i, kind := range domain.AllKinds {
		counts[kind] = len(perKind[i])
		events = append(events, perKind[i]...)
	}

	if len(events) == 0 {
		return nil, counts, ErrNoEvents
	}
	return events, counts, nil
}

// Refresh rebuilds the snapshot from the spreadsheet. When every sheet is
// empty or unreachable it installs the placeholder events instead, so the
// calendar always has something to serve. Completed flags reset on every
// rebuild; they live on the snapshot only. Overlapping refreshes are rejected.
func (s *EventService) Refresh(ctx context.Context, trigger domain.FetchTrigger) error {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return ErrRefreshInProgress
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	start := time.Now()

	events, counts, err := s.fetchAll(ctx)
	source := domain.SourceLive
	if err != nil {
		events = domain.PlaceholderEvents()
		source = domain.SourcePlaceholder
		s.logger.Warn("all sheets empty, serving placeholder events",
			zap.String("trigger", string(trigger)))
	}

	s.mu.Lock()
	s.events = events
	s.source = source
	s.mu.Unlock()

	duration := time.Since(start)
	s.logger.Info("calendar refreshed",
		zap.String("trigger", string(trigger)),
		zap.String("source", string(source)),
		zap.Int("events", len(events)),
		zap.Int("deliveries", counts[domain.KindDelivery]),
		zap.Int("calls", counts[domain.KindCall]),
		zap.Int("requests", counts[domain.KindRequest]),
		zap.Duration("duration", duration),
	)

	log := &domain.FetchLog{
		Trigger:      trigger,
		Source:       source,
		DeliveryRows: counts[domain.KindDelivery],
		CallRows:     counts[domain.KindCall],
		RequestRows:  counts[domain.KindRequest],
		TotalEvents:  len(events),
		DurationMs:   duration.Milliseconds(),
	}
	if err := s.fetchLogRepo.Create(ctx, log); err != nil {
		// The snapshot is already updated; a lost audit row is not fatal
		s.logger.Error("failed to record refresh", zap.Error(err))
	}

	return nil
}

// Events returns the current snapshot. The first call after startup refreshes
// lazily so the API never serves an empty calendar.
func (s *EventService) Events(ctx context.Context) (*domain.EventListResponse, error) {
	s.mu.RLock()
	empty := s.events == nil
	s.mu.RUnlock()

	if empty {
		if err := s.Refresh(ctx, domain.TriggerStartup); err != nil && err != ErrRefreshInProgress {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return &domain.EventListResponse{
		Events: mapper.ToEventDTOs(s.events),
		Source: s.source,
	}, nil
}

// ToggleCompleted flips the completed flag of one event in the snapshot.
func (s *EventService) ToggleCompleted(id string) (*domain.ToggleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Completed = !s.events[i].Completed
			return &domain.ToggleResponse{
				ID:        id,
				Completed: s.events[i].Completed,
			}, nil
		}
	}
	return nil, ErrEventNotFound
}

// News derives the news feed from the snapshot: every event ordered by
// effective date, newest first, flagged as new when that date falls within
// the configured freshness window of now.
func (s *EventService) News(ctx context.Context, now time.Time) ([]domain.NewsItemDTO, error) {
	events, _, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EffectiveDate().After(events[j].EffectiveDate())
	})

	freshness := s.newsCfg.Freshness()
	items := make([]domain.NewsItemDTO, len(events))
	for i := range events {
		items[i] = mapper.ToNewsItemDTO(&events[i], now, freshness)
	}
	return items, nil
}

// Diagnostics fetches every sheet fresh and reports its raw shape, without
// touching the snapshot. This backs the troubleshooting view used when the
// spreadsheet layout drifts.
func (s *EventService) Diagnostics(ctx context.Context) ([]domain.SheetDiagnostics, error) {
	diags := make([]domain.SheetDiagnostics, len(domain.AllKinds))

	var wg sync.WaitGroup
	for i, kind := range domain.AllKinds {
		wg.Add(1)
		go func(slot int, kind domain.SheetKind) {
			defer wg.Done()
			rows := s.client.FetchSheet(ctx, kind)

			d := domain.SheetDiagnostics{
				Sheet:    kind.SheetName(),
				Kind:     kind,
				RowCount: len(rows),
				IsEmpty:  len(rows) <= 1,
			}
			if len(rows) > 0 {
				d.Header = rows[0]
			}
			sample := rows
			if len(sample) > 0 {
				sample = sample[1:]
			}
			if len(sample) > diagnosticsSampleRows {
				sample = sample[:diagnosticsSampleRows]
			}
			d.SampleRows = sample
			diags[slot] = d
		}(i, kind)
	}
	wg.Wait()

	return diags, nil
}

// RecentRefreshes returns the newest recorded refreshes, newest first.
func (s *EventService) RecentRefreshes(ctx context.Context, limit int) ([]domain.FetchLogDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	logs, err := s.fetchLogRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.FetchLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToFetchLogDTO(&logs[i])
	}
	return dtos, nil
}

// Snapshot returns a copy of the current events and their source. Used by
// the iCal feed and by the news derivation.
func (s *EventService) Snapshot(ctx context.Context) ([]domain.Event, domain.DataSource, error) {
	if _, err := s.Events(ctx); err != nil {
		return nil, "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]domain.Event, len(s.events))
	copy(events, s.events)
	return events, s.source, nil
}
