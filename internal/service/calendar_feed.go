package service

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// eventDuration is the block each calendar entry occupies in the feed. The
// sheets carry dates, not time ranges, so every entry gets a fixed slot.
const eventDuration = time.Hour

// FeedService renders the current snapshot as an iCalendar feed that staff
// can subscribe to from their own calendar apps.
type FeedService struct {
	events *EventService
	logger *zap.Logger
}

// NewFeedService creates a new FeedService instance
func NewFeedService(events *EventService, logger *zap.Logger) *FeedService {
	return &FeedService{
		events: events,
		logger: logger,
	}
}

// Render serializes the snapshot as an iCalendar document.
func (s *FeedService) Render(ctx context.Context) (string, error) {
	events, source, err := s.events.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//EEST6//Calendar API//ES")

	now := time.Now()
	for i := range events {
		e := &events[i]
		start := e.EffectiveDate()

		ve := cal.AddEvent(fmt.Sprintf("%s@calendar.eest6.edu.ar", e.ID))
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(eventDuration))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.EmailLink != "" {
			ve.SetURL(e.EmailLink)
		}
	}

	s.logger.Debug("calendar feed rendered",
		zap.Int("events", len(events)),
		zap.String("source", string(source)),
	)

	return cal.Serialize(), nil
}
