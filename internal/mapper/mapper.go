package mapper

import (
	"time"

	"github.com/eest6/calendar-api/internal/domain"
)

// ToEventDTO converts an Event to its wire form. The kind-specific date
// column is emitted only when the source cell held something; an absent cell
// stays absent on the wire so the SPA falls back to the received date.
func ToEventDTO(event *domain.Event) domain.EventDTO {
	dto := domain.EventDTO{
		ID:            event.ID,
		Title:         event.Title,
		Type:          event.Kind,
		Description:   event.Description,
		Subject:       event.Subject,
		EmailLink:     event.EmailLink,
		Completed:     event.Completed,
		ReceivedDate:  domain.FormatInstant(event.ReceivedDate.Time),
		EffectiveDate: domain.FormatInstant(event.EffectiveDate()),
	}

	if event.KindDate.Status != domain.DateAbsent {
		formatted := domain.FormatInstant(event.KindDate.Time)
		switch event.Kind {
		case domain.KindDelivery:
			dto.DeliveryDate = formatted
		case domain.KindCall:
			dto.CallDate = formatted
		case domain.KindRequest:
			dto.RequestDate = formatted
		}
	}

	return dto
}

// ToEventDTOs converts a slice of Events, preserving order.
func ToEventDTOs(events []domain.Event) []domain.EventDTO {
	dtos := make([]domain.EventDTO, len(events))
	for i := range events {
		dtos[i] = ToEventDTO(&events[i])
	}
	return dtos
}

// ToNewsItemDTO converts an Event to a news feed entry. An item is "new"
// when its effective date falls within freshness of now.
func ToNewsItemDTO(event *domain.Event, now time.Time, freshness time.Duration) domain.NewsItemDTO {
	effective := event.EffectiveDate()
	return domain.NewsItemDTO{
		EventDTO: ToEventDTO(event),
		Date:     domain.FormatInstant(effective),
		IsNew:    now.Sub(effective) >= 0 && now.Sub(effective) <= freshness,
	}
}

// ToFetchLogDTO converts a FetchLog to its wire form.
func ToFetchLogDTO(log *domain.FetchLog) domain.FetchLogDTO {
	return domain.FetchLogDTO{
		ID:           log.ID,
		Trigger:      string(log.Trigger),
		Source:       log.Source,
		DeliveryRows: log.DeliveryRows,
		CallRows:     log.CallRows,
		RequestRows:  log.RequestRows,
		TotalEvents:  log.TotalEvents,
		DurationMs:   log.DurationMs,
		CreatedAt:    domain.FormatInstant(log.CreatedAt),
	}
}
