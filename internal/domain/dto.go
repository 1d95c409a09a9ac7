package domain

import "time"

// DTOs for API responses. Dates are serialized as ISO 8601 strings so the
// SPA can hand them straight to its date library.

// EventDTO is the wire form of an Event. Exactly one of DeliveryDate,
// CallDate and RequestDate is set, matching Type.
type EventDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        SheetKind `json:"type"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	EmailLink   string    `json:"emailLink"`
	Completed   bool      `json:"completed"`

	ReceivedDate string `json:"receivedDate"`
	DeliveryDate string `json:"deliveryDate,omitempty"`
	CallDate     string `json:"callDate,omitempty"`
	RequestDate  string `json:"requestDate,omitempty"`

	EffectiveDate string `json:"effectiveDate"`
}

// EventListResponse wraps the event list with its provenance so the SPA can
// tell live data from the placeholder fallback.
type EventListResponse struct {
	Events []EventDTO `json:"events"`
	Source DataSource `json:"source"`
}

// DataSource says where a served event list came from.
type DataSource string

const (
	SourceLive        DataSource = "live"
	SourcePlaceholder DataSource = "placeholder"
)

// NewsItemDTO is an event presented as a news feed entry, sorted by its
// effective date with a freshness flag.
type NewsItemDTO struct {
	EventDTO
	Date  string `json:"date"`
	IsNew bool   `json:"isNew"`
}

// LoginRequest carries the access password for the gate.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the session token issued on a correct password.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// ToggleResponse acknowledges a completed-state flip.
type ToggleResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// SheetDiagnostics describes the raw state of one fetched sheet, for the
// diagnostics view.
type SheetDiagnostics struct {
	Sheet      string     `json:"sheet"`
	Kind       SheetKind  `json:"kind"`
	RowCount   int        `json:"rowCount"`
	Header     []string   `json:"header"`
	SampleRows [][]string `json:"sampleRows"`
	IsEmpty    bool       `json:"isEmpty"`
}

// FetchLogDTO is the wire form of a recorded refresh.
type FetchLogDTO struct {
	ID           uint       `json:"id"`
	Trigger      string     `json:"trigger"`
	Source       DataSource `json:"source"`
	DeliveryRows int        `json:"deliveryRows"`
	CallRows     int        `json:"callRows"`
	RequestRows  int        `json:"requestRows"`
	TotalEvents  int        `json:"totalEvents"`
	DurationMs   int64      `json:"durationMs"`
	CreatedAt    string     `json:"createdAt"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// FormatInstant renders an instant the way every DTO date field expects it.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
