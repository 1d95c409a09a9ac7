package domain

import (
	"fmt"
	"net/url"
	"time"
)

// SheetKind identifies one of the three event categories, each backed by its
// own sheet in the published spreadsheet.
type SheetKind string

const (
	// KindDelivery covers homework/report deliveries ("Entregas").
	KindDelivery SheetKind = "delivery"
	// KindCall covers calls for proposals ("Convocatorias").
	KindCall SheetKind = "call"
	// KindRequest covers administrative requests ("Solicitudes").
	KindRequest SheetKind = "request"
)

// AllKinds lists the kinds in the order they appear in the spreadsheet.
var AllKinds = []SheetKind{KindDelivery, KindCall, KindRequest}

// SheetName returns the sheet tab name in the source spreadsheet.
func (k SheetKind) SheetName() string {
	switch k {
	case KindDelivery:
		return "Entregas"
	case KindCall:
		return "Convocatorias"
	case KindRequest:
		return "Solicitudes"
	}
	return ""
}

// Label returns the Spanish display label used for generated titles,
// e.g. "Entrega 2" for a delivery row with no subject.
func (k SheetKind) Label() string {
	switch k {
	case KindDelivery:
		return "Entrega"
	case KindCall:
		return "Convocatoria"
	case KindRequest:
		return "Solicitud"
	}
	return ""
}

// MailAddress returns the school inbox used when a row has no explicit link.
func (k SheetKind) MailAddress() string {
	switch k {
	case KindDelivery:
		return "entregas@eest6.edu.ar"
	case KindCall:
		return "convocatorias@eest6.edu.ar"
	case KindRequest:
		return "solicitudes@eest6.edu.ar"
	}
	return ""
}

// IsValid reports whether k is one of the three known kinds.
func (k SheetKind) IsValid() bool {
	switch k {
	case KindDelivery, KindCall, KindRequest:
		return true
	}
	return false
}

// Event is the canonical calendar record produced from one spreadsheet row.
// It is rebuilt on every fetch and never persisted; Completed starts false
// and only ever changes on the in-memory snapshot held by the service.
type Event struct {
	ID          string
	Title       string
	Subject     string
	Description string
	EmailLink   string
	Kind        SheetKind
	Completed   bool

	// ReceivedDate is the common intake date (column 0). Its instant is
	// always valid; Status records whether the source text actually parsed.
	ReceivedDate SheetDate

	// KindDate is the kind-specific date (column 1): the delivery date for
	// deliveries, the call date for calls, the request date for requests.
	KindDate SheetDate
}

// EffectiveDate returns the single instant used to place the event on the
// calendar: the kind-specific date when it parsed, otherwise the received
// date. Total; never returns a zero instant because SheetDate instants are
// defaulted at parse time.
func (e *Event) EffectiveDate() time.Time {
	if e.KindDate.Status == DateValid {
		return e.KindDate.Time
	}
	if !e.ReceivedDate.Time.IsZero() {
		return e.ReceivedDate.Time
	}
	return time.Now()
}

// MailtoLink builds the fallback mailto link for a row without an explicit
// link column, with the subject text query-encoded.
func MailtoLink(kind SheetKind, subject string) string {
	return fmt.Sprintf("mailto:%s?subject=%s", kind.MailAddress(), url.QueryEscape(subject))
}
