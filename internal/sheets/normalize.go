package sheets

import (
	"fmt"

	"github.com/eest6/calendar-api/internal/domain"
)

// Column positions shared by all three sheets.
const (
	colReceivedDate = 0
	colKindDate     = 1
	colDescription  = 2
	colSubject      = 3
	colEmailLink    = 4
)

// EventsFromRows turns parsed CSV rows into Events of the given kind. The
// first row is the header and is always skipped. Rows are kept when they have
// at least two cells and either a subject or a description. IDs embed the
// row's 1-based position within its sheet (header excluded), so a skipped
// junk row still consumes its index and ids track the source rows, not the
// kept subset.
func EventsFromRows(kind domain.SheetKind, rows [][]string) []domain.Event {
	if len(rows) > 0 {
		rows = rows[1:]
	}

	var events []domain.Event
	for i, row := range rows {
		if !usableRow(row) {
			continue
		}
		events = append(events, eventFromRow(kind, i+1, row))
	}
	return events
}

func usableRow(row []string) bool {
	return len(row) >= 2 && (cell(row, colSubject) != "" || cell(row, colDescription) != "")
}

func eventFromRow(kind domain.SheetKind, index int, row []string) domain.Event {
	description := cell(row, colDescription)
	generated := fmt.Sprintf("%s %d", kind.Label(), index)

	// A blank subject cell falls back to a generated label; the title prefers
	// the description over the label when both subject and title would be
	// generated.
	subject := cell(row, colSubject)
	title := subject
	if title == "" {
		title = description
	}
	if title == "" {
		title = generated
	}
	if subject == "" {
		subject = generated
	}

	// The synthesized link carries the subject, never the description
	emailLink := cell(row, colEmailLink)
	if emailLink == "" {
		emailLink = domain.MailtoLink(kind, subject)
	}

	return domain.Event{
		ID:           fmt.Sprintf("%s-%d", kind, index),
		Title:        title,
		Subject:      subject,
		Description:  description,
		EmailLink:    emailLink,
		Kind:         kind,
		ReceivedDate: domain.ParseDate(cell(row, colReceivedDate)),
		KindDate:     domain.ParseDate(cell(row, colKindDate)),
	}
}

// cell reads a column defensively: short rows read as empty cells.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
