package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateStatus records how a SheetDate was obtained from source text.
type DateStatus string

const (
	// DateValid means the source text parsed to the carried instant.
	DateValid DateStatus = "valid"
	// DateAbsent means the source cell was empty.
	DateAbsent DateStatus = "absent"
	// DateMalformed means the source text could not be parsed.
	DateMalformed DateStatus = "malformed"
)

// SheetDate is a parsed date cell. Time is always a usable instant: when the
// cell was empty or unparseable it is the wall clock at parse time, and
// Status says which case applied. Callers that only need "a date" can use
// Time directly; callers that care can inspect Status.
type SheetDate struct {
	Time   time.Time
	Status DateStatus
}

// timestampLayouts are tried for cells that look like full timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// looseLayouts are the last-resort layouts for free-form date text.
var looseLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"1/2006",
	time.RFC1123,
}

// ParseDate turns arbitrary spreadsheet date text into a SheetDate. It never
// fails: empty input yields an absent date at "now", unparseable input a
// malformed date at "now". Formats are tried in a fixed order:
//
//  1. text containing a time separator or UTC marker: full timestamp
//  2. text containing slashes: three numeric parts read as day/month/year,
//     falling back to the loose layouts for other slash forms
//  3. text containing hyphens: year-month-day
//  4. anything else: a small set of loose layouts
//
// Slash dates with out-of-range components normalize forward (15/13/2025 is
// January 2026), matching how the spreadsheet's previous consumer behaved.
func ParseDate(text string) SheetDate {
	s := strings.TrimSpace(text)
	if s == "" {
		return SheetDate{Time: time.Now(), Status: DateAbsent}
	}

	switch {
	case strings.Contains(s, "T") || strings.Contains(s, "Z"):
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return SheetDate{Time: t, Status: DateValid}
			}
		}

	case strings.Contains(s, "/"):
		if t, ok := parseSlashDate(s); ok {
			return SheetDate{Time: t, Status: DateValid}
		}
		// Slash text that is not D/M/Y (e.g. "03/2025") still gets the
		// generic layouts before being declared malformed
		if t, ok := parseLoose(s); ok {
			return SheetDate{Time: t, Status: DateValid}
		}

	case strings.Contains(s, "-"):
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			return SheetDate{Time: t, Status: DateValid}
		}

	default:
		if t, ok := parseLoose(s); ok {
			return SheetDate{Time: t, Status: DateValid}
		}
	}

	return SheetDate{Time: time.Now(), Status: DateMalformed}
}

func parseLoose(s string) (time.Time, bool) {
	for _, layout := range looseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseSlashDate reads "D/M/YYYY" (day first, as the sheets are kept in
// es-AR). Components out of range roll over via time.Date normalization.
func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}
