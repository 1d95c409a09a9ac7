package sheets

import "strings"

// ParseRows splits the raw CSV body of a gviz export into rows of trimmed
// cells. The export quotes every cell and never emits embedded newlines for
// these sheets, so a line scanner with a quote toggle is sufficient;
// encoding/csv would additionally accept multi-line cells and escaped quotes,
// silently changing what rows downstream code sees.
func ParseRows(raw string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	return rows
}

// splitLine splits one CSV line on commas, honoring double-quoted cells so a
// comma inside quotes stays inside its cell. Quote characters themselves are
// dropped.
func splitLine(line string) []string {
	var cells []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))

	return cells
}
