// Package csv provides a tolerant tokenizer for CSV documents fetched from
// untrusted sources.
//
// The tokenizer is deliberately looser than RFC 4180: quoted fields may
// contain the delimiter, but doubled quotes and embedded newlines are not
// supported. Quote characters never survive into output fields: they are
// consumed as state transitions during scanning and any stragglers are
// stripped afterwards. Lossy, but predictable for the messy exports this
// service actually receives.
package csv

import (
	"errors"
	"strings"
)

// ErrMalformed is returned when the input is empty or has no data rows.
var ErrMalformed = errors.New("csv: document must contain a header row and at least one data row")

// Parse splits raw CSV text into a header and data rows.
//
// Line 0 becomes the header; every remaining line becomes one data row.
// Header fields are split on commas without quote awareness. Data rows go
// through a two-state scanner so commas inside quoted fields stay part of
// the field. Rows are NOT normalized to header arity here; short and long
// rows come back as-is and the caller reconciles them.
func Parse(text string) ([]string, [][]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil, ErrMalformed
	}

	lines := strings.Split(trimmed, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if len(lines) < 2 {
		return nil, nil, ErrMalformed
	}

	header := parseHeader(lines[0])

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, parseLine(line))
	}

	return header, rows, nil
}

// parseHeader splits the header line on commas. Header fields never contain
// embedded delimiters in practice, so quote-aware scanning is skipped and
// all quote characters are removed outright.
func parseHeader(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = cleanField(p)
	}
	return fields
}

// parseLine tokenizes one data line with a two-state scanner.
//
// Outside quotes a comma ends the current field; inside quotes it is data.
// The quote character itself flips the state and is dropped.
func parseLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(cur.String()))

	return fields
}

// cleanField trims whitespace and strips any quote characters that survived
// scanning (e.g. quotes inside an unquoted field).
func cleanField(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}
