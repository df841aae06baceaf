package ingest

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns for identifier sanitization.
var (
	invalidIdentChars = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRuns    = regexp.MustCompile(`_+`)
)

// SanitizeIdentifier maps an arbitrary header string to a SQL-safe column
// identifier: every character outside [A-Za-z0-9_] becomes an underscore,
// runs of underscores collapse to one, and a single leading or trailing
// underscore is stripped.
//
// "User Name!" -> "User_Name". Total function: an input with no usable
// characters yields the empty string, which is left for the backend to
// reject rather than being special-cased here.
//
// Distinct headers can collide after sanitization ("a-b" and "a.b" both
// become "a_b"); collisions are not disambiguated and the resulting
// statements will reference duplicate column names.
func SanitizeIdentifier(name string) string {
	s := invalidIdentChars.ReplaceAllString(name, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.TrimPrefix(s, "_")
	s = strings.TrimSuffix(s, "_")
	return s
}

// sanitizeHeader applies SanitizeIdentifier to each header field, preserving
// order and cardinality.
func sanitizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = SanitizeIdentifier(h)
	}
	return out
}
