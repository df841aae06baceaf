package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "user_name", want: "user_name"},
		{name: "spaces and punctuation", input: "User Name!", want: "User_Name"},
		{name: "mixed invalid characters", input: "Total ($USD)", want: "Total_USD"},
		{name: "collapses runs", input: "a - b", want: "a_b"},
		{name: "strips leading underscore", input: "_private", want: "private"},
		{name: "strips trailing underscore", input: "count_", want: "count"},
		{name: "digits preserved", input: "col2", want: "col2"},
		{name: "unicode replaced", input: "prix€", want: "prix"},
		{name: "empty input", input: "", want: ""},
		{name: "only invalid characters", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeIdentifier(tt.input))
		})
	}
}

func TestSanitizeHeader_PreservesOrderAndCardinality(t *testing.T) {
	got := sanitizeHeader([]string{"First Name", "Last Name", "Email Address"})
	assert.Equal(t, []string{"First_Name", "Last_Name", "Email_Address"}, got)
}

func TestSanitizeHeader_CollisionsNotDisambiguated(t *testing.T) {
	// "a-b" and "a.b" both sanitize to "a_b"; the collision is preserved,
	// leaving the backend to reject the duplicate column.
	got := sanitizeHeader([]string{"a-b", "a.b"})
	assert.Equal(t, []string{"a_b", "a_b"}, got)
}
