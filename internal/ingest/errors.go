package ingest

import "fmt"

// FetchError reports a failure to retrieve the CSV document.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch CSV from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MalformedInputError reports a CSV document that cannot be ingested: an
// empty body, or fewer than a header line plus one data row.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed CSV: " + e.Reason
}

// SchemaError reports a rejected CREATE TABLE statement. The whole ingestion
// aborts before any row is attempted.
type SchemaError struct {
	Table  string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to create table %q: %s", e.Table, e.Detail)
}

// RowInsertError reports the first row whose INSERT was rejected. Row is the
// zero-based index into the data rows; Inserted is how many earlier rows had
// already committed. Later rows are never attempted.
type RowInsertError struct {
	Row      int
	Inserted int
	Detail   string
}

func (e *RowInsertError) Error() string {
	return fmt.Sprintf("row %d failed to insert (%d rows inserted before failure): %s",
		e.Row+1, e.Inserted, e.Detail)
}
