// Package database provides the SQL execution capability consumed by the
// ingestion pipeline.
//
// The pipeline never talks to a driver directly; it issues statements through
// the Executor interface so the same ingestion code runs against PostgreSQL
// (pgx) or SQLite (database/sql with the modernc driver), and so tests can
// substitute a recording fake.
package database

import "context"

// Result is the typed outcome of a single statement execution.
//
// Success reports whether the backend accepted the statement. Detail carries
// backend-specific context (error text on failure, affected-row summary on
// success) and may be empty; callers treating an empty Detail should assume
// there is nothing further to report, not that the statement succeeded.
type Result struct {
	Success bool
	Detail  string
}

// Executor runs one SQL statement with positionally bound string parameters.
type Executor interface {
	// Exec executes query with params bound in order. Backend rejections are
	// reported through Result (Success=false with the failure detail), not
	// through the error return; the error is reserved for conditions where
	// the statement could not be issued at all (cancelled context, closed
	// pool).
	Exec(ctx context.Context, query string, params []string) (Result, error)

	// Placeholder returns the parameter placeholder for 1-based position n,
	// e.g. "$1" for PostgreSQL or "?" for SQLite.
	Placeholder(n int) string

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// toArgs widens string parameters to the []any shape drivers expect.
func toArgs(params []string) []any {
	if len(params) == 0 {
		return nil
	}
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p
	}
	return args
}
