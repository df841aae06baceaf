package ingest

import (
	"context"
	"fmt"
	"strings"
)

// buildCreateTable assembles the CREATE TABLE statement for the sanitized
// column identifiers. Every column is TEXT; no type inference. The table
// name is interpolated unescaped (trusted input), matching the INSERT path.
func buildCreateTable(table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = col + " TEXT"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (%s)`, table, strings.Join(defs, ", "))
}

// createTable issues exactly one CREATE TABLE IF NOT EXISTS call. IF NOT
// EXISTS makes provisioning idempotent across repeated ingestions into the
// same table. A backend rejection aborts the ingestion before any row is
// attempted.
func (s *Service) createTable(ctx context.Context, table string, columns []string) error {
	stmt := buildCreateTable(table, columns)

	res, err := s.exec.Exec(ctx, stmt, nil)
	if err != nil {
		return &SchemaError{Table: table, Detail: err.Error()}
	}
	if !res.Success {
		detail := res.Detail
		if detail == "" {
			detail = "backend reported failure without detail"
		}
		return &SchemaError{Table: table, Detail: detail}
	}
	return nil
}
