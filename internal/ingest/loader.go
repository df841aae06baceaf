package ingest

import (
	"context"
	"fmt"
	"strings"
)

// buildInsert assembles the parameterized INSERT statement shared by every
// row of one ingestion. Column identifiers are quoted; values are bound via
// backend-specific placeholders, never interpolated.
func buildInsert(table string, columns []string, placeholder func(int) string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
		marks[i] = placeholder(i + 1)
	}
	return fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`,
		table, strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

// normalizeArity reconciles a row against the header width: extra values are
// truncated, missing values are padded with empty strings.
func normalizeArity(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// insertRows inserts each data row as its own statement, in document order.
//
// Per-row round trips are deliberate: the failure point is always a single
// row, and the caller learns exactly how many prior rows committed. On the
// first rejected insert the loop stops and returns a RowInsertError carrying
// the zero-based row index and the partial count; later rows are never
// attempted. The context is observed between iterations so a cancelled
// ingestion stops promptly with accurate accounting.
func (s *Service) insertRows(ctx context.Context, table string, columns []string, rows [][]string) (int, error) {
	stmt := buildInsert(table, columns, s.exec.Placeholder)

	inserted := 0
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return inserted, &RowInsertError{Row: i, Inserted: inserted, Detail: err.Error()}
		}

		params := normalizeArity(row, len(columns))

		res, err := s.exec.Exec(ctx, stmt, params)
		if err != nil {
			return inserted, &RowInsertError{Row: i, Inserted: inserted, Detail: err.Error()}
		}
		if !res.Success {
			detail := res.Detail
			if detail == "" {
				detail = "backend reported failure without detail"
			}
			return inserted, &RowInsertError{Row: i, Inserted: inserted, Detail: detail}
		}

		inserted++
	}

	return inserted, nil
}
