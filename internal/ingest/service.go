// Package ingest implements the CSV-to-table ingestion pipeline: fetch a CSV
// document, derive column identifiers from its header, optionally create the
// target table, and insert each data row as an independent statement.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/csvloader/internal/csv"
	"github.com/JonMunkholm/csvloader/internal/database"
	"github.com/JonMunkholm/csvloader/internal/logging"
)

// Fetcher retrieves the raw CSV text for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Result is the aggregate outcome of one ingestion. It is the only way the
// pipeline reports failure: Ingest never returns a Go error, so callers
// always get an accurate inserted count alongside the cause.
type Result struct {
	Success      bool   `json:"success"`
	RowsInserted int    `json:"rowsInserted"`
	Message      string `json:"message"`
	TableCreated bool   `json:"tableCreated,omitempty"`
}

// Service orchestrates ingestions against an external SQL capability. It is
// stateless: every call is a pure function of its inputs plus the injected
// fetcher and executor, and nothing persists across calls.
type Service struct {
	fetcher Fetcher
	exec    database.Executor
}

// NewService creates a Service backed by the given fetcher and executor.
func NewService(fetcher Fetcher, exec database.Executor) *Service {
	return &Service{fetcher: fetcher, exec: exec}
}

// Ingest fetches the CSV at csvURL and loads it into tableName, creating the
// table first when createTable is set.
//
// All failure modes are captured in the returned Result with Success=false
// and a message prefixed "Error: ". RowsInserted always reflects how many
// rows actually committed before the pipeline stopped, or 0 if it never
// reached the loading phase.
func (s *Service) Ingest(ctx context.Context, csvURL, tableName string, createTable bool) Result {
	logger := logging.WithFields(ctx, "table", tableName, "url", csvURL)

	body, err := s.fetcher.Fetch(ctx, csvURL)
	if err != nil {
		return failure(logger, 0, &FetchError{URL: csvURL, Err: err})
	}
	if body == "" {
		return failure(logger, 0, &MalformedInputError{Reason: "fetched document is empty"})
	}

	header, rows, err := csv.Parse(body)
	if err != nil {
		if errors.Is(err, csv.ErrMalformed) {
			return failure(logger, 0, &MalformedInputError{
				Reason: "document must contain a header row and at least one data row",
			})
		}
		return failure(logger, 0, &MalformedInputError{Reason: err.Error()})
	}

	columns := sanitizeHeader(header)

	tableCreated := false
	if createTable {
		if err := s.createTable(ctx, tableName, columns); err != nil {
			return failure(logger, 0, err)
		}
		tableCreated = true
		logger.Info("table created", "columns", len(columns))
	}

	inserted, err := s.insertRows(ctx, tableName, columns, rows)
	if err != nil {
		res := failure(logger, inserted, err)
		res.TableCreated = tableCreated
		return res
	}

	logger.Info("ingestion complete", "rows", inserted)
	return Result{
		Success:      true,
		RowsInserted: inserted,
		Message:      fmt.Sprintf("Successfully inserted %d rows into %s", inserted, tableName),
		TableCreated: tableCreated,
	}
}

// failure converts a pipeline error into the uniform non-throwing result.
func failure(logger *slog.Logger, inserted int, err error) Result {
	logger.Warn("ingestion failed", "rows_inserted", inserted, "error", err)
	return Result{
		Success:      false,
		RowsInserted: inserted,
		Message:      "Error: " + err.Error(),
	}
}
