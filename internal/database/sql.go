package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLExecutor executes statements through a database/sql handle. It is the
// backend for the SQLite driver (modernc.org/sqlite) and anything else that
// speaks "?" placeholders.
type SQLExecutor struct {
	db *sql.DB
}

// NewSQLExecutor wraps an open *sql.DB. The caller retains ownership of the
// handle and is responsible for closing it.
func NewSQLExecutor(db *sql.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

// Exec runs one statement. Backend rejections are folded into the Result;
// the error return is reserved for a cancelled context.
func (e *SQLExecutor) Exec(ctx context.Context, query string, params []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res, err := e.db.ExecContext(ctx, query, toArgs(params)...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{Success: false, Detail: err.Error()}, nil
	}

	detail := ""
	if n, err := res.RowsAffected(); err == nil {
		detail = fmt.Sprintf("%d row(s) affected", n)
	}
	return Result{Success: true, Detail: detail}, nil
}

// Placeholder returns the "?" placeholder regardless of position.
func (e *SQLExecutor) Placeholder(int) string {
	return "?"
}

// Ping verifies connectivity to the database.
func (e *SQLExecutor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}
