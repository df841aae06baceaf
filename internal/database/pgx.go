package database

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExecutor executes statements against PostgreSQL through a pgx pool.
type PgxExecutor struct {
	pool *pgxpool.Pool
}

// NewPgxExecutor wraps an existing connection pool. The caller retains
// ownership of the pool and is responsible for closing it.
func NewPgxExecutor(pool *pgxpool.Pool) *PgxExecutor {
	return &PgxExecutor{pool: pool}
}

// Exec runs one statement. A backend rejection (constraint violation, bad
// identifier, etc.) comes back as a failed Result rather than an error so
// the caller can fold it into per-row accounting.
func (e *PgxExecutor) Exec(ctx context.Context, query string, params []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tag, err := e.pool.Exec(ctx, query, toArgs(params)...)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{Success: false, Detail: err.Error()}, nil
	}

	return Result{Success: true, Detail: tag.String()}, nil
}

// Placeholder returns PostgreSQL-style numbered placeholders ($1, $2, ...).
func (e *PgxExecutor) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// Ping verifies connectivity to the database.
func (e *PgxExecutor) Ping(ctx context.Context) error {
	return e.pool.Ping(ctx)
}
