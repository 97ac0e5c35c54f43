package repository

import (
	"context"
	"database/sql"
)

// queryable abstracts over *sql.DB and *sql.Tx so repositories work both
// standalone and inside a unit of work
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
