package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the SQL execution surface the store implementations run
// against. Both *sql.DB and *sql.Tx satisfy it, so a store can operate on a
// pooled connection or inside a caller-managed transaction without knowing
// which it was given.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
