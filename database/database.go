package database

import (
	"context"
)

// Database runs finished SQL. It is the hand-off point after a statement has
// been rendered or compiled.
type Database interface {
	ExecContext(ctx context.Context, query string, args ...any) (Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (Rows, error)
	PingContext(ctx context.Context) error
	Close() error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

type Result interface {
	RowsAffected() (int64, error)
}
