package database

import (
	"context"
	"database/sql"
)

// SqlDatabase implements Database for *sql.DB, covering any database/sql
// driver (SQLite, MySQL, pgx's stdlib adapter).
type SqlDatabase struct {
	db *sql.DB
}

// NewSqlDatabase creates a new SqlDatabase.
func NewSqlDatabase(db *sql.DB) *SqlDatabase {
	return &SqlDatabase{db: db}
}

// ExecContext executes a query without returning rows.
func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// QueryContext executes a query that returns rows.
func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SqlDatabase) PingContext(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SqlDatabase) Close() error { return s.db.Close() }

var _ Database = (*SqlDatabase)(nil)
