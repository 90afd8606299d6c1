package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/stmtkit/dialect"
	"github.com/Konsultn-Engineering/stmtkit/statement"
	"github.com/gopsql/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
)

var (
	ErrNoDatabase = errors.New("no database")

	// ErrRejected marks SQL the server refused to parse or was not allowed
	// to run, e.g. a placeholder that was left unbound.
	ErrRejected = errors.New("statement rejected by server")
)

// Executor turns statements into SQL and runs them.
//
// By default statements are rendered: values are escaped and spliced into
// the text. With WithCompile(true) they are compiled to positional
// parameters instead and the values travel separately.
type Executor struct {
	db      Database
	dialect dialect.Dialect
	escaper statement.Escaper
	logger  logger.Logger
	compile bool
}

type ExecutorOption func(*Executor)

// WithEscaper overrides the dialect's own escaping, e.g. with a live
// connection escaper.
func WithEscaper(e statement.Escaper) ExecutorOption {
	return func(ex *Executor) { ex.escaper = e }
}

// WithLogger logs every statement at debug level. Use
// logger.StandardLogger for Go's standard log package. Nil disables logging.
func WithLogger(l logger.Logger) ExecutorOption {
	return func(ex *Executor) { ex.logger = l }
}

// WithCompile sends values as driver parameters instead of rendering them.
func WithCompile(enabled bool) ExecutorOption {
	return func(ex *Executor) { ex.compile = enabled }
}

func NewExecutor(db Database, d dialect.Dialect, options ...ExecutorOption) *Executor {
	ex := &Executor{db: db, dialect: d}
	if d != nil {
		ex.escaper = d
	}
	for _, opt := range options {
		opt(ex)
	}
	return ex
}

// SetLogger replaces the logger.
func (e *Executor) SetLogger(l logger.Logger) *Executor {
	e.logger = l
	return e
}

// SQL returns the text and arguments that Exec and Query would send.
func (e *Executor) SQL(s *statement.Statement) (string, []any, error) {
	if e.compile {
		return s.Compile(e.dialect)
	}
	sql, err := s.Render(e.escaper)
	return sql, nil, err
}

// Exec runs a statement that returns no rows.
func (e *Executor) Exec(ctx context.Context, s *statement.Statement) (Result, error) {
	if e.db == nil {
		return nil, ErrNoDatabase
	}
	sql, args, err := e.SQL(s)
	if err != nil {
		return nil, err
	}
	id := e.log(sql, args)
	res, err := e.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return nil, e.fail(id, err)
	}
	return res, nil
}

// Query runs a statement and returns its rows; the caller closes them.
func (e *Executor) Query(ctx context.Context, s *statement.Statement) (Rows, error) {
	if e.db == nil {
		return nil, ErrNoDatabase
	}
	sql, args, err := e.SQL(s)
	if err != nil {
		return nil, err
	}
	id := e.log(sql, args)
	rows, err := e.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, e.fail(id, err)
	}
	return rows, nil
}

func (e *Executor) log(sql string, args []any) ulid.ULID {
	id := ulid.Make()
	if e.logger == nil {
		return id
	}
	if len(args) == 0 {
		e.logger.Debug(fmt.Sprintf("[%s] %s", id, sql))
	} else {
		e.logger.Debug(fmt.Sprintf("[%s] %s", id, sql), args)
	}
	return id
}

func (e *Executor) fail(id ulid.ULID, err error) error {
	err = classify(err)
	if e.logger != nil {
		e.logger.Error(fmt.Sprintf("[%s] %v", id, err))
	}
	return err
}

// classify marks syntax and access-rule errors (SQLSTATE class 42) with
// ErrRejected, keeping the original error in the chain.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code) {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}
