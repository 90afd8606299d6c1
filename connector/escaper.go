package connector

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotConnected = errors.New("not connected")

// PoolEscaper escapes through a live server connection using libpq-style
// string escaping. It fails, rather than guessing, when the server is not
// running with UTF8 client encoding and standard_conforming_strings on.
// Errors from the pool or the server are returned as they are.
type PoolEscaper struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPoolEscaper(pool *pgxpool.Pool, timeout time.Duration) *PoolEscaper {
	return &PoolEscaper{pool: pool, timeout: timeout}
}

// Escape acquires a connection for the length of one escape call.
func (e *PoolEscaper) Escape(raw string) (string, error) {
	if e.pool == nil {
		return "", ErrNotConnected
	}

	ctx := context.Background()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	return conn.Conn().PgConn().EscapeString(raw)
}
