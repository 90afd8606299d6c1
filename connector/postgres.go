package connector

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Konsultn-Engineering/stmtkit/database"
	"github.com/Konsultn-Engineering/stmtkit/dialect"
	"github.com/Konsultn-Engineering/stmtkit/statement"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresConnector owns a pgx pool and hands out the collaborators a
// statement needs: a live escaper and a database to run the result on.
type PostgresConnector struct {
	config  Config
	pool    *pgxpool.Pool
	dialect dialect.Dialect
}

// Connect opens a pool for cfg, retrying when cfg.Retry is set.
func Connect(ctx context.Context, cfg Config) (*PostgresConnector, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &PostgresConnector{
		config:  cfg,
		dialect: dialect.NewPostgresDialect(),
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if cfg.Retry != nil {
		if err := retryConnect(ctx, cfg.Retry, p.connect); err != nil {
			return nil, fmt.Errorf("failed to connect after %d retries: %w", cfg.Retry.MaxRetries, err)
		}
		return p, nil
	}
	if err := p.connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// connect establishes the pool and checks it with a ping.
func (p *PostgresConnector) connect(ctx context.Context) error {
	if p.pool != nil {
		return nil
	}

	poolCfg, err := p.poolConfig()
	if err != nil {
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}

	p.pool = pool
	return nil
}

func (p *PostgresConnector) poolConfig() (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(p.config.DSN())
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(p.config.Pool.MaxOpen)
	poolCfg.MinConns = int32(p.config.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = p.config.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = p.config.Pool.MaxIdleTime
	return poolCfg, nil
}

// Escaper returns an escaper that asks the server how to escape, so the
// server's encoding and quoting settings are honoured.
func (p *PostgresConnector) Escaper() statement.Escaper {
	return NewPoolEscaper(p.pool, p.config.QueryTimeout)
}

// DB returns a database/sql handle sharing the pool.
func (p *PostgresConnector) DB() *sql.DB {
	return stdlib.OpenDBFromPool(p.pool)
}

// Database returns a database abstraction interface.
func (p *PostgresConnector) Database() database.Database {
	return database.NewPgxDatabase(p.pool)
}

// Dialect returns the PostgreSQL dialect.
func (p *PostgresConnector) Dialect() dialect.Dialect {
	return p.dialect
}

// Executor returns an executor that renders statements with the live
// escaper and runs them on the pool.
func (p *PostgresConnector) Executor(options ...database.ExecutorOption) *database.Executor {
	options = append([]database.ExecutorOption{database.WithEscaper(p.Escaper())}, options...)
	return database.NewExecutor(p.Database(), p.dialect, options...)
}

// Health checks the connection health.
func (p *PostgresConnector) Health(ctx context.Context) error {
	if p.pool == nil {
		return ErrNotConnected
	}
	return p.pool.Ping(ctx)
}

// Stats returns connection pool statistics.
func (p *PostgresConnector) Stats() ConnectionStats {
	if p.pool == nil {
		return ConnectionStats{}
	}
	s := p.pool.Stat()
	return ConnectionStats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

// Close closes the connection pool.
func (p *PostgresConnector) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}
