package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new PostgreSQL connection pool. When ping is true the
// pool is verified before it is returned.
func NewPgxPool(ctx context.Context, databaseURL string, ping bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	config.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	slog.Info("PostgreSQL connection pool created", slog.Bool("pinged", ping))
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed.")
	}
}

// PoolProvider opens the pool on first use and hands the same pool (or the same
// error) to every caller afterwards.
type PoolProvider struct {
	databaseURL string
	ping        bool

	once sync.Once
	pool *pgxpool.Pool
	err  error
}

func NewPoolProvider(databaseURL string, ping bool) *PoolProvider {
	return &PoolProvider{databaseURL: databaseURL, ping: ping}
}

// Pool returns the shared pool, creating it on the first call.
func (p *PoolProvider) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	p.once.Do(func() {
		p.pool, p.err = NewPgxPool(ctx, p.databaseURL, p.ping)
	})
	return p.pool, p.err
}

// Close closes the pool if it was ever opened.
func (p *PoolProvider) Close() {
	ClosePgxPool(p.pool)
}
