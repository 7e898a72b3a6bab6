package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/picstash/picstash/internal/logger"
)

// NewPgxPool creates a connection pool with sensible defaults
func NewPgxPool(dsn string, logg *logger.Logger) (*pgxpool.Pool, error) {
	// Give ourselves 5 seconds to connect—if it takes longer, something’s wrong
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres DSN: %w", err)
	}

	// The gallery workload is light; a small pool is plenty
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify we can actually talk to the database
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logg.Info("postgres connection pool ready",
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns)

	return pool, nil
}
