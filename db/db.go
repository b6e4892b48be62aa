// Package db wires the PostgreSQL connection pool and schema migrations.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CareVoice/carevoice-backend/config"
	"github.com/CareVoice/carevoice-backend/logger"
)

// NewPool creates a bounded pgx connection pool and verifies connectivity
// with a ping. Pool size comes from configuration; the acquire timeout also
// bounds dialing here, while queue waits on a saturated pool are bounded by
// the store's per-operation deadline.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	log := logger.GetLogger()

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConnections)
	if cfg.AcquireTimeoutSeconds > 0 {
		poolCfg.ConnConfig.ConnectTimeout = time.Duration(cfg.AcquireTimeoutSeconds) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Infow("Database pool established",
		"host", cfg.Host,
		"database", cfg.Name,
		"max_connections", cfg.MaxConnections,
	)
	return pool, nil
}
