// Package db provides database connection management for PostgreSQL and
// MongoDB, and the embedded SQL migrations.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory/src/infra/config"
)

// ApplicationName tags inventory connections in pg_stat_activity.
const ApplicationName = "inventory-api"

// Postgres owns the pgx pool shared by the inventory repositories.
type Postgres struct {
	Pool *pgxpool.Pool
	log  *slog.Logger
}

// New opens the inventory pool and pings it once before returning.
func New(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Postgres, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping inventory database %s: %w", cfg.Name, err)
	}

	log.Info("postgres pool ready",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
		"max_conns", poolCfg.MaxConns,
	)
	return &Postgres{Pool: pool, log: log}, nil
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 && cfg.MaxIdleConns <= cfg.MaxOpenConns {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	return poolCfg, nil
}

// Close releases every pooled connection.
func (p *Postgres) Close() {
	if p.Pool == nil {
		return
	}
	p.Pool.Close()
	p.log.Info("postgres pool closed")
}

// Health pings the database. Failures are logged with the pool counters.
func (p *Postgres) Health(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		stat := p.Pool.Stat()
		p.log.Warn("postgres health check failed",
			"error", err,
			"total_conns", stat.TotalConns(),
			"acquired_conns", stat.AcquiredConns(),
			"idle_conns", stat.IdleConns(),
		)
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}
