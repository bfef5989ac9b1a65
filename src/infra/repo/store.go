// Package repo selects and opens the configured storage backend.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"inventory/src/core/ports"
	"inventory/src/infra/config"
	"inventory/src/infra/db"
	"inventory/src/infra/repo/memory"
	"inventory/src/infra/repo/mongodb"
	"inventory/src/infra/repo/postgres"
)

// CloseFunc releases the connections held by an opened store.
type CloseFunc func()

// Open connects to the backend named by cfg.Store.Driver and returns its ports.
// Postgres applies pending migrations when cfg.Database.AutoMigrate is set;
// Mongo ensures its indexes.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (ports.Store, CloseFunc, error) {
	log = log.With("store", cfg.Store.Driver)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.New().Ports(), func() {}, nil

	case config.DriverPostgres:
		pg, err := db.New(ctx, cfg.Database, log)
		if err != nil {
			return ports.Store{}, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := migrate(ctx, pg, log); err != nil {
				pg.Close()
				return ports.Store{}, nil, err
			}
		}
		return postgres.New(pg, log), pg.Close, nil

	case config.DriverMongo:
		m, err := db.NewMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return ports.Store{}, nil, err
		}
		closeMongo := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.Close(ctx)
		}
		if err := mongodb.EnsureIndexes(ctx, m.Database); err != nil {
			closeMongo()
			return ports.Store{}, nil, err
		}
		return mongodb.New(m, log), closeMongo, nil

	default:
		return ports.Store{}, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func migrate(ctx context.Context, pg *db.Postgres, log *slog.Logger) error {
	m, err := db.NewMigrator(pg, log)
	if err != nil {
		return err
	}
	defer m.Close()

	return errors.Wrap(m.Up(ctx), "apply migrations")
}
