package db

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"inventory/src/infra/config"
)

// Mongo wraps a connected client and the inventory database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      *slog.Logger
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, cfg config.MongoConfig, log *slog.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info("mongo connection established", "database", cfg.Database)

	return &Mongo{
		Client:   client,
		Database: client.Database(cfg.Database),
		log:      log,
	}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if err := m.Client.Disconnect(ctx); err != nil {
		m.log.Warn("mongo disconnect failed", "error", err)
		return
	}
	m.log.Info("mongo connection closed")
}

// Health pings the primary.
func (m *Mongo) Health(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}
