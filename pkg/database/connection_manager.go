package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"emphub/pkg/logger"
)

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	AppName        string
}

// ConnectionManager owns the process-wide Mongo client. It is created once at
// startup and handed to every repository.
type ConnectionManager struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger
}

func NewConnectionManager(ctx context.Context, cfg Config, logger logger.Logger) (*ConnectionManager, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.InfoContext(ctx, "MongoDB connected", map[string]interface{}{"database": cfg.Database})

	return &ConnectionManager{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger,
	}, nil
}

func (cm *ConnectionManager) Database() *mongo.Database {
	return cm.db
}

func (cm *ConnectionManager) Ping(ctx context.Context) error {
	return cm.client.Ping(ctx, readpref.Primary())
}

func (cm *ConnectionManager) Close(ctx context.Context) error {
	if err := cm.client.Disconnect(ctx); err != nil {
		cm.logger.Error("MongoDB disconnect failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	cm.logger.Info("MongoDB disconnected", nil)
	return nil
}
