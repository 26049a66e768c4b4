package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/kbukum/dbfixtures/logger"
)

// Connect opens a client from cfg and pings the primary.
func Connect(ctx context.Context, cfg Config, log *logger.Logger) (*mongo.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mongodb config: %w", err)
	}

	connectTimeout, _ := time.ParseDuration(cfg.ConnectTimeout)
	selectionTimeout, _ := time.ParseDuration(cfg.ServerSelectionTimeout)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(selectionTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	logger.OrNop(log).Info("MongoDB client created", map[string]interface{}{
		"database": cfg.Database,
		"app_name": cfg.AppName,
	})
	return client, nil
}
