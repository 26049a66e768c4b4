package main

import (
	"context"
	stderrors "errors"

	"github.com/calumari/jwalk"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kbukum/dbfixtures"
	"github.com/kbukum/dbfixtures/fixture"
	"github.com/kbukum/dbfixtures/kafka"
	"github.com/kbukum/dbfixtures/logger"
	"github.com/kbukum/dbfixtures/mongodb"
	"github.com/kbukum/dbfixtures/redis"
	"github.com/kbukum/dbfixtures/resilience"
)

// backend binds a fixture file section to the driver that loads it.
type backend struct {
	// name is the section key in fixture files.
	name    string
	enabled bool
	// open connects and returns a driver owning its connections.
	open func(ctx context.Context) (dbfixtures.Driver, error)
	// retry is the policy open is retried with.
	retry resilience.RetryConfig
	// convert turns one target's fixtures into the driver's payloads.
	convert func(target string, arr jwalk.Array) ([]any, error)
}

func backends(cfg *Config, log *logger.Logger) []backend {
	return []backend{
		{
			name:    "redis",
			enabled: cfg.Redis.Enabled,
			retry:   cfg.Connect,
			open: func(context.Context) (dbfixtures.Driver, error) {
				keyTypes, err := cfg.Redis.KeyTypes()
				if err != nil {
					return nil, err
				}
				client, err := redis.NewClient(cfg.Redis, log)
				if err != nil {
					return nil, err
				}
				d, err := redis.NewDriver(client, keyTypes, log)
				if err != nil {
					_ = client.Close()
					return nil, err
				}
				return d, nil
			},
			convert: fixture.PlainArray,
		},
		{
			name:    "mongodb",
			enabled: cfg.MongoDB.Enabled,
			retry:   cfg.Connect,
			open: func(ctx context.Context) (dbfixtures.Driver, error) {
				client, err := mongodb.Connect(ctx, cfg.MongoDB, log)
				if err != nil {
					return nil, err
				}
				return dbfixtures.Adapt[bson.D](mongodb.NewDriver[bson.D](client, cfg.MongoDB.Database, log)), nil
			},
			convert: mongodb.ToDocuments,
		},
		{
			name:    "kafka",
			enabled: cfg.Kafka.Enabled,
			retry:   cfg.Connect,
			open: func(context.Context) (dbfixtures.Driver, error) {
				clients, err := kafka.Connect(cfg.Kafka, log)
				if err != nil {
					return nil, err
				}
				d, err := kafka.NewDriver(clients, kafka.AutoCodec[any, any](), log)
				if err != nil {
					return nil, stderrors.Join(err, clients.Close())
				}
				return dbfixtures.Adapt[kafka.Message[any, any]](d), nil
			},
			convert: func(topic string, arr jwalk.Array) ([]any, error) {
				items, err := fixture.PlainArray(topic, arr)
				if err != nil {
					return nil, err
				}
				return kafka.DecodeMessages(topic, items)
			},
		},
	}
}

// newRegistry returns the directive registry fixture files are decoded with.
func newRegistry() (*jwalk.Registry, error) {
	reg, err := jwalk.NewRegistry()
	if err != nil {
		return nil, err
	}
	if err := mongodb.RegisterTypes(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
