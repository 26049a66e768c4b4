package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/dbfixtures/errors"
	"github.com/kbukum/dbfixtures/logger"
)

// disconnectTimeout bounds Close.
const disconnectTimeout = 10 * time.Second

// Driver loads fixtures of type T into collections of one database.
type Driver[T any] struct {
	store store
	db    string
	log   *logger.Logger
}

// NewDriver creates a driver writing to database dbName through client.
// The driver owns client and disconnects it on Close.
func NewDriver[T any](client *mongo.Client, dbName string, log *logger.Logger) *Driver[T] {
	return newDriver[T](newClientStore(client, dbName), dbName, log)
}

func newDriver[T any](s store, dbName string, log *logger.Logger) *Driver[T] {
	return &Driver[T]{
		store: s,
		db:    dbName,
		log:   logger.OrNop(log).WithComponent("mongodb-driver"),
	}
}

// Name identifies the driver in logs.
func (d *Driver[T]) Name() string { return "mongodb" }

// Truncate drops every named collection concurrently. Missing collections
// are not an error. All drops finish before the first failure is returned.
func (d *Driver[T]) Truncate(ctx context.Context, names []string) error {
	var g errgroup.Group
	for _, name := range names {
		g.Go(func() error {
			if err := d.store.dropCollection(ctx, name); err != nil {
				return errors.Backend("drop collection "+name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	d.log.Debug("Collections dropped", logger.Fields(
		"database", d.db,
		logger.FieldTargets, names,
	))
	return nil
}

// Insert writes fixtures to the named collection with a single InsertMany.
func (d *Driver[T]) Insert(ctx context.Context, name string, fixtures []T) error {
	if len(fixtures) == 0 {
		return nil
	}
	docs := make([]any, len(fixtures))
	for i, f := range fixtures {
		docs[i] = f
	}
	if err := d.store.insertMany(ctx, name, docs); err != nil {
		return errors.Backend("insert into "+name, err)
	}
	return nil
}

// Close disconnects the client.
func (d *Driver[T]) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return errors.Backend("disconnect", d.store.disconnect(ctx))
}
