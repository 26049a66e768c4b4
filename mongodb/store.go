package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// store is the subset of the MongoDB client the driver uses.
type store interface {
	dropCollection(ctx context.Context, name string) error
	insertMany(ctx context.Context, name string, docs []any) error
	disconnect(ctx context.Context) error
}

type clientStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func newClientStore(client *mongo.Client, dbName string) *clientStore {
	return &clientStore{client: client, db: client.Database(dbName)}
}

func (s *clientStore) dropCollection(ctx context.Context, name string) error {
	return s.db.Collection(name).Drop(ctx)
}

func (s *clientStore) insertMany(ctx context.Context, name string, docs []any) error {
	_, err := s.db.Collection(name).InsertMany(ctx, docs)
	return err
}

func (s *clientStore) disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
