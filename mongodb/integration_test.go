//go:build integration

package mongodb_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kbukum/dbfixtures/logger"
	"github.com/kbukum/dbfixtures/mongodb"
)

type MongoSuite struct {
	suite.Suite
	container testcontainers.Container
	uri       string
}

func (s *MongoSuite) SetupSuite() {
	t := s.T()

	container, err := testcontainers.GenericContainer(t.Context(), testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort("27017/tcp"),
			),
		},
		Started: true,
	})
	require.NoError(t, err)
	s.container = container

	host, err := container.Host(t.Context())
	require.NoError(t, err)
	port, err := container.MappedPort(t.Context(), "27017/tcp")
	require.NoError(t, err)
	s.uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func (s *MongoSuite) TearDownSuite() {
	_ = s.container.Terminate(context.Background())
}

func TestMongoSuite(t *testing.T) {
	suite.Run(t, new(MongoSuite))
}

func (s *MongoSuite) connect(t *testing.T) (*mongo.Client, string) {
	t.Helper()
	dbName := fmt.Sprintf("dbfx_%s", uuid.NewString()[:8])
	client, err := mongodb.Connect(t.Context(), mongodb.Config{
		Enabled:  true,
		URI:      s.uri,
		Database: dbName,
	}, logger.NewNop())
	require.NoError(t, err)
	return client, dbName
}

func (s *MongoSuite) TestTruncateThenInsert() {
	t := s.T()
	client, dbName := s.connect(t)
	driver := mongodb.NewDriver[bson.D](client, dbName, nil)
	defer driver.Close()

	// a separate client for assertions, since the driver owns its client
	probe, _ := s.connect(t)
	defer probe.Disconnect(context.Background())
	coll := probe.Database(dbName).Collection("users")

	ctx := t.Context()
	require.NoError(t, driver.Insert(ctx, "users", []bson.D{{{Key: "name", Value: "stale"}}}))
	require.NoError(t, driver.Truncate(ctx, []string{"users", "never_created"}))

	n, err := coll.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, driver.Insert(ctx, "users", []bson.D{
		{{Key: "name", Value: "ada"}},
		{{Key: "name", Value: "alan"}},
	}))
	n, err = coll.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func (s *MongoSuite) TestInsertDuplicateKeyIsBackendError() {
	t := s.T()
	client, dbName := s.connect(t)
	driver := mongodb.NewDriver[bson.D](client, dbName, nil)
	defer driver.Close()

	id := bson.NewObjectID()
	err := driver.Insert(t.Context(), "users", []bson.D{
		{{Key: "_id", Value: id}},
		{{Key: "_id", Value: id}},
	})
	assert.Error(t, err)
}
