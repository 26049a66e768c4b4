package mongodb

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kbukum/dbfixtures/errors"
)

type fakeStore struct {
	mu            sync.Mutex
	dropped       []string
	inserts       map[string][][]any
	dropErr       map[string]error
	insertErr     error
	disconnected  bool
	disconnectErr error
}

func (s *fakeStore) dropCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropped = append(s.dropped, name)
	return s.dropErr[name]
}

func (s *fakeStore) insertMany(_ context.Context, name string, docs []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.inserts == nil {
		s.inserts = make(map[string][][]any)
	}
	s.inserts[name] = append(s.inserts[name], docs)
	return nil
}

func (s *fakeStore) disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return stderrors.New("disconnect without deadline")
	}
	s.disconnected = true
	return s.disconnectErr
}

func TestTruncate_DropsEveryCollection(t *testing.T) {
	s := &fakeStore{}
	d := newDriver[bson.D](s, "fixtures", nil)

	require.NoError(t, d.Truncate(context.Background(), []string{"users", "orders", "missing"}))

	sort.Strings(s.dropped)
	assert.Equal(t, []string{"missing", "orders", "users"}, s.dropped)
}

func TestTruncate_WaitsForAllDropsOnFailure(t *testing.T) {
	sentinel := stderrors.New("not authorized")
	s := &fakeStore{dropErr: map[string]error{"orders": sentinel}}
	d := newDriver[bson.D](s, "fixtures", nil)

	err := d.Truncate(context.Background(), []string{"users", "orders", "items"})

	require.Error(t, err)
	assert.True(t, errors.IsBackend(err))
	assert.ErrorIs(t, err, sentinel)
	assert.Len(t, s.dropped, 3)
}

func TestInsert_SingleBatch(t *testing.T) {
	s := &fakeStore{}
	d := newDriver[bson.D](s, "fixtures", nil)

	users := []bson.D{{{Key: "name", Value: "ada"}}, {{Key: "name", Value: "alan"}}}
	require.NoError(t, d.Insert(context.Background(), "users", users))

	require.Len(t, s.inserts["users"], 1)
	assert.Equal(t, []any{users[0], users[1]}, s.inserts["users"][0])
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	s := &fakeStore{insertErr: stderrors.New("must not be called")}
	d := newDriver[bson.D](s, "fixtures", nil)

	assert.NoError(t, d.Insert(context.Background(), "users", nil))
}

func TestInsert_BackendError(t *testing.T) {
	sentinel := stderrors.New("duplicate key")
	s := &fakeStore{insertErr: sentinel}
	d := newDriver[map[string]any](s, "fixtures", nil)

	err := d.Insert(context.Background(), "users", []map[string]any{{"_id": 1}})

	assert.True(t, errors.IsBackend(err))
	assert.ErrorIs(t, err, sentinel)
}

func TestClose_DisconnectsWithDeadline(t *testing.T) {
	s := &fakeStore{}
	d := newDriver[bson.D](s, "fixtures", nil)

	require.NoError(t, d.Close())
	assert.True(t, s.disconnected)
}

func TestClose_BackendError(t *testing.T) {
	s := &fakeStore{disconnectErr: stderrors.New("already closed")}
	d := newDriver[bson.D](s, "fixtures", nil)

	assert.True(t, errors.IsBackend(d.Close()))
}
