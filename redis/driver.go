package redis

import (
	"context"
	"fmt"
	"maps"
	"slices"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/dbfixtures/errors"
	"github.com/kbukum/dbfixtures/logger"
)

// inserter writes a non-empty fixture batch to a single key.
type inserter func(ctx context.Context, key string, items []any) error

// Driver loads fixtures into Redis keys declared at construction.
type Driver struct {
	client    goredis.UniversalClient
	keyTypes  map[string]KeyType
	inserters map[string]inserter
	log       *logger.Logger
}

// NewDriver creates a driver for the declared keys. The declaration is
// copied, so later changes to keyTypes have no effect.
func NewDriver(client goredis.UniversalClient, keyTypes map[string]KeyType, log *logger.Logger) (*Driver, error) {
	if client == nil {
		return nil, errors.Configuration("redis client is required")
	}
	d := &Driver{
		client:    client,
		keyTypes:  make(map[string]KeyType, len(keyTypes)),
		inserters: make(map[string]inserter, len(keyTypes)),
		log:       logger.OrNop(log).WithComponent("redis-driver"),
	}
	for key, t := range keyTypes {
		ins, err := d.inserterFor(t)
		if err != nil {
			return nil, errors.Configuration("redis key %q: %v", key, err).WithDetail("target", key)
		}
		d.keyTypes[key] = t
		d.inserters[key] = ins
	}
	return d, nil
}

// Name identifies the driver in logs.
func (d *Driver) Name() string { return "redis" }

// KeyType returns the declared type of key.
func (d *Driver) KeyType(key string) (KeyType, bool) {
	t, ok := d.keyTypes[key]
	return t, ok
}

// Truncate deletes every named key with a single DEL.
func (d *Driver) Truncate(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if err := d.client.Del(ctx, names...).Err(); err != nil {
		return errors.Backend("del", err)
	}
	d.log.Debug("Keys deleted", logger.Fields(logger.FieldTargets, names))
	return nil
}

// InsertFixtures writes fixtures to key according to its declared type.
func (d *Driver) InsertFixtures(ctx context.Context, key string, fixtures []any) error {
	if len(fixtures) == 0 {
		return nil
	}
	ins, ok := d.inserters[key]
	if !ok {
		return errors.UndeclaredTarget("redis", key)
	}
	return ins(ctx, key, fixtures)
}

// Close closes the underlying client.
func (d *Driver) Close() error {
	return errors.Backend("close", d.client.Close())
}

func (d *Driver) inserterFor(t KeyType) (inserter, error) {
	switch t {
	case KeyTypeString:
		return d.insertString, nil
	case KeyTypeList:
		return d.insertList, nil
	case KeyTypeSet:
		return d.insertSet, nil
	case KeyTypeHash:
		return d.insertHash, nil
	case KeyTypeStream:
		return d.insertStream, nil
	}
	return nil, fmt.Errorf("unsupported key type %s", t)
}

// insertString stores only the first fixture; the rest are ignored.
func (d *Driver) insertString(ctx context.Context, key string, items []any) error {
	reply, err := d.client.Set(ctx, key, render(items[0]), 0).Result()
	if err != nil {
		return errors.Backend("set", err)
	}
	if reply != "OK" {
		return errors.BackendFailure("set", "insert failed").WithDetail("target", key)
	}
	return nil
}

func (d *Driver) insertList(ctx context.Context, key string, items []any) error {
	return errors.Backend("lpush", d.client.LPush(ctx, key, renderAll(items)...).Err())
}

func (d *Driver) insertSet(ctx context.Context, key string, items []any) error {
	return errors.Backend("sadd", d.client.SAdd(ctx, key, renderAll(items)...).Err())
}

func (d *Driver) insertHash(ctx context.Context, key string, items []any) error {
	for i, item := range items {
		pairs, err := fieldPairs(key, i, item)
		if err != nil {
			return err
		}
		if err := d.client.HSet(ctx, key, pairs...).Err(); err != nil {
			return errors.Backend("hset", err)
		}
	}
	return nil
}

func (d *Driver) insertStream(ctx context.Context, key string, items []any) error {
	for i, item := range items {
		pairs, err := fieldPairs(key, i, item)
		if err != nil {
			return err
		}
		err = d.client.XAdd(ctx, &goredis.XAddArgs{
			Stream: key,
			ID:     "*",
			Values: pairs,
		}).Err()
		if err != nil {
			return errors.Backend("xadd", err)
		}
	}
	return nil
}

// render converts a fixture to the string stored in Redis.
func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func renderAll(items []any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = render(item)
	}
	return out
}

// fieldPairs flattens a field map into name/value pairs sorted by name.
func fieldPairs(key string, index int, item any) ([]any, error) {
	var fields map[string]string
	switch m := item.(type) {
	case map[string]string:
		fields = m
	case map[string]any:
		fields = make(map[string]string, len(m))
		for k, v := range m {
			fields[k] = render(v)
		}
	default:
		return nil, errors.InvalidFixture(key, index, fmt.Sprintf("expected a field map, got %T", item))
	}
	if len(fields) == 0 {
		return nil, errors.InvalidFixture(key, index, "field map is empty")
	}
	pairs := make([]any, 0, 2*len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		pairs = append(pairs, name, fields[name])
	}
	return pairs, nil
}
