package kafka

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/dbfixtures/errors"
	"github.com/kbukum/dbfixtures/logger"
)

const (
	defaultQueryTimeout = 10 * time.Second
	defaultFlushTimeout = 5 * time.Second
)

// Driver loads Message fixtures into topics. Target names are topic names.
type Driver[K, V any] struct {
	clients      Clients
	codec        Codec[K, V]
	queryTimeout time.Duration
	flushTimeout time.Duration
	log          *logger.Logger
}

// NewDriver creates a driver owning clients. All three clients are
// required; codec fields left nil fall back to AutoSerializer.
func NewDriver[K, V any](clients Clients, codec Codec[K, V], log *logger.Logger) (*Driver[K, V], error) {
	switch {
	case clients.Admin == nil:
		return nil, errors.Configuration("kafka: admin client is required")
	case clients.Offsets == nil:
		return nil, errors.Configuration("kafka: offset reader is required")
	case clients.Producer == nil:
		return nil, errors.Configuration("kafka: producer is required")
	}
	if codec.Key == nil {
		codec.Key = AutoSerializer[K]()
	}
	if codec.Value == nil {
		codec.Value = AutoSerializer[V]()
	}
	d := &Driver[K, V]{
		clients:      clients,
		codec:        codec,
		queryTimeout: clients.QueryTimeout,
		flushTimeout: clients.FlushTimeout,
		log:          logger.OrNop(log).WithComponent("kafka-driver"),
	}
	if d.queryTimeout <= 0 {
		d.queryTimeout = defaultQueryTimeout
	}
	if d.flushTimeout <= 0 {
		d.flushTimeout = defaultFlushTimeout
	}
	return d, nil
}

// Name identifies the driver in logs.
func (d *Driver[K, V]) Name() string { return "kafka" }

// Truncate deletes every record currently in each named topic, one topic
// at a time. Empty or unknown topics are skipped.
func (d *Driver[K, V]) Truncate(ctx context.Context, names []string) error {
	for _, topic := range names {
		if err := d.truncateTopic(ctx, topic); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver[K, V]) truncateTopic(ctx context.Context, topic string) error {
	qctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	partitions, err := d.clients.Admin.Partitions(qctx, topic)
	cancel()
	if err != nil {
		return backendError("describe topic", topic, err)
	}

	offsets := make(map[int32]int64, len(partitions))
	for _, p := range partitions {
		qctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
		low, high, err := d.clients.Offsets.WatermarkOffsets(qctx, topic, p)
		cancel()
		if err != nil {
			return backendError(fmt.Sprintf("query watermarks of partition %d", p), topic, err)
		}
		if high > low {
			offsets[p] = high
		}
	}
	if len(offsets) == 0 {
		return nil
	}

	if err := d.clients.Admin.DeleteRecords(ctx, topic, offsets); err != nil {
		return backendError("delete records", topic, err)
	}
	d.log.Debug("Topic truncated", logger.Fields(
		logger.FieldTarget, topic,
		"partitions", len(offsets),
	))
	return nil
}

// Insert produces each fixture to topic in order. The first failure stops
// the batch; messages already produced stay in the topic.
func (d *Driver[K, V]) Insert(ctx context.Context, topic string, fixtures []Message[K, V]) error {
	for i, msg := range fixtures {
		record, err := d.encode(topic, i, msg)
		if err != nil {
			return err
		}
		if err := d.clients.Producer.Produce(ctx, record); err != nil {
			return backendError("produce", topic, err)
		}
	}
	return nil
}

func (d *Driver[K, V]) encode(topic string, index int, msg Message[K, V]) (Record, error) {
	key, err := d.codec.Key.Serialize(msg.Key)
	if err != nil {
		return Record{}, errors.InvalidFixture(topic, index, "key: "+err.Error()).WithCause(err)
	}
	value, err := d.codec.Value.Serialize(msg.Value)
	if err != nil {
		return Record{}, errors.InvalidFixture(topic, index, "value: "+err.Error()).WithCause(err)
	}
	return Record{Topic: topic, Key: key, Value: value, Headers: msg.Headers}, nil
}

// Close releases the offset reader, flushes and closes the producer, then
// closes the admin client. Every step runs even if an earlier one failed.
func (d *Driver[K, V]) Close() error {
	var errs []error
	if err := d.clients.Offsets.Close(); err != nil {
		errs = append(errs, errors.Backend("close offset reader", err))
	}
	if err := d.clients.Producer.Flush(d.flushTimeout); err != nil {
		errs = append(errs, errors.Backend("flush producer", err))
	}
	if m, ok := d.clients.Producer.(interface{ Metrics() WriterMetrics }); ok {
		d.log.Info("Producer stats", m.Metrics().Fields())
	}
	if err := d.clients.Producer.Close(); err != nil {
		errs = append(errs, errors.Backend("close producer", err))
	}
	if err := d.clients.Admin.Close(); err != nil {
		errs = append(errs, errors.Backend("close admin", err))
	}
	return stderrors.Join(errs...)
}
