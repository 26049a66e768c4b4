package kafka

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/dbfixtures/logger"
)

// Admin reads topic metadata and deletes records.
type Admin interface {
	// Partitions lists the partition ids of topic. An unknown topic has none.
	Partitions(ctx context.Context, topic string) ([]int32, error)
	// DeleteRecords deletes every record of topic below the given offset,
	// per partition.
	DeleteRecords(ctx context.Context, topic string, offsets map[int32]int64) error
	Close() error
}

// OffsetReader queries partition watermarks.
type OffsetReader interface {
	// WatermarkOffsets returns the first retained offset and the offset the
	// next record will be written at.
	WatermarkOffsets(ctx context.Context, topic string, partition int32) (low, high int64, err error)
	Close() error
}

// Producer writes single records.
type Producer interface {
	// Produce writes r and returns once the brokers acknowledged it.
	Produce(ctx context.Context, r Record) error
	// Flush waits up to timeout for buffered records to be delivered.
	Flush(timeout time.Duration) error
	Close() error
}

// Record is a serialized message addressed to a topic.
type Record struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Clients bundles the three connections a Driver owns.
type Clients struct {
	Admin    Admin
	Offsets  OffsetReader
	Producer Producer

	// QueryTimeout bounds each metadata and watermark query (default 10s).
	QueryTimeout time.Duration
	// FlushTimeout bounds the producer flush on Close (default 5s).
	FlushTimeout time.Duration
}

// Close closes every client that is set, without flushing. Drivers close
// their clients themselves; Close is for clients no driver took over.
func (c Clients) Close() error {
	var errs []error
	if c.Producer != nil {
		errs = append(errs, c.Producer.Close())
	}
	if c.Offsets != nil {
		errs = append(errs, c.Offsets.Close())
	}
	if c.Admin != nil {
		errs = append(errs, c.Admin.Close())
	}
	return stderrors.Join(errs...)
}

// Connect opens the admin, offset and producer clients for cfg. Clients
// opened before a failure are closed again.
func Connect(cfg Config, log *logger.Logger) (Clients, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Clients{}, fmt.Errorf("kafka config: %w", err)
	}
	log = logger.OrNop(log)

	sc, err := NewSaramaConfig(&cfg)
	if err != nil {
		return Clients{}, err
	}
	admin, err := NewSaramaAdmin(cfg.Brokers, sc)
	if err != nil {
		return Clients{}, err
	}
	offsets, err := NewSaramaOffsetReader(cfg.Brokers, sc)
	if err != nil {
		return Clients{}, stderrors.Join(err, admin.Close())
	}
	producer, err := NewWriterProducer(&cfg)
	if err != nil {
		return Clients{}, stderrors.Join(err, offsets.Close(), admin.Close())
	}

	log.Info("Kafka clients created", map[string]interface{}{
		"brokers":   cfg.Brokers,
		"client_id": cfg.ClientID,
		"tls":       cfg.EnableTLS,
		"sasl":      cfg.EnableSASL,
	})
	return Clients{
		Admin:        admin,
		Offsets:      offsets,
		Producer:     producer,
		QueryTimeout: ParseDuration(cfg.QueryTimeout),
		FlushTimeout: ParseDuration(cfg.FlushTimeout),
	}, nil
}

// callWithContext runs fn and returns early when ctx is done. fn keeps
// running in the background until its own timeouts expire.
func callWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
