package kafka

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// WriterProducer implements Producer on a synchronous kafka-go Writer.
type WriterProducer struct {
	writer *kafkago.Writer
}

// NewWriterProducer creates a writer for cfg.Brokers. Records carry their
// own topic, so the writer has none.
func NewWriterProducer(cfg *Config) (*WriterProducer, error) {
	transport, err := CreateTransport(cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka transport: %w", err)
	}
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Balancer:               &kafkago.Murmur2Balancer{},
		MaxAttempts:            cfg.Retries,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           ParseDuration(cfg.BatchTimeout),
		ReadTimeout:            ParseDuration(cfg.ReadTimeout),
		WriteTimeout:           ParseDuration(cfg.WriteTimeout),
		RequiredAcks:           kafkago.RequiredAcks(cfg.Acks()),
		Compression:            ResolveCompression(cfg.Compression),
		Transport:              transport,
		AllowAutoTopicCreation: true,
	}
	return &WriterProducer{writer: w}, nil
}

func (p *WriterProducer) Produce(ctx context.Context, r Record) error {
	return p.writer.WriteMessages(ctx, toKafkaMessage(r))
}

// Flush returns immediately: the writer is synchronous, so Produce only
// returns after delivery.
func (p *WriterProducer) Flush(time.Duration) error {
	return nil
}

func (p *WriterProducer) Close() error {
	return p.writer.Close()
}

// Metrics reports the writer statistics gathered since the last call.
func (p *WriterProducer) Metrics() WriterMetrics {
	return CollectWriterMetrics(p.writer.Stats())
}

func toKafkaMessage(r Record) kafkago.Message {
	msg := kafkago.Message{
		Topic: r.Topic,
		Key:   r.Key,
		Value: r.Value,
	}
	for _, k := range slices.Sorted(maps.Keys(r.Headers)) {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: k, Value: []byte(r.Headers[k])})
	}
	return msg
}
