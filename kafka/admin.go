package kafka

import (
	"context"
	"fmt"
	"slices"

	"github.com/IBM/sarama"
)

// SaramaAdmin implements Admin on a sarama ClusterAdmin.
type SaramaAdmin struct {
	admin sarama.ClusterAdmin
}

// NewSaramaAdmin connects a cluster admin to brokers.
func NewSaramaAdmin(brokers []string, cfg *sarama.Config) (*SaramaAdmin, error) {
	admin, err := sarama.NewClusterAdmin(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka admin: %w", err)
	}
	return &SaramaAdmin{admin: admin}, nil
}

func (a *SaramaAdmin) Partitions(ctx context.Context, topic string) ([]int32, error) {
	return callWithContext(ctx, func() ([]int32, error) {
		metadata, err := a.admin.DescribeTopics([]string{topic})
		if err != nil {
			return nil, err
		}
		for _, md := range metadata {
			if md.Name != topic {
				continue
			}
			switch md.Err {
			case sarama.ErrNoError:
			case sarama.ErrUnknownTopicOrPartition:
				return nil, nil
			default:
				return nil, md.Err
			}
			ids := make([]int32, 0, len(md.Partitions))
			for _, p := range md.Partitions {
				ids = append(ids, p.ID)
			}
			slices.Sort(ids)
			return ids, nil
		}
		return nil, nil
	})
}

func (a *SaramaAdmin) DeleteRecords(ctx context.Context, topic string, offsets map[int32]int64) error {
	_, err := callWithContext(ctx, func() (struct{}, error) {
		return struct{}{}, a.admin.DeleteRecords(topic, offsets)
	})
	return err
}

func (a *SaramaAdmin) Close() error {
	return a.admin.Close()
}

// SaramaOffsetReader implements OffsetReader on a sarama Client.
type SaramaOffsetReader struct {
	client sarama.Client
}

// NewSaramaOffsetReader connects a client to brokers.
func NewSaramaOffsetReader(brokers []string, cfg *sarama.Config) (*SaramaOffsetReader, error) {
	client, err := sarama.NewClient(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &SaramaOffsetReader{client: client}, nil
}

func (r *SaramaOffsetReader) WatermarkOffsets(ctx context.Context, topic string, partition int32) (int64, int64, error) {
	type watermarks struct{ low, high int64 }
	w, err := callWithContext(ctx, func() (watermarks, error) {
		low, err := r.client.GetOffset(topic, partition, sarama.OffsetOldest)
		if err != nil {
			return watermarks{}, fmt.Errorf("oldest offset: %w", err)
		}
		high, err := r.client.GetOffset(topic, partition, sarama.OffsetNewest)
		if err != nil {
			return watermarks{}, fmt.Errorf("newest offset: %w", err)
		}
		return watermarks{low, high}, nil
	})
	return w.low, w.high, err
}

func (r *SaramaOffsetReader) Close() error {
	return r.client.Close()
}
