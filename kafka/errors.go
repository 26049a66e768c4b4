package kafka

import (
	stderrors "errors"
	"strings"

	"github.com/IBM/sarama"

	"github.com/kbukum/dbfixtures/errors"
)

// IsConnectionError checks if a Kafka error is a connection-level error.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, sarama.ErrOutOfBrokers) || stderrors.Is(err, sarama.ErrClosedClient) {
		return true
	}
	return containsAny(err, []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"i/o timeout",
		"no route to host",
		"broker not available",
		"leader not available",
		"dial tcp",
	})
}

// IsRetryableError determines if a Kafka error is likely transient.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if IsConnectionError(err) {
		return true
	}
	var kerr sarama.KError
	if stderrors.As(err, &kerr) {
		switch kerr {
		case sarama.ErrRequestTimedOut, sarama.ErrNotEnoughReplicas, sarama.ErrNotLeaderForPartition:
			return true
		}
	}
	return containsAny(err, []string{
		"temporary",
		"request timed out",
		"not enough replicas",
		"context deadline exceeded",
	})
}

// backendError wraps a failed Kafka call as a backend error carrying the
// topic and whether a retry could succeed.
func backendError(op, topic string, err error) error {
	if err == nil {
		return nil
	}
	return errors.New(errors.ErrCodeBackend, op).
		WithCause(err).
		WithDetail("operation", op).
		WithDetail("topic", topic).
		WithDetail("retryable", IsRetryableError(err))
}

func containsAny(err error, patterns []string) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
