package kafka

import (
	"github.com/go-json-experiment/json"
)

// Message is a fixture for a topic. The topic is the target name it is
// inserted under.
type Message[K, V any] struct {
	Key     K
	Value   V
	Headers map[string]string
}

// Serializer encodes a key or value to the bytes written to Kafka.
type Serializer[T any] interface {
	Serialize(v T) ([]byte, error)
}

// SerializerFunc adapts a function to Serializer.
type SerializerFunc[T any] func(v T) ([]byte, error)

// Serialize calls f(v).
func (f SerializerFunc[T]) Serialize(v T) ([]byte, error) { return f(v) }

// Codec pairs the key and value serializers of a driver.
type Codec[K, V any] struct {
	Key   Serializer[K]
	Value Serializer[V]
}

// NewCodec returns a codec from explicit serializers.
func NewCodec[K, V any](key Serializer[K], value Serializer[V]) Codec[K, V] {
	return Codec[K, V]{Key: key, Value: value}
}

// AutoCodec returns a codec using AutoSerializer for both key and value.
func AutoCodec[K, V any]() Codec[K, V] {
	return Codec[K, V]{Key: AutoSerializer[K](), Value: AutoSerializer[V]()}
}

// JSONSerializer encodes values as JSON with deterministic map ordering.
func JSONSerializer[T any]() Serializer[T] {
	return SerializerFunc[T](func(v T) ([]byte, error) {
		return json.Marshal(v, json.Deterministic(true))
	})
}

// StringSerializer writes strings as their UTF-8 bytes.
func StringSerializer() Serializer[string] {
	return SerializerFunc[string](func(v string) ([]byte, error) {
		return []byte(v), nil
	})
}

// BytesSerializer writes byte slices unchanged.
func BytesSerializer() Serializer[[]byte] {
	return SerializerFunc[[]byte](func(v []byte) ([]byte, error) {
		return v, nil
	})
}

// AutoSerializer writes nil as a null payload, strings and byte slices as
// they are, and everything else as JSON.
func AutoSerializer[T any]() Serializer[T] {
	return SerializerFunc[T](func(v T) ([]byte, error) {
		switch t := any(v).(type) {
		case nil:
			return nil, nil
		case string:
			return []byte(t), nil
		case []byte:
			return t, nil
		}
		return json.Marshal(v, json.Deterministic(true))
	})
}
