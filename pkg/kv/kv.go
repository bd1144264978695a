package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Store is a typed key-value store with optional expiry.
//
// A zero ttl passed to Set means "no expiry"; a positive ttl expires the key
// after that duration.
type Store[V any] interface {
	// Get returns ErrNotFound for absent or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Keys lists live keys (without any backend prefix).
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Marshaler converts values for byte-oriented backends such as Redis.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON returns the default Marshaler backed by encoding/json.
func JSON[V any]() Marshaler[V] { return jsonMarshaler[V]{} }

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}
