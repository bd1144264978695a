package kv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by Redis string keys.
// Keys are namespaced as "{prefix}:{key}" when a prefix is set.
type Redis[V any] struct {
	client    redis.UniversalClient
	prefix    string
	marshaler Marshaler[V]
}

// RedisOption configures a Redis store.
type RedisOption[V any] func(*Redis[V])

// WithPrefix namespaces every key. Trailing colons are trimmed.
func WithPrefix[V any](prefix string) RedisOption[V] {
	return func(r *Redis[V]) { r.prefix = strings.TrimRight(prefix, ":") }
}

// WithMarshaler replaces the default JSON encoding.
func WithMarshaler[V any](m Marshaler[V]) RedisOption[V] {
	return func(r *Redis[V]) {
		if m != nil {
			r.marshaler = m
		}
	}
}

// NewRedis wraps a client obtained from pkg/redis.Open.
// The client lifecycle stays with the caller.
func NewRedis[V any](client redis.UniversalClient, opts ...RedisOption[V]) *Redis[V] {
	r := &Redis[V]{client: client, marshaler: JSON[V]()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Keys walks the prefix with SCAN. Without a prefix it lists the whole
// database, which is only reasonable for a dedicated instance.
func (r *Redis[V]) Keys(ctx context.Context) ([]string, error) {
	pattern := "*"
	if r.prefix != "" {
		pattern = r.prefix + ":*"
	}

	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			keys = append(keys, r.strip(k))
		}
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// Close is a no-op; shut the client down with pkg/redis.Shutdown.
func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis[V]) strip(k string) string {
	if r.prefix == "" {
		return k
	}
	return strings.TrimPrefix(k, r.prefix+":")
}

var _ Store[any] = (*Redis[any])(nil)
