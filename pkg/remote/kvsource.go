package remote

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/transync/pkg/kv"
	"github.com/dmitrymomot/transync/pkg/redis"
)

// KVSource keeps overrides in a key-value store: one JSON row list per
// locale plus a separate latest-update marker, so update checks never pull
// the full row set.
//
// With the Redis backend and prefix "transync" the layout is
//
//	transync:rows:{locale}     JSON []Row
//	transync:updated:{locale}  JSON timestamp
type KVSource struct {
	rows    kv.Store[[]Row]
	updated kv.Store[time.Time]
	ping    func(context.Context) error
}

// NewKVSource builds a source over two stores.
func NewKVSource(rows kv.Store[[]Row], updated kv.Store[time.Time]) *KVSource {
	return &KVSource{rows: rows, updated: updated}
}

// NewRedisSource builds a KVSource on a Redis client from pkg/redis.Open.
func NewRedisSource(client goredis.UniversalClient, prefix string) *KVSource {
	if prefix == "" {
		prefix = "transync"
	}
	s := NewKVSource(
		kv.NewRedis(client, kv.WithPrefix[[]Row](prefix+":rows")),
		kv.NewRedis(client, kv.WithPrefix[time.Time](prefix+":updated")),
	)
	s.ping = redis.Healthcheck(client)
	return s
}

// NewMemorySource builds an in-process KVSource, for development and tests.
func NewMemorySource() *KVSource {
	return NewKVSource(kv.NewMemory[[]Row](), kv.NewMemory[time.Time]())
}

func (s *KVSource) Rows(ctx context.Context, locale string) ([]Row, error) {
	rows, err := s.rows.Get(ctx, locale)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	return rows, err
}

func (s *KVSource) LatestUpdate(ctx context.Context, locale string) (time.Time, bool, error) {
	at, err := s.updated.Get(ctx, locale)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return time.Time{}, false, nil
	case err != nil:
		return time.Time{}, false, err
	}
	return at, true, nil
}

// Publish replaces the overrides for locale and bumps the update marker to
// the newest row timestamp. Rows without a timestamp are stamped with now.
// Publishing an empty set removes the locale.
func (s *KVSource) Publish(ctx context.Context, locale string, rows []Row) error {
	if len(rows) == 0 {
		return errors.Join(s.rows.Delete(ctx, locale), s.updated.Delete(ctx, locale))
	}

	now := time.Now().UTC()
	stamped := make([]Row, len(rows))
	for i, r := range rows {
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
		}
		stamped[i] = r
	}
	latest := slices.MaxFunc(stamped, func(a, b Row) int {
		return cmp.Compare(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	}).UpdatedAt

	if err := s.rows.Set(ctx, locale, stamped, 0); err != nil {
		return err
	}
	return s.updated.Set(ctx, locale, latest, 0)
}

// Locales lists the locales that currently hold overrides.
func (s *KVSource) Locales(ctx context.Context) ([]string, error) {
	return s.rows.Keys(ctx)
}

func (s *KVSource) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

var (
	_ Source = (*KVSource)(nil)
	_ Pinger = (*KVSource)(nil)
)
