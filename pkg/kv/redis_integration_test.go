//go:build integration

package kv_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync/pkg/kv"
	"github.com/dmitrymomot/transync/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url})
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})

	return client
}

func TestRedisIntegration(t *testing.T) {
	ctx := context.Background()
	client := newTestRedisClient(t)
	s := kv.NewRedis(client, kv.WithPrefix[[]string]("it-kv"))

	_, err := s.Get(ctx, "en")
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "en", []string{"a", "b"}, time.Minute))
	require.NoError(t, s.Set(ctx, "pl", []string{"c"}, 0))

	v, err := s.Get(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "pl"}, keys)

	require.NoError(t, s.Delete(ctx, "en"))
	_, err = s.Get(ctx, "en")
	require.ErrorIs(t, err, kv.ErrNotFound)
}
