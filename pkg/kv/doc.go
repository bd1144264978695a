// Package kv provides a small typed key-value abstraction with an in-memory
// and a Redis implementation.
//
// It backs the key-value translation override source in pkg/remote:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	rows := kv.NewRedis[[]remote.Row](client, kv.WithPrefix[[]remote.Row]("transync:rows"))
//
// In tests and local development the same code runs against [NewMemory].
//
// Set with a zero ttl stores the value without expiry. Get reports absent or
// expired keys as [ErrNotFound].
package kv
