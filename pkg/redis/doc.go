// Package redis opens the Redis connection used by the key-value override
// source.
//
//	client, err := redis.Open(ctx, redis.Config{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	src := remote.NewRedisSource(client, "transync")
//
// [Open] pings the server before returning and retries with linear backoff
// while it is unreachable. [Healthcheck] and [Shutdown] plug into the
// daemon's readiness probe and shutdown hooks.
package redis
