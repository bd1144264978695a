// Package remote reads translation overrides from an external store.
//
// A [Source] knows how to list rows and report the latest modification time
// for a locale. [Client] wraps any Source with a per-call timeout, classifies
// failures as [ErrNetworkTimeout] or [ErrNetwork], and drops malformed rows
// (empty key, empty value, foreign locale) so one bad row never fails a fetch.
//
// Implementations:
//
//   - postgres.Source reads the translation_overrides table through pgx.
//   - [KVSource] keeps rows as JSON in a kv.Store, usually Redis.
//
// Example:
//
//	src := remote.NewRedisSource(redisClient, "transync")
//	client := remote.NewClient(src, remote.WithTimeout(3*time.Second))
//	overrides, err := client.FetchOverrides(ctx, "en")
package remote
