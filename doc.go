// Package transync resolves translation keys by merging tables bundled with
// the application and overrides fetched from a remote store.
//
// # Resolution
//
// Every locale has at most one cached record: the bundled table with the last
// successfully fetched remote overrides laid on top. A record is fresh for
// Config.CacheExpiration. Lookups never wait on a stale record; they serve
// it and reload in the background. Only the very first lookup of a locale
// blocks, and for at most Config.NetworkTimeout.
//
//	bundled, _ := bundle.New(bundle.WithDir(localesFS))
//	svc, err := transync.New(
//		transync.WithBundle(bundled),
//		transync.WithSource(postgres.New(pool)),
//		transync.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	svc.T(ctx, "nav.home", "pl", "en")                                // "Strona główna"
//	svc.T(ctx, "greeting", "pl", "en", transync.M{"name": "Ann"})     // "Cześć Ann"
//	svc.T(ctx, "no.such.key", "pl", "en")                             // "no.such.key"
//
// The fallback chain is locale, then fallback, then the key itself, so a
// caller always gets something displayable.
//
// # Loading
//
// Concurrent loads of one locale share a single remote fetch. A failed or
// timed-out fetch never surfaces to callers: the record is rebuilt from the
// bundled table and any overrides retained from an earlier fetch.
//
// # Updates
//
// After a successful fetch, and with Config.EnableAutoUpdate set, the locale
// gets a recurring check every Config.UpdateCheckInterval. The check asks the
// source only for the newest update time and reloads when it is newer than
// the cached record.
//
// # Modes
//
// In ModeLocalOnly no remote calls are made; already merged overrides stay
// cached. SetMode(ctx, ModeHybrid) force-reloads the active locale.
package transync
