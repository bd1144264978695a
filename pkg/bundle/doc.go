// Package bundle holds the translation tables shipped with an application.
//
// Tables are loaded once at construction time, flattened into dot-path keys
// and never modified afterwards, which makes a Store safe for concurrent use
// without locking.
//
// # Loading
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	sub, _ := fs.Sub(localesFS, "locales")
//	store, err := bundle.New(
//		bundle.WithDir(sub),
//		bundle.WithDocument("en", map[string]any{
//			"nav": map[string]any{"home": "Home"},
//		}),
//	)
//
// File layouts: {locale}.{json,yaml,yml,toml} holds the whole document for a
// locale; {locale}/{namespace}.{ext} nests the document under the namespace.
//
// # Flattening
//
// [Flatten] is exported for callers that need the same key shape outside a
// Store, e.g. to diff a remote snapshot against bundled data:
//
//	bundle.Flatten(map[string]any{"nav": map[string]any{"home": "Home"}})
//	// map[string]string{"nav.home": "Home"}
//
// Locale codes are normalized with [CanonicalLocale] on the way in and out,
// so "EN", "en" and " en " address the same table.
package bundle
