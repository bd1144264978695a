package httpapi

import (
	"context"

	"github.com/dmitrymomot/transync"
)

// Service is the subset of *transync.Service the handlers use.
type Service interface {
	T(ctx context.Context, key, locale, fallback string, placeholders ...transync.M) string
	TBatch(ctx context.Context, keys []string, locale string) map[string]string
	UpdateCached(key, locale, value string) bool
	Refresh(ctx context.Context, locales ...string) error
	SetMode(ctx context.Context, mode transync.Mode) error
	Mode() transync.Mode
	CacheInfo() transync.CacheInfo
	Locales() []string
	DefaultLocale() string
	Supported(locale string) (string, bool)
}

var _ Service = (*transync.Service)(nil)
