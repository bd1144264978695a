package transync

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/transync/pkg/bundle"
	"github.com/dmitrymomot/transync/pkg/remote"
)

// Option configures a Service.
type Option func(*Service) error

// WithBundle sets the bundled tables. Without it every locale starts empty.
func WithBundle(b *bundle.Store) Option {
	return func(s *Service) error {
		s.bundle = b
		return nil
	}
}

// WithSource enables remote overrides. Without a source the service behaves
// as if every remote fetch failed.
func WithSource(src remote.Source) Option {
	return func(s *Service) error {
		s.source = src
		return nil
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(s *Service) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.cfg.Store(&cfg)
		return nil
	}
}

// WithMode overrides only the mode of the current config.
func WithMode(m Mode) Option {
	return func(s *Service) error {
		if !m.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidMode, m)
		}
		cfg := s.config()
		cfg.Mode = m
		s.cfg.Store(&cfg)
		return nil
	}
}

// WithLocales adds supported locales that have no bundled table, so their
// remote overrides are still loaded.
func WithLocales(locales ...string) Option {
	return func(s *Service) error {
		for _, l := range locales {
			l = bundle.CanonicalLocale(l)
			if l == "" {
				return bundle.ErrEmptyLocale
			}
			s.extra = append(s.extra, l)
		}
		return nil
	}
}

// WithDefaultLocale sets the fallback locale for TBatch and the initial
// active locale. Default: "en".
func WithDefaultLocale(locale string) Option {
	return func(s *Service) error {
		l := bundle.CanonicalLocale(locale)
		if l == "" {
			return bundle.ErrEmptyLocale
		}
		s.defaultLocale = l
		return nil
	}
}

// WithActiveLocale sets the locale SetMode(ModeHybrid) reloads, typically
// the user's persisted preference. Default: the default locale.
func WithActiveLocale(locale string) Option {
	return func(s *Service) error {
		l := bundle.CanonicalLocale(locale)
		if l == "" {
			return bundle.ErrEmptyLocale
		}
		s.active.Store(&l)
		return nil
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) error {
		if l != nil {
			s.log = l
		}
		return nil
	}
}

// WithMissingKeyHandler is called whenever a key resolves to itself.
func WithMissingKeyHandler(fn func(locale, key string)) Option {
	return func(s *Service) error {
		s.onMissing = fn
		return nil
	}
}

// WithClock replaces time.Now for freshness decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}
