package transync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/transync/pkg/bundle"
	"github.com/dmitrymomot/transync/pkg/logger"
	"github.com/dmitrymomot/transync/pkg/remote"
)

// Service resolves translation keys against bundled tables merged with
// remote overrides. It is safe for concurrent use.
type Service struct {
	bundle *bundle.Store
	source remote.Source
	client *remote.Client

	cfg           atomic.Pointer[Config]
	active        atomic.Pointer[string]
	defaultLocale string
	extra         []string
	supported     map[string]struct{}

	store     *store
	flights   singleflight.Group
	scheduler *scheduler
	pending   sync.Map

	// lifecycle guards closed together with bg.Add.
	lifecycle sync.Mutex
	closed    atomic.Bool
	bg        sync.WaitGroup

	log       *slog.Logger
	onMissing func(locale, key string)
	now       func() time.Time
}

// New creates a Service. Nothing is loaded until the first lookup.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		defaultLocale: "en",
		store:         newStore(),
		log:           logger.NewNope(),
		now:           time.Now,
	}
	def := DefaultConfig()
	s.cfg.Store(&def)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if s.active.Load() == nil {
		l := s.defaultLocale
		s.active.Store(&l)
	}

	s.supported = make(map[string]struct{})
	for _, l := range s.bundle.Locales() {
		s.supported[l] = struct{}{}
	}
	for _, l := range s.extra {
		s.supported[l] = struct{}{}
	}

	s.log = s.log.With(slog.String("component", "transync"))
	if s.source != nil {
		s.client = remote.NewClient(s.source,
			remote.WithTimeout(s.config().NetworkTimeout),
			remote.WithLogger(s.log),
		)
	}
	s.scheduler = newScheduler(s.log, s.checkForUpdates)

	return s, nil
}

func (s *Service) config() Config {
	return *s.cfg.Load()
}

// T resolves key in locale, then in fallback, and finally returns key itself.
// Placeholders are substituted only in a resolved value. T never returns an
// empty string for a non-empty key.
func (s *Service) T(ctx context.Context, key, locale, fallback string, placeholders ...M) string {
	if key == "" {
		return ""
	}

	if v, ok := s.lookup(ctx, locale, key); ok {
		return Interpolate(v, placeholders...)
	}
	if fallback != "" && bundle.CanonicalLocale(fallback) != bundle.CanonicalLocale(locale) {
		if v, ok := s.lookup(ctx, fallback, key); ok {
			return Interpolate(v, placeholders...)
		}
	}

	s.missing(ctx, locale, key)
	return key
}

// TBatch resolves keys in locale with one cache check. Keys missing in locale
// fall back to the default locale, then to themselves.
func (s *Service) TBatch(ctx context.Context, keys []string, locale string) map[string]string {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out
	}

	rec, _ := s.ensure(ctx, locale)
	var fb *record
	fbLoaded := false

	for _, key := range keys {
		if rec != nil {
			if v, ok := rec.lookup(key); ok {
				out[key] = v
				continue
			}
		}
		if !fbLoaded {
			fbLoaded = true
			if bundle.CanonicalLocale(locale) != s.defaultLocale {
				fb, _ = s.ensure(ctx, s.defaultLocale)
			}
		}
		if fb != nil {
			if v, ok := fb.lookup(key); ok {
				out[key] = v
				continue
			}
		}
		if key != "" {
			s.missing(ctx, locale, key)
		}
		out[key] = key
	}
	return out
}

// Refresh force-reloads the given locales, or every supported locale when
// none is given. Remote failures degrade the reload and are not returned;
// explicitly named unsupported locales yield ErrUnsupportedLocale after the
// others have been refreshed.
func (s *Service) Refresh(ctx context.Context, locales ...string) error {
	if len(locales) == 0 {
		locales = s.Locales()
	}

	var unsupported []error
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, raw := range locales {
		locale, ok := s.resolve(raw)
		if !ok {
			unsupported = append(unsupported, fmt.Errorf("%w: %q", ErrUnsupportedLocale, raw))
			continue
		}
		g.Go(func() error {
			_, err := s.load(gctx, locale, true)
			return err
		})
	}

	return errors.Join(append(unsupported, g.Wait())...)
}

// UpdateCached overwrites one cached key without any network call. It
// returns false when the locale has not been loaded yet. A later full
// reload replaces the patched value.
func (s *Service) UpdateCached(key, locale, value string) bool {
	l, ok := s.resolve(locale)
	if !ok || key == "" {
		return false
	}
	return s.store.patch(l, key, value)
}

// SetMode switches between local-only and hybrid operation.
//
// Switching to local-only stops every update check but keeps already merged
// remote values. Switching to hybrid force-reloads the active locale.
func (s *Service) SetMode(ctx context.Context, mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	cfg := s.config()
	cfg.Mode = mode
	s.cfg.Store(&cfg)
	s.log.InfoContext(ctx, "mode changed", slog.String("mode", string(mode)))

	switch mode {
	case ModeLocalOnly:
		s.scheduler.stopAll()
	case ModeHybrid:
		if locale, ok := s.resolve(s.ActiveLocale()); ok {
			_, _ = s.load(ctx, locale, true)
		}
	}
	return nil
}

// Mode returns the current mode.
func (s *Service) Mode() Mode {
	return s.config().Mode
}

// SetConfig atomically replaces the configuration and brings the update
// checks in line with it. A mode change through SetConfig does not trigger
// a reload; use SetMode for that.
func (s *Service) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	prev := s.config()
	s.cfg.Store(&cfg)
	if s.client != nil {
		s.client.SetTimeout(cfg.NetworkTimeout)
	}

	switch {
	case cfg.Mode != ModeHybrid || !cfg.EnableAutoUpdate:
		s.scheduler.stopAll()
	case cfg.UpdateCheckInterval != prev.UpdateCheckInterval:
		s.scheduler.rearm(cfg.UpdateCheckInterval)
	}
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	return s.config()
}

// SetActiveLocale records the locale the user currently works in.
func (s *Service) SetActiveLocale(locale string) error {
	l, ok := s.resolve(locale)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	s.active.Store(&l)
	return nil
}

// ActiveLocale returns the locale set by WithActiveLocale or SetActiveLocale.
func (s *Service) ActiveLocale() string {
	return *s.active.Load()
}

// DefaultLocale returns the fallback locale used by TBatch.
func (s *Service) DefaultLocale() string {
	return s.defaultLocale
}

// Locales lists supported locales, default locale first, the rest sorted.
func (s *Service) Locales() []string {
	out := make([]string, 0, len(s.supported))
	for l := range s.supported {
		if l != s.defaultLocale {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	if _, ok := s.supported[s.defaultLocale]; ok {
		out = append([]string{s.defaultLocale}, out...)
	}
	return out
}

// Supported reports whether locale (or its base language) is supported and
// returns its canonical form.
func (s *Service) Supported(locale string) (string, bool) {
	return s.resolve(locale)
}

// Healthcheck reports the remote source's connectivity. Without a source,
// or in local-only mode, it always succeeds.
func (s *Service) Healthcheck(ctx context.Context) error {
	if s.client == nil || s.config().Mode != ModeHybrid {
		return nil
	}
	return s.client.Healthcheck(ctx)
}

// Close stops every update check, waits for background reloads and drops
// all cached records. Lookups after Close serve bundled tables only.
func (s *Service) Close() error {
	s.lifecycle.Lock()
	if s.closed.Swap(true) {
		s.lifecycle.Unlock()
		return nil
	}
	s.lifecycle.Unlock()

	s.scheduler.stopAll()
	s.bg.Wait()
	s.store.clear()
	return nil
}

func (s *Service) resolve(raw string) (string, bool) {
	l := bundle.CanonicalLocale(raw)
	if l == "" {
		return "", false
	}
	if _, ok := s.supported[l]; ok {
		return l, true
	}
	if base := bundle.BaseLocale(l); base != l {
		if _, ok := s.supported[base]; ok {
			return base, true
		}
	}
	return "", false
}

func (s *Service) lookup(ctx context.Context, locale, key string) (string, bool) {
	rec, ok := s.ensure(ctx, locale)
	if !ok {
		return "", false
	}
	return rec.lookup(key)
}

func (s *Service) missing(ctx context.Context, locale, key string) {
	s.log.DebugContext(ctx, "translation missing", slog.String("locale", locale), slog.String("key", key))
	if s.onMissing != nil {
		s.onMissing(locale, key)
	}
}
