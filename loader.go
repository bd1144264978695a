package transync

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/transync/pkg/logger"
)

// ensure returns the record for locale, loading it when absent. A stale
// record is returned as is and refreshed in the background.
func (s *Service) ensure(ctx context.Context, raw string) (*record, bool) {
	locale, ok := s.resolve(raw)
	if !ok {
		return nil, false
	}

	if rec, ok := s.store.get(locale); ok {
		if !rec.fresh(s.now(), s.config().CacheExpiration) {
			s.reloadAsync(locale)
		}
		return rec, true
	}

	rec, err := s.load(ctx, locale, false)
	if err != nil {
		return nil, false
	}
	return rec, true
}

// load returns a fresh record for locale, running at most one reload per
// locale at a time. Callers arriving during a reload share its result.
//
// If ctx ends while waiting, the current record (or a bundled-only one) is
// returned and the reload keeps running for the other callers.
func (s *Service) load(ctx context.Context, locale string, force bool) (*record, error) {
	if _, ok := s.supported[locale]; !ok {
		return nil, ErrUnsupportedLocale
	}

	if !force {
		if rec, ok := s.store.get(locale); ok && rec.fresh(s.now(), s.config().CacheExpiration) {
			return rec, nil
		}
	}

	ch := s.flights.DoChan(locale, func() (any, error) {
		return s.reload(context.WithoutCancel(ctx), locale, force), nil
	})

	select {
	case res := <-ch:
		return res.Val.(*record), nil
	case <-ctx.Done():
		if rec, ok := s.store.get(locale); ok {
			return rec, nil
		}
		table, _ := s.bundle.Table(locale)
		return newRecord(table, nil, s.now()), nil
	}
}

// reload builds and stores a new record. It must only run inside a flight.
func (s *Service) reload(ctx context.Context, locale string, force bool) *record {
	ctx = logger.WithLocale(ctx, locale)
	cfg := s.config()

	prev, hasPrev := s.store.get(locale)
	if !force && hasPrev && prev.fresh(s.now(), cfg.CacheExpiration) {
		return prev
	}

	table, _ := s.bundle.Table(locale)

	if s.closed.Load() {
		return newRecord(table, nil, s.now())
	}

	var snapshot map[string]string
	if hasPrev {
		snapshot = prev.remote
	}

	fetched := false
	if cfg.Mode == ModeHybrid && s.client != nil {
		start := time.Now()
		overrides, err := s.client.FetchOverrides(ctx, locale)
		if err != nil {
			s.log.WarnContext(ctx, "remote fetch failed, serving bundled translations",
				slog.String("locale", locale),
				slog.Bool("retained_overrides", snapshot != nil),
				slog.Duration("elapsed", time.Since(start)),
				slog.String("error", err.Error()),
			)
		} else {
			snapshot = overrides
			fetched = true
		}
	}

	rec := newRecord(table, snapshot, s.now())
	s.store.put(locale, rec)

	s.log.InfoContext(ctx, "translations loaded",
		slog.String("locale", locale),
		slog.Int("keys", len(rec.translations)),
		slog.String("provenance", string(rec.provenance)),
		slog.Bool("forced", force),
	)

	if cur := s.config(); fetched && cur.EnableAutoUpdate && cur.Mode == ModeHybrid && !s.closed.Load() {
		s.scheduler.arm(locale, cur.UpdateCheckInterval)
	}

	return rec
}

// reloadAsync starts one background reload per locale.
func (s *Service) reloadAsync(locale string) {
	if _, busy := s.pending.LoadOrStore(locale, struct{}{}); busy {
		return
	}

	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.closed.Load() {
		s.pending.Delete(locale)
		return
	}

	s.bg.Go(func() {
		defer s.pending.Delete(locale)
		_, _ = s.load(context.Background(), locale, false)
	})
}

// checkForUpdates is the scheduled tick: reload when the remote store holds
// rows newer than the cached record.
func (s *Service) checkForUpdates(locale string) {
	cfg := s.config()
	if cfg.Mode != ModeHybrid || s.client == nil || s.closed.Load() {
		return
	}

	ctx := logger.WithLocale(context.Background(), locale)
	latest, ok, err := s.client.LatestUpdate(ctx, locale)
	if err != nil {
		s.log.WarnContext(ctx, "update check failed", slog.String("locale", locale), slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}

	if rec, has := s.store.get(locale); has && !latest.After(rec.lastUpdated) {
		return
	}

	s.log.DebugContext(ctx, "remote translations changed", slog.String("locale", locale), slog.Time("remote_updated_at", latest))
	_, _ = s.load(ctx, locale, true)
}
