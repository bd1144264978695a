package transync_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync"
	"github.com/dmitrymomot/transync/pkg/bundle"
	"github.com/dmitrymomot/transync/pkg/remote"
)

var errUnavailable = errors.New("connection refused")

type fakeSource struct {
	mu     sync.Mutex
	rows   map[string][]remote.Row
	latest map[string]time.Time

	fail    atomic.Bool
	delay   atomic.Int64
	fetches atomic.Int32
	checks  atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{rows: map[string][]remote.Row{}, latest: map[string]time.Time{}}
}

func (f *fakeSource) set(locale string, at time.Time, kv ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]remote.Row, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		rows = append(rows, remote.Row{Key: kv[i], Locale: locale, Value: kv[i+1], UpdatedAt: at})
	}
	f.rows[locale] = rows
	f.latest[locale] = at
}

func (f *fakeSource) pause(ctx context.Context) error {
	d := time.Duration(f.delay.Load())
	if d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	if f.fail.Load() {
		return errUnavailable
	}
	return nil
}

func (f *fakeSource) Rows(ctx context.Context, locale string) ([]remote.Row, error) {
	f.fetches.Add(1)
	if err := f.pause(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remote.Row(nil), f.rows[locale]...), nil
}

func (f *fakeSource) LatestUpdate(ctx context.Context, locale string) (time.Time, bool, error) {
	f.checks.Add(1)
	if err := f.pause(ctx); err != nil {
		return time.Time{}, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	at, ok := f.latest[locale]
	return at, ok, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testBundle(t *testing.T) *bundle.Store {
	t.Helper()
	b, err := bundle.New(
		bundle.WithDocument("en", map[string]any{
			"nav": map[string]any{
				"home":  "Home",
				"about": "About",
			},
			"greeting": "Hello {{name}}",
			"only_en":  "Only English",
		}),
		bundle.WithDocument("zh", map[string]any{
			"nav": map[string]any{"home": "首页"},
		}),
		bundle.WithDocument("pl", map[string]any{
			"nav":      map[string]any{"home": "Strona główna"},
			"greeting": "Cześć {{name}}",
		}),
	)
	require.NoError(t, err)
	return b
}

func testConfig() transync.Config {
	cfg := transync.DefaultConfig()
	cfg.EnableAutoUpdate = false
	cfg.NetworkTimeout = time.Second
	return cfg
}

func newService(t *testing.T, opts ...transync.Option) *transync.Service {
	t.Helper()
	base := []transync.Option{
		transync.WithBundle(testBundle(t)),
		transync.WithConfig(testConfig()),
	}
	svc, err := transync.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}
