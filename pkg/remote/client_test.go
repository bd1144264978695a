package remote_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync/pkg/remote"
)

type fakeSource struct {
	rows   []remote.Row
	latest time.Time
	err    error
	delay  time.Duration
	calls  atomic.Int32
	pinged atomic.Bool
}

func (f *fakeSource) wait(ctx context.Context) error {
	f.calls.Add(1)
	if f.delay == 0 {
		return f.err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(f.delay):
		return f.err
	}
}

func (f *fakeSource) Rows(ctx context.Context, _ string) ([]remote.Row, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.rows, nil
}

func (f *fakeSource) LatestUpdate(ctx context.Context, _ string) (time.Time, bool, error) {
	if err := f.wait(ctx); err != nil {
		return time.Time{}, false, err
	}
	return f.latest, !f.latest.IsZero(), nil
}

func (f *fakeSource) Ping(ctx context.Context) error {
	f.pinged.Store(true)
	return f.wait(ctx)
}

func TestClient_FetchOverrides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns valid rows as map", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{rows: []remote.Row{
			{Key: "a", Locale: "en", Value: "A", UpdatedAt: t0},
			{Key: "b", Locale: "en", Value: "B", UpdatedAt: t0},
		}}
		got, err := remote.NewClient(src).FetchOverrides(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "A", "b": "B"}, got)
	})

	t.Run("skips malformed rows", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{rows: []remote.Row{
			{Key: "", Locale: "en", Value: "no key"},
			{Key: "empty", Locale: "en", Value: ""},
			{Key: "foreign", Locale: "pl", Value: "Obcy"},
			{Key: "ok", Locale: "EN", Value: "OK"},
		}}
		got, err := remote.NewClient(src).FetchOverrides(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"ok": "OK"}, got)
	})

	t.Run("newest duplicate wins", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{rows: []remote.Row{
			{Key: "a", Locale: "en", Value: "new", UpdatedAt: t0.Add(time.Hour)},
			{Key: "a", Locale: "en", Value: "old", UpdatedAt: t0},
		}}
		got, err := remote.NewClient(src).FetchOverrides(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "new", got["a"])
	})

	t.Run("empty source yields empty map", func(t *testing.T) {
		t.Parallel()
		got, err := remote.NewClient(&fakeSource{}).FetchOverrides(ctx, "en")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("source error maps to ErrNetwork", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection refused")
		_, err := remote.NewClient(&fakeSource{err: boom}).FetchOverrides(ctx, "en")
		require.ErrorIs(t, err, remote.ErrNetwork)
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, remote.ErrNetworkTimeout)
	})

	t.Run("slow source maps to ErrNetworkTimeout", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{delay: time.Second}
		c := remote.NewClient(src, remote.WithTimeout(20*time.Millisecond))

		start := time.Now()
		_, err := c.FetchOverrides(ctx, "en")
		require.ErrorIs(t, err, remote.ErrNetworkTimeout)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})
}

func TestClient_LatestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reports latest", func(t *testing.T) {
		t.Parallel()
		at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		got, ok, err := remote.NewClient(&fakeSource{latest: at}).LatestUpdate(ctx, "en")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, at.Equal(got))
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		_, ok, err := remote.NewClient(&fakeSource{}).LatestUpdate(ctx, "en")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		c := remote.NewClient(&fakeSource{delay: time.Second}, remote.WithTimeout(10*time.Millisecond))
		_, _, err := c.LatestUpdate(ctx, "en")
		require.ErrorIs(t, err, remote.ErrNetworkTimeout)
	})
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	c := remote.NewClient(&fakeSource{})
	assert.Equal(t, remote.DefaultTimeout, c.Timeout())

	c.SetTimeout(time.Second)
	assert.Equal(t, time.Second, c.Timeout())

	c.SetTimeout(0)
	assert.Equal(t, time.Second, c.Timeout())
}

func TestClient_Healthcheck(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	require.NoError(t, remote.NewClient(src).Healthcheck(context.Background()))
	assert.True(t, src.pinged.Load())

	boom := errors.New("down")
	err := remote.NewClient(&fakeSource{err: boom}).Healthcheck(context.Background())
	require.ErrorIs(t, err, remote.ErrNetwork)
}
