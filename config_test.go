package transync_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		cfg := transync.DefaultConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, time.Hour, cfg.CacheExpiration)
		assert.Equal(t, 5*time.Minute, cfg.UpdateCheckInterval)
		assert.True(t, cfg.EnableAutoUpdate)
		assert.Equal(t, 5*time.Second, cfg.NetworkTimeout)
		assert.Equal(t, transync.ModeHybrid, cfg.Mode)
	})

	t.Run("rejects non-positive durations", func(t *testing.T) {
		t.Parallel()
		cfg := transync.DefaultConfig()
		cfg.CacheExpiration = 0
		cfg.NetworkTimeout = -time.Second
		require.ErrorIs(t, cfg.Validate(), transync.ErrInvalidConfig)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()
		cfg := transync.DefaultConfig()
		cfg.Mode = "offline"
		err := cfg.Validate()
		require.ErrorIs(t, err, transync.ErrInvalidConfig)
		require.ErrorIs(t, err, transync.ErrInvalidMode)
	})
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]transync.Mode{
		"hybrid":     transync.ModeHybrid,
		"HYBRID":     transync.ModeHybrid,
		"local-only": transync.ModeLocalOnly,
		"local":      transync.ModeLocalOnly,
	} {
		got, err := transync.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := transync.ParseMode("remote")
	require.ErrorIs(t, err, transync.ErrInvalidMode)
}
