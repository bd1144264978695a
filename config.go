package transync

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mode selects whether remote overrides are consulted at all.
type Mode string

const (
	// ModeLocalOnly serves bundled tables (and any overrides already cached).
	ModeLocalOnly Mode = "local-only"
	// ModeHybrid merges remote overrides on top of bundled tables.
	ModeHybrid Mode = "hybrid"
)

// ParseMode accepts "local-only"/"local" and "hybrid", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeLocalOnly), "local", "local_only":
		return ModeLocalOnly, nil
	case string(ModeHybrid):
		return ModeHybrid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeLocalOnly || m == ModeHybrid
}

// Config is replaced as a whole, never field by field.
type Config struct {
	// CacheExpiration is the freshness window of a cached locale.
	// Stale records are still served while a reload runs in the background.
	CacheExpiration time.Duration `env:"TRANSYNC_CACHE_EXPIRATION" envDefault:"1h" json:"cache_expiration"`

	// UpdateCheckInterval is the cadence of the per-locale remote update check.
	UpdateCheckInterval time.Duration `env:"TRANSYNC_UPDATE_CHECK_INTERVAL" envDefault:"5m" json:"update_check_interval"`

	// EnableAutoUpdate arms the update check after each successful remote fetch.
	EnableAutoUpdate bool `env:"TRANSYNC_AUTO_UPDATE" envDefault:"true" json:"enable_auto_update"`

	// NetworkTimeout bounds every remote call.
	NetworkTimeout time.Duration `env:"TRANSYNC_NETWORK_TIMEOUT" envDefault:"5s" json:"network_timeout"`

	Mode Mode `env:"TRANSYNC_MODE" envDefault:"hybrid" json:"mode"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		CacheExpiration:     time.Hour,
		UpdateCheckInterval: 5 * time.Minute,
		EnableAutoUpdate:    true,
		NetworkTimeout:      5 * time.Second,
		Mode:                ModeHybrid,
	}
}

// Validate checks durations and mode.
func (c Config) Validate() error {
	var errs []error
	if c.CacheExpiration <= 0 {
		errs = append(errs, errors.New("cache expiration must be positive"))
	}
	if c.UpdateCheckInterval <= 0 {
		errs = append(errs, errors.New("update check interval must be positive"))
	}
	if c.NetworkTimeout <= 0 {
		errs = append(errs, errors.New("network timeout must be positive"))
	}
	if !c.Mode.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
