package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/transync"
	"github.com/dmitrymomot/transync/pkg/db"
	"github.com/dmitrymomot/transync/pkg/logger"
	"github.com/dmitrymomot/transync/pkg/redis"
)

// Remote backends.
const (
	backendPostgres = "postgres"
	backendRedis    = "redis"
	backendNone     = "none"
)

var ErrUnknownBackend = errors.New("transyncd: unknown remote backend")

type config struct {
	Addr          string   `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`
	LogText       bool     `env:"LOG_TEXT" envDefault:"false"`
	Backend       string   `env:"TRANSYNC_REMOTE_BACKEND" envDefault:"none"`
	Migrate       bool     `env:"TRANSYNC_MIGRATE" envDefault:"false"`
	LocalesDir    string   `env:"TRANSYNC_LOCALES_DIR" envDefault:"./locales"`
	DefaultLocale string   `env:"TRANSYNC_DEFAULT_LOCALE" envDefault:"en"`
	ExtraLocales  []string `env:"TRANSYNC_LOCALES" envSeparator:","`
	Table         string   `env:"TRANSYNC_TABLE" envDefault:"translation_overrides"`

	Cache  transync.Config
	DB     db.Config
	Redis  redis.Config
	Sentry logger.SentryConfig
}

// loadConfig reads an optional .env file, then the process environment.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	var errs []error
	switch c.Backend {
	case backendPostgres:
		if c.DB.URL == "" {
			errs = append(errs, db.ErrEmptyConnectionURL)
		}
	case backendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, redis.ErrEmptyConnectionURL)
		}
	case backendNone:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	if c.LocalesDir != "" {
		if st, err := os.Stat(c.LocalesDir); err != nil || !st.IsDir() {
			errs = append(errs, fmt.Errorf("transyncd: locales dir %q is not a directory", c.LocalesDir))
		}
	}
	if err := c.Cache.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
