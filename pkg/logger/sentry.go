package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting for the daemon.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// Warn sends warnings as searchable logs in addition to error events.
	Warn bool `env:"SENTRY_WARN" envDefault:"true"`
}

// NewWithSentry behaves like New and additionally forwards errors (and
// optionally warnings) to Sentry. Without a DSN, or when the SDK fails to
// initialise, it falls back to New.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	o := &options{out: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	local := o.handler()

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(local, o.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(local, o.extractors...))
	}

	logLevel := []slog.Level{slog.LevelError}
	if cfg.Warn {
		logLevel = []slog.Level{slog.LevelWarn, slog.LevelError}
	}
	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(fanout{local, remote}, o.extractors...))
}
