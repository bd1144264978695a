// Command transyncd serves translations over HTTP, merging bundled locale
// files with remote overrides from Postgres or Redis.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/transync"
	"github.com/dmitrymomot/transync/internal/httpapi"
	"github.com/dmitrymomot/transync/pkg/bundle"
	"github.com/dmitrymomot/transync/pkg/db"
	"github.com/dmitrymomot/transync/pkg/health"
	"github.com/dmitrymomot/transync/pkg/logger"
	"github.com/dmitrymomot/transync/pkg/redis"
	"github.com/dmitrymomot/transync/pkg/remote"
	"github.com/dmitrymomot/transync/pkg/remote/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := []logger.Option{
		logger.WithLevelName(cfg.LogLevel),
		logger.WithExtractors(logger.RequestIDExtractor(), logger.LocaleExtractor()),
	}
	if cfg.LogText {
		opts = append(opts, logger.WithText())
	}
	log := logger.NewWithSentry(cfg.Sentry, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		hooks  []httpapi.ShutdownHook
		checks []health.Check
		src    remote.Source
	)

	switch cfg.Backend {
	case backendPostgres:
		pool, err := db.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		hooks = append(hooks, db.Shutdown(pool))
		checks = append(checks, health.Required("database", db.Healthcheck(pool)))

		if cfg.Migrate {
			if err := postgres.Migrate(ctx, pool, cfg.DB.MigrationsTable, log); err != nil {
				return err
			}
		}
		src = postgres.New(pool, postgres.WithTable(cfg.Table))

	case backendRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		hooks = append(hooks, redis.Shutdown(client))
		checks = append(checks, health.Required("redis", redis.Healthcheck(client)))
		src = remote.NewRedisSource(client, cfg.Redis.Prefix)
	}

	b, err := bundle.New(bundle.WithDir(os.DirFS(cfg.LocalesDir)))
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}

	svcOpts := []transync.Option{
		transync.WithBundle(b),
		transync.WithConfig(cfg.Cache),
		transync.WithDefaultLocale(cfg.DefaultLocale),
		transync.WithLocales(cfg.ExtraLocales...),
		transync.WithLogger(log),
		transync.WithMissingKeyHandler(func(locale, key string) {
			log.Debug("missing translation", slog.String("locale", locale), slog.String("key", key))
		}),
	}
	if src != nil {
		svcOpts = append(svcOpts, transync.WithSource(src))
	}
	svc, err := transync.New(svcOpts...)
	if err != nil {
		return err
	}
	checks = append(checks, health.Optional("remote", svc.Healthcheck))

	log.Info("translations loaded",
		slog.Any("locales", svc.Locales()),
		slog.String("backend", cfg.Backend),
		slog.String("mode", string(svc.Mode())),
	)

	// Service first: its background reloads may still use the pool.
	hooks = append([]httpapi.ShutdownHook{func(context.Context) error { return svc.Close() }}, hooks...)
	hooks = append(hooks, func(context.Context) error {
		sentry.Flush(2 * time.Second)
		return nil
	})

	return httpapi.Serve(ctx,
		httpapi.NewRouter(svc, httpapi.WithLogger(log), httpapi.WithChecks(checks...)),
		httpapi.WithAddress(cfg.Addr),
		httpapi.WithServerLogger(log),
		httpapi.WithShutdownHook(hooks...),
	)
}
