package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/transync/pkg/health"
	"github.com/dmitrymomot/transync/pkg/logger"
)

const maxBodyBytes = 1 << 20

type handler struct {
	svc     Service
	log     *slog.Logger
	matcher language.Matcher
	tags    []string
}

type routerConfig struct {
	logger *slog.Logger
	checks []health.Check
}

// Option configures the router.
type Option func(*routerConfig)

// WithLogger sets the logger for access logs and panics.
func WithLogger(l *slog.Logger) Option {
	return func(c *routerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithChecks adds readiness checks served on /health/ready.
func WithChecks(checks ...health.Check) Option {
	return func(c *routerConfig) {
		c.checks = append(c.checks, checks...)
	}
}

// NewRouter builds the HTTP handler for svc.
func NewRouter(svc Service, opts ...Option) http.Handler {
	cfg := &routerConfig{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &handler{svc: svc, log: cfg.logger}
	h.matcher, h.tags = newMatcher(svc.Locales())

	r := chi.NewRouter()
	r.Use(RequestID, Recover(cfg.logger), AccessLog(cfg.logger))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.checks, health.WithLogger(cfg.logger)))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/translations/{locale}/{key}", h.translate)
		r.Put("/translations/{locale}/{key}", h.updateCached)
		r.Post("/translations/{locale}:batch", h.batch)
		r.Post("/refresh", h.refresh)
		r.Put("/mode", h.setMode)
		r.Get("/mode", h.mode)
		r.Get("/cache", h.cacheInfo)
		r.Get("/locale", h.negotiate)
	})

	return r
}
