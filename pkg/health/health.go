package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/transync/pkg/logger"
)

const defaultTimeout = 5 * time.Second

// Status of a probe or of a single check.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc matches the Healthcheck closures of pkg/db, pkg/redis and the
// translation service.
type CheckFunc func(ctx context.Context) error

// Check is a named probe. A failing optional check degrades readiness
// without failing it: the translation service keeps serving bundled data
// while its remote store is down.
type Check struct {
	Name     string
	Fn       CheckFunc
	Optional bool
}

// Required builds a check whose failure makes the service unready.
func Required(name string, fn CheckFunc) Check {
	return Check{Name: name, Fn: fn}
}

// Optional builds a check whose failure only degrades readiness.
func Optional(name string, fn CheckFunc) Check {
	return Check{Name: name, Fn: fn, Optional: true}
}

// Response is the JSON body of a probe.
type Response struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Result is the outcome of one check.
type Result struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a probe.
type Option func(*config)

// WithTimeout bounds the whole probe. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes checks in parallel.
func Run(ctx context.Context, checks []Check, opts ...Option) *Response {
	cfg := &config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Result, len(checks))
		status  = StatusHealthy
	)

	for _, c := range checks {
		wg.Go(func() {
			start := time.Now()
			res := Result{Status: StatusHealthy}
			err := c.Fn(ctx)
			res.Duration = time.Since(start).String()

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				res.Status, res.Error = StatusUnhealthy, err.Error()
				if c.Optional {
					res.Status = StatusDegraded
				}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", c.Name),
					slog.Bool("optional", c.Optional),
					slog.String("error", err.Error()),
				)
				status = worse(status, res.Status)
			}
			results[c.Name] = res
		})
	}
	wg.Wait()

	return &Response{Status: status, Checks: results}
}

func worse(a, b string) string {
	rank := map[string]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
