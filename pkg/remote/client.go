package remote

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/transync/pkg/logger"
)

// DefaultTimeout bounds every call to the source unless overridden.
const DefaultTimeout = 5 * time.Second

// Client wraps a Source with a per-call timeout, error classification and
// row validation.
type Client struct {
	src     Source
	logger  *slog.Logger
	timeout atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-call deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.SetTimeout(d) }
}

// WithLogger sets the logger used for skipped-row reports.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for src.
func NewClient(src Source, opts ...ClientOption) *Client {
	c := &Client{src: src, logger: logger.NewNope()}
	c.timeout.Store(int64(DefaultTimeout))
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTimeout replaces the per-call deadline. Safe for concurrent use.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout.Store(int64(d))
	}
}

// Timeout returns the current per-call deadline.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.timeout.Load())
}

// FetchOverrides returns the valid overrides for locale as key -> value.
//
// Rows with an empty key, an empty value or a different locale are skipped.
// When a key appears more than once the most recently updated row wins.
func (c *Client) FetchOverrides(ctx context.Context, locale string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	rows, err := c.src.Rows(ctx, locale)
	if err != nil {
		return nil, classify(ctx, err)
	}

	want := canonical(locale)
	out := make(map[string]string, len(rows))
	seen := make(map[string]time.Time, len(rows))
	skipped := 0

	for _, r := range rows {
		if err := validate(r, want); err != nil {
			skipped++
			continue
		}
		if at, ok := seen[r.Key]; ok && r.UpdatedAt.Before(at) {
			continue
		}
		seen[r.Key] = r.UpdatedAt
		out[r.Key] = r.Value
	}

	if skipped > 0 {
		c.logger.DebugContext(ctx, "skipped remote rows",
			slog.String("locale", locale),
			slog.Int("skipped", skipped),
			slog.Int("accepted", len(out)),
			slog.String("reason", ErrMalformedRow.Error()),
		)
	}

	return out, nil
}

// LatestUpdate returns the newest modification time for locale.
// The bool is false when the source holds no rows for it.
func (c *Client) LatestUpdate(ctx context.Context, locale string) (time.Time, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	at, ok, err := c.src.LatestUpdate(ctx, locale)
	if err != nil {
		return time.Time{}, false, classify(ctx, err)
	}
	return at, ok, nil
}

// Healthcheck pings the source when it supports it.
// Compatible with pkg/health checks.
func (c *Client) Healthcheck(ctx context.Context) error {
	p, ok := c.src.(Pinger)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return classify(ctx, err)
	}
	return nil
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrNetworkTimeout, err)
	}
	return errors.Join(ErrNetwork, err)
}

func validate(r Row, locale string) error {
	switch {
	case r.Key == "":
		return errors.Join(ErrMalformedRow, errors.New("empty key"))
	case r.Value == "":
		return errors.Join(ErrMalformedRow, errors.New("empty value"))
	case canonical(r.Locale) != locale:
		return errors.Join(ErrMalformedRow, errors.New("locale mismatch"))
	}
	return nil
}

func canonical(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}
