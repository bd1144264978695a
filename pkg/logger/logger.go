package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option configures New.
type Option func(*options)

type options struct {
	out        io.Writer
	level      slog.Level
	text       bool
	extractors []ContextExtractor
}

// WithLevel sets the minimum level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithLevelName parses "debug", "info", "warn" or "error".
// Unknown names keep the current level.
func WithLevelName(name string) Option {
	return func(o *options) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err == nil {
			o.level = l
		}
	}
}

// WithText switches from JSON to the human-readable text format.
func WithText() Option {
	return func(o *options) { o.text = true }
}

// WithOutput redirects output. Default: stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithExtractors adds context extractors, e.g. LocaleExtractor.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

// New creates a JSON logger on stdout at info level unless configured otherwise.
func New(opts ...Option) *slog.Logger {
	o := &options{out: os.Stdout, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	return slog.New(NewContextHandler(o.handler(), o.extractors...))
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level}
	if o.text {
		return slog.NewTextHandler(o.out, ho)
	}
	return slog.NewJSONHandler(o.out, ho)
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
