package logger

import (
	"context"
	"log/slog"
)

type (
	localeKey    struct{}
	requestIDKey struct{}
)

// WithLocale stores the locale being resolved in ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// WithRequestID stores a request ID in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LocaleExtractor adds a "locale" attribute when ctx carries one.
func LocaleExtractor() ContextExtractor {
	return stringExtractor(localeKey{}, "locale")
}

// RequestIDExtractor adds a "request_id" attribute when ctx carries one.
func RequestIDExtractor() ContextExtractor {
	return stringExtractor(requestIDKey{}, "request_id")
}

func stringExtractor(key any, attr string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(key).(string)
		if !ok || v == "" {
			return slog.Attr{}, false
		}
		return slog.String(attr, v), true
	}
}
