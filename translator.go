package transync

import "context"

// Translator binds a Service to one locale and fallback.
type Translator struct {
	svc      *Service
	locale   string
	fallback string
}

// NewTranslator returns a Translator for locale. An empty fallback uses the
// service's default locale.
func NewTranslator(svc *Service, locale, fallback string) *Translator {
	if svc == nil {
		panic("transync: service is not provided")
	}
	if fallback == "" {
		fallback = svc.DefaultLocale()
	}
	return &Translator{svc: svc, locale: locale, fallback: fallback}
}

// T resolves key with the bound locale and fallback.
func (t *Translator) T(ctx context.Context, key string, placeholders ...M) string {
	return t.svc.T(ctx, key, t.locale, t.fallback, placeholders...)
}

// TranslateMessage resolves key with a single placeholder map.
func (t *Translator) TranslateMessage(ctx context.Context, key string, values map[string]any) string {
	return t.svc.T(ctx, key, t.locale, t.fallback, values)
}

// Locale returns the bound locale.
func (t *Translator) Locale() string {
	return t.locale
}

// Fallback returns the bound fallback locale.
func (t *Translator) Fallback() string {
	return t.fallback
}
