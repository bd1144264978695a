package bundle

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Store holds the bundled translation tables, one flat map per locale.
// It is immutable after New returns and safe for concurrent use.
type Store struct {
	tables map[string]map[string]string
}

// Option configures the Store during construction.
type Option func(*Store) error

// New builds a Store from the given options.
// Later options overwrite keys loaded by earlier ones for the same locale.
func New(opts ...Option) (*Store, error) {
	s := &Store{tables: make(map[string]map[string]string)}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return s, nil
}

// WithDocument adds a nested document for locale. It is flattened on load.
func WithDocument(locale string, doc map[string]any) Option {
	return func(s *Store) error {
		return s.add(locale, Flatten(doc))
	}
}

// WithTable adds an already flat table for locale.
func WithTable(locale string, table map[string]string) Option {
	return func(s *Store) error {
		return s.add(locale, table)
	}
}

func (s *Store) add(locale string, table map[string]string) error {
	locale = CanonicalLocale(locale)
	if locale == "" {
		return ErrEmptyLocale
	}

	dst, ok := s.tables[locale]
	if !ok {
		dst = make(map[string]string, len(table))
		s.tables[locale] = dst
	}
	maps.Copy(dst, table)

	return nil
}

// Table returns the flat table for locale.
// The returned map is shared and must not be modified.
func (s *Store) Table(locale string) (map[string]string, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.tables[CanonicalLocale(locale)]
	return t, ok
}

// Lookup returns the bundled value for key in locale.
func (s *Store) Lookup(locale, key string) (string, bool) {
	t, ok := s.Table(locale)
	if !ok {
		return "", false
	}
	v, ok := t[key]
	return v, ok
}

// Has reports whether any table was loaded for locale.
func (s *Store) Has(locale string) bool {
	_, ok := s.Table(locale)
	return ok
}

// Locales returns the loaded locales in sorted order.
func (s *Store) Locales() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.tables))
}

// Len returns the number of keys bundled for locale.
func (s *Store) Len(locale string) int {
	t, _ := s.Table(locale)
	return len(t)
}

// CanonicalLocale normalizes a locale code to its BCP 47 form
// ("EN" -> "en", "zh_cn" -> "zh-CN"). Codes that do not parse are
// returned trimmed and lowercased so lookups stay deterministic.
func CanonicalLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return strings.ToLower(locale)
	}
	return tag.String()
}

// BaseLocale strips the region or script from a canonical locale
// ("en-US" -> "en"). Returns the input unchanged if there is none.
func BaseLocale(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}
