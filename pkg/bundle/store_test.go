package bundle_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync/pkg/bundle"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New()
		require.NoError(t, err)
		assert.Empty(t, s.Locales())
		assert.False(t, s.Has("en"))
	})

	t.Run("loads documents and tables", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New(
			bundle.WithDocument("en", map[string]any{
				"nav": map[string]any{"home": "Home"},
			}),
			bundle.WithTable("EN", map[string]string{"title": "Title"}),
			bundle.WithTable("pl", map[string]string{"title": "Tytuł"}),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "pl"}, s.Locales())
		assert.Equal(t, 2, s.Len("en"))

		v, ok := s.Lookup("en", "nav.home")
		require.True(t, ok)
		assert.Equal(t, "Home", v)

		_, ok = s.Lookup("en", "missing")
		assert.False(t, ok)
		_, ok = s.Lookup("de", "title")
		assert.False(t, ok)
	})

	t.Run("later options overwrite earlier keys", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New(
			bundle.WithTable("en", map[string]string{"a": "1"}),
			bundle.WithTable("en", map[string]string{"a": "2"}),
		)
		require.NoError(t, err)
		v, _ := s.Lookup("en", "a")
		assert.Equal(t, "2", v)
	})

	t.Run("rejects empty locale", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.New(bundle.WithTable("  ", map[string]string{"a": "1"}))
		require.ErrorIs(t, err, bundle.ErrEmptyLocale)
	})

	t.Run("input table is copied", func(t *testing.T) {
		t.Parallel()
		in := map[string]string{"a": "1"}
		s, err := bundle.New(bundle.WithTable("en", in))
		require.NoError(t, err)
		in["a"] = "changed"
		v, _ := s.Lookup("en", "a")
		assert.Equal(t, "1", v)
	})

	t.Run("nil store is empty", func(t *testing.T) {
		t.Parallel()
		var s *bundle.Store
		assert.False(t, s.Has("en"))
		assert.Nil(t, s.Locales())
	})
}

func TestLoaders(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.json":        {Data: []byte(`{"nav":{"home":"Home"}}`)},
		"en/errors.yaml": {Data: []byte("required: Required\nlength:\n  min: Too short\n")},
		"pl.toml":        {Data: []byte("[nav]\nhome = \"Strona główna\"\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	t.Run("json dir", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New(bundle.WithJSONDir(fsys))
		require.NoError(t, err)
		assert.Equal(t, []string{"en"}, s.Locales())
		v, _ := s.Lookup("en", "nav.home")
		assert.Equal(t, "Home", v)
	})

	t.Run("yaml dir with namespace", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New(bundle.WithYAMLDir(fsys))
		require.NoError(t, err)
		v, _ := s.Lookup("en", "errors.required")
		assert.Equal(t, "Required", v)
		v, _ = s.Lookup("en", "errors.length.min")
		assert.Equal(t, "Too short", v)
	})

	t.Run("toml dir", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New(bundle.WithTOMLDir(fsys))
		require.NoError(t, err)
		v, _ := s.Lookup("pl", "nav.home")
		assert.Equal(t, "Strona główna", v)
	})

	t.Run("mixed dir", func(t *testing.T) {
		t.Parallel()
		s, err := bundle.New(bundle.WithDir(fsys))
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "pl"}, s.Locales())
		assert.Equal(t, 3, s.Len("en"))
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.New(bundle.WithJSONDir(fstest.MapFS{
			"en.json": {Data: []byte(`{broken`)},
		}))
		require.ErrorIs(t, err, bundle.ErrInvalidFile)
	})

	t.Run("nested too deep", func(t *testing.T) {
		t.Parallel()
		_, err := bundle.New(bundle.WithJSONDir(fstest.MapFS{
			"en/a/b.json": {Data: []byte(`{}`)},
		}))
		require.ErrorIs(t, err, bundle.ErrInvalidFile)
	})
}

func TestCanonicalLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{" en ", "en"},
		{"en-us", "en-US"},
		{"zh_CN", "zh-CN"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bundle.CanonicalLocale(tt.in))
		})
	}

	assert.Equal(t, "en", bundle.BaseLocale("en-US"))
	assert.Equal(t, "pl", bundle.BaseLocale("pl"))
}
