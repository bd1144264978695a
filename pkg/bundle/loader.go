package bundle

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type unmarshalFunc func(data []byte, v any) error

// WithJSONDir loads translations from JSON files in fsys.
//
// Two layouts are accepted and may be mixed:
//
//	en.json            whole document for "en"
//	en/common.json     document nested under the "common" key for "en"
func WithJSONDir(fsys fs.FS) Option {
	return func(s *Store) error {
		return loadDir(s, fsys, []string{".json"}, json.Unmarshal)
	}
}

// WithYAMLDir loads translations from .yaml or .yml files in fsys.
// The layout is the same as for WithJSONDir.
func WithYAMLDir(fsys fs.FS) Option {
	return func(s *Store) error {
		return loadDir(s, fsys, []string{".yaml", ".yml"}, yaml.Unmarshal)
	}
}

// WithTOMLDir loads translations from .toml files in fsys.
// The layout is the same as for WithJSONDir.
func WithTOMLDir(fsys fs.FS) Option {
	return func(s *Store) error {
		return loadDir(s, fsys, []string{".toml"}, toml.Unmarshal)
	}
}

// WithDir loads JSON, YAML and TOML files from fsys in a single pass.
func WithDir(fsys fs.FS) Option {
	return func(s *Store) error {
		for _, opt := range []Option{WithJSONDir(fsys), WithYAMLDir(fsys), WithTOMLDir(fsys)} {
			if err := opt(s); err != nil {
				return err
			}
		}
		return nil
	}
}

func loadDir(s *Store, fsys fs.FS, exts []string, unmarshal unmarshalFunc) error {
	return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(filePath))
		matches := false
		for _, e := range exts {
			if ext == e {
				matches = true
				break
			}
		}
		if !matches {
			return nil
		}

		locale, namespace, err := splitPath(filePath)
		if err != nil {
			return err
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var doc map[string]any
		if err := unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		return s.add(locale, Prefix(namespace, Flatten(doc)))
	})
}

// splitPath derives locale and namespace from a file path.
// "en.json" -> ("en", ""), "en/common.json" -> ("en", "common").
func splitPath(filePath string) (locale, namespace string, err error) {
	name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	dir := path.Dir(filePath)

	switch {
	case dir == "." || dir == "":
		locale = name
	case path.Dir(dir) == ".":
		locale, namespace = dir, name
	default:
		return "", "", fmt.Errorf("%w: file %q is nested too deep", ErrInvalidFile, filePath)
	}

	if strings.TrimSpace(locale) == "" {
		return "", "", fmt.Errorf("%w: file %q has no locale", ErrInvalidFile, filePath)
	}

	return locale, namespace, nil
}
