package transync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/transync"
)

func TestInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		ms       []transync.M
		want     string
	}{
		{"single", "Hello {{name}}", []transync.M{{"name": "Ann"}}, "Hello Ann"},
		{"repeated", "{{x}}+{{x}}", []transync.M{{"x": 1}}, "1+1"},
		{"unknown stays", "Hi {{who}}", []transync.M{{"name": "Ann"}}, "Hi {{who}}"},
		{"no maps", "Hi {{name}}", nil, "Hi {{name}}"},
		{"later map wins", "{{a}}", []transync.M{{"a": "1"}, {"a": "2"}}, "2"},
		{"no recursive expansion", "{{a}}", []transync.M{{"a": "{{b}}", "b": "x"}}, "{{b}}"},
		{"non-string values", "{{n}} items, {{ok}}", []transync.M{{"n": 3, "ok": true}}, "3 items, true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, transync.Interpolate(tt.template, tt.ms...))
		})
	}
}
