package transync

import (
	"fmt"
	"strings"
)

// M holds placeholder values for T.
type M map[string]any

// Interpolate replaces {{name}} placeholders with values from ms.
// Later maps win on duplicate names. Unknown placeholders are left as is.
// Substitution is a single pass, so values containing "{{...}}" are not
// expanded again.
func Interpolate(template string, ms ...M) string {
	if len(ms) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	merged := make(map[string]string)
	for _, m := range ms {
		for k, v := range m {
			merged[k] = fmt.Sprintf("%v", v)
		}
	}
	if len(merged) == 0 {
		return template
	}

	pairs := make([]string, 0, len(merged)*2)
	for k, v := range merged {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
