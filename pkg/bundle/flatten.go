package bundle

import (
	"fmt"
	"strings"
)

// Flatten turns a nested translation document into a flat map keyed by
// dot-separated paths. A string leaf at a.b.c becomes key "a.b.c".
//
// Objects (map[string]any, map[string]string and the map[any]any shape some
// decoders produce) are descended into. Arrays and other scalars are not:
// they are stringified with %v at their position. Nil leaves are dropped.
//
// The walk uses an explicit stack, so document depth is bounded only by memory.
func Flatten(doc map[string]any) map[string]string {
	result := make(map[string]string)

	type frame struct {
		node   map[string]any
		prefix string
	}
	stack := []frame{{node: doc}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for key, value := range f.node {
			fullKey := joinKey(f.prefix, key)

			switch v := value.(type) {
			case nil:
			case string:
				result[fullKey] = v
			case map[string]any:
				stack = append(stack, frame{node: v, prefix: fullKey})
			case map[string]string:
				for subKey, subVal := range v {
					result[joinKey(fullKey, subKey)] = subVal
				}
			case map[any]any:
				stack = append(stack, frame{node: stringKeys(v), prefix: fullKey})
			default:
				result[fullKey] = fmt.Sprintf("%v", v)
			}
		}
	}

	return result
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprintf("%v", k)] = v
	}
	return out
}

// Prefix nests every key of a flat table under prefix.
// An empty prefix returns the table unchanged.
func Prefix(prefix string, table map[string]string) map[string]string {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		return table
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[prefix+"."+k] = v
	}
	return out
}
