package transync

import "maps"

// Merge overlays remote overrides on a bundled table.
//
// The result holds every bundled key. Remote keys with a non-empty value
// replace the bundled value or are added when the bundle lacks them; empty
// remote values are ignored. Inputs are never modified and the result is
// always a new map, so Merge(b, r) is stable for identical inputs.
func Merge(bundled, remote map[string]string) map[string]string {
	out := make(map[string]string, len(bundled)+len(remote))
	maps.Copy(out, bundled)
	for k, v := range remote {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
