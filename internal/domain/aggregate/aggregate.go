// Package aggregate merges ranked recommendation lists from independent
// scoring paths.
package aggregate

// Merge concatenates sources in the order given, de-duplicating role names
// while keeping each name at its first (highest-ranked source) position,
// and caps the output at limit entries. A non-positive limit yields an
// empty result. No cross-source weighting is applied; relative order
// within each source is preserved.
func Merge(limit int, sources ...[]string) []string {
	if limit <= 0 {
		return []string{}
	}

	merged := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, source := range sources {
		for _, role := range source {
			if _, dup := seen[role]; dup {
				continue
			}
			seen[role] = struct{}{}
			merged = append(merged, role)
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}
