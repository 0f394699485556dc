package skill

import "strings"

// FilterSkills keeps spans tagged with target and returns their trimmed
// surface texts without duplicates. Matching is exact and case-sensitive.
// The result is never nil; callers must not rely on its order.
func FilterSkills(spans []TaggedSpan, target Category) []string {
	out := make([]string, 0, len(spans))
	seen := make(map[string]struct{}, len(spans))
	for _, sp := range spans {
		if sp.Category != target {
			continue
		}
		text := strings.TrimSpace(sp.Text)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}
