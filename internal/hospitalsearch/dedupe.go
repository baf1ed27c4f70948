package hospitalsearch

import (
	"regexp"
	"strings"
)

var nameNonWordRe = regexp.MustCompile(`[^\w\s]`)

// Dedupe removes duplicate candidates by normalized name, keeping the first
// occurrence. Candidates whose normalized name is empty cannot be compared
// or displayed and are dropped. Dedupe is idempotent.
func Dedupe(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	seen := map[string]struct{}{}
	for _, c := range candidates {
		key := normalizeName(c.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func normalizeName(name string) string {
	n := nameNonWordRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "")
	return strings.Join(strings.Fields(n), " ")
}
