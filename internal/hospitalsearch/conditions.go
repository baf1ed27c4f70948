package hospitalsearch

import (
	"strings"
)

const conditionCutset = ".-*• "

// NormalizeConditions cleans raw finding/diagnosis strings into search-ready
// conditions: lower-cased, whitespace-collapsed, stripped of bullet and
// punctuation artifacts, free of stoplist boilerplate, each longer than
// three characters. Input order is relevance order and is preserved; the
// result is capped at five entries.
func NormalizeConditions(raw []string) []string {
	out := make([]string, 0, maxConditions)
	for _, c := range raw {
		if len(strings.TrimSpace(c)) < 3 {
			continue
		}
		c = strings.ToLower(strings.TrimSpace(c))
		if containsAny(c, conditionStoplist) {
			continue
		}
		c = strings.Join(strings.Fields(c), " ")
		c = strings.Trim(c, conditionCutset)
		if len(c) <= 3 {
			continue
		}
		out = append(out, c)
		if len(out) == maxConditions {
			break
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
