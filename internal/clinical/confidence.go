package clinical

import (
	"strconv"
	"strings"
)

// ParseConfidence extracts a 1-10 confidence score from model text such as
// "8", "8/10", "Confidence: 7.5" or "about 9 out of 10". Returns 0 when no
// usable number is present; values are clamped to [0, 10].
func ParseConfidence(s string) float64 {
	var b strings.Builder
	started := false
	for _, r := range s {
		if r >= '0' && r <= '9' || (started && r == '.') {
			b.WriteRune(r)
			started = true
			continue
		}
		if started {
			break
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
