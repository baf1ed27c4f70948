package hospitalsearch

import (
	"strings"

	"github.com/joelkehle/healthgenie/internal/clinical"
)

// SpecialtyMatcher maps normalized conditions onto the closed specialty
// vocabulary by keyword lookup.
type SpecialtyMatcher struct {
	keywords []specialtyKeywords
}

func NewSpecialtyMatcher() *SpecialtyMatcher {
	return &SpecialtyMatcher{keywords: defaultSpecialtyKeywords()}
}

// Match returns the specialties implied by the conditions, in vocabulary
// order, deduplicated. The result is never empty: when nothing matches it
// is exactly {general}.
func (m *SpecialtyMatcher) Match(conditions []string) []Specialty {
	matched := map[Specialty]struct{}{}
	for _, c := range conditions {
		lower := strings.ToLower(c)
		for _, sk := range m.keywords {
			if containsAny(lower, sk.Keywords) {
				matched[sk.Tag] = struct{}{}
			}
		}
	}
	if len(matched) == 0 {
		return []Specialty{SpecialtyGeneral}
	}
	out := make([]Specialty, 0, len(matched))
	for _, sk := range m.keywords {
		if _, ok := matched[sk.Tag]; ok {
			out = append(out, sk.Tag)
		}
	}
	return out
}

// AssessUrgency is urgent whenever severity is severe or critical, or any
// condition mentions an urgent keyword. Severity comes verbatim from the
// upstream clinical data; this never infers severity from text.
func AssessUrgency(conditions []string, severity clinical.Severity) Urgency {
	if severity == clinical.SeveritySevere || severity == clinical.SeverityCritical {
		return UrgencyUrgent
	}
	for _, c := range conditions {
		if containsAny(strings.ToLower(c), urgentConditionKeywords) {
			return UrgencyUrgent
		}
	}
	return UrgencyRoutine
}
