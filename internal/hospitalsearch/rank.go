package hospitalsearch

import (
	"fmt"
	"sort"
	"strings"
)

// Scorer computes relevance scores from fixed keyword tables. The signals
// are additive and independent; evaluation order never changes the total.
type Scorer struct {
	premium    []string
	urgentCare []string
	quality    []string
	tech       []string
	specialty  []specialtyKeywords
}

func NewScorer() *Scorer {
	return &Scorer{
		premium:    premiumHospitals,
		urgentCare: urgentCareTerms,
		quality:    qualityTerms,
		tech:       techTerms,
		specialty:  defaultSpecialtyKeywords(),
	}
}

const defaultPosition = 10

// Score computes the additive relevance score for one candidate against a
// strategy:
//
//	position        max(0, 15-position), unknown position counts as 10
//	known brand     +25 once for the first premium name match
//	specialty       +15 per strategy specialty whose keywords appear in
//	                description or name
//	keyword         +8 per strategy condition keyword found in description
//	urgency         +12 per urgent-care term, urgent strategies only
//	quality terms   +5 each
//	tech terms      +3 each
func (s *Scorer) Score(c Candidate, strategy Strategy) int {
	name := strings.ToLower(c.Name)
	desc := strings.ToLower(c.Description)

	position := c.Position
	if position <= 0 {
		position = defaultPosition
	}
	score := 0
	if 15-position > 0 {
		score += 15 - position
	}
	for _, p := range s.premium {
		if strings.Contains(name, p) {
			score += 25
			break
		}
	}
	for _, sp := range strategy.Specialties {
		if s.specialtyMentioned(sp, name, desc) {
			score += 15
		}
	}
	for _, kw := range strategy.ConditionKeywords {
		if strings.Contains(desc, kw) {
			score += 8
		}
	}
	if strategy.Urgency == UrgencyUrgent {
		for _, t := range s.urgentCare {
			if strings.Contains(desc, t) {
				score += 12
			}
		}
	}
	for _, t := range s.quality {
		if strings.Contains(desc, t) {
			score += 5
		}
	}
	for _, t := range s.tech {
		if strings.Contains(desc, t) {
			score += 3
		}
	}
	return score
}

// ScoreAndRank scores every candidate, sorts descending by score (stable,
// so equal scores keep their input order), keeps the top five and attaches
// the explanatory fields derived from the same keyword tables.
func (s *Scorer) ScoreAndRank(candidates []Candidate, strategy Strategy) []RankedHospital {
	type scored struct {
		Candidate
		score int
	}
	all := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		all = append(all, scored{Candidate: c, score: s.Score(c, strategy)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	if len(all) > maxHospitals {
		all = all[:maxHospitals]
	}

	out := make([]RankedHospital, 0, len(all))
	for i, sc := range all {
		out = append(out, RankedHospital{
			Rank:              i + 1,
			Name:              sc.Name,
			Description:       sc.Description,
			Website:           sc.URL,
			RelevanceScore:    sc.score,
			SearchContext:     sc.SearchContext,
			WhyRecommended:    s.whyRecommended(sc.Candidate, sc.score, strategy),
			Specialties:       s.hospitalSpecialties(sc.Candidate),
			EmergencyServices: hasEmergencyServices(sc.Candidate),
			QualityIndicators: extractQualityIndicators(sc.Description),
		})
	}
	return out
}

// specialtyMentioned reports whether any keyword of the specialty, or the
// tag itself, appears in the candidate name or description.
func (s *Scorer) specialtyMentioned(sp Specialty, name, desc string) bool {
	if strings.Contains(desc, string(sp)) || strings.Contains(name, string(sp)) {
		return true
	}
	for _, sk := range s.specialty {
		if sk.Tag != sp {
			continue
		}
		return containsAny(desc, sk.Keywords) || containsAny(name, sk.Keywords)
	}
	return false
}

// hospitalSpecialties derives display specialties from the candidate text
// using the same closed vocabulary as condition matching.
func (s *Scorer) hospitalSpecialties(c Candidate) []Specialty {
	text := strings.ToLower(c.Name + " " + c.Description)
	out := []Specialty{}
	for _, sk := range s.specialty {
		if containsAny(text, sk.Keywords) {
			out = append(out, sk.Tag)
		}
	}
	if len(out) == 0 {
		return []Specialty{SpecialtyGeneral}
	}
	return out
}

func hasEmergencyServices(c Candidate) bool {
	text := strings.ToLower(c.Name + " " + c.Description)
	return containsAny(text, emergencyIndicators)
}

func extractQualityIndicators(description string) []string {
	desc := strings.ToLower(description)
	out := []string{}
	for _, qi := range qualityIndicators {
		if containsAny(desc, qi.Keywords) {
			out = append(out, qi.Label)
		}
	}
	return out
}

// whyRecommended is purely explanatory: it restates which scoring signals
// fired, introducing no new information.
func (s *Scorer) whyRecommended(c Candidate, score int, strategy Strategy) string {
	name := strings.ToLower(c.Name)
	desc := strings.ToLower(c.Description)
	reasons := []string{}

	for _, p := range s.premium {
		if strings.Contains(name, p) {
			reasons = append(reasons, "Premier healthcare institution")
			break
		}
	}
	for _, sp := range strategy.Specialties {
		if s.specialtyMentioned(sp, name, desc) {
			reasons = append(reasons, fmt.Sprintf("Specialized in %s care", sp))
			break
		}
	}
	switch {
	case score > 50:
		reasons = append(reasons, "High relevance match for your conditions")
	case score > 30:
		reasons = append(reasons, "Good match for your medical needs")
	}
	if strategy.Urgency == UrgencyUrgent && containsAny(desc, s.urgentCare) {
		reasons = append(reasons, "Emergency services available")
	}
	if len(reasons) == 0 {
		return "Quality healthcare provider"
	}
	return strings.Join(reasons, "; ")
}
