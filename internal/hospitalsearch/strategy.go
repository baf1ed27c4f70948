package hospitalsearch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joelkehle/healthgenie/internal/clinical"
)

var (
	nonWordRe     = regexp.MustCompile(`[^\w\s]`)
	keywordWordRe = regexp.MustCompile(`\b\w{4,}\b`)
)

// StrategyBuilder derives the immutable search plan for one recommendation
// request from a clinical record.
type StrategyBuilder struct {
	Location string
	Matcher  *SpecialtyMatcher
}

func NewStrategyBuilder(location string) *StrategyBuilder {
	return &StrategyBuilder{Location: location, Matcher: NewSpecialtyMatcher()}
}

func (b *StrategyBuilder) Build(rec clinical.Record) Strategy {
	raw := []string{}
	raw = append(raw, rec.Impression.PrimaryFindings...)
	raw = append(raw, rec.Findings...)
	raw = append(raw, rec.Diagnoses...)

	conditions := NormalizeConditions(raw)
	if len(conditions) == 0 {
		// Always produce a best-effort answer, even with no usable input.
		conditions = []string{"general medical care"}
	}

	severity := rec.Impression.Severity
	if severity == "" {
		severity = clinical.SeverityModerate
	}

	s := Strategy{
		PrimaryConditions: conditions,
		Severity:          severity,
	}
	s.Specialties = b.Matcher.Match(conditions)
	s.Urgency = AssessUrgency(conditions, severity)
	s.SearchTerms = b.buildSearchTerms(conditions, s.Specialties, s.Urgency)
	s.ConditionKeywords = extractConditionKeywords(conditions)
	return s
}

// buildSearchTerms produces at most six queries: urgency-appropriate base
// terms, up to two specialty-targeted terms, up to two condition-targeted
// terms and one fixed premium-provider term. The cap bounds outbound search
// calls per analysis.
func (b *StrategyBuilder) buildSearchTerms(conditions []string, specialties []Specialty, urgency Urgency) []string {
	base := []string{"best hospitals", "top medical centers", "leading healthcare"}
	if urgency == UrgencyUrgent {
		base = []string{"best emergency hospitals", "top trauma centers", "24/7 emergency care"}
	}
	terms := make([]string, 0, maxSearchTerms)
	for _, t := range base {
		terms = append(terms, t+" "+b.Location)
	}
	added := 0
	for _, sp := range specialties {
		if sp == SpecialtyGeneral || added == 2 {
			continue
		}
		terms = append(terms, fmt.Sprintf("best %s hospitals %s", sp, b.Location))
		added++
	}
	for i, c := range conditions {
		if i == 2 {
			break
		}
		clean := strings.Join(strings.Fields(nonWordRe.ReplaceAllString(c, "")), " ")
		if clean == "" {
			continue
		}
		terms = append(terms, fmt.Sprintf("best hospitals for %s %s", clean, b.Location))
	}
	terms = append(terms, "AIIMS Apollo Fortis Max Medanta "+b.Location)
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}
	return terms
}

// extractConditionKeywords pulls words of four or more characters out of the
// conditions, drops generic medical words, and keeps the first ten in
// first-seen order.
func extractConditionKeywords(conditions []string) []string {
	out := make([]string, 0, maxKeywords)
	seen := map[string]struct{}{}
	for _, c := range conditions {
		for _, w := range keywordWordRe.FindAllString(strings.ToLower(c), -1) {
			if _, skip := keywordExcludeWords[w]; skip {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
			if len(out) == maxKeywords {
				return out
			}
		}
	}
	return out
}
