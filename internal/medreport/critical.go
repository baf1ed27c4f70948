package medreport

import (
	"strings"

	"github.com/joelkehle/healthgenie/internal/clinical"
)

type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// criticalKeywords are scanned across diagnoses, symptoms, test results and
// recommendations; any hit marks the report as carrying critical findings.
var criticalKeywords = []string{
	"urgent", "emergency", "critical", "severe", "acute",
	"immediate", "hospitalization", "surgery", "tumor",
	"cancer", "malignant", "high risk", "abnormal",
}

var highUrgencyKeywords = []string{"urgent", "emergency", "critical", "immediate"}
var mediumUrgencyKeywords = []string{"severe", "acute", "abnormal"}

type CriticalFindings struct {
	HasCritical     bool         `json:"has_critical"`
	CriticalItems   []string     `json:"critical_items"`
	UrgencyLevel    UrgencyLevel `json:"urgency_level"`
	Recommendations []string     `json:"recommendations"`
}

// IdentifyCriticalFindings scans the record text for critical keywords and
// derives an urgency level plus standing recommendations. It adds no
// clinical judgment, only keyword presence.
func IdentifyCriticalFindings(rec clinical.Record) CriticalFindings {
	fields := []string{}
	fields = append(fields, rec.Diagnoses...)
	fields = append(fields, rec.Symptoms...)
	fields = append(fields, rec.TestResults...)
	fields = append(fields, rec.Recommendations...)
	text := strings.ToLower(strings.Join(fields, " "))

	out := CriticalFindings{UrgencyLevel: UrgencyLow, CriticalItems: []string{}, Recommendations: []string{}}
	for _, kw := range criticalKeywords {
		if strings.Contains(text, kw) {
			out.HasCritical = true
			out.CriticalItems = append(out.CriticalItems, kw)
		}
	}
	switch {
	case containsAny(text, highUrgencyKeywords):
		out.UrgencyLevel = UrgencyHigh
	case containsAny(text, mediumUrgencyKeywords):
		out.UrgencyLevel = UrgencyMedium
	}
	if out.HasCritical {
		out.Recommendations = append(out.Recommendations, "Consult with healthcare provider immediately")
		if out.UrgencyLevel == UrgencyHigh {
			out.Recommendations = append(out.Recommendations, "Seek emergency medical attention")
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
