// Package clinical holds the record types exchanged between the analysis
// agents and the downstream meal-plan and hospital-search pipelines.
package clinical

import (
	"strings"
)

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// NormalizeSeverity is total: any input maps to one of the four severities,
// defaulting to moderate. Upstream model text is untrusted.
func NormalizeSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SeverityMild), "minor", "slight", "early", "initial":
		return SeverityMild
	case string(SeveritySevere), "significant":
		return SeveritySevere
	case string(SeverityCritical), "life-threatening":
		return SeverityCritical
	default:
		return SeverityModerate
	}
}

type Impression struct {
	PrimaryFindings       []string `json:"primary_findings"`
	DifferentialDiagnoses []string `json:"differential_diagnoses,omitempty"`
	Severity              Severity `json:"severity"`
	// Confidence is the model's self-reported 1-10 score; 0 means absent.
	Confidence float64 `json:"confidence,omitempty"`
}

// Record is the clinical input consumed by meal planning and hospital
// search. Every field is optional; absent fields default to empty.
type Record struct {
	Impression      Impression `json:"clinical_impression"`
	PatientInfo     string     `json:"patient_info,omitempty"`
	Symptoms        []string   `json:"symptoms,omitempty"`
	Findings        []string   `json:"findings,omitempty"`
	Diagnoses       []string   `json:"diagnoses,omitempty"`
	Medications     []string   `json:"medications,omitempty"`
	TestResults     []string   `json:"test_results,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// Merge combines an X-ray record and a report record into one. Findings are
// deduplicated first-seen, confidences are averaged, and the more severe of
// the two severities wins.
func Merge(xray, report *Record) Record {
	out := Record{}
	scores := []float64{}
	for _, r := range []*Record{xray, report} {
		if r == nil {
			continue
		}
		out.Impression.PrimaryFindings = appendUnique(out.Impression.PrimaryFindings, r.Impression.PrimaryFindings...)
		out.Impression.DifferentialDiagnoses = appendUnique(out.Impression.DifferentialDiagnoses, r.Impression.DifferentialDiagnoses...)
		out.Symptoms = appendUnique(out.Symptoms, r.Symptoms...)
		out.Findings = appendUnique(out.Findings, r.Findings...)
		out.Diagnoses = appendUnique(out.Diagnoses, r.Diagnoses...)
		out.Medications = appendUnique(out.Medications, r.Medications...)
		out.TestResults = appendUnique(out.TestResults, r.TestResults...)
		out.Recommendations = appendUnique(out.Recommendations, r.Recommendations...)
		if out.PatientInfo == "" {
			out.PatientInfo = r.PatientInfo
		}
		if severityRank(r.Impression.Severity) > severityRank(out.Impression.Severity) {
			out.Impression.Severity = r.Impression.Severity
		}
		if r.Impression.Confidence > 0 {
			scores = append(scores, r.Impression.Confidence)
		}
	}
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		out.Impression.Confidence = sum / float64(len(scores))
	}
	out.Findings = appendUnique(out.Findings, out.Impression.PrimaryFindings...)
	if out.Impression.Severity == "" {
		out.Impression.Severity = SeverityModerate
	}
	return out
}

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeveritySevere:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMild:
		return 1
	default:
		return 0
	}
}

func appendUnique(dst []string, items ...string) []string {
	seen := map[string]struct{}{}
	for _, v := range dst {
		seen[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	for _, v := range items {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, strings.TrimSpace(v))
	}
	return dst
}
