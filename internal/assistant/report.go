package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/healthgenie/internal/hospitalsearch"
	"github.com/joelkehle/healthgenie/internal/mealplan"
)

const Disclaimer = "This report is generated by an automated analysis assistant and is not a medical diagnosis. Always consult a qualified healthcare provider before acting on any of its contents."

// BuildMarkdown renders the patient-facing summary of one analysis run.
func BuildMarkdown(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Health Analysis Summary\n\n")
	fmt.Fprintf(&b, "- Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Processing time: %.1fs\n\n", res.ProcessingTime)
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	for _, n := range res.Notices {
		fmt.Fprintf(&b, "> NOTICE: %s\n", sanitize(n))
	}
	if len(res.Notices) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Clinical Impression\n\n")
	fmt.Fprintf(&b, "- Severity: %s\n", res.Combined.Impression.Severity)
	if res.Combined.Impression.Confidence > 0 {
		fmt.Fprintf(&b, "- Confidence: %.1f/10\n", res.Combined.Impression.Confidence)
	}
	if res.Combined.PatientInfo != "" {
		fmt.Fprintf(&b, "- Patient: %s\n", sanitize(res.Combined.PatientInfo))
	}
	b.WriteString("\n")

	writeList(&b, "Primary Findings", res.Combined.Impression.PrimaryFindings)
	writeList(&b, "Findings", res.Combined.Findings)
	writeList(&b, "Diagnoses", res.Combined.Diagnoses)
	writeList(&b, "Medications", res.Combined.Medications)
	writeList(&b, "Test Results", res.Combined.TestResults)
	writeList(&b, "Recommendations", res.Combined.Recommendations)

	if res.CriticalFindings.HasCritical {
		fmt.Fprintf(&b, "## Critical Findings\n\n")
		fmt.Fprintf(&b, "Urgency level: **%s**. Flagged terms: %s\n\n",
			res.CriticalFindings.UrgencyLevel,
			sanitize(strings.Join(res.CriticalFindings.CriticalItems, ", ")))
		for _, r := range res.CriticalFindings.Recommendations {
			fmt.Fprintf(&b, "- %s\n", sanitize(r))
		}
		b.WriteString("\n")
	}

	writeMealPlan(&b, res.MealPlan)
	writeHospitals(&b, res.Hospitals)
	return b.String()
}

func writeMealPlan(b *strings.Builder, plan mealplan.Plan) {
	fmt.Fprintf(b, "## 3-Day Meal Plan\n\n")
	fmt.Fprintf(b, "Caloric guidance: %s\n\n", sanitize(plan.Requirements.Calories))
	for i, day := range plan.Days {
		fmt.Fprintf(b, "### Day %d\n\n", i+1)
		writeMeal(b, "Breakfast", day.Breakfast)
		writeMeal(b, "Lunch", day.Lunch)
		writeMeal(b, "Dinner", day.Dinner)
		writeMeal(b, "Snacks", day.Snacks)
		b.WriteString("\n")
	}
	writeList(b, "Recommended Foods", plan.Guidelines.RecommendedFoods)
	writeList(b, "Foods to Avoid", plan.Guidelines.FoodsToAvoid)
	writeList(b, "Supplements", plan.Guidelines.Supplements)
	fmt.Fprintf(b, "Hydration: %s\n\n", sanitize(plan.Guidelines.Hydration))
}

func writeMeal(b *strings.Builder, label string, items []string) {
	fmt.Fprintf(b, "- **%s**: %s\n", label, sanitize(strings.Join(items, "; ")))
}

func writeHospitals(b *strings.Builder, recs hospitalsearch.Recommendations) {
	fmt.Fprintf(b, "## Recommended Hospitals\n\n")
	fmt.Fprintf(b, "%s\n\n", sanitize(recs.RecommendationBasis))
	if recs.UsedFallback {
		fmt.Fprintf(b, "> Live search was unavailable; these are standing recommendations.\n\n")
	}
	fmt.Fprintf(b, "| # | Hospital | Score | Emergency | Why |\n")
	fmt.Fprintf(b, "|---|----------|-------|-----------|-----|\n")
	for _, h := range recs.TopHospitals {
		emergency := "no"
		if h.EmergencyServices {
			emergency = "yes"
		}
		fmt.Fprintf(b, "| %d | %s | %d | %s | %s |\n",
			h.Rank, sanitize(h.Name), h.RelevanceScore, emergency, sanitize(h.WhyRecommended))
	}
	b.WriteString("\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", sanitize(item))
	}
	b.WriteString("\n")
}

// sanitize keeps model-provided text from breaking the markdown table and
// heading structure.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "|", "/")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
