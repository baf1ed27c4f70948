// Package medreport extracts structured patient data from medical-report
// images via the vision model, flags critical findings, and summarizes.
package medreport

import (
	"context"
	"log"
	"strings"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
	"github.com/joelkehle/healthgenie/internal/textparse"
)

const extractionPrompt = `You are a medical expert analyzing a medical report. Please extract and summarize:

1. Patient information (age, gender if mentioned)
2. Chief complaints and symptoms
3. Diagnosis/diagnoses
4. Medications prescribed
5. Test results and values
6. Treatment recommendations
7. Follow-up instructions

Please organize the information clearly and highlight any critical findings or urgent recommendations.

Format your response as:
**Patient Info:** [info]
**Symptoms:** [symptoms]
**Diagnosis:** [diagnosis]
**Medications:** [medications]
**Test Results:** [results]
**Recommendations:** [recommendations]`

const ocrPrompt = `Please extract all visible text from this medical report image.
Preserve the structure and formatting as much as possible.
Include all patient information, test results, diagnoses, and recommendations.`

func sectionVocabulary() textparse.Vocabulary {
	return textparse.Vocabulary{
		{Trigger: "patient info", Bucket: "patient_info", Inline: true},
		{Trigger: "symptoms", Bucket: "symptoms"},
		{Trigger: "diagnosis", Bucket: "diagnoses"},
		{Trigger: "medications", Bucket: "medications"},
		{Trigger: "test results", Bucket: "test_results"},
		{Trigger: "recommendations", Bucket: "recommendations"},
	}
}

type Analyzer struct {
	caller genai.Caller
}

func NewAnalyzer(caller genai.Caller) *Analyzer {
	return &Analyzer{caller: caller}
}

// Analyze extracts the structured record from a report image. Errors are
// provider failures only; the caller substitutes FallbackRecord.
func (a *Analyzer) Analyze(ctx context.Context, media genai.Media) (clinical.Record, error) {
	text, err := a.caller.GenerateVision(ctx, extractionPrompt, media)
	if err != nil {
		log.Printf("medreport analysis failed class=%d err=%v", genai.ClassifyError(err), err)
		return clinical.Record{}, err
	}
	return ParseReport(text), nil
}

// ExtractText runs a plain OCR pass over the report image.
func (a *Analyzer) ExtractText(ctx context.Context, media genai.Media) (string, error) {
	return a.caller.GenerateVision(ctx, ocrPrompt, media)
}

// ParseReport structures the extraction response. Findings double the
// symptoms and diagnoses for compatibility with the hospital-search input;
// when nothing at all was extracted a placeholder finding keeps the record
// usable.
func ParseReport(text string) clinical.Record {
	doc := textparse.Parse(text, sectionVocabulary())

	rec := clinical.Record{
		PatientInfo:     doc.First("patient_info"),
		Symptoms:        doc.Get("symptoms"),
		Diagnoses:       doc.Get("diagnoses"),
		Medications:     doc.Get("medications"),
		TestResults:     doc.Get("test_results"),
		Recommendations: doc.Get("recommendations"),
	}
	rec.Findings = append(append([]string{}, rec.Symptoms...), rec.Diagnoses...)
	if len(rec.Findings) == 0 {
		rec.Findings = []string{"Medical report processed - see full analysis"}
	}
	return rec
}

// FallbackRecord is the fixed substitute when the vision model is
// unavailable.
func FallbackRecord() clinical.Record {
	return clinical.Record{
		PatientInfo:     "Patient information unavailable",
		Findings:        []string{"Medical report analysis unavailable"},
		Recommendations: []string{"Please consult with healthcare provider"},
	}
}

// Summary renders a short diagnosis/symptoms/medications digest of the
// record for prompts and report headers.
func Summary(rec clinical.Record) string {
	var b strings.Builder
	b.WriteString("Diagnosis: " + joinOrDefault(rec.Diagnoses))
	if len(rec.Symptoms) > 0 {
		b.WriteString("\nSymptoms: " + strings.Join(rec.Symptoms, ", "))
	}
	if len(rec.Medications) > 0 {
		b.WriteString("\nMedications: " + strings.Join(rec.Medications, ", "))
	}
	return b.String()
}

func joinOrDefault(items []string) string {
	if len(items) == 0 {
		return "Not specified"
	}
	return strings.Join(items, ", ")
}
