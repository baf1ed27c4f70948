// Package xray analyzes X-ray images through the vision model and coerces
// the free-text radiology response into a clinical record.
package xray

import (
	"context"
	"log"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
	"github.com/joelkehle/healthgenie/internal/textparse"
)

const analysisPrompt = `You are an expert radiologist analyzing chest X-rays. Analyze this X-ray image carefully and provide:

1. Primary findings and observations
2. Possible diagnosis with confidence level (1-10 scale)
3. Severity assessment (mild, moderate, severe, or critical)
4. Any abnormalities or areas of concern
5. Recommendations for further evaluation if needed

Please be thorough but concise. Focus on common conditions like:
- Pneumonia
- Pleural effusion
- Pneumothorax
- Lung nodules
- Fractures
- Cardiomegaly

Format your response as:
**Primary Findings:** [findings]
**Diagnosis:** [diagnosis]
**Confidence:** [1-10]
**Severity:** [severity]
**Recommendations:** [recommendations]`

// sectionVocabulary orders triggers most-specific-first so "primary
// findings" wins over a bare "findings" mention.
func sectionVocabulary() textparse.Vocabulary {
	return textparse.Vocabulary{
		{Trigger: "primary findings", Bucket: "findings"},
		{Trigger: "diagnosis", Bucket: "diagnoses"},
		{Trigger: "confidence", Bucket: "confidence", Inline: true},
		{Trigger: "severity", Bucket: "severity", Inline: true},
		{Trigger: "recommendations", Bucket: "recommendations"},
	}
}

type Analyzer struct {
	caller genai.Caller
}

func NewAnalyzer(caller genai.Caller) *Analyzer {
	return &Analyzer{caller: caller}
}

// Analyze sends the image to the vision model and parses the response.
// The returned error is only ever a provider failure; the caller decides
// whether to substitute FallbackRecord. Parse degradation never errors,
// it fills placeholders instead.
func (a *Analyzer) Analyze(ctx context.Context, media genai.Media) (clinical.Record, error) {
	text, err := a.caller.GenerateVision(ctx, analysisPrompt, media)
	if err != nil {
		log.Printf("xray analysis failed class=%d err=%v", genai.ClassifyError(err), err)
		return clinical.Record{}, err
	}
	return ParseAnalysis(text), nil
}

// ParseAnalysis structures the radiology free text. Missing sections
// degrade to placeholders so downstream consumers never see a nil or empty
// required field.
func ParseAnalysis(text string) clinical.Record {
	doc := textparse.Parse(text, sectionVocabulary())

	rec := clinical.Record{
		Impression: clinical.Impression{
			PrimaryFindings:       doc.Get("findings"),
			DifferentialDiagnoses: doc.Get("diagnoses"),
			Severity:              clinical.NormalizeSeverity(doc.First("severity")),
			Confidence:            clinical.ParseConfidence(doc.First("confidence")),
		},
		Findings:        doc.Get("findings"),
		Diagnoses:       doc.Get("diagnoses"),
		Recommendations: doc.Get("recommendations"),
	}
	if len(rec.Findings) == 0 && len(rec.Diagnoses) == 0 {
		rec.Findings = []string{"X-ray analysis completed - see full analysis"}
	}
	return rec
}

// FallbackRecord is the fixed substitute when the vision model is
// unavailable. It keeps the pipeline flowing with clearly labeled
// placeholders.
func FallbackRecord() clinical.Record {
	return clinical.Record{
		Impression: clinical.Impression{
			PrimaryFindings: []string{"X-ray analysis unavailable"},
			Severity:        clinical.SeverityModerate,
		},
		Findings:        []string{"X-ray analysis unavailable"},
		Recommendations: []string{"Consult a radiologist for manual interpretation"},
	}
}
