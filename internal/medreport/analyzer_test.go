package medreport

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
)

type fakeCaller struct {
	response string
	err      error
	prompt   string
}

func (f *fakeCaller) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeCaller) GenerateVision(_ context.Context, prompt string, _ genai.Media) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeCaller) ModelName() string { return "fake" }

const sampleReport = `**Patient Info:** Male, 45 years
**Symptoms:**
- Persistent cough
- Fever for 5 days
**Diagnosis:**
- Community-acquired pneumonia
**Medications:**
- Amoxicillin 500mg
**Test Results:**
- WBC 14,000 (elevated)
**Recommendations:**
- Complete antibiotic course
- Follow-up in one week`

func TestParseReportStructuresSections(t *testing.T) {
	rec := ParseReport(sampleReport)

	if rec.PatientInfo != "Male, 45 years" {
		t.Fatalf("patient info: got %q", rec.PatientInfo)
	}
	if !reflect.DeepEqual(rec.Symptoms, []string{"Persistent cough", "Fever for 5 days"}) {
		t.Fatalf("symptoms: got %v", rec.Symptoms)
	}
	if !reflect.DeepEqual(rec.Diagnoses, []string{"Community-acquired pneumonia"}) {
		t.Fatalf("diagnoses: got %v", rec.Diagnoses)
	}
	if !reflect.DeepEqual(rec.Medications, []string{"Amoxicillin 500mg"}) {
		t.Fatalf("medications: got %v", rec.Medications)
	}
	if !reflect.DeepEqual(rec.TestResults, []string{"WBC 14,000 (elevated)"}) {
		t.Fatalf("test results: got %v", rec.TestResults)
	}
	want := []string{"Persistent cough", "Fever for 5 days", "Community-acquired pneumonia"}
	if !reflect.DeepEqual(rec.Findings, want) {
		t.Fatalf("findings must be symptoms+diagnoses, got %v", rec.Findings)
	}
}

func TestParseReportEmptyTextDegrades(t *testing.T) {
	rec := ParseReport("unstructured noise with no recognizable sections")
	if !reflect.DeepEqual(rec.Findings, []string{"Medical report processed - see full analysis"}) {
		t.Fatalf("expected placeholder finding, got %v", rec.Findings)
	}
}

func TestAnalyzeUsesExtractionPrompt(t *testing.T) {
	fake := &fakeCaller{response: sampleReport}
	a := NewAnalyzer(fake)
	rec, err := a.Analyze(context.Background(), genai.Media{Data: []byte{1}})
	if err != nil {
		t.Fatal(err)
	}
	if fake.prompt != extractionPrompt {
		t.Fatal("expected extraction prompt")
	}
	if len(rec.Diagnoses) != 1 {
		t.Fatalf("expected parsed record, got %+v", rec)
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	a := NewAnalyzer(&fakeCaller{err: genai.ErrUnavailable})
	if _, err := a.Analyze(context.Background(), genai.Media{Data: []byte{1}}); !errors.Is(err, genai.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestExtractTextUsesOCRPrompt(t *testing.T) {
	fake := &fakeCaller{response: "raw report text"}
	a := NewAnalyzer(fake)
	got, err := a.ExtractText(context.Background(), genai.Media{Data: []byte{1}})
	if err != nil || got != "raw report text" {
		t.Fatalf("got %q err %v", got, err)
	}
	if fake.prompt != ocrPrompt {
		t.Fatal("expected OCR prompt")
	}
}

func TestIdentifyCriticalFindings(t *testing.T) {
	cases := []struct {
		name        string
		rec         clinical.Record
		hasCritical bool
		urgency     UrgencyLevel
	}{
		{
			"high urgency",
			clinical.Record{Recommendations: []string{"Urgent surgical consultation required"}},
			true, UrgencyHigh,
		},
		{
			"medium urgency",
			clinical.Record{TestResults: []string{"Severely abnormal liver enzymes"}},
			true, UrgencyMedium,
		},
		{
			"benign",
			clinical.Record{Diagnoses: []string{"Seasonal allergy"}},
			false, UrgencyLow,
		},
	}
	for _, tc := range cases {
		got := IdentifyCriticalFindings(tc.rec)
		if got.HasCritical != tc.hasCritical {
			t.Fatalf("%s: has_critical expected %v, got %v", tc.name, tc.hasCritical, got.HasCritical)
		}
		if got.UrgencyLevel != tc.urgency {
			t.Fatalf("%s: urgency expected %s, got %s", tc.name, tc.urgency, got.UrgencyLevel)
		}
		if tc.hasCritical && len(got.Recommendations) == 0 {
			t.Fatalf("%s: critical findings must carry recommendations", tc.name)
		}
		if tc.urgency == UrgencyHigh && len(got.Recommendations) != 2 {
			t.Fatalf("%s: high urgency adds emergency recommendation, got %v", tc.name, got.Recommendations)
		}
	}
}

func TestSummary(t *testing.T) {
	rec := clinical.Record{
		Diagnoses:   []string{"Pneumonia"},
		Symptoms:    []string{"Cough", "Fever"},
		Medications: []string{"Amoxicillin"},
	}
	got := Summary(rec)
	want := "Diagnosis: Pneumonia\nSymptoms: Cough, Fever\nMedications: Amoxicillin"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := Summary(clinical.Record{}); got != "Diagnosis: Not specified" {
		t.Fatalf("empty record summary: %q", got)
	}
}
