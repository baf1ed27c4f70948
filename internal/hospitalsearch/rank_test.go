package hospitalsearch

import (
	"reflect"
	"testing"

	"github.com/joelkehle/healthgenie/internal/clinical"
)

func TestDedupeFirstWins(t *testing.T) {
	in := []Candidate{
		{Name: "Apollo Hospitals, Chennai", Description: "first"},
		{Name: "apollo hospitals chennai", Description: "second"},
		{Name: "Fortis Healthcare", Description: "third"},
		{Name: "   "},
	}
	got := Dedupe(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique, got %d: %v", len(got), got)
	}
	if got[0].Description != "first" {
		t.Fatalf("expected first occurrence kept, got %q", got[0].Description)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	in := []Candidate{
		{Name: "Apollo Hospitals"},
		{Name: "Apollo Hospitals!"},
		{Name: "Max Healthcare"},
	}
	once := Dedupe(in)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("dedupe not idempotent: %v vs %v", once, twice)
	}
}

func TestScoreBrandSpecialtyUrgency(t *testing.T) {
	s := NewScorer()
	strategy := Strategy{
		Specialties: []Specialty{SpecialtyCardiac},
		Urgency:     UrgencyUrgent,
	}
	c := Candidate{
		Name:        "Apollo Hospitals, Chennai",
		Description: "Renowned cardiology department with 24/7 emergency services",
		Position:    1,
	}
	got := s.Score(c, strategy)
	// brand 25 + cardiac-in-description 15 + urgency 12 is the floor.
	if got < 52 {
		t.Fatalf("expected score >= 52, got %d", got)
	}
	generic := s.Score(Candidate{Name: "Some Clinic", Description: "", Position: 20}, strategy)
	if generic >= got {
		t.Fatalf("generic hospital (%d) must rank below Apollo (%d)", generic, got)
	}
}

func TestScoreUnknownPositionDefaultsToTen(t *testing.T) {
	s := NewScorer()
	strategy := Strategy{}
	unknown := s.Score(Candidate{Name: "X Clinic"}, strategy)
	tenth := s.Score(Candidate{Name: "X Clinic", Position: 10}, strategy)
	if unknown != tenth {
		t.Fatalf("unknown position should score as position 10: %d vs %d", unknown, tenth)
	}
	if unknown != 5 {
		t.Fatalf("expected position-only score 5, got %d", unknown)
	}
	if far := s.Score(Candidate{Name: "X Clinic", Position: 40}, strategy); far != 0 {
		t.Fatalf("position beyond 15 must contribute 0, got %d", far)
	}
}

func TestScoreUrgencySignalsOnlyWhenUrgent(t *testing.T) {
	s := NewScorer()
	c := Candidate{Name: "City Hospital", Description: "trauma and critical care icu", Position: 10}
	routine := s.Score(c, Strategy{Urgency: UrgencyRoutine})
	urgent := s.Score(c, Strategy{Urgency: UrgencyUrgent})
	if urgent <= routine {
		t.Fatalf("urgent strategy must add urgent-care bonuses: routine=%d urgent=%d", routine, urgent)
	}
}

func TestScoreAndRankStableOrderAndTopFive(t *testing.T) {
	s := NewScorer()
	strategy := Strategy{}
	candidates := []Candidate{
		{Name: "Alpha Clinic", Position: 10},
		{Name: "Beta Clinic", Position: 10},
		{Name: "Gamma Clinic", Position: 10},
		{Name: "Delta Clinic", Position: 10},
		{Name: "Epsilon Clinic", Position: 10},
		{Name: "Zeta Clinic", Position: 10},
		{Name: "Apollo Hospitals", Position: 10},
	}
	ranked := s.ScoreAndRank(candidates, strategy)
	if len(ranked) != 5 {
		t.Fatalf("expected top 5, got %d", len(ranked))
	}
	if ranked[0].Name != "Apollo Hospitals" {
		t.Fatalf("expected brand match first, got %q", ranked[0].Name)
	}
	// Equal scores keep input order.
	rest := []string{ranked[1].Name, ranked[2].Name, ranked[3].Name, ranked[4].Name}
	want := []string{"Alpha Clinic", "Beta Clinic", "Gamma Clinic", "Delta Clinic"}
	if !reflect.DeepEqual(rest, want) {
		t.Fatalf("stable order broken: %v", rest)
	}
	for i, h := range ranked {
		if h.Rank != i+1 {
			t.Fatalf("rank %d assigned %d", i+1, h.Rank)
		}
	}
}

func TestRankedHospitalDerivedFields(t *testing.T) {
	s := NewScorer()
	strategy := Strategy{
		Specialties: []Specialty{SpecialtyCardiac},
		Urgency:     UrgencyUrgent,
		Severity:    clinical.SeveritySevere,
	}
	ranked := s.ScoreAndRank([]Candidate{{
		Name:        "Apollo Hospitals, Chennai",
		Description: "Accredited cardiology and oncology center with experienced specialists and 24/7 emergency care",
		Position:    1,
	}}, strategy)
	h := ranked[0]

	if !h.EmergencyServices {
		t.Fatal("expected emergency services detected")
	}
	hasCardiac := false
	for _, sp := range h.Specialties {
		if sp == SpecialtyCardiac {
			hasCardiac = true
		}
	}
	if !hasCardiac {
		t.Fatalf("expected cardiac specialty derived, got %v", h.Specialties)
	}
	hasAccredited := false
	for _, qi := range h.QualityIndicators {
		if qi == "Accredited" {
			hasAccredited = true
		}
	}
	if !hasAccredited {
		t.Fatalf("expected Accredited indicator, got %v", h.QualityIndicators)
	}
	if h.WhyRecommended == "" || h.WhyRecommended == "Quality healthcare provider" {
		t.Fatalf("expected specific recommendation reasons, got %q", h.WhyRecommended)
	}
}

func TestSpecialtiesDefaultGeneral(t *testing.T) {
	s := NewScorer()
	ranked := s.ScoreAndRank([]Candidate{{Name: "Plain Clinic", Description: "a clinic"}}, Strategy{})
	if !reflect.DeepEqual(ranked[0].Specialties, []Specialty{SpecialtyGeneral}) {
		t.Fatalf("expected general fallback, got %v", ranked[0].Specialties)
	}
}
