// Package hospitalsearch turns a clinical record into a ranked list of
// hospital recommendations: condition normalization, specialty matching,
// urgency assessment, search term generation, web search, deduplication and
// multi-signal relevance scoring.
package hospitalsearch

import (
	"github.com/joelkehle/healthgenie/internal/clinical"
)

type Specialty string

const (
	SpecialtyCardiac      Specialty = "cardiac"
	SpecialtyPulmonary    Specialty = "pulmonary"
	SpecialtyOrthopedic   Specialty = "orthopedic"
	SpecialtyNeurological Specialty = "neurological"
	SpecialtyOncology     Specialty = "oncology"
	SpecialtyGastro       Specialty = "gastro"
	SpecialtyEmergency    Specialty = "emergency"
	SpecialtyPediatric    Specialty = "pediatric"
	SpecialtyGynecology   Specialty = "gynecology"
	SpecialtyGeneral      Specialty = "general"
)

type Urgency string

const (
	UrgencyRoutine Urgency = "routine"
	UrgencyUrgent  Urgency = "urgent"
)

// Strategy is the immutable search plan derived once per recommendation
// request. Every collection is capped to bound outbound search volume.
type Strategy struct {
	PrimaryConditions []string          `json:"primary_conditions"` // ≤5
	Specialties       []Specialty       `json:"specialties"`        // never empty
	Severity          clinical.Severity `json:"severity"`
	Urgency           Urgency           `json:"urgency"`
	SearchTerms       []string          `json:"search_terms"`       // ≤6
	ConditionKeywords []string          `json:"condition_keywords"` // ≤10
}

// Candidate is one hospital result from the search provider or the
// fallback table, before dedup and scoring.
type Candidate struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	URL           string `json:"url,omitempty"`
	Position      int    `json:"position"` // rank within its source list; 0 = unknown
	SearchContext string `json:"search_context"`
}

type RankedHospital struct {
	Rank              int         `json:"rank"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Website           string      `json:"website,omitempty"`
	RelevanceScore    int         `json:"relevance_score"`
	SearchContext     string      `json:"search_context"`
	WhyRecommended    string      `json:"why_recommended"`
	Specialties       []Specialty `json:"specialties"`
	EmergencyServices bool        `json:"emergency_services"`
	QualityIndicators []string    `json:"quality_indicators"`
}

type SearchContext struct {
	Conditions  []string          `json:"conditions"`
	Specialties []Specialty       `json:"specialties"`
	Severity    clinical.Severity `json:"severity"`
	Urgency     Urgency           `json:"urgency"`
	Location    string            `json:"search_location"`
}

type Recommendations struct {
	TopHospitals        []RankedHospital `json:"top_hospitals"`
	SearchContext       SearchContext    `json:"search_context"`
	TotalFound          int              `json:"total_found"`
	RecommendationBasis string           `json:"recommendation_basis"`
	UsedFallback        bool             `json:"used_fallback"`
}

const (
	maxConditions  = 5
	maxSearchTerms = 6
	maxKeywords    = 10
	maxHospitals   = 5
)
