package hospitalsearch

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
)

// Recommender runs the full recommendation flow: build a search strategy
// from the clinical record, fan searches out per term, merge in term order,
// dedupe and rank. A nil Searcher means no provider is configured and the
// curated fallback is used directly.
type Recommender struct {
	Builder  *StrategyBuilder
	Searcher Searcher
	Scorer   *Scorer
}

func NewRecommender(location string, searcher Searcher) *Recommender {
	return &Recommender{
		Builder:  NewStrategyBuilder(location),
		Searcher: searcher,
		Scorer:   NewScorer(),
	}
}

// FindBestHospitals never fails: when every search comes back empty or
// unavailable it substitutes the curated fallback set, scored and ranked
// like any other candidates.
func (r *Recommender) FindBestHospitals(ctx context.Context, rec clinical.Record) Recommendations {
	strategy := r.Builder.Build(rec)

	candidates, usedFallback := r.collect(ctx, strategy)
	if usedFallback {
		candidates = FallbackHospitals()
	}
	unique := Dedupe(candidates)
	ranked := r.Scorer.ScoreAndRank(unique, strategy)

	return Recommendations{
		TopHospitals: ranked,
		SearchContext: SearchContext{
			Conditions:  strategy.PrimaryConditions,
			Specialties: strategy.Specialties,
			Severity:    strategy.Severity,
			Urgency:     strategy.Urgency,
			Location:    r.Builder.Location,
		},
		TotalFound:          len(unique),
		RecommendationBasis: recommendationBasis(strategy),
		UsedFallback:        usedFallback,
	}
}

// collect runs one search per term concurrently and merges the results in
// term order, so ranking stays deterministic regardless of which search
// finishes first. The second return is true when the fallback set must be
// substituted.
func (r *Recommender) collect(ctx context.Context, strategy Strategy) ([]Candidate, bool) {
	if r.Searcher == nil {
		log.Printf("hospital-search provider not configured, using fallback set")
		return nil, true
	}

	slots := make([][]Candidate, len(strategy.SearchTerms))
	var wg sync.WaitGroup
	for i, term := range strategy.SearchTerms {
		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			found, err := r.Searcher.Search(ctx, term)
			if err != nil {
				if !errors.Is(err, genai.ErrUnavailable) {
					log.Printf("hospital-search term=%q err=%v", term, err)
				}
				return
			}
			slots[i] = found
		}(i, term)
	}
	wg.Wait()

	all := []Candidate{}
	for _, found := range slots {
		all = append(all, found...)
	}
	if len(all) == 0 {
		log.Printf("hospital-search no results for any term, using fallback set")
		return nil, true
	}
	return all, false
}

func recommendationBasis(strategy Strategy) string {
	parts := []string{}
	if len(strategy.PrimaryConditions) > 0 {
		parts = append(parts, "Based on conditions: "+strings.Join(strategy.PrimaryConditions, ", "))
	}
	nonGeneral := []string{}
	for _, sp := range strategy.Specialties {
		if sp != SpecialtyGeneral {
			nonGeneral = append(nonGeneral, string(sp))
		}
	}
	if len(nonGeneral) > 0 {
		parts = append(parts, "Requiring specialties: "+strings.Join(nonGeneral, ", "))
	}
	switch {
	case strategy.Urgency == UrgencyUrgent:
		parts = append(parts, "Prioritizing emergency-capable hospitals")
	case strategy.Severity == clinical.SeveritySevere || strategy.Severity == clinical.SeverityCritical:
		parts = append(parts, "Focusing on top-tier medical centers")
	}
	if len(parts) == 0 {
		return "General hospital recommendations"
	}
	return strings.Join(parts, "; ")
}
