package hospitalsearch

// fallbackSearchContext labels candidates that did not come from a live
// search.
const fallbackSearchContext = "Fallback recommendations"

// FallbackHospitals returns the curated set used when the search provider
// is unconfigured, unreachable or returns nothing for every query. Each
// entry names its specialties in the description so the regular scorer and
// derivation logic apply unchanged. Ranking must never return zero
// hospitals, so this set is always non-empty.
func FallbackHospitals() []Candidate {
	return []Candidate{
		{
			Name:          "All India Institute of Medical Sciences (AIIMS), New Delhi",
			Description:   "Premier medical institute with comprehensive healthcare services, advanced medical technology, 24/7 emergency care and expert specialists in cardiology, neurology, oncology, orthopedics, emergency medicine and pulmonology.",
			URL:           "https://www.aiims.edu",
			Position:      1,
			SearchContext: fallbackSearchContext,
		},
		{
			Name:          "Apollo Hospitals, Chennai",
			Description:   "Leading private healthcare provider with state-of-the-art facilities, internationally trained doctors, emergency services and comprehensive care in cardiology, oncology, neurology, orthopedics and gastroenterology.",
			URL:           "https://www.apollohospitals.com",
			Position:      2,
			SearchContext: fallbackSearchContext,
		},
		{
			Name:          "Fortis Healthcare",
			Description:   "Multi-specialty healthcare chain with advanced medical technology, experienced doctors, trauma and emergency care, cardiology, neurology, orthopedics and pulmonology services across India.",
			URL:           "https://www.fortishealthcare.com",
			Position:      3,
			SearchContext: fallbackSearchContext,
		},
		{
			Name:          "Max Healthcare",
			Description:   "Premium healthcare provider with cutting-edge medical technology, internationally accredited facilities, emergency department and expert specialists in cardiology, oncology, neurology, orthopedics and gastroenterology.",
			URL:           "https://www.maxhealthcare.in",
			Position:      4,
			SearchContext: fallbackSearchContext,
		},
		{
			Name:          "Medanta - The Medicity, Gurgaon",
			Description:   "Multi-super specialty hospital with world-class infrastructure, advanced medical equipment, critical care and renowned experts in cardiology, neurology, oncology, orthopedics and emergency medicine.",
			URL:           "https://www.medanta.org",
			Position:      5,
			SearchContext: fallbackSearchContext,
		},
	}
}
