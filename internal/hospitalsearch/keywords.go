package hospitalsearch

// Keyword tables are fixed configuration, loaded once and treated as
// read-only. Components take them by value so tests can swap in custom
// vocabularies.

type specialtyKeywords struct {
	Tag      Specialty
	Keywords []string
}

func defaultSpecialtyKeywords() []specialtyKeywords {
	return []specialtyKeywords{
		{SpecialtyCardiac, []string{"cardiology", "heart", "cardiac", "cardiovascular", "coronary"}},
		{SpecialtyPulmonary, []string{"pulmonology", "lung", "respiratory", "chest", "breathing"}},
		{SpecialtyOrthopedic, []string{"orthopedics", "bone", "joint", "spine", "fracture"}},
		{SpecialtyNeurological, []string{"neurology", "brain", "neuro", "stroke", "nervous"}},
		{SpecialtyOncology, []string{"cancer", "oncology", "tumor", "malignancy", "chemotherapy"}},
		{SpecialtyGastro, []string{"gastroenterology", "stomach", "liver", "digestive", "intestine"}},
		{SpecialtyEmergency, []string{"emergency", "trauma", "critical", "urgent", "accident"}},
		{SpecialtyPediatric, []string{"pediatric", "children", "child", "infant", "kids"}},
		{SpecialtyGynecology, []string{"gynecology", "women", "pregnancy", "obstetrics", "maternity"}},
	}
}

// urgentConditionKeywords flip urgency to urgent regardless of severity.
var urgentConditionKeywords = []string{
	"emergency", "urgent", "acute", "severe", "critical",
	"heart attack", "stroke", "trauma", "bleeding",
}

// premiumHospitals are widely recognized providers; a name containing one
// earns a one-time brand bonus during scoring.
var premiumHospitals = []string{
	"aiims", "apollo", "fortis", "max", "medanta", "manipal",
	"tata memorial", "pgimer", "christian medical college",
	"sankara nethralaya", "narayana health", "aster",
}

var urgentCareTerms = []string{"emergency", "24/7", "trauma", "critical care", "icu"}

var qualityTerms = []string{
	"best", "top", "leading", "premier", "advanced", "renowned",
	"excellence", "award-winning", "accredited", "certified",
}

var techTerms = []string{
	"latest technology", "state-of-the-art", "modern equipment",
	"robotic surgery", "digital", "advanced imaging",
}

var emergencyIndicators = []string{
	"emergency", "24/7", "trauma", "critical care", "icu",
	"round the clock", "emergency department",
}

type qualityIndicator struct {
	Label    string
	Keywords []string
}

var qualityIndicators = []qualityIndicator{
	{"Accredited", []string{"accredited", "certified", "iso certified"}},
	{"Award Winning", []string{"award", "winner", "recognition"}},
	{"Advanced Technology", []string{"advanced", "state-of-the-art", "modern equipment"}},
	{"Experienced Staff", []string{"experienced", "expert", "specialist"}},
	{"Research Center", []string{"research", "clinical trials", "innovation"}},
}

// conditionStoplist holds boilerplate phrases that disqualify a raw
// condition string during normalization.
var conditionStoplist = []string{
	"not specified", "analysis completed", "see detailed",
	"medical report", "x-ray analysis", "further evaluation",
}

// keywordExcludeWords are generic medical words that never help hospital
// matching and are dropped from condition keywords.
var keywordExcludeWords = map[string]struct{}{
	"patient": {}, "medical": {}, "condition": {}, "diagnosis": {},
	"treatment": {}, "analysis": {}, "report": {}, "finding": {},
	"result": {}, "examination": {},
}
