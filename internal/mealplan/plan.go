package mealplan

import (
	"fmt"
	"strings"

	"github.com/joelkehle/healthgenie/internal/textparse"
)

const planDays = 3

type NutritionalRequirements struct {
	Calories string   `json:"calories"`
	Macros   []string `json:"macros"`
	Micros   []string `json:"micros"`
}

type DayPlan struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
	Snacks    []string `json:"snacks"`
}

type Guidelines struct {
	RecommendedFoods []string `json:"recommended_foods"`
	FoodsToAvoid     []string `json:"foods_to_avoid"`
	Hydration        string   `json:"hydration"`
	Supplements      []string `json:"supplements"`
}

// Plan always carries three fully populated days after defaulting; no
// consumer has to check for missing meals.
type Plan struct {
	Requirements NutritionalRequirements `json:"nutritional_requirements"`
	Days         [planDays]DayPlan       `json:"daily_plans"`
	Guidelines   Guidelines              `json:"guidelines"`
}

func sectionVocabulary() textparse.Vocabulary {
	return textparse.Vocabulary{
		{Trigger: "nutritional requirements", Bucket: "requirements"},
		{Trigger: "foods to avoid", Bucket: "avoid"},
		{Trigger: "foods that help", Bucket: "recommended"},
		{Trigger: "hydration", Bucket: "hydration", Inline: true},
		{Trigger: "additional notes", Bucket: "notes"},
		{Trigger: "guidelines", Bucket: "guidelines"},
		{Trigger: "breakfast", Bucket: "breakfast", PerDay: true, Inline: true},
		{Trigger: "lunch", Bucket: "lunch", PerDay: true, Inline: true},
		{Trigger: "dinner", Bucket: "dinner", PerDay: true, Inline: true},
		{Trigger: "snack", Bucket: "snacks", PerDay: true, Inline: true},
	}
}

// ParsePlan structures the nutritionist free text into the fixed 3-day
// shape, then fills placeholders for anything the model left out. It never
// fails; worst case is a plan made entirely of placeholders.
func ParsePlan(text string) Plan {
	doc := textparse.Parse(text, sectionVocabulary())

	var plan Plan
	for day := 1; day <= planDays; day++ {
		d := &plan.Days[day-1]
		d.Breakfast = doc.Get(dayPath(day, "breakfast"))
		d.Lunch = doc.Get(dayPath(day, "lunch"))
		d.Dinner = doc.Get(dayPath(day, "dinner"))
		d.Snacks = doc.Get(dayPath(day, "snacks"))
	}
	plan.Requirements = classifyRequirements(doc.Get("requirements"))
	plan.Guidelines = classifyGuidelines(doc)
	plan.applyDefaults()
	return plan
}

func dayPath(day int, meal string) string {
	return fmt.Sprintf("day%d.%s", day, meal)
}

// classifyRequirements sorts requirement lines into calories, macros and
// micros by keyword. The first calorie line wins.
func classifyRequirements(lines []string) NutritionalRequirements {
	var req NutritionalRequirements
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "calorie"):
			if req.Calories == "" {
				req.Calories = line
			}
		case strings.Contains(lower, "protein"), strings.Contains(lower, "fat"), strings.Contains(lower, "carb"):
			req.Macros = append(req.Macros, line)
		default:
			req.Micros = append(req.Micros, line)
		}
	}
	return req
}

// classifyGuidelines merges the explicit guideline buckets with the
// generic ones, sorting generic lines by their own wording.
func classifyGuidelines(doc textparse.Document) Guidelines {
	g := Guidelines{
		FoodsToAvoid:     append([]string{}, doc.Get("avoid")...),
		RecommendedFoods: append([]string{}, doc.Get("recommended")...),
		Hydration:        doc.First("hydration"),
	}
	generic := append(append([]string{}, doc.Get("guidelines")...), doc.Get("notes")...)
	for _, line := range generic {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "avoid"):
			g.FoodsToAvoid = append(g.FoodsToAvoid, line)
		case strings.Contains(lower, "hydration"), strings.Contains(lower, "water"):
			if g.Hydration == "" {
				g.Hydration = line
			}
		case strings.Contains(lower, "supplement"):
			g.Supplements = append(g.Supplements, line)
		default:
			g.RecommendedFoods = append(g.RecommendedFoods, line)
		}
	}
	return g
}

func (p *Plan) applyDefaults() {
	for i := range p.Days {
		fillMeal(&p.Days[i].Breakfast)
		fillMeal(&p.Days[i].Lunch)
		fillMeal(&p.Days[i].Dinner)
		fillMeal(&p.Days[i].Snacks)
	}
	if p.Requirements.Calories == "" {
		p.Requirements.Calories = DefaultCalories
	}
	if p.Guidelines.Hydration == "" {
		p.Guidelines.Hydration = DefaultHydration
	}
}

func fillMeal(meal *[]string) {
	if len(*meal) == 0 {
		*meal = []string{DefaultMealDetail}
	}
}

// FallbackPlan is the fixed substitute when the model is unavailable:
// three placeholder days plus the standing defaults.
func FallbackPlan() Plan {
	var plan Plan
	plan.Guidelines.RecommendedFoods = []string{"Consult a nutritionist for personalized guidelines"}
	plan.applyDefaults()
	return plan
}
