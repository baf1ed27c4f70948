package mealplan

import (
	"context"
	"errors"
	"reflect"
	"strings"
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

const samplePlan = `**Nutritional Requirements:**
- Approximately 2000 calories per day
- Protein: 80g daily to support recovery
- Vitamin C rich foods for immune support

**Day 1:**
**Breakfast:**
- Oatmeal with berries
- Green tea
**Lunch:**
- Grilled chicken salad
**Dinner:**
- Steamed fish with vegetables
**Snacks:**
- Apple slices with almond butter

**Day 2:**
**Breakfast:**
- Vegetable omelette
**Lunch:** Lentil soup with whole grain bread
**Dinner:**
- Baked tofu with brown rice

**Guidelines:**
- Avoid fried and processed foods
- Drink at least 2 liters of water daily
- Vitamin D supplement may help
- Include leafy greens every day`

func TestParsePlanStructure(t *testing.T) {
	plan := ParsePlan(samplePlan)

	d1 := plan.Days[0]
	if !reflect.DeepEqual(d1.Breakfast, []string{"Oatmeal with berries", "Green tea"}) {
		t.Fatalf("day1 breakfast: got %v", d1.Breakfast)
	}
	if !reflect.DeepEqual(d1.Lunch, []string{"Grilled chicken salad"}) {
		t.Fatalf("day1 lunch: got %v", d1.Lunch)
	}

	d2 := plan.Days[1]
	if !reflect.DeepEqual(d2.Lunch, []string{"Lentil soup with whole grain bread"}) {
		t.Fatalf("day2 inline lunch: got %v", d2.Lunch)
	}
	if !reflect.DeepEqual(d2.Snacks, []string{DefaultMealDetail}) {
		t.Fatalf("day2 snacks must default, got %v", d2.Snacks)
	}

	d3 := plan.Days[2]
	for _, meal := range [][]string{d3.Breakfast, d3.Lunch, d3.Dinner, d3.Snacks} {
		if !reflect.DeepEqual(meal, []string{DefaultMealDetail}) {
			t.Fatalf("missing day3 must be all placeholders, got %+v", d3)
		}
	}
}

func TestParsePlanRequirementsClassification(t *testing.T) {
	plan := ParsePlan(samplePlan)
	req := plan.Requirements

	if req.Calories != "Approximately 2000 calories per day" {
		t.Fatalf("calories: got %q", req.Calories)
	}
	if !reflect.DeepEqual(req.Macros, []string{"Protein: 80g daily to support recovery"}) {
		t.Fatalf("macros: got %v", req.Macros)
	}
	if !reflect.DeepEqual(req.Micros, []string{"Vitamin C rich foods for immune support"}) {
		t.Fatalf("micros: got %v", req.Micros)
	}
}

func TestParsePlanGuidelinesClassification(t *testing.T) {
	g := ParsePlan(samplePlan).Guidelines

	if !reflect.DeepEqual(g.FoodsToAvoid, []string{"Avoid fried and processed foods"}) {
		t.Fatalf("avoid: got %v", g.FoodsToAvoid)
	}
	if g.Hydration != "Drink at least 2 liters of water daily" {
		t.Fatalf("hydration: got %q", g.Hydration)
	}
	if !reflect.DeepEqual(g.Supplements, []string{"Vitamin D supplement may help"}) {
		t.Fatalf("supplements: got %v", g.Supplements)
	}
	if !reflect.DeepEqual(g.RecommendedFoods, []string{"Include leafy greens every day"}) {
		t.Fatalf("recommended: got %v", g.RecommendedFoods)
	}
}

func TestParsePlanEmptyTextAllDefaults(t *testing.T) {
	plan := ParsePlan("")
	for _, d := range plan.Days {
		if !reflect.DeepEqual(d.Breakfast, []string{DefaultMealDetail}) {
			t.Fatalf("expected placeholder breakfast, got %v", d.Breakfast)
		}
	}
	if plan.Requirements.Calories != DefaultCalories {
		t.Fatalf("calories default: got %q", plan.Requirements.Calories)
	}
	if plan.Guidelines.Hydration != DefaultHydration {
		t.Fatalf("hydration default: got %q", plan.Guidelines.Hydration)
	}
}

func TestGeneratePromptCarriesConditionsAndRestrictions(t *testing.T) {
	fake := &fakeCaller{response: samplePlan}
	p := NewPlanner(fake)
	rec := clinical.Record{
		Impression: clinical.Impression{PrimaryFindings: []string{"Pneumonia"}},
		Diagnoses:  []string{"Iron deficiency anemia"},
		Recommendations: []string{
			"Follow a low-sodium diet",
			"Repeat chest X-ray in 6 weeks",
		},
	}
	if _, err := p.Generate(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.prompt, "- Pneumonia") || !strings.Contains(fake.prompt, "- Iron deficiency anemia") {
		t.Fatalf("conditions missing from prompt:\n%s", fake.prompt)
	}
	if !strings.Contains(fake.prompt, "- Follow a low-sodium diet") {
		t.Fatal("diet recommendation must appear as restriction")
	}
	if strings.Contains(fake.prompt, "Repeat chest X-ray") {
		t.Fatal("non-dietary recommendation must not appear as restriction")
	}
}

func TestGenerateEmptyRecordUsesNeutralCondition(t *testing.T) {
	fake := &fakeCaller{response: samplePlan}
	p := NewPlanner(fake)
	if _, err := p.Generate(context.Background(), clinical.Record{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.prompt, DefaultCondition) {
		t.Fatal("expected neutral default condition in prompt")
	}
}

func TestGenerateProviderError(t *testing.T) {
	p := NewPlanner(&fakeCaller{err: genai.ErrUnavailable})
	if _, err := p.Generate(context.Background(), clinical.Record{}); !errors.Is(err, genai.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestFallbackPlanFullyPopulated(t *testing.T) {
	plan := FallbackPlan()
	for _, d := range plan.Days {
		for _, meal := range [][]string{d.Breakfast, d.Lunch, d.Dinner, d.Snacks} {
			if len(meal) == 0 {
				t.Fatal("fallback plan must populate every meal")
			}
		}
	}
	if plan.Guidelines.Hydration == "" || plan.Requirements.Calories == "" {
		t.Fatal("fallback plan must carry defaults")
	}
}
