// Package mealplan generates and structures a 3-day meal plan from a
// clinical record via the text model.
package mealplan

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
)

const planPromptTemplate = `As a clinical nutritionist, analyze the medical findings below and create a personalized 3-day meal plan.
Consider the following aspects:

1. Medical Context:
- Primary diagnosis and conditions
- Any dietary restrictions or allergies
- Medications that may interact with foods

2. Nutritional Requirements:
- Macro and micronutrient needs
- Specific nutrients to increase or avoid
- Caloric requirements

3. Create a detailed 3-day meal plan with breakfast, lunch, dinner and snacks,
including portion sizes and preparation methods.

4. Additional Guidelines:
- Foods that help manage the condition
- Foods to avoid
- Hydration recommendations
- Supplement suggestions (if needed)

Format as:
**Nutritional Requirements:**
- [requirement lines]

**Day 1:**
**Breakfast:**
- [items]
**Lunch:**
- [items]
**Dinner:**
- [items]
**Snacks:**
- [items]

**Day 2:** [same format]
**Day 3:** [same format]

**Guidelines:**
- [foods to eat, foods to avoid, hydration, supplements]

Medical Conditions:
%s

Dietary Restrictions:
%s`

const (
	DefaultMealDetail = "Meal details to be customized"
	DefaultCalories   = "To be determined based on individual factors"
	DefaultHydration  = "Maintain adequate hydration throughout the day"
	DefaultCondition  = "General health maintenance"
)

type Planner struct {
	caller genai.Caller
}

func NewPlanner(caller genai.Caller) *Planner {
	return &Planner{caller: caller}
}

// Generate builds the nutritionist prompt from the record, calls the model
// and structures the response. The returned error is only ever a provider
// failure; callers substitute FallbackPlan.
func (p *Planner) Generate(ctx context.Context, rec clinical.Record) (Plan, error) {
	text, err := p.caller.GenerateText(ctx, buildPrompt(rec))
	if err != nil {
		log.Printf("mealplan generation failed class=%d err=%v", genai.ClassifyError(err), err)
		return Plan{}, err
	}
	return ParsePlan(text), nil
}

// buildPrompt extracts the conditions and diet-related restrictions from
// the record. With no usable context at all, the plan is generated for
// general health maintenance.
func buildPrompt(rec clinical.Record) string {
	conditions := append([]string{}, rec.Impression.PrimaryFindings...)
	conditions = append(conditions, rec.Diagnoses...)

	restrictions := []string{}
	for _, r := range rec.Recommendations {
		lower := strings.ToLower(r)
		if strings.Contains(lower, "diet") || strings.Contains(lower, "food") {
			restrictions = append(restrictions, r)
		}
	}

	if len(conditions) == 0 {
		conditions = []string{DefaultCondition}
	}
	restrictionText := "- None specified"
	if len(restrictions) > 0 {
		restrictionText = bulletList(restrictions)
	}
	return fmt.Sprintf(planPromptTemplate, bulletList(conditions), restrictionText)
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
