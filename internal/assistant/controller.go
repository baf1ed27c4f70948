// Package assistant orchestrates the full analysis flow: X-ray and report
// extraction, record merging, meal planning and hospital recommendation.
// Every provider failure is replaced by a labeled fallback; the pipeline
// only errors when it has nothing at all to work with.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
	"github.com/joelkehle/healthgenie/internal/hospitalsearch"
	"github.com/joelkehle/healthgenie/internal/mealplan"
	"github.com/joelkehle/healthgenie/internal/medreport"
	"github.com/joelkehle/healthgenie/internal/xray"
)

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

type ProgressFn func(stage, message string)

// Request carries the uploaded images. Either may be nil; at least one is
// required.
type Request struct {
	XRayImage   *genai.Media
	ReportImage *genai.Media
}

// Result is the complete analysis bundle handed to the display layer.
// Notices list the stages that fell back to placeholders; StageErrors carry
// the underlying errors for callers that need to inspect or log them.
type Result struct {
	XRayAnalysis     *clinical.Record               `json:"xray_analysis,omitempty"`
	ReportAnalysis   *clinical.Record               `json:"report_analysis,omitempty"`
	Combined         clinical.Record                `json:"combined_analysis"`
	CriticalFindings medreport.CriticalFindings     `json:"critical_findings"`
	MealPlan         mealplan.Plan                  `json:"meal_plan"`
	Hospitals        hospitalsearch.Recommendations `json:"hospital_recommendations"`
	ProcessingTime   float64                        `json:"processing_time_seconds"`
	Notices          []string                       `json:"notices,omitempty"`
	StageErrors      []*StageError                  `json:"-"`
}

type Controller struct {
	xray      *xray.Analyzer
	report    *medreport.Analyzer
	meals     *mealplan.Planner
	hospitals *hospitalsearch.Recommender
}

func NewController(caller genai.Caller, hospitals *hospitalsearch.Recommender) *Controller {
	return &Controller{
		xray:      xray.NewAnalyzer(caller),
		report:    medreport.NewAnalyzer(caller),
		meals:     mealplan.NewPlanner(caller),
		hospitals: hospitals,
	}
}

var ErrNoInput = errors.New("no X-ray or report image provided")

func (c *Controller) Run(ctx context.Context, req Request) (Result, error) {
	return c.RunWithProgress(ctx, req, nil)
}

// RunWithProgress executes the pipeline. The two image analyses run
// concurrently, as do the meal plan and hospital search once the combined
// record exists. Provider failures are substituted with fallbacks and
// recorded as notices; the only hard error is an empty request.
func (c *Controller) RunWithProgress(ctx context.Context, req Request, progress ProgressFn) (Result, error) {
	start := time.Now()
	res := Result{}
	if req.XRayImage == nil && req.ReportImage == nil {
		return res, ErrNoInput
	}

	var mu sync.Mutex
	notice := func(stage, msg string) {
		mu.Lock()
		res.Notices = append(res.Notices, fmt.Sprintf("%s: %s", stage, msg))
		mu.Unlock()
	}
	fail := func(stage, msg string, err error) {
		mu.Lock()
		res.StageErrors = append(res.StageErrors, &StageError{Stage: stage, Err: err})
		mu.Unlock()
		notice(stage, msg)
	}

	var wg sync.WaitGroup
	if req.XRayImage != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			emit(progress, "analyze_xray", "Analyzing X-ray image...")
			rec, err := c.xray.Analyze(ctx, *req.XRayImage)
			if err != nil {
				log.Printf("assistant stage=analyze_xray fallback err=%v", err)
				fail("analyze_xray", "X-ray analysis unavailable, using placeholder findings", err)
				rec = xray.FallbackRecord()
			}
			mu.Lock()
			res.XRayAnalysis = &rec
			mu.Unlock()
		}()
	}
	if req.ReportImage != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			emit(progress, "analyze_report", "Analyzing medical report...")
			rec, err := c.report.Analyze(ctx, *req.ReportImage)
			if err != nil {
				log.Printf("assistant stage=analyze_report fallback err=%v", err)
				fail("analyze_report", "Report analysis unavailable, using placeholder findings", err)
				rec = medreport.FallbackRecord()
			}
			mu.Lock()
			res.ReportAnalysis = &rec
			mu.Unlock()
		}()
	}
	wg.Wait()

	emit(progress, "combine", "Combining medical analyses...")
	res.Combined = clinical.Merge(res.XRayAnalysis, res.ReportAnalysis)
	res.CriticalFindings = medreport.IdentifyCriticalFindings(res.Combined)

	var mealsWG sync.WaitGroup
	mealsWG.Add(2)
	go func() {
		defer mealsWG.Done()
		emit(progress, "meal_plan", "Generating personalized meal plan...")
		plan, err := c.meals.Generate(ctx, res.Combined)
		if err != nil {
			log.Printf("assistant stage=meal_plan fallback err=%v", err)
			fail("meal_plan", "Meal plan generation unavailable, using general guidance", err)
			plan = mealplan.FallbackPlan()
		}
		mu.Lock()
		res.MealPlan = plan
		mu.Unlock()
	}()
	go func() {
		defer mealsWG.Done()
		emit(progress, "hospital_search", "Finding specialized hospitals...")
		recs := c.hospitals.FindBestHospitals(ctx, res.Combined)
		if recs.UsedFallback {
			notice("hospital_search", "Live hospital search unavailable, showing curated recommendations")
		}
		mu.Lock()
		res.Hospitals = recs
		mu.Unlock()
	}()
	mealsWG.Wait()

	res.ProcessingTime = time.Since(start).Seconds()
	emit(progress, "done", "Analysis completed")
	return res, nil
}

func emit(progress ProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
