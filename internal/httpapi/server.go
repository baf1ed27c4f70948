// Package httpapi exposes the analysis pipeline over HTTP: multipart image
// uploads in, structured JSON and rendered reports out.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/joelkehle/healthgenie/internal/assistant"
	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/genai"
	"github.com/joelkehle/healthgenie/internal/hospitalsearch"
	"github.com/joelkehle/healthgenie/internal/mealplan"
)

// ReportPDFRenderer turns report markdown into PDF bytes.
type ReportPDFRenderer interface {
	Render(ctx context.Context, markdown string) ([]byte, error)
}

type Server struct {
	controller  *assistant.Controller
	hospitals   *hospitalsearch.Recommender
	meals       *mealplan.Planner
	pdfRenderer ReportPDFRenderer
}

func NewServer(controller *assistant.Controller, hospitals *hospitalsearch.Recommender, meals *mealplan.Planner) http.Handler {
	return newServer(controller, hospitals, meals, NewChromiumPDFRenderer())
}

func newServer(controller *assistant.Controller, hospitals *hospitalsearch.Recommender, meals *mealplan.Planner, pdf ReportPDFRenderer) http.Handler {
	s := &Server{controller: controller, hospitals: hospitals, meals: meals, pdfRenderer: pdf}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/hospitals", s.handleHospitals)
	mux.HandleFunc("/v1/mealplan", s.handleMealPlan)
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/report-html", s.handleReportHTML)
	mux.HandleFunc("/v1/report-pdf", s.handleReportPDF)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"ok": true})
}

// handleAnalyze accepts multipart form uploads under the "xray" and
// "report" fields, runs the full pipeline and returns the result bundle.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, 400, "invalid multipart form")
		return
	}
	req := assistant.Request{}
	xrayMedia, err := formImage(r, "xray")
	if err != nil {
		writeError(w, 400, "xray: "+err.Error())
		return
	}
	req.XRayImage = xrayMedia
	reportMedia, err := formImage(r, "report")
	if err != nil {
		writeError(w, 400, "report: "+err.Error())
		return
	}
	req.ReportImage = reportMedia

	result, err := s.controller.Run(r.Context(), req)
	if errors.Is(err, assistant.ErrNoInput) {
		writeError(w, 400, "upload an X-ray image, a report image, or both")
		return
	}
	if err != nil {
		log.Printf("httpapi analyze failed: %v", err)
		writeError(w, 500, "analysis failed")
		return
	}
	writeJSON(w, 200, result)
}

// handleHospitals takes a clinical record as JSON and returns ranked
// hospital recommendations without running the image stages.
func (s *Server) handleHospitals(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, 200, s.hospitals.FindBestHospitals(r.Context(), rec))
}

// handleMealPlan takes a clinical record as JSON and returns the 3-day
// plan, substituting the fallback when the model is unavailable.
func (s *Server) handleMealPlan(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeRecord(w, r)
	if !ok {
		return
	}
	plan, err := s.meals.Generate(r.Context(), rec)
	if err != nil {
		if !errors.Is(err, genai.ErrUnavailable) {
			log.Printf("httpapi mealplan failed: %v", err)
		}
		plan = mealplan.FallbackPlan()
	}
	writeJSON(w, 200, plan)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	md, ok := s.runForReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, md)
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	md, ok := s.runForReport(w, r)
	if !ok {
		return
	}
	htmlDoc, err := RenderHTML(md)
	if err != nil {
		log.Printf("httpapi report html failed: %v", err)
		writeError(w, 500, "report rendering failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(htmlDoc)
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	md, ok := s.runForReport(w, r)
	if !ok {
		return
	}
	pdf, err := s.pdfRenderer.Render(r.Context(), md)
	if err != nil {
		log.Printf("httpapi report pdf failed: %v", err)
		writeError(w, 500, "PDF rendering failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="health-analysis.pdf"`)
	_, _ = w.Write(pdf)
}

// runForReport repeats the analyze flow and renders the summary markdown.
func (s *Server) runForReport(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return "", false
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, 400, "invalid multipart form")
		return "", false
	}
	req := assistant.Request{}
	var err error
	if req.XRayImage, err = formImage(r, "xray"); err != nil {
		writeError(w, 400, "xray: "+err.Error())
		return "", false
	}
	if req.ReportImage, err = formImage(r, "report"); err != nil {
		writeError(w, 400, "report: "+err.Error())
		return "", false
	}
	result, err := s.controller.Run(r.Context(), req)
	if errors.Is(err, assistant.ErrNoInput) {
		writeError(w, 400, "upload an X-ray image, a report image, or both")
		return "", false
	}
	if err != nil {
		log.Printf("httpapi report analysis failed: %v", err)
		writeError(w, 500, "analysis failed")
		return "", false
	}
	return assistant.BuildMarkdown(result), true
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (clinical.Record, bool) {
	var rec clinical.Record
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return rec, false
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&rec); err != nil {
		writeError(w, 400, "invalid clinical record JSON")
		return rec, false
	}
	return rec, true
}
