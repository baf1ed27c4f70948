package hospitalsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joelkehle/healthgenie/internal/genai"
)

const (
	DefaultSearchBaseURL   = "https://serpapi.com"
	DefaultResultsPerQuery = 10
)

// Searcher queries a Google-results API (SerpAPI wire shape) for hospital
// candidates. Provider failures of any kind surface as
// genai.ErrUnavailable so callers can substitute the curated fallback.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Candidate, error)
}

type SearchConfig struct {
	APIKey     string
	BaseURL    string
	Location   string
	NumResults int
	HTTPClient *http.Client
}

type WebSearcher struct {
	cfg SearchConfig
}

func NewWebSearcher(cfg SearchConfig) (*WebSearcher, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, errors.New("SERPAPI_API_KEY not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSearchBaseURL
	}
	if cfg.NumResults <= 0 {
		cfg.NumResults = DefaultResultsPerQuery
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebSearcher{cfg: cfg}, nil
}

type serpResponse struct {
	OrganicResults []struct {
		Title    string `json:"title"`
		Snippet  string `json:"snippet"`
		Link     string `json:"link"`
		Position int    `json:"position"`
	} `json:"organic_results"`
	Error string `json:"error"`
}

func (s *WebSearcher) Search(ctx context.Context, term string) ([]Candidate, error) {
	q := url.Values{}
	q.Set("q", term)
	q.Set("api_key", s.cfg.APIKey)
	q.Set("engine", "google")
	q.Set("num", fmt.Sprintf("%d", s.cfg.NumResults))
	if s.cfg.Location != "" {
		q.Set("location", s.cfg.Location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", genai.ErrUnavailable, err)
	}
	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", genai.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", genai.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("hospital-search provider error term=%q status=%d", term, resp.StatusCode)
		return nil, fmt.Errorf("%w: search API returned status %d", genai.ErrUnavailable, resp.StatusCode)
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", genai.ErrUnavailable, err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("%w: %s", genai.ErrUnavailable, parsed.Error)
	}

	out := make([]Candidate, 0, len(parsed.OrganicResults))
	for _, r := range parsed.OrganicResults {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		out = append(out, Candidate{
			Name:          strings.TrimSpace(r.Title),
			Description:   strings.TrimSpace(r.Snippet),
			URL:           r.Link,
			Position:      r.Position,
			SearchContext: term,
		})
	}
	return out, nil
}
