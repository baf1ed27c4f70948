package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joelkehle/healthgenie/internal/assistant"
	"github.com/joelkehle/healthgenie/internal/genai"
	"github.com/joelkehle/healthgenie/internal/hospitalsearch"
	"github.com/joelkehle/healthgenie/internal/httpapi"
	"github.com/joelkehle/healthgenie/internal/mealplan"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	location := flag.String("location", "India", "Default location for hospital search")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("healthgenie .env load failed: %v", err)
	}

	caller, err := genai.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("healthgenie using model %s", caller.ModelName())

	hospitals := hospitalsearch.NewRecommender(*location, newSearcher(*location))
	controller := assistant.NewController(caller, hospitals)
	handler := httpapi.NewServer(controller, hospitals, mealplan.NewPlanner(caller))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("healthgenie listening on %s (location=%s)", *addr, *location)
	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newSearcher returns nil when no API key is configured; the recommender
// then serves the curated fallback set.
func newSearcher(location string) hospitalsearch.Searcher {
	apiKey := strings.TrimSpace(os.Getenv("SERPAPI_API_KEY"))
	if apiKey == "" {
		log.Printf("healthgenie SERPAPI_API_KEY not set, hospital search uses fallback recommendations")
		return nil
	}
	searcher, err := hospitalsearch.NewWebSearcher(hospitalsearch.SearchConfig{
		APIKey:   apiKey,
		Location: location,
	})
	if err != nil {
		log.Fatal(err)
	}
	return searcher
}
