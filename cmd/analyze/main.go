package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joelkehle/healthgenie/internal/assistant"
	"github.com/joelkehle/healthgenie/internal/genai"
	"github.com/joelkehle/healthgenie/internal/hospitalsearch"
)

// Runs the full analysis pipeline over local image files and prints the
// result bundle as JSON.
func main() {
	xrayPath := flag.String("xray", "", "Path to an X-ray image (JPEG/PNG/BMP)")
	reportPath := flag.String("report", "", "Path to a medical report image (JPEG/PNG/BMP)")
	location := flag.String("location", "India", "Location for hospital search")
	flag.Parse()

	if *xrayPath == "" && *reportPath == "" {
		log.Fatal("provide --xray and/or --report")
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("analyze .env load failed: %v", err)
	}

	caller, err := genai.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	req := assistant.Request{
		XRayImage:   loadImage(*xrayPath),
		ReportImage: loadImage(*reportPath),
	}
	hospitals := hospitalsearch.NewRecommender(*location, newSearcher(*location))
	controller := assistant.NewController(caller, hospitals)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := controller.RunWithProgress(ctx, req, func(stage, message string) {
		log.Printf("analyze stage=%s %s", stage, message)
	})
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal(err)
	}
}

func loadImage(path string) *genai.Media {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return &genai.Media{MIMEType: http.DetectContentType(data), Data: data}
}

func newSearcher(location string) hospitalsearch.Searcher {
	apiKey := strings.TrimSpace(os.Getenv("SERPAPI_API_KEY"))
	if apiKey == "" {
		log.Printf("analyze SERPAPI_API_KEY not set, using fallback hospital recommendations")
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
