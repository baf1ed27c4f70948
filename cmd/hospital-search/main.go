package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joelkehle/healthgenie/internal/clinical"
	"github.com/joelkehle/healthgenie/internal/hospitalsearch"
)

// Reads a clinical record as JSON (file or stdin) and prints ranked
// hospital recommendations.
func main() {
	input := flag.String("input", "-", "Clinical record JSON file ('-' for stdin)")
	location := flag.String("location", "India", "Location for hospital search")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("hospital-search .env load failed: %v", err)
	}

	var reader io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		reader = f
	}

	var rec clinical.Record
	if err := json.NewDecoder(reader).Decode(&rec); err != nil {
		log.Fatalf("decode clinical record: %v", err)
	}

	recommender := hospitalsearch.NewRecommender(*location, newSearcher(*location))
	recs := recommender.FindBestHospitals(context.Background(), rec)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		log.Fatal(err)
	}
}

func newSearcher(location string) hospitalsearch.Searcher {
	apiKey := strings.TrimSpace(os.Getenv("SERPAPI_API_KEY"))
	if apiKey == "" {
		log.Printf("hospital-search SERPAPI_API_KEY not set, using fallback recommendations")
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
