// Command datesindex rebuilds the dates.json artifact from the stored
// containers, without crawling. Useful after manual edits to the data
// directory or when switching the combination policy.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"newsdeck/config"
	"newsdeck/storage"
)

func main() {
	log.SetOutput(os.Stderr)

	// Flag defaults read the environment, so .env must load first.
	_ = godotenv.Load()

	dataDir := flag.String("data", config.GetEnvOrDefault("DATA_DIR", config.DefaultDataDir), "storage root directory")
	policy := flag.String("policy", config.GetEnvOrDefault("DATES_POLICY", "union"), "dates index policy: union or intersection")
	flag.Parse()

	store := storage.NewFileStore(*dataDir)

	datesPolicy := storage.DatesUnion
	if *policy == string(storage.DatesIntersection) {
		datesPolicy = storage.DatesIntersection
	}

	idx := store.BuildDatesIndex(config.SourceNames(), datesPolicy)
	if err := store.WriteDatesIndex(idx); err != nil {
		log.Fatalf("Failed to write dates index: %v", err)
	}

	log.Printf("Generated dates index with %d dates (%s policy)", len(idx.Dates), datesPolicy)
	for source, count := range idx.DateAvailability {
		log.Printf("  %s: %d dates", source, count)
	}
}
