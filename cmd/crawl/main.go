// Command crawl runs one full crawl cycle: every configured source, the
// retention sweep, the dates index rebuild, and an optional S3 publish.
// Intended to run from cron or a scheduled CI job.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"newsdeck/config"
	"newsdeck/crawler"
	"newsdeck/hnapi"
	"newsdeck/publish"
	"newsdeck/seen"
	"newsdeck/storage"
)

func main() {
	log.SetOutput(os.Stderr)

	// Flag defaults read the environment, so .env must load first.
	_ = godotenv.Load()

	dataDir := flag.String("data", config.GetEnvOrDefault("DATA_DIR", config.DefaultDataDir), "storage root directory")
	daysToKeep := flag.Int("keep", config.GetEnvInt("DAYS_TO_KEEP", config.DefaultDaysToKeep), "retention window in days")
	policy := flag.String("policy", config.GetEnvOrDefault("DATES_POLICY", "union"), "dates index policy: union or intersection")
	flag.Parse()

	ctx := context.Background()
	store := storage.NewFileStore(*dataDir)

	var seenFilter crawler.SeenFilter
	if f, err := seen.NewFromEnv(); err != nil {
		log.Printf("Warning: seen filter disabled: %v", err)
	} else if f != nil {
		seenFilter = f
		defer f.Close()
	}

	engine := crawler.New(crawler.Config{
		Store:         store,
		HN:            hnapi.NewClient(""),
		Seen:          seenFilter,
		EnrichContent: config.GetEnvBool("ENRICH_CONTENT"),
	})

	log.Println("=== Crawl cycle starting ===")
	results := engine.CrawlAll(ctx)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
			log.Printf("%-12s ok: %d articles, %d pages", r.Source, len(r.Articles), r.PagesProcessed)
		} else {
			log.Printf("%-12s FAILED: %s", r.Source, r.Error)
		}
	}
	log.Printf("Crawl complete: %d/%d sources succeeded", succeeded, len(results))

	store.PurgeOlderThan(*daysToKeep)

	datesPolicy := storage.DatesUnion
	if *policy == string(storage.DatesIntersection) {
		datesPolicy = storage.DatesIntersection
	}
	idx := store.BuildDatesIndex(config.SourceNames(), datesPolicy)
	if err := store.WriteDatesIndex(idx); err != nil {
		log.Fatalf("Failed to write dates index: %v", err)
	}
	log.Printf("Dates index rebuilt: %d dates (%s policy)", len(idx.Dates), datesPolicy)

	publisher, err := publish.NewFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to init publisher: %v", err)
	}
	if publisher == nil {
		log.Println("S3 not configured; skipping publish")
	} else if err := publisher.PublishAll(ctx, store, idx); err != nil {
		log.Printf("Publish finished with errors: %v", err)
	}

	if succeeded < len(results) {
		os.Exit(1)
	}
}
