package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"newsdeck/api"
	"newsdeck/config"
	"newsdeck/crawler"
	"newsdeck/hnapi"
	"newsdeck/seen"
	"newsdeck/storage"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	store := storage.NewFileStore(config.GetEnvOrDefault("DATA_DIR", config.DefaultDataDir))

	var seenFilter crawler.SeenFilter
	if f, err := seen.NewFromEnv(); err != nil {
		log.Printf("Warning: seen filter disabled: %v", err)
	} else if f != nil {
		seenFilter = f
	}

	engine := crawler.New(crawler.Config{
		Store:         store,
		HN:            hnapi.NewClient(""),
		Seen:          seenFilter,
		EnrichContent: config.GetEnvBool("ENRICH_CONTENT"),
	})

	r := api.NewRouter(store, engine)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/news")
	log.Println("  GET  /api/sources")
	log.Println("  GET  /api/sources/dates")
	log.Println("  GET  /api/sources/:source/dates")
	log.Println("  GET  /api/sources/:source/:date")
	log.Println("  POST /api/crawler/crawl")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
