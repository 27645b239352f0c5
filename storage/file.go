// Package storage persists articles into per-source, per-date JSON
// containers and answers the read queries the API and reader build on.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"newsdeck/types"
)

// FileStore keeps one JSON document per (source, date) pair under dataDir:
// <dataDir>/<source>/<YYYY-MM-DD>.json
type FileStore struct {
	dataDir string
}

// NewFileStore creates a store rooted at dataDir.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

// DataDir returns the store's root directory.
func (s *FileStore) DataDir() string { return s.dataDir }

// Save overwrites the entire container for (source, date).
func (s *FileStore) Save(source, date string, articles []types.NewsItem) error {
	sourceDir := filepath.Join(s.dataDir, source)
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		return fmt.Errorf("failed to create source dir: %w", err)
	}

	data := types.NewsResponse{Date: date, Source: source, Articles: articles}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode articles: %w", err)
	}

	path := filepath.Join(sourceDir, date+".json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SaveWithDeduplication merges newArticles into the existing container,
// keeping only articles whose ID is not already present. When nothing new
// survives the filter the container is left untouched, which is what makes
// repeated crawls idempotent. The merged list is re-sorted by publication
// time, newest first.
func (s *FileStore) SaveWithDeduplication(source, date string, newArticles []types.NewsItem) error {
	existing := s.Load(source, date)

	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[a.ID] = struct{}{}
	}

	var fresh []types.NewsItem
	for _, a := range newArticles {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		fresh = append(fresh, a)
	}

	if len(fresh) == 0 {
		log.Printf("Dedup merge for %s/%s: 0 new, %d existing, %d total (no write)",
			source, date, len(existing), len(existing))
		return nil
	}

	merged := append(existing, fresh...)
	sortByPublishedDesc(merged)

	log.Printf("Dedup merge for %s/%s: %d new, %d existing, %d total",
		source, date, len(fresh), len(existing), len(merged))
	return s.Save(source, date, merged)
}

// Load reads one container. A missing or corrupt file yields an empty list;
// storage absence is a normal state, not an error.
func (s *FileStore) Load(source, date string) []types.NewsItem {
	path := filepath.Join(s.dataDir, source, date+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return []types.NewsItem{}
	}
	var data types.NewsResponse
	if err := json.Unmarshal(b, &data); err != nil {
		log.Printf("Warning: corrupt container %s: %v", path, err)
		return []types.NewsItem{}
	}
	if data.Articles == nil {
		return []types.NewsItem{}
	}
	return data.Articles
}

// AvailableDates lists the date keys stored for a source, most recent first.
func (s *FileStore) AvailableDates(source string) []string {
	entries, err := os.ReadDir(filepath.Join(s.dataDir, source))
	if err != nil {
		return []string{}
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// AllForSource returns the union of every date container for a source,
// newest first.
func (s *FileStore) AllForSource(source string) []types.NewsItem {
	var all []types.NewsItem
	for _, date := range s.AvailableDates(source) {
		all = append(all, s.Load(source, date)...)
	}
	sortByPublishedDesc(all)
	return all
}

// Sources enumerates the source keys that have at least one container.
func (s *FileStore) Sources() []string {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return []string{}
	}
	sources := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if len(s.AvailableDates(e.Name())) > 0 {
			sources = append(sources, e.Name())
		}
	}
	sort.Strings(sources)
	return sources
}

// PurgeOlderThan deletes containers whose date key predates the retention
// cutoff. Best-effort: individual failures are logged, not raised.
func (s *FileStore) PurgeOlderThan(daysToKeep int) {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysToKeep)

	for _, source := range s.Sources() {
		for _, date := range s.AvailableDates(source) {
			fileDate, err := time.Parse("2006-01-02", date)
			if err != nil {
				continue
			}
			if !fileDate.Before(cutoff) {
				continue
			}
			path := filepath.Join(s.dataDir, source, date+".json")
			if err := os.Remove(path); err != nil {
				log.Printf("Warning: failed to remove %s: %v", path, err)
				continue
			}
			log.Printf("Purged %s/%s (older than %d days)", source, date, daysToKeep)
		}
	}
}

// Page returns one page of the date-filtered article collection. With an
// empty source every stored source contributes. Pagination is a pure slice
// over the already-sorted collection.
func (s *FileStore) Page(date string, page, limit int, source string) types.SearchResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var articles []types.NewsItem
	if source != "" {
		articles = s.Load(source, date)
	} else {
		for _, src := range s.Sources() {
			articles = append(articles, s.Load(src, date)...)
		}
	}
	sortByPublishedDesc(articles)

	total := len(articles)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return types.SearchResult{
		Articles: articles[start:end],
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  page*limit < total,
	}
}

// DateKey derives the UTC calendar-day bucket for a publication instant.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func sortByPublishedDesc(articles []types.NewsItem) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
