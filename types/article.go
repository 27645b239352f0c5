package types

import "time"

// NewsItem is the canonical article shape shared by every source.
// PublishedAt is serialized as RFC 3339 so stored files round-trip cleanly.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
	SourceName  string    `json:"sourceName"`
	Author      string    `json:"author,omitempty"`
	Tags        []string  `json:"tags"`
}

// NewsResponse is the persisted container for one (source, date) pair.
type NewsResponse struct {
	Date     string     `json:"date"`
	Source   string     `json:"source"`
	Articles []NewsItem `json:"articles"`
}

// CrawlResult reports the outcome of crawling a single source.
type CrawlResult struct {
	RunID          string     `json:"runId"`
	Success        bool       `json:"success"`
	Articles       []NewsItem `json:"articles"`
	Error          string     `json:"error,omitempty"`
	Source         string     `json:"source"`
	Timestamp      time.Time  `json:"timestamp"`
	PagesProcessed int        `json:"pagesProcessed"`
}

// SearchResult is one page of a date-filtered article listing.
type SearchResult struct {
	Articles []NewsItem `json:"articles"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
	HasMore  bool       `json:"hasMore"`
}

// DatesIndex is the cached list of browsable dates plus per-source coverage.
// It is derived data: rebuilding it from the stored containers always works.
type DatesIndex struct {
	Dates            []string       `json:"dates"`
	LastUpdated      time.Time      `json:"lastUpdated"`
	TotalSources     int            `json:"totalSources"`
	Sources          []string       `json:"sources"`
	DateAvailability map[string]int `json:"dateAvailability"`
}
