package config

import "time"

// Crawl Constants
const (
	// MaxArticlesPerSource caps how many articles one crawl collects per source.
	MaxArticlesPerSource = 50

	// MaxPagesPerCrawl caps pagination depth for HTML crawling.
	MaxPagesPerCrawl = 3

	// SourceDelay is the politeness pause between sequential source crawls.
	SourceDelay = 2 * time.Second

	// FetchTimeout bounds a single feed or page request.
	FetchTimeout = 30 * time.Second

	// UserAgent is sent on every feed and page fetch. Some sources reject
	// Go's default client string outright.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Storage Constants
const (
	// DefaultDataDir is the root directory for per-source date containers.
	DefaultDataDir = "sources"

	// DefaultDaysToKeep is the retention window for the purge sweep.
	DefaultDaysToKeep = 30
)

// Summary Constants
const (
	// SummaryMaxLength bounds generated article descriptions.
	SummaryMaxLength = 150
)

// Hacker News API Constants
const (
	// HNAPIBaseURL is the public Firebase-backed read API.
	HNAPIBaseURL = "https://hacker-news.firebaseio.com/v0"

	// HNMaxStories is the hard ceiling the API imposes on topstories.
	HNMaxStories = 100

	// HNDefaultRetries bounds the top-level fetch retry loop.
	HNDefaultRetries = 3
)
