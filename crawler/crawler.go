// Package crawler orchestrates per-source crawls: strategy selection
// (API, then feed, then HTML with pagination), article collection, and the
// date-bucketed merge into storage.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"newsdeck/config"
	"newsdeck/hnapi"
	"newsdeck/sources"
	"newsdeck/storage"
	"newsdeck/types"
)

// ErrUnknownSource is returned for crawl requests naming an unconfigured
// source. No network activity is attempted.
var ErrUnknownSource = errors.New("unknown source")

// errNotApplicable signals that a strategy does not apply to this source and
// the next one should be tried. Distinct from a strategy failing.
var errNotApplicable = errors.New("strategy not applicable")

// SeenFilter tracks URLs already pushed through the pipeline. Satisfied by
// seen.Filter.
type SeenFilter interface {
	Seen(rawURL string) (bool, error)
	Mark(rawURL string) error
}

// Config wires the engine's collaborators. Store is required; the rest are
// optional.
type Config struct {
	Store *storage.FileStore
	// HN serves the API strategy for sources that expose one.
	HN *hnapi.Client
	// Seen, when non-nil, pre-filters articles whose URL was already
	// processed in a previous run.
	Seen SeenFilter
	// Delay is the politeness pause between sources in CrawlAll.
	Delay time.Duration
	// EnrichContent fetches article pages to fill empty descriptions.
	EnrichContent bool
	// Sites overrides the configured source registry. Nil uses config.Sites.
	Sites []config.SiteConfig
}

// Engine runs crawls against the configured source registry.
type Engine struct {
	store      *storage.FileStore
	hn         *hnapi.Client
	seenFilter SeenFilter
	httpClient *http.Client
	delay      time.Duration
	enrich     bool
	sites      []config.SiteConfig
}

// New creates an engine. A zero Delay falls back to the configured default.
func New(cfg Config) *Engine {
	delay := cfg.Delay
	if delay == 0 {
		delay = config.SourceDelay
	}
	sites := cfg.Sites
	if sites == nil {
		sites = config.Sites
	}
	return &Engine{
		store:      cfg.Store,
		hn:         cfg.HN,
		seenFilter: cfg.Seen,
		httpClient: &http.Client{Timeout: config.FetchTimeout},
		delay:      delay,
		enrich:     cfg.EnrichContent,
		sites:      sites,
	}
}

// siteFor looks a source up in the engine's registry.
func (e *Engine) siteFor(name string) (config.SiteConfig, bool) {
	for _, s := range e.sites {
		if s.Name == name {
			return s, true
		}
	}
	return config.SiteConfig{}, false
}

// strategyResult is what one crawl strategy produced.
type strategyResult struct {
	articles []types.NewsItem
	pages    int
}

// CrawlSource crawls one source end to end: collect articles via the first
// applicable strategy, bucket them by UTC calendar date, and merge each
// bucket into storage. A storage failure marks the crawl failed; empty
// payloads do not.
func (e *Engine) CrawlSource(ctx context.Context, name string) types.CrawlResult {
	runID := uuid.NewString()
	site, ok := e.siteFor(name)
	if !ok {
		return failedResult(runID, name, fmt.Errorf("%w: %s", ErrUnknownSource, name))
	}
	parser, ok := sources.Lookup(name)
	if !ok {
		return failedResult(runID, name, fmt.Errorf("no parser registered for source: %s", name))
	}

	log.Printf("[%s] Crawling %s", runID, name)

	res, err := e.collect(ctx, site, parser)
	if err != nil {
		log.Printf("[%s] Crawl failed for %s: %v", runID, name, err)
		return failedResult(runID, name, err)
	}

	articles := res.articles
	if len(articles) > site.MaxArticles {
		articles = articles[:site.MaxArticles]
	}
	articles = e.filterSeen(articles)
	if e.enrich {
		e.enrichArticles(ctx, articles)
	}

	// Bucket by publication date, then merge-write one container per bucket.
	byDate := make(map[string][]types.NewsItem)
	for _, a := range articles {
		key := storage.DateKey(a.PublishedAt)
		byDate[key] = append(byDate[key], a)
	}
	for date, group := range byDate {
		if err := e.store.SaveWithDeduplication(site.Name, date, group); err != nil {
			log.Printf("[%s] Storage failure for %s/%s: %v", runID, name, date, err)
			return failedResult(runID, name, err)
		}
	}
	e.markSeen(articles)

	log.Printf("[%s] Crawled %s: %d articles across %d dates (%d pages)",
		runID, name, len(articles), len(byDate), res.pages)

	return types.CrawlResult{
		RunID:          runID,
		Success:        true,
		Articles:       articles,
		Source:         name,
		Timestamp:      time.Now(),
		PagesProcessed: res.pages,
	}
}

// CrawlAll crawls every configured source sequentially with a politeness
// delay in between. One source failing never aborts the batch; results keep
// configured source order.
func (e *Engine) CrawlAll(ctx context.Context) []types.CrawlResult {
	results := make([]types.CrawlResult, 0, len(e.sites))
	for i, site := range e.sites {
		results = append(results, e.CrawlSource(ctx, site.Name))

		if i < len(e.sites)-1 {
			select {
			case <-time.After(e.delay):
			case <-ctx.Done():
				return results
			}
		}
	}
	return results
}

// collect runs the ordered strategy list and stops at the first success.
// The API strategy falls through on failure; the feed strategy fails the
// crawl outright unless the source opts into HTML fallback.
func (e *Engine) collect(ctx context.Context, site config.SiteConfig, parser sources.Parser) (strategyResult, error) {
	type strategy struct {
		name string
		run  func(context.Context, config.SiteConfig, sources.Parser) (strategyResult, error)
	}
	strategies := []strategy{
		{"api", e.apiStrategy},
		{"feed", e.feedStrategy},
		{"html", e.htmlStrategy},
	}

	var lastErr error
	for _, s := range strategies {
		res, err := s.run(ctx, site, parser)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, errNotApplicable) {
			continue
		}
		// Feeds are treated as reliable: a failing feed fails the source
		// unless it explicitly opted into the HTML fallback.
		if s.name == "feed" && !site.FallbackToHTML {
			return strategyResult{}, err
		}
		log.Printf("Strategy %q failed for %s, falling through: %v", s.name, site.Name, err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no applicable crawl strategy for source: %s", site.Name)
	}
	return strategyResult{}, lastErr
}

// apiStrategy uses the source's read API where one exists.
func (e *Engine) apiStrategy(ctx context.Context, site config.SiteConfig, _ sources.Parser) (strategyResult, error) {
	if !site.HasAPI || site.APIEndpoint == "" {
		return strategyResult{}, errNotApplicable
	}
	if site.Name != "hackernews" || e.hn == nil {
		return strategyResult{}, fmt.Errorf("no API client for source: %s", site.Name)
	}

	log.Printf("Using API for %s: %s", site.Name, site.APIEndpoint)
	articles, err := e.hn.TopStoriesWithRetry(ctx, site.MaxArticles, config.HNDefaultRetries)
	if err != nil {
		return strategyResult{}, err
	}
	return strategyResult{articles: articles, pages: 1}, nil
}

// feedStrategy fetches and parses the source's syndication feed. A non-2xx
// response is a hard failure here; sites that reject default user agents are
// handled by the custom UA on every fetch.
func (e *Engine) feedStrategy(ctx context.Context, site config.SiteConfig, parser sources.Parser) (strategyResult, error) {
	if site.FeedURL == "" {
		return strategyResult{}, errNotApplicable
	}

	log.Printf("Crawling %s feed: %s", site.Name, site.FeedURL)
	body, err := e.fetch(ctx, site.FeedURL)
	if err != nil {
		return strategyResult{}, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles, err := parser.ParseFeed(body, site.BaseURL)
	if err != nil {
		return strategyResult{}, err
	}
	return strategyResult{articles: articles, pages: 1}, nil
}

// htmlStrategy scrapes listing pages, following the next-page link up to the
// configured page cap or until the article cap is reached. A mid-crawl fetch
// failure stops pagination early but keeps what was collected.
func (e *Engine) htmlStrategy(ctx context.Context, site config.SiteConfig, parser sources.Parser) (strategyResult, error) {
	maxPages := site.Pagination.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	var articles []types.NewsItem
	pages := 0
	currentURL := site.BaseURL

	for page := 1; page <= maxPages; page++ {
		log.Printf("Crawling %s page %d: %s", site.Name, page, currentURL)
		body, err := e.fetch(ctx, currentURL)
		if err != nil {
			if pages == 0 {
				return strategyResult{}, err
			}
			log.Printf("Stopping pagination for %s: %v", site.Name, err)
			break
		}

		pageArticles, err := parser.ParseHTML(string(body), site.BaseURL)
		if err != nil {
			return strategyResult{}, err
		}
		articles = append(articles, pageArticles...)
		pages++

		if len(articles) >= site.MaxArticles {
			articles = articles[:site.MaxArticles]
			break
		}

		next := sources.NextPageURL(string(body), site.BaseURL, site)
		if next == "" {
			break
		}
		currentURL = next
	}

	return strategyResult{articles: articles, pages: pages}, nil
}

// fetch GETs a URL with the crawl user agent and returns the body. Non-2xx
// statuses are errors.
func (e *Engine) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// filterSeen drops articles whose URL the bloom filter already recorded.
// Filter errors degrade to keeping the article; storage dedup still holds.
func (e *Engine) filterSeen(articles []types.NewsItem) []types.NewsItem {
	if e.seenFilter == nil {
		return articles
	}
	kept := articles[:0]
	skipped := 0
	for _, a := range articles {
		ok, err := e.seenFilter.Seen(a.URL)
		if err != nil {
			log.Printf("Warning: seen-filter check failed for %s: %v", a.URL, err)
			kept = append(kept, a)
			continue
		}
		if ok {
			skipped++
			continue
		}
		kept = append(kept, a)
	}
	if skipped > 0 {
		log.Printf("Seen filter skipped %d previously processed article(s)", skipped)
	}
	return kept
}

// markSeen records stored article URLs in the bloom filter.
func (e *Engine) markSeen(articles []types.NewsItem) {
	if e.seenFilter == nil {
		return
	}
	for _, a := range articles {
		if err := e.seenFilter.Mark(a.URL); err != nil {
			log.Printf("Warning: seen-filter mark failed for %s: %v", a.URL, err)
			continue
		}
	}
}

func failedResult(runID, source string, err error) types.CrawlResult {
	return types.CrawlResult{
		RunID:     runID,
		Success:   false,
		Articles:  []types.NewsItem{},
		Error:     err.Error(),
		Source:    source,
		Timestamp: time.Now(),
	}
}
