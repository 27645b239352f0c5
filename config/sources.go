package config

// Selectors maps the parts of an article to CSS selectors in the source's
// live markup. Used only by the HTML fallback parsers.
type Selectors struct {
	Article     string
	Title       string
	Description string
	Link        string
	Image       string
	Date        string
	Author      string
}

// Pagination describes how to walk a source's listing pages.
type Pagination struct {
	NextPageSelector string
	MaxPages         int
}

// SiteConfig describes one configured news source and the strategies
// available for crawling it.
type SiteConfig struct {
	Name        string
	DisplayName string
	BaseURL     string
	FeedURL     string
	HasAPI      bool
	APIEndpoint string
	MaxArticles int
	Selectors   Selectors
	Pagination  Pagination
	// FallbackToHTML lets a feed-configured source continue to the HTML
	// strategy when the feed fetch itself fails. Off by default: feeds are
	// treated as reliable, and a failing feed usually means the site is down.
	FallbackToHTML bool
}

// Sites is the registry of configured sources, in crawl order.
var Sites = []SiteConfig{
	{
		Name:        "theverge",
		DisplayName: "The Verge",
		BaseURL:     "https://www.theverge.com/",
		FeedURL:     "https://www.theverge.com/rss/index.xml",
		MaxArticles: MaxArticlesPerSource,
		Selectors: Selectors{
			Article:     `div[data-chorus-optimize-field="collection"] article`,
			Title:       "h2 a",
			Description: "h2 + p",
			Link:        "h2 a",
			Author:      `[data-cdata="author-name"]`,
			Date:        "time",
		},
		Pagination: Pagination{NextPageSelector: ".p-pagination__next", MaxPages: MaxPagesPerCrawl},
	},
	{
		Name:        "techcrunch",
		DisplayName: "TechCrunch",
		BaseURL:     "https://techcrunch.com/",
		FeedURL:     "https://techcrunch.com/feed/",
		MaxArticles: MaxArticlesPerSource,
		Selectors: Selectors{
			Article:     "article",
			Title:       "h2 a, h3 a, .post-block__title a",
			Description: ".post-block__content, .excerpt",
			Link:        "h2 a, h3 a, .post-block__title a",
			Author:      ".post-block__author, .author",
			Date:        "time",
		},
		Pagination: Pagination{NextPageSelector: ".pagination__next", MaxPages: MaxPagesPerCrawl},
	},
	{
		Name:        "blognone",
		DisplayName: "Blognone",
		BaseURL:     "https://www.blognone.com/",
		FeedURL:     "https://www.blognone.com/node/feed",
		MaxArticles: MaxArticlesPerSource,
		Selectors: Selectors{
			Article:     "article",
			Title:       "h2 a, h3 a",
			Description: ".excerpt, .summary",
			Link:        "h2 a, h3 a",
			Author:      ".author",
			Date:        "time",
		},
		Pagination: Pagination{NextPageSelector: ".pager-next", MaxPages: MaxPagesPerCrawl},
	},
	{
		Name:        "hackernews",
		DisplayName: "Hacker News",
		BaseURL:     "https://news.ycombinator.com/",
		HasAPI:      true,
		APIEndpoint: HNAPIBaseURL,
		MaxArticles: MaxArticlesPerSource,
		Selectors: Selectors{
			Article:     "tr.athing",
			Title:       "td.title a",
			Description: "td.subtext",
			Link:        "td.title a",
			Author:      "td.subtext .hnuser",
			Date:        "td.subtext .age",
		},
		Pagination: Pagination{NextPageSelector: "a.morelink", MaxPages: MaxPagesPerCrawl},
	},
}

// Site looks up a source by its machine key.
func Site(name string) (SiteConfig, bool) {
	for _, s := range Sites {
		if s.Name == name {
			return s, true
		}
	}
	return SiteConfig{}, false
}

// SourceNames returns the configured source keys in crawl order.
func SourceNames() []string {
	names := make([]string, 0, len(Sites))
	for _, s := range Sites {
		names = append(names, s.Name)
	}
	return names
}
