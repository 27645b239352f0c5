package crawler

import (
	"context"
	"log"

	readability "github.com/go-shiori/go-readability"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// enrichArticles fills gaps in articles whose feed entry carried no usable
// description or image by extracting them from the article page itself.
// Fetches run sequentially, matching the crawl's politeness model; a failed
// extraction leaves the article as-is.
func (e *Engine) enrichArticles(ctx context.Context, articles []types.NewsItem) {
	for i := range articles {
		a := &articles[i]
		if a.Description != "" && a.ImageURL != "" {
			continue
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		extracted, err := readability.FromURL(a.URL, config.FetchTimeout)
		if err != nil {
			log.Printf("Warning: content extraction failed for %s: %v", a.URL, err)
			continue
		}

		if a.Description == "" {
			summary := extracted.Excerpt
			if summary == "" {
				summary = extracted.TextContent
			}
			a.Description = content.GenerateSummary(summary, content.DefaultSummaryLength)
		}
		if a.ImageURL == "" {
			a.ImageURL = extracted.Image
		}
		if a.Author == "" {
			a.Author = extracted.Byline
		}
	}
}
