package sources

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// parseFeedPayload runs gofeed over a raw feed body.
func parseFeedPayload(payload []byte) (*gofeed.Feed, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// itemDate resolves an item's publication instant. gofeed's parsed dates win;
// raw date strings go through dateparse; anything unparseable defaults to now
// so an article is never stored without a timestamp.
func itemDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t
		}
	}
	return time.Now()
}

// itemAuthor returns the item's first author name, or empty.
func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return strings.TrimSpace(item.DublinCoreExt.Creator[0])
	}
	return ""
}

// itemImage extracts the best-effort article image: the feed-level image
// field, then media extension content, then an inline <img> in the
// content/description HTML.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if u := ext.Attrs["url"]; u != "" {
				return u
			}
		}
		for _, ext := range media["thumbnail"] {
			if u := ext.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	if img := content.ExtractImage(item.Content); img != "" {
		return img
	}
	return content.ExtractImage(item.Description)
}

// parseListingHTML is the shared HTML fallback: walk the configured article
// selector, pull title/link/description/author/date per the source's
// selectors, and drop rows lacking both title and link. Sites change their
// markup without notice, so zero matches is a valid empty result.
func parseListingHTML(html, baseURL string, cfg config.SiteConfig, defaultAuthor string) ([]types.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var articles []types.NewsItem
	doc.Find(cfg.Selectors.Article).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(cfg.Selectors.Title).First().Text())
		href, _ := sel.Find(cfg.Selectors.Link).First().Attr("href")
		if title == "" || href == "" {
			return
		}

		description := strings.TrimSpace(sel.Find(cfg.Selectors.Description).First().Text())
		if description == "" {
			description = title
		}
		author := strings.TrimSpace(sel.Find(cfg.Selectors.Author).First().Text())
		if author == "" {
			author = defaultAuthor
		}

		publishedAt := time.Now()
		if cfg.Selectors.Date != "" {
			if dt, ok := sel.Find(cfg.Selectors.Date).First().Attr("datetime"); ok {
				if t, err := dateparse.ParseAny(dt); err == nil {
					publishedAt = t
				}
			}
		}

		imageURL := ""
		if src, ok := sel.Find("img").First().Attr("src"); ok {
			imageURL = src
		}

		url := content.NormalizeURL(href, baseURL)
		articles = append(articles, types.NewsItem{
			ID:          content.GenerateID(url),
			Title:       content.DecodeHTMLEntities(title),
			Description: content.GenerateSummary(content.DecodeHTMLEntities(description), content.DefaultSummaryLength),
			URL:         url,
			ImageURL:    imageURL,
			PublishedAt: publishedAt,
			Source:      cfg.Name,
			SourceName:  cfg.DisplayName,
			Author:      author,
			Tags:        []string{},
		})
	})

	return articles, nil
}

// NextPageURL finds the source's configured next-page link in a listing page
// and resolves it against baseURL. Empty string when there is no next page.
func NextPageURL(html, baseURL string, cfg config.SiteConfig) string {
	if cfg.Pagination.NextPageSelector == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	href, ok := doc.Find(cfg.Pagination.NextPageSelector).First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	return content.NormalizeURL(href, baseURL)
}
