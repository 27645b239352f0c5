package sources

import (
	"strings"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// TheVergeParser handles The Verge's Atom feed and its listing markup.
type TheVergeParser struct{}

func (p *TheVergeParser) Source() string { return "theverge" }

// ParseFeed maps Atom entries: title, link href, summary (falling back to the
// title), ISO published timestamp, and author name. Entries without a title
// or link are skipped.
func (p *TheVergeParser) ParseFeed(payload []byte, baseURL string) ([]types.NewsItem, error) {
	feed, err := parseFeedPayload(payload)
	if err != nil {
		return nil, err
	}
	cfg, _ := config.Site(p.Source())

	articles := make([]types.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		summary := strings.TrimSpace(item.Description)
		if summary == "" {
			summary = strings.TrimSpace(item.Content)
		}
		if summary == "" {
			summary = title
		}

		url := content.NormalizeURL(link, baseURL)
		articles = append(articles, types.NewsItem{
			ID:          content.GenerateID(url),
			Title:       content.DecodeHTMLEntities(title),
			Description: content.GenerateSummary(content.DecodeHTMLEntities(summary), content.DefaultSummaryLength),
			URL:         url,
			ImageURL:    itemImage(item),
			PublishedAt: itemDate(item),
			Source:      cfg.Name,
			SourceName:  cfg.DisplayName,
			Author:      itemAuthor(item),
			Tags:        []string{},
		})
	}
	return articles, nil
}

// ParseHTML scrapes the listing page markup. Kept as a fallback for when the
// feed is unavailable.
func (p *TheVergeParser) ParseHTML(html, baseURL string) ([]types.NewsItem, error) {
	cfg, _ := config.Site(p.Source())
	return parseListingHTML(html, baseURL, cfg, "")
}
