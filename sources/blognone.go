package sources

import (
	"strings"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// BlognoneParser handles Blognone's RSS feed and its listing markup. The
// feed carries no per-article byline, so the author is always the site name.
type BlognoneParser struct{}

func (p *BlognoneParser) Source() string { return "blognone" }

// ParseFeed maps RSS items. The article image, when present, lives inside
// the raw description HTML rather than a media field.
func (p *BlognoneParser) ParseFeed(payload []byte, baseURL string) ([]types.NewsItem, error) {
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

		description := strings.TrimSpace(item.Description)
		if description == "" {
			description = title
		}

		url := content.NormalizeURL(link, baseURL)
		articles = append(articles, types.NewsItem{
			ID:          content.GenerateID(url),
			Title:       content.DecodeHTMLEntities(title),
			Description: content.GenerateSummary(content.DecodeHTMLEntities(description), content.DefaultSummaryLength),
			URL:         url,
			ImageURL:    content.ExtractImage(item.Description),
			PublishedAt: itemDate(item),
			Source:      cfg.Name,
			SourceName:  cfg.DisplayName,
			Author:      cfg.DisplayName,
			Tags:        []string{},
		})
	}
	return articles, nil
}

// ParseHTML scrapes the listing page markup as a fallback.
func (p *BlognoneParser) ParseHTML(html, baseURL string) ([]types.NewsItem, error) {
	cfg, _ := config.Site(p.Source())
	return parseListingHTML(html, baseURL, cfg, cfg.DisplayName)
}
