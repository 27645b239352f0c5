package sources

import (
	"strings"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// TechCrunchParser handles TechCrunch's RSS feed and its listing markup.
type TechCrunchParser struct{}

func (p *TechCrunchParser) Source() string { return "techcrunch" }

// ParseFeed maps RSS items: title, link, HTML-stripped description, RFC-822
// pubDate, and the dc:creator byline (falling back to the source name).
func (p *TechCrunchParser) ParseFeed(payload []byte, baseURL string) ([]types.NewsItem, error) {
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
		author := itemAuthor(item)
		if author == "" {
			author = cfg.DisplayName
		}

		url := content.NormalizeURL(link, baseURL)
		articles = append(articles, types.NewsItem{
			ID:          content.GenerateID(url),
			Title:       content.DecodeHTMLEntities(title),
			Description: content.GenerateSummary(content.DecodeHTMLEntities(description), content.DefaultSummaryLength),
			URL:         url,
			ImageURL:    itemImage(item),
			PublishedAt: itemDate(item),
			Source:      cfg.Name,
			SourceName:  cfg.DisplayName,
			Author:      author,
			Tags:        []string{},
		})
	}
	return articles, nil
}

// ParseHTML scrapes the listing page markup as a fallback.
func (p *TechCrunchParser) ParseHTML(html, baseURL string) ([]types.NewsItem, error) {
	cfg, _ := config.Site(p.Source())
	return parseListingHTML(html, baseURL, cfg, cfg.DisplayName)
}
