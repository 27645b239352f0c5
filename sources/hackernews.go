package sources

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// ErrNoFeed is returned by parsers for sources that expose no syndication
// feed.
var ErrNoFeed = errors.New("source has no feed")

// HackerNewsParser scrapes the front-page table markup. Hacker News has no
// feed; the API client is the preferred strategy and this parser is the
// fallback.
type HackerNewsParser struct{}

func (p *HackerNewsParser) Source() string { return "hackernews" }

// ParseFeed always fails: Hacker News exposes no feed.
func (p *HackerNewsParser) ParseFeed(payload []byte, baseURL string) ([]types.NewsItem, error) {
	return nil, ErrNoFeed
}

var (
	scoreRe    = regexp.MustCompile(`(\d+)`)
	hoursAgoRe = regexp.MustCompile(`(\d+)\s*hour`)
	minsAgoRe  = regexp.MustCompile(`(\d+)\s*minute`)
	daysAgoRe  = regexp.MustCompile(`(\d+)\s*day`)
)

// ParseHTML walks the row-pair table structure: each tr.athing carries the
// title and link, and the adjacent row carries score, author, age, and
// comment count. Rows missing a link are dropped entirely.
func (p *HackerNewsParser) ParseHTML(html, baseURL string) ([]types.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	cfg, _ := config.Site(p.Source())

	var articles []types.NewsItem
	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		meta := row.Next()

		titleEl := row.Find("td.title a").First()
		title := strings.TrimSpace(titleEl.Text())
		href, _ := titleEl.Attr("href")
		if title == "" || href == "" {
			return
		}

		score := firstInt(meta.Find("td.subtext .score").Text())
		author := strings.TrimSpace(meta.Find("td.subtext .hnuser").Text())
		age := strings.TrimSpace(meta.Find("td.subtext .age").Text())
		comments := firstInt(meta.Find("td.subtext a").Last().Text())

		description := fmt.Sprintf("Score: %d | Comments: %d | Posted by %s", score, comments, author)
		if author == "" {
			author = "Anonymous"
		}

		url := content.NormalizeURL(href, baseURL)
		articles = append(articles, types.NewsItem{
			ID:          content.GenerateID(url),
			Title:       content.DecodeHTMLEntities(title),
			Description: content.GenerateSummary(content.DecodeHTMLEntities(description), content.DefaultSummaryLength),
			URL:         url,
			PublishedAt: ParseRelativeTime(age, time.Now()),
			Source:      cfg.Name,
			SourceName:  cfg.DisplayName,
			Author:      author,
			Tags:        []string{},
		})
	})

	return articles, nil
}

// ParseRelativeTime converts age text like "3 hours ago" to an absolute
// instant relative to now. The source only exposes relative granularity, so
// this is lossy; unrecognized formats default to now.
func ParseRelativeTime(text string, now time.Time) time.Time {
	if m := hoursAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(-time.Duration(n) * time.Hour)
	}
	if m := minsAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(-time.Duration(n) * time.Minute)
	}
	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	}
	return now
}

// ExtractStoryIDs pulls the numeric story IDs off a front page, for callers
// that want to pivot from scraped rows to the item API.
func ExtractStoryIDs(html string) []int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var ids []int
	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		if idAttr, ok := row.Attr("id"); ok {
			if id, err := strconv.Atoi(idAttr); err == nil {
				ids = append(ids, id)
			}
		}
	})
	return ids
}

func firstInt(text string) int {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
