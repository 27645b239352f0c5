// Package hnapi is a client for the public Hacker News read API, converting
// top stories into canonical articles.
package hnapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"newsdeck/config"
	"newsdeck/content"
	"newsdeck/types"
)

// ErrRetryExhausted reports that every retry attempt failed. Distinct from a
// single-attempt failure so callers can tell the two apart.
var ErrRetryExhausted = errors.New("all retry attempts failed")

// Item is the raw API item shape.
type Item struct {
	ID          int    `json:"id"`
	Deleted     bool   `json:"deleted"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	Dead        bool   `json:"dead"`
	Kids        []int  `json:"kids"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Title       string `json:"title"`
	Descendants int    `json:"descendants"`
}

// Client fetches stories from the Hacker News API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxStories int
	baseDelay  time.Duration
}

// NewClient creates a client for the given API base URL. An empty baseURL
// uses the public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = config.HNAPIBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.FetchTimeout},
		maxStories: config.HNMaxStories,
		baseDelay:  time.Second,
	}
}

// TopStories fetches up to limit top stories and converts them to articles.
// Items that are not stories, lack a URL, or are deleted or dead are
// filtered out, so the returned count may be less than limit. A failure
// fetching an individual item skips that item rather than failing the batch.
func (c *Client) TopStories(ctx context.Context, limit int) ([]types.NewsItem, error) {
	ids, err := c.topStoryIDs(ctx)
	if err != nil {
		return nil, err
	}

	if limit > c.maxStories {
		limit = c.maxStories
	}
	if limit > len(ids) {
		limit = len(ids)
	}

	articles := make([]types.NewsItem, 0, limit)
	for _, id := range ids[:limit] {
		item, err := c.Item(ctx, id)
		if err != nil {
			log.Printf("Warning: failed to fetch story %d: %v", id, err)
			continue
		}
		if item == nil || item.Type != "story" || item.URL == "" || item.Deleted || item.Dead {
			continue
		}
		articles = append(articles, convertItem(item))
	}
	return articles, nil
}

// TopStoriesWithRetry retries the whole fetch-and-convert operation with
// exponential backoff, doubling the delay per attempt. After exhausting
// retries it fails with ErrRetryExhausted.
func (c *Client) TopStoriesWithRetry(ctx context.Context, limit, retries int) ([]types.NewsItem, error) {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		articles, err := c.TopStories(ctx, limit)
		if err == nil {
			return articles, nil
		}
		lastErr = err
		log.Printf("Warning: attempt %d/%d failed: %v", attempt, retries, err)

		if attempt == retries {
			break
		}
		delay := time.Duration(1<<attempt) * c.baseDelay
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

// Item fetches a single item by ID.
func (c *Client) Item(ctx context.Context, id int) (*Item, error) {
	var item Item
	if err := c.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", c.baseURL, id), &item); err != nil {
		return nil, err
	}
	if item.ID == 0 {
		// The API returns literal null for unknown IDs.
		return nil, nil
	}
	return &item, nil
}

func (c *Client) topStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.getJSON(ctx, c.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("failed to fetch top stories: %w", err)
	}
	return ids, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// convertItem maps a raw story to the canonical article shape. The synthetic
// description mirrors what the HTML parser produces for the same story.
func convertItem(item *Item) types.NewsItem {
	cfg, _ := config.Site("hackernews")
	description := fmt.Sprintf("Score: %d | Comments: %d | Posted by %s", item.Score, item.Descendants, item.By)

	return types.NewsItem{
		ID:          content.GenerateID(item.URL),
		Title:       content.DecodeHTMLEntities(item.Title),
		Description: content.GenerateSummary(description, content.DefaultSummaryLength),
		URL:         item.URL,
		PublishedAt: time.Unix(item.Time, 0),
		Source:      cfg.Name,
		SourceName:  cfg.DisplayName,
		Author:      item.By,
		Tags:        []string{},
	}
}
