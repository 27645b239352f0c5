// Package seen is an optional RedisBloom-backed filter over normalized
// article URLs. The crawler consults it before the storage merge to skip
// articles it has already pushed through the pipeline in a previous run.
// It is purely an optimization: the storage layer's ID dedup remains the
// source of truth, so bloom false positives only cost a redundant skip check
// and false negatives only cost a redundant merge attempt.
package seen

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"newsdeck/config"
)

// BloomConfig configures the RedisBloom connection and filter key.
type BloomConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
	// Capacity sets the initial BF.RESERVE capacity (number of URLs).
	Capacity int
	// ErrorRate sets the desired false positive probability.
	ErrorRate float64
}

// Filter is a minimal RedisBloom wrapper keyed by normalized article URL.
type Filter struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewFromEnv creates a Filter from REDIS_ADDR, REDIS_PASS, SEEN_KEY and
// SEEN_TTL_SECONDS. Returns (nil, nil) when REDIS_ADDR is unset: the filter
// is opt-in and the crawler runs fine without it.
func NewFromEnv() (*Filter, error) {
	addr := config.GetEnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		return nil, nil
	}

	ttl := 24 * time.Hour
	if secs := config.GetEnvInt("SEEN_TTL_SECONDS", 0); secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}

	cfg := BloomConfig{
		Addr:      addr,
		Password:  config.GetEnvOrDefault("REDIS_PASS", ""),
		Key:       config.GetEnvOrDefault("SEEN_KEY", "newsdeck:seen"),
		TTL:       ttl,
		Capacity:  config.GetEnvInt("SEEN_CAPACITY", 100000),
		ErrorRate: 0.001,
	}
	return New(cfg)
}

// New creates a Filter and verifies connectivity.
func New(cfg BloomConfig) (*Filter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	// Reserve the filter up front when the key is new. BF.RESERVE failing is
	// non-fatal: BF.ADD auto-creates the filter with server defaults.
	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		_ = client.Do(ctx, "BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity).Err()
	}

	return &Filter{client: client, key: cfg.Key, ttl: cfg.TTL}, nil
}

// Close closes the underlying Redis client.
func (f *Filter) Close() error {
	return f.client.Close()
}

// Seen reports whether the URL has (probably) been processed before.
func (f *Filter) Seen(rawURL string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := f.client.Do(ctx, "BF.EXISTS", f.key, NormalizeURL(rawURL)).Result()
	if err != nil {
		return false, err
	}
	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Mark records the URL and refreshes the key TTL so the filter stays alive
// for the configured window after the most recent crawl.
func (f *Filter) Mark(rawURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := f.client.Do(ctx, "BF.ADD", f.key, NormalizeURL(rawURL)).Err(); err != nil {
		return err
	}
	return f.client.Expire(ctx, f.key, f.ttl).Err()
}

// NormalizeURL strips fragments and common tracking query params and
// lowercases the scheme and host, so the same story fetched via a feed and
// via the site markup hashes to the same filter entry.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	q := u.Query()
	for param := range q {
		lower := strings.ToLower(param)
		if strings.HasPrefix(lower, "utm_") || lower == "fbclid" || lower == "gclid" {
			q.Del(param)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimSuffix(u.String(), "/")
}
