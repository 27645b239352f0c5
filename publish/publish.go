// Package publish pushes the stored containers and the dates index to an S3
// bucket, producing the same artifact layout the read API serves, suitable
// for static hosting behind a CDN.
package publish

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"newsdeck/common"
	"newsdeck/config"
	"newsdeck/storage"
	"newsdeck/types"
)

// cacheControl keeps static mirrors fresh enough for an hourly crawl cycle.
const cacheControl = "public, max-age=300"

// republishWindowDays bounds how far back a crawl can still merge articles
// into a container (relative source dates reach back a few days at most).
// Containers older than this are immutable once mirrored.
const republishWindowDays = 7

// Publisher uploads storage artifacts to a bucket under an optional prefix.
type Publisher struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewFromEnv builds a Publisher from S3_BUCKET, S3_REGION, S3_PROFILE,
// S3_ENDPOINT, S3_PREFIX and S3_USE_PATH_STYLE. Returns (nil, nil) when
// S3_BUCKET is unset: publishing is opt-in.
func NewFromEnv(ctx context.Context) (*Publisher, error) {
	bucket := config.GetEnvOrDefault("S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}

	client, err := common.NewS3(ctx, common.S3Config{
		Region:       config.GetEnvOrDefault("S3_REGION", ""),
		Profile:      config.GetEnvOrDefault("S3_PROFILE", ""),
		Endpoint:     config.GetEnvOrDefault("S3_ENDPOINT", ""),
		UsePathStyle: config.GetEnvBool("S3_USE_PATH_STYLE"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	prefix := config.GetEnvOrDefault("S3_PREFIX", "")
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return &Publisher{s3: client, bucket: bucket, prefix: prefix}, nil
}

// New creates a Publisher for an explicit client and bucket.
func New(s3 *common.S3, bucket, prefix string) *Publisher {
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return &Publisher{s3: s3, bucket: bucket, prefix: prefix}
}

// PublishAll mirrors every (source, date) container plus the dates index to
// the bucket. Settled containers that are already mirrored are skipped;
// individual upload failures are logged and counted but do not stop the
// sweep. The first error is returned after the sweep completes.
func (p *Publisher) PublishAll(ctx context.Context, store *storage.FileStore, idx types.DatesIndex) error {
	var firstErr error
	uploaded := 0
	skipped := 0

	for _, source := range store.Sources() {
		for _, date := range store.AvailableDates(source) {
			key := fmt.Sprintf("%ssources/%s/%s.json", p.prefix, source, date)

			if settled(date) {
				exists, err := p.s3.Exists(ctx, p.bucket, key)
				if err != nil {
					log.Printf("Existence check failed for %s: %v", key, err)
				} else if exists {
					skipped++
					continue
				}
			}

			articles := store.Load(source, date)
			doc := types.NewsResponse{Date: date, Source: source, Articles: articles}

			if err := p.s3.PutJSON(ctx, p.bucket, key, doc, cacheControl); err != nil {
				log.Printf("Upload failed for %s: %v", key, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			uploaded++
		}
	}

	indexKey := p.prefix + "sources/dates.json"
	if err := p.s3.PutJSON(ctx, p.bucket, indexKey, idx, cacheControl); err != nil {
		log.Printf("Upload failed for %s: %v", indexKey, err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		uploaded++
	}

	log.Printf("Published %d object(s) to s3://%s/%s (%d already mirrored)",
		uploaded, p.bucket, p.prefix, skipped)
	return firstErr
}

// settled reports whether a date container is past the window in which
// crawls can still change it.
func settled(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return d.Before(time.Now().UTC().AddDate(0, 0, -republishWindowDays))
}
