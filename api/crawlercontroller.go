package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdeck/config"
	"newsdeck/crawler"
)

// RegisterCrawlerRoutes registers crawl trigger endpoints.
func RegisterCrawlerRoutes(r *gin.Engine, engine *crawler.Engine) {
	g := r.Group("/api/crawler")
	g.POST("/crawl", handleCrawl(engine))
}

// handleCrawl triggers a crawl of one source or all of them. It runs
// asynchronously and returns 202 Accepted immediately.
// POST /api/crawler/crawl?source=all | source=<key>
func handleCrawl(engine *crawler.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.DefaultQuery("source", "all")

		if source != "all" {
			if _, ok := config.Site(source); !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown source: " + source})
				return
			}
		}

		go func() {
			ctx := context.Background()
			if source == "all" {
				results := engine.CrawlAll(ctx)
				for _, r := range results {
					if !r.Success {
						log.Printf("Crawl failed for %s: %s", r.Source, r.Error)
					}
				}
				return
			}
			if r := engine.CrawlSource(ctx, source); !r.Success {
				log.Printf("Crawl failed for %s: %s", r.Source, r.Error)
			}
		}()

		c.JSON(http.StatusAccepted, gin.H{"status": "crawl started", "source": source})
	}
}
