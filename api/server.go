package api

import (
	"github.com/gin-gonic/gin"

	"newsdeck/crawler"
	"newsdeck/storage"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(store *storage.FileStore, engine *crawler.Engine) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterNewsRoutes(r, store)
	RegisterSourceRoutes(r, store)
	RegisterCrawlerRoutes(r, engine)
	RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers the health probe.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
}
