package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdeck/config"
	"newsdeck/storage"
	"newsdeck/types"
)

// RegisterSourceRoutes registers source and date discovery endpoints.
func RegisterSourceRoutes(r *gin.Engine, store *storage.FileStore) {
	g := r.Group("/api/sources")
	g.GET("", handleListSources(store))
	g.GET("/dates", handleDatesIndex(store))
	g.GET("/:source/dates", handleSourceDates(store))
	g.GET("/:source/:date", handleSourceDate(store))
}

// handleListSources returns the configured sources with their display names
// and whether any stored data exists for them.
func handleListSources(store *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stored := make(map[string]bool)
		for _, s := range store.Sources() {
			stored[s] = true
		}

		out := make([]gin.H, 0, len(config.Sites))
		for _, site := range config.Sites {
			out = append(out, gin.H{
				"name":        site.Name,
				"displayName": site.DisplayName,
				"baseUrl":     site.BaseURL,
				"hasData":     stored[site.Name],
			})
		}
		c.JSON(http.StatusOK, gin.H{"sources": out})
	}
}

// handleDatesIndex serves the cached dates index, rebuilding it on the fly
// when the artifact is missing.
func handleDatesIndex(store *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := store.ReadDatesIndex()
		if err != nil {
			idx = store.BuildDatesIndex(config.SourceNames(), storage.DatesUnion)
		}
		c.JSON(http.StatusOK, idx)
	}
}

// handleSourceDates lists the stored date keys for one source, newest first.
func handleSourceDates(store *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.Param("source")
		if _, ok := config.Site(source); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown source: " + source})
			return
		}
		c.JSON(http.StatusOK, gin.H{"source": source, "dates": store.AvailableDates(source)})
	}
}

// handleSourceDate serves one (source, date) container. Missing containers
// degrade to an empty article list rather than an error.
func handleSourceDate(store *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.Param("source")
		date := c.Param("date")
		if _, ok := config.Site(source); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown source: " + source})
			return
		}
		c.JSON(http.StatusOK, types.NewsResponse{
			Date:     date,
			Source:   source,
			Articles: store.Load(source, date),
		})
	}
}
