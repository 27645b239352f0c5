package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsdeck/storage"
)

// RegisterNewsRoutes registers the paginated article listing.
func RegisterNewsRoutes(r *gin.Engine, store *storage.FileStore) {
	r.GET("/api/news", handleNews(store))
}

// handleNews serves one page of the date-filtered article collection.
// GET /api/news?date=YYYY-MM-DD&page=1&limit=20&source=theverge
// date defaults to today (UTC); source empty means all sources.
func handleNews(store *storage.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			date = storage.DateKey(time.Now())
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}

		page := queryInt(c, "page", 1)
		limit := queryInt(c, "limit", 20)
		source := c.Query("source")

		c.JSON(http.StatusOK, store.Page(date, page, limit, source))
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
