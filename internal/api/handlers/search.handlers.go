package routes

import (
	"log"
	"net/http"
	"strconv"

	"ninjamap/internal/service/search"

	"github.com/gin-gonic/gin"
)

// SetupSearchHandlers registers the place search endpoint
func SetupSearchHandlers(router *gin.RouterGroup, svc *search.SearchService) {
	router.GET("/search", func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
			return
		}

		limit := 5
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 20 {
				limit = parsed
			}
		}

		results, err := svc.Search(c.Request.Context(), query, limit)
		if err != nil {
			log.Printf("Search failed for %q: %v", query, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "search is temporarily unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"results": results})
	})
}
