package routes

import (
	"errors"
	"net/http"
	"strconv"

	"ninjamap/internal/grid"

	"github.com/gin-gonic/gin"
)

// minCellSize keeps a single request from generating millions of cells.
const minCellSize = 100.0

// SetupGridHandlers registers the grid overlay endpoint
func SetupGridHandlers(router *gin.RouterGroup) {
	router.GET("/grid", func(c *gin.Context) {
		bound := grid.NigeriaBound
		var err error

		if bound.Min[1], err = queryFloat(c, "minLat", bound.Min.Lat()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minLat must be a number"})
			return
		}
		if bound.Max[1], err = queryFloat(c, "maxLat", bound.Max.Lat()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxLat must be a number"})
			return
		}
		if bound.Min[0], err = queryFloat(c, "minLng", bound.Min.Lon()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minLng must be a number"})
			return
		}
		if bound.Max[0], err = queryFloat(c, "maxLng", bound.Max.Lon()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxLng must be a number"})
			return
		}

		if bound.Min.Lat() < -90 || bound.Max.Lat() > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be within [-90, 90]"})
			return
		}
		if bound.Min.Lon() < -180 || bound.Max.Lon() > 180 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "longitude must be within [-180, 180]"})
			return
		}
		if bound.Min.Lat() >= bound.Max.Lat() || bound.Min.Lon() >= bound.Max.Lon() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bounding box is empty"})
			return
		}

		cellSize, err := queryFloat(c, "cell", grid.DefaultCellSize)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cell must be a number"})
			return
		}
		if cellSize < minCellSize {
			cellSize = minCellSize
		}

		g, err := grid.Build(bound, cellSize)
		if errors.Is(err, grid.ErrTooManyCells) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bounding box too large for cell size"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "grid generation failed"})
			return
		}
		c.JSON(http.StatusOK, g.FeatureCollection())
	})
}

func queryFloat(c *gin.Context, name string, fallback float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
