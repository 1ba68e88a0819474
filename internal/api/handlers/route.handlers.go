package routes

import (
	"errors"
	"log"
	"net/http"

	"ninjamap/internal/routing"

	"github.com/gin-gonic/gin"
)

type routeRequest struct {
	Points []routing.RoutePoint  `json:"points" binding:"required"`
	Mode   routing.TransportMode `json:"mode"`
}

// SetupRouteHandlers registers the route calculation endpoint
func SetupRouteHandlers(router *gin.RouterGroup, assembler *routing.Assembler) {
	router.POST("/route", func(c *gin.Context) {
		var req routeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		results, err := assembler.Routes(c.Request.Context(), req.Points, req.Mode)
		if err != nil {
			log.Printf("Route calculation failed: %v", err)
			c.JSON(statusForRouteError(err), gin.H{"error": err.Error()})
			return
		}

		// Fastest route first; the client re-indexes for alternates.
		c.JSON(http.StatusOK, gin.H{"routes": results})
	})
}

func statusForRouteError(err error) int {
	switch {
	case errors.Is(err, routing.ErrInsufficientPoints):
		return http.StatusBadRequest
	case errors.Is(err, routing.ErrNoRouteFound), errors.Is(err, routing.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, routing.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, routing.ErrServiceUnavailable), errors.Is(err, routing.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
