package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupStatusHandlers registers the service status endpoints
func SetupStatusHandlers(router *gin.RouterGroup, config map[string]string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "ninjamap",
			"port":    config["port"],
		})
	})

	router.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
