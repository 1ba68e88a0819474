package routes

import (
	"errors"
	"net/http"

	"ninjamap/internal/model"
	"ninjamap/internal/service/profile"

	"github.com/gin-gonic/gin"
)

// userID resolves the acting user from the X-User-ID header. Session
// handling lives in front of this service.
func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return "", false
	}
	return id, true
}

// SetupProfileHandlers registers the user profile endpoints
func SetupProfileHandlers(router *gin.RouterGroup, svc *profile.ProfileService) {
	router.GET("/profile", func(c *gin.Context) {
		id, ok := userID(c)
		if !ok {
			return
		}

		p, err := svc.Get(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	router.PUT("/profile", func(c *gin.Context) {
		id, ok := userID(c)
		if !ok {
			return
		}

		var update model.Profile
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile body"})
			return
		}

		p, err := svc.Update(id, &update)
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	router.PUT("/password", func(c *gin.Context) {
		id, ok := userID(c)
		if !ok {
			return
		}

		var body struct {
			PasswordHash string `json:"password_hash" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password_hash is required"})
			return
		}

		if err := svc.UpdatePassword(id, body.PasswordHash); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
}
