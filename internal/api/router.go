package api

import (
	routes "ninjamap/internal/api/handlers"
	"ninjamap/internal/routing"
	"ninjamap/internal/service/profile"
	"ninjamap/internal/service/search"

	"github.com/gin-gonic/gin"
)

// Dependencies carries the services the handlers operate on.
type Dependencies struct {
	Assembler *routing.Assembler
	Search    *search.SearchService
	Profiles  *profile.ProfileService
	Config    map[string]string
}

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, deps Dependencies) {
	// API group
	api := r.Group("/api")

	routes.SetupStatusHandlers(r.Group(""), deps.Config)

	mapGroup := api.Group("/map")
	routes.SetupRouteHandlers(mapGroup, deps.Assembler)
	routes.SetupSearchHandlers(mapGroup, deps.Search)
	routes.SetupGridHandlers(mapGroup)

	routes.SetupProfileHandlers(api.Group("/user"), deps.Profiles)
}
