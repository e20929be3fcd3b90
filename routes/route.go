package route

import (
	"menurecs/config/datastore"
	"menurecs/controllers"
	"menurecs/handlers"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine, store *datastore.Store, logger zerolog.Logger) {
	menuController := controllers.NewMenuController(store)
	recommendController := controllers.NewRecommendController(store, logger)

	handlers.RegisterMenuRoutes(router, menuController)
	handlers.RegisterRecommendRoutes(router, recommendController)
}
