package handlers

import (
	"menurecs/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRecommendRoutes(router *gin.Engine, recommendController *controllers.RecommendController) {
	router.GET("/recommend", recommendController.GetRecommendation)
}
