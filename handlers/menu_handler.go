package handlers

import (
	"menurecs/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterMenuRoutes(router *gin.Engine, menuController *controllers.MenuController) {
	router.GET("/menu", menuController.GetMenu)
}
