package controllers

import (
	"net/http"

	"menurecs/config/datastore"
	"menurecs/services"
	"menurecs/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	MenuService *services.MenuService
}

func NewMenuController(store *datastore.Store) *MenuController {
	return &MenuController{
		MenuService: services.NewMenuService(store),
	}
}

// GetMenu returns the full catalog as itemid -> item details.
func (s *MenuController) GetMenu(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, s.MenuService.Menu())
}
