package services

import (
	"menurecs/config/datastore"
	"menurecs/models"
)

// MenuService exposes the loaded catalog.
type MenuService struct {
	Store *datastore.Store
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(store *datastore.Store) *MenuService {
	return &MenuService{Store: store}
}

// Menu returns the whole catalog keyed by item id.
func (s *MenuService) Menu() map[string]models.MenuItem {
	return s.Store.Menu()
}
