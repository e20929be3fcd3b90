package datastore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"menurecs/models"
	"menurecs/utils"
)

// Store holds the menu catalog and the per-customer recommendation table.
// Both are loaded once before serving begins and are read-only afterwards,
// so concurrent reads from simultaneous requests need no locking.
type Store struct {
	menu            map[string]models.MenuItem
	menuOrder       []string
	recommendations map[string][]string
}

// New builds a Store from already-parsed data. Item order follows the menu
// slice; it is the catalog iteration order used for fallback candidates.
func New(items []models.MenuItem, recommendations map[string][]string) *Store {
	menu := make(map[string]models.MenuItem, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := menu[item.ID]; !ok {
			order = append(order, item.ID)
		}
		menu[item.ID] = item
	}
	if recommendations == nil {
		recommendations = map[string][]string{}
	}
	return &Store{menu: menu, menuOrder: order, recommendations: recommendations}
}

// Load reads menu.csv and recommendation.csv from dataDir. Any failure is a
// startup error; the process must not begin serving without the catalog.
func Load(dataDir string) (*Store, error) {
	items, err := readMenu(filepath.Join(dataDir, "menu.csv"))
	if err != nil {
		return nil, err
	}
	recs, err := readRecommendations(filepath.Join(dataDir, "recommendation.csv"))
	if err != nil {
		return nil, err
	}
	return New(items, recs), nil
}

// MenuItem looks up one item by id.
func (s *Store) MenuItem(id string) (models.MenuItem, bool) {
	item, ok := s.menu[id]
	return item, ok
}

// ItemIDs returns every catalog item id in load order.
func (s *Store) ItemIDs() []string {
	ids := make([]string, len(s.menuOrder))
	copy(ids, s.menuOrder)
	return ids
}

// Menu returns the full catalog keyed by item id.
func (s *Store) Menu() map[string]models.MenuItem {
	menu := make(map[string]models.MenuItem, len(s.menu))
	for id, item := range s.menu {
		menu[id] = item
	}
	return menu
}

// Recommendations returns the ranked item list for a customer, best first.
func (s *Store) Recommendations(customerID string) ([]string, bool) {
	recs, ok := s.recommendations[customerID]
	if !ok {
		return nil, false
	}
	out := make([]string, len(recs))
	copy(out, recs)
	return out, true
}

func (s *Store) MenuSize() int {
	return len(s.menu)
}

func (s *Store) RecommendationCount() int {
	return len(s.recommendations)
}

// readMenu parses the menu file: Item, Category, "Item Description", Price.
func readMenu(path string) ([]models.MenuItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not open menu file: %v", err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not parse menu file: %v", err))
	}
	if len(records) == 0 {
		return nil, utils.NewCustomError(utils.KindStartupIO, "menu file is empty")
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Item", "Category", "Item Description", "Price"} {
		if _, ok := columns[required]; !ok {
			return nil, utils.NewCustomError(utils.KindStartupIO, "menu file is missing column "+required)
		}
	}

	items := make([]models.MenuItem, 0, len(records)-1)
	for _, record := range records[1:] {
		price, err := strconv.ParseFloat(record[columns["Price"]], 64)
		if err != nil {
			return nil, utils.NewCustomError(utils.KindStartupIO,
				fmt.Sprintf("menu item %s has invalid price %q", record[columns["Item"]], record[columns["Price"]]))
		}
		items = append(items, models.MenuItem{
			ID:          record[columns["Item"]],
			Category:    record[columns["Category"]],
			Description: record[columns["Item Description"]],
			Price:       price,
		})
	}
	return items, nil
}

// readRecommendations parses the recommendation file: one row per customer,
// first column the customer id, remaining columns the ranked item ids.
func readRecommendations(path string) (map[string][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not open recommendation file: %v", err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, utils.NewCustomError(utils.KindStartupIO, fmt.Sprintf("could not parse recommendation file: %v", err))
	}
	if len(records) == 0 {
		return nil, utils.NewCustomError(utils.KindStartupIO, "recommendation file is empty")
	}

	recommendations := make(map[string][]string, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		customerID := strings.TrimSpace(record[0])
		if customerID == "" {
			continue
		}
		items := make([]string, 0, len(record)-1)
		for _, cell := range record[1:] {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				items = append(items, cell)
			}
		}
		recommendations[customerID] = items
	}
	return recommendations, nil
}
