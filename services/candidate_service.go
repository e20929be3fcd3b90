package services

import (
	"fmt"

	"menurecs/config/datastore"
	"menurecs/utils"

	"github.com/rs/zerolog"
)

// CandidateService derives the per-request list of recommendable items.
type CandidateService struct {
	Store  *datastore.Store
	Logger zerolog.Logger
}

// NewCandidateService creates a new instance of CandidateService
func NewCandidateService(store *datastore.Store, logger zerolog.Logger) *CandidateService {
	return &CandidateService{Store: store, Logger: logger}
}

// Build returns the ordered candidate item ids for the customer. The
// customer's ranked recommendation list is used when one exists; otherwise
// the whole catalog serves as candidates, in catalog order, with no
// personalization signal. Items already in the order are never candidates.
func (s *CandidateService) Build(customerID string, order map[string]int) ([]string, bool, error) {
	for itemID := range order {
		if _, ok := s.Store.MenuItem(itemID); !ok {
			return nil, false, utils.NewCustomError(utils.KindDataInconsistency,
				fmt.Sprintf("ordered item %s is not on the menu", itemID))
		}
	}

	source, personalized := s.Store.Recommendations(customerID)
	if !personalized {
		// Degraded mode: nothing known about this customer.
		s.Logger.Warn().Str("customer_id", customerID).Msg("no recommendation entry, falling back to full catalog")
		source = s.Store.ItemIDs()
	}

	candidates := make([]string, 0, len(source))
	for _, itemID := range source {
		if _, ordered := order[itemID]; ordered {
			continue
		}
		candidates = append(candidates, itemID)
	}
	return candidates, personalized, nil
}

// OrderTotal sums price * quantity over the current order.
func (s *CandidateService) OrderTotal(order map[string]int) (float64, error) {
	total := 0.0
	for itemID, quantity := range order {
		item, ok := s.Store.MenuItem(itemID)
		if !ok {
			return 0, utils.NewCustomError(utils.KindDataInconsistency,
				fmt.Sprintf("ordered item %s is not on the menu", itemID))
		}
		s.Logger.Debug().Str("item", item.ID).Float64("price", item.Price).Int("qty", quantity).Msg("adding current item")
		total += item.Price * float64(quantity)
	}
	return total, nil
}
