package models

// PredictContext carries the contextual attributes forwarded to the
// prediction service. Values are passed through as received from the caller.
type PredictContext struct {
	Hour          string
	SchoolHoliday string
	PublicHoliday string
	Weekday       string
	Outlet        string
	Day           string
}

// RecommendRequest is one fully validated recommendation request.
type RecommendRequest struct {
	CustomerID   string
	OutputLength int
	NumPax       int
	TargetSpend  float64
	Order        map[string]int
	Context      PredictContext
}

// Candidate is a request-scoped view of one recommendable item. Category
// indices are assigned in first-seen order within a single request and are
// not stable across requests.
type Candidate struct {
	ItemID        string
	Price         float64
	CategoryIndex int
	Score         int
}

// PredictedScore is one item entry from the prediction service response,
// in response order.
type PredictedScore struct {
	ItemID string
	Score  float64
}

// BudgetContext holds the spending parameters of one request.
type BudgetContext struct {
	NumPax            int
	SpendPerPax       float64
	CurrentTotalPrice float64
}

// Budget is the total spend allowance for the party.
func (b BudgetContext) Budget() float64 {
	return float64(b.NumPax) * b.SpendPerPax
}

// RemainingBudget is what is left after the current order.
func (b BudgetContext) RemainingBudget() float64 {
	return b.Budget() - b.CurrentTotalPrice
}
