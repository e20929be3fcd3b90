package models

// MenuItem is one purchasable item from the menu file. Items are loaded once
// at startup and never mutated afterwards.
type MenuItem struct {
	ID          string  `json:"itemid"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
