package model

import "time"

// PantryItem is the quantity of an ingredient currently on hand.
type PantryItem struct {
	ID           int64     `json:"id"`
	IngredientID int64     `json:"ingredient_id"`
	Quantity     Measure   `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}
