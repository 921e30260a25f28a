package model

import "time"

// ShoppingItem is one line of the shopping list. Generated items carry the
// ingredient they were derived from and an estimated cost; checking an item
// off records what was actually paid, which is how spending is tracked.
type ShoppingItem struct {
	ID             int64      `json:"id"`
	IngredientID   *int64     `json:"ingredient_id,omitempty"`
	Name           string     `json:"name"`
	Quantity       Measure    `json:"quantity"`
	EstimatedCents int64      `json:"estimated_cents"`
	Checked        bool       `json:"checked"`
	PaidCents      *int64     `json:"paid_cents,omitempty"`
	CheckedAt      *time.Time `json:"checked_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
