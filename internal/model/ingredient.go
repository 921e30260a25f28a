package model

import "time"

type IngredientCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type Ingredient struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CategoryID *int64    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Market is a place groceries are bought from. Named Market rather than
// Store to keep it distinct from the persistence layer.
type Market struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseOption is one market's sale listing for an ingredient: a package
// of Quantity sold for PriceCents.
type PurchaseOption struct {
	ID           int64     `json:"id"`
	IngredientID int64     `json:"ingredient_id"`
	MarketID     *int64    `json:"market_id"`
	PriceCents   int64     `json:"price_cents"`
	Quantity     Measure   `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}
