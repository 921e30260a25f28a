package model

import "time"

// UnitType classifies a unit by the physical quantity it measures.
// Units of the same type convert through a shared base unit; units of
// different types only convert through an ingredient-scoped bridge.
type UnitType string

const (
	UnitWeight UnitType = "weight"
	UnitVolume UnitType = "volume"
	UnitCount  UnitType = "count"
	UnitCustom UnitType = "custom"
)

type Unit struct {
	ID           int64     `json:"id"`
	Type         UnitType  `json:"type"`
	Abbrev       string    `json:"abbrev"`
	FactorToBase float64   `json:"factor_to_base"`
	IsSystem     bool      `json:"is_system"`
	CreatedAt    time.Time `json:"created_at"`
}

// Measure is a quantity: an amount paired with the unit it is expressed in.
type Measure struct {
	Amount float64 `json:"amount"`
	UnitID int64   `json:"unit_id"`
}

// Bridge records an ingredient-specific equivalence between two units,
// typically of different types ("1 cup of butter weighs 227 g"). Storage is
// directional but a bridge converts in either direction.
type Bridge struct {
	ID           int64     `json:"id"`
	IngredientID int64     `json:"ingredient_id"`
	FromAmount   float64   `json:"from_amount"`
	FromUnitID   int64     `json:"from_unit_id"`
	ToAmount     float64   `json:"to_amount"`
	ToUnitID     int64     `json:"to_unit_id"`
	CreatedAt    time.Time `json:"created_at"`
}
