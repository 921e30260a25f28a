// Package costing estimates grocery costs for recipes, meals, and planned
// meals, and reports the data gaps that would make an estimate misleading.
// Everything here is a pure function over an immutable Snapshot; persistence
// and change notification live with the caller.
package costing

import "github.com/jand19081/ladle/internal/model"

// Snapshot is a point-in-time view of the domain data, keyed for O(1)
// lookup. The costing functions never mutate it, so a snapshot may be
// shared across goroutines.
type Snapshot struct {
	Units        map[int64]model.Unit
	Ingredients  map[int64]model.Ingredient
	Options      map[int64][]model.PurchaseOption // keyed by ingredient id
	Bridges      map[int64][]model.Bridge         // keyed by ingredient id
	Recipes      map[int64]model.Recipe
	Requirements map[int64][]model.Requirement // keyed by recipe id
	Meals        map[int64]model.Meal
	Components   map[int64][]model.MealComponent // keyed by meal id
}

// cheapestOption returns the purchase option with the lowest raw package
// price, or nil if the ingredient has none. Deliberately not normalized to
// price-per-unit: a big cheap-per-gram bag loses to a smaller cheaper
// package, matching how the household actually shops week to week.
func (s Snapshot) cheapestOption(ingredientID int64) *model.PurchaseOption {
	opts := s.Options[ingredientID]
	var best *model.PurchaseOption
	for i := range opts {
		if best == nil || opts[i].PriceCents < best.PriceCents {
			best = &opts[i]
		}
	}
	return best
}
