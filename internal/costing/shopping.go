package costing

import (
	"log/slog"
	"sort"

	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/units"
)

// Suggestion is one proposed shopping-list line: how much of an ingredient
// the plan needs beyond what the pantry holds, and what that is expected
// to cost at the cheapest known purchase option.
type Suggestion struct {
	IngredientID   int64         `json:"ingredient_id"`
	Name           string        `json:"name"`
	Quantity       model.Measure `json:"quantity"`
	EstimatedCents int64         `json:"estimated_cents"`
}

// SuggestShopping aggregates the ingredient needs of the given plan entries
// (skipping consumed and restaurant entries), nets out pantry stock, and
// returns one suggestion per ingredient still needed, ordered by name.
//
// Amounts are expressed in the cheapest purchase option's unit when one
// exists, else in the first requirement's unit. Quantities that cannot be
// converted into that unit are dropped from the aggregate with a diagnostic;
// the data-quality warnings surface the same gap to the user.
func (s Snapshot) SuggestShopping(entries []model.PlanEntry, pantry []model.PantryItem, logger *slog.Logger) []Suggestion {
	if logger == nil {
		logger = slog.Default()
	}

	// ingredient id -> required amounts per source unit
	needs := map[int64][]model.Measure{}

	add := func(ingredientID int64, q model.Measure) {
		needs[ingredientID] = append(needs[ingredientID], q)
	}

	for _, entry := range entries {
		if entry.Consumed || entry.MealID == nil {
			continue
		}
		for _, comp := range s.Components[*entry.MealID] {
			switch {
			case comp.RecipeID != nil:
				scale := servingScale(s.Recipes[*comp.RecipeID], entry.Servings)
				s.gatherRecipeNeeds(*comp.RecipeID, scale, map[int64]bool{}, add)
			case comp.IngredientID != nil:
				q := comp.Quantity
				q.Amount *= float64(entry.Servings)
				add(*comp.IngredientID, q)
			}
		}
	}

	onHand := map[int64]model.Measure{}
	for _, item := range pantry {
		onHand[item.IngredientID] = item.Quantity
	}

	var out []Suggestion
	for ingredientID, measures := range needs {
		ing, ok := s.Ingredients[ingredientID]
		if !ok {
			continue
		}

		targetUnit := measures[0].UnitID
		opt := s.cheapestOption(ingredientID)
		if opt != nil {
			targetUnit = opt.Quantity.UnitID
		}

		bridges := s.Bridges[ingredientID]
		var total float64
		for _, q := range measures {
			converted, err := units.Convert(q.Amount, q.UnitID, targetUnit, s.Units, bridges)
			if err != nil {
				logger.Warn("dropping unconvertible requirement from shopping aggregate",
					"ingredient", ing.Name, "from_unit", q.UnitID, "to_unit", targetUnit, "error", err)
				continue
			}
			total += converted
		}

		if have, ok := onHand[ingredientID]; ok {
			converted, err := units.Convert(have.Amount, have.UnitID, targetUnit, s.Units, bridges)
			if err != nil {
				logger.Warn("ignoring unconvertible pantry stock",
					"ingredient", ing.Name, "from_unit", have.UnitID, "to_unit", targetUnit, "error", err)
			} else {
				total -= converted
			}
		}

		if total <= 1e-9 {
			continue
		}

		var cents int64
		if opt != nil && opt.Quantity.Amount > 0 {
			cents = truncateCents(float64(opt.PriceCents) / opt.Quantity.Amount * total)
		}

		out = append(out, Suggestion{
			IngredientID:   ingredientID,
			Name:           ing.Name,
			Quantity:       model.Measure{Amount: total, UnitID: targetUnit},
			EstimatedCents: cents,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// gatherRecipeNeeds walks a recipe's requirements depth-first, scaling
// amounts, and feeds each ingredient requirement to add. Cycles are cut
// silently; the validator reports them.
func (s Snapshot) gatherRecipeNeeds(recipeID int64, scale float64, visited map[int64]bool, add func(int64, model.Measure)) {
	if visited[recipeID] {
		return
	}
	visited[recipeID] = true
	defer delete(visited, recipeID)

	for _, req := range s.Requirements[recipeID] {
		switch {
		case req.SubRecipeID != nil:
			s.gatherRecipeNeeds(*req.SubRecipeID, scale, visited, add)
		case req.IngredientID != nil:
			q := req.Quantity
			q.Amount *= scale
			add(*req.IngredientID, q)
		}
	}
}
