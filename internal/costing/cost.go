package costing

import (
	"log/slog"

	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/units"
)

// Calculator computes estimated costs in integer cents over a Snapshot.
//
// Costing never fails: an ingredient whose price cannot be established
// (no purchase option, unconvertible units, dangling id) contributes zero
// and a diagnostic is logged. Validate reports those gaps as warnings so
// the UI can explain a suspiciously low total.
type Calculator struct {
	snap   Snapshot
	logger *slog.Logger
}

func NewCalculator(snap Snapshot, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{snap: snap, logger: logger}
}

// RecipeCost estimates the cost of one batch of the recipe at its base
// serving count. Sub-recipe requirements are priced recursively; a cycle in
// the recipe graph contributes zero for the revisited recipe.
func (c *Calculator) RecipeCost(recipeID int64) int64 {
	cents := c.recipeCost(recipeID, 1.0, map[int64]bool{})
	return truncateCents(cents)
}

// MealCost estimates the cost of a meal: its recipe components at their
// base servings plus its independent ingredient line items.
func (c *Calculator) MealCost(mealID int64) int64 {
	return truncateCents(c.mealCost(mealID, 0))
}

// PlannedCost estimates the cost of a scheduled plan entry, scaling each
// recipe component by targetServings / recipe.Servings and each independent
// line item by targetServings. Restaurant entries cost zero here; what was
// actually spent eating out is tracked outside the estimator.
func (c *Calculator) PlannedCost(entry model.PlanEntry) int64 {
	if entry.MealID == nil {
		return 0
	}
	return truncateCents(c.mealCost(*entry.MealID, entry.Servings))
}

// mealCost sums component costs. targetServings == 0 means "unscaled":
// recipes at their own base servings, line items once.
func (c *Calculator) mealCost(mealID int64, targetServings int) float64 {
	if _, ok := c.snap.Meals[mealID]; !ok {
		return 0
	}
	var total float64
	for _, comp := range c.snap.Components[mealID] {
		switch {
		case comp.RecipeID != nil:
			scale := 1.0
			if targetServings > 0 {
				scale = servingScale(c.snap.Recipes[*comp.RecipeID], targetServings)
			}
			total += c.recipeCost(*comp.RecipeID, scale, map[int64]bool{})
		case comp.IngredientID != nil:
			q := comp.Quantity
			if targetServings > 0 {
				q.Amount *= float64(targetServings)
			}
			total += c.requirementCost(*comp.IngredientID, q)
		}
	}
	return total
}

func (c *Calculator) recipeCost(recipeID int64, scale float64, visited map[int64]bool) float64 {
	if visited[recipeID] {
		c.logger.Warn("recipe cycle during costing", "recipe_id", recipeID)
		return 0
	}
	visited[recipeID] = true
	defer delete(visited, recipeID)

	var total float64
	for _, req := range c.snap.Requirements[recipeID] {
		switch {
		case req.SubRecipeID != nil:
			total += c.recipeCost(*req.SubRecipeID, scale, visited)
		case req.IngredientID != nil:
			q := req.Quantity
			q.Amount *= scale
			total += c.requirementCost(*req.IngredientID, q)
		}
	}
	return total
}

// requirementCost prices a required quantity of an ingredient against its
// cheapest purchase option. Returns fractional cents; truncation happens
// once at the entry points.
func (c *Calculator) requirementCost(ingredientID int64, q model.Measure) float64 {
	opt := c.snap.cheapestOption(ingredientID)
	if opt == nil {
		return 0
	}
	if opt.Quantity.Amount <= 0 {
		c.logger.Warn("purchase option with non-positive package size",
			"ingredient_id", ingredientID, "option_id", opt.ID)
		return 0
	}

	converted, err := units.Convert(q.Amount, q.UnitID, opt.Quantity.UnitID, c.snap.Units, c.snap.Bridges[ingredientID])
	if err != nil {
		if q.Amount != 0 {
			c.logger.Warn("cannot convert required quantity",
				"ingredient_id", ingredientID,
				"from_unit", q.UnitID, "to_unit", opt.Quantity.UnitID,
				"error", err)
		}
		return 0
	}
	if converted <= 0 {
		return 0
	}

	pricePerUnit := float64(opt.PriceCents) / opt.Quantity.Amount
	return pricePerUnit * converted
}

// servingScale is targetServings over the recipe's base servings, falling
// back to 1.0 when the base is unset or nonsense (avoids divide-by-zero).
func servingScale(r model.Recipe, targetServings int) float64 {
	if r.Servings <= 0 {
		return 1.0
	}
	return float64(targetServings) / float64(r.Servings)
}

// truncateCents converts fractional cents to whole cents, truncating toward
// zero and clamping at zero so a total can never read negative.
func truncateCents(cents float64) int64 {
	if cents <= 0 {
		return 0
	}
	return int64(cents)
}
