package costing

import (
	"fmt"

	"github.com/jand19081/ladle/internal/model"
)

// WarningKind tags the data gap a Warning describes.
type WarningKind string

const (
	// WarnMissingPackage: the ingredient has no purchase options, so it can
	// never contribute to a cost estimate.
	WarnMissingPackage WarningKind = "missing_package"
	// WarnMissingBridge: purchase options exist but none is reachable from
	// the required unit (different types, no bridge).
	WarnMissingBridge WarningKind = "missing_bridge"
	// WarnCycle: the sub-recipe graph loops back on itself.
	WarnCycle WarningKind = "cycle"
)

// Warning is a data-quality finding. Warnings are values returned for
// display, never errors: partial data degrades the estimate, it does not
// fail it.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	Ingredient string      `json:"ingredient,omitempty"`
	Recipe     string      `json:"recipe,omitempty"`
	FromUnit   string      `json:"from_unit,omitempty"`
	ToUnit     string      `json:"to_unit,omitempty"`
}

func (w Warning) Message() string {
	switch w.Kind {
	case WarnMissingPackage:
		return fmt.Sprintf("no purchase option for %s", w.Ingredient)
	case WarnMissingBridge:
		return fmt.Sprintf("no conversion from %s to %s for %s", w.FromUnit, w.ToUnit, w.Ingredient)
	case WarnCycle:
		return fmt.Sprintf("recipe %s is part of a sub-recipe cycle", w.Recipe)
	default:
		return string(w.Kind)
	}
}

// ValidateRecipe walks a recipe's requirements, recursing through
// sub-recipes, and reports every ingredient that could not be priced and
// why. Findings are de-duplicated by message.
func (s Snapshot) ValidateRecipe(recipeID int64) []Warning {
	c := &collector{seen: map[string]bool{}}
	s.validateRecipe(recipeID, map[int64]bool{}, c)
	return c.warnings
}

// ValidateMeal applies the recipe checks to each recipe component and the
// same purchase-option and unit-reachability checks to each independent
// ingredient line item.
func (s Snapshot) ValidateMeal(mealID int64) []Warning {
	c := &collector{seen: map[string]bool{}}
	for _, comp := range s.Components[mealID] {
		switch {
		case comp.RecipeID != nil:
			s.validateRecipe(*comp.RecipeID, map[int64]bool{}, c)
		case comp.IngredientID != nil:
			s.checkIngredient(*comp.IngredientID, comp.Quantity, c)
		}
	}
	return c.warnings
}

func (s Snapshot) validateRecipe(recipeID int64, visited map[int64]bool, c *collector) {
	if visited[recipeID] {
		name := fmt.Sprintf("#%d", recipeID)
		if r, ok := s.Recipes[recipeID]; ok {
			name = r.Name
		}
		c.add(Warning{Kind: WarnCycle, Recipe: name})
		return
	}
	visited[recipeID] = true
	defer delete(visited, recipeID)

	for _, req := range s.Requirements[recipeID] {
		switch {
		case req.SubRecipeID != nil:
			s.validateRecipe(*req.SubRecipeID, visited, c)
		case req.IngredientID != nil:
			s.checkIngredient(*req.IngredientID, req.Quantity, c)
		}
	}
}

// checkIngredient runs the two feasibility checks for one required
// quantity: does any purchase option exist, and is any option's unit
// reachable from the required unit. Dangling ingredient or unit ids are
// skipped: there is nothing meaningful to report about data that is not in
// the snapshot at all.
func (s Snapshot) checkIngredient(ingredientID int64, q model.Measure, c *collector) {
	ing, ok := s.Ingredients[ingredientID]
	if !ok {
		return
	}

	opts := s.Options[ingredientID]
	if len(opts) == 0 {
		c.add(Warning{Kind: WarnMissingPackage, Ingredient: ing.Name})
		return
	}

	reqUnit, ok := s.Units[q.UnitID]
	if !ok {
		return
	}

	for _, opt := range opts {
		if s.optionSatisfies(reqUnit, opt, s.Bridges[ingredientID]) {
			return
		}
	}

	first, ok := s.Units[opts[0].Quantity.UnitID]
	firstAbbrev := "?"
	if ok {
		firstAbbrev = first.Abbrev
	}
	c.add(Warning{
		Kind:       WarnMissingBridge,
		Ingredient: ing.Name,
		FromUnit:   reqUnit.Abbrev,
		ToUnit:     firstAbbrev,
	})
}

// optionSatisfies reports whether the required unit can reach the option's
// unit: same unit, same type (base-factor arithmetic always works), or an
// ingredient bridge across the two types.
func (s Snapshot) optionSatisfies(reqUnit model.Unit, opt model.PurchaseOption, bridges []model.Bridge) bool {
	if opt.Quantity.UnitID == reqUnit.ID {
		return true
	}
	optUnit, ok := s.Units[opt.Quantity.UnitID]
	if !ok {
		return false
	}
	if optUnit.Type == reqUnit.Type {
		return true
	}
	for _, b := range bridges {
		bf, ok := s.Units[b.FromUnitID]
		if !ok {
			continue
		}
		bt, ok := s.Units[b.ToUnitID]
		if !ok {
			continue
		}
		if (bf.Type == reqUnit.Type && bt.Type == optUnit.Type) ||
			(bt.Type == reqUnit.Type && bf.Type == optUnit.Type) {
			return true
		}
	}
	return false
}

type collector struct {
	warnings []Warning
	seen     map[string]bool
}

func (c *collector) add(w Warning) {
	msg := w.Message()
	if c.seen[msg] {
		return
	}
	c.seen[msg] = true
	c.warnings = append(c.warnings, w)
}
