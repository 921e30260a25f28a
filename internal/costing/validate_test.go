package costing

import (
	"testing"

	"github.com/jand19081/ladle/internal/model"
)

func TestValidateRecipeClean(t *testing.T) {
	s := testSnapshot()
	g, kg := s.unit(t, "g"), s.unit(t, "kg")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 1, kg)
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 500, UnitID: g}))

	if warnings := s.ValidateRecipe(1); len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestValidateRecipeMissingPackage(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Saffron")
	s.addRecipe(1, "Paella", 4,
		model.IngredientRequirement(1, model.Measure{Amount: 1, UnitID: g}),
		model.IngredientRequirement(1, model.Measure{Amount: 2, UnitID: g}))

	warnings := s.ValidateRecipe(1)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one (deduplicated)", warnings)
	}
	w := warnings[0]
	if w.Kind != WarnMissingPackage || w.Ingredient != "Saffron" {
		t.Errorf("warning = %+v, want missing_package for Saffron", w)
	}
}

func TestValidateRecipeMissingBridge(t *testing.T) {
	s := testSnapshot()
	cup, g := s.unit(t, "cup"), s.unit(t, "g")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 2, UnitID: cup}))

	warnings := s.ValidateRecipe(1)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	w := warnings[0]
	if w.Kind != WarnMissingBridge {
		t.Fatalf("kind = %q, want missing_bridge", w.Kind)
	}
	if w.Ingredient != "Flour" || w.FromUnit != "cup" || w.ToUnit != "g" {
		t.Errorf("warning = %+v, want Flour cup->g", w)
	}
}

func TestValidateRecipeBridgeSilencesWarning(t *testing.T) {
	s := testSnapshot()
	cup, g := s.unit(t, "cup"), s.unit(t, "g")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.Bridges[1] = []model.Bridge{{IngredientID: 1, FromAmount: 1, FromUnitID: cup, ToAmount: 120, ToUnitID: g}}
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 2, UnitID: cup}))

	if warnings := s.ValidateRecipe(1); len(warnings) != 0 {
		t.Errorf("warnings = %v, want none with the bridge in place", warnings)
	}
}

func TestValidateRecipeRecursesAndDedupes(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Saffron")
	s.addRecipe(2, "Stock", 1, model.IngredientRequirement(1, model.Measure{Amount: 1, UnitID: g}))
	s.addRecipe(1, "Risotto", 2,
		model.IngredientRequirement(1, model.Measure{Amount: 1, UnitID: g}),
		model.SubRecipeRequirement(2, model.Measure{Amount: 1, UnitID: g}))

	warnings := s.ValidateRecipe(1)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one deduplicated missing_package", warnings)
	}
}

func TestValidateRecipeCycle(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addRecipe(1, "A", 1, model.SubRecipeRequirement(2, model.Measure{Amount: 1, UnitID: g}))
	s.addRecipe(2, "B", 1, model.SubRecipeRequirement(1, model.Measure{Amount: 1, UnitID: g}))

	warnings := s.ValidateRecipe(1)
	if len(warnings) != 1 || warnings[0].Kind != WarnCycle {
		t.Fatalf("warnings = %v, want one cycle warning", warnings)
	}
	if warnings[0].Recipe != "A" {
		t.Errorf("cycle recipe = %q, want A (the revisited node)", warnings[0].Recipe)
	}
}

func TestValidateRecipeSkipsDanglingIDs(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addRecipe(1, "Mystery", 1, model.IngredientRequirement(404, model.Measure{Amount: 1, UnitID: g}))

	// A dangling ingredient id cannot be verified; no synthetic warning.
	if warnings := s.ValidateRecipe(1); len(warnings) != 0 {
		t.Errorf("warnings = %v, want none for dangling ingredient", warnings)
	}
}

func TestValidateMeal(t *testing.T) {
	s := testSnapshot()
	cup, g, each := s.unit(t, "cup"), s.unit(t, "g"), s.unit(t, "each")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.addIngredient(2, "Candles")
	s.addRecipe(1, "Cake", 8, model.IngredientRequirement(1, model.Measure{Amount: 2, UnitID: cup}))
	s.Meals[1] = model.Meal{ID: 1, Name: "Birthday"}
	s.Components[1] = []model.MealComponent{
		{MealID: 1, RecipeID: &[]int64{1}[0]},
		{MealID: 1, IngredientID: &[]int64{2}[0], Quantity: model.Measure{Amount: 12, UnitID: each}},
	}

	warnings := s.ValidateMeal(1)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want bridge warning plus package warning", warnings)
	}
	kinds := map[WarningKind]bool{}
	for _, w := range warnings {
		kinds[w.Kind] = true
	}
	if !kinds[WarnMissingBridge] || !kinds[WarnMissingPackage] {
		t.Errorf("warnings = %v, want one missing_bridge and one missing_package", warnings)
	}
}
