package costing

import (
	"testing"

	"github.com/jand19081/ladle/internal/model"
)

func TestSuggestShopping(t *testing.T) {
	s := testSnapshot()
	g, kg := s.unit(t, "g"), s.unit(t, "kg")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 0.5, UnitID: kg}))
	s.Meals[1] = model.Meal{ID: 1, Name: "Baking day"}
	s.Components[1] = []model.MealComponent{{MealID: 1, RecipeID: &[]int64{1}[0]}}

	mealID := int64(1)
	entries := []model.PlanEntry{
		{ID: 1, MealID: &mealID, Servings: 4},
		{ID: 2, MealID: &mealID, Servings: 4},
	}
	// 600 g already in the pantry.
	pantry := []model.PantryItem{{IngredientID: 1, Quantity: model.Measure{Amount: 600, UnitID: g}}}

	got := s.SuggestShopping(entries, pantry, nil)
	if len(got) != 1 {
		t.Fatalf("suggestions = %v, want one", got)
	}
	sg := got[0]
	if sg.Name != "Flour" {
		t.Errorf("name = %q, want Flour", sg.Name)
	}
	// Two loaves need 1000 g, minus 600 g on hand = 400 g in the option's unit.
	if sg.Quantity.UnitID != g || sg.Quantity.Amount < 399.999 || sg.Quantity.Amount > 400.001 {
		t.Errorf("quantity = %+v, want 400 g", sg.Quantity)
	}
	// 400 g at 0.5 c/g.
	if sg.EstimatedCents != 200 {
		t.Errorf("estimated cents = %d, want 200", sg.EstimatedCents)
	}
}

func TestSuggestShoppingSkipsCoveredAndConsumed(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 500, UnitID: g}))
	s.Meals[1] = model.Meal{ID: 1}
	s.Components[1] = []model.MealComponent{{MealID: 1, RecipeID: &[]int64{1}[0]}}

	mealID := int64(1)
	restaurant := "Luigi's"
	entries := []model.PlanEntry{
		{ID: 1, MealID: &mealID, Servings: 4, Consumed: true},
		{ID: 2, Restaurant: &restaurant, Servings: 2},
	}

	if got := s.SuggestShopping(entries, nil, nil); len(got) != 0 {
		t.Errorf("suggestions = %v, want none (consumed + restaurant only)", got)
	}

	// Pantry fully covers the remaining need.
	entries = []model.PlanEntry{{ID: 3, MealID: &mealID, Servings: 4}}
	pantry := []model.PantryItem{{IngredientID: 1, Quantity: model.Measure{Amount: 500, UnitID: g}}}
	if got := s.SuggestShopping(entries, pantry, nil); len(got) != 0 {
		t.Errorf("suggestions = %v, want none when pantry covers the need", got)
	}
}

func TestSuggestShoppingScalesServings(t *testing.T) {
	s := testSnapshot()
	g, each := s.unit(t, "g"), s.unit(t, "each")
	s.addIngredient(1, "Beef")
	s.addOption(1, 1000, 1000, g)
	s.addIngredient(2, "Baguette")
	s.addOption(2, 250, 1, each)
	s.addRecipe(1, "Stew", 4, model.IngredientRequirement(1, model.Measure{Amount: 400, UnitID: g}))
	s.Meals[1] = model.Meal{ID: 1}
	s.Components[1] = []model.MealComponent{
		{MealID: 1, RecipeID: &[]int64{1}[0]},
		{MealID: 1, IngredientID: &[]int64{2}[0], Quantity: model.Measure{Amount: 1, UnitID: each}},
	}

	mealID := int64(1)
	got := s.SuggestShopping([]model.PlanEntry{{MealID: &mealID, Servings: 8}}, nil, nil)
	if len(got) != 2 {
		t.Fatalf("suggestions = %v, want two", got)
	}
	// Sorted by name: Baguette then Beef.
	if got[0].Name != "Baguette" || got[0].Quantity.Amount != 8 {
		t.Errorf("baguette suggestion = %+v, want 8 each", got[0])
	}
	if got[1].Name != "Beef" || got[1].Quantity.Amount != 800 {
		t.Errorf("beef suggestion = %+v, want 800 g", got[1])
	}
}
