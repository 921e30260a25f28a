package costing

import (
	"testing"

	"github.com/jand19081/ladle/internal/model"
	"github.com/jand19081/ladle/internal/units"
)

func testSnapshot() *Snapshot {
	s := &Snapshot{
		Units:        map[int64]model.Unit{},
		Ingredients:  map[int64]model.Ingredient{},
		Options:      map[int64][]model.PurchaseOption{},
		Bridges:      map[int64][]model.Bridge{},
		Recipes:      map[int64]model.Recipe{},
		Requirements: map[int64][]model.Requirement{},
		Meals:        map[int64]model.Meal{},
		Components:   map[int64][]model.MealComponent{},
	}
	for i, su := range units.Catalog {
		id := int64(i + 1)
		s.Units[id] = model.Unit{ID: id, Type: su.Type, Abbrev: su.Abbrev, FactorToBase: su.FactorToBase, IsSystem: true}
	}
	return s
}

func (s *Snapshot) unit(t *testing.T, abbrev string) int64 {
	t.Helper()
	for id, u := range s.Units {
		if u.Abbrev == abbrev {
			return id
		}
	}
	t.Fatalf("no unit %q in fixture", abbrev)
	return 0
}

func (s *Snapshot) addIngredient(id int64, name string) {
	s.Ingredients[id] = model.Ingredient{ID: id, Name: name}
}

func (s *Snapshot) addOption(ingredientID, priceCents int64, amount float64, unitID int64) {
	opt := model.PurchaseOption{
		ID:           int64(len(s.Options[ingredientID]) + 1),
		IngredientID: ingredientID,
		PriceCents:   priceCents,
		Quantity:     model.Measure{Amount: amount, UnitID: unitID},
	}
	s.Options[ingredientID] = append(s.Options[ingredientID], opt)
}

func (s *Snapshot) addRecipe(id int64, name string, servings int, reqs ...model.Requirement) {
	s.Recipes[id] = model.Recipe{ID: id, Name: name, Servings: servings}
	for i := range reqs {
		reqs[i].RecipeID = id
	}
	s.Requirements[id] = reqs
}

// Flour sold as 500 g for 250 cents; the recipe wants 2 cups. Without a
// volume/weight bridge the flour prices at zero.
func TestRecipeCostNoBridge(t *testing.T) {
	s := testSnapshot()
	cup, g := s.unit(t, "cup"), s.unit(t, "g")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 2, UnitID: cup}))

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 0 {
		t.Errorf("RecipeCost = %d, want 0 without a bridge", got)
	}
}

// With a 1 cup = 120 g bridge: 2 cups -> 240 g at 0.5 cents/g = 120 cents.
func TestRecipeCostWithBridge(t *testing.T) {
	s := testSnapshot()
	cup, g := s.unit(t, "cup"), s.unit(t, "g")
	s.addIngredient(1, "Flour")
	s.addOption(1, 250, 500, g)
	s.Bridges[1] = []model.Bridge{{IngredientID: 1, FromAmount: 1, FromUnitID: cup, ToAmount: 120, ToUnitID: g}}
	s.addRecipe(1, "Bread", 4, model.IngredientRequirement(1, model.Measure{Amount: 2, UnitID: cup}))

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 120 {
		t.Errorf("RecipeCost = %d, want 120", got)
	}
}

func TestRecipeCostSameTypeConversion(t *testing.T) {
	s := testSnapshot()
	g, kg := s.unit(t, "g"), s.unit(t, "kg")
	s.addIngredient(1, "Sugar")
	s.addOption(1, 300, 1, kg) // 300 cents per kg
	s.addRecipe(1, "Syrup", 1, model.IngredientRequirement(1, model.Measure{Amount: 250, UnitID: g}))

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 75 {
		t.Errorf("RecipeCost = %d, want 75", got)
	}
}

// The cheapest option is picked by raw package price, not price per unit.
func TestCheapestOptionByPackagePrice(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Rice")
	s.addOption(1, 2000, 5000, g) // $20 for 5 kg: 0.4 c/g
	s.addOption(1, 300, 100, g)   // $3 for 100 g: 3 c/g, but cheaper package
	s.addRecipe(1, "Pilaf", 2, model.IngredientRequirement(1, model.Measure{Amount: 200, UnitID: g}))

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 600 {
		t.Errorf("RecipeCost = %d, want 600 (200 g at the cheaper package's 3 c/g)", got)
	}
}

func TestRecipeCostTruncatesCents(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Salt")
	s.addOption(1, 100, 3, g) // 33.33... cents per g
	s.addRecipe(1, "Brine", 1, model.IngredientRequirement(1, model.Measure{Amount: 1, UnitID: g}))

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 33 {
		t.Errorf("RecipeCost = %d, want 33 (truncated, not rounded)", got)
	}
}

func TestRecipeCostMissingData(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Flour")
	// no purchase options at all
	s.addRecipe(1, "Bread", 4,
		model.IngredientRequirement(1, model.Measure{Amount: 500, UnitID: g}),
		model.IngredientRequirement(99, model.Measure{Amount: 1, UnitID: g})) // dangling ingredient

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 0 {
		t.Errorf("RecipeCost = %d, want 0", got)
	}
	if got := calc.RecipeCost(42); got != 0 {
		t.Errorf("RecipeCost of unknown recipe = %d, want 0", got)
	}
}

func TestRecipeCostRecursesSubRecipes(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Tomato")
	s.addOption(1, 200, 1000, g)
	s.addRecipe(2, "Sauce", 2, model.IngredientRequirement(1, model.Measure{Amount: 500, UnitID: g}))
	s.addRecipe(1, "Pasta bake", 4, model.SubRecipeRequirement(2, model.Measure{Amount: 1, UnitID: g}))

	calc := NewCalculator(*s, nil)
	if got := calc.RecipeCost(1); got != 100 {
		t.Errorf("RecipeCost = %d, want 100 from the sub-recipe's tomatoes", got)
	}
}

func TestRecipeCostCycleContributesZero(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Butter")
	s.addOption(1, 400, 250, g)
	s.addRecipe(1, "A", 1,
		model.IngredientRequirement(1, model.Measure{Amount: 250, UnitID: g}),
		model.SubRecipeRequirement(2, model.Measure{Amount: 1, UnitID: g}))
	s.addRecipe(2, "B", 1, model.SubRecipeRequirement(1, model.Measure{Amount: 1, UnitID: g}))

	calc := NewCalculator(*s, nil)
	// A's butter counts once; the A->B->A loop is cut.
	if got := calc.RecipeCost(1); got != 400 {
		t.Errorf("RecipeCost = %d, want 400", got)
	}
}

func TestMealCost(t *testing.T) {
	s := testSnapshot()
	g, each := s.unit(t, "g"), s.unit(t, "each")
	s.addIngredient(1, "Beef")
	s.addOption(1, 900, 500, g)
	s.addIngredient(2, "Baguette")
	s.addOption(2, 250, 1, each)
	s.addRecipe(1, "Stew", 4, model.IngredientRequirement(1, model.Measure{Amount: 250, UnitID: g}))
	s.Meals[1] = model.Meal{ID: 1, Name: "Sunday dinner"}
	s.Components[1] = []model.MealComponent{
		{MealID: 1, RecipeID: &[]int64{1}[0]},
		{MealID: 1, IngredientID: &[]int64{2}[0], Quantity: model.Measure{Amount: 2, UnitID: each}},
	}

	calc := NewCalculator(*s, nil)
	// 250 g beef at 1.8 c/g = 450, plus 2 baguettes at 250 = 500.
	if got := calc.MealCost(1); got != 950 {
		t.Errorf("MealCost = %d, want 950", got)
	}
	if got := calc.MealCost(77); got != 0 {
		t.Errorf("MealCost of unknown meal = %d, want 0", got)
	}
}

func TestPlannedCostScaling(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Beef")
	s.addOption(1, 1000, 1000, g)
	s.addRecipe(1, "Stew", 4, model.IngredientRequirement(1, model.Measure{Amount: 400, UnitID: g}))
	s.Meals[1] = model.Meal{ID: 1, Name: "Dinner"}
	s.Components[1] = []model.MealComponent{{MealID: 1, RecipeID: &[]int64{1}[0]}}

	calc := NewCalculator(*s, nil)
	mealID := int64(1)

	base := calc.PlannedCost(model.PlanEntry{MealID: &mealID, Servings: 4})
	double := calc.PlannedCost(model.PlanEntry{MealID: &mealID, Servings: 8})
	if base != 400 {
		t.Errorf("base cost = %d, want 400", base)
	}
	if double != 2*base {
		t.Errorf("doubled servings cost = %d, want %d", double, 2*base)
	}
}

func TestPlannedCostGuardsZeroServings(t *testing.T) {
	s := testSnapshot()
	g := s.unit(t, "g")
	s.addIngredient(1, "Beef")
	s.addOption(1, 1000, 1000, g)
	s.addRecipe(1, "Stew", 0, model.IngredientRequirement(1, model.Measure{Amount: 400, UnitID: g}))
	s.Meals[1] = model.Meal{ID: 1}
	s.Components[1] = []model.MealComponent{{MealID: 1, RecipeID: &[]int64{1}[0]}}

	calc := NewCalculator(*s, nil)
	mealID := int64(1)
	// Base servings of zero falls back to a scale of 1.0.
	if got := calc.PlannedCost(model.PlanEntry{MealID: &mealID, Servings: 6}); got != 400 {
		t.Errorf("PlannedCost = %d, want 400", got)
	}
}

func TestPlannedCostRestaurant(t *testing.T) {
	s := testSnapshot()
	calc := NewCalculator(*s, nil)
	name := "Luigi's"
	if got := calc.PlannedCost(model.PlanEntry{Restaurant: &name, Servings: 2}); got != 0 {
		t.Errorf("PlannedCost for restaurant entry = %d, want 0", got)
	}
}
