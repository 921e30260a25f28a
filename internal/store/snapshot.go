package store

import (
	"database/sql"
	"fmt"

	"github.com/jand19081/ladle/internal/costing"
	"github.com/jand19081/ladle/internal/model"
)

// SnapshotStore assembles the immutable view of the domain data the costing
// engine computes over. Costs and warnings are recomputed from a fresh
// snapshot on every request; at household scale that is cheaper than
// keeping caches honest.
type SnapshotStore struct {
	units       *UnitStore
	ingredients *IngredientStore
	recipes     *RecipeStore
	meals       *MealStore
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{
		units:       NewUnitStore(db),
		ingredients: NewIngredientStore(db),
		recipes:     NewRecipeStore(db),
		meals:       NewMealStore(db),
	}
}

func (s *SnapshotStore) Load() (costing.Snapshot, error) {
	var snap costing.Snapshot

	units, err := s.units.Map()
	if err != nil {
		return snap, fmt.Errorf("load units: %w", err)
	}

	ingredients, err := s.ingredients.List()
	if err != nil {
		return snap, fmt.Errorf("load ingredients: %w", err)
	}
	ingredientMap := make(map[int64]model.Ingredient, len(ingredients))
	for _, i := range ingredients {
		ingredientMap[i.ID] = i
	}

	options, err := s.ingredients.AllOptions()
	if err != nil {
		return snap, fmt.Errorf("load options: %w", err)
	}

	bridges, err := s.ingredients.AllBridges()
	if err != nil {
		return snap, fmt.Errorf("load bridges: %w", err)
	}

	recipes, err := s.recipes.Map()
	if err != nil {
		return snap, fmt.Errorf("load recipes: %w", err)
	}

	requirements, err := s.recipes.AllRequirements()
	if err != nil {
		return snap, fmt.Errorf("load requirements: %w", err)
	}

	meals, err := s.meals.Map()
	if err != nil {
		return snap, fmt.Errorf("load meals: %w", err)
	}

	components, err := s.meals.AllComponents()
	if err != nil {
		return snap, fmt.Errorf("load components: %w", err)
	}

	return costing.Snapshot{
		Units:        units,
		Ingredients:  ingredientMap,
		Options:      options,
		Bridges:      bridges,
		Recipes:      recipes,
		Requirements: requirements,
		Meals:        meals,
		Components:   components,
	}, nil
}
