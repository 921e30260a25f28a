package model

import (
	"errors"
	"time"
)

type Recipe struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Servings     int       `json:"servings"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

// Requirement is one line of a recipe: a quantity of either an ingredient
// or another recipe used as a component. Exactly one of IngredientID and
// SubRecipeID is set; the constructors and Validate enforce this, and the
// schema carries a matching CHECK constraint.
type Requirement struct {
	ID           int64   `json:"id"`
	RecipeID     int64   `json:"recipe_id"`
	IngredientID *int64  `json:"ingredient_id,omitempty"`
	SubRecipeID  *int64  `json:"sub_recipe_id,omitempty"`
	Quantity     Measure `json:"quantity"`
	SortOrder    int     `json:"sort_order"`
}

var ErrRequirementTarget = errors.New("requirement needs exactly one of ingredient_id or sub_recipe_id")

// IngredientRequirement builds a requirement for a raw ingredient.
func IngredientRequirement(ingredientID int64, q Measure) Requirement {
	id := ingredientID
	return Requirement{IngredientID: &id, Quantity: q}
}

// SubRecipeRequirement builds a requirement for another recipe used as a component.
func SubRecipeRequirement(subRecipeID int64, q Measure) Requirement {
	id := subRecipeID
	return Requirement{SubRecipeID: &id, Quantity: q}
}

func (r Requirement) Validate() error {
	if (r.IngredientID == nil) == (r.SubRecipeID == nil) {
		return ErrRequirementTarget
	}
	return nil
}
