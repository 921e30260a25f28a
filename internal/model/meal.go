package model

import (
	"errors"
	"time"
)

// Meal is a named bundle of recipes plus loose ingredient line items
// ("spaghetti bolognese + garlic bread + a bag of salad").
type Meal struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MealComponent is either a recipe reference or an independent ingredient
// line item with its own quantity. Exactly one of RecipeID and IngredientID
// is set.
type MealComponent struct {
	ID           int64   `json:"id"`
	MealID       int64   `json:"meal_id"`
	RecipeID     *int64  `json:"recipe_id,omitempty"`
	IngredientID *int64  `json:"ingredient_id,omitempty"`
	Quantity     Measure `json:"quantity"`
}

var ErrComponentTarget = errors.New("meal component needs exactly one of recipe_id or ingredient_id")

func RecipeComponent(recipeID int64) MealComponent {
	id := recipeID
	return MealComponent{RecipeID: &id}
}

func IngredientComponent(ingredientID int64, q Measure) MealComponent {
	id := ingredientID
	return MealComponent{IngredientID: &id, Quantity: q}
}

func (c MealComponent) Validate() error {
	if (c.RecipeID == nil) == (c.IngredientID == nil) {
		return ErrComponentTarget
	}
	return nil
}
