package model

import (
	"errors"
	"time"
)

// PlanEntry is a calendar occurrence: a meal cooked at home for Servings
// people, or a restaurant visit. Exactly one of MealID and Restaurant is set.
type PlanEntry struct {
	ID         int64     `json:"id"`
	MealID     *int64    `json:"meal_id,omitempty"`
	Restaurant *string   `json:"restaurant,omitempty"`
	Date       time.Time `json:"date"`
	Servings   int       `json:"servings"`
	Consumed   bool      `json:"consumed"`
	CreatedAt  time.Time `json:"created_at"`
}

var ErrPlanTarget = errors.New("plan entry needs exactly one of meal_id or restaurant")

func (e PlanEntry) Validate() error {
	if (e.MealID == nil) == (e.Restaurant == nil) {
		return ErrPlanTarget
	}
	return nil
}
