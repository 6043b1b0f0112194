// ABOUTME: Meal and meal line-item models for a pet's daily feeding plan.
// ABOUTME: Line items track portions, derived calories, and the manual lock.
package models

import (
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/google/uuid"
)

// Meal is one named slot of a pet's daily plan, holding a share of the
// daily calorie target.
type Meal struct {
	ID             uuid.UUID
	PetID          uuid.UUID
	Name           string
	TargetPercent  float64
	TargetCalories int
	SortOrder      int
	CreatedAt      time.Time
}

// NewMeal creates a meal slot with generated UUID.
func NewMeal(petID uuid.UUID, name string, targetPercent float64, targetCalories, sortOrder int) *Meal {
	return &Meal{
		ID:             uuid.New(),
		PetID:          petID,
		Name:           name,
		TargetPercent:  targetPercent,
		TargetCalories: targetCalories,
		SortOrder:      sortOrder,
		CreatedAt:      time.Now(),
	}
}

// MealItem is one food line in a meal. While ManuallyAdjusted is false the
// portion is owned by redistribution and may be silently rewritten; once
// true, only an explicit user edit touches it.
type MealItem struct {
	ID                 uuid.UUID
	MealID             uuid.UUID
	FoodID             uuid.UUID
	PortionQuantity    float64
	PortionUnit        calc.ServingUnit
	PortionGrams       *float64
	CalculatedCalories int
	ManuallyAdjusted   bool
	CreatedAt          time.Time
}

// NewMealItem creates a line item with generated UUID.
func NewMealItem(mealID, foodID uuid.UUID, quantity float64, unit calc.ServingUnit, calories int) *MealItem {
	return &MealItem{
		ID:                 uuid.New(),
		MealID:             mealID,
		FoodID:             foodID,
		PortionQuantity:    quantity,
		PortionUnit:        unit,
		CalculatedCalories: calories,
		CreatedAt:          time.Now(),
	}
}

// WithGrams sets the mass snapshot for the portion.
func (mi *MealItem) WithGrams(grams float64) *MealItem {
	mi.PortionGrams = &grams
	return mi
}

// CalcItem snapshots the line item for redistribution, taking the calorie
// density from the referenced food.
func (mi *MealItem) CalcItem(food *Food) calc.MealItem {
	return calc.MealItem{
		ID:                 mi.ID.String(),
		PortionQuantity:    mi.PortionQuantity,
		CaloriesPerUnit:    food.CaloriesPerUnit,
		CalculatedCalories: mi.CalculatedCalories,
		ManuallyAdjusted:   mi.ManuallyAdjusted,
	}
}
