// ABOUTME: Tests for the portion/calorie engine.
// ABOUTME: Covers same-unit, cross-unit, display-basis, and zero-density paths.
package calc

import (
	"math"
	"testing"
)

func TestCaloriesForPortionSameUnit(t *testing.T) {
	food := FoodSpec{CaloriesPerUnit: 350, ServingUnit: UnitCup, Category: CategoryDry}

	if got := CaloriesForPortion(1.5, UnitCup, food); got != 525 {
		t.Errorf("CaloriesForPortion(1.5 cup) = %d, want 525", got)
	}
	if got := CaloriesForPortion(0, UnitCup, food); got != 0 {
		t.Errorf("CaloriesForPortion(0) = %d, want 0", got)
	}
}

func TestCaloriesForPortionCrossUnit(t *testing.T) {
	food := FoodSpec{CaloriesPerUnit: 350, ServingUnit: UnitCup, Category: CategoryDry}

	// 60g of a 120g/cup dry food is half a cup
	if got := CaloriesForPortion(60, UnitGram, food); got != 175 {
		t.Errorf("CaloriesForPortion(60g) = %d, want 175", got)
	}

	// Exact serving grams override the table for the native unit
	food.ServingGrams = 100
	if got := CaloriesForPortion(60, UnitGram, food); got != 210 {
		t.Errorf("CaloriesForPortion(60g, exact 100g/cup) = %d, want 210", got)
	}
}

func TestCaloriesForPortionZeroDensity(t *testing.T) {
	food := FoodSpec{CaloriesPerUnit: 100, ServingUnit: ServingUnit("bag"), Category: CategoryDry}
	if got := CaloriesForPortion(2, UnitGram, food); got != 0 {
		t.Errorf("unknown base unit should degrade to 0, got %d", got)
	}
}

func TestPortionForCalories(t *testing.T) {
	if got := PortionForCalories(300, 100); got != 3.0 {
		t.Errorf("PortionForCalories(300, 100) = %v, want 3", got)
	}
	if got := PortionForCalories(300, 0); got != 0 {
		t.Errorf("zero density should yield 0 portion, got %v", got)
	}
}

func TestPortionCalorieRoundTrip(t *testing.T) {
	// Same-unit round trips are exact inverses up to integer rounding.
	food := FoodSpec{CaloriesPerUnit: 87, ServingUnit: UnitCan, Category: CategoryWet}
	for _, target := range []float64{50, 87, 200, 435} {
		portion := PortionForCalories(target, food.CaloriesPerUnit)
		calories := CaloriesForPortion(portion, UnitCan, food)
		if math.Abs(float64(calories)-target) > 1 {
			t.Errorf("round trip %v kcal -> %v portion -> %d kcal", target, portion, calories)
		}
	}
}

func TestCaloriesPer100g(t *testing.T) {
	food := FoodSpec{CaloriesPerUnit: 350, ServingUnit: UnitCup, Category: CategoryDry}
	if got := CaloriesPer100g(food); got != 292 {
		t.Errorf("CaloriesPer100g = %d, want 292", got)
	}

	gramFood := FoodSpec{CaloriesPerUnit: 4, ServingUnit: UnitGram, Category: CategoryTreat}
	if got := CaloriesPer100g(gramFood); got != 400 {
		t.Errorf("CaloriesPer100g gram-native = %d, want 400", got)
	}
}

func TestPortionGrams(t *testing.T) {
	food := FoodSpec{CaloriesPerUnit: 350, ServingUnit: UnitCup, Category: CategoryDry, ServingGrams: 110}

	// Native unit uses the exact serving grams
	if got := PortionGrams(2, UnitCup, food); got != 220 {
		t.Errorf("PortionGrams(2 cup) = %v, want 220", got)
	}
	// Foreign units ignore the exact override
	if got := PortionGrams(1, UnitOz, food); math.Abs(got-28.3495) > 1e-9 {
		t.Errorf("PortionGrams(1 oz) = %v, want 28.3495", got)
	}
}
