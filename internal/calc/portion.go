// ABOUTME: Portion and calorie engine: calories for arbitrary portion/unit
// ABOUTME: combinations and the inverse portion-for-calories derivation.
package calc

import "math"

// FoodSpec is the calorie density snapshot a calculation needs from a food.
// CaloriesPerUnit is always per exactly one ServingUnit.
type FoodSpec struct {
	CaloriesPerUnit float64
	ServingUnit     ServingUnit
	Category        FoodCategory
	// ServingGrams is the exact mass of one serving unit when known; zero
	// means unknown and the category table applies.
	ServingGrams float64
}

// CaloriesForPortion returns rounded calories for a portion of food.
// When the portion unit matches the food's serving unit this is a direct
// multiply; otherwise both sides are taken through grams. Round-tripping a
// cross-unit portion may drift by up to one unit of rounding.
func CaloriesForPortion(quantity float64, unit ServingUnit, food FoodSpec) int {
	if unit == food.ServingUnit {
		return int(math.Round(quantity * food.CaloriesPerUnit))
	}

	portionGrams := quantity * GramsPerUnit(unit, food.Category, 0)
	baseUnitGrams := GramsPerUnit(food.ServingUnit, food.Category, food.ServingGrams)
	if baseUnitGrams == 0 {
		return 0
	}

	portionInBaseUnits := portionGrams / baseUnitGrams
	return int(math.Round(portionInBaseUnits * food.CaloriesPerUnit))
}

// PortionForCalories returns the portion quantity that yields the target
// calories at the given density. Zero density yields a zero portion rather
// than dividing by zero.
func PortionForCalories(targetCalories, caloriesPerUnit float64) float64 {
	if caloriesPerUnit == 0 {
		return 0
	}
	return targetCalories / caloriesPerUnit
}

// CaloriesPer100g returns the display-basis density: calories in 100g of
// the food. This is the per-100g display convention, intentionally distinct
// from the 1g serving unit handled by GramsPerUnit.
func CaloriesPer100g(food FoodSpec) int {
	baseUnitGrams := GramsPerUnit(food.ServingUnit, food.Category, food.ServingGrams)
	if baseUnitGrams == 0 {
		return 0
	}
	return int(math.Round(food.CaloriesPerUnit / baseUnitGrams * DisplayGrams))
}

// PortionGrams returns the mass snapshot for a portion, or 0 when no
// equivalence is known.
func PortionGrams(quantity float64, unit ServingUnit, food FoodSpec) float64 {
	exact := 0.0
	if unit == food.ServingUnit {
		exact = food.ServingGrams
	}
	return quantity * GramsPerUnit(unit, food.Category, exact)
}
