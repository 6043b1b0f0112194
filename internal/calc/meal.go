// ABOUTME: Meal redistribution: rebalances automatic line items to a calorie
// ABOUTME: target while leaving manually adjusted items untouched.
package calc

import "math"

// MealItem is one food line in a meal, as seen by redistribution.
// Items with ManuallyAdjusted set are never rewritten.
type MealItem struct {
	ID                 string
	PortionQuantity    float64
	CaloriesPerUnit    float64
	CalculatedCalories int
	ManuallyAdjusted   bool
}

// Redistribute recomputes automatic items' portions so the meal sums to the
// target. Manual items keep their calories; whatever they leave (never less
// than zero) is split equally among automatic items. Idempotent: applying
// it to its own output changes nothing beyond rounding.
//
// The result is only as fresh as the snapshot passed in; callers serialize
// read-modify-write sequences against their store.
func Redistribute(targetCalories float64, items []MealItem) []MealItem {
	if len(items) == 0 {
		return items
	}

	manualCalories := 0.0
	autoCount := 0
	for _, item := range items {
		if item.ManuallyAdjusted {
			manualCalories += float64(item.CalculatedCalories)
		} else {
			autoCount++
		}
	}

	if autoCount == 0 {
		return items
	}

	remaining := math.Max(0, targetCalories-manualCalories)
	perAutoItem := remaining / float64(autoCount)

	out := make([]MealItem, len(items))
	for i, item := range items {
		if item.ManuallyAdjusted {
			out[i] = item
			continue
		}
		portion := PortionForCalories(perAutoItem, item.CaloriesPerUnit)
		item.PortionQuantity = portion
		item.CalculatedCalories = int(math.Round(portion * item.CaloriesPerUnit))
		out[i] = item
	}
	return out
}

// MealSlot is one entry of a daily meal split.
type MealSlot struct {
	Name      string
	Percent   float64
	SortOrder int
}

// DefaultMealConfig returns the standard split for 1, 2, or 3 meals per
// day, always reserving a treats allocation. Other counts fall back to the
// two-meal split.
func DefaultMealConfig(mealCount int) []MealSlot {
	switch mealCount {
	case 1:
		return []MealSlot{
			{Name: "Meal", Percent: 90, SortOrder: 1},
			{Name: "Treats", Percent: 10, SortOrder: 99},
		}
	case 3:
		return []MealSlot{
			{Name: "Breakfast", Percent: 30, SortOrder: 1},
			{Name: "Lunch", Percent: 35, SortOrder: 2},
			{Name: "Dinner", Percent: 30, SortOrder: 3},
			{Name: "Treats", Percent: 5, SortOrder: 99},
		}
	default:
		return []MealSlot{
			{Name: "Breakfast", Percent: 45, SortOrder: 1},
			{Name: "Dinner", Percent: 45, SortOrder: 2},
			{Name: "Treats", Percent: 10, SortOrder: 99},
		}
	}
}

// ValidatePercentages reports whether a set of meal percentages (including
// the treats allocation) sums to 100 within floating-point tolerance.
func ValidatePercentages(percents []float64) bool {
	sum := 0.0
	for _, p := range percents {
		sum += p
	}
	return math.Abs(sum-100) < 0.01
}
