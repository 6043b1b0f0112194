// ABOUTME: Tests for meal redistribution and meal split configuration.
// ABOUTME: Covers target conservation, idempotence, and manual-item invariance.
package calc

import (
	"math"
	"testing"
)

func totalCalories(items []MealItem) int {
	sum := 0
	for _, item := range items {
		sum += item.CalculatedCalories
	}
	return sum
}

func TestRedistributeTwoItemScenario(t *testing.T) {
	items := []MealItem{
		{ID: "locked", PortionQuantity: 2, CaloriesPerUnit: 100, CalculatedCalories: 200, ManuallyAdjusted: true},
		{ID: "auto", PortionQuantity: 1, CaloriesPerUnit: 100, CalculatedCalories: 100},
	}

	out := Redistribute(500, items)

	if out[0].PortionQuantity != 2 || out[0].CalculatedCalories != 200 {
		t.Errorf("manual item changed: %+v", out[0])
	}
	if out[1].PortionQuantity != 3.0 {
		t.Errorf("auto portion = %v, want 3.0", out[1].PortionQuantity)
	}
	if out[1].CalculatedCalories != 300 {
		t.Errorf("auto calories = %d, want 300", out[1].CalculatedCalories)
	}
	if totalCalories(out) != 500 {
		t.Errorf("total = %d, want 500", totalCalories(out))
	}
}

func TestRedistributeConservesTarget(t *testing.T) {
	items := []MealItem{
		{ID: "a", CaloriesPerUnit: 347},
		{ID: "b", CaloriesPerUnit: 92},
		{ID: "c", CaloriesPerUnit: 113},
	}

	for _, target := range []float64{100, 450, 977} {
		out := Redistribute(target, items)
		if diff := math.Abs(float64(totalCalories(out)) - target); diff > float64(len(items)) {
			t.Errorf("target %v: total %d off by %v", target, totalCalories(out), diff)
		}
	}
}

func TestRedistributeIdempotent(t *testing.T) {
	items := []MealItem{
		{ID: "locked", CaloriesPerUnit: 55, CalculatedCalories: 140, ManuallyAdjusted: true},
		{ID: "a", CaloriesPerUnit: 347},
		{ID: "b", CaloriesPerUnit: 92},
	}

	once := Redistribute(600, items)
	twice := Redistribute(600, once)

	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("item %d drifted: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestRedistributeEdgeCases(t *testing.T) {
	t.Run("empty meal", func(t *testing.T) {
		if out := Redistribute(500, nil); len(out) != 0 {
			t.Errorf("expected empty result, got %v", out)
		}
	})

	t.Run("all manual", func(t *testing.T) {
		items := []MealItem{
			{ID: "a", CalculatedCalories: 300, ManuallyAdjusted: true},
			{ID: "b", CalculatedCalories: 400, ManuallyAdjusted: true},
		}
		out := Redistribute(500, items)
		if out[0] != items[0] || out[1] != items[1] {
			t.Error("all-manual meal should pass through unchanged")
		}
	})

	t.Run("manual over-allocation leaves zero", func(t *testing.T) {
		items := []MealItem{
			{ID: "locked", CalculatedCalories: 600, ManuallyAdjusted: true},
			{ID: "auto", CaloriesPerUnit: 100, CalculatedCalories: 100},
		}
		out := Redistribute(500, items)
		if out[1].PortionQuantity != 0 || out[1].CalculatedCalories != 0 {
			t.Errorf("over-allocated meal should zero auto items, got %+v", out[1])
		}
	})

	t.Run("zero density degrades to zero portion", func(t *testing.T) {
		items := []MealItem{{ID: "broken", CaloriesPerUnit: 0}}
		out := Redistribute(500, items)
		if out[0].PortionQuantity != 0 || out[0].CalculatedCalories != 0 {
			t.Errorf("zero-density item = %+v, want zeros", out[0])
		}
	})
}

func TestDefaultMealConfig(t *testing.T) {
	tests := []struct {
		count     int
		wantSlots int
	}{
		{1, 2},
		{2, 3},
		{3, 4},
		{7, 3}, // falls back to two meals
	}

	for _, tt := range tests {
		slots := DefaultMealConfig(tt.count)
		if len(slots) != tt.wantSlots {
			t.Errorf("DefaultMealConfig(%d) has %d slots, want %d", tt.count, len(slots), tt.wantSlots)
			continue
		}

		percents := make([]float64, len(slots))
		for i, s := range slots {
			percents[i] = s.Percent
		}
		if !ValidatePercentages(percents) {
			t.Errorf("DefaultMealConfig(%d) percentages do not sum to 100: %v", tt.count, percents)
		}

		last := slots[len(slots)-1]
		if last.Name != "Treats" || last.SortOrder != 99 {
			t.Errorf("DefaultMealConfig(%d) missing treats allocation: %+v", tt.count, last)
		}
	}
}

func TestValidatePercentages(t *testing.T) {
	tests := []struct {
		name     string
		percents []float64
		want     bool
	}{
		{"exact", []float64{45, 45, 10}, true},
		{"float noise", []float64{33.33, 33.33, 33.34}, true},
		{"short", []float64{45, 45}, false},
		{"over", []float64{60, 60}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePercentages(tt.percents); got != tt.want {
				t.Errorf("ValidatePercentages(%v) = %v, want %v", tt.percents, got, tt.want)
			}
		})
	}
}
