// ABOUTME: Unit tests for Charm-based record storage.
// ABOUTME: Tests key formats and JSON round trips for synced records.
package charm

import (
	"testing"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
)

func TestRecordKeyFormat(t *testing.T) {
	p := models.NewPet("Biscuit", calc.SpeciesDog)
	key := PetPrefix + p.ID.String()

	if key[:4] != "pet:" {
		t.Errorf("Expected key to start with 'pet:', got: %s", key[:4])
	}
}

func TestRecordPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"Pet", PetPrefix, "pet:"},
		{"Food", FoodPrefix, "food:"},
		{"Meal", MealPrefix, "meal:"},
		{"MealItem", MealItemPrefix, "meal_item:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.prefix)
			}
		})
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	f := models.NewFood("Acme", "Chicken & Rice", calc.CategoryDry, 380, calc.UnitCup).
		WithServingGrams(105)

	data, err := marshalJSON(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := unmarshalJSON[models.Food](data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != f.ID || got.CaloriesPerUnit != 380 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.ServingGrams == nil || *got.ServingGrams != 105 {
		t.Errorf("serving grams = %v", got.ServingGrams)
	}
}
