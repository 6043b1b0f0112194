// ABOUTME: Tests for breed coat-length lookup.
// ABOUTME: Validates substring matching and short-coat defaults.
package breeds

import (
	"testing"

	"github.com/feedingfriend/petfeed/internal/calc"
)

func TestIsLongHaired(t *testing.T) {
	tests := []struct {
		species calc.Species
		breed   string
		want    bool
	}{
		{calc.SpeciesDog, "Siberian Husky", true},
		{calc.SpeciesDog, "husky mix", true},
		{calc.SpeciesDog, "Labrador Retriever", false},
		{calc.SpeciesDog, "", false},
		{calc.SpeciesCat, "Maine Coon", true},
		{calc.SpeciesCat, "PERSIAN", true},
		{calc.SpeciesCat, "domestic shorthair", false},
		// species sets do not cross over
		{calc.SpeciesCat, "husky", false},
		{calc.SpeciesDog, "maine coon", false},
	}

	for _, tt := range tests {
		t.Run(tt.breed, func(t *testing.T) {
			if got := IsLongHaired(tt.species, tt.breed); got != tt.want {
				t.Errorf("IsLongHaired(%s, %q) = %v, want %v", tt.species, tt.breed, got, tt.want)
			}
		})
	}
}
