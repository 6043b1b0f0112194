// ABOUTME: Food item model: calorie density per serving unit plus optional
// ABOUTME: mass, macro, and package economics data.
package models

import (
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/google/uuid"
)

// Food is one entry of the food database. CaloriesPerUnit is always per
// exactly one ServingUnit, never per mass unless ServingUnit is "g".
type Food struct {
	ID              uuid.UUID
	Brand           string
	Name            string
	Category        calc.FoodCategory
	CaloriesPerUnit float64
	ServingUnit     calc.ServingUnit
	// ServingGrams is the exact mass of one serving unit when known.
	ServingGrams *float64
	ProteinPct   *float64
	FatPct       *float64
	FiberPct     *float64
	PackagePrice *float64
	PackageSize  *float64
	PackageUnit  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewFood creates a food with generated UUID and current timestamps.
func NewFood(brand, name string, category calc.FoodCategory, caloriesPerUnit float64, servingUnit calc.ServingUnit) *Food {
	now := time.Now()
	return &Food{
		ID:              uuid.New(),
		Brand:           brand,
		Name:            name,
		Category:        category,
		CaloriesPerUnit: caloriesPerUnit,
		ServingUnit:     servingUnit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// WithServingGrams sets the exact mass of one serving unit.
func (f *Food) WithServingGrams(grams float64) *Food {
	f.ServingGrams = &grams
	return f
}

// WithMacros sets the guaranteed-analysis percentages.
func (f *Food) WithMacros(proteinPct, fatPct, fiberPct float64) *Food {
	f.ProteinPct = &proteinPct
	f.FatPct = &fatPct
	f.FiberPct = &fiberPct
	return f
}

// WithPackage sets the package economics used for cost analytics.
func (f *Food) WithPackage(price, size float64, unit string) *Food {
	f.PackagePrice = &price
	f.PackageSize = &size
	f.PackageUnit = &unit
	return f
}

// Spec snapshots the food for calorie calculations.
func (f *Food) Spec() calc.FoodSpec {
	spec := calc.FoodSpec{
		CaloriesPerUnit: f.CaloriesPerUnit,
		ServingUnit:     f.ServingUnit,
		Category:        f.Category,
	}
	if f.ServingGrams != nil {
		spec.ServingGrams = *f.ServingGrams
	}
	return spec
}

// HasPackageData reports whether cost analytics are possible for this food.
func (f *Food) HasPackageData() bool {
	return f.PackagePrice != nil && *f.PackagePrice > 0 &&
		f.PackageSize != nil && *f.PackageSize > 0 &&
		f.PackageUnit != nil && *f.PackageUnit != ""
}

// DailyCost computes the cost of feeding a portion of this food per day,
// or nil when package data is incomplete.
func (f *Food) DailyCost(portionQuantity float64, portionUnit calc.ServingUnit) *calc.CostResult {
	if !f.HasPackageData() {
		return nil
	}
	servingGrams := 0.0
	if f.ServingGrams != nil {
		servingGrams = *f.ServingGrams
	}
	return calc.DailyCost(portionQuantity, portionUnit, servingGrams,
		*f.PackagePrice, *f.PackageSize, *f.PackageUnit, f.Category)
}

// AllFoodCategories lists the supported food categories.
var AllFoodCategories = []calc.FoodCategory{
	calc.CategoryDry, calc.CategoryWet, calc.CategoryRaw, calc.CategoryTreat, calc.CategorySupplement,
}

// IsValidFoodCategory checks if a string is a supported food category.
func IsValidFoodCategory(s string) bool {
	for _, c := range AllFoodCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// AllServingUnits lists the supported serving units.
var AllServingUnits = []calc.ServingUnit{
	calc.UnitCup, calc.UnitCan, calc.UnitOz, calc.UnitGram, calc.UnitPiece, calc.UnitScoop, calc.UnitPump,
}

// IsValidServingUnit checks if a string is a supported serving unit.
func IsValidServingUnit(s string) bool {
	for _, u := range AllServingUnits {
		if string(u) == s {
			return true
		}
	}
	return false
}
