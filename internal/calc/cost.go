// ABOUTME: Cost normalization engine: package and portion mass conversion,
// ABOUTME: cost-per-gram/day/period with exact-vs-estimate provenance.
package calc

import (
	"fmt"
	"math"
	"strings"
)

// GramsResult is a mass conversion carrying its provenance. IsEstimate is
// set whenever the conversion relied on an approximate equivalence.
type GramsResult struct {
	Grams      float64
	IsEstimate bool
}

// CostResult is a cost figure carrying its provenance. Estimate flags from
// every conversion step are OR'd, never dropped.
type CostResult struct {
	Cost       float64
	IsEstimate bool
}

// Period for spend projections.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ToGrams converts a package or portion size to grams. lb, kg, oz, and g
// are exact; cup goes through the category density table and is always an
// estimate; unknown units pass through as-is, flagged estimated.
func ToGrams(size float64, unit string, category FoodCategory) GramsResult {
	switch strings.ToLower(unit) {
	case "lb":
		return GramsResult{Grams: size * GramsPerLb}
	case "kg":
		return GramsResult{Grams: size * GramsPerKg}
	case "oz":
		return GramsResult{Grams: size * GramsPerOz}
	case "g":
		return GramsResult{Grams: size}
	case "cup":
		g, ok := cupGrams[category]
		if !ok {
			g = defaultCupGrams
		}
		return GramsResult{Grams: size * g, IsEstimate: true}
	default:
		return GramsResult{Grams: size, IsEstimate: true}
	}
}

// CostPerGram divides a package price across its mass, propagating the
// estimate flag from the mass conversion.
func CostPerGram(price, packageSize float64, packageUnit string, category FoodCategory) CostResult {
	converted := ToGrams(packageSize, packageUnit, category)
	if converted.Grams == 0 {
		return CostResult{IsEstimate: converted.IsEstimate}
	}
	return CostResult{
		Cost:       price / converted.Grams,
		IsEstimate: converted.IsEstimate,
	}
}

// DailyCost computes the spend for one day's portion of a food. It returns
// nil when package economics are incomplete: the cost is unknowable, which
// is distinct from zero.
//
// Exact serving grams take precedence for cup portions; gram portions are
// exact by definition; everything else falls back to the estimated table.
func DailyCost(portionQuantity float64, portionUnit ServingUnit, servingGrams, packagePrice, packageSize float64, packageUnit string, category FoodCategory) *CostResult {
	if packagePrice <= 0 || packageSize <= 0 || packageUnit == "" {
		return nil
	}

	var portionGrams float64
	isEstimate := false

	switch {
	case servingGrams > 0 && portionUnit == UnitCup:
		portionGrams = servingGrams * portionQuantity
	case portionUnit == UnitGram:
		portionGrams = portionQuantity
	default:
		converted := ToGrams(portionQuantity, string(portionUnit), category)
		portionGrams = converted.Grams
		isEstimate = converted.IsEstimate
	}

	perGram := CostPerGram(packagePrice, packageSize, packageUnit, category)

	return &CostResult{
		Cost:       portionGrams * perGram.Cost,
		IsEstimate: isEstimate || perGram.IsEstimate,
	}
}

// PeriodCost projects a daily cost over a period. Months are a fixed 30
// days, an accepted approximation rather than calendar arithmetic.
func PeriodCost(dailyCost float64, period Period) float64 {
	switch period {
	case PeriodWeekly:
		return dailyCost * 7
	case PeriodMonthly:
		return dailyCost * 30
	default:
		return dailyCost
	}
}

// FormatCost renders a dollar amount.
func FormatCost(cost float64, showCents bool) string {
	if showCents {
		return fmt.Sprintf("$%.2f", cost)
	}
	return fmt.Sprintf("$%.0f", math.Round(cost))
}

// EstimateWarning returns the user-facing caveat for estimated figures, or
// empty for exact ones.
func EstimateWarning(isEstimate bool) string {
	if !isEstimate {
		return ""
	}
	return "Cost is estimated due to unit conversions. Add serving grams to foods for more accuracy."
}
