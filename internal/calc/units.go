// ABOUTME: Unit conversion primitives for weights, serving units, and portions.
// ABOUTME: Pure table lookups and fraction parsing/formatting, no dependencies.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WeightUnit is a body/package weight unit.
type WeightUnit string

const (
	Pound    WeightUnit = "lb"
	Kilogram WeightUnit = "kg"
)

// PoundsPerKilogram is the exact linear factor used everywhere.
// Round only at display, never internally.
const PoundsPerKilogram = 2.20462

// ServingUnit is the unit a food's calorie density is expressed against.
type ServingUnit string

const (
	UnitCup   ServingUnit = "cup"
	UnitCan   ServingUnit = "can"
	UnitOz    ServingUnit = "oz"
	UnitGram  ServingUnit = "g"
	UnitPiece ServingUnit = "piece"
	UnitScoop ServingUnit = "scoop"
	UnitPump  ServingUnit = "pump"
)

// FoodCategory groups foods by physical form, which drives cup density.
type FoodCategory string

const (
	CategoryDry        FoodCategory = "dry"
	CategoryWet        FoodCategory = "wet"
	CategoryRaw        FoodCategory = "raw"
	CategoryTreat      FoodCategory = "treat"
	CategorySupplement FoodCategory = "supplement"
)

// Mass equivalence constants in grams.
const (
	GramsPerOz    = 28.3495
	GramsPerLb    = 453.592
	GramsPerKg    = 1000.0
	GramsPerCan   = 85.0
	GramsPerPiece = 30.0
	GramsPerScoop = 15.0
	GramsPerPump  = 5.0

	// DisplayGrams is the per-100g display basis. This is deliberately a
	// separate convention from the 1g serving unit; see CaloriesPer100g.
	DisplayGrams = 100.0

	// defaultCupGrams is used when the food category is unknown.
	defaultCupGrams = 150.0
)

// cupGrams maps food category to the approximate mass of one cup.
var cupGrams = map[FoodCategory]float64{
	CategoryDry:        120,
	CategoryWet:        240,
	CategoryRaw:        225,
	CategoryTreat:      100,
	CategorySupplement: 150,
}

// ConvertWeight converts between pounds and kilograms.
// Identity when from == to.
func ConvertWeight(value float64, from, to WeightUnit) float64 {
	if from == to {
		return value
	}
	if from == Pound {
		return value / PoundsPerKilogram
	}
	return value * PoundsPerKilogram
}

// GramsPerUnit returns the mass in grams of exactly one serving unit.
// When exactGrams is positive it takes precedence over the table; callers
// supply it only for a food's native serving unit.
func GramsPerUnit(unit ServingUnit, category FoodCategory, exactGrams float64) float64 {
	if exactGrams > 0 {
		return exactGrams
	}
	switch unit {
	case UnitGram:
		return 1
	case UnitOz:
		return GramsPerOz
	case UnitCan:
		return GramsPerCan
	case UnitPiece:
		return GramsPerPiece
	case UnitScoop:
		return GramsPerScoop
	case UnitPump:
		return GramsPerPump
	case UnitCup:
		if g, ok := cupGrams[category]; ok {
			return g
		}
		return defaultCupGrams
	default:
		return 0
	}
}

// cupFractions is the fixed set a cup portion snaps to for display.
var cupFractions = []struct {
	decimal float64
	display string
}{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{0.333, "1/3"},
	{0.375, "3/8"},
	{0.5, "1/2"},
	{0.625, "5/8"},
	{0.667, "2/3"},
	{0.75, "3/4"},
	{0.875, "7/8"},
}

// fractionTolerance is the maximum distance to the nearest display fraction.
const fractionTolerance = 0.05

// ParseFraction parses a portion string into a float.
// Accepts decimals ("2.5"), simple fractions ("3/4"), and mixed fractions
// ("1 1/2"). Malformed input yields 0, never an error.
func ParseFraction(input string) float64 {
	input = strings.TrimSpace(input)

	if !strings.Contains(input, "/") {
		v, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return 0
		}
		return v
	}

	var whole float64
	fractionStr := input
	if parts := strings.Fields(input); len(parts) == 2 {
		whole, _ = strconv.ParseFloat(parts[0], 64)
		fractionStr = parts[1]
	}

	numDen := strings.SplitN(fractionStr, "/", 2)
	if len(numDen) != 2 {
		return whole
	}
	num, errN := strconv.ParseFloat(strings.TrimSpace(numDen[0]), 64)
	den, errD := strconv.ParseFloat(strings.TrimSpace(numDen[1]), 64)
	if errN != nil || errD != nil || num == 0 || den == 0 {
		return whole
	}

	return whole + num/den
}

// FormatPortion renders a portion quantity for display.
// Cup portions snap to the nearest common fraction when within tolerance;
// other units use a single decimal with a pluralized suffix.
func FormatPortion(value float64, unit ServingUnit) string {
	if value == 0 {
		return fmt.Sprintf("0 %ss", unit)
	}

	if unit != UnitCup {
		suffix := ""
		if value != 1 {
			suffix = "s"
		}
		return fmt.Sprintf("%.1f %s%s", value, unit, suffix)
	}

	whole := math.Floor(value)
	frac := value - whole

	if frac == 0 {
		if whole == 1 {
			return "1 cup"
		}
		return fmt.Sprintf("%.0f cups", whole)
	}

	closest := cupFractions[0]
	smallest := math.Abs(frac - closest.decimal)
	for _, f := range cupFractions[1:] {
		if d := math.Abs(frac - f.decimal); d < smallest {
			smallest = d
			closest = f
		}
	}

	if smallest > fractionTolerance {
		return fmt.Sprintf("%.2f cups", value)
	}

	if whole == 0 {
		return fmt.Sprintf("%s cup", closest.display)
	}
	return fmt.Sprintf("%.0f %s cups", whole, closest.display)
}

// FormatWeight renders a gram snapshot next to a portion.
// Gram-native foods show the grams plainly; other units parenthesize the
// equivalence. Zero or negative grams render as empty.
func FormatWeight(grams float64, servingUnit ServingUnit) string {
	if grams <= 0 {
		return ""
	}
	if servingUnit == UnitGram {
		return fmt.Sprintf("%.0fg", grams)
	}
	return fmt.Sprintf("(%.0fg)", grams)
}
