// ABOUTME: Static health-condition data: energy multipliers per condition.
// ABOUTME: Consumed by the energy calculator via simple id lookup.
package conditions

import "github.com/feedingfriend/petfeed/internal/calc"

// Condition is one named health condition affecting energy needs.
type Condition struct {
	ID          string
	Name        string
	Species     calc.Species
	Multiplier  float64
	Description string
}

// All lists every supported condition.
var All = []Condition{
	{"dog-hypothyroid", "Hypothyroidism", calc.SpeciesDog, 0.85, "Decreased metabolism due to low thyroid hormone"},
	{"dog-ckd-early", "Chronic Kidney Disease (Early Stage)", calc.SpeciesDog, 0.95, "Mild reduction in energy needs"},
	{"dog-ckd-advanced", "Chronic Kidney Disease (Advanced)", calc.SpeciesDog, 0.85, "Significant reduction in energy needs"},
	{"dog-diabetes-controlled", "Diabetes (Well-Controlled)", calc.SpeciesDog, 1.0, "Standard energy needs with controlled diabetes"},
	{"dog-diabetes-uncontrolled", "Diabetes (Uncontrolled)", calc.SpeciesDog, 1.1, "Increased energy needs due to poor glucose control"},
	{"dog-cushings", "Cushing's Disease", calc.SpeciesDog, 0.9, "Slightly reduced energy needs"},
	{"dog-cancer-active", "Cancer (Active Treatment)", calc.SpeciesDog, 1.2, "Increased energy needs during treatment"},
	{"dog-cancer-recovery", "Cancer (Recovery/Remission)", calc.SpeciesDog, 1.1, "Moderately increased energy needs"},
	{"dog-heart-disease", "Heart Disease", calc.SpeciesDog, 0.95, "Slightly reduced energy needs"},
	{"cat-hyperthyroid", "Hyperthyroidism", calc.SpeciesCat, 1.3, "Increased metabolism and energy needs"},
	{"cat-ckd-early", "Chronic Kidney Disease (Early Stage)", calc.SpeciesCat, 1.0, "Maintain adequate energy intake"},
	{"cat-ckd-advanced", "Chronic Kidney Disease (Advanced)", calc.SpeciesCat, 0.95, "Slightly reduced energy needs"},
	{"cat-diabetes-controlled", "Diabetes (Well-Controlled)", calc.SpeciesCat, 1.0, "Standard energy needs with controlled diabetes"},
	{"cat-diabetes-uncontrolled", "Diabetes (Uncontrolled)", calc.SpeciesCat, 1.1, "Increased energy needs due to poor glucose control"},
	{"cat-ibd", "Inflammatory Bowel Disease", calc.SpeciesCat, 1.05, "Slightly increased energy needs"},
	{"cat-cancer-active", "Cancer (Active Treatment)", calc.SpeciesCat, 1.2, "Increased energy needs during treatment"},
	{"cat-cancer-recovery", "Cancer (Recovery/Remission)", calc.SpeciesCat, 1.1, "Moderately increased energy needs"},
	{"cat-heart-disease", "Heart Disease", calc.SpeciesCat, 0.95, "Slightly reduced energy needs"},
}

// Table returns the id→multiplier lookup the calculator consumes.
func Table() calc.ConditionTable {
	t := make(calc.ConditionTable, len(All))
	for _, c := range All {
		t[c.ID] = c.Multiplier
	}
	return t
}

// Lookup finds a condition by id.
func Lookup(id string) (Condition, bool) {
	for _, c := range All {
		if c.ID == id {
			return c, true
		}
	}
	return Condition{}, false
}

// ForSpecies lists the conditions applicable to one species.
func ForSpecies(species calc.Species) []Condition {
	var out []Condition
	for _, c := range All {
		if c.Species == species {
			out = append(out, c)
		}
	}
	return out
}
