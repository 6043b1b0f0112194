// ABOUTME: Nutrition-label text parsing: pulls calories, analysis
// ABOUTME: percentages, and serving size out of raw label text.
package scan

import (
	"regexp"
	"strconv"
	"strings"
)

// Result holds whatever fields were recognized on a label. Pointers
// distinguish "not found" from zero.
type Result struct {
	Brand       string
	ProductName string
	Calories    *int
	Protein     *float64
	Fat         *float64
	Fiber       *float64
	Moisture    *float64
	ServingSize *float64
	ServingUnit string
	RawText     string
	Confidence  Confidence
}

// Confidence is a coarse signal for how much of the label parsed.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

var (
	caloriesRe = regexp.MustCompile(`(?i)(?:calories|calorie|kcal|energy)[\s:]*(\d+)`)
	proteinRe  = regexp.MustCompile(`(?i)protein[\s:]*(\d+(?:\.\d+)?)\s*%?`)
	fatRe      = regexp.MustCompile(`(?i)(?:fat|crude fat)[\s:]*(\d+(?:\.\d+)?)\s*%?`)
	fiberRe    = regexp.MustCompile(`(?i)fiber[\s:]*(\d+(?:\.\d+)?)\s*%?`)
	moistureRe = regexp.MustCompile(`(?i)moisture[\s:]*(\d+(?:\.\d+)?)\s*%?`)
	servingRe  = regexp.MustCompile(`(?i)(?:serving size|serving)[\s:]*(\d+(?:\.\d+)?)\s*(cup|can|oz|g|kg|lb|piece)`)
)

// Parse extracts nutrition facts from label text. Fields that cannot
// be found are left nil; Parse never fails outright.
func Parse(text string) Result {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	flat := strings.Join(lines, " ")

	r := Result{RawText: text}
	found := 0

	if m := caloriesRe.FindStringSubmatch(flat); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			r.Calories = &v
			found++
		}
	}
	if v := matchFloat(proteinRe, flat); v != nil {
		r.Protein = v
		found++
	}
	if v := matchFloat(fatRe, flat); v != nil {
		r.Fat = v
		found++
	}
	if v := matchFloat(fiberRe, flat); v != nil {
		r.Fiber = v
		found++
	}
	if v := matchFloat(moistureRe, flat); v != nil {
		r.Moisture = v
		found++
	}
	if m := servingRe.FindStringSubmatch(flat); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			r.ServingSize = &v
			r.ServingUnit = strings.ToLower(m[2])
			found++
		}
	}

	// Brand and product name are usually the first two lines of a label.
	if len(lines) > 0 {
		r.Brand = lines[0]
	}
	if len(lines) > 1 {
		r.ProductName = lines[1]
	}

	r.Confidence = ConfidenceLow
	if found > 2 {
		r.Confidence = ConfidenceHigh
	}
	return r
}

func matchFloat(re *regexp.Regexp, s string) *float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
