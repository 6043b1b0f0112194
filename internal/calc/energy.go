// ABOUTME: Energy requirement calculator: RER from body mass, MER from six
// ABOUTME: contextual multipliers (baseline, activity, life stage, environment, BCS, health).
package calc

import "math"

// Species of the pet being fed.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// ActivityMethod discriminates the three ways activity can be described.
type ActivityMethod string

const (
	ActivityByCategory ActivityMethod = "categories"
	ActivityBySteps    ActivityMethod = "steps"
	ActivityByTime     ActivityMethod = "time"
)

// ActivityCategory is the five-tier direct assessment.
type ActivityCategory string

const (
	ActivitySedentary    ActivityCategory = "sedentary"
	ActivityLow          ActivityCategory = "low"
	ActivityNormal       ActivityCategory = "normal"
	ActivityActive       ActivityCategory = "active"
	ActivityHighlyActive ActivityCategory = "highly-active"
)

// ActivityPace qualifies time-based activity.
type ActivityPace string

const (
	PaceSlow     ActivityPace = "slow"
	PaceModerate ActivityPace = "moderate"
	PaceFast     ActivityPace = "fast"
)

// LifeStage is species-specific; dogs use the puppy stages, cats kitten.
type LifeStage string

const (
	StageYoungPuppy LifeStage = "young-puppy"
	StageOlderPuppy LifeStage = "older-puppy"
	StageKitten     LifeStage = "kitten"
	StageAdult      LifeStage = "adult"
	StageSenior     LifeStage = "senior"
)

// OutdoorExposure is the daily hours-outdoors band.
type OutdoorExposure string

const (
	ExposureIndoor   OutdoorExposure = "indoor"
	ExposureUnder2   OutdoorExposure = "less-than-2"
	Exposure2To4     OutdoorExposure = "2-4"
	Exposure4To8     OutdoorExposure = "4-8"
	Exposure8To12    OutdoorExposure = "8-12"
	Exposure12Plus   OutdoorExposure = "12-plus"
)

// Climate matters only beyond the indoor exposure bands.
type Climate string

const (
	ClimateMild Climate = "mild"
	ClimateCold Climate = "cold"
	ClimateHot  Climate = "hot"
)

// BCSBand is the body condition score band on the 9-point scale.
type BCSBand string

const (
	BCSSeverelyUnder BCSBand = "1-2"
	BCSUnder         BCSBand = "3"
	BCSIdeal         BCSBand = "4-5"
	BCSOver          BCSBand = "6-7"
	BCSObese         BCSBand = "8-9"
)

// WeightGoal nudges the body condition multiplier.
type WeightGoal string

const (
	GoalMaintain WeightGoal = "maintain"
	GoalGain     WeightGoal = "gain"
	GoalLose     WeightGoal = "lose"
)

// ActivityInput is a tagged value: exactly one mode's fields are meaningful,
// selected by Method. Construct through the helpers below.
type ActivityInput struct {
	Method     ActivityMethod
	Category   ActivityCategory
	DailySteps int
	Minutes    float64
	Pace       ActivityPace
}

// CategoryActivity describes activity as a direct five-tier category.
func CategoryActivity(c ActivityCategory) ActivityInput {
	return ActivityInput{Method: ActivityByCategory, Category: c}
}

// StepsActivity describes activity as a daily step count.
func StepsActivity(steps int) ActivityInput {
	return ActivityInput{Method: ActivityBySteps, DailySteps: steps}
}

// TimeActivity describes activity as daily minutes at a pace.
func TimeActivity(minutes float64, pace ActivityPace) ActivityInput {
	return ActivityInput{Method: ActivityByTime, Minutes: minutes, Pace: pace}
}

// Input is a validated snapshot of a pet profile for one calculation.
// Missing climate for outdoor bands and empty activity fields fall back to
// the documented defaults; the calculator never errors.
type Input struct {
	Species          Species
	Weight           float64
	WeightUnit       WeightUnit
	Neutered         bool
	Activity         ActivityInput
	LifeStage        LifeStage
	OutdoorExposure  OutdoorExposure
	Climate          Climate
	BCS              BCSBand
	WeightGoal       WeightGoal
	HealthConditions []string
}

// ConditionTable maps health condition ids to energy multipliers.
// Unknown ids default to 1.0; selected conditions are averaged.
type ConditionTable map[string]float64

// Options carries the external collaborator inputs.
type Options struct {
	// LongHaired comes from the breed/coat lookup and dampens the cold
	// climate multiplier.
	LongHaired bool
	Conditions ConditionTable
}

// Multiplier is one labeled factor of the MER breakdown.
type Multiplier struct {
	Value float64
	Label string
}

// Breakdown lists all six factors whose product scales RER into MER.
type Breakdown struct {
	Baseline      Multiplier
	Activity      Multiplier
	LifeStage     Multiplier
	Environment   Multiplier
	BodyCondition Multiplier
	Health        Multiplier
}

// Factors returns the breakdown in canonical order.
func (b Breakdown) Factors() []Multiplier {
	return []Multiplier{b.Baseline, b.Activity, b.LifeStage, b.Environment, b.BodyCondition, b.Health}
}

// Result holds display-rounded values. MER is computed from the unrounded
// RER and multiplier, so RER × Multiplier may differ from MER by rounding.
type Result struct {
	RER        int
	Multiplier float64
	MER        int
	Breakdown  Breakdown
}

// CalculateRER returns the resting energy requirement, unrounded:
// 70 × kg^0.75.
func CalculateRER(weightKg float64) float64 {
	return 70 * math.Pow(weightKg, 0.75)
}

// CalculateMER derives the maintenance energy requirement for a pet.
// The result is only as fresh as the snapshot passed in.
func CalculateMER(in Input, opts Options) Result {
	weightKg := ConvertWeight(in.Weight, in.WeightUnit, Kilogram)
	rer := CalculateRER(weightKg)

	breakdown := Breakdown{
		Baseline:      baselineMultiplier(in),
		Activity:      activityMultiplier(in),
		LifeStage:     lifeStageMultiplier(in),
		Environment:   environmentMultiplier(in, opts.LongHaired),
		BodyCondition: bodyConditionMultiplier(in),
		Health:        healthMultiplier(in, opts.Conditions),
	}

	multiplier := 1.0
	for _, f := range breakdown.Factors() {
		multiplier *= f.Value
	}

	return Result{
		RER:        int(math.Round(rer)),
		Multiplier: math.Round(multiplier*100) / 100,
		MER:        int(math.Round(rer * multiplier)),
		Breakdown:  breakdown,
	}
}

func baselineMultiplier(in Input) Multiplier {
	switch {
	case in.Species == SpeciesDog && in.Neutered:
		return Multiplier{1.6, "Neutered Dog"}
	case in.Species == SpeciesDog:
		return Multiplier{1.8, "Intact Dog"}
	case in.Neutered:
		return Multiplier{1.2, "Neutered Cat"}
	default:
		return Multiplier{1.4, "Intact Cat"}
	}
}

// activityTiers maps the five tiers to values and labels, shared by all
// three input modes.
var activityTiers = map[ActivityCategory]Multiplier{
	ActivitySedentary:    {0.75, "Sedentary"},
	ActivityLow:          {0.9, "Low"},
	ActivityNormal:       {1.0, "Normal"},
	ActivityActive:       {1.15, "Active"},
	ActivityHighlyActive: {1.25, "Highly Active"},
}

// tierFor maps a measured quantity onto the five tiers using ascending
// breakpoints: below breakpoints[i] lands in tier i.
func tierFor(value float64, breakpoints [4]float64) Multiplier {
	order := []ActivityCategory{ActivitySedentary, ActivityLow, ActivityNormal, ActivityActive}
	for i, bp := range breakpoints {
		if value < bp {
			return activityTiers[order[i]]
		}
	}
	return activityTiers[ActivityHighlyActive]
}

func activityMultiplier(in Input) Multiplier {
	a := in.Activity
	switch a.Method {
	case ActivityByCategory:
		if m, ok := activityTiers[a.Category]; ok {
			return m
		}
	case ActivityBySteps:
		if a.DailySteps > 0 {
			if in.Species == SpeciesDog {
				return tierFor(float64(a.DailySteps), [4]float64{3000, 7000, 10000, 13000})
			}
			return tierFor(float64(a.DailySteps), [4]float64{1000, 2500, 4000, 6000})
		}
	case ActivityByTime:
		if a.Minutes > 0 && a.Pace != "" {
			paceFactor := map[ActivityPace]float64{PaceSlow: 0.8, PaceModerate: 1.0, PaceFast: 1.2}
			adjusted := a.Minutes * paceFactor[a.Pace]
			if in.Species == SpeciesDog {
				return tierFor(adjusted, [4]float64{15, 30, 45, 60})
			}
			return tierFor(adjusted, [4]float64{10, 20, 30, 45})
		}
	}
	return activityTiers[ActivityNormal]
}

var lifeStages = map[Species]map[LifeStage]Multiplier{
	SpeciesDog: {
		StageYoungPuppy: {1.875, "Young Puppy (0-4mo)"},
		StageOlderPuppy: {1.25, "Older Puppy (4-12mo)"},
		StageAdult:      {1.0, "Adult"},
		StageSenior:     {0.95, "Senior"},
	},
	SpeciesCat: {
		StageKitten: {2.08, "Kitten"},
		StageAdult:  {1.0, "Adult"},
		StageSenior: {0.95, "Senior"},
	},
}

func lifeStageMultiplier(in Input) Multiplier {
	if m, ok := lifeStages[in.Species][in.LifeStage]; ok {
		return m
	}
	return Multiplier{1.0, "Adult"}
}

// environmentTable is keyed by exposure band then climate.
var environmentTable = map[OutdoorExposure]map[Climate]float64{
	Exposure2To4:   {ClimateMild: 1.0, ClimateCold: 1.05, ClimateHot: 1.0},
	Exposure4To8:   {ClimateMild: 1.05, ClimateCold: 1.15, ClimateHot: 1.05},
	Exposure8To12:  {ClimateMild: 1.1, ClimateCold: 1.25, ClimateHot: 1.1},
	Exposure12Plus: {ClimateMild: 1.15, ClimateCold: 1.4, ClimateHot: 1.15},
}

var climateLabels = map[Climate]string{
	ClimateMild: "Mild Climate",
	ClimateCold: "Cold Climate",
	ClimateHot:  "Hot Climate",
}

func environmentMultiplier(in Input, longHaired bool) Multiplier {
	if in.OutdoorExposure == ExposureIndoor || in.OutdoorExposure == ExposureUnder2 {
		return Multiplier{1.0, "Indoor"}
	}
	if in.Climate == "" {
		return Multiplier{1.0, "Indoor"}
	}

	value := 1.0
	if row, ok := environmentTable[in.OutdoorExposure]; ok {
		if v, ok := row[in.Climate]; ok {
			value = v
		}
	}

	// Long-haired breeds retain heat: shave 20% off the cold excess.
	if in.Climate == ClimateCold && longHaired {
		value -= (value - 1.0) * 0.2
	}

	return Multiplier{value, climateLabels[in.Climate]}
}

var bcsBase = map[BCSBand]Multiplier{
	BCSSeverelyUnder: {1.2, "Severely Underweight"},
	BCSUnder:         {1.1, "Underweight"},
	BCSIdeal:         {1.0, "Ideal"},
	BCSOver:          {0.9, "Overweight"},
	BCSObese:         {0.8, "Obese"},
}

func bodyConditionMultiplier(in Input) Multiplier {
	m, ok := bcsBase[in.BCS]
	if !ok {
		m = bcsBase[BCSIdeal]
	}
	if in.WeightGoal == GoalGain && in.BCS != BCSObese {
		m.Value = math.Min(m.Value+0.1, 1.2)
	}
	if in.WeightGoal == GoalLose && in.BCS != BCSSeverelyUnder {
		m.Value = math.Max(m.Value-0.1, 0.7)
	}
	return m
}

func healthMultiplier(in Input, table ConditionTable) Multiplier {
	if len(in.HealthConditions) == 0 {
		return Multiplier{1.0, "Healthy"}
	}
	sum := 0.0
	for _, id := range in.HealthConditions {
		v, ok := table[id]
		if !ok {
			v = 1.0
		}
		sum += v
	}
	return Multiplier{sum / float64(len(in.HealthConditions)), "Health Conditions"}
}
