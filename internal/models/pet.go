// ABOUTME: Pet profile model for nutrition planning.
// ABOUTME: Holds the calculator inputs plus the saved daily calorie target.
package models

import (
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/google/uuid"
)

// Pet is a stored pet profile. The activity fields are flattened for
// persistence; ActivityMethod says which of them are meaningful.
type Pet struct {
	ID               uuid.UUID
	Name             string
	Species          calc.Species
	Breed            string
	Weight           float64
	WeightUnit       calc.WeightUnit
	Neutered         bool
	ActivityMethod   calc.ActivityMethod
	ActivityCategory calc.ActivityCategory
	DailySteps       int
	ActivityMinutes  float64
	ActivityPace     calc.ActivityPace
	LifeStage        calc.LifeStage
	OutdoorExposure  calc.OutdoorExposure
	Climate          calc.Climate
	BCS              calc.BCSBand
	WeightGoal       calc.WeightGoal
	HealthConditions []string
	// DailyCalories is the most recently saved MER target, 0 if never
	// calculated.
	DailyCalories int
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPet creates a pet with generated UUID, sensible profile defaults, and
// current timestamps.
func NewPet(name string, species calc.Species) *Pet {
	now := time.Now()
	return &Pet{
		ID:               uuid.New(),
		Name:             name,
		Species:          species,
		WeightUnit:       calc.Pound,
		Neutered:         true,
		ActivityMethod:   calc.ActivityByCategory,
		ActivityCategory: calc.ActivityNormal,
		LifeStage:        calc.StageAdult,
		OutdoorExposure:  calc.ExposureIndoor,
		Climate:          calc.ClimateMild,
		BCS:              calc.BCSIdeal,
		WeightGoal:       calc.GoalMaintain,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// WithWeight sets the body weight.
func (p *Pet) WithWeight(weight float64, unit calc.WeightUnit) *Pet {
	p.Weight = weight
	p.WeightUnit = unit
	return p
}

// WithNotes sets notes on the pet.
func (p *Pet) WithNotes(notes string) *Pet {
	p.Notes = &notes
	return p
}

// Activity reconstructs the tagged activity input from the flattened
// persistence fields.
func (p *Pet) Activity() calc.ActivityInput {
	switch p.ActivityMethod {
	case calc.ActivityBySteps:
		return calc.StepsActivity(p.DailySteps)
	case calc.ActivityByTime:
		return calc.TimeActivity(p.ActivityMinutes, p.ActivityPace)
	default:
		return calc.CategoryActivity(p.ActivityCategory)
	}
}

// CalcInput snapshots the profile for one energy calculation.
func (p *Pet) CalcInput() calc.Input {
	return calc.Input{
		Species:          p.Species,
		Weight:           p.Weight,
		WeightUnit:       p.WeightUnit,
		Neutered:         p.Neutered,
		Activity:         p.Activity(),
		LifeStage:        p.LifeStage,
		OutdoorExposure:  p.OutdoorExposure,
		Climate:          p.Climate,
		BCS:              p.BCS,
		WeightGoal:       p.WeightGoal,
		HealthConditions: p.HealthConditions,
	}
}

// AllSpecies lists the supported species.
var AllSpecies = []calc.Species{calc.SpeciesDog, calc.SpeciesCat}

// IsValidSpecies checks if a string is a supported species.
func IsValidSpecies(s string) bool {
	for _, sp := range AllSpecies {
		if string(sp) == s {
			return true
		}
	}
	return false
}

// AllLifeStages lists the life stages valid for a species.
func AllLifeStages(species calc.Species) []calc.LifeStage {
	if species == calc.SpeciesCat {
		return []calc.LifeStage{calc.StageKitten, calc.StageAdult, calc.StageSenior}
	}
	return []calc.LifeStage{calc.StageYoungPuppy, calc.StageOlderPuppy, calc.StageAdult, calc.StageSenior}
}

// IsValidLifeStage checks a life stage against the species-specific set.
func IsValidLifeStage(species calc.Species, s string) bool {
	for _, st := range AllLifeStages(species) {
		if string(st) == s {
			return true
		}
	}
	return false
}
