// ABOUTME: CLI commands for managing pet profiles.
// ABOUTME: Supports add, list, show, update, and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/conditions"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/spf13/cobra"
)

var (
	petWeight     float64
	petWeightUnit string
	petBreed      string
	petIntact     bool
	petActivity   string
	petSteps      int
	petMinutes    float64
	petPace       string
	petLifeStage  string
	petOutdoor    string
	petClimate    string
	petBCS        string
	petGoal       string
	petConditions []string
	petNotes      string
)

var petCmd = &cobra.Command{
	Use:     "pet",
	Aliases: []string{"p"},
	Short:   "Manage pet profiles",
	Long: `Manage pet profiles.

A profile holds everything the calorie calculator needs: weight, neuter
status, activity, life stage, outdoor exposure, climate, body condition
score, weight goal, and health conditions.

EXAMPLES:

  petfeed pet add Biscuit dog --weight 22
  petfeed pet add Mochi cat --weight 4.2 --unit kg --breed "Maine Coon"
  petfeed pet list
  petfeed pet show Biscuit
  petfeed pet update Biscuit --weight 24 --activity active
  petfeed pet delete Biscuit`,
}

var petAddCmd = &cobra.Command{
	Use:   "add <name> <species>",
	Short: "Add a pet profile",
	Long: `Add a pet profile. Species is "dog" or "cat".

Profile defaults: neutered, normal activity, adult, indoor, mild
climate, ideal body condition (4-5), maintain weight. Override any of
them with flags.

PROFILE FLAGS:

  --weight      Body weight (with --unit lb or kg; default lb)
  --breed       Breed name (long-haired breeds dampen cold-climate needs)
  --intact      Mark as not spayed/neutered
  --activity    sedentary, low, normal, active, highly-active
  --steps       Daily step count (alternative to --activity)
  --minutes     Daily activity minutes (with --pace slow/moderate/fast)
  --life-stage  Dogs: young-puppy, older-puppy, adult, senior
                Cats: kitten, adult, senior
  --outdoor     indoor, less-than-2, 2-4, 4-8, 8-12, 12-plus (hours/day)
  --climate     mild, cold, hot
  --bcs         Body condition band: 1-2, 3, 4-5, 6-7, 8-9
  --goal        maintain, gain, lose
  --conditions  Health condition ids (repeatable); see 'petfeed pet conditions'

EXAMPLES:

  petfeed pet add Biscuit dog --weight 22
  petfeed pet add Rex dog --weight 30 --steps 12000 --goal lose
  petfeed pet add Mochi cat --weight 9 --breed "Maine Coon" --conditions cat-ckd-early`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, species := args[0], args[1]
		if !models.IsValidSpecies(species) {
			return fmt.Errorf("unknown species: %s (use dog or cat)", species)
		}

		pet := models.NewPet(name, calc.Species(species))
		if err := applyPetFlags(cmd, pet); err != nil {
			return err
		}

		if err := repo.CreatePet(pet); err != nil {
			return fmt.Errorf("failed to create pet: %w", err)
		}

		color.Green("✓ Added %s", pet.Name)
		fmt.Printf("  %s %s", color.New(color.Faint).Sprint(pet.ID.String()[:8]), pet.Species)
		if pet.Weight > 0 {
			fmt.Printf(", %.1f %s", pet.Weight, pet.WeightUnit)
		}
		fmt.Println()
		return nil
	},
}

var petListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List pet profiles",
	Long: `List pet profiles.

Each line shows: ID  NAME  SPECIES  WEIGHT  DAILY-TARGET

The ID is an 8-character prefix you can use with show, update, and
delete commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pets, err := repo.ListPets()
		if err != nil {
			return fmt.Errorf("failed to list pets: %w", err)
		}

		if len(pets) == 0 {
			fmt.Println("No pets found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range pets {
			target := faint.Sprint("(no target)")
			if p.DailyCalories > 0 {
				target = fmt.Sprintf("%d kcal/day", p.DailyCalories)
			}
			fmt.Printf("%s %s %s %.1f %s  %s\n",
				faint.Sprint(p.ID.String()[:8]),
				padRight(p.Name, 14),
				padRight(string(p.Species), 4),
				p.Weight, p.WeightUnit,
				target)
		}
		return nil
	},
}

var petShowCmd = &cobra.Command{
	Use:   "show <pet>",
	Short: "Show a pet profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s  %s\n", color.New(color.Bold).Sprint(pet.Name), faint.Sprint(pet.ID.String()))
		fmt.Printf("  Species:     %s", pet.Species)
		if pet.Breed != "" {
			fmt.Printf(" (%s)", pet.Breed)
		}
		fmt.Println()
		fmt.Printf("  Weight:      %.1f %s\n", pet.Weight, pet.WeightUnit)
		neutered := "yes"
		if !pet.Neutered {
			neutered = "no"
		}
		fmt.Printf("  Neutered:    %s\n", neutered)
		switch pet.ActivityMethod {
		case calc.ActivityBySteps:
			fmt.Printf("  Activity:    %d steps/day\n", pet.DailySteps)
		case calc.ActivityByTime:
			fmt.Printf("  Activity:    %.0f min/day (%s)\n", pet.ActivityMinutes, pet.ActivityPace)
		default:
			fmt.Printf("  Activity:    %s\n", pet.ActivityCategory)
		}
		fmt.Printf("  Life stage:  %s\n", pet.LifeStage)
		fmt.Printf("  Outdoors:    %s", pet.OutdoorExposure)
		if pet.OutdoorExposure != calc.ExposureIndoor {
			fmt.Printf(" (%s climate)", pet.Climate)
		}
		fmt.Println()
		fmt.Printf("  BCS:         %s, goal %s\n", pet.BCS, pet.WeightGoal)
		if len(pet.HealthConditions) > 0 {
			var names []string
			for _, id := range pet.HealthConditions {
				if c, ok := conditions.Lookup(id); ok {
					names = append(names, c.Name)
				} else {
					names = append(names, id)
				}
			}
			fmt.Printf("  Conditions:  %s\n", strings.Join(names, ", "))
		}
		if pet.DailyCalories > 0 {
			fmt.Printf("  Target:      %d kcal/day\n", pet.DailyCalories)
		}
		if pet.Notes != nil && *pet.Notes != "" {
			fmt.Printf("  Notes:       %s\n", truncate(*pet.Notes, 60))
		}
		return nil
	},
}

var petUpdateCmd = &cobra.Command{
	Use:   "update <pet>",
	Short: "Update a pet profile",
	Long: `Update a pet profile. Only the flags you pass change; everything
else is left alone. Takes the same profile flags as 'pet add'.

After changing weight, activity, or health inputs, re-run
'petfeed calc <pet> --save' to refresh the daily target.

EXAMPLES:

  petfeed pet update Biscuit --weight 24
  petfeed pet update Biscuit --activity active --goal lose
  petfeed pet update Mochi --conditions cat-hyperthyroid`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}

		if err := applyPetFlags(cmd, pet); err != nil {
			return err
		}

		if err := repo.UpdatePet(pet); err != nil {
			return fmt.Errorf("failed to update pet: %w", err)
		}

		color.Green("✓ Updated %s", pet.Name)
		return nil
	},
}

var petDeleteCmd = &cobra.Command{
	Use:     "delete <pet>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a pet profile",
	Long: `Delete a pet profile and its meal plan.

All of the pet's meals and their line items are deleted with it.
The food database is untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeletePet(pet.ID.String()); err != nil {
			return fmt.Errorf("failed to delete pet: %w", err)
		}

		color.Green("✓ Deleted %s", pet.Name)
		return nil
	},
}

var petConditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List known health conditions",
	Long: `List the health condition ids the calculator knows about, with the
energy multiplier each applies. Multiple conditions are averaged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		for _, c := range conditions.All {
			fmt.Printf("%s %s ×%.2f  %s\n",
				padRight(c.ID, 26), padRight(c.Name, 38), c.Multiplier,
				faint.Sprint(c.Description))
		}
		return nil
	},
}

// resolvePetArg finds a pet by ID prefix first, then by name.
func resolvePetArg(ref string) (*models.Pet, error) {
	if pet, err := repo.GetPet(ref); err == nil {
		return pet, nil
	}
	pet, err := repo.GetPetByName(ref)
	if err != nil {
		return nil, fmt.Errorf("no pet matching %q", ref)
	}
	return pet, nil
}

// applyPetFlags copies changed profile flags onto the pet.
func applyPetFlags(cmd *cobra.Command, pet *models.Pet) error {
	flags := cmd.Flags()

	if flags.Changed("unit") {
		if petWeightUnit != string(calc.Pound) && petWeightUnit != string(calc.Kilogram) {
			return fmt.Errorf("unknown weight unit: %s (use lb or kg)", petWeightUnit)
		}
		pet.WeightUnit = calc.WeightUnit(petWeightUnit)
	}
	if flags.Changed("weight") {
		if petWeight <= 0 {
			return fmt.Errorf("weight must be positive")
		}
		pet.Weight = petWeight
	}
	if flags.Changed("breed") {
		pet.Breed = petBreed
	}
	if flags.Changed("intact") {
		pet.Neutered = !petIntact
	}
	if flags.Changed("activity") {
		switch calc.ActivityCategory(petActivity) {
		case calc.ActivitySedentary, calc.ActivityLow, calc.ActivityNormal, calc.ActivityActive, calc.ActivityHighlyActive:
		default:
			return fmt.Errorf("unknown activity category: %s (use sedentary, low, normal, active, or highly-active)", petActivity)
		}
		pet.ActivityMethod = calc.ActivityByCategory
		pet.ActivityCategory = calc.ActivityCategory(petActivity)
	}
	if flags.Changed("steps") {
		if petSteps < 0 {
			return fmt.Errorf("steps must not be negative")
		}
		pet.ActivityMethod = calc.ActivityBySteps
		pet.DailySteps = petSteps
	}
	if flags.Changed("minutes") {
		if petMinutes < 0 {
			return fmt.Errorf("minutes must not be negative")
		}
		pet.ActivityMethod = calc.ActivityByTime
		pet.ActivityMinutes = petMinutes
	}
	if flags.Changed("pace") {
		switch calc.ActivityPace(petPace) {
		case calc.PaceSlow, calc.PaceModerate, calc.PaceFast:
		default:
			return fmt.Errorf("unknown pace: %s (use slow, moderate, or fast)", petPace)
		}
		pet.ActivityPace = calc.ActivityPace(petPace)
	}
	if flags.Changed("life-stage") {
		if !models.IsValidLifeStage(pet.Species, petLifeStage) {
			return fmt.Errorf("invalid life stage %q for a %s", petLifeStage, pet.Species)
		}
		pet.LifeStage = calc.LifeStage(petLifeStage)
	}
	if flags.Changed("outdoor") {
		switch calc.OutdoorExposure(petOutdoor) {
		case calc.ExposureIndoor, calc.ExposureUnder2, calc.Exposure2To4, calc.Exposure4To8, calc.Exposure8To12, calc.Exposure12Plus:
		default:
			return fmt.Errorf("unknown outdoor exposure: %s", petOutdoor)
		}
		pet.OutdoorExposure = calc.OutdoorExposure(petOutdoor)
	}
	if flags.Changed("climate") {
		switch calc.Climate(petClimate) {
		case calc.ClimateMild, calc.ClimateCold, calc.ClimateHot:
		default:
			return fmt.Errorf("unknown climate: %s (use mild, cold, or hot)", petClimate)
		}
		pet.Climate = calc.Climate(petClimate)
	}
	if flags.Changed("bcs") {
		switch calc.BCSBand(petBCS) {
		case calc.BCSSeverelyUnder, calc.BCSUnder, calc.BCSIdeal, calc.BCSOver, calc.BCSObese:
		default:
			return fmt.Errorf("unknown BCS band: %s (use 1-2, 3, 4-5, 6-7, or 8-9)", petBCS)
		}
		pet.BCS = calc.BCSBand(petBCS)
	}
	if flags.Changed("goal") {
		switch calc.WeightGoal(petGoal) {
		case calc.GoalMaintain, calc.GoalGain, calc.GoalLose:
		default:
			return fmt.Errorf("unknown weight goal: %s (use maintain, gain, or lose)", petGoal)
		}
		pet.WeightGoal = calc.WeightGoal(petGoal)
	}
	if flags.Changed("conditions") {
		for _, id := range petConditions {
			if _, ok := conditions.Lookup(id); !ok {
				return fmt.Errorf("unknown health condition: %s (see 'petfeed pet conditions')", id)
			}
		}
		pet.HealthConditions = petConditions
	}
	if flags.Changed("notes") {
		pet.WithNotes(petNotes)
	}
	return nil
}

func addPetProfileFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&petWeight, "weight", 0, "body weight")
	cmd.Flags().StringVar(&petWeightUnit, "unit", "lb", "weight unit (lb or kg)")
	cmd.Flags().StringVar(&petBreed, "breed", "", "breed name")
	cmd.Flags().BoolVar(&petIntact, "intact", false, "mark as not spayed/neutered")
	cmd.Flags().StringVar(&petActivity, "activity", "", "activity category")
	cmd.Flags().IntVar(&petSteps, "steps", 0, "daily step count")
	cmd.Flags().Float64Var(&petMinutes, "minutes", 0, "daily activity minutes")
	cmd.Flags().StringVar(&petPace, "pace", "moderate", "activity pace for --minutes")
	cmd.Flags().StringVar(&petLifeStage, "life-stage", "", "life stage")
	cmd.Flags().StringVar(&petOutdoor, "outdoor", "", "outdoor exposure band")
	cmd.Flags().StringVar(&petClimate, "climate", "", "climate (mild, cold, hot)")
	cmd.Flags().StringVar(&petBCS, "bcs", "", "body condition band")
	cmd.Flags().StringVar(&petGoal, "goal", "", "weight goal")
	cmd.Flags().StringArrayVar(&petConditions, "conditions", nil, "health condition ids")
	cmd.Flags().StringVar(&petNotes, "notes", "", "notes for the pet")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	addPetProfileFlags(petAddCmd)
	addPetProfileFlags(petUpdateCmd)

	petCmd.AddCommand(petAddCmd)
	petCmd.AddCommand(petListCmd)
	petCmd.AddCommand(petShowCmd)
	petCmd.AddCommand(petUpdateCmd)
	petCmd.AddCommand(petDeleteCmd)
	petCmd.AddCommand(petConditionsCmd)
	rootCmd.AddCommand(petCmd)
}
