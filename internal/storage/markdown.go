// ABOUTME: Markdown-file Repository backend: one file per pet, food, and
// ABOUTME: meal, with YAML frontmatter and notes in the body.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for pet nutrition data using
// markdown files. Meal items live inside their meal's frontmatter.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) petsDir() string  { return filepath.Join(s.dataDir, "pets") }
func (s *MarkdownStore) foodsDir() string { return filepath.Join(s.dataDir, "foods") }
func (s *MarkdownStore) mealsDir() string { return filepath.Join(s.dataDir, "meals") }

// --- frontmatter file helpers ---

// parseFrontmatter splits a file into its YAML frontmatter and body.
func parseFrontmatter(content string) (yamlStr, body string) {
	if !strings.HasPrefix(content, "---\n") {
		return "", content
	}
	rest := content[4:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", content
	}
	yamlStr = rest[:end]
	body = strings.TrimPrefix(rest[end+4:], "\n")
	return yamlStr, body
}

// renderFrontmatter serializes frontmatter and body into file content.
func renderFrontmatter(fm interface{}, body string) (string, error) {
	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	return "---\n" + string(out) + "---\n" + body, nil
}

// atomicWrite writes content via a temp file and rename.
func atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// slugify lowercases and replaces non-alphanumerics with hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *MarkdownStore) petFilePath(p *models.Pet) string {
	return filepath.Join(s.petsDir(), fmt.Sprintf("%s-%s.md", slugify(p.Name), p.ID.String()[:8]))
}

func (s *MarkdownStore) foodFilePath(f *models.Food) string {
	slug := slugify(f.Brand + " " + f.Name)
	return filepath.Join(s.foodsDir(), fmt.Sprintf("%s-%s.md", slug, f.ID.String()[:8]))
}

func (s *MarkdownStore) mealFilePath(m *models.Meal) string {
	return filepath.Join(s.mealsDir(), fmt.Sprintf("%s-%s-%s.md",
		m.PetID.String()[:8], slugify(m.Name), m.ID.String()[:8]))
}

// --- frontmatter types ---

type petFrontmatter struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Species          string   `yaml:"species"`
	Breed            string   `yaml:"breed,omitempty"`
	Weight           float64  `yaml:"weight"`
	WeightUnit       string   `yaml:"weight_unit"`
	Neutered         bool     `yaml:"neutered"`
	ActivityMethod   string   `yaml:"activity_method"`
	ActivityCategory string   `yaml:"activity_category,omitempty"`
	DailySteps       int      `yaml:"daily_steps,omitempty"`
	ActivityMinutes  float64  `yaml:"activity_minutes,omitempty"`
	ActivityPace     string   `yaml:"activity_pace,omitempty"`
	LifeStage        string   `yaml:"life_stage"`
	OutdoorExposure  string   `yaml:"outdoor_exposure"`
	Climate          string   `yaml:"climate"`
	BCS              string   `yaml:"bcs"`
	WeightGoal       string   `yaml:"weight_goal"`
	HealthConditions []string `yaml:"health_conditions,omitempty"`
	DailyCalories    int      `yaml:"daily_calories,omitempty"`
	CreatedAt        string   `yaml:"created_at"`
	UpdatedAt        string   `yaml:"updated_at"`
}

type foodFrontmatter struct {
	ID              string   `yaml:"id"`
	Brand           string   `yaml:"brand"`
	Name            string   `yaml:"name"`
	Category        string   `yaml:"category"`
	CaloriesPerUnit float64  `yaml:"calories_per_unit"`
	ServingUnit     string   `yaml:"serving_unit"`
	ServingGrams    *float64 `yaml:"serving_grams,omitempty"`
	ProteinPct      *float64 `yaml:"protein_pct,omitempty"`
	FatPct          *float64 `yaml:"fat_pct,omitempty"`
	FiberPct        *float64 `yaml:"fiber_pct,omitempty"`
	PackagePrice    *float64 `yaml:"package_price,omitempty"`
	PackageSize     *float64 `yaml:"package_size,omitempty"`
	PackageUnit     *string  `yaml:"package_unit,omitempty"`
	CreatedAt       string   `yaml:"created_at"`
	UpdatedAt       string   `yaml:"updated_at"`
}

type mealFrontmatter struct {
	ID             string                `yaml:"id"`
	PetID          string                `yaml:"pet_id"`
	Name           string                `yaml:"name"`
	TargetPercent  float64               `yaml:"target_percent"`
	TargetCalories int                   `yaml:"target_calories"`
	SortOrder      int                   `yaml:"sort_order"`
	CreatedAt      string                `yaml:"created_at"`
	Items          []mealItemFrontmatter `yaml:"items,omitempty"`
}

type mealItemFrontmatter struct {
	ID                 string   `yaml:"id"`
	FoodID             string   `yaml:"food_id"`
	PortionQuantity    float64  `yaml:"portion_quantity"`
	PortionUnit        string   `yaml:"portion_unit"`
	PortionGrams       *float64 `yaml:"portion_grams,omitempty"`
	CalculatedCalories int      `yaml:"calculated_calories"`
	ManuallyAdjusted   bool     `yaml:"manually_adjusted,omitempty"`
	CreatedAt          string   `yaml:"created_at"`
}

// --- conversions ---

func petToFrontmatter(p *models.Pet) petFrontmatter {
	return petFrontmatter{
		ID:               p.ID.String(),
		Name:             p.Name,
		Species:          string(p.Species),
		Breed:            p.Breed,
		Weight:           p.Weight,
		WeightUnit:       string(p.WeightUnit),
		Neutered:         p.Neutered,
		ActivityMethod:   string(p.ActivityMethod),
		ActivityCategory: string(p.ActivityCategory),
		DailySteps:       p.DailySteps,
		ActivityMinutes:  p.ActivityMinutes,
		ActivityPace:     string(p.ActivityPace),
		LifeStage:        string(p.LifeStage),
		OutdoorExposure:  string(p.OutdoorExposure),
		Climate:          string(p.Climate),
		BCS:              string(p.BCS),
		WeightGoal:       string(p.WeightGoal),
		HealthConditions: p.HealthConditions,
		DailyCalories:    p.DailyCalories,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func petFromFrontmatter(fm *petFrontmatter, notes string) (*models.Pet, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse pet ID %q: %w", fm.ID, err)
	}
	createdAt, _ := time.Parse(time.RFC3339, fm.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, fm.UpdatedAt)

	p := &models.Pet{
		ID:               id,
		Name:             fm.Name,
		Species:          calc.Species(fm.Species),
		Breed:            fm.Breed,
		Weight:           fm.Weight,
		WeightUnit:       calc.WeightUnit(fm.WeightUnit),
		Neutered:         fm.Neutered,
		ActivityMethod:   calc.ActivityMethod(fm.ActivityMethod),
		ActivityCategory: calc.ActivityCategory(fm.ActivityCategory),
		DailySteps:       fm.DailySteps,
		ActivityMinutes:  fm.ActivityMinutes,
		ActivityPace:     calc.ActivityPace(fm.ActivityPace),
		LifeStage:        calc.LifeStage(fm.LifeStage),
		OutdoorExposure:  calc.OutdoorExposure(fm.OutdoorExposure),
		Climate:          calc.Climate(fm.Climate),
		BCS:              calc.BCSBand(fm.BCS),
		WeightGoal:       calc.WeightGoal(fm.WeightGoal),
		HealthConditions: fm.HealthConditions,
		DailyCalories:    fm.DailyCalories,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
	if notes != "" {
		p.Notes = &notes
	}
	return p, nil
}

func foodToFrontmatter(f *models.Food) foodFrontmatter {
	return foodFrontmatter{
		ID:              f.ID.String(),
		Brand:           f.Brand,
		Name:            f.Name,
		Category:        string(f.Category),
		CaloriesPerUnit: f.CaloriesPerUnit,
		ServingUnit:     string(f.ServingUnit),
		ServingGrams:    f.ServingGrams,
		ProteinPct:      f.ProteinPct,
		FatPct:          f.FatPct,
		FiberPct:        f.FiberPct,
		PackagePrice:    f.PackagePrice,
		PackageSize:     f.PackageSize,
		PackageUnit:     f.PackageUnit,
		CreatedAt:       f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       f.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func foodFromFrontmatter(fm *foodFrontmatter) (*models.Food, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse food ID %q: %w", fm.ID, err)
	}
	createdAt, _ := time.Parse(time.RFC3339, fm.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, fm.UpdatedAt)

	return &models.Food{
		ID:              id,
		Brand:           fm.Brand,
		Name:            fm.Name,
		Category:        calc.FoodCategory(fm.Category),
		CaloriesPerUnit: fm.CaloriesPerUnit,
		ServingUnit:     calc.ServingUnit(fm.ServingUnit),
		ServingGrams:    fm.ServingGrams,
		ProteinPct:      fm.ProteinPct,
		FatPct:          fm.FatPct,
		FiberPct:        fm.FiberPct,
		PackagePrice:    fm.PackagePrice,
		PackageSize:     fm.PackageSize,
		PackageUnit:     fm.PackageUnit,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func mealToFrontmatter(m *models.Meal, items []*models.MealItem) mealFrontmatter {
	fm := mealFrontmatter{
		ID:             m.ID.String(),
		PetID:          m.PetID.String(),
		Name:           m.Name,
		TargetPercent:  m.TargetPercent,
		TargetCalories: m.TargetCalories,
		SortOrder:      m.SortOrder,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, mi := range items {
		fm.Items = append(fm.Items, mealItemFrontmatter{
			ID:                 mi.ID.String(),
			FoodID:             mi.FoodID.String(),
			PortionQuantity:    mi.PortionQuantity,
			PortionUnit:        string(mi.PortionUnit),
			PortionGrams:       mi.PortionGrams,
			CalculatedCalories: mi.CalculatedCalories,
			ManuallyAdjusted:   mi.ManuallyAdjusted,
			CreatedAt:          mi.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return fm
}

func mealFromFrontmatter(fm *mealFrontmatter) (*models.Meal, []*models.MealItem, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("parse meal ID %q: %w", fm.ID, err)
	}
	petID, err := uuid.Parse(fm.PetID)
	if err != nil {
		return nil, nil, fmt.Errorf("parse pet ID %q: %w", fm.PetID, err)
	}
	createdAt, _ := time.Parse(time.RFC3339, fm.CreatedAt)

	m := &models.Meal{
		ID:             id,
		PetID:          petID,
		Name:           fm.Name,
		TargetPercent:  fm.TargetPercent,
		TargetCalories: fm.TargetCalories,
		SortOrder:      fm.SortOrder,
		CreatedAt:      createdAt,
	}

	var items []*models.MealItem
	for _, itemFM := range fm.Items {
		itemID, err := uuid.Parse(itemFM.ID)
		if err != nil {
			continue
		}
		foodID, err := uuid.Parse(itemFM.FoodID)
		if err != nil {
			continue
		}
		itemCreated, _ := time.Parse(time.RFC3339, itemFM.CreatedAt)
		items = append(items, &models.MealItem{
			ID:                 itemID,
			MealID:             id,
			FoodID:             foodID,
			PortionQuantity:    itemFM.PortionQuantity,
			PortionUnit:        calc.ServingUnit(itemFM.PortionUnit),
			PortionGrams:       itemFM.PortionGrams,
			CalculatedCalories: itemFM.CalculatedCalories,
			ManuallyAdjusted:   itemFM.ManuallyAdjusted,
			CreatedAt:          itemCreated,
		})
	}
	return m, items, nil
}

// --- file IO ---

func (s *MarkdownStore) writePetFile(p *models.Pet) error {
	fm := petToFrontmatter(p)
	body := ""
	if p.Notes != nil && *p.Notes != "" {
		body = "\n" + *p.Notes + "\n"
	}
	content, err := renderFrontmatter(&fm, body)
	if err != nil {
		return fmt.Errorf("render pet file: %w", err)
	}
	return atomicWrite(s.petFilePath(p), []byte(content))
}

func readPetFile(path string) (*models.Pet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	yamlStr, body := parseFrontmatter(string(data))
	if yamlStr == "" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}
	var fm petFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return petFromFrontmatter(&fm, strings.TrimSpace(body))
}

func (s *MarkdownStore) writeFoodFile(f *models.Food) error {
	fm := foodToFrontmatter(f)
	content, err := renderFrontmatter(&fm, "")
	if err != nil {
		return fmt.Errorf("render food file: %w", err)
	}
	return atomicWrite(s.foodFilePath(f), []byte(content))
}

func readFoodFile(path string) (*models.Food, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	yamlStr, _ := parseFrontmatter(string(data))
	if yamlStr == "" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}
	var fm foodFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return foodFromFrontmatter(&fm)
}

func (s *MarkdownStore) writeMealFile(m *models.Meal, items []*models.MealItem) error {
	fm := mealToFrontmatter(m, items)
	content, err := renderFrontmatter(&fm, "")
	if err != nil {
		return fmt.Errorf("render meal file: %w", err)
	}
	return atomicWrite(s.mealFilePath(m), []byte(content))
}

func readMealFile(path string) (*models.Meal, []*models.MealItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	yamlStr, _ := parseFrontmatter(string(data))
	if yamlStr == "" {
		return nil, nil, fmt.Errorf("no frontmatter in %s", path)
	}
	var fm mealFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return mealFromFrontmatter(&fm)
}

// walkFiles calls fn for each .md file under dir. A missing dir is empty.
func walkFiles(dir string, fn func(path string) error) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		return fn(path)
	})
}

func isFullUUID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

func matchID(id uuid.UUID, idOrPrefix string) bool {
	idStr := id.String()
	if isFullUUID(idOrPrefix) {
		return idStr == idOrPrefix
	}
	return strings.HasPrefix(idStr, idOrPrefix)
}

// --- pet operations ---

// CreatePet stores a new pet as a markdown file.
func (s *MarkdownStore) CreatePet(p *models.Pet) error {
	return s.writePetFile(p)
}

func (s *MarkdownStore) findPetFile(idOrPrefix string) (string, *models.Pet, error) {
	var foundPath string
	var found *models.Pet
	matchCount := 0

	err := walkFiles(s.petsDir(), func(path string) error {
		p, err := readPetFile(path)
		if err != nil {
			return fmt.Errorf("read pet file %s: %w", path, err)
		}
		if matchID(p.ID, idOrPrefix) {
			foundPath = path
			found = p
			matchCount++
			if isFullUUID(idOrPrefix) {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if matchCount == 0 {
		return "", nil, fmt.Errorf("not found: %s", idOrPrefix)
	}
	if matchCount > 1 {
		return "", nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return foundPath, found, nil
}

// GetPet retrieves a pet by ID or ID prefix.
func (s *MarkdownStore) GetPet(idOrPrefix string) (*models.Pet, error) {
	_, p, err := s.findPetFile(idOrPrefix)
	return p, err
}

// GetPetByName retrieves a pet by exact name (case-insensitive).
func (s *MarkdownStore) GetPetByName(name string) (*models.Pet, error) {
	var found *models.Pet
	err := walkFiles(s.petsDir(), func(path string) error {
		p, err := readPetFile(path)
		if err != nil {
			return fmt.Errorf("read pet file %s: %w", path, err)
		}
		if strings.EqualFold(p.Name, name) {
			found = p
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("no pet named %q", name)
	}
	return found, nil
}

// ListPets retrieves all pets sorted by name.
func (s *MarkdownStore) ListPets() ([]*models.Pet, error) {
	var pets []*models.Pet
	err := walkFiles(s.petsDir(), func(path string) error {
		p, err := readPetFile(path)
		if err != nil {
			return fmt.Errorf("read pet file %s: %w", path, err)
		}
		pets = append(pets, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	sort.Slice(pets, func(i, j int) bool {
		return strings.ToLower(pets[i].Name) < strings.ToLower(pets[j].Name)
	})
	return pets, nil
}

// UpdatePet rewrites a pet file. The file is renamed if the name changed.
func (s *MarkdownStore) UpdatePet(p *models.Pet) error {
	oldPath, _, err := s.findPetFile(p.ID.String())
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	p.UpdatedAt = time.Now()
	if err := s.writePetFile(p); err != nil {
		return err
	}
	if newPath := s.petFilePath(p); newPath != oldPath {
		_ = os.Remove(oldPath)
	}
	return nil
}

// DeletePet removes a pet file and all of the pet's meal files.
func (s *MarkdownStore) DeletePet(idOrPrefix string) error {
	path, p, err := s.findPetFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if err := s.DeleteMealsForPet(p.ID); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete pet file: %w", err)
	}
	return nil
}

// --- food operations ---

// CreateFood stores a new food as a markdown file.
func (s *MarkdownStore) CreateFood(f *models.Food) error {
	return s.writeFoodFile(f)
}

func (s *MarkdownStore) findFoodFile(idOrPrefix string) (string, *models.Food, error) {
	var foundPath string
	var found *models.Food
	matchCount := 0

	err := walkFiles(s.foodsDir(), func(path string) error {
		f, err := readFoodFile(path)
		if err != nil {
			return fmt.Errorf("read food file %s: %w", path, err)
		}
		if matchID(f.ID, idOrPrefix) {
			foundPath = path
			found = f
			matchCount++
			if isFullUUID(idOrPrefix) {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	if matchCount == 0 {
		return "", nil, fmt.Errorf("not found: %s", idOrPrefix)
	}
	if matchCount > 1 {
		return "", nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return foundPath, found, nil
}

// GetFood retrieves a food by ID or ID prefix.
func (s *MarkdownStore) GetFood(idOrPrefix string) (*models.Food, error) {
	_, f, err := s.findFoodFile(idOrPrefix)
	return f, err
}

// ListFoods retrieves foods with optional filtering by category.
func (s *MarkdownStore) ListFoods(category *calc.FoodCategory) ([]*models.Food, error) {
	var foods []*models.Food
	err := walkFiles(s.foodsDir(), func(path string) error {
		f, err := readFoodFile(path)
		if err != nil {
			return fmt.Errorf("read food file %s: %w", path, err)
		}
		if category != nil && f.Category != *category {
			return nil
		}
		foods = append(foods, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	sort.Slice(foods, func(i, j int) bool {
		if foods[i].Brand != foods[j].Brand {
			return foods[i].Brand < foods[j].Brand
		}
		return foods[i].Name < foods[j].Name
	})
	return foods, nil
}

// UpdateFood rewrites a food file. The file is renamed if the name changed.
func (s *MarkdownStore) UpdateFood(f *models.Food) error {
	oldPath, _, err := s.findFoodFile(f.ID.String())
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	f.UpdatedAt = time.Now()
	if err := s.writeFoodFile(f); err != nil {
		return err
	}
	if newPath := s.foodFilePath(f); newPath != oldPath {
		_ = os.Remove(oldPath)
	}
	return nil
}

// DeleteFood removes a food file by ID or prefix.
func (s *MarkdownStore) DeleteFood(idOrPrefix string) error {
	path, _, err := s.findFoodFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete food file: %w", err)
	}
	return nil
}

// --- meal operations ---

// CreateMeal stores a new meal as a markdown file with no items.
func (s *MarkdownStore) CreateMeal(m *models.Meal) error {
	return s.writeMealFile(m, nil)
}

func (s *MarkdownStore) findMealFile(idOrPrefix string) (string, *models.Meal, []*models.MealItem, error) {
	var foundPath string
	var found *models.Meal
	var foundItems []*models.MealItem
	matchCount := 0

	err := walkFiles(s.mealsDir(), func(path string) error {
		m, items, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		if matchID(m.ID, idOrPrefix) {
			foundPath = path
			found = m
			foundItems = items
			matchCount++
			if isFullUUID(idOrPrefix) {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", nil, nil, err
	}
	if matchCount == 0 {
		return "", nil, nil, fmt.Errorf("not found: %s", idOrPrefix)
	}
	if matchCount > 1 {
		return "", nil, nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return foundPath, found, foundItems, nil
}

// GetMeal retrieves a meal by ID or ID prefix.
func (s *MarkdownStore) GetMeal(idOrPrefix string) (*models.Meal, error) {
	_, m, _, err := s.findMealFile(idOrPrefix)
	return m, err
}

// ListMeals retrieves a pet's meal slots in sort order.
func (s *MarkdownStore) ListMeals(petID uuid.UUID) ([]*models.Meal, error) {
	var meals []*models.Meal
	err := walkFiles(s.mealsDir(), func(path string) error {
		m, _, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		if m.PetID == petID {
			meals = append(meals, m)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	sort.Slice(meals, func(i, j int) bool {
		return meals[i].SortOrder < meals[j].SortOrder
	})
	return meals, nil
}

// UpdateMeal rewrites a meal file, preserving its items.
func (s *MarkdownStore) UpdateMeal(m *models.Meal) error {
	oldPath, _, items, err := s.findMealFile(m.ID.String())
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if err := s.writeMealFile(m, items); err != nil {
		return err
	}
	if newPath := s.mealFilePath(m); newPath != oldPath {
		_ = os.Remove(oldPath)
	}
	return nil
}

// DeleteMeal removes a meal file by ID or prefix. Items go with it.
func (s *MarkdownStore) DeleteMeal(idOrPrefix string) error {
	path, _, _, err := s.findMealFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete meal file: %w", err)
	}
	return nil
}

// DeleteMealsForPet removes all of a pet's meal files.
func (s *MarkdownStore) DeleteMealsForPet(petID uuid.UUID) error {
	var paths []string
	err := walkFiles(s.mealsDir(), func(path string) error {
		m, _, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		if m.PetID == petID {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete meals for pet: %w", err)
	}
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete meal file: %w", err)
		}
	}
	return nil
}

// AddMealItem adds an item to a meal by re-writing the meal file.
func (s *MarkdownStore) AddMealItem(mi *models.MealItem) error {
	_, m, items, err := s.findMealFile(mi.MealID.String())
	if err != nil {
		return fmt.Errorf("add meal item: meal not found: %w", err)
	}
	items = append(items, mi)
	return s.writeMealFile(m, items)
}

// GetMealItem retrieves a meal item by ID or ID prefix.
func (s *MarkdownStore) GetMealItem(idOrPrefix string) (*models.MealItem, error) {
	var found *models.MealItem
	matchCount := 0

	err := walkFiles(s.mealsDir(), func(path string) error {
		_, items, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		for _, mi := range items {
			if matchID(mi.ID, idOrPrefix) {
				found = mi
				matchCount++
				if isFullUUID(idOrPrefix) {
					return filepath.SkipAll
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if matchCount == 0 {
		return nil, fmt.Errorf("not found: %s", idOrPrefix)
	}
	if matchCount > 1 {
		return nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return found, nil
}

// ListMealItems retrieves a meal's line items in insertion order.
func (s *MarkdownStore) ListMealItems(mealID uuid.UUID) ([]*models.MealItem, error) {
	_, _, items, err := s.findMealFile(mealID.String())
	if err != nil {
		return nil, fmt.Errorf("list meal items: %w", err)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// UpdateMealItem rewrites one item inside its meal file.
func (s *MarkdownStore) UpdateMealItem(mi *models.MealItem) error {
	_, m, items, err := s.findMealFile(mi.MealID.String())
	if err != nil {
		return fmt.Errorf("update meal item: %w", err)
	}
	replaced := false
	for i, existing := range items {
		if existing.ID == mi.ID {
			items[i] = mi
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("not found: %s", mi.ID)
	}
	return s.writeMealFile(m, items)
}

// DeleteMealItem removes an item by re-writing its meal file.
func (s *MarkdownStore) DeleteMealItem(idOrPrefix string) error {
	var targetMeal *models.Meal
	var targetItems []*models.MealItem
	targetIndex := -1
	matchCount := 0

	err := walkFiles(s.mealsDir(), func(path string) error {
		m, items, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		for i, mi := range items {
			if matchID(mi.ID, idOrPrefix) {
				targetMeal = m
				targetItems = items
				targetIndex = i
				matchCount++
				if isFullUUID(idOrPrefix) {
					return filepath.SkipAll
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if matchCount == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	if matchCount > 1 {
		return fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	targetItems = append(targetItems[:targetIndex], targetItems[targetIndex+1:]...)
	return s.writeMealFile(targetMeal, targetItems)
}

// --- export/import ---

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	pets, err := s.ListPets()
	if err != nil {
		return nil, err
	}
	foods, err := s.ListFoods(nil)
	if err != nil {
		return nil, err
	}

	var meals []*models.Meal
	var allItems []*models.MealItem
	err = walkFiles(s.mealsDir(), func(path string) error {
		m, items, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		meals = append(meals, m)
		allItems = append(allItems, items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "petfeed",
		Pets:       pets,
		Foods:      foods,
		Meals:      meals,
		MealItems:  allItems,
	}, nil
}

// ImportData imports data from an export format.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	for _, p := range data.Pets {
		if err := s.CreatePet(p); err != nil {
			return fmt.Errorf("import pet: %w", err)
		}
	}
	for _, f := range data.Foods {
		if err := s.CreateFood(f); err != nil {
			return fmt.Errorf("import food: %w", err)
		}
	}

	itemsByMeal := make(map[uuid.UUID][]*models.MealItem)
	for _, mi := range data.MealItems {
		itemsByMeal[mi.MealID] = append(itemsByMeal[mi.MealID], mi)
	}
	for _, m := range data.Meals {
		if err := s.writeMealFile(m, itemsByMeal[m.ID]); err != nil {
			return fmt.Errorf("import meal: %w", err)
		}
	}
	return nil
}
