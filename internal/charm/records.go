// ABOUTME: Pet, food, and meal record operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys, plus push/pull mirroring of a repository.
package charm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/feedingfriend/petfeed/internal/storage"
)

// PutPet stores a pet record in the KV store.
func (c *Client) PutPet(p *models.Pet) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal pet: %w", err)
	}
	return c.set(PetPrefix+p.ID.String(), data)
}

// GetPet retrieves a pet by ID or ID prefix.
func (c *Client) GetPet(idOrPrefix string) (*models.Pet, error) {
	data, err := c.getByIDPrefix(PetPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get pet: %w", err)
	}
	return unmarshalJSON[models.Pet](data)
}

// ListPets retrieves all synced pets sorted by name.
func (c *Client) ListPets() ([]*models.Pet, error) {
	allData, err := c.listByPrefix(PetPrefix)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	var pets []*models.Pet
	for _, data := range allData {
		p, err := unmarshalJSON[models.Pet](data)
		if err != nil {
			continue // Skip invalid entries
		}
		pets = append(pets, p)
	}

	sort.Slice(pets, func(i, j int) bool {
		return strings.ToLower(pets[i].Name) < strings.ToLower(pets[j].Name)
	})
	return pets, nil
}

// DeletePet removes a pet record by ID or prefix.
func (c *Client) DeletePet(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(PetPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return nil
}

// PutFood stores a food record in the KV store.
func (c *Client) PutFood(f *models.Food) error {
	data, err := marshalJSON(f)
	if err != nil {
		return fmt.Errorf("marshal food: %w", err)
	}
	return c.set(FoodPrefix+f.ID.String(), data)
}

// ListFoods retrieves all synced foods.
func (c *Client) ListFoods() ([]*models.Food, error) {
	allData, err := c.listByPrefix(FoodPrefix)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	var foods []*models.Food
	for _, data := range allData {
		f, err := unmarshalJSON[models.Food](data)
		if err != nil {
			continue
		}
		foods = append(foods, f)
	}
	return foods, nil
}

// PutMeal stores a meal record in the KV store.
func (c *Client) PutMeal(m *models.Meal) error {
	data, err := marshalJSON(m)
	if err != nil {
		return fmt.Errorf("marshal meal: %w", err)
	}
	return c.set(MealPrefix+m.ID.String(), data)
}

// ListMeals retrieves all synced meals.
func (c *Client) ListMeals() ([]*models.Meal, error) {
	allData, err := c.listByPrefix(MealPrefix)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	var meals []*models.Meal
	for _, data := range allData {
		m, err := unmarshalJSON[models.Meal](data)
		if err != nil {
			continue
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// PutMealItem stores a meal line item in the KV store.
func (c *Client) PutMealItem(mi *models.MealItem) error {
	data, err := marshalJSON(mi)
	if err != nil {
		return fmt.Errorf("marshal meal item: %w", err)
	}
	return c.set(MealItemPrefix+mi.ID.String(), data)
}

// ListMealItems retrieves all synced meal items.
func (c *Client) ListMealItems() ([]*models.MealItem, error) {
	allData, err := c.listByPrefix(MealItemPrefix)
	if err != nil {
		return nil, fmt.Errorf("list meal items: %w", err)
	}

	var items []*models.MealItem
	for _, data := range allData {
		mi, err := unmarshalJSON[models.MealItem](data)
		if err != nil {
			continue
		}
		items = append(items, mi)
	}
	return items, nil
}

// PushSummary holds counts from a push or pull.
type PushSummary struct {
	Pets      int
	Foods     int
	Meals     int
	MealItems int
}

// Push mirrors everything in the local repository into the KV store.
// Existing cloud records with the same ID are overwritten.
func (c *Client) Push(repo storage.Repository) (*PushSummary, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read local data: %w", err)
	}

	// Batch the writes; one sync at the end.
	c.SetAutoSync(false)
	defer c.SetAutoSync(true)

	summary := &PushSummary{}
	for _, p := range data.Pets {
		if err := c.PutPet(p); err != nil {
			return nil, err
		}
		summary.Pets++
	}
	for _, f := range data.Foods {
		if err := c.PutFood(f); err != nil {
			return nil, err
		}
		summary.Foods++
	}
	for _, m := range data.Meals {
		if err := c.PutMeal(m); err != nil {
			return nil, err
		}
		summary.Meals++
	}
	for _, mi := range data.MealItems {
		if err := c.PutMealItem(mi); err != nil {
			return nil, err
		}
		summary.MealItems++
	}

	if err := c.Sync(); err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}
	return summary, nil
}

// Pull copies cloud records missing locally into the repository.
// Records already present locally are left untouched; the local copy wins.
func (c *Client) Pull(repo storage.Repository) (*PushSummary, error) {
	if err := c.Sync(); err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}

	summary := &PushSummary{}

	pets, err := c.ListPets()
	if err != nil {
		return nil, err
	}
	for _, p := range pets {
		if _, err := repo.GetPet(p.ID.String()); err == nil {
			continue
		}
		if err := repo.CreatePet(p); err != nil {
			return nil, fmt.Errorf("pull pet: %w", err)
		}
		summary.Pets++
	}

	foods, err := c.ListFoods()
	if err != nil {
		return nil, err
	}
	for _, f := range foods {
		if _, err := repo.GetFood(f.ID.String()); err == nil {
			continue
		}
		if err := repo.CreateFood(f); err != nil {
			return nil, fmt.Errorf("pull food: %w", err)
		}
		summary.Foods++
	}

	meals, err := c.ListMeals()
	if err != nil {
		return nil, err
	}
	for _, m := range meals {
		if _, err := repo.GetMeal(m.ID.String()); err == nil {
			continue
		}
		if err := repo.CreateMeal(m); err != nil {
			return nil, fmt.Errorf("pull meal: %w", err)
		}
		summary.Meals++
	}

	items, err := c.ListMealItems()
	if err != nil {
		return nil, err
	}
	for _, mi := range items {
		if _, err := repo.GetMealItem(mi.ID.String()); err == nil {
			continue
		}
		if err := repo.AddMealItem(mi); err != nil {
			return nil, fmt.Errorf("pull meal item: %w", err)
		}
		summary.MealItems++
	}

	return summary, nil
}
