// ABOUTME: MCP resource implementations for pet nutrition data.
// ABOUTME: Provides petfeed://pets, petfeed://foods, and petfeed://plans resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// petfeed://pets - All pet profiles
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "petfeed://pets",
		Name:        "Pet Profiles",
		Description: "All pet profiles with energy calculator inputs and daily calorie targets",
		MIMEType:    "application/json",
	}, s.handlePetsResource)

	// petfeed://foods - The food database
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "petfeed://foods",
		Name:        "Food Database",
		Description: "All foods grouped by category, with calorie density and package data",
		MIMEType:    "application/json",
	}, s.handleFoodsResource)

	// petfeed://plans - Meal plans for every pet
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "petfeed://plans",
		Name:        "Feeding Plans",
		Description: "Current meal plans for every pet: meal slots, foods, portions, and calories",
		MIMEType:    "application/json",
	}, s.handlePlansResource)
}

// Resource handlers

func (s *Server) handlePetsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	pets, err := s.repo.ListPets()
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	result := map[string]interface{}{
		"pets":  pets,
		"count": len(pets),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "petfeed://pets",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleFoodsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	foods, err := s.repo.ListFoods(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	byCategory := make(map[string][]interface{})
	for _, f := range foods {
		byCategory[string(f.Category)] = append(byCategory[string(f.Category)], f)
	}

	result := map[string]interface{}{
		"foods": byCategory,
		"count": len(foods),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "petfeed://foods",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handlePlansResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	pets, err := s.repo.ListPets()
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	plans := make([]map[string]interface{}, 0, len(pets))
	for _, p := range pets {
		meals, err := s.repo.ListMeals(p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list meals: %w", err)
		}

		mealEntries := make([]map[string]interface{}, 0, len(meals))
		for _, m := range meals {
			items, err := s.repo.ListMealItems(m.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list meal items: %w", err)
			}

			itemEntries := make([]map[string]interface{}, 0, len(items))
			for _, mi := range items {
				food, err := s.repo.GetFood(mi.FoodID.String())
				if err != nil {
					return nil, fmt.Errorf("failed to resolve food: %w", err)
				}
				itemEntries = append(itemEntries, map[string]interface{}{
					"food":              fmt.Sprintf("%s %s", food.Brand, food.Name),
					"portion":           calc.FormatPortion(mi.PortionQuantity, mi.PortionUnit),
					"calories":          mi.CalculatedCalories,
					"manually_adjusted": mi.ManuallyAdjusted,
				})
			}

			mealEntries = append(mealEntries, map[string]interface{}{
				"name":            m.Name,
				"target_percent":  m.TargetPercent,
				"target_calories": m.TargetCalories,
				"items":           itemEntries,
			})
		}

		plans = append(plans, map[string]interface{}{
			"pet":            p.Name,
			"daily_calories": p.DailyCalories,
			"meals":          mealEntries,
		})
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"plans":        plans,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "petfeed://plans",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
