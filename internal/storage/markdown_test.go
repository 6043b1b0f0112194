// ABOUTME: Tests for MarkdownStore file-level behavior.
// ABOUTME: Covers frontmatter helpers, slugs, and file renames on update.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
)

func TestParseRenderFrontmatter(t *testing.T) {
	type fm struct {
		Name  string `yaml:"name"`
		Value int    `yaml:"value"`
	}

	content, err := renderFrontmatter(&fm{Name: "test", Value: 42}, "\nbody text\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("missing frontmatter fence:\n%s", content)
	}

	yamlStr, body := parseFrontmatter(content)
	if !strings.Contains(yamlStr, "name: test") || !strings.Contains(yamlStr, "value: 42") {
		t.Errorf("frontmatter = %q", yamlStr)
	}
	if strings.TrimSpace(body) != "body text" {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatterMissing(t *testing.T) {
	yamlStr, body := parseFrontmatter("just a plain file\n")
	if yamlStr != "" {
		t.Errorf("frontmatter = %q for plain file", yamlStr)
	}
	if body != "just a plain file\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Biscuit", "biscuit"},
		{"Chicken & Rice", "chicken-rice"},
		{"  Salmon  Pate  ", "salmon-pate"},
		{"ALL CAPS", "all-caps"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPetFileLayout(t *testing.T) {
	dir := t.TempDir()
	md, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	pet := models.NewPet("Biscuit", calc.SpeciesDog).WithWeight(22, calc.Pound).WithNotes("very good dog")
	if err := md.CreatePet(pet); err != nil {
		t.Fatalf("create pet: %v", err)
	}

	wantPath := filepath.Join(dir, "pets",
		"biscuit-"+pet.ID.String()[:8]+".md")
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("pet file not at expected path: %v", err)
	}
	if !strings.Contains(string(data), "species: dog") {
		t.Errorf("file content:\n%s", data)
	}
	if !strings.Contains(string(data), "very good dog") {
		t.Error("notes should land in the body")
	}
}

func TestUpdatePetRenamesFile(t *testing.T) {
	dir := t.TempDir()
	md, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	pet := models.NewPet("Biscuit", calc.SpeciesDog).WithWeight(22, calc.Pound)
	if err := md.CreatePet(pet); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	oldPath := filepath.Join(dir, "pets", "biscuit-"+pet.ID.String()[:8]+".md")

	pet.Name = "Sir Biscuit"
	if err := md.UpdatePet(pet); err != nil {
		t.Fatalf("update pet: %v", err)
	}

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("old file should be removed after rename")
	}
	newPath := filepath.Join(dir, "pets", "sir-biscuit-"+pet.ID.String()[:8]+".md")
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
}

func TestMealItemsEmbeddedInMealFile(t *testing.T) {
	dir := t.TempDir()
	md, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	pet := models.NewPet("Mochi", calc.SpeciesCat)
	food := models.NewFood("Acme", "Salmon Pate", calc.CategoryWet, 95, calc.UnitCan)
	meal := models.NewMeal(pet.ID, "Dinner", 45, 178, 0)
	if err := md.CreateMeal(meal); err != nil {
		t.Fatalf("create meal: %v", err)
	}
	item := models.NewMealItem(meal.ID, food.ID, 1.5, calc.UnitCan, 143)
	if err := md.AddMealItem(item); err != nil {
		t.Fatalf("add meal item: %v", err)
	}

	// exactly one file holds both the meal and its item
	entries, err := os.ReadDir(filepath.Join(dir, "meals"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("%d meal files, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, "meals", entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), item.ID.String()) {
		t.Error("item should be embedded in the meal file")
	}
}
