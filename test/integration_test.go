// ABOUTME: Integration tests for the petfeed CLI.
// ABOUTME: Builds the binary and exercises the full planning workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, "petfeed")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/petfeed")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(binary)

	// Isolate data and config in a temp dir
	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_DATA_HOME="+tmpDir,
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Add a pet
	output, err := run("pet", "add", "Biscuit", "dog", "--weight", "22")
	if err != nil {
		t.Fatalf("Failed to add pet: %v\n%s", err, output)
	}

	// Calculate and save the daily target
	output, err = run("calc", "Biscuit", "--save")
	if err != nil {
		t.Fatalf("Failed to calculate: %v\n%s", err, output)
	}
	if !strings.Contains(output, "630") {
		t.Errorf("Expected 630 kcal target in output:\n%s", output)
	}

	// Add a food
	output, err = run("food", "add", "Acme", "Chicken & Rice", "dry", "380", "cup",
		"--price", "19.99", "--size", "10", "--package-unit", "lb")
	if err != nil {
		t.Fatalf("Failed to add food: %v\n%s", err, output)
	}

	// Plan meals
	output, err = run("meal", "plan", "Biscuit")
	if err != nil {
		t.Fatalf("Failed to plan meals: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Breakfast") || !strings.Contains(output, "Treats") {
		t.Errorf("Expected Breakfast and Treats slots:\n%s", output)
	}

	// Pull the breakfast meal ID and the food ID from list output
	output, err = run("meal", "show", "Biscuit")
	if err != nil {
		t.Fatalf("Failed to show meals: %v\n%s", err, output)
	}
	mealID := firstField(findLine(output, "Breakfast"))

	output, err = run("food", "list")
	if err != nil {
		t.Fatalf("Failed to list foods: %v\n%s", err, output)
	}
	foodID := firstField(findLine(output, "Acme"))

	if mealID == "" || foodID == "" {
		t.Fatalf("Could not extract IDs (meal=%q food=%q)", mealID, foodID)
	}

	// Assign the food; the portion should absorb the slot target
	output, err = run("meal", "add-food", mealID, foodID)
	if err != nil {
		t.Fatalf("Failed to add food to meal: %v\n%s", err, output)
	}

	// Full plan and cost should both render
	output, err = run("plan", "Biscuit")
	if err != nil {
		t.Fatalf("Failed to render plan: %v\n%s", err, output)
	}
	if !strings.Contains(output, "# Feeding Plan") {
		t.Errorf("Expected plan title in output:\n%s", output)
	}

	output, err = run("cost", "Biscuit")
	if err != nil {
		t.Fatalf("Failed to estimate cost: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Daily:") {
		t.Errorf("Expected daily cost in output:\n%s", output)
	}

	// Export round trip
	exportPath := filepath.Join(tmpDir, "backup.json")
	if output, err = run("export", "json", "--output", exportPath); err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Fatalf("Export file missing: %v", err)
	}
}

// findLine returns the first output line containing the substring.
func findLine(output, substr string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, substr) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// firstField returns the first whitespace-separated field of a line.
func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
