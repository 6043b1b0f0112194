// ABOUTME: CLI commands for exporting and importing pet data.
// ABOUTME: Supports JSON, YAML, and markdown output plus JSON import.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:       "export <format>",
	Short:     "Export all data (json, yaml, or markdown)",
	ValidArgs: []string{"json", "yaml", "markdown"},
	Long: `Export all pets, foods, meals, and meal items.

FORMATS:

  json      Machine-readable, round-trips through 'petfeed import'
  yaml      Human-readable structured dump
  markdown  A readable summary document

EXAMPLES:

  petfeed export json --output backup.json
  petfeed export markdown`,
	Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read data: %w", err)
		}

		var out []byte
		switch args[0] {
		case "json":
			out, err = storage.ExportJSON(data)
		case "yaml":
			out, err = storage.ExportYAML(data)
		case "markdown":
			out = []byte(storage.ExportMarkdown(data))
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			color.Green("✓ Exported %d pets, %d foods to %s", len(data.Pets), len(data.Foods), exportOutput)
			return nil
		}

		fmt.Print(string(out))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON export",
	Long: `Import pets, foods, meals, and meal items from a JSON export.

Records are inserted as-is; importing into a store that already holds
a record with the same ID fails. Import into a fresh data directory.

EXAMPLES:

  petfeed import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if err := storage.ImportJSON(repo, data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		color.Green("✓ Imported data from %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
