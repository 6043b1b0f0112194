// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies all records to the target backend and updates config.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --to <backend>",
	Short: "Migrate data to a different storage backend",
	Long: `Migrate all pets, foods, meals, and meal items to a different
storage backend.

BACKENDS:

  sqlite    A single petfeed.db database (the default)
  markdown  One markdown file per record, with YAML frontmatter

Both backends live in the same data directory, so migration never
moves the directory itself. After a successful migration the config
is updated to use the new backend. The old backend's files are left
in place; delete them yourself once you've verified the migration.

EXAMPLES:

  petfeed migrate --to markdown --dry-run
  petfeed migrate --to markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch migrateTo {
		case "sqlite", "markdown":
		case "":
			return fmt.Errorf("--to is required (sqlite or markdown)")
		default:
			return fmt.Errorf("unknown backend: %q (expected sqlite or markdown)", migrateTo)
		}

		current := cfg.GetBackend()
		if migrateTo == current {
			return fmt.Errorf("already using the %s backend", current)
		}

		if migrateDryRun {
			data, err := repo.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read data: %w", err)
			}
			fmt.Printf("Would migrate %s → %s:\n", current, migrateTo)
			fmt.Printf("  Pets: %d\n", len(data.Pets))
			fmt.Printf("  Foods: %d\n", len(data.Foods))
			fmt.Printf("  Meals: %d\n", len(data.Meals))
			fmt.Printf("  Meal items: %d\n", len(data.MealItems))
			return nil
		}

		dataDir := cfg.GetDataDir()
		dst, err := openMigrationTarget(migrateTo, dataDir)
		if err != nil {
			return err
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		cfg.Backend = migrateTo
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("migrated, but failed to update config: %w", err)
		}

		color.Green("✓ Migrated %s → %s", current, migrateTo)
		fmt.Printf("  Pets: %d  Foods: %d  Meals: %d  Items: %d\n",
			summary.Pets, summary.Foods, summary.Meals, summary.MealItems)
		fmt.Printf("\nThe %s backend's files in %s are untouched;\ndelete them once you've verified the migration.\n", current, dataDir)
		return nil
	},
}

// openMigrationTarget opens the destination backend, refusing to write
// into one that already holds data.
func openMigrationTarget(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case "sqlite":
		dbPath := filepath.Join(dataDir, "petfeed.db")
		if _, err := os.Stat(dbPath); err == nil {
			return nil, fmt.Errorf("%s already exists; move it aside before migrating", dbPath)
		}
		return storage.Open(dbPath)
	case "markdown":
		for _, sub := range []string{"pets", "foods", "meals"} {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dataDir, sub))
			if err != nil {
				return nil, err
			}
			if nonEmpty {
				return nil, fmt.Errorf("%s already holds markdown data; move it aside before migrating", filepath.Join(dataDir, sub))
			}
		}
		return storage.NewMarkdownStore(dataDir)
	}
	return nil, fmt.Errorf("unknown backend: %q", backend)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite or markdown)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "show what would be migrated without writing")
	rootCmd.AddCommand(migrateCmd)
}
