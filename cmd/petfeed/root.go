// ABOUTME: Root Cobra command for petfeed CLI.
// ABOUTME: Handles config loading and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/feedingfriend/petfeed/internal/config"
	"github.com/feedingfriend/petfeed/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "petfeed",
	Short: "Pet nutrition and feeding plan calculator",
	Long: `Petfeed is a CLI tool for planning what, and how much, to feed your pets.

WHAT IT DOES:

  Energy      Daily calorie targets (RER/MER) from weight, activity,
              life stage, environment, body condition, and health
  Foods       A food database with calorie density and package pricing
  Meals       Daily meal plans with automatic portion redistribution
  Costs       Daily/weekly/monthly feeding cost estimates

QUICK START:

  $ petfeed pet add Biscuit dog --weight 22          # Add a pet
  $ petfeed calc Biscuit --save                      # Calculate calories
  $ petfeed food add Acme "Chicken & Rice" dry 380 cup
  $ petfeed meal plan Biscuit                        # Split into meals
  $ petfeed meal add-food <meal> <food>              # Assign a food
  $ petfeed plan Biscuit                             # Full feeding plan
  $ petfeed cost Biscuit                             # What it costs

SYNC:

  Sync pet data across devices using Charm Cloud.
  Data is E2E encrypted with your SSH key.

  $ petfeed sync link      # Link device to your Charm account
  $ petfeed sync push      # Push local data to the cloud
  $ petfeed sync pull      # Pull missing records from the cloud

MCP INTEGRATION:

  Run 'petfeed mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "petfeed": { "command": "petfeed", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in ~/.local/share/petfeed (SQLite by default, or one markdown
  file per record with backend "markdown"). Configure the backend and data
  directory in ~/.config/petfeed/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
