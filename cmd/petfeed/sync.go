// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, push, pull, repair, reset, and wipe.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/charm"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync pet data across devices",
	Long: `Sync pet data across devices using Charm Cloud.

Your data is E2E encrypted with your SSH key before upload.
The server never sees your unencrypted data.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     petfeed sync link

  2. On other devices, link with the same Charm account:
     petfeed sync link

  3. Push your local data, then pull on other devices:
     petfeed sync push
     petfeed sync pull

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  push        Push local pets, foods, and meals to the cloud
  pull        Pull cloud records missing locally
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset cloud cache and re-fetch (destructive)
  wipe        Delete cloud and local sync data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.
If you already have an account, you'll be prompted to link via charm.sh.

Example:
  petfeed sync link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Run 'petfeed sync push' to upload your data.")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local pet data.
You can link again later with 'petfeed sync link'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "unlink")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}

		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local pet data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Long: `Show current sync status including:
- Charm account info
- Connection status
- Cloud record counts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'petfeed sync link' to connect to Charm.")
			return nil
		}

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'petfeed sync link' to connect to Charm.")
			return nil
		}

		fmt.Println("Charm ID:", id)
		fmt.Println("Server: charm.2389.dev")
		fmt.Println()

		pets, _ := client.ListPets()
		foods, _ := client.ListFoods()
		meals, _ := client.ListMeals()

		color.Green("✓ Connected to Charm")
		fmt.Printf("  Pets in cloud: %d\n", len(pets))
		fmt.Printf("  Foods in cloud: %d\n", len(foods))
		fmt.Printf("  Meals in cloud: %d\n", len(meals))
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push local data to the cloud",
	Long: `Push all local pets, foods, meals, and meal items to Charm Cloud.

Local records overwrite cloud records with the same ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to connect to Charm: %w", err)
		}

		summary, err := client.Push(repo)
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		color.Green("✓ Pushed to Charm Cloud")
		fmt.Printf("  Pets: %d  Foods: %d  Meals: %d  Items: %d\n",
			summary.Pets, summary.Foods, summary.Meals, summary.MealItems)
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull cloud records missing locally",
	Long: `Pull pets, foods, meals, and meal items from Charm Cloud.

Only records missing locally are created. Existing local records win;
pull never overwrites them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to connect to Charm: %w", err)
		}

		summary, err := client.Pull(repo)
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}

		color.Green("✓ Pulled from Charm Cloud")
		fmt.Printf("  Pets: %d  Foods: %d  Meals: %d  Items: %d\n",
			summary.Pets, summary.Foods, summary.Meals, summary.MealItems)
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local sync data",
	Long: `Delete all cloud backups and the local sync cache.

This is a DESTRUCTIVE operation. Cloud data is permanently deleted.
Your primary data store (~/.local/share/petfeed) is not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE all cloud backups and the local sync cache.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe("petfeed")
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Sync data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair sync database corruption",
	Long: `Repair sync database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Use this when you encounter database lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing sync database...")
		result, err := kv.Repair("petfeed", force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the local sync cache and re-fetch from cloud",
	Long: `Delete the local sync cache and restore it from Charm Cloud.

Use this to:
- Fix sync conflicts
- Reset a device to cloud state

Your primary data store is not touched; run 'petfeed sync pull'
afterward to pick up any records you are missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will DELETE the local sync cache and restore from cloud.")
		fmt.Print("Continue? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Canceled.")
			return nil
		}

		if err := kv.Reset("petfeed"); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Sync cache reset and restored from cloud")
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
