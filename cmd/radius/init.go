package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"radius/internal/config"
	raderr "radius/internal/errors"
	"radius/internal/logging"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize radius configuration",
	Long:  "Creates a .radius/ directory with default configuration in the current repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .radius directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	cwd, err := os.Getwd()
	if err != nil {
		return raderr.New(raderr.InternalError, "Failed to get current directory", err)
	}

	radiusDir := filepath.Join(cwd, ".radius")
	if _, statErr := os.Stat(radiusDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("radius already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(radiusDir, "config.json"))
			fmt.Println("\nRun 'radius init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(radiusDir); removeErr != nil {
			return raderr.New(raderr.InternalError, "Failed to remove existing .radius directory", removeErr)
		}
		logger.Info("Removed existing .radius directory", nil)
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = "."
	if err := cfg.Save(cwd); err != nil {
		return raderr.New(raderr.InternalError, "Failed to write config file", err)
	}

	fmt.Println("Initialized radius.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(radiusDir, "config.json"))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Describe your components in COMPONENTS.toml (or point the config at a SCIP index)")
	fmt.Println("  2. Write a change specification (change.yaml)")
	fmt.Println("  3. Run 'radius analyze change.yaml'")
	return nil
}
