package cli

import (
	"fmt"
	"os"

	"github.com/deckhq/deck/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize deck in the current directory",
	Long:  "Creates a .deck/ directory with default config and database.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if already initialized.
	if _, err := os.Stat(deckDirName); err == nil {
		return fmt.Errorf("deck already initialized in this directory (.deck/ exists)")
	}

	if err := os.MkdirAll(deckDirName, 0755); err != nil {
		return fmt.Errorf("create .deck: %w", err)
	}

	// Write default config.
	cfg := config.DefaultConfig()
	if err := config.Save(deckPath("config.yaml"), cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Create database by opening the store (migration runs automatically).
	st, err := openStore(deckPath("deck.db"))
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	st.Close()

	fmt.Println("Initialized deck in .deck/")
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit .deck/config.yaml to add your agents")
	fmt.Println("  2. Run: deck chat \"describe what you want to build\"")
	fmt.Println("  3. Run: deck extract")
	fmt.Println("  4. Run: deck board")

	return nil
}
