package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and local database",
	Long: `Create ~/.planward with a default config and an empty database.

Examples:
  planward init
  planward init --sample`,
	RunE: runInit,
}

var initSample bool

func init() {
	initCmd.Flags().BoolVar(&initSample, "sample", false, "Seed the database with a sample objective and tasks")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if initSample {
		if err := st.Seed(time.Now()); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
		fmt.Println("✓ Initialized with sample data. Try: planward list")
		return nil
	}
	fmt.Println("✓ Initialized. Create an objective with: planward objective add \"Your goal\" --hours 20")
	return nil
}
