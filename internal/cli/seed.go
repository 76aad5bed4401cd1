package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cardioplan/internal/db"
	"github.com/example/cardioplan/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample dataset",
		Long: `Load a small sample dataset into the clinical store for first runs
and demos. Does nothing if patients already exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Seed(wire.Database()); err != nil {
				return fmt.Errorf("failed to seed store: %w", err)
			}
			fmt.Println("✓ Sample dataset loaded")
			return nil
		},
	}
}
