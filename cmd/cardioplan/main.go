package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/cardioplan/internal/cli"
	"github.com/example/cardioplan/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cardioplan",
		Short:   "cardioplan - treatment strategy calculator for congenital heart defects",
		Version: version.String(),
		Long: `cardioplan calculates candidate treatment strategies for patients with
congenital heart defects by running stage-specific optimizer models over
their clinical data.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.PatientCmd())
	rootCmd.AddCommand(cli.TreatmentCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
