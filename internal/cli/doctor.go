package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/cardioplan/internal/config"
	"github.com/example/cardioplan/internal/models"
	"github.com/example/cardioplan/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the cardioplan environment",
		Long: `Environment health check for cardioplan.

Validates:
- Clinical store path and schema
- Optimizer interpreter on PATH
- Stage optimizer scripts

Examples:
  cardioplan doctor          # Run full health check
  cardioplan doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()

			results := []CheckResult{
				checkStore(cfg),
				checkInterpreter(cfg),
				checkScripts(cfg),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Exit code only, no output")

	return cmd
}

// checkStore verifies the clinical store opened and holds patients.
func checkStore(cfg *config.Config) CheckResult {
	var count int
	if err := wire.Database().QueryRow("SELECT COUNT(*) FROM patients").Scan(&count); err != nil {
		return CheckResult{
			Name:    "Clinical store",
			Status:  "✗",
			Details: fmt.Sprintf("cannot query %s: %v", cfg.Store.Path, err),
		}
	}
	if count == 0 {
		return CheckResult{
			Name:    "Clinical store",
			Status:  "⚠",
			Details: "store is empty; run `cardioplan seed` to load the sample dataset",
		}
	}
	return CheckResult{Name: "Clinical store", Status: "✓"}
}

// checkInterpreter verifies the optimizer interpreter resolves.
func checkInterpreter(cfg *config.Config) CheckResult {
	if _, err := exec.LookPath(cfg.Optimizer.Python); err != nil {
		return CheckResult{
			Name:    "Interpreter",
			Status:  "✗",
			Details: fmt.Sprintf("%s not found on PATH", cfg.Optimizer.Python),
		}
	}
	return CheckResult{Name: "Interpreter", Status: "✓"}
}

// checkScripts verifies both stage scripts exist in the scripts directory.
func checkScripts(cfg *config.Config) CheckResult {
	var missing []string
	for _, stage := range []models.Stage{models.StageFirst, models.StageSecond} {
		script := filepath.Join(cfg.Optimizer.ScriptsDir, stage.ScriptName())
		if _, err := os.Stat(script); err != nil {
			missing = append(missing, script)
		}
	}
	if len(missing) > 0 {
		details := "missing optimizer scripts:"
		for _, m := range missing {
			details += "\n  " + m
		}
		return CheckResult{Name: "Optimizer scripts", Status: "✗", Details: details}
	}
	return CheckResult{Name: "Optimizer scripts", Status: "✓"}
}
