package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/cardioplan/internal/models"
	"github.com/example/cardioplan/internal/ports/primary"
	"github.com/example/cardioplan/internal/wire"
)

// TreatmentCmd returns the treatment command
func TreatmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treatment",
		Short: "Calculate and review treatment strategies",
		Long: `Run the optimizer over a patient's clinical data and review
previously accepted treatment strategies.`,
	}

	cmd.AddCommand(treatmentCalculateCmd())
	cmd.AddCommand(treatmentHistoryCmd())

	return cmd
}

func treatmentCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [patient-id]",
		Short: "Calculate candidate treatment strategies for a patient",
		Long: `Calculate candidate treatment strategies for a patient at the
given stage. Candidates are only displayed; pass --save to persist one of
them by its number.

Examples:
  cardioplan treatment calculate 1
  cardioplan treatment calculate 1 --stage second
  cardioplan treatment calculate 1 --stage second --save 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Ctrl-C aborts the run; the optimizer process is killed and the
			// outcome reported as cancelled.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			patientID, err := parsePatientID(args[0])
			if err != nil {
				return err
			}
			stage, err := parseStage(cmd)
			if err != nil {
				return err
			}
			saveIndex, _ := cmd.Flags().GetInt("save")

			// The pipeline runs on its own worker goroutine; the command
			// goroutine stays free to react to signal-driven cancellation.
			var outcome *primary.TreatmentOutcome
			grp, runCtx := errgroup.WithContext(ctx)
			grp.Go(func() error {
				outcome = wire.TreatmentService().Calculate(runCtx, patientID, stage)
				return nil
			})
			if err := grp.Wait(); err != nil {
				return err
			}

			if !outcome.Success() {
				return fmt.Errorf("%s: %s",
					color.New(color.FgRed).Sprint(string(outcome.Kind)), outcome.Message)
			}

			printCandidates(stage, outcome)

			if saveIndex == 0 {
				return nil
			}
			if saveIndex < 1 || saveIndex > len(outcome.Treatments) {
				return fmt.Errorf("candidate %d does not exist (got %d candidates)",
					saveIndex, len(outcome.Treatments))
			}

			record, err := wire.TreatmentService().SaveTreatment(ctx, patientID, stage,
				outcome.Treatments[saveIndex-1])
			if err != nil {
				return fmt.Errorf("failed to save strategy: %w", err)
			}
			fmt.Printf("\n✓ Saved candidate %d as record %s\n", saveIndex, record.ID)
			return nil
		},
	}

	cmd.Flags().StringP("stage", "s", string(models.StageFirst), "Treatment stage (first or second)")
	cmd.Flags().Int("save", 0, "Persist the Nth candidate after calculation (1-based)")

	return cmd
}

func treatmentHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [patient-id]",
		Short: "Show previously saved treatment strategies",
		Long: `Show previously saved treatment strategies for a patient, newest
first. Without --stage, both stages are shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			patientID, err := parsePatientID(args[0])
			if err != nil {
				return err
			}

			stages := []models.Stage{models.StageFirst, models.StageSecond}
			if cmd.Flags().Changed("stage") {
				stage, err := parseStage(cmd)
				if err != nil {
					return err
				}
				stages = []models.Stage{stage}
			}

			// Stage histories are independent reads; fetch them in parallel.
			records := make([][]*models.TreatmentRecord, len(stages))
			grp, grpCtx := errgroup.WithContext(ctx)
			for i, stage := range stages {
				grp.Go(func() error {
					recs, err := wire.TreatmentService().ListTreatments(grpCtx, patientID, stage)
					if err != nil {
						return err
					}
					records[i] = recs
					return nil
				})
			}
			if err := grp.Wait(); err != nil {
				return fmt.Errorf("failed to list strategies: %w", err)
			}

			empty := true
			for i, stage := range stages {
				if len(records[i]) == 0 {
					continue
				}
				empty = false
				fmt.Printf("%s stage:\n", strings.ToUpper(string(stage)[:1])+string(stage)[1:])
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "SAVED\tID\tVALUES")
				for _, rec := range records[i] {
					fmt.Fprintf(w, "%s\t%s\t%s\n",
						rec.CreatedAt.Format("2006-01-02 15:04"), rec.ID, formatValues(rec.Values))
				}
				w.Flush()
				fmt.Println()
			}
			if empty {
				fmt.Println("No saved strategies for this patient.")
			}
			return nil
		},
	}

	cmd.Flags().StringP("stage", "s", string(models.StageFirst), "Treatment stage (first or second)")

	return cmd
}

func parseStage(cmd *cobra.Command) (models.Stage, error) {
	value, _ := cmd.Flags().GetString("stage")
	stage := models.Stage(value)
	if !stage.Valid() {
		return "", fmt.Errorf("invalid stage %q (want %q or %q)", value, models.StageFirst, models.StageSecond)
	}
	return stage, nil
}

func printCandidates(stage models.Stage, outcome *primary.TreatmentOutcome) {
	fmt.Printf("Candidate strategies (%s stage):\n\n", stage)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tVALUES\tCOMPLICATION FORECAST")
	for i, values := range outcome.Treatments {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, formatValues(values),
			complicationText(outcome.Complications[i]))
	}
	w.Flush()
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', 4, 64)
	}
	return strings.Join(parts, " ")
}

func complicationText(code int) string {
	switch code {
	case models.ComplicationAbsent:
		return color.New(color.FgGreen).Sprint("not expected")
	case models.ComplicationPresent:
		return color.New(color.FgRed).Sprint("expected")
	default:
		return color.New(color.FgYellow).Sprintf("unknown code %d", code)
	}
}
