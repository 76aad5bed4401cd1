package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/cardioplan/internal/wire"
)

// PatientCmd returns the patient command
func PatientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Browse patients in the clinical store",
		Long:  `List and inspect patients available for treatment calculation.`,
	}

	cmd.AddCommand(patientListCmd())
	cmd.AddCommand(patientShowCmd())

	return cmd
}

func patientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			patients, err := wire.PatientService().ListPatients(ctx)
			if err != nil {
				return fmt.Errorf("failed to list patients: %w", err)
			}

			if len(patients) == 0 {
				fmt.Println("No patients found.")
				fmt.Println()
				fmt.Println("Load the sample dataset:")
				fmt.Println("  cardioplan seed")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSEX\tBORN")
			for _, p := range patients {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.FullName(), p.Sex, p.DateOfBirth)
			}
			return w.Flush()
		},
	}
}

func patientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [patient-id]",
		Short: "Show patient details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			patientID, err := parsePatientID(args[0])
			if err != nil {
				return err
			}

			patient, found, err := wire.PatientService().GetPatient(ctx, patientID)
			if err != nil {
				return fmt.Errorf("failed to get patient: %w", err)
			}
			if !found {
				return fmt.Errorf("patient %d not found", patientID)
			}

			fmt.Printf("Patient: %s (id %d)\n", patient.FullName(), patient.ID)
			fmt.Printf("Sex: %s\n", patient.Sex)
			fmt.Printf("Born: %s\n", patient.DateOfBirth)
			return nil
		},
	}
}

func parsePatientID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid patient id %q", arg)
	}
	return id, nil
}
