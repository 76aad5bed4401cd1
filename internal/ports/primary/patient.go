package primary

import (
	"context"

	"github.com/example/cardioplan/internal/models"
)

// PatientService defines the primary port for patient listing reads used by
// the CLI chooser.
type PatientService interface {
	// ListPatients retrieves all patients ordered by surname.
	ListPatients(ctx context.Context) ([]*models.Patient, error)

	// GetPatient retrieves a patient by ID. found is false when absent.
	GetPatient(ctx context.Context, patientID int64) (patient *models.Patient, found bool, err error)
}
