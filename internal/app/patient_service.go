package app

import (
	"context"
	"fmt"

	"github.com/example/cardioplan/internal/models"
	"github.com/example/cardioplan/internal/ports/primary"
	"github.com/example/cardioplan/internal/ports/secondary"
)

// PatientServiceImpl implements the PatientService interface.
type PatientServiceImpl struct {
	patients secondary.PatientRepository
}

// NewPatientService creates a new PatientService with injected dependencies.
func NewPatientService(patients secondary.PatientRepository) *PatientServiceImpl {
	return &PatientServiceImpl{
		patients: patients,
	}
}

// ListPatients retrieves all patients ordered by surname.
func (s *PatientServiceImpl) ListPatients(ctx context.Context) ([]*models.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// GetPatient retrieves a patient by ID.
func (s *PatientServiceImpl) GetPatient(ctx context.Context, patientID int64) (*models.Patient, bool, error) {
	return s.patients.GetByID(ctx, patientID)
}

// Ensure PatientServiceImpl implements the interface
var _ primary.PatientService = (*PatientServiceImpl)(nil)
