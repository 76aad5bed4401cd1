package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/cardioplan/internal/models"
)

// mockPatientRepo implements secondary.PatientRepository.
type mockPatientRepo struct {
	patients []*models.Patient
	listErr  error
	patient  *models.Patient
	found    bool
	getErr   error
}

func (m *mockPatientRepo) List(ctx context.Context) ([]*models.Patient, error) {
	return m.patients, m.listErr
}

func (m *mockPatientRepo) GetByID(ctx context.Context, patientID int64) (*models.Patient, bool, error) {
	return m.patient, m.found, m.getErr
}

func TestPatientService_ListPatients(t *testing.T) {
	repo := &mockPatientRepo{patients: []*models.Patient{
		{ID: 1, Surname: "Іванов"},
		{ID: 2, Surname: "Петренко"},
	}}
	svc := NewPatientService(repo)

	patients, err := svc.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients failed: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(patients))
	}
}

func TestPatientService_ListPatients_Error(t *testing.T) {
	svc := NewPatientService(&mockPatientRepo{listErr: errors.New("read failed")})

	if _, err := svc.ListPatients(context.Background()); err == nil {
		t.Fatal("expected error from repository to propagate")
	}
}

func TestPatientService_GetPatient(t *testing.T) {
	repo := &mockPatientRepo{patient: &models.Patient{ID: 7, Surname: "Іванов"}, found: true}
	svc := NewPatientService(repo)

	patient, found, err := svc.GetPatient(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetPatient failed: %v", err)
	}
	if !found || patient.ID != 7 {
		t.Errorf("unexpected result: found=%v patient=%+v", found, patient)
	}
}

func TestPatientService_GetPatient_NotFound(t *testing.T) {
	svc := NewPatientService(&mockPatientRepo{found: false})

	_, found, err := svc.GetPatient(context.Background(), 99)
	if err != nil {
		t.Fatalf("GetPatient failed: %v", err)
	}
	if found {
		t.Error("expected patient to be absent")
	}
}
