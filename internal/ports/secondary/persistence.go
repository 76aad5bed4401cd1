// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems: the embedded clinical store and the optimizer process.
package secondary

import (
	"context"

	"github.com/example/cardioplan/internal/models"
)

// LookupOutcome discriminates the three-way result of a second-stage lookup.
type LookupOutcome int

const (
	// LookupNotFound means no patient with the given ID exists.
	LookupNotFound LookupOutcome = iota
	// LookupFound means the patient exists and has a post-condition record.
	LookupFound
	// LookupNoSubRecord means the patient exists but has no post-condition
	// record. Kept distinct from LookupNotFound so the operator message can
	// name the patient.
	LookupNoSubRecord
)

// SecondStageLookup is the result of looking up second-stage data.
// Record is set only for LookupFound; Patient only for LookupNoSubRecord.
type SecondStageLookup struct {
	Outcome LookupOutcome
	Record  *models.SecondStageRecord
	Patient *models.Patient
}

// PatientDataPort defines the secondary port for stage-specific clinical
// data reads. Read-only and uncached; every call reflects current store
// state.
type PatientDataPort interface {
	// FirstStage retrieves first-stage clinical data for a patient.
	// found is false when no such patient exists.
	FirstStage(ctx context.Context, patientID int64) (record *models.FirstStageRecord, found bool, err error)

	// SecondStage retrieves second-stage post-condition data for a patient,
	// distinguishing "no such patient" from "patient exists but has no
	// post-condition record".
	SecondStage(ctx context.Context, patientID int64) (SecondStageLookup, error)
}

// PatientRepository defines the secondary port for patient listing reads
// used by the CLI chooser.
type PatientRepository interface {
	// List retrieves all patients ordered by surname.
	List(ctx context.Context) ([]*models.Patient, error)

	// GetByID retrieves a patient by ID. found is false when absent.
	GetByID(ctx context.Context, patientID int64) (patient *models.Patient, found bool, err error)
}

// TreatmentRecordRepository defines the secondary port for persisting
// accepted treatment strategies.
type TreatmentRecordRepository interface {
	// Append persists an accepted strategy as a single atomic write.
	// The record's Values must be exactly models.TreatmentValuesCount long;
	// a mismatch is a caller programming error and is rejected with an
	// error, never silently truncated.
	Append(ctx context.Context, record *models.TreatmentRecord) error

	// ListByPatient retrieves persisted strategies for a patient and stage,
	// newest first.
	ListByPatient(ctx context.Context, patientID int64, stage models.Stage) ([]*models.TreatmentRecord, error)
}
