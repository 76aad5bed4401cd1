// Package primary defines the primary ports (driving adapters) for the
// application. These are the interfaces through which the CLI drives the
// treatment pipeline.
package primary

import (
	"context"

	"github.com/example/cardioplan/internal/models"
)

// OutcomeKind is the closed set of terminal pipeline outcomes surfaced to
// callers. Every failure mode maps to exactly one kind.
type OutcomeKind string

const (
	// OutcomeSuccess means the optimizer returned at least one candidate.
	OutcomeSuccess OutcomeKind = "SUCCESS"
	// OutcomePatientNotFound means the store has no such patient.
	OutcomePatientNotFound OutcomeKind = "PATIENT_NOT_FOUND"
	// OutcomeNoSubRecordData means the patient exists but lacks the
	// stage's required sub-record.
	OutcomeNoSubRecordData OutcomeKind = "NO_SUBRECORD_DATA"
	// OutcomeInvalidClinicalData means encoding validation or numeric
	// parsing of a clinical field failed.
	OutcomeInvalidClinicalData OutcomeKind = "INVALID_CLINICAL_DATA"
	// OutcomeScriptFailed means the optimizer process exited nonzero or
	// could not be started.
	OutcomeScriptFailed OutcomeKind = "SCRIPT_FAILED"
	// OutcomeTimeout means the optimizer exceeded the wall-clock bound.
	OutcomeTimeout OutcomeKind = "TIMEOUT"
	// OutcomeCancelled means the caller aborted the run before completion.
	OutcomeCancelled OutcomeKind = "CANCELLED"
	// OutcomeMalformedResponse means the optimizer output could not be
	// parsed against the expected schema.
	OutcomeMalformedResponse OutcomeKind = "MALFORMED_RESPONSE"
	// OutcomeCalculationFailed is the catch-all for unexpected internal
	// faults (store I/O errors, zero-candidate responses).
	OutcomeCalculationFailed OutcomeKind = "CALCULATION_FAILED"
)

// TreatmentOutcome is the orchestrator's final result for one pipeline run.
// On success, Treatments holds all candidate strategy vectors (each
// models.TreatmentValuesCount long) and Complications is index-aligned with
// one predicted complication code per candidate. On failure, Message carries
// the minimal human-readable text for the kind.
type TreatmentOutcome struct {
	Kind          OutcomeKind
	Message       string
	Treatments    [][]float64
	Complications []int
}

// Success reports whether the pipeline produced candidate strategies.
func (o *TreatmentOutcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// TreatmentService defines the primary port for the treatment pipeline.
type TreatmentService interface {
	// Calculate runs one fetch→encode→invoke→interpret cycle for the
	// patient and stage. Every failure mode is reported through the
	// outcome's kind; Calculate never retries and retains no state between
	// calls.
	Calculate(ctx context.Context, patientID int64, stage models.Stage) *TreatmentOutcome

	// SaveTreatment persists an explicitly selected candidate strategy.
	// The caller chooses the candidate; nothing is persisted implicitly
	// after Calculate. values must be exactly models.TreatmentValuesCount
	// long; a mismatch is a programming error, returned as error.
	SaveTreatment(ctx context.Context, patientID int64, stage models.Stage, values []float64) (*models.TreatmentRecord, error)

	// ListTreatments retrieves previously persisted strategies for a
	// patient and stage, newest first.
	ListTreatments(ctx context.Context, patientID int64, stage models.Stage) ([]*models.TreatmentRecord, error)
}
