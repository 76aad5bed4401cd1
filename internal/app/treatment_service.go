package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/cardioplan/internal/core/encoding"
	"github.com/example/cardioplan/internal/models"
	"github.com/example/cardioplan/internal/ports/primary"
	"github.com/example/cardioplan/internal/ports/secondary"
)

// TreatmentServiceImpl implements the TreatmentService interface. It owns the
// fetch→encode→invoke→interpret pipeline and maps every failure mode to one
// outcome kind. The service is stateless: nothing is cached or retried
// between calls.
type TreatmentServiceImpl struct {
	patientData secondary.PatientDataPort
	optimizer   secondary.OptimizerGateway
	records     secondary.TreatmentRecordRepository
	logger      *zap.Logger
}

// NewTreatmentService creates a new TreatmentService with injected
// dependencies.
func NewTreatmentService(
	patientData secondary.PatientDataPort,
	optimizer secondary.OptimizerGateway,
	records secondary.TreatmentRecordRepository,
	logger *zap.Logger,
) *TreatmentServiceImpl {
	return &TreatmentServiceImpl{
		patientData: patientData,
		optimizer:   optimizer,
		records:     records,
		logger:      logger,
	}
}

// Calculate runs one treatment calculation for the patient and stage.
func (s *TreatmentServiceImpl) Calculate(ctx context.Context, patientID int64, stage models.Stage) *primary.TreatmentOutcome {
	if !stage.Valid() {
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeCalculationFailed,
			Message: fmt.Sprintf("unknown stage %q", stage),
		}
	}

	vector, outcome := s.assembleVector(ctx, patientID, stage)
	if outcome != nil {
		return outcome
	}

	run, err := s.optimizer.Invoke(ctx, stage, vector)
	if err != nil {
		// Pre-process fault; the operator gets the generic kind, the
		// detail goes to the log.
		s.logger.Error("optimizer invocation failed before process start",
			zap.Int64("patient_id", patientID),
			zap.String("stage", string(stage)),
			zap.Error(err))
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeCalculationFailed,
			Message: "treatment calculation failed",
		}
	}

	return s.interpretRun(patientID, stage, run)
}

// assembleVector fetches the stage's clinical data and encodes it into the
// optimizer input vector. A non-nil outcome means the pipeline terminated
// before the process boundary.
func (s *TreatmentServiceImpl) assembleVector(ctx context.Context, patientID int64, stage models.Stage) ([]float64, *primary.TreatmentOutcome) {
	switch stage {
	case models.StageFirst:
		record, found, err := s.patientData.FirstStage(ctx, patientID)
		if err != nil {
			return nil, s.storeFailure(patientID, stage, err)
		}
		if !found {
			return nil, &primary.TreatmentOutcome{
				Kind:    primary.OutcomePatientNotFound,
				Message: fmt.Sprintf("patient %d not found", patientID),
			}
		}
		return s.encodeVector(patientID, stage, func() ([]float64, error) {
			return encoding.EncodeFirstStage(record)
		})

	case models.StageSecond:
		lookup, err := s.patientData.SecondStage(ctx, patientID)
		if err != nil {
			return nil, s.storeFailure(patientID, stage, err)
		}
		switch lookup.Outcome {
		case secondary.LookupNotFound:
			return nil, &primary.TreatmentOutcome{
				Kind:    primary.OutcomePatientNotFound,
				Message: fmt.Sprintf("patient %d not found", patientID),
			}
		case secondary.LookupNoSubRecord:
			// The message names the patient so the operator knows whose
			// post-operative data is missing.
			return nil, &primary.TreatmentOutcome{
				Kind: primary.OutcomeNoSubRecordData,
				Message: fmt.Sprintf("no post-operative condition data for patient %s",
					lookup.Patient.FullName()),
			}
		}
		return s.encodeVector(patientID, stage, func() ([]float64, error) {
			return encoding.EncodeSecondStage(lookup.Record)
		})

	default:
		return nil, &primary.TreatmentOutcome{
			Kind:    primary.OutcomeCalculationFailed,
			Message: fmt.Sprintf("unknown stage %q", stage),
		}
	}
}

// encodeVector runs the stage encoder and maps field-level failures to the
// invalid-clinical-data outcome.
func (s *TreatmentServiceImpl) encodeVector(patientID int64, stage models.Stage, encode func() ([]float64, error)) ([]float64, *primary.TreatmentOutcome) {
	vector, err := encode()
	if err != nil {
		var fieldErr *encoding.FieldError
		if errors.As(err, &fieldErr) {
			s.logger.Warn("clinical data failed encoding",
				zap.Int64("patient_id", patientID),
				zap.String("stage", string(stage)),
				zap.String("field", fieldErr.Field),
				zap.Error(err))
			return nil, &primary.TreatmentOutcome{
				Kind:    primary.OutcomeInvalidClinicalData,
				Message: fmt.Sprintf("invalid clinical data: %s", err),
			}
		}
		return nil, s.storeFailure(patientID, stage, err)
	}
	return vector, nil
}

// interpretRun maps the gateway's run status onto the outcome taxonomy.
func (s *TreatmentServiceImpl) interpretRun(patientID int64, stage models.Stage, run *secondary.OptimizerRun) *primary.TreatmentOutcome {
	switch run.Status {
	case secondary.RunOK:
		if len(run.Treatments) == 0 {
			// A clean exit with zero candidates gives the operator nothing
			// to act on; report it as a failed calculation.
			s.logger.Warn("optimizer returned no candidates",
				zap.Int64("patient_id", patientID),
				zap.String("stage", string(stage)))
			return &primary.TreatmentOutcome{
				Kind:    primary.OutcomeCalculationFailed,
				Message: "optimizer returned no candidate strategies",
			}
		}
		return &primary.TreatmentOutcome{
			Kind:          primary.OutcomeSuccess,
			Treatments:    run.Treatments,
			Complications: run.Complications,
		}
	case secondary.RunProcessNotFound, secondary.RunNonZeroExit:
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeScriptFailed,
			Message: run.Message,
		}
	case secondary.RunTimeout:
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeTimeout,
			Message: run.Message,
		}
	case secondary.RunCancelled:
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeCancelled,
			Message: run.Message,
		}
	case secondary.RunMalformed:
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeMalformedResponse,
			Message: run.Message,
		}
	default:
		return &primary.TreatmentOutcome{
			Kind:    primary.OutcomeCalculationFailed,
			Message: "treatment calculation failed",
		}
	}
}

// storeFailure logs the store-level detail and returns the generic failure
// outcome. Internal fault detail never reaches the operator surface.
func (s *TreatmentServiceImpl) storeFailure(patientID int64, stage models.Stage, err error) *primary.TreatmentOutcome {
	s.logger.Error("clinical store read failed",
		zap.Int64("patient_id", patientID),
		zap.String("stage", string(stage)),
		zap.Error(err))
	return &primary.TreatmentOutcome{
		Kind:    primary.OutcomeCalculationFailed,
		Message: "treatment calculation failed",
	}
}

// SaveTreatment persists an explicitly selected candidate strategy.
func (s *TreatmentServiceImpl) SaveTreatment(ctx context.Context, patientID int64, stage models.Stage, values []float64) (*models.TreatmentRecord, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
	if len(values) != models.TreatmentValuesCount {
		return nil, fmt.Errorf("treatment strategy has %d values, want %d",
			len(values), models.TreatmentValuesCount)
	}

	record := &models.TreatmentRecord{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Stage:     stage,
		Values:    values,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.records.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save treatment strategy: %w", err)
	}

	s.logger.Info("treatment strategy saved",
		zap.String("record_id", record.ID),
		zap.Int64("patient_id", patientID),
		zap.String("stage", string(stage)))
	return record, nil
}

// ListTreatments retrieves previously persisted strategies for a patient and
// stage, newest first.
func (s *TreatmentServiceImpl) ListTreatments(ctx context.Context, patientID int64, stage models.Stage) ([]*models.TreatmentRecord, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
	records, err := s.records.ListByPatient(ctx, patientID, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment strategies: %w", err)
	}
	return records, nil
}

// Ensure TreatmentServiceImpl implements the interface
var _ primary.TreatmentService = (*TreatmentServiceImpl)(nil)
