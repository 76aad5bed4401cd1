// Package sqlite contains SQLite implementations of the secondary ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/cardioplan/internal/models"
	"github.com/example/cardioplan/internal/ports/secondary"
)

// PatientRepository implements secondary.PatientDataPort and
// secondary.PatientRepository with SQLite.
type PatientRepository struct {
	db *sql.DB
}

// NewPatientRepository creates a new SQLite patient repository.
func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

const patientColumns = "patient_id, surname, firstname, middlename, sex, date_of_birth"

// List retrieves all patients ordered by surname.
func (r *PatientRepository) List(ctx context.Context) ([]*models.Patient, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+patientColumns+" FROM patients ORDER BY surname, firstname")
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []*models.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}
	return patients, nil
}

// GetByID retrieves a patient by ID.
func (r *PatientRepository) GetByID(ctx context.Context, patientID int64) (*models.Patient, bool, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+patientColumns+" FROM patients WHERE patient_id = ?", patientID)

	patient, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, true, nil
}

// FirstStage retrieves first-stage clinical data for a patient. A NULL
// numeric indicator column is reported as a store error: the record is
// incomplete in a way the operator cannot fix through the pipeline.
// Categorical columns pass through as stored; the encoder validates them.
func (r *PatientRepository) FirstStage(ctx context.Context, patientID int64) (*models.FirstStageRecord, bool, error) {
	var (
		surname, firstname, middlename, sex, dateOfBirth sql.NullString
		numerics                                         [9]sql.NullFloat64
		x110, x111, x112                                 sql.NullString
	)

	row := r.db.QueryRowContext(ctx,
		`SELECT surname, firstname, middlename, sex, date_of_birth,
			x101, x102, x103, x104, x105, x106, x107, x108, x109,
			x110, x111, x112
		FROM patients WHERE patient_id = ?`, patientID)

	err := row.Scan(
		&surname, &firstname, &middlename, &sex, &dateOfBirth,
		&numerics[0], &numerics[1], &numerics[2], &numerics[3], &numerics[4],
		&numerics[5], &numerics[6], &numerics[7], &numerics[8],
		&x110, &x111, &x112,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get first-stage data: %w", err)
	}

	numericColumns := []string{"x101", "x102", "x103", "x104", "x105", "x106", "x107", "x108", "x109"}
	for i, col := range numericColumns {
		if !numerics[i].Valid {
			return nil, false, fmt.Errorf("column %s is NULL for patient %d", col, patientID)
		}
	}

	record := &models.FirstStageRecord{
		Patient: &models.Patient{
			ID:          patientID,
			Surname:     surname.String,
			Firstname:   firstname.String,
			Middlename:  middlename.String,
			Sex:         sex.String,
			DateOfBirth: dateOfBirth.String,
		},
		X101: numerics[0].Float64, X102: numerics[1].Float64, X103: numerics[2].Float64,
		X104: numerics[3].Float64, X105: numerics[4].Float64, X106: numerics[5].Float64,
		X107: numerics[6].Float64, X108: numerics[7].Float64, X109: numerics[8].Float64,
		X110: x110.String, X111: x111.String, X112: x112.String,
	}
	return record, true, nil
}

// SecondStage retrieves second-stage post-condition data for a patient.
// A LEFT JOIN against patient_conditions distinguishes a missing patient
// from a patient without a condition record: the probe column pe is NULL
// exactly when no condition row exists.
func (r *PatientRepository) SecondStage(ctx context.Context, patientID int64) (secondary.SecondStageLookup, error) {
	var (
		surname, firstname, middlename, sex, dateOfBirth sql.NullString
		pe, vab, pEarly, plicat, stroke                  sql.NullString
		thrombosis, chyle, avb, snd                      sql.NullString
	)

	row := r.db.QueryRowContext(ctx,
		`SELECT p.surname, p.firstname, p.middlename, p.sex, p.date_of_birth,
			c.pe, c.vab, c.p_early, c.plicat, c.stroke,
			c.thrombosis, c.chyle, c.avb, c.snd
		FROM patients p
		LEFT JOIN patient_conditions c ON p.patient_id = c.patient_id
		WHERE p.patient_id = ?`, patientID)

	err := row.Scan(
		&surname, &firstname, &middlename, &sex, &dateOfBirth,
		&pe, &vab, &pEarly, &plicat, &stroke,
		&thrombosis, &chyle, &avb, &snd,
	)
	if err == sql.ErrNoRows {
		return secondary.SecondStageLookup{Outcome: secondary.LookupNotFound}, nil
	}
	if err != nil {
		return secondary.SecondStageLookup{}, fmt.Errorf("failed to get second-stage data: %w", err)
	}

	patient := &models.Patient{
		ID:          patientID,
		Surname:     surname.String,
		Firstname:   firstname.String,
		Middlename:  middlename.String,
		Sex:         sex.String,
		DateOfBirth: dateOfBirth.String,
	}

	if !pe.Valid {
		return secondary.SecondStageLookup{
			Outcome: secondary.LookupNoSubRecord,
			Patient: patient,
		}, nil
	}

	return secondary.SecondStageLookup{
		Outcome: secondary.LookupFound,
		Record: &models.SecondStageRecord{
			Patient:    patient,
			PE:         pe.String,
			VAB:        vab.String,
			PEarly:     pEarly.String,
			Plicat:     plicat.String,
			Stroke:     stroke.String,
			Thrombosis: thrombosis.String,
			Chyle:      chyle.String,
			AVB:        avb.String,
			SND:        snd.String,
		},
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*models.Patient, error) {
	var (
		id                           int64
		surname, firstname           string
		middlename, sex, dateOfBirth sql.NullString
	)
	if err := row.Scan(&id, &surname, &firstname, &middlename, &sex, &dateOfBirth); err != nil {
		return nil, err
	}
	return &models.Patient{
		ID:          id,
		Surname:     surname,
		Firstname:   firstname,
		Middlename:  middlename.String,
		Sex:         sex.String,
		DateOfBirth: dateOfBirth.String,
	}, nil
}
