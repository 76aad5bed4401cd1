package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cardioplan/internal/models"
)

// TreatmentRecordRepository implements secondary.TreatmentRecordRepository
// with SQLite. Records are append-only; this repository never updates or
// deletes rows.
type TreatmentRecordRepository struct {
	db *sql.DB
}

// NewTreatmentRecordRepository creates a new SQLite treatment record repository.
func NewTreatmentRecordRepository(db *sql.DB) *TreatmentRecordRepository {
	return &TreatmentRecordRepository{db: db}
}

// stageTable returns the result table and value column names for a stage.
func stageTable(stage models.Stage) (table string, columns []string, err error) {
	switch stage {
	case models.StageFirst:
		return "first_stage_treatments",
			[]string{"x201", "x202", "x203", "x204", "x205", "x206", "x207", "x208", "x209"}, nil
	case models.StageSecond:
		return "second_stage_treatments",
			[]string{"x401", "x402", "x403", "x404", "x405", "x406", "x407", "x408", "x409"}, nil
	default:
		return "", nil, fmt.Errorf("unknown stage %q", stage)
	}
}

// Append persists an accepted strategy as a single INSERT.
func (r *TreatmentRecordRepository) Append(ctx context.Context, record *models.TreatmentRecord) error {
	if len(record.Values) != models.TreatmentValuesCount {
		return fmt.Errorf("treatment record must have %d values, got %d",
			models.TreatmentValuesCount, len(record.Values))
	}

	table, columns, err := stageTable(record.Stage)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, patient_id, %s, %s, %s, %s, %s, %s, %s, %s, %s, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		table,
		columns[0], columns[1], columns[2], columns[3], columns[4],
		columns[5], columns[6], columns[7], columns[8],
	)

	args := make([]any, 0, models.TreatmentValuesCount+3)
	args = append(args, record.ID, record.PatientID)
	for _, v := range record.Values {
		args = append(args, v)
	}
	args = append(args, record.CreatedAt.UTC().Format(time.RFC3339))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append treatment record: %w", err)
	}
	return nil
}

// ListByPatient retrieves persisted strategies for a patient and stage,
// newest first.
func (r *TreatmentRecordRepository) ListByPatient(ctx context.Context, patientID int64, stage models.Stage) ([]*models.TreatmentRecord, error) {
	table, columns, err := stageTable(stage)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT id, %s, %s, %s, %s, %s, %s, %s, %s, %s, created_at FROM %s WHERE patient_id = ? ORDER BY created_at DESC",
		columns[0], columns[1], columns[2], columns[3], columns[4],
		columns[5], columns[6], columns[7], columns[8],
		table,
	)

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment records: %w", err)
	}
	defer rows.Close()

	var records []*models.TreatmentRecord
	for rows.Next() {
		var (
			id        string
			values    [models.TreatmentValuesCount]float64
			createdAt string
		)
		err := rows.Scan(&id,
			&values[0], &values[1], &values[2], &values[3], &values[4],
			&values[5], &values[6], &values[7], &values[8],
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treatment record: %w", err)
		}

		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse treatment record timestamp: %w", err)
		}

		records = append(records, &models.TreatmentRecord{
			ID:        id,
			PatientID: patientID,
			Stage:     stage,
			Values:    values[:],
			CreatedAt: created,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate treatment records: %w", err)
	}
	return records, nil
}
