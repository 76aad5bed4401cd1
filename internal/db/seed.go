package db

import (
	"database/sql"
	"fmt"
)

// Seed inserts a small sample dataset for first runs and demos: two patients
// with complete first-stage indicators, one of which also has a
// post-operative condition record. Existing data is left untouched.
func Seed(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM patients").Scan(&count); err != nil {
		return fmt.Errorf("failed to check patients: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO patients
		(surname, firstname, middlename, sex, date_of_birth, diagnosis,
		 x101, x102, x103, x104, x105, x106, x107, x108, x109, x110, x111, x112)
		VALUES
		('Іванов', 'Іван', 'Іванович', 'Чоловіча', '1990-01-01', 'ВВС',
		 54, 12.5, 3.2, 2, 1, 0.8, 44.1, 5.5, 61, 'Так', 'Ні', 'Ні'),
		('Петренко', 'Олена', 'Василівна', 'Жіноча', '1985-06-15', 'ВВС',
		 39, 10.2, 2.7, 1, 2, 1.1, 40.3, 4.9, 58, 'Ні', 'Ні', 'Так')`)
	if err != nil {
		return fmt.Errorf("failed to seed patients: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO patient_conditions
		(patient_id, pe, vab, p_early, plicat, stroke, thrombosis, chyle, avb, snd)
		VALUES (1, 'Ні', 'Так', 'Ні', 'Ні', 'Ні', 'Так', 'Ні', 'Ні', 'Ні')`)
	if err != nil {
		return fmt.Errorf("failed to seed patient conditions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}
