// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup goes through setupTestDB(), which builds an in-memory
// database from db.GetSchemaSQL() so tests cannot drift from the
// authoritative schema. Do not hardcode CREATE TABLE statements in test
// files; use setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/cardioplan/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPatient inserts a test patient with complete first-stage indicators
// and returns its ID.
func seedPatient(t *testing.T, testDB *sql.DB, surname string) int64 {
	t.Helper()
	if surname == "" {
		surname = "Іванов"
	}
	res, err := testDB.Exec(`INSERT INTO patients
		(surname, firstname, middlename, sex, date_of_birth, diagnosis,
		 x101, x102, x103, x104, x105, x106, x107, x108, x109, x110, x111, x112)
		VALUES (?, 'Іван', 'Іванович', 'Чоловіча', '1990-01-01', 'ВВС',
		 54, 12.5, 3.2, 2, 1, 0.8, 44.1, 5.5, 61, 'Так', 'Ні', 'Ні')`, surname)
	if err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get seeded patient id: %v", err)
	}
	return id
}

// seedConditions inserts a post-operative condition record for a patient.
func seedConditions(t *testing.T, testDB *sql.DB, patientID int64) {
	t.Helper()
	_, err := testDB.Exec(`INSERT INTO patient_conditions
		(patient_id, pe, vab, p_early, plicat, stroke, thrombosis, chyle, avb, snd)
		VALUES (?, 'Ні', 'Так', 'Ні', 'Ні', 'Ні', 'Так', 'Ні', 'Ні', 'Ні')`, patientID)
	if err != nil {
		t.Fatalf("failed to seed patient conditions: %v", err)
	}
}
