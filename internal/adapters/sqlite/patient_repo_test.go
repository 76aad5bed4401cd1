package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/cardioplan/internal/adapters/sqlite"
	"github.com/example/cardioplan/internal/ports/secondary"
)

func TestPatientRepository_List(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)
	ctx := context.Background()

	seedPatient(t, testDB, "Петренко")
	seedPatient(t, testDB, "Іванов")

	patients, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(patients))
	}
}

func TestPatientRepository_GetByID(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)
	ctx := context.Background()

	id := seedPatient(t, testDB, "Іванов")

	patient, found, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !found {
		t.Fatal("expected patient to be found")
	}
	if patient.Surname != "Іванов" {
		t.Errorf("expected surname 'Іванов', got %q", patient.Surname)
	}
	if patient.FullName() != "Іванов Іван Іванович" {
		t.Errorf("unexpected full name %q", patient.FullName())
	}
}

func TestPatientRepository_GetByID_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)

	_, found, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found {
		t.Error("expected patient to be absent")
	}
}

func TestPatientRepository_FirstStage(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)
	ctx := context.Background()

	id := seedPatient(t, testDB, "")

	record, found, err := repo.FirstStage(ctx, id)
	if err != nil {
		t.Fatalf("FirstStage failed: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if record.X101 != 54 || record.X109 != 61 {
		t.Errorf("unexpected numeric indicators: x101=%v x109=%v", record.X101, record.X109)
	}
	if record.X110 != "Так" || record.X111 != "Ні" {
		t.Errorf("unexpected categorical indicators: x110=%q x111=%q", record.X110, record.X111)
	}
	if record.Patient.ID != id {
		t.Errorf("expected patient id %d, got %d", id, record.Patient.ID)
	}
}

func TestPatientRepository_FirstStage_UnknownPatient(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)

	_, found, err := repo.FirstStage(context.Background(), 42)
	if err != nil {
		t.Fatalf("FirstStage failed: %v", err)
	}
	if found {
		t.Error("expected no record for unknown patient")
	}
}

func TestPatientRepository_FirstStage_NullNumericColumn(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)
	ctx := context.Background()

	id := seedPatient(t, testDB, "")
	if _, err := testDB.Exec("UPDATE patients SET x105 = NULL WHERE patient_id = ?", id); err != nil {
		t.Fatalf("failed to null column: %v", err)
	}

	_, _, err := repo.FirstStage(ctx, id)
	if err == nil {
		t.Fatal("expected error for NULL numeric column")
	}
}

func TestPatientRepository_SecondStage_Found(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)
	ctx := context.Background()

	id := seedPatient(t, testDB, "")
	seedConditions(t, testDB, id)

	lookup, err := repo.SecondStage(ctx, id)
	if err != nil {
		t.Fatalf("SecondStage failed: %v", err)
	}
	if lookup.Outcome != secondary.LookupFound {
		t.Fatalf("expected LookupFound, got %v", lookup.Outcome)
	}
	if lookup.Record == nil {
		t.Fatal("expected record to be populated")
	}
	if lookup.Record.VAB != "Так" || lookup.Record.PE != "Ні" {
		t.Errorf("unexpected condition values: pe=%q vab=%q", lookup.Record.PE, lookup.Record.VAB)
	}
}

func TestPatientRepository_SecondStage_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)

	lookup, err := repo.SecondStage(context.Background(), 999)
	if err != nil {
		t.Fatalf("SecondStage failed: %v", err)
	}
	if lookup.Outcome != secondary.LookupNotFound {
		t.Errorf("expected LookupNotFound, got %v", lookup.Outcome)
	}
}

func TestPatientRepository_SecondStage_NoSubRecord(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewPatientRepository(testDB)
	ctx := context.Background()

	// Patient exists, but no condition row is seeded.
	id := seedPatient(t, testDB, "Петренко")

	lookup, err := repo.SecondStage(ctx, id)
	if err != nil {
		t.Fatalf("SecondStage failed: %v", err)
	}
	if lookup.Outcome != secondary.LookupNoSubRecord {
		t.Fatalf("expected LookupNoSubRecord, got %v", lookup.Outcome)
	}
	if lookup.Patient == nil {
		t.Fatal("expected patient to be populated for operator message")
	}
	if lookup.Patient.Surname != "Петренко" {
		t.Errorf("expected surname 'Петренко', got %q", lookup.Patient.Surname)
	}
}
