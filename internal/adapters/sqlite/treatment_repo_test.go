package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/cardioplan/internal/adapters/sqlite"
	"github.com/example/cardioplan/internal/models"
)

func testValues() []float64 {
	return []float64{50, 120, 30, 2, 1, 2, 1, 1, 2}
}

func TestTreatmentRecordRepository_AppendAndList(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewTreatmentRecordRepository(testDB)
	ctx := context.Background()

	patientID := seedPatient(t, testDB, "")

	record := &models.TreatmentRecord{
		ID:        "rec-001",
		PatientID: patientID,
		Stage:     models.StageFirst,
		Values:    testValues(),
		CreatedAt: time.Now(),
	}
	if err := repo.Append(ctx, record); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, err := repo.ListByPatient(ctx, patientID, models.StageFirst)
	if err != nil {
		t.Fatalf("ListByPatient failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ID != "rec-001" {
		t.Errorf("expected id 'rec-001', got %q", records[0].ID)
	}
	for i, want := range testValues() {
		if records[0].Values[i] != want {
			t.Errorf("values[%d] = %v, want %v", i, records[0].Values[i], want)
		}
	}
}

func TestTreatmentRecordRepository_StagesAreSeparate(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewTreatmentRecordRepository(testDB)
	ctx := context.Background()

	patientID := seedPatient(t, testDB, "")

	first := &models.TreatmentRecord{
		ID: "rec-first", PatientID: patientID,
		Stage: models.StageFirst, Values: testValues(), CreatedAt: time.Now(),
	}
	second := &models.TreatmentRecord{
		ID: "rec-second", PatientID: patientID,
		Stage: models.StageSecond, Values: testValues(), CreatedAt: time.Now(),
	}
	if err := repo.Append(ctx, first); err != nil {
		t.Fatalf("Append first failed: %v", err)
	}
	if err := repo.Append(ctx, second); err != nil {
		t.Fatalf("Append second failed: %v", err)
	}

	firstRecords, err := repo.ListByPatient(ctx, patientID, models.StageFirst)
	if err != nil {
		t.Fatalf("ListByPatient failed: %v", err)
	}
	if len(firstRecords) != 1 || firstRecords[0].ID != "rec-first" {
		t.Errorf("expected only 'rec-first' in first stage, got %v", firstRecords)
	}

	secondRecords, err := repo.ListByPatient(ctx, patientID, models.StageSecond)
	if err != nil {
		t.Fatalf("ListByPatient failed: %v", err)
	}
	if len(secondRecords) != 1 || secondRecords[0].ID != "rec-second" {
		t.Errorf("expected only 'rec-second' in second stage, got %v", secondRecords)
	}
}

func TestTreatmentRecordRepository_Append_RejectsWrongArity(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewTreatmentRecordRepository(testDB)

	record := &models.TreatmentRecord{
		ID:        "rec-bad",
		PatientID: 1,
		Stage:     models.StageFirst,
		Values:    []float64{1, 2, 3},
		CreatedAt: time.Now(),
	}
	if err := repo.Append(context.Background(), record); err == nil {
		t.Error("expected error for wrong value count")
	}
}

func TestTreatmentRecordRepository_ListByPatient_NewestFirst(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewTreatmentRecordRepository(testDB)
	ctx := context.Background()

	patientID := seedPatient(t, testDB, "")

	older := &models.TreatmentRecord{
		ID: "rec-older", PatientID: patientID, Stage: models.StageSecond,
		Values: testValues(), CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := &models.TreatmentRecord{
		ID: "rec-newer", PatientID: patientID, Stage: models.StageSecond,
		Values: testValues(), CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := repo.Append(ctx, older); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := repo.Append(ctx, newer); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	records, err := repo.ListByPatient(ctx, patientID, models.StageSecond)
	if err != nil {
		t.Fatalf("ListByPatient failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "rec-newer" {
		t.Errorf("expected newest record first, got %q", records[0].ID)
	}
}
