package models

import "time"

// Stage selects one of the two sequential treatment phases. Each stage has
// its own input schema, encoding and optimizer script.
type Stage string

const (
	// StageFirst is the initial operative treatment phase.
	StageFirst Stage = "first"
	// StageSecond is the follow-on medication treatment phase.
	StageSecond Stage = "second"
)

// TreatmentValuesCount is the fixed arity of every candidate strategy vector
// returned by the optimizer and of every persisted treatment record.
const TreatmentValuesCount = 9

// Valid reports whether s is a known stage tag.
func (s Stage) Valid() bool {
	return s == StageFirst || s == StageSecond
}

// InputArity returns the length of the encoded input vector for the stage:
// 12 for the first stage (9 numeric + 3 categorical fields), 9 for the
// second stage (9 categorical fields).
func (s Stage) InputArity() int {
	if s == StageFirst {
		return 12
	}
	return 9
}

// ScriptName returns the optimizer script file for the stage.
func (s Stage) ScriptName() string {
	if s == StageFirst {
		return "FirstStage.py"
	}
	return "SecondStage.py"
}

// Complication codes predicted per candidate strategy.
const (
	ComplicationAbsent  = 1
	ComplicationPresent = 2
)

// TreatmentRecord is an accepted strategy persisted for a patient.
// Records are append-only; the pipeline never mutates or deletes them.
type TreatmentRecord struct {
	ID        string
	PatientID int64
	Stage     Stage
	Values    []float64 // always TreatmentValuesCount long
	CreatedAt time.Time
}
