// Package encoding maps typed stage records to the fixed-length numeric
// vectors consumed by the optimizer. Encoding is pure and deterministic:
// the same record always yields bit-identical output.
package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/cardioplan/internal/models"
)

// Categorical tokens as stored in the clinical record. The downstream
// numeric models were trained against these exact strings.
const (
	TokenAffirmative = "Так"
	TokenNegative    = "Ні"
)

// FieldError reports a clinical field that could not be encoded.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// EncodeFirstStage encodes a first-stage record into its 12-value input
// vector, ordered x101..x112. The categorical encoding for this stage is
// affirmative=1.0, negative=2.0 — deliberately the REVERSE of the second
// stage. The downstream models were trained against these codes; do not
// "fix" the asymmetry.
func EncodeFirstStage(record *models.FirstStageRecord) ([]float64, error) {
	vector := []float64{
		record.X101, record.X102, record.X103,
		record.X104, record.X105, record.X106,
		record.X107, record.X108, record.X109,
	}

	categoricals := []struct {
		field string
		value string
	}{
		{"x110", record.X110},
		{"x111", record.X111},
		{"x112", record.X112},
	}
	for _, c := range categoricals {
		v, err := parseValue(c.field, c.value, TokenAffirmative, TokenNegative)
		if err != nil {
			return nil, err
		}
		vector = append(vector, v)
	}

	assertArity(models.StageFirst, vector)
	return vector, nil
}

// EncodeSecondStage encodes a second-stage record into its 9-value input
// vector, ordered pe, vab, pEarly, plicat, stroke, thrombosis, chyle, avb,
// snd. The categorical encoding for this stage is negative=1.0,
// affirmative=2.0 — the reverse of the first stage (see EncodeFirstStage).
func EncodeSecondStage(record *models.SecondStageRecord) ([]float64, error) {
	fields := []struct {
		field string
		value string
	}{
		{"pe", record.PE},
		{"vab", record.VAB},
		{"pEarly", record.PEarly},
		{"plicat", record.Plicat},
		{"stroke", record.Stroke},
		{"thrombosis", record.Thrombosis},
		{"chyle", record.Chyle},
		{"avb", record.AVB},
		{"snd", record.SND},
	}

	vector := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseValue(f.field, f.value, TokenNegative, TokenAffirmative)
		if err != nil {
			return nil, err
		}
		vector = append(vector, v)
	}

	assertArity(models.StageSecond, vector)
	return vector, nil
}

// parseValue converts one clinical field to its numeric code: oneToken maps
// to 1.0, twoToken to 2.0, anything else is parsed as a decimal number.
func parseValue(field, value, oneToken, twoToken string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &FieldError{Field: field, Reason: "blank clinical value"}
	}

	switch trimmed {
	case oneToken:
		return 1.0, nil
	case twoToken:
		return 2.0, nil
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &FieldError{Field: field, Reason: "not a recognized token or number", Err: err}
	}
	return v, nil
}

// assertArity guards the output-length invariant. It cannot fire for a
// well-typed record; a panic here means the encoder itself is broken.
func assertArity(stage models.Stage, vector []float64) {
	if len(vector) != stage.InputArity() {
		panic(fmt.Sprintf("encoded %s-stage vector has length %d, want %d", stage, len(vector), stage.InputArity()))
	}
}
