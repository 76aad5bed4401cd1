package models

import "fmt"

// Patient identifies a patient in the clinical store. Demographics are
// display-only; the pipeline never sends them across the process boundary.
type Patient struct {
	ID          int64
	Surname     string
	Firstname   string
	Middlename  string
	Sex         string
	DateOfBirth string
}

// FullName returns "Surname Firstname Middlename" for display.
func (p *Patient) FullName() string {
	return fmt.Sprintf("%s %s %s", p.Surname, p.Firstname, p.Middlename)
}

// FirstStageRecord holds pre-operative clinical indicators for the first
// (operative) treatment stage. X101-X109 are numeric measurements; X110-X112
// are categorical yes/no answers stored as their original tokens.
type FirstStageRecord struct {
	Patient *Patient
	X101    float64
	X102    float64
	X103    float64
	X104    float64
	X105    float64
	X106    float64
	X107    float64
	X108    float64
	X109    float64
	X110    string
	X111    string
	X112    string
}

// SecondStageRecord holds post-operative condition indicators for the second
// (medication) treatment stage. All fields are categorical yes/no answers.
type SecondStageRecord struct {
	Patient    *Patient
	PE         string
	VAB        string
	PEarly     string
	Plicat     string
	Stroke     string
	Thrombosis string
	Chyle      string
	AVB        string
	SND        string
}
