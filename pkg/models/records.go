// Package models defines the typed EHR table records and the structured
// summary shapes derived from them.
package models

import "time"

// Diagnosis is one row of diagnoses.csv. The diagnoses table carries no
// episode linkage.
type Diagnosis struct {
	PatientID   *int
	Code        string
	Description string
}

// PatientRef returns the row's patient id, nil when missing or invalid.
func (d Diagnosis) PatientRef() *int { return d.PatientID }

// EpisodeRef always returns nil; diagnoses have no episode_id column.
func (d Diagnosis) EpisodeRef() *int { return nil }

// Medication is one row of medications.csv.
type Medication struct {
	PatientID      *int
	EpisodeID      *int
	Name           string
	Frequency      string
	Classification string
	Reason         string
}

func (m Medication) PatientRef() *int { return m.PatientID }
func (m Medication) EpisodeRef() *int { return m.EpisodeID }

// Vital is one row of vitals.csv. Reading and its bounds are nil when the
// source cell is empty or unparseable, never zero.
type Vital struct {
	PatientID *int
	EpisodeID *int
	VitalType string
	Reading   *float64
	MinValue  *float64
	MaxValue  *float64
	VisitDate *time.Time
}

func (v Vital) PatientRef() *int { return v.PatientID }
func (v Vital) EpisodeRef() *int { return v.EpisodeID }

// Note is one row of notes.csv.
type Note struct {
	PatientID *int
	EpisodeID *int
	NoteType  string
	NoteText  string
	NoteDate  *time.Time
}

func (n Note) PatientRef() *int { return n.PatientID }
func (n Note) EpisodeRef() *int { return n.EpisodeID }

// Wound is one row of wounds.csv.
type Wound struct {
	PatientID   *int
	EpisodeID   *int
	Location    string
	Description string
	OnsetDate   *time.Time
	VisitDate   *time.Time
}

func (w Wound) PatientRef() *int { return w.PatientID }
func (w Wound) EpisodeRef() *int { return w.EpisodeID }

// ADLFields is the canonical ordering of the OASIS ADL columns. Only the
// subset physically present in the loaded CSV header is reported in
// summaries (see ehr.Store.ADLColumns).
var ADLFields = []string{"grooming", "bathing", "toilet_transfer", "transfer", "ambulation"}

// OasisAssessment is one row of oasis.csv. EpisodeID may be nil either
// because the cell was empty or because the file has no episode_id column
// at all; the table-level EpisodeLinked flag distinguishes the two.
type OasisAssessment struct {
	PatientID      *int
	EpisodeID      *int
	AssessmentType string
	AssessmentDate *time.Time
	Grooming       string
	Bathing        string
	ToiletTransfer string
	Transfer       string
	Ambulation     string
}

func (o OasisAssessment) PatientRef() *int { return o.PatientID }
func (o OasisAssessment) EpisodeRef() *int { return o.EpisodeID }

// ADLValue returns the value of the named ADL field.
func (o OasisAssessment) ADLValue(field string) string {
	switch field {
	case "grooming":
		return o.Grooming
	case "bathing":
		return o.Bathing
	case "toilet_transfer":
		return o.ToiletTransfer
	case "transfer":
		return o.Transfer
	case "ambulation":
		return o.Ambulation
	}
	return ""
}
