// Package ehr holds the in-memory tabular store: one typed, immutable table
// per EHR record kind, indexed by patient and (patient, episode) at load
// time so per-request filtering is an index lookup rather than a scan.
package ehr

import "github.com/caretrace-ai/caretrace-engine/pkg/models"

// Source file names, used both by the loader and as citation labels.
const (
	DiagnosesFile   = "diagnoses.csv"
	MedicationsFile = "medications.csv"
	VitalsFile      = "vitals.csv"
	NotesFile       = "notes.csv"
	WoundsFile      = "wounds.csv"
	OasisFile       = "oasis.csv"
)

// Row is implemented by every table record type.
type Row interface {
	PatientRef() *int
	EpisodeRef() *int
}

type episodeKey struct {
	patientID int
	episodeID int
}

// Table is an immutable ordered collection of rows of one record kind.
// EpisodeLinked records whether the backing file exposes an episode_id
// column at all; when it does not, episode filtering passes rows through
// unfiltered.
type Table[T Row] struct {
	File          string
	EpisodeLinked bool
	Rows          []T

	byPatient map[int][]int
	byEpisode map[episodeKey][]int
}

// NewTable builds a table and its lookup indexes. Rows with a nil patient
// id are kept in Rows but never indexed, so they are invisible to every
// patient-filtered view. Rows with a nil episode id on an episode-linked
// table are indexed by patient only.
func NewTable[T Row](file string, episodeLinked bool, rows []T) *Table[T] {
	t := &Table[T]{
		File:          file,
		EpisodeLinked: episodeLinked,
		Rows:          rows,
		byPatient:     make(map[int][]int),
		byEpisode:     make(map[episodeKey][]int),
	}
	for i, row := range rows {
		pid := row.PatientRef()
		if pid == nil {
			continue
		}
		t.byPatient[*pid] = append(t.byPatient[*pid], i)
		if episodeLinked {
			if eid := row.EpisodeRef(); eid != nil {
				key := episodeKey{patientID: *pid, episodeID: *eid}
				t.byEpisode[key] = append(t.byEpisode[key], i)
			}
		}
	}
	return t
}

// Len returns the total row count, including unindexed rows.
func (t *Table[T]) Len() int { return len(t.Rows) }

// HasPatient reports whether any row belongs to the patient.
func (t *Table[T]) HasPatient(patientID int) bool {
	return len(t.byPatient[patientID]) > 0
}

// ByPatient returns the patient's rows in original file order. The result
// is a fresh slice; the underlying table is never mutated.
func (t *Table[T]) ByPatient(patientID int) []T {
	return t.gather(t.byPatient[patientID])
}

// ByPatientEpisode returns the patient's rows for one episode. Tables
// without an episode_id column pass through patient-filtered; on linked
// tables, rows with a missing episode id are excluded.
func (t *Table[T]) ByPatientEpisode(patientID, episodeID int) []T {
	if !t.EpisodeLinked {
		return t.ByPatient(patientID)
	}
	return t.gather(t.byEpisode[episodeKey{patientID: patientID, episodeID: episodeID}])
}

func (t *Table[T]) gather(idx []int) []T {
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.Rows[i])
	}
	return out
}

// Store is the process-lifetime snapshot of all six tables. It is loaded
// once at startup and read-only afterwards; concurrent requests may read
// it without coordination.
type Store struct {
	Diagnoses   *Table[models.Diagnosis]
	Medications *Table[models.Medication]
	Vitals      *Table[models.Vital]
	Notes       *Table[models.Note]
	Wounds      *Table[models.Wound]
	Oasis       *Table[models.OasisAssessment]

	// ADLColumns is the subset of models.ADLFields present in the oasis
	// file header, in canonical order.
	ADLColumns []string
}

// PatientExists reports whether the patient appears in any table.
func (s *Store) PatientExists(patientID int) bool {
	return s.Diagnoses.HasPatient(patientID) ||
		s.Medications.HasPatient(patientID) ||
		s.Vitals.HasPatient(patientID) ||
		s.Notes.HasPatient(patientID) ||
		s.Wounds.HasPatient(patientID) ||
		s.Oasis.HasPatient(patientID)
}
