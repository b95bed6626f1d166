package services

import (
	"github.com/caretrace-ai/caretrace-engine/pkg/ehr"
	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

// PatientBundle is the per-patient projection of all tables plus derived
// episode metadata. It is built fresh per request from the immutable store
// and never cached.
type PatientBundle struct {
	PatientID       int
	EpisodeIDs      []int
	LatestEpisodeID *int

	Diagnoses   []models.Diagnosis
	Medications []models.Medication
	Vitals      []models.Vital
	Notes       []models.Note
	Wounds      []models.Wound
	Oasis       []models.OasisAssessment
}

// BuildPatientBundle projects every table down to one patient.
func BuildPatientBundle(store *ehr.Store, patientID int) *PatientBundle {
	info := ResolveEpisodes(store, patientID)
	return &PatientBundle{
		PatientID:       patientID,
		EpisodeIDs:      info.EpisodeIDs,
		LatestEpisodeID: info.LatestEpisodeID,
		Diagnoses:       store.Diagnoses.ByPatient(patientID),
		Medications:     store.Medications.ByPatient(patientID),
		Vitals:          store.Vitals.ByPatient(patientID),
		Notes:           store.Notes.ByPatient(patientID),
		Wounds:          store.Wounds.ByPatient(patientID),
		Oasis:           store.Oasis.ByPatient(patientID),
	}
}

// BuildEpisodeBundle projects every table down to one patient and episode.
// Tables without an episode_id column keep their patient-filtered rows, so
// functional assessments lacking episode linkage apply to every episode.
// A nil episodeID still filters: on episode-linked tables no row matches a
// missing episode, so those projections are empty.
func BuildEpisodeBundle(store *ehr.Store, patientID int, episodeID *int) *PatientBundle {
	info := ResolveEpisodes(store, patientID)
	return &PatientBundle{
		PatientID:       patientID,
		EpisodeIDs:      info.EpisodeIDs,
		LatestEpisodeID: info.LatestEpisodeID,
		Diagnoses:       episodeRows(store.Diagnoses, patientID, episodeID),
		Medications:     episodeRows(store.Medications, patientID, episodeID),
		Vitals:          episodeRows(store.Vitals, patientID, episodeID),
		Notes:           episodeRows(store.Notes, patientID, episodeID),
		Wounds:          episodeRows(store.Wounds, patientID, episodeID),
		Oasis:           episodeRows(store.Oasis, patientID, episodeID),
	}
}

func episodeRows[T ehr.Row](t *ehr.Table[T], patientID int, episodeID *int) []T {
	if episodeID != nil {
		return t.ByPatientEpisode(patientID, *episodeID)
	}
	if t.EpisodeLinked {
		return []T{}
	}
	return t.ByPatient(patientID)
}
