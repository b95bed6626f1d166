package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

func TestBuildPatientBundle(t *testing.T) {
	store := storeFixture{
		diagnoses: []models.Diagnosis{
			{PatientID: intPtr(1), Code: "I10"},
			{PatientID: intPtr(2), Code: "E11"},
		},
		medications: []models.Medication{
			{PatientID: intPtr(1), EpisodeID: intPtr(5), Name: "A"},
			{PatientID: intPtr(1), EpisodeID: nil, Name: "B"},
		},
	}.build()

	bundle := BuildPatientBundle(store, 1)
	assert.Len(t, bundle.Diagnoses, 1)
	assert.Len(t, bundle.Medications, 2, "patient projection keeps null-episode rows")
	assert.Equal(t, []int{5}, bundle.EpisodeIDs)
}

func TestBuildEpisodeBundle(t *testing.T) {
	store := storeFixture{
		diagnoses: []models.Diagnosis{
			{PatientID: intPtr(1), Code: "I10"},
		},
		medications: []models.Medication{
			{PatientID: intPtr(1), EpisodeID: intPtr(5), Name: "A"},
			{PatientID: intPtr(1), EpisodeID: intPtr(6), Name: "B"},
			{PatientID: intPtr(1), EpisodeID: nil, Name: "C"},
		},
	}.build()

	bundle := BuildEpisodeBundle(store, 1, intPtr(5))
	assert.Len(t, bundle.Diagnoses, 1, "unlinked tables pass through")
	assert.Len(t, bundle.Medications, 1)
	assert.Equal(t, "A", bundle.Medications[0].Name)
}

func TestBuildEpisodeBundle_NilEpisodeEmptiesLinkedTables(t *testing.T) {
	// Every linked row carries a null episode id: episode filtering still
	// applies, so linked tables project to nothing while diagnoses and
	// unlinked tables keep their patient rows.
	store := storeFixture{
		diagnoses: []models.Diagnosis{
			{PatientID: intPtr(1), Code: "I10"},
		},
		medications: []models.Medication{
			{PatientID: intPtr(1), EpisodeID: nil, Name: "Lisinopril"},
		},
		oasis: []models.OasisAssessment{
			{PatientID: intPtr(1), AssessmentType: "SOC", AssessmentDate: datePtr("2026-01-02")},
		},
		oasisLinked: false,
	}.build()

	bundle := BuildEpisodeBundle(store, 1, nil)
	assert.Nil(t, bundle.LatestEpisodeID)
	assert.Len(t, bundle.Diagnoses, 1)
	assert.Empty(t, bundle.Medications)
	assert.Len(t, bundle.Oasis, 1, "unlinked oasis passes through")
}
