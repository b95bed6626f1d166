package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

func TestResolveEpisodes_CollectsAscendingEpisodeIDs(t *testing.T) {
	store := storeFixture{
		medications: []models.Medication{
			{PatientID: intPtr(1), EpisodeID: intPtr(7), Name: "A"},
			{PatientID: intPtr(1), EpisodeID: intPtr(3), Name: "B"},
			{PatientID: intPtr(1), EpisodeID: nil, Name: "C"},
		},
		notes: []models.Note{
			{PatientID: intPtr(1), EpisodeID: intPtr(5)},
			{PatientID: intPtr(2), EpisodeID: intPtr(99)},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	assert.Equal(t, []int{3, 5, 7}, info.EpisodeIDs)
}

func TestResolveEpisodes_LatestIsGlobalMaxDate(t *testing.T) {
	store := storeFixture{
		vitals: []models.Vital{
			{PatientID: intPtr(1), EpisodeID: intPtr(3), VisitDate: datePtr("2026-01-08")},
		},
		notes: []models.Note{
			{PatientID: intPtr(1), EpisodeID: intPtr(5), NoteDate: datePtr("2026-02-01")},
		},
		wounds: []models.Wound{
			{PatientID: intPtr(1), EpisodeID: intPtr(4), VisitDate: datePtr("2025-12-31")},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	require.NotNil(t, info.LatestEpisodeID)
	assert.Equal(t, 5, *info.LatestEpisodeID, "notes row holds the globally maximum date")
}

func TestResolveEpisodes_TieBreaksByPriorityOrder(t *testing.T) {
	// vitals and wounds report the same maximum date for different
	// episodes; vitals comes first in the priority list.
	store := storeFixture{
		vitals: []models.Vital{
			{PatientID: intPtr(1), EpisodeID: intPtr(2), VisitDate: datePtr("2026-01-08")},
		},
		wounds: []models.Wound{
			{PatientID: intPtr(1), EpisodeID: intPtr(9), VisitDate: datePtr("2026-01-08")},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	require.NotNil(t, info.LatestEpisodeID)
	assert.Equal(t, 2, *info.LatestEpisodeID)
}

func TestResolveEpisodes_TieBreaksByRowOrderWithinTable(t *testing.T) {
	store := storeFixture{
		vitals: []models.Vital{
			{PatientID: intPtr(1), EpisodeID: intPtr(6), VisitDate: datePtr("2026-01-08")},
			{PatientID: intPtr(1), EpisodeID: intPtr(8), VisitDate: datePtr("2026-01-08")},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	require.NotNil(t, info.LatestEpisodeID)
	assert.Equal(t, 6, *info.LatestEpisodeID, "first row wins on equal dates")
}

func TestResolveEpisodes_UndatedOrEpisodelessRowsIgnored(t *testing.T) {
	store := storeFixture{
		vitals: []models.Vital{
			{PatientID: intPtr(1), EpisodeID: intPtr(9), VisitDate: nil},
			{PatientID: intPtr(1), EpisodeID: nil, VisitDate: datePtr("2026-03-01")},
			{PatientID: intPtr(1), EpisodeID: intPtr(2), VisitDate: datePtr("2026-01-01")},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	require.NotNil(t, info.LatestEpisodeID)
	assert.Equal(t, 2, *info.LatestEpisodeID)
}

func TestResolveEpisodes_FallsBackToMaxEpisodeID(t *testing.T) {
	store := storeFixture{
		medications: []models.Medication{
			{PatientID: intPtr(1), EpisodeID: intPtr(3), Name: "A"},
			{PatientID: intPtr(1), EpisodeID: intPtr(8), Name: "B"},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	require.NotNil(t, info.LatestEpisodeID)
	assert.Equal(t, 8, *info.LatestEpisodeID, "no dated rows: max episode id wins")
}

func TestResolveEpisodes_NoEpisodesAtAll(t *testing.T) {
	store := storeFixture{
		diagnoses: []models.Diagnosis{
			{PatientID: intPtr(1), Code: "I10"},
		},
	}.build()

	info := ResolveEpisodes(store, 1)
	assert.Empty(t, info.EpisodeIDs)
	assert.Nil(t, info.LatestEpisodeID)
}

func TestResolveEpisodes_UnlinkedOasisExcludedFromDateScan(t *testing.T) {
	store := storeFixture{
		oasis: []models.OasisAssessment{
			{PatientID: intPtr(1), EpisodeID: nil, AssessmentDate: datePtr("2026-05-01")},
		},
		vitals: []models.Vital{
			{PatientID: intPtr(1), EpisodeID: intPtr(2), VisitDate: datePtr("2026-01-01")},
		},
		oasisLinked: false,
	}.build()

	info := ResolveEpisodes(store, 1)
	require.NotNil(t, info.LatestEpisodeID)
	assert.Equal(t, 2, *info.LatestEpisodeID)
}
