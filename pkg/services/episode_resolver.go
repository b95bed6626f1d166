// Package services contains the patient/episode resolution and
// data-summarization pipeline plus the summary orchestrator.
package services

import (
	"sort"
	"time"

	"github.com/caretrace-ai/caretrace-engine/pkg/ehr"
)

// EpisodeInfo is the resolved episode metadata for one patient.
type EpisodeInfo struct {
	// EpisodeIDs holds every distinct episode id seen for the patient
	// across all episode-linked tables, ascending. Empty when none.
	EpisodeIDs []int
	// LatestEpisodeID is the episode of the most recently dated row, nil
	// when the patient has no episodes at all.
	LatestEpisodeID *int
}

// ResolveEpisodes computes the patient's episode set and active episode.
//
// The latest episode is the episode id of the row holding the globally
// maximum date across vitals.visit_date, notes.note_date, wounds.visit_date
// and oasis.assessment_date, restricted to rows with both a date and an
// episode id. Ties on the maximum date resolve to the first row encountered
// in that table order, then file row order within a table. This tie-break is
// an explicit policy, not clinical meaning: no stronger signal exists to
// prefer one table's date over another's. When no dated row exists the
// resolver falls back to max(EpisodeIDs).
func ResolveEpisodes(store *ehr.Store, patientID int) EpisodeInfo {
	info := EpisodeInfo{EpisodeIDs: patientEpisodes(store, patientID)}
	if len(info.EpisodeIDs) == 0 {
		return info
	}

	var bestDate *time.Time
	var bestEpisode *int

	consider := func(date *time.Time, episodeID *int) {
		if date == nil || episodeID == nil {
			return
		}
		// Strictly-after keeps the first row seen on equal dates.
		if bestDate == nil || date.After(*bestDate) {
			bestDate = date
			bestEpisode = episodeID
		}
	}

	for _, v := range store.Vitals.ByPatient(patientID) {
		consider(v.VisitDate, v.EpisodeID)
	}
	for _, n := range store.Notes.ByPatient(patientID) {
		consider(n.NoteDate, n.EpisodeID)
	}
	for _, w := range store.Wounds.ByPatient(patientID) {
		consider(w.VisitDate, w.EpisodeID)
	}
	if store.Oasis.EpisodeLinked {
		for _, o := range store.Oasis.ByPatient(patientID) {
			consider(o.AssessmentDate, o.EpisodeID)
		}
	}

	if bestEpisode != nil {
		id := *bestEpisode
		info.LatestEpisodeID = &id
		return info
	}

	// No dated rows anywhere: fall back to the highest known episode id.
	latest := info.EpisodeIDs[len(info.EpisodeIDs)-1]
	info.LatestEpisodeID = &latest
	return info
}

func patientEpisodes(store *ehr.Store, patientID int) []int {
	seen := make(map[int]struct{})

	collect := func(episodeID *int) {
		if episodeID != nil {
			seen[*episodeID] = struct{}{}
		}
	}

	if store.Medications.EpisodeLinked {
		for _, m := range store.Medications.ByPatient(patientID) {
			collect(m.EpisodeID)
		}
	}
	if store.Vitals.EpisodeLinked {
		for _, v := range store.Vitals.ByPatient(patientID) {
			collect(v.EpisodeID)
		}
	}
	if store.Notes.EpisodeLinked {
		for _, n := range store.Notes.ByPatient(patientID) {
			collect(n.EpisodeID)
		}
	}
	if store.Wounds.EpisodeLinked {
		for _, w := range store.Wounds.ByPatient(patientID) {
			collect(w.EpisodeID)
		}
	}
	if store.Oasis.EpisodeLinked {
		for _, o := range store.Oasis.ByPatient(patientID) {
			collect(o.EpisodeID)
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
