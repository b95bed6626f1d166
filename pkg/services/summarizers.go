package services

import (
	"fmt"
	"sort"

	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

// DefaultNoteHighlights is how many recent notes a summary carries unless
// configured otherwise.
const DefaultNoteHighlights = 3

const noteSnippetLimit = 300

// SummarizeDiagnoses reduces diagnosis rows to "{description} ({code})"
// strings, falling back to whichever field is present. Exact duplicates are
// dropped, first occurrence wins.
func SummarizeDiagnoses(rows []models.Diagnosis) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, row := range rows {
		var entry string
		switch {
		case row.Description != "" && row.Code != "":
			entry = fmt.Sprintf("%s (%s)", row.Description, row.Code)
		case row.Description != "":
			entry = row.Description
		case row.Code != "":
			entry = row.Code
		default:
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// SummarizeMedications reduces medication rows to unique entries. A row is
// a duplicate only when all four fields match; rows without a name are
// dropped.
func SummarizeMedications(rows []models.Medication) []models.MedicationSummary {
	seen := make(map[models.MedicationSummary]struct{})
	out := []models.MedicationSummary{}
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		med := models.MedicationSummary{
			Name:           row.Name,
			Frequency:      row.Frequency,
			Classification: row.Classification,
			Reason:         row.Reason,
		}
		if _, ok := seen[med]; ok {
			continue
		}
		seen[med] = struct{}{}
		out = append(out, med)
	}
	return out
}

// SummarizeVitals picks the most recent dated reading per vital type and
// flags readings outside their per-row bounds. Undated rows never
// participate in recency selection; a missing reading or bound never flags.
func SummarizeVitals(rows []models.Vital) models.VitalsSummary {
	summary := models.VitalsSummary{Latest: []models.VitalReading{}, Abnormal: []string{}}

	latestByType := make(map[string]models.Vital)
	for _, row := range rows {
		if row.VisitDate == nil {
			continue
		}
		if summary.LatestDate == nil || row.VisitDate.After(*summary.LatestDate) {
			summary.LatestDate = row.VisitDate
		}
		current, ok := latestByType[row.VitalType]
		if !ok || row.VisitDate.After(*current.VisitDate) {
			latestByType[row.VitalType] = row
		}
	}

	types := make([]string, 0, len(latestByType))
	for vt := range latestByType {
		types = append(types, vt)
	}
	sort.Strings(types)

	for _, vt := range types {
		row := latestByType[vt]
		summary.Latest = append(summary.Latest, models.VitalReading{
			VitalType: vt,
			Reading:   row.Reading,
			Min:       row.MinValue,
			Max:       row.MaxValue,
			Date:      row.VisitDate,
		})
		if row.Reading == nil {
			continue
		}
		if row.MinValue != nil && *row.Reading < *row.MinValue {
			summary.Abnormal = append(summary.Abnormal,
				fmt.Sprintf("%s: %v (below min %v)", vt, *row.Reading, *row.MinValue))
		}
		if row.MaxValue != nil && *row.Reading > *row.MaxValue {
			summary.Abnormal = append(summary.Abnormal,
				fmt.Sprintf("%s: %v (above max %v)", vt, *row.Reading, *row.MaxValue))
		}
	}

	return summary
}

// SummarizeNotes returns the n most recent dated notes, newest first, each
// with its free text truncated to 300 characters plus an ellipsis marker
// when truncation happened.
func SummarizeNotes(rows []models.Note, n int) []models.NoteHighlight {
	if n <= 0 {
		n = DefaultNoteHighlights
	}

	dated := make([]models.Note, 0, len(rows))
	for _, row := range rows {
		if row.NoteDate != nil {
			dated = append(dated, row)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].NoteDate.After(*dated[j].NoteDate)
	})
	if len(dated) > n {
		dated = dated[:n]
	}

	out := make([]models.NoteHighlight, 0, len(dated))
	for _, row := range dated {
		out = append(out, models.NoteHighlight{
			Date:    row.NoteDate,
			Type:    row.NoteType,
			Snippet: snippet(row.NoteText),
		})
	}
	return out
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= noteSnippetLimit {
		return text
	}
	return string(runes[:noteSnippetLimit]) + "..."
}

// SummarizeWounds carries every wound row through, most recent visit first
// (undated rows last, original order preserved among equals).
func SummarizeWounds(rows []models.Wound) []models.WoundSummary {
	ordered := make([]models.Wound, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].VisitDate, ordered[j].VisitDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	out := make([]models.WoundSummary, 0, len(ordered))
	for _, row := range ordered {
		out = append(out, models.WoundSummary{
			Location:    row.Location,
			Description: row.Description,
			OnsetDate:   row.OnsetDate,
			VisitDate:   row.VisitDate,
		})
	}
	return out
}

// SummarizeOasis picks the single assessment with the maximum date and
// reports the ADL fields whose columns exist in the loaded schema, in
// canonical order, even when empty for that row.
func SummarizeOasis(rows []models.OasisAssessment, adlColumns []string) models.OasisSummary {
	summary := models.OasisSummary{ADL: []models.ADLEntry{}}

	var latest *models.OasisAssessment
	for i := range rows {
		row := rows[i]
		if row.AssessmentDate == nil {
			continue
		}
		if latest == nil || row.AssessmentDate.After(*latest.AssessmentDate) {
			latest = &rows[i]
		}
	}
	if latest == nil {
		return summary
	}

	summary.LatestDate = latest.AssessmentDate
	summary.AssessmentType = latest.AssessmentType
	for _, field := range adlColumns {
		summary.ADL = append(summary.ADL, models.ADLEntry{
			Field: field,
			Value: latest.ADLValue(field),
		})
	}
	return summary
}

// BuildSummaryInput composes the six reducers into the structured input the
// prompt builder and fallback template consume. Pure function of the bundle.
func BuildSummaryInput(bundle *PatientBundle, noteCount int, adlColumns []string) *models.SummaryInput {
	return &models.SummaryInput{
		PatientID:   bundle.PatientID,
		EpisodeID:   bundle.LatestEpisodeID,
		Diagnoses:   SummarizeDiagnoses(bundle.Diagnoses),
		Medications: SummarizeMedications(bundle.Medications),
		Vitals:      SummarizeVitals(bundle.Vitals),
		Notes:       SummarizeNotes(bundle.Notes, noteCount),
		Wounds:      SummarizeWounds(bundle.Wounds),
		Oasis:       SummarizeOasis(bundle.Oasis, adlColumns),
	}
}
