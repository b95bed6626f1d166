package prompts

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

// citationGrammar is the literal tag grammar downstream consumers parse.
var citationGrammar = regexp.MustCompile(`\[Source: [^|\]]+(\s*\|\s*[a-zA-Z_]+=[^\]]+)?\]`)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func fullInput() *models.SummaryInput {
	return &models.SummaryInput{
		PatientID: 1001,
		EpisodeID: intPtr(5),
		Diagnoses: []string{"Hypertension (I10)"},
		Medications: []models.MedicationSummary{
			{Name: "Lisinopril", Frequency: "Daily", Classification: "ACE", Reason: "HTN"},
		},
		Vitals: models.VitalsSummary{
			LatestDate: datePtr("2026-01-08"),
			Latest: []models.VitalReading{
				{VitalType: "BP Systolic", Reading: floatPtr(150), Min: floatPtr(90), Max: floatPtr(140), Date: datePtr("2026-01-08")},
			},
			Abnormal: []string{"BP Systolic: 150 (above max 140)"},
		},
		Notes: []models.NoteHighlight{
			{Date: datePtr("2026-01-07"), Type: "Progress", Snippet: "Patient stable."},
		},
		Wounds: []models.WoundSummary{
			{Location: "Sacrum", Description: "Stage II ulcer", OnsetDate: datePtr("2025-12-20"), VisitDate: datePtr("2026-01-05")},
		},
		Oasis: models.OasisSummary{
			LatestDate:     datePtr("2026-01-02"),
			AssessmentType: "SOC",
			ADL: []models.ADLEntry{
				{Field: "grooming", Value: "1"},
				{Field: "bathing", Value: "2"},
			},
		},
	}
}

func TestBuildSummaryPrompt_EveryBulletCarriesACitation(t *testing.T) {
	prompt := BuildSummaryPrompt(fullInput())

	inData := false
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "PATIENT EHR DATA") {
			inData = true
			continue
		}
		if strings.HasPrefix(line, "OUTPUT FORMAT") {
			break
		}
		if !inData || !strings.HasPrefix(strings.TrimSpace(line), "- ") {
			continue
		}
		assert.Regexp(t, citationGrammar, line, "bullet without citation: %q", line)
	}
}

func TestBuildSummaryPrompt_CitationShapes(t *testing.T) {
	prompt := BuildSummaryPrompt(fullInput())

	// dated facts carry the date key/value
	assert.Contains(t, prompt, "[Source: vitals.csv | visit_date=2026-01-08]")
	assert.Contains(t, prompt, "[Source: notes.csv | note_date=2026-01-07]")
	assert.Contains(t, prompt, "[Source: wounds.csv | visit_date=2026-01-05]")
	assert.Contains(t, prompt, "[Source: oasis.csv | assessment_date=2026-01-02]")
	// undated facts cite the table alone
	assert.Contains(t, prompt, "Hypertension (I10) [Source: diagnoses.csv]")
	assert.Contains(t, prompt, "Reason: HTN [Source: medications.csv]")
	assert.Contains(t, prompt, "BP Systolic: 150 (above max 140) [Source: vitals.csv]")
}

func TestBuildSummaryPrompt_EmptySectionsSayNotDocumentedWithCitation(t *testing.T) {
	prompt := BuildSummaryPrompt(&models.SummaryInput{PatientID: 42})

	assert.Contains(t, prompt, "- Not documented [Source: diagnoses.csv]")
	assert.Contains(t, prompt, "- Not documented [Source: medications.csv]")
	assert.Contains(t, prompt, "- Not documented [Source: vitals.csv]")
	assert.Contains(t, prompt, "- None flagged [Source: vitals.csv]")
	assert.Contains(t, prompt, "- No wounds documented [Source: wounds.csv]")
	assert.Contains(t, prompt, "- Not documented [Source: oasis.csv | assessment_date=N/A]")
	assert.Contains(t, prompt, "- Not documented [Source: notes.csv]")
}

func TestBuildSummaryPrompt_MissingDatesRenderNA(t *testing.T) {
	in := fullInput()
	in.EpisodeID = nil
	in.Vitals.LatestDate = nil
	in.Vitals.Latest[0].Reading = nil
	prompt := BuildSummaryPrompt(in)

	assert.Contains(t, prompt, "Episode ID: N/A")
	assert.Contains(t, prompt, "latest vitals date overall: N/A")
	assert.Contains(t, prompt, "- BP Systolic: N/A (date: 2026-01-08)", "missing non-date values render N/A too")
	assert.NotContains(t, prompt, "Not documented [Source: vitals.csv | visit_date")
}

func TestBuildSummaryPrompt_NineHeadingsVerbatimAndInOrder(t *testing.T) {
	prompt := BuildSummaryPrompt(fullInput())

	headings := []string{
		"1. Patient Overview",
		"2. Primary Diagnoses",
		"3. Recent Vital Signs & Trends",
		"4. Active Wounds & Wound Care Status",
		"5. Current Medications / Adherence Notes",
		"6. Functional Status (OASIS)",
		"7. Recent Clinician Notes (key events)",
		"8. Risks / Red Flags",
		"9. Recommended Care Focus (next 7 days)",
	}

	last := -1
	for _, h := range headings {
		i := strings.Index(prompt, h)
		require.GreaterOrEqual(t, i, 0, "missing heading %q", h)
		assert.Greater(t, i, last, "heading %q out of order", h)
		last = i
	}
}

func TestBuildSummaryPrompt_Preamble(t *testing.T) {
	prompt := BuildSummaryPrompt(fullInput())

	assert.Contains(t, prompt, "Use ONLY the data provided below")
	assert.Contains(t, prompt, "Every claim MUST include a citation bracket")
	assert.Contains(t, prompt, `say "Not documented" AND still include the relevant source file citation`)
	assert.Contains(t, prompt, "If you describe a trend, reference the involved dates")
	assert.Contains(t, prompt, "Patient ID: 1001")
	assert.Contains(t, prompt, "Episode ID: 5")
}
