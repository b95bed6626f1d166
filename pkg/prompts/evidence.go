// Package prompts renders structured clinical summaries into text: the
// evidence-cited prompt sent to the completion backend, the deterministic
// fallback template, and the citation extraction used by viewers.
package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

// Citation source labels. These must match the loader's file names; they
// are the table half of every [Source: ...] tag.
const (
	diagnosesSource   = "diagnoses.csv"
	medicationsSource = "medications.csv"
	vitalsSource      = "vitals.csv"
	notesSource       = "notes.csv"
	woundsSource      = "wounds.csv"
	oasisSource       = "oasis.csv"
)

// Prompt-path renderings of absent values. Dates and non-date fields share
// the same literal but are kept as separate markers; the fallback template
// renders "Not documented" instead, and the two paths keep distinct markers
// on purpose.
const (
	missingDateMarker  = "N/A"
	missingValueMarker = "N/A"
)

func fmtDate(t *time.Time) string {
	if t == nil {
		return missingDateMarker
	}
	return t.Format("2006-01-02")
}

// outputHeadings is the fixed section list the generator must reproduce
// verbatim and in order; downstream evidence extraction keys off it.
var outputHeadings = []string{
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

// BuildSummaryPrompt renders the structured summary into the evidence-cited
// context string sent to the completion backend. Every clinical fact line
// carries a [Source: <file> | <date-field>=<date>] tag; facts without an
// underlying date carry [Source: <file>] alone, and empty sections emit a
// single "Not documented" bullet that still cites its table.
func BuildSummaryPrompt(in *models.SummaryInput) string {
	var b strings.Builder

	b.WriteString("You are a home health clinician. Your task is to generate an evidence-based clinical summary from the provided EHR data.\n\n")
	b.WriteString("IMPORTANT RULES:\n")
	b.WriteString("- Use ONLY the data provided below. Do NOT invent anything.\n")
	b.WriteString("- Every claim MUST include a citation bracket in this format:\n")
	b.WriteString("  [Source: <file>.csv | <key>=<value>]\n")
	b.WriteString("  Examples:\n")
	b.WriteString("  - Blood pressure elevated (145/88 on 2023-10-01) [Source: vitals.csv | visit_date=2023-10-01]\n")
	b.WriteString("  - OASIS shows chairfast status [Source: oasis.csv | assessment_date=2025-12-03]\n")
	b.WriteString("  - Pressure ulcer stage III [Source: wounds.csv | visit_date=2026-01-08]\n")
	b.WriteString("- If something is missing, say \"Not documented\" AND still include the relevant source file citation.\n")
	b.WriteString("- If you describe a trend, reference the involved dates.\n\n")

	fmt.Fprintf(&b, "Patient ID: %d\n", in.PatientID)
	fmt.Fprintf(&b, "Episode ID: %s\n\n", episodeLabel(in.EpisodeID))

	b.WriteString("========================\n")
	b.WriteString("PATIENT EHR DATA\n")
	b.WriteString("========================\n\n")

	b.WriteString("1) Diagnoses:\n")
	writeDiagnoses(&b, in.Diagnoses)

	b.WriteString("\n2) Medications:\n")
	writeMedications(&b, in.Medications)

	fmt.Fprintf(&b, "\n3) Vitals (latest vitals date overall: %s):\n", fmtDate(in.Vitals.LatestDate))
	writeVitals(&b, in.Vitals)

	b.WriteString("\n4) Wounds:\n")
	writeWounds(&b, in.Wounds)

	b.WriteString("\n5) Functional Status (OASIS):\n")
	writeOasis(&b, in.Oasis)

	b.WriteString("\n6) Recent Notes:\n")
	writeNotes(&b, in.Notes)

	b.WriteString("\n========================\n")
	b.WriteString("OUTPUT FORMAT\n")
	b.WriteString("========================\n")
	b.WriteString("Use the headings EXACTLY as written below, and include citations in every bullet/sentence:\n\n")
	for _, heading := range outputHeadings {
		b.WriteString(heading)
		b.WriteString("\n")
	}
	b.WriteString("\nKeep it concise, clinically meaningful, and verifiable.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Do not hallucinate.\n")
	b.WriteString("- If data is missing, say \"Not documented\".\n")
	b.WriteString("- Be concise but clinically meaningful.\n")
	b.WriteString("- Highlight wound care, BP/oxygen abnormalities if present, immobility risks, infection risk, and dependence in ADLs.\n")

	return strings.TrimSpace(b.String())
}

func episodeLabel(id *int) string {
	if id == nil {
		return missingValueMarker
	}
	return fmt.Sprintf("%d", *id)
}

func writeDiagnoses(b *strings.Builder, diagnoses []string) {
	if len(diagnoses) == 0 {
		fmt.Fprintf(b, "- Not documented [Source: %s]\n", diagnosesSource)
		return
	}
	for _, d := range diagnoses {
		fmt.Fprintf(b, "- %s [Source: %s]\n", d, diagnosesSource)
	}
}

func writeMedications(b *strings.Builder, meds []models.MedicationSummary) {
	if len(meds) == 0 {
		fmt.Fprintf(b, "- Not documented [Source: %s]\n", medicationsSource)
		return
	}
	for _, m := range meds {
		fmt.Fprintf(b, "- %s | %s | %s | Reason: %s [Source: %s]\n",
			m.Name, m.Frequency, m.Classification, m.Reason, medicationsSource)
	}
}

func writeVitals(b *strings.Builder, vitals models.VitalsSummary) {
	if len(vitals.Latest) == 0 {
		fmt.Fprintf(b, "- Not documented [Source: %s]\n", vitalsSource)
	} else {
		for _, v := range vitals.Latest {
			date := fmtDate(v.Date)
			fmt.Fprintf(b, "- %s: %s (date: %s) [Source: %s | visit_date=%s]\n",
				v.VitalType, readingLabel(v.Reading), date, vitalsSource, date)
		}
	}

	b.WriteString("\nAbnormal vitals:\n")
	if len(vitals.Abnormal) == 0 {
		fmt.Fprintf(b, "- None flagged [Source: %s]\n", vitalsSource)
		return
	}
	for _, a := range vitals.Abnormal {
		fmt.Fprintf(b, "- %s [Source: %s]\n", a, vitalsSource)
	}
}

func readingLabel(reading *float64) string {
	if reading == nil {
		return missingValueMarker
	}
	return fmt.Sprintf("%v", *reading)
}

func writeWounds(b *strings.Builder, wounds []models.WoundSummary) {
	if len(wounds) == 0 {
		fmt.Fprintf(b, "- No wounds documented [Source: %s]\n", woundsSource)
		return
	}
	for _, w := range wounds {
		visit := fmtDate(w.VisitDate)
		fmt.Fprintf(b, "- %s | Location: %s | Onset: %s | Visit: %s [Source: %s | visit_date=%s]\n",
			w.Description, w.Location, fmtDate(w.OnsetDate), visit, woundsSource, visit)
	}
}

func writeOasis(b *strings.Builder, oasis models.OasisSummary) {
	date := fmtDate(oasis.LatestDate)
	assessmentType := oasis.AssessmentType
	if assessmentType == "" {
		assessmentType = missingValueMarker
	}
	fmt.Fprintf(b, "Assessment Date: %s [Source: %s | assessment_date=%s]\n", date, oasisSource, date)
	fmt.Fprintf(b, "Assessment Type: %s [Source: %s | assessment_date=%s]\n", assessmentType, oasisSource, date)
	b.WriteString("ADL / Mobility:\n")
	if len(oasis.ADL) == 0 {
		fmt.Fprintf(b, "- Not documented [Source: %s | assessment_date=%s]\n", oasisSource, date)
		return
	}
	for _, entry := range oasis.ADL {
		fmt.Fprintf(b, "- %s: %s [Source: %s | assessment_date=%s]\n",
			entry.Field, entry.Value, oasisSource, date)
	}
}

func writeNotes(b *strings.Builder, notes []models.NoteHighlight) {
	if len(notes) == 0 {
		fmt.Fprintf(b, "- Not documented [Source: %s]\n", notesSource)
		return
	}
	for _, n := range notes {
		date := fmtDate(n.Date)
		fmt.Fprintf(b, "- [%s] %s: %s [Source: %s | note_date=%s]\n",
			date, n.Type, n.Snippet, notesSource, date)
	}
}
