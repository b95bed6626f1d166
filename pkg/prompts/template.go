package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/caretrace-ai/caretrace-engine/pkg/models"
)

// templateMissingMarker is the fallback-path rendering of an absent date or
// section. Deliberately different from the prompt path's "N/A".
const templateMissingMarker = "Not documented"

func fmtDateOrNotDocumented(t *time.Time) string {
	if t == nil {
		return templateMissingMarker
	}
	return t.Format("2006-01-02")
}

// RenderFallbackSummary renders the structured summary as a fixed-layout
// plain clinical text. It carries no citation tags: citations belong to the
// generator path only, and this degraded-but-always-available layout is a
// deliberate asymmetry.
func RenderFallbackSummary(in *models.SummaryInput) string {
	var b strings.Builder

	b.WriteString("1. Patient Overview\n")
	fmt.Fprintf(&b, "Patient ID: %d\n", in.PatientID)
	fmt.Fprintf(&b, "Episode ID: %s\n", fallbackEpisodeLabel(in.EpisodeID))

	b.WriteString("\n2. Active Diagnoses\n")
	if len(in.Diagnoses) == 0 {
		b.WriteString(templateMissingMarker + "\n")
	} else {
		for _, d := range in.Diagnoses {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	b.WriteString("\n3. Current Medications\n")
	if len(in.Medications) == 0 {
		b.WriteString(templateMissingMarker + "\n")
	} else {
		for _, m := range in.Medications {
			fmt.Fprintf(&b, "- %s (%s) — Reason: %s\n", m.Name, m.Frequency, m.Reason)
		}
	}

	b.WriteString("\n4. Recent Vitals\n")
	fmt.Fprintf(&b, "Latest date: %s\n", fmtDateOrNotDocumented(in.Vitals.LatestDate))
	if len(in.Vitals.Latest) == 0 {
		b.WriteString(templateMissingMarker + "\n")
	} else {
		for _, v := range in.Vitals.Latest {
			fmt.Fprintf(&b, "- %s: %s\n", v.VitalType, fallbackReadingLabel(v.Reading))
		}
	}
	b.WriteString("\nAbnormal:\n")
	if len(in.Vitals.Abnormal) == 0 {
		b.WriteString("None flagged\n")
	} else {
		for _, a := range in.Vitals.Abnormal {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	b.WriteString("\n5. Wound Summary\n")
	if len(in.Wounds) == 0 {
		b.WriteString(templateMissingMarker + "\n")
	} else {
		for _, w := range in.Wounds {
			fmt.Fprintf(&b, "- %s | %s | onset %s | last %s\n",
				w.Description, w.Location,
				fmtDateOrNotDocumented(w.OnsetDate), fmtDateOrNotDocumented(w.VisitDate))
		}
	}

	b.WriteString("\n6. Functional / ADL Status (OASIS)\n")
	fmt.Fprintf(&b, "Assessment date: %s\n", fmtDateOrNotDocumented(in.Oasis.LatestDate))
	assessmentType := in.Oasis.AssessmentType
	if assessmentType == "" {
		assessmentType = templateMissingMarker
	}
	fmt.Fprintf(&b, "Assessment type: %s\n", assessmentType)
	if len(in.Oasis.ADL) == 0 {
		b.WriteString(templateMissingMarker + "\n")
	} else {
		for _, entry := range in.Oasis.ADL {
			fmt.Fprintf(&b, "- %s: %s\n", entry.Field, entry.Value)
		}
	}

	b.WriteString("\n7. Recent Notes\n")
	if len(in.Notes) == 0 {
		b.WriteString(templateMissingMarker + "\n")
	} else {
		for _, n := range in.Notes {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", fmtDateOrNotDocumented(n.Date), n.Type, n.Snippet)
		}
	}

	return strings.TrimSpace(b.String())
}

func fallbackEpisodeLabel(id *int) string {
	if id == nil {
		return templateMissingMarker
	}
	return fmt.Sprintf("%d", *id)
}

func fallbackReadingLabel(reading *float64) string {
	if reading == nil {
		return templateMissingMarker
	}
	return fmt.Sprintf("%v", *reading)
}
