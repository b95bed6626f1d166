package models

import "time"

// MedicationSummary is one deduplicated medication entry. Two rows are
// duplicates only when all four fields match.
type MedicationSummary struct {
	Name           string `json:"name"`
	Frequency      string `json:"frequency"`
	Classification string `json:"classification"`
	Reason         string `json:"reason"`
}

// VitalReading is the most recent dated reading for one vital type.
type VitalReading struct {
	VitalType string     `json:"vital_type"`
	Reading   *float64   `json:"reading"`
	Min       *float64   `json:"min"`
	Max       *float64   `json:"max"`
	Date      *time.Time `json:"date"`
}

// VitalsSummary holds the latest reading per vital type plus abnormality
// flags. Readings are ordered by vital type name for determinism.
type VitalsSummary struct {
	LatestDate *time.Time     `json:"latest_date"`
	Latest     []VitalReading `json:"latest_vitals"`
	Abnormal   []string       `json:"abnormal"`
}

// NoteHighlight is one recent clinician note with a truncated snippet.
type NoteHighlight struct {
	Date    *time.Time `json:"date"`
	Type    string     `json:"type"`
	Snippet string     `json:"snippet"`
}

// WoundSummary is one wound row carried through untruncated.
type WoundSummary struct {
	Location    string     `json:"location"`
	Description string     `json:"description"`
	OnsetDate   *time.Time `json:"onset_date"`
	VisitDate   *time.Time `json:"visit_date"`
}

// ADLEntry is one functional-status field from the latest OASIS assessment.
type ADLEntry struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// OasisSummary is the latest functional assessment. ADL holds only fields
// whose columns exist in the loaded schema, in canonical order.
type OasisSummary struct {
	LatestDate     *time.Time `json:"latest_date"`
	AssessmentType string     `json:"assessment_type"`
	ADL            []ADLEntry `json:"adl"`
}

// SummaryInput is the per-request structured reduction of a patient's
// episode data, consumed by the prompt builder and the fallback template.
type SummaryInput struct {
	PatientID   int                 `json:"patient_id"`
	EpisodeID   *int                `json:"episode_id"`
	Diagnoses   []string            `json:"diagnoses_summary"`
	Medications []MedicationSummary `json:"medications_summary"`
	Vitals      VitalsSummary       `json:"vitals_summary"`
	Notes       []NoteHighlight     `json:"note_highlights"`
	Wounds      []WoundSummary      `json:"wounds_summary"`
	Oasis       OasisSummary        `json:"oasis_summary"`
}

// SummaryDebug is the debug metadata attached to every generate response.
type SummaryDebug struct {
	RequestID     string `json:"request_id"`
	PatientID     int    `json:"patient_id"`
	EpisodeID     *int   `json:"episode_id,omitempty"`
	Found         bool   `json:"found"`
	UseLLM        bool   `json:"use_llm"`
	Model         string `json:"model,omitempty"`
	LLMStatus     string `json:"llm_status,omitempty"`
	Error         string `json:"error,omitempty"`
	PromptPreview string `json:"prompt_preview,omitempty"`
}

// LLM status values reported in SummaryDebug.
const (
	LLMStatusSuccess  = "success"
	LLMStatusFallback = "failed_fallback_used"
	LLMStatusSkipped  = "skipped"
)
