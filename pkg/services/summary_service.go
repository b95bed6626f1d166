package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caretrace-ai/caretrace-engine/pkg/apperrors"
	"github.com/caretrace-ai/caretrace-engine/pkg/ehr"
	"github.com/caretrace-ai/caretrace-engine/pkg/llm"
	"github.com/caretrace-ai/caretrace-engine/pkg/models"
	"github.com/caretrace-ai/caretrace-engine/pkg/prompts"
)

// promptPreviewLimit caps the evidence-text preview attached to debug
// metadata on the fallback path, in runes so truncation never splits a
// multi-byte character.
const promptPreviewLimit = 500

// SummaryService orchestrates the summary pipeline: resolve episode, filter,
// summarize, build the evidence prompt, call the completion backend, and
// fall back to the deterministic template when generation is disabled or
// fails. One linear pass per request, no retries at this layer.
type SummaryService struct {
	store          *ehr.Store
	client         llm.CompletionClient
	defaultModel   string
	temperature    float64
	requestTimeout time.Duration
	noteHighlights int
	logger         *zap.Logger
}

// SummaryServiceConfig wires a SummaryService.
type SummaryServiceConfig struct {
	Store          *ehr.Store
	Client         llm.CompletionClient
	DefaultModel   string
	Temperature    float64
	RequestTimeout time.Duration
	NoteHighlights int
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(cfg SummaryServiceConfig, logger *zap.Logger) *SummaryService {
	noteHighlights := cfg.NoteHighlights
	if noteHighlights <= 0 {
		noteHighlights = DefaultNoteHighlights
	}
	return &SummaryService{
		store:          cfg.Store,
		client:         cfg.Client,
		defaultModel:   cfg.DefaultModel,
		temperature:    cfg.Temperature,
		requestTimeout: cfg.RequestTimeout,
		noteHighlights: noteHighlights,
		logger:         logger,
	}
}

// GenerateResult is the outcome of one summary request.
type GenerateResult struct {
	PatientID int                 `json:"patient_id"`
	Summary   string              `json:"summary"`
	Debug     models.SummaryDebug `json:"debug"`
}

// Generate produces the clinical summary for one patient. Unknown patients
// return apperrors.ErrPatientNotFound alongside a fixed no-data result and
// never reach the completion backend. Generation failures degrade to the
// deterministic fallback template with the error preserved in debug
// metadata; they are never surfaced as hard failures.
func (s *SummaryService) Generate(ctx context.Context, patientID int, useLLM bool, model string) (*GenerateResult, error) {
	if model == "" {
		model = s.defaultModel
	}

	debug := models.SummaryDebug{
		RequestID: uuid.NewString(),
		PatientID: patientID,
		Found:     true,
		UseLLM:    useLLM,
		Model:     model,
	}

	if !s.store.PatientExists(patientID) {
		debug.Found = false
		result := &GenerateResult{
			PatientID: patientID,
			Summary:   fmt.Sprintf("No data found for patient_id=%d.", patientID),
			Debug:     debug,
		}
		return result, fmt.Errorf("%w: patient_id=%d", apperrors.ErrPatientNotFound, patientID)
	}

	bundle := BuildPatientBundle(s.store, patientID)
	debug.EpisodeID = bundle.LatestEpisodeID

	// Episode filtering always applies: with no resolvable episode, rows
	// on episode-linked tables are dropped rather than leaked unfiltered.
	view := BuildEpisodeBundle(s.store, patientID, bundle.LatestEpisodeID)

	input := BuildSummaryInput(view, s.noteHighlights, s.store.ADLColumns)
	prompt := prompts.BuildSummaryPrompt(input)

	if !useLLM {
		debug.LLMStatus = models.LLMStatusSkipped
		return &GenerateResult{
			PatientID: patientID,
			Summary:   prompts.RenderFallbackSummary(input),
			Debug:     debug,
		}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	text, err := s.client.Complete(callCtx, prompt, model, s.temperature)
	if err != nil {
		s.logger.Warn("completion failed, using fallback template",
			zap.Int("patient_id", patientID),
			zap.String("model", model),
			zap.String("request_id", debug.RequestID),
			zap.Error(err))

		debug.LLMStatus = models.LLMStatusFallback
		debug.Error = err.Error()
		debug.PromptPreview = preview(prompt)
		return &GenerateResult{
			PatientID: patientID,
			Summary:   prompts.RenderFallbackSummary(input),
			Debug:     debug,
		}, nil
	}

	debug.LLMStatus = models.LLMStatusSuccess
	return &GenerateResult{
		PatientID: patientID,
		Summary:   text,
		Debug:     debug,
	}, nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= promptPreviewLimit {
		return text
	}
	return string(runes[:promptPreviewLimit])
}
