package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/caretrace-ai/caretrace-engine/pkg/apperrors"
	"github.com/caretrace-ai/caretrace-engine/pkg/models"
	"github.com/caretrace-ai/caretrace-engine/pkg/services"
)

// GenerateSummaryRequest for POST /generate_summary.
type GenerateSummaryRequest struct {
	PatientID int `json:"patient_id"`
	// UseLLM defaults to true when omitted.
	UseLLM *bool `json:"use_llm"`
	// Model overrides the configured default model when set.
	Model string `json:"model"`
}

// GenerateSummaryResponse for POST /generate_summary.
type GenerateSummaryResponse struct {
	PatientID int                 `json:"patient_id"`
	Summary   string              `json:"summary"`
	Debug     models.SummaryDebug `json:"debug"`
}

// SummaryGenerator is the service contract the handler depends on.
// Satisfied by *services.SummaryService; mocked in tests.
type SummaryGenerator interface {
	Generate(ctx context.Context, patientID int, useLLM bool, model string) (*services.GenerateResult, error)
}

// SummaryHandler handles clinical summary generation requests.
type SummaryHandler struct {
	service SummaryGenerator
	logger  *zap.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(service SummaryGenerator, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{service: service, logger: logger}
}

// RegisterRoutes registers the summary handler's routes on the given mux.
func (h *SummaryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /generate_summary", h.GenerateSummary)
}

// GenerateSummary handles POST /generate_summary.
// Unknown patients map to 404; generation failures never surface as errors
// here because the service degrades to the fallback template.
func (h *SummaryHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.PatientID <= 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "patient_id is required")
		return
	}

	useLLM := true
	if req.UseLLM != nil {
		useLLM = *req.UseLLM
	}

	result, err := h.service.Generate(r.Context(), req.PatientID, useLLM, req.Model)
	if err != nil {
		if errors.Is(err, apperrors.ErrPatientNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "patient_not_found",
				fmt.Sprintf("No data found for patient_id=%d", req.PatientID))
			return
		}
		h.logger.Error("summary generation failed",
			zap.Int("patient_id", req.PatientID),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to generate summary")
		return
	}

	response := GenerateSummaryResponse{
		PatientID: result.PatientID,
		Summary:   result.Summary,
		Debug:     result.Debug,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode summary response", zap.Error(err))
	}
}
