// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/okian/compass/internal/domain/psych"
)

// AssessmentDependencies defines the interface for the assessment lifecycle.
type AssessmentDependencies interface {
	IssueAssessment(ctx context.Context, count int) (Assessment, error)
	ScoreAssessment(ctx context.Context, sessionID string, answers map[string]string) (psych.Result, error)
}

// AssessmentHandler handles question issuance and answer scoring.
type AssessmentHandler struct {
	deps AssessmentDependencies
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(deps AssessmentDependencies) *AssessmentHandler {
	return &AssessmentHandler{deps: deps}
}

type questionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionsResponse struct {
	SessionID string             `json:"session_id"`
	Questions []questionResponse `json:"questions"`
}

type scoreRequest struct {
	SessionID string            `json:"session_id" validate:"required"`
	Responses map[string]string `json:"responses" validate:"required,min=1"`
}

type scoreResponse struct {
	Score           float64  `json:"score"`
	Tier            string   `json:"tier"`
	Recommendations []string `json:"recommendations"`
}

// HandleQuestions handles GET /assessment/questions?count=N requests. An
// absent count uses the configured default.
func (h *AssessmentHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	const op = "api.assessment_questions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	count := 0
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		count = n
	}

	issued, err := h.deps.IssueAssessment(r.Context(), count)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	questions := make([]questionResponse, len(issued.Questions))
	for i, q := range issued.Questions {
		questions[i] = questionResponse{ID: q.ID, Text: q.Text}
	}
	writeJSON(w, http.StatusOK, questionsResponse{SessionID: issued.SessionID, Questions: questions})
}

// HandleScore handles POST /assessment/score requests.
func (h *AssessmentHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.assessment_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.ScoreAssessment(r.Context(), req.SessionID, req.Responses)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Score:           result.Score,
		Tier:            string(result.Tier),
		Recommendations: result.Recommendations,
	})
}
