// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// ResumeDependencies defines the interface for resume analysis operations.
type ResumeDependencies interface {
	AnalyzeResume(ctx context.Context, text string) (AnalysisResult, error)
}

// ResumeHandler handles resume skill extraction requests.
type ResumeHandler struct {
	deps ResumeDependencies
}

// NewResumeHandler creates a new resume handler.
func NewResumeHandler(deps ResumeDependencies) *ResumeHandler {
	return &ResumeHandler{deps: deps}
}

type resumeRequest struct {
	Text string `json:"text" validate:"required"`
}

type resumeResponse struct {
	Skills          []string `json:"skills"`
	MatchedRoles    []string `json:"matched_roles"`
	Recommendations []string `json:"recommendations"`
}

// HandleAnalyze handles POST /resume/skills requests. Document parsing is
// the caller's job; the body carries already extracted plain text.
func (h *ResumeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.resume_skills"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.AnalyzeResume(r.Context(), req.Text)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resumeResponse{
		Skills:          result.Skills,
		MatchedRoles:    result.MatchedRoles,
		Recommendations: result.Recommendations,
	})
}
