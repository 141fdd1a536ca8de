// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// MatchDependencies defines the interface for skill matching operations.
type MatchDependencies interface {
	MatchSkills(ctx context.Context, skills []string, threshold *float64) ([]string, error)
}

// MatchHandler handles skill matching requests.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

type matchRequest struct {
	Skills    []string `json:"skills" validate:"required,min=1,dive,required"`
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gt=0"`
}

type matchResponse struct {
	MatchedRoles []string `json:"matched_roles"`
}

// HandleMatch handles POST /match requests.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	roles, err := h.deps.MatchSkills(r.Context(), req.Skills, req.Threshold)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matchResponse{MatchedRoles: roles})
}
