// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/compass/internal/domain/model"
)

// RecommendDependencies defines the interface for profile ranking operations.
type RecommendDependencies interface {
	Recommend(ctx context.Context, profile model.Profile, topN *int) ([]model.RankedRole, error)
}

// RecommendHandler handles profile ranking requests.
type RecommendHandler struct {
	deps    RecommendDependencies
	maxTopN int
}

// NewRecommendHandler creates a new recommend handler.
func NewRecommendHandler(deps RecommendDependencies, maxTopN int) *RecommendHandler {
	return &RecommendHandler{deps: deps, maxTopN: maxTopN}
}

type recommendRequest struct {
	Name             string   `json:"name" validate:"required"`
	AcademicStanding float64  `json:"academic_standing" validate:"gte=0"`
	Interests        []string `json:"interests"`
	Skills           []string `json:"skills"`
	Category         string   `json:"category,omitempty"`
	TopN             *int     `json:"top_n,omitempty" validate:"omitempty,gt=0"`
}

type rankedRoleResponse struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

type recommendResponse struct {
	Recommendations []rankedRoleResponse `json:"recommendations"`
}

// HandleRecommend handles POST /recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.TopN != nil && *req.TopN > h.maxTopN {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	profile := model.Profile{
		Name:             req.Name,
		AcademicStanding: req.AcademicStanding,
		Interests:        req.Interests,
		Skills:           req.Skills,
		Category:         req.Category,
	}
	ranked, err := h.deps.Recommend(r.Context(), profile, req.TopN)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	out := make([]rankedRoleResponse, len(ranked))
	for i, rr := range ranked {
		out[i] = rankedRoleResponse{Role: rr.Role, Score: rr.Score}
	}
	writeJSON(w, http.StatusOK, recommendResponse{Recommendations: out})
}
