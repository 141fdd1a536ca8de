// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/compass/internal/domain/model"
)

// RoleDependencies defines the interface for catalog read operations.
type RoleDependencies interface {
	ListRoles(ctx context.Context, category string) ([]model.Role, error)
}

// RolesHandler handles catalog listing requests.
type RolesHandler struct {
	deps RoleDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RoleDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

type roleResponse struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	RequiredSkills []string `json:"required_skills"`
}

// HandleListRoles handles GET /roles?category=X requests. An empty or
// absent category returns the whole catalog.
func (h *RolesHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_roles"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	roles, err := h.deps.ListRoles(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	out := make([]roleResponse, len(roles))
	for i, role := range roles {
		out[i] = roleResponse{
			Name:           role.Name,
			Category:       role.Category,
			RequiredSkills: role.RequiredSkills,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
