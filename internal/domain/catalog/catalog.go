// Package catalog holds the immutable reference tables scoring runs against.
//
// A Catalog is built once from typed tables and never mutated afterwards,
// so arbitrarily many concurrent scoring calls may read the same snapshot
// without coordination.
package catalog

import (
	"github.com/okian/compass/internal/domain/model"
)

// Catalog is an immutable snapshot of the reference data: role definitions,
// the skill-affinity matrix, and the psychometric question bank.
type Catalog struct {
	roles     []model.Role
	affinity  []model.AffinityRow
	byRole    map[string]int // role name -> index into affinity
	questions []model.Question
}

// New builds a catalog from typed tables. Inputs are copied; callers may
// not mutate the catalog through retained slices.
func New(roles []model.Role, affinity []model.AffinityRow, questions []model.Question) *Catalog {
	c := &Catalog{
		roles:     make([]model.Role, len(roles)),
		affinity:  make([]model.AffinityRow, len(affinity)),
		byRole:    make(map[string]int, len(affinity)),
		questions: make([]model.Question, len(questions)),
	}
	for i, r := range roles {
		skills := make([]string, len(r.RequiredSkills))
		copy(skills, r.RequiredSkills)
		c.roles[i] = model.Role{Name: r.Name, Category: r.Category, RequiredSkills: skills}
	}
	for i, row := range affinity {
		weights := make(map[string]float64, len(row.Weights))
		for skill, w := range row.Weights {
			weights[skill] = w
		}
		c.affinity[i] = model.AffinityRow{RoleName: row.RoleName, Weights: weights}
		c.byRole[row.RoleName] = i
	}
	copy(c.questions, questions)
	return c
}

// ListRoles returns roles in catalog order. A non-empty category filters by
// exact, case-sensitive match; a filter matching nothing yields an empty
// slice, not an error.
func (c *Catalog) ListRoles(category string) []model.Role {
	out := make([]model.Role, 0, len(c.roles))
	for _, r := range c.roles {
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Affinity returns the configured weight of skill for role, or 0 when
// either the role or the skill is unrecognized. It never fails.
func (c *Catalog) Affinity(role, skill string) float64 {
	i, ok := c.byRole[role]
	if !ok {
		return 0
	}
	return c.affinity[i].Weight(skill)
}

// AffinityRows returns the affinity matrix rows in catalog order.
func (c *Catalog) AffinityRows() []model.AffinityRow {
	return c.affinity
}

// Questions returns the question bank in catalog order.
func (c *Catalog) Questions() []model.Question {
	out := make([]model.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// RoleCount returns the number of roles in the catalog.
func (c *Catalog) RoleCount() int {
	return len(c.roles)
}

// QuestionCount returns the size of the question bank.
func (c *Catalog) QuestionCount() int {
	return len(c.questions)
}
