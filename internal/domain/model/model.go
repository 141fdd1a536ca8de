// Package model contains domain models passed between layers.
package model

import "strings"

// Role describes a catalog career role. Instances are immutable after
// catalog load; Name is unique within the catalog.
type Role struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	RequiredSkills []string `json:"required_skills"`
}

// AffinityRow maps skill labels to non-negative weights for one role.
// Absent skills weigh 0.
type AffinityRow struct {
	RoleName string
	Weights  map[string]float64
}

// Weight returns the configured weight for skill, or 0 when the skill is
// unknown for this role.
func (r AffinityRow) Weight(skill string) float64 {
	return r.Weights[skill]
}

// Question is a single psychometric question from the question bank.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"question"`
}

// Profile is a request-scoped candidate profile.
type Profile struct {
	Name             string
	AcademicStanding float64
	Interests        []string
	Skills           []string
	Category         string // optional category filter; empty means all
}

// RankedRole pairs a role name with its computed score. Orderings are
// by score descending with catalog order breaking ties.
type RankedRole struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

// SkillSet is a deduplicated, lower-cased set of skill labels. Insertion
// order is preserved so downstream output stays deterministic.
type SkillSet struct {
	labels []string
	index  map[string]struct{}
}

// NewSkillSet normalizes labels (trim, lower case) and drops empties and
// duplicates.
func NewSkillSet(labels ...string) SkillSet {
	s := SkillSet{index: make(map[string]struct{}, len(labels))}
	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		if _, ok := s.index[label]; ok {
			continue
		}
		s.index[label] = struct{}{}
		s.labels = append(s.labels, label)
	}
	return s
}

// Labels returns the normalized labels in insertion order.
func (s SkillSet) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Contains reports whether the normalized form of label is in the set.
func (s SkillSet) Contains(label string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// Len returns the number of distinct labels.
func (s SkillSet) Len() int {
	return len(s.labels)
}
