// Package rank scores catalog roles against structured candidate profiles.
package rank

import (
	"context"
	"sort"

	"github.com/okian/compass/internal/domain/catalog"
	"github.com/okian/compass/internal/domain/model"
)

// Default ranking configuration constants.
const (
	// DefaultTopN bounds the ranking when callers do not override it.
	DefaultTopN = 5

	defaultInterestWeight = 0.5
	defaultAcademicWeight = 1.0
)

// Ranker computes profile-vs-role scores. The formula is
//
//	score = |skills ∩ required| + interestWeight*|interests ∩ required| + academicWeight*standing
//
// The academic-standing term is added unconditionally, so candidates are
// never ranked purely by skill overlap. The term is not normalized against
// the overlap counts; callers comparing profiles on very different
// standing scales will see it dominate, which is why its weight is
// configurable.
type Ranker struct {
	interestWeight float64
	academicWeight float64
}

// New creates a Ranker with default weights, adjusted by options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		interestWeight: defaultInterestWeight,
		academicWeight: defaultAcademicWeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate role against profile and returns the topN
// highest, ordered by score descending with catalog order breaking ties.
// Skill and interest intersections use exact, case-sensitive label
// equality against the stored required-skill labels. A non-positive topN
// or a category filter matching no roles yields an empty result, not an
// error. A negative academic standing is a malformed profile.
func (r *Ranker) Rank(ctx context.Context, cat *catalog.Catalog, profile model.Profile, topN int) ([]model.RankedRole, error) {
	if profile.AcademicStanding < 0 {
		return nil, ErrInvalidStanding
	}
	if topN <= 0 {
		return []model.RankedRole{}, nil
	}

	skills := labelSet(profile.Skills)
	interests := labelSet(profile.Interests)

	candidates := cat.ListRoles(profile.Category)
	scored := make([]model.RankedRole, 0, len(candidates))
	for _, role := range candidates {
		matched, interested := overlap(role.RequiredSkills, skills, interests)
		score := float64(matched) +
			r.interestWeight*float64(interested) +
			r.academicWeight*profile.AcademicStanding
		scored = append(scored, model.RankedRole{Role: role.Name, Score: score})
	}

	// Stable sort keeps catalog order for equal scores, making repeated
	// runs over an unchanged catalog return identical sequences.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topN < len(scored) {
		scored = scored[:topN]
	}
	return scored, nil
}

// overlap counts distinct required-skill labels present in the skill and
// interest sets. Duplicate required labels are not meaningful.
func overlap(required []string, skills, interests map[string]struct{}) (matched, interested int) {
	seen := make(map[string]struct{}, len(required))
	for _, label := range required {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		if _, ok := skills[label]; ok {
			matched++
		}
		if _, ok := interests[label]; ok {
			interested++
		}
	}
	return matched, interested
}

func labelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
