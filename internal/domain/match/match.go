// Package match computes affinity between skill sets and catalog roles.
package match

import (
	"context"

	"github.com/okian/compass/internal/domain/catalog"
	"github.com/okian/compass/internal/domain/model"
)

// DefaultThreshold is the minimum summed affinity a role needs to qualify
// when callers do not override it. It separates "some overlap" from
// "meaningful overlap": one weakly-weighted skill must not qualify a role.
const DefaultThreshold = 3.0

// Matcher qualifies catalog roles against arbitrary skill sets.
type Matcher struct {
	threshold float64
}

// New creates a Matcher with the default threshold, adjusted by options.
func New(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match qualifies roles using the configured threshold.
func (m *Matcher) Match(ctx context.Context, cat *catalog.Catalog, skills model.SkillSet) ([]string, error) {
	return m.MatchThreshold(ctx, cat, skills, m.threshold)
}

// MatchThreshold sums the affinity of every input skill per role and
// returns the names of roles whose sum is greater than or equal to
// threshold, de-duplicated, in catalog order. Unknown skills contribute 0
// and never fail; an empty skill set yields an empty result.
func (m *Matcher) MatchThreshold(ctx context.Context, cat *catalog.Catalog, skills model.SkillSet, threshold float64) ([]string, error) {
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}

	matched := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range cat.AffinityRows() {
		var sum float64
		for _, skill := range skills.Labels() {
			sum += row.Weight(skill)
		}
		if sum < threshold {
			continue
		}
		if _, dup := seen[row.RoleName]; dup {
			continue
		}
		seen[row.RoleName] = struct{}{}
		matched = append(matched, row.RoleName)
	}
	return matched, nil
}
