// Package psych converts Likert-style answer sets into normalized aptitude
// scores and coarse recommendation tiers.
package psych

import (
	"context"
	"fmt"
	"strings"
)

// Tier is a coarse outcome band derived from the normalized score.
type Tier string

// Tiers, highest first. Bands are closed-open: [80,100] High, [50,80) Mid,
// [0,50) Low.
const (
	TierHigh Tier = "high"
	TierMid  Tier = "mid"
	TierLow  Tier = "low"
)

// Band boundaries on the normalized 0-100 scale.
const (
	tierHighMin = 80.0
	tierMidMin  = 50.0
)

// Per-answer contributions.
const (
	agreePoints   = 1.0
	neutralPoints = 0.5
	maxScoreValue = 100.0
)

// Result is the outcome of scoring one response set.
type Result struct {
	Score           float64
	Tier            Tier
	Recommendations []string
}

// Scorer scores psychometric responses. Tier recommendation lists are
// static configuration, not scored against the catalog.
type Scorer struct {
	recommendations map[Tier][]string
}

// New creates a Scorer with the stock tier recommendations, adjusted by
// options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		recommendations: map[Tier][]string{
			TierHigh: {"AI/ML Engineer", "Data Scientist", "Research Analyst"},
			TierMid:  {"Software Developer", "Business Analyst", "QA Engineer"},
			TierLow:  {"Technical Support", "Sales Executive", "Customer Success"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score validates that responses answer exactly the issued question set,
// then computes the normalized aptitude score and its tier. Validation
// failures are reported before any scoring runs; a partial score is never
// produced.
func (s *Scorer) Score(ctx context.Context, responses map[string]string, issuedIDs []string) (Result, error) {
	if len(responses) == 0 {
		return Result{}, ErrNoResponses
	}
	if err := validateIDs(responses, issuedIDs); err != nil {
		return Result{}, err
	}

	var sum float64
	for _, answer := range responses {
		sum += contribution(answer)
	}
	score := maxScoreValue * sum / float64(len(responses))

	tier := tierFor(score)
	recs := make([]string, len(s.recommendations[tier]))
	copy(recs, s.recommendations[tier])

	return Result{Score: score, Tier: tier, Recommendations: recs}, nil
}

// Recommendations returns the static role list configured for tier.
func (s *Scorer) Recommendations(tier Tier) []string {
	recs := make([]string, len(s.recommendations[tier]))
	copy(recs, s.recommendations[tier])
	return recs
}

// contribution maps an answer label to its point value. Agreement labels
// are matched case-insensitively; anything unrecognized scores 0.
func contribution(answer string) float64 {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "agree", "strongly agree":
		return agreePoints
	case "neutral":
		return neutralPoints
	default:
		return 0
	}
}

func tierFor(score float64) Tier {
	switch {
	case score >= tierHighMin:
		return TierHigh
	case score >= tierMidMin:
		return TierMid
	default:
		return TierLow
	}
}

// validateIDs checks that the response keys and the issued question ids
// are identical sets. Missing and extra answers are both client errors.
func validateIDs(responses map[string]string, issuedIDs []string) error {
	issued := make(map[string]struct{}, len(issuedIDs))
	for _, id := range issuedIDs {
		issued[id] = struct{}{}
	}
	for _, id := range issuedIDs {
		if _, ok := responses[id]; !ok {
			return fmt.Errorf("%w: missing answer for question %q", ErrResponseMismatch, id)
		}
	}
	for id := range responses {
		if _, ok := issued[id]; !ok {
			return fmt.Errorf("%w: answer for unissued question %q", ErrResponseMismatch, id)
		}
	}
	return nil
}
