package psych

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithRecommendations replaces the recommendation list for a tier.
// Empty lists are ignored.
func WithRecommendations(tier Tier, roles []string) Option {
	return func(s *Scorer) {
		if len(roles) == 0 {
			return
		}
		copied := make([]string, len(roles))
		copy(copied, roles)
		s.recommendations[tier] = copied
	}
}
