package match

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithThreshold sets the default qualification threshold. Non-positive
// values are ignored and the package default stays in effect.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold > 0 {
			m.threshold = threshold
		}
	}
}
