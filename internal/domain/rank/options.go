package rank

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithInterestWeight sets the weight of the interest-overlap term.
// Negative values are ignored.
func WithInterestWeight(weight float64) Option {
	return func(r *Ranker) {
		if weight >= 0 {
			r.interestWeight = weight
		}
	}
}

// WithAcademicWeight sets the weight of the academic-standing term.
// Negative values are ignored. The default of 1.0 reproduces the
// historical formula.
func WithAcademicWeight(weight float64) Option {
	return func(r *Ranker) {
		if weight >= 0 {
			r.academicWeight = weight
		}
	}
}
