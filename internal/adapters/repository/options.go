package repository

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithRolesFile overrides the role table file name.
func WithRolesFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.rolesFile = name
		}
	}
}

// WithAffinityFile overrides the affinity matrix file name.
func WithAffinityFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.affinityFile = name
		}
	}
}

// WithQuestionsFile overrides the question bank file name.
func WithQuestionsFile(name string) Option {
	return func(s *CSVStore) {
		if name != "" {
			s.questionsFile = name
		}
	}
}
