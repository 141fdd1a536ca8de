package service

import (
	"github.com/okian/compass/internal/adapters/ai"
	"github.com/okian/compass/internal/adapters/extract"
	"github.com/okian/compass/internal/adapters/repository"
	"github.com/okian/compass/internal/domain/session"
	"github.com/okian/compass/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithStore sets the catalog store. Required before Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithSessions replaces the default in-memory session registry.
func WithSessions(registry session.Registry) Option {
	return func(s *Service) {
		if registry != nil {
			s.sessions = registry
		}
	}
}

// WithExtractor replaces the default keyword extractor.
func WithExtractor(extractor extract.Extractor) Option {
	return func(s *Service) {
		if extractor != nil {
			s.extractor = extractor
		}
	}
}

// WithAdvisor sets the conversational advisor collaborator.
func WithAdvisor(advisor ai.Advisor) Option {
	return func(s *Service) {
		s.advisor = advisor
	}
}

// WithPredictor sets the role classifier collaborator.
func WithPredictor(predictor ai.Predictor) Option {
	return func(s *Service) {
		s.predictor = predictor
	}
}

// WithMatchThreshold sets the default skill matching threshold.
func WithMatchThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.matchThreshold = threshold
		}
	}
}

// WithInterestWeight sets the interest overlap weight used in ranking.
func WithInterestWeight(weight float64) Option {
	return func(s *Service) {
		if weight >= 0 {
			s.interestWeight = weight
		}
	}
}

// WithAcademicWeight sets the academic standing weight used in ranking.
func WithAcademicWeight(weight float64) Option {
	return func(s *Service) {
		if weight >= 0 {
			s.academicWeight = weight
		}
	}
}

// WithDefaultTopN sets the ranking bound used when requests omit one.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithQuestionCount sets how many questions an assessment issues by default.
func WithQuestionCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.questionCount = n
		}
	}
}

// WithMaxResults caps the merged recommendation list on the resume path.
func WithMaxResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithTierRecommendations overrides the static role lists returned per
// assessment tier. Keys are tier names ("high", "mid", "low").
func WithTierRecommendations(recs map[string][]string) Option {
	return func(s *Service) {
		if len(recs) > 0 {
			s.tierRecommended = recs
		}
	}
}

// WithSessionCacheSize bounds the number of concurrently open assessment
// sessions.
func WithSessionCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionCache = n
		}
	}
}
