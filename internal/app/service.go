// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/compass/internal/adapters/ai"
	"github.com/okian/compass/internal/adapters/extract"
	"github.com/okian/compass/internal/adapters/repository"
	"github.com/okian/compass/internal/domain/aggregate"
	"github.com/okian/compass/internal/domain/match"
	"github.com/okian/compass/internal/domain/model"
	"github.com/okian/compass/internal/domain/psych"
	"github.com/okian/compass/internal/domain/rank"
	"github.com/okian/compass/internal/domain/session"
	"github.com/okian/compass/pkg/logger"
	"github.com/okian/compass/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQuestionCount = 10
	defaultMaxResults    = 10
	defaultSessionCache  = 10000
)

// Assessment is an issued psychometric question set plus its session token.
type Assessment struct {
	SessionID string
	Questions []model.Question
}

// AnalysisResult is the outcome of the resume analysis path.
type AnalysisResult struct {
	Skills          []string
	MatchedRoles    []string
	Recommendations []string
}

// Service implements the guidance engine operations behind the HTTP API.
// All scoring runs synchronously over one immutable catalog snapshot per
// call; the only mutable state is the assessment session registry.
type Service struct {
	mu sync.Mutex // guards rng and started

	// Core components
	store     repository.Store
	matcher   *match.Matcher
	ranker    *rank.Ranker
	scorer    *psych.Scorer
	sessions  session.Registry
	extractor extract.Extractor

	// Optional model collaborators; nil means unavailable.
	advisor   ai.Advisor
	predictor ai.Predictor

	// Configuration
	matchThreshold  float64
	interestWeight  float64
	academicWeight  float64
	defaultTopN     int
	questionCount   int
	maxResults      int
	sessionCache    int
	tierRecommended map[string][]string

	rng     *rand.Rand
	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		matchThreshold: match.DefaultThreshold,
		interestWeight: -1, // negative means "use package default"
		academicWeight: -1,
		defaultTopN:    rank.DefaultTopN,
		questionCount:  defaultQuestionCount,
		maxResults:     defaultMaxResults,
		sessionCache:   defaultSessionCache,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // sampling questions, not secrets
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start wires the engine components and performs the initial catalog load.
// A failed load leaves the store in the unavailable state; scoring calls
// fail fast until a later Reload succeeds.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return ErrStoreRequired
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.matcher = match.New(match.WithThreshold(s.matchThreshold))

	rankOpts := make([]rank.Option, 0, 2)
	if s.interestWeight >= 0 {
		rankOpts = append(rankOpts, rank.WithInterestWeight(s.interestWeight))
	}
	if s.academicWeight >= 0 {
		rankOpts = append(rankOpts, rank.WithAcademicWeight(s.academicWeight))
	}
	s.ranker = rank.New(rankOpts...)

	psychOpts := make([]psych.Option, 0, len(s.tierRecommended))
	for tier, roles := range s.tierRecommended {
		psychOpts = append(psychOpts, psych.WithRecommendations(psych.Tier(tier), roles))
	}
	s.scorer = psych.New(psychOpts...)

	if s.sessions == nil {
		s.sessions = session.NewInMemoryRegistry(session.WithMaxSize(s.sessionCache))
	}
	if s.extractor == nil {
		s.extractor = extract.NewKeywordExtractor()
	}

	if err := s.Reload(ctx); err != nil {
		s.logger.Warn(ctx, "initial catalog load failed; scoring unavailable until reload",
			logger.Error(err))
	}

	s.started = true
	s.logger.Info(ctx, "guidance service started",
		logger.Float64("matchThreshold", s.matchThreshold),
		logger.Int("defaultTopN", s.defaultTopN),
		logger.Int("questionCount", s.questionCount),
		logger.Bool("advisorAvailable", s.advisor != nil),
	)
	return nil
}

// Stop shuts the service down. Present for symmetry with Start; the
// engine holds no resources that need teardown.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "guidance service stopped")
}

// Reload re-reads the catalog tables wholesale and updates the catalog
// gauges on success.
func (s *Service) Reload(ctx context.Context) error {
	err := s.store.Reload(ctx)
	metrics.RecordCatalogReload(err == nil)
	if err != nil {
		return err
	}
	cat, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	metrics.UpdateCatalogSize(cat.RoleCount(), cat.QuestionCount())
	return nil
}

// MatchSkills qualifies catalog roles against a raw skill list. A nil
// threshold uses the configured default; a non-positive threshold is a
// validation error.
func (s *Service) MatchSkills(ctx context.Context, skills []string, threshold *float64) ([]string, error) {
	cat, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	set := model.NewSkillSet(skills...)
	var roles []string
	if threshold == nil {
		roles, err = s.matcher.Match(ctx, cat, set)
	} else {
		roles, err = s.matcher.MatchThreshold(ctx, cat, set, *threshold)
	}
	if err != nil {
		return nil, err
	}
	metrics.ObserveScoringDuration("match", float64(time.Since(start).Microseconds())/1000)
	metrics.RecordRecommendations("match")
	return roles, nil
}

// Recommend ranks catalog roles against a profile. A nil topN uses the
// configured default.
func (s *Service) Recommend(ctx context.Context, profile model.Profile, topN *int) ([]model.RankedRole, error) {
	cat, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	n := s.defaultTopN
	if topN != nil {
		n = *topN
	}

	start := time.Now()
	ranked, err := s.ranker.Rank(ctx, cat, profile, n)
	if err != nil {
		return nil, err
	}
	metrics.ObserveScoringDuration("rank", float64(time.Since(start).Microseconds())/1000)
	metrics.RecordRecommendations("profile")
	return ranked, nil
}

// ListRoles returns catalog roles, optionally filtered by exact category.
func (s *Service) ListRoles(ctx context.Context, category string) ([]model.Role, error) {
	cat, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return cat.ListRoles(category), nil
}

// IssueAssessment samples questions from the bank without replacement and
// opens a session recording the issued question ids. A non-positive count
// uses the configured default.
func (s *Service) IssueAssessment(ctx context.Context, count int) (Assessment, error) {
	cat, err := s.store.Snapshot(ctx)
	if err != nil {
		return Assessment{}, err
	}
	if count <= 0 {
		count = s.questionCount
	}

	bank := cat.Questions()
	if len(bank) < count {
		return Assessment{}, ErrInsufficientQuestions
	}

	s.mu.Lock()
	s.rng.Shuffle(len(bank), func(i, j int) { bank[i], bank[j] = bank[j], bank[i] })
	s.mu.Unlock()
	picked := bank[:count]

	ids := make([]string, len(picked))
	for i, q := range picked {
		ids[i] = q.ID
	}
	token := s.sessions.Issue(ctx, ids)

	metrics.RecordSessionIssued()
	metrics.UpdateOpenSessions(s.sessions.Size())
	return Assessment{SessionID: token, Questions: picked}, nil
}

// ScoreAssessment validates the answers against the session's issued
// question set and scores them. The session is consumed even when
// scoring fails validation; re-answering requires a fresh question set.
func (s *Service) ScoreAssessment(ctx context.Context, sessionID string, answers map[string]string) (psych.Result, error) {
	if _, err := s.store.Snapshot(ctx); err != nil {
		return psych.Result{}, err
	}

	issued, ok := s.sessions.Claim(ctx, sessionID)
	metrics.UpdateOpenSessions(s.sessions.Size())
	if !ok {
		return psych.Result{}, ErrUnknownSession
	}

	start := time.Now()
	result, err := s.scorer.Score(ctx, answers, issued)
	if err != nil {
		return psych.Result{}, err
	}
	metrics.ObserveScoringDuration("assessment", float64(time.Since(start).Microseconds())/1000)
	metrics.RecordRecommendations("assessment")
	return result, nil
}

// AnalyzeResume extracts skills from resume text, matches them against
// the catalog, and merges in the classifier's suggestion when available.
// Classifier failures degrade to matcher-only output.
func (s *Service) AnalyzeResume(ctx context.Context, text string) (AnalysisResult, error) {
	cat, err := s.store.Snapshot(ctx)
	if err != nil {
		return AnalysisResult{}, err
	}

	skills := s.extractor.Extract(ctx, text)
	matched, err := s.matcher.Match(ctx, cat, skills)
	if err != nil {
		return AnalysisResult{}, err
	}

	var predicted []string
	if s.predictor != nil && skills.Len() > 0 {
		prediction, err := s.predictor.Predict(ctx, skills.Labels())
		if err != nil {
			s.logger.Warn(ctx, "classifier unavailable for resume analysis", logger.Error(err))
		} else {
			predicted = []string{prediction.Label}
		}
	}

	metrics.RecordRecommendations("resume")
	return AnalysisResult{
		Skills:          skills.Labels(),
		MatchedRoles:    matched,
		Recommendations: aggregate.Merge(s.maxResults, matched, predicted),
	}, nil
}

// Chat forwards a message to the advisor collaborator.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	if s.advisor == nil {
		return "", ai.ErrUnavailable
	}
	reply, err := s.advisor.Ask(ctx, message)
	metrics.RecordAdvisorRequest(err == nil)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	stats := map[string]interface{}{
		"started":          started,
		"catalogAvailable": s.store != nil && s.store.Available(),
		"advisorAvailable": s.advisor != nil,
	}
	if s.store != nil && s.store.Available() {
		if cat, err := s.store.Snapshot(context.Background()); err == nil {
			stats["roleCount"] = cat.RoleCount()
			stats["questionCount"] = cat.QuestionCount()
		}
	}
	if s.sessions != nil {
		stats["openSessions"] = s.sessions.Size()
	}
	return stats
}
