// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/compass/internal/adapters/ai"
	"github.com/okian/compass/internal/adapters/repository"
	service "github.com/okian/compass/internal/app"
	"github.com/okian/compass/internal/domain/match"
	"github.com/okian/compass/internal/domain/model"
	"github.com/okian/compass/internal/domain/psych"
	"github.com/okian/compass/internal/domain/rank"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Scoring read paths over the catalog snapshot.
	MatchSkills(ctx context.Context, skills []string, threshold *float64) ([]string, error)
	Recommend(ctx context.Context, profile model.Profile, topN *int) ([]model.RankedRole, error)
	ListRoles(ctx context.Context, category string) ([]model.Role, error)

	// Assessment lifecycle.
	IssueAssessment(ctx context.Context, count int) (Assessment, error)
	ScoreAssessment(ctx context.Context, sessionID string, answers map[string]string) (psych.Result, error)

	// Collaborator-backed paths.
	AnalyzeResume(ctx context.Context, text string) (AnalysisResult, error)
	Chat(ctx context.Context, message string) (string, error)
}

// Assessment mirrors the issued question-set shape from the service layer.
type Assessment = service.Assessment

// AnalysisResult mirrors the resume analysis shape from the service layer.
type AnalysisResult = service.AnalysisResult

// Request bodies are checked with a shared validator instance; the
// struct tags are the single place request shape rules live.
var validate = validator.New() //nolint:gochecknoglobals // validator instances are designed to be shared

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	rolesHandler      *RolesHandler
	matchHandler      *MatchHandler
	recommendHandler  *RecommendHandler
	assessmentHandler *AssessmentHandler
	resumeHandler     *ResumeHandler
	chatHandler       *ChatHandler
}

// NewServer creates a new API server with all handlers. maxTopN bounds the
// per-request ranking limit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTopN int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		rolesHandler:      NewRolesHandler(deps),
		matchHandler:      NewMatchHandler(deps),
		recommendHandler:  NewRecommendHandler(deps, maxTopN),
		assessmentHandler: NewAssessmentHandler(deps),
		resumeHandler:     NewResumeHandler(deps),
		chatHandler:       NewChatHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roles", MetricsMiddleware(s.rolesHandler.HandleListRoles, "roles"))
	mux.HandleFunc("/match", MetricsMiddleware(s.matchHandler.HandleMatch, "match"))
	mux.HandleFunc("/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/assessment/questions", MetricsMiddleware(s.assessmentHandler.HandleQuestions, "assessment_questions"))
	mux.HandleFunc("/assessment/score", MetricsMiddleware(s.assessmentHandler.HandleScore, "assessment_score"))
	mux.HandleFunc("/resume/skills", MetricsMiddleware(s.resumeHandler.HandleAnalyze, "resume_skills"))
	mux.HandleFunc("/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps engine sentinel kinds to HTTP statuses. Anything
// not recognized is an internal error.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", Wrap(op, err))
	case errors.Is(err, ai.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "advisor_unavailable", Wrap(op, err))
	case errors.Is(err, service.ErrUnknownSession):
		writeError(w, http.StatusNotFound, "unknown_session", Wrap(op, err))
	case errors.Is(err, match.ErrInvalidThreshold),
		errors.Is(err, rank.ErrInvalidStanding),
		errors.Is(err, psych.ErrNoResponses),
		errors.Is(err, psych.ErrResponseMismatch),
		errors.Is(err, service.ErrInsufficientQuestions):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
