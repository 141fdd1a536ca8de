// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep defaults in New and let Load layer file and env on top.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the catalog CSV tables.
	DataDir string `koanf:"data_dir"`

	// Per-table file names inside DataDir.
	RolesFile     string `koanf:"roles_file"`
	AffinityFile  string `koanf:"affinity_file"`
	QuestionsFile string `koanf:"questions_file"`

	// MatchThreshold is the minimum summed affinity for a skill match.
	MatchThreshold float64 `koanf:"match_threshold"`

	// DefaultTopN bounds profile rankings when the request omits top_n;
	// MaxTopN caps what a request may ask for.
	DefaultTopN int `koanf:"default_top_n"`
	MaxTopN     int `koanf:"max_top_n"`

	// QuestionCount is the number of psychometric questions issued per
	// assessment session.
	QuestionCount int `koanf:"question_count"`

	// MaxResults caps merged recommendation lists on the resume path.
	MaxResults int `koanf:"max_results"`

	// InterestWeight and AcademicWeight tune the profile ranking formula.
	InterestWeight float64 `koanf:"interest_weight"`
	AcademicWeight float64 `koanf:"academic_weight"`

	// SessionCacheSize bounds concurrently open assessment sessions.
	SessionCacheSize int `koanf:"session_cache_size"`

	// TierRecommendations overrides the static per-tier role lists,
	// keyed by tier name (high, mid, low).
	TierRecommendations map[string][]string `koanf:"tier_recommendations"`

	// GeminiAPIKey enables the advisor and predictor collaborators when
	// set; empty leaves them unavailable.
	GeminiAPIKey string `koanf:"gemini_api_key"`
	GeminiModel  string `koanf:"gemini_model"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		DataDir:          "data",
		RolesFile:        "job_roles.csv",
		AffinityFile:     "skills_matrix.csv",
		QuestionsFile:    "questions.csv",
		MatchThreshold:   3,
		DefaultTopN:      5,
		MaxTopN:          50,
		QuestionCount:    10,
		MaxResults:       10,
		InterestWeight:   0.5,
		AcademicWeight:   1.0,
		SessionCacheSize: 10_000,
	}
}
