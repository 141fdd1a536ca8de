package probe

import "time"

// Config holds configuration for the API probe run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of candidate profiles to generate
	TopN        int           // Ranking bound requested per recommendation
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for probe output
	Verbose     bool          // Enable verbose logging
}

// Profile mirrors the POST /recommend request body.
type Profile struct {
	Name             string   `json:"name"`
	AcademicStanding float64  `json:"academic_standing"`
	Interests        []string `json:"interests"`
	Skills           []string `json:"skills"`
	Category         string   `json:"category,omitempty"`
	TopN             *int     `json:"top_n,omitempty"`
}

// RankedRole mirrors one ranked entry in the recommend response.
type RankedRole struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

// RecommendResponse mirrors the POST /recommend response body.
type RecommendResponse struct {
	Recommendations []RankedRole `json:"recommendations"`
}

// MatchRequest mirrors the POST /match request body.
type MatchRequest struct {
	Skills []string `json:"skills"`
}

// MatchResponse mirrors the POST /match response body.
type MatchResponse struct {
	MatchedRoles []string `json:"matched_roles"`
}

// QuestionsResponse mirrors the GET /assessment/questions response body.
type QuestionsResponse struct {
	SessionID string `json:"session_id"`
	Questions []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"questions"`
}

// ScoreRequest mirrors the POST /assessment/score request body.
type ScoreRequest struct {
	SessionID string            `json:"session_id"`
	Responses map[string]string `json:"responses"`
}

// ScoreResponse mirrors the POST /assessment/score response body.
type ScoreResponse struct {
	Score           float64  `json:"score"`
	Tier            string   `json:"tier"`
	Recommendations []string `json:"recommendations"`
}

// Stats holds probe statistics.
type Stats struct {
	ProfilesGenerated  int
	MatchesSubmitted   int
	MatchesSuccessful  int
	MatchesFailed      int
	RecommendsReturned int
	AssessmentsScored  int
	DeterminismChecks  int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
