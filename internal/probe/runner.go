package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/compass/pkg/logger"
)

// Run executes the complete API probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting compass api probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate candidate profiles
	profiles, err := generateProfiles(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("profile generation failed: %w", err)
	}

	// Step 3: Submit match and recommend requests concurrently
	recommendations, err := submitProfiles(ctx, config, profiles, stats)
	if err != nil {
		return fmt.Errorf("profile submission failed: %w", err)
	}

	// Step 4: Verify recommendation orderings and determinism
	if err := verifyResults(ctx, config, profiles, recommendations, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 5: Round-trip one assessment session
	if err := runAssessment(ctx, config, stats); err != nil {
		return fmt.Errorf("assessment round trip failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "probe completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runAssessment fetches a question set, answers every question with
// "agree", and confirms the score lands in the high tier.
func runAssessment(ctx context.Context, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "running assessment round trip")

	client := newHTTPClient(config.Timeout)

	var questions QuestionsResponse
	if _, err := client.getJSON(ctx, config.BaseURL+"/assessment/questions", &questions); err != nil {
		return fmt.Errorf("failed to fetch questions: %w", err)
	}
	if len(questions.Questions) == 0 {
		return fmt.Errorf("no questions issued")
	}

	answers := make(map[string]string, len(questions.Questions))
	for _, q := range questions.Questions {
		answers[q.ID] = "agree"
	}

	var score ScoreResponse
	req := ScoreRequest{SessionID: questions.SessionID, Responses: answers}
	if _, err := client.postJSON(ctx, config.BaseURL+"/assessment/score", req, &score); err != nil {
		return fmt.Errorf("failed to score answers: %w", err)
	}

	// Unanimous agreement must normalize to a full score.
	if score.Score != 100 {
		return fmt.Errorf("unanimous agreement scored %.1f, want 100", score.Score)
	}
	if score.Tier != "high" {
		return fmt.Errorf("unanimous agreement landed in tier %q, want high", score.Tier)
	}

	// A claimed session must not be reusable.
	if status, err := client.postJSON(ctx, config.BaseURL+"/assessment/score", req, nil); err == nil || status != http.StatusNotFound {
		return fmt.Errorf("re-scoring a claimed session returned status %d, want 404", status)
	}

	stats.AssessmentsScored++
	logger.Get().Info(ctx, "assessment round trip verified",
		logger.Float64("score", score.Score),
		logger.String("tier", score.Tier))
	return nil
}

// displayFinalStats prints the final probe statistics.
func displayFinalStats(stats *Stats) {
	var successRate, profilesPerSecond float64

	if stats.MatchesSubmitted > 0 {
		successRate = float64(stats.MatchesSuccessful) / float64(stats.MatchesSubmitted) * 100
	}

	if stats.Duration > 0 {
		profilesPerSecond = float64(stats.MatchesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("matchesSubmitted", stats.MatchesSubmitted),
		logger.Int("matchesSuccessful", stats.MatchesSuccessful),
		logger.Int("matchesFailed", stats.MatchesFailed),
		logger.Int("recommendsReturned", stats.RecommendsReturned),
		logger.Int("assessmentsScored", stats.AssessmentsScored),
		logger.Int("determinismChecks", stats.DeterminismChecks),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("profilesPerSecond", profilesPerSecond))
}
