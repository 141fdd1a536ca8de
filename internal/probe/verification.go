package probe

import (
	"context"
	"fmt"
	"log"
)

// determinismSamples is how many profiles get re-submitted to confirm
// identical requests yield identical orderings.
const determinismSamples = 5

// verifyResults checks every recommendation ordering and re-runs a sample
// of profiles to confirm deterministic output.
func verifyResults(ctx context.Context, config *Config, profiles []Profile, recommendations []RecommendResponse, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	verified := 0
	for i, rec := range recommendations {
		if len(rec.Recommendations) == 0 {
			continue
		}
		if err := verifyOrdering(rec); err != nil {
			return fmt.Errorf("profile %d (%s): %w", i, profiles[i].Name, err)
		}
		verified++
	}
	log.Printf("✅ %d recommendation orderings verified", verified)

	if err := verifyDeterminism(ctx, config, profiles, recommendations, stats); err != nil {
		return err
	}

	if config.Verbose {
		displayScoreStats(recommendations)
	}

	log.Println("✅ Result verification completed")
	return nil
}

// verifyOrdering checks that scores never increase down the list.
func verifyOrdering(rec RecommendResponse) error {
	for i := 1; i < len(rec.Recommendations); i++ {
		if rec.Recommendations[i].Score > rec.Recommendations[i-1].Score {
			return fmt.Errorf("recommendations not sorted: entry %d outranks entry %d", i, i-1)
		}
	}
	return nil
}

// verifyDeterminism re-submits a sample of profiles and requires the
// exact sequence returned the first time, roles and scores both.
func verifyDeterminism(ctx context.Context, config *Config, profiles []Profile, recommendations []RecommendResponse, stats *Stats) error {
	samples := determinismSamples
	if len(profiles) < samples {
		samples = len(profiles)
	}

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/recommend"

	for i := 0; i < samples; i++ {
		var repeat RecommendResponse
		if _, err := client.postJSON(ctx, url, profiles[i], &repeat); err != nil {
			return fmt.Errorf("determinism re-run failed for profile %d: %w", i, err)
		}
		if err := compareOrderings(recommendations[i], repeat); err != nil {
			return fmt.Errorf("profile %d (%s): %w", i, profiles[i].Name, err)
		}
		stats.DeterminismChecks++
	}

	log.Printf("✅ Determinism verified across %d repeated requests", stats.DeterminismChecks)
	return nil
}

// compareOrderings requires two responses to match entry for entry.
func compareOrderings(first, second RecommendResponse) error {
	if len(first.Recommendations) != len(second.Recommendations) {
		return fmt.Errorf("repeated request returned %d entries, first returned %d",
			len(second.Recommendations), len(first.Recommendations))
	}
	for i := range first.Recommendations {
		a, b := first.Recommendations[i], second.Recommendations[i]
		if a.Role != b.Role {
			return fmt.Errorf("entry %d changed role between runs: %q vs %q", i, a.Role, b.Role)
		}
		if a.Score != b.Score {
			return fmt.Errorf("entry %d changed score between runs: %.3f vs %.3f", i, a.Score, b.Score)
		}
	}
	return nil
}

// displayScoreStats shows aggregate score statistics across responses.
func displayScoreStats(recommendations []RecommendResponse) {
	var count int
	var sum, max, min float64
	first := true

	for _, rec := range recommendations {
		for _, entry := range rec.Recommendations {
			if first {
				max, min = entry.Score, entry.Score
				first = false
			}
			if entry.Score > max {
				max = entry.Score
			}
			if entry.Score < min {
				min = entry.Score
			}
			sum += entry.Score
			count++
		}
	}

	if count == 0 {
		return
	}
	log.Printf(`📊 Score statistics:
   Average: %.3f
   Maximum: %.3f
   Minimum: %.3f
`, sum/float64(count), max, min)
}
