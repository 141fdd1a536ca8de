package probe

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/compass/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	maxStanding        = 4.0
	minSkillCount      = 1
	skillCountSpread   = 5
	interestSpread     = 3
)

// skillPool lists labels drawn from when fabricating candidate profiles.
// These overlap with common catalog vocabularies so matches actually fire.
var skillPool = []string{
	"python", "java", "c++", "go", "sql", "machine learning",
	"data analysis", "deep learning", "react", "node.js",
	"html", "css", "communication", "leadership", "teamwork",
	"docker", "kubernetes", "statistics", "problem-solving",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pickN draws n distinct labels from the pool.
func pickN(n int) []string {
	if n > len(skillPool) {
		n = len(skillPool)
	}
	picked := make([]string, 0, n)
	used := make(map[int]struct{}, n)
	for len(picked) < n {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(skillPool))))
		i := int(idx.Int64())
		if _, dup := used[i]; dup {
			continue
		}
		used[i] = struct{}{}
		picked = append(picked, skillPool[i])
	}
	return picked
}

// randomCount returns min plus a random spread.
func randomCount(min, spread int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(spread)))
	return min + int(n.Int64())
}

// generateProfiles fabricates candidate profiles with varied standing and
// skill coverage.
func generateProfiles(ctx context.Context, config *Config, stats *Stats) ([]Profile, error) {
	logger.Get().Info(ctx, "generating candidate profiles", logger.Int("numProfiles", config.NumProfiles))

	profiles := make([]Profile, config.NumProfiles)
	for i := range profiles {
		topN := config.TopN
		profiles[i] = Profile{
			Name:             "candidate-" + uuid.NewString(),
			AcademicStanding: getRandomFloat() * maxStanding,
			Skills:           pickN(randomCount(minSkillCount, skillCountSpread)),
			Interests:        pickN(randomCount(minSkillCount, interestSpread)),
			TopN:             &topN,
		}
	}

	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "generated profiles successfully", logger.Int("count", len(profiles)))
	return profiles, nil
}
