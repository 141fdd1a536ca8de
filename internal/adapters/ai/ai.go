// Package ai declares the capability interfaces for the optional external
// model collaborators. The engine and its tests depend only on these
// interfaces; a deployment without credentials simply runs with both
// capabilities in the unavailable state.
package ai

import "context"

// Advisor answers free-form career guidance questions.
type Advisor interface {
	// Ask sends a message and returns the reply.
	Ask(ctx context.Context, message string) (string, error)
}

// Prediction is an opaque classifier outcome.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Predictor classifies a skill set into a single role label with a
// confidence in [0,1]. The model internals are outside this system.
type Predictor interface {
	Predict(ctx context.Context, skills []string) (Prediction, error)
}
