package match

import "errors"

// Sentinel kinds for matcher errors.
var (
	ErrInvalidThreshold = errors.New("threshold must be positive")
)
