package rank

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrInvalidStanding = errors.New("academic standing must be non-negative")
)
