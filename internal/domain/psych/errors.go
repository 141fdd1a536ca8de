package psych

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrNoResponses      = errors.New("no responses provided")
	ErrResponseMismatch = errors.New("responses do not match issued questions")
)
