package ai

import "errors"

// Sentinel kinds for collaborator errors.
var (
	ErrUnavailable = errors.New("model collaborator unavailable")
	ErrEmptyReply  = errors.New("model returned an empty reply")
)
