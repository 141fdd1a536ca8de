package service

import "errors"

var (
	// ErrStoreRequired indicates Start was called without a catalog store.
	ErrStoreRequired = errors.New("catalog store is required")

	// ErrUnknownSession indicates the session token was never issued,
	// already claimed, or evicted.
	ErrUnknownSession = errors.New("unknown assessment session")

	// ErrInsufficientQuestions indicates the question bank is smaller than
	// the requested question count.
	ErrInsufficientQuestions = errors.New("question bank smaller than requested count")
)
