package repository

import "errors"

// Sentinel kinds for catalog store errors.
var (
	ErrUnavailable    = errors.New("catalog unavailable")
	ErrMalformedTable = errors.New("malformed catalog table")
)
