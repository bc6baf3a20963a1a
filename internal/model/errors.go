package model

import "errors"

// Payload validation errors.
// These are client-side failures: a payload that fails validation is never
// sent to the server.
var (
	// ErrPrimaryURLRequired is returned when the primary URL field (url1)
	// is missing or blank.
	ErrPrimaryURLRequired = errors.New("primary website URL is required")

	// ErrTooManyURLs is returned when more than MaxURLs non-blank URLs are given.
	ErrTooManyURLs = errors.New("too many websites: at most 10 can be analyzed at once")
)
