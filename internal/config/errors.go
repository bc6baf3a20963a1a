package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidServer is returned when the server is not an absolute
	// http or https URL.
	ErrInvalidServer = errors.New("invalid server: must be an http or https URL")

	// ErrInvalidPollInterval is returned when the poll interval is not positive.
	ErrInvalidPollInterval = errors.New("invalid poll interval: must be positive")

	// ErrInvalidRedirectDelay is returned when the redirect delay is negative.
	// Use 0 to open the results immediately.
	ErrInvalidRedirectDelay = errors.New("invalid redirect delay: must be non-negative")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the per-request timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidConcurrency is returned when the status concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
