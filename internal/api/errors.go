package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidBaseURL is returned when the server URL is not an absolute
	// http or https URL.
	ErrInvalidBaseURL = errors.New("invalid server URL: must be an absolute http(s) URL")

	// ErrMissingSessionID is returned when a successful submission response
	// does not contain a session id.
	ErrMissingSessionID = errors.New("server response has no session_id")

	// ErrEmptySessionID is returned when a status request is made without
	// a session id.
	ErrEmptySessionID = errors.New("session id is empty")
)

// ResponseError is returned when the server answers with a non-2xx status.
type ResponseError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the "message" field of the JSON error body, if any.
	Message string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
