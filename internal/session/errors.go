package session

import (
	"errors"
	"fmt"
)

// Controller errors.
var (
	// ErrBusy is returned by Submit while a submission is in flight, while
	// polling, or after completion until Reset is called.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrSuperseded is returned by Submit when Reset or Close was called
	// while the submission request was in flight. The response is dropped.
	ErrSuperseded = errors.New("submission superseded by reset")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session controller is closed")

	// ErrNoSession is returned by Wait when no analysis is running.
	ErrNoSession = errors.New("no analysis session is running")
)

// Messages shown to the user.
const (
	MessagePrimaryRequired = "Please enter your primary website URL"
	MessageTooManyURLs     = "Maximum of 10 websites allowed for analysis."
	MessageSubmitFailed    = "Failed to start competitive analysis"
	MessageInitializing    = "Initializing competitive analysis..."
	MessageCompleted       = "Competitive analysis completed successfully!"
	MessageJobFailed       = "An error occurred during competitive analysis"
)

// SubmissionError is returned by Submit when the server rejected the
// submission or could not be reached. The form is enabled again and
// nothing is retried.
type SubmissionError struct {
	// Message is what the user was shown: the server's message, or
	// MessageSubmitFailed when the server did not send one.
	Message string

	// Err is the underlying transport or response error.
	Err error
}

// Error returns the message shown to the user.
func (e *SubmissionError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TransientPollError describes a failed status request.
// It never changes the controller's state.
type TransientPollError struct {
	SessionID string
	Err       error
}

// Error implements the error interface.
func (e *TransientPollError) Error() string {
	return fmt.Sprintf("status check for session %s failed: %v", e.SessionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransientPollError) Unwrap() error {
	return e.Err
}

// JobError is the terminal failure reported by the server for a job.
type JobError struct {
	SessionID string

	// Message is the server's error text, or MessageJobFailed.
	Message string
}

// Error returns the message shown to the user.
func (e *JobError) Error() string {
	return e.Message
}
