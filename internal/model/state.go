package model

import "fmt"

// SessionState is the state of an analysis session on the client side.
type SessionState int

const (
	// StateIdle means no job is running and the form accepts input.
	StateIdle SessionState = iota

	// StateSubmitting means the submission request is in flight.
	StateSubmitting

	// StatePolling means the server accepted the job and its status is polled.
	StatePolling

	// StateCompleted means the job finished and results are available.
	StateCompleted

	// StateFailed means the server reported that the job failed.
	StateFailed
)

// String returns the lower-case state name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further polling happens in this state.
func (s SessionState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// MarshalText encodes the state as its name.
func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *SessionState) UnmarshalText(text []byte) error {
	for _, st := range []SessionState{StateIdle, StateSubmitting, StatePolling, StateCompleted, StateFailed} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}
