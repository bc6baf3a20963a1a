package model

import (
	"strconv"
	"time"
)

// SessionReport summarizes one analysis session for output.
type SessionReport struct {
	// Server is the base URL of the analysis server.
	Server string `json:"server"`

	// SessionID is the server-side job id. Empty if submission failed.
	SessionID string `json:"session_id,omitempty"`

	// URLs are the submitted websites, primary first.
	URLs Payload `json:"urls"`

	// State is the final client-side state.
	State SessionState `json:"state"`

	// Progress is the last progress rendered for the session.
	Progress Progress `json:"progress"`

	// ResultsURL is where the results can be viewed once completed.
	ResultsURL string `json:"results_url,omitempty"`

	// Error is the message shown to the user if the session failed.
	Error string `json:"error,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Website is one row of the websites table of a report.
type Website struct {
	Key     string
	Role    string
	URL     string
	Company string
}

// NewSessionReport creates a report for a session that starts now.
func NewSessionReport(server string, urls Payload) *SessionReport {
	return &SessionReport{
		Server:    server,
		URLs:      urls,
		State:     StateIdle,
		StartedAt: time.Now(),
	}
}

// Succeeded reports whether the job completed.
func (r *SessionReport) Succeeded() bool {
	return r.State == StateCompleted
}

// Duration returns how long the session took.
// It is zero until FinishedAt is set.
func (r *SessionReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Websites lists the submitted websites with their role and company name.
func (r *SessionReport) Websites() []Website {
	sites := make([]Website, len(r.URLs))
	for i, u := range r.URLs {
		role := "Primary"
		if i > 0 {
			role = "Competitor #" + strconv.Itoa(i)
		}
		sites[i] = Website{
			Key:     PayloadKey(i),
			Role:    role,
			URL:     u,
			Company: CompanyName(u),
		}
	}
	return sites
}
