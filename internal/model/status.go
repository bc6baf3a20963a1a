package model

// JobState is the server-reported state of an analysis job.
type JobState string

const (
	// JobProcessing means the server is still analyzing websites.
	JobProcessing JobState = "processing"

	// JobCompleted means every website has been analyzed and results are ready.
	JobCompleted JobState = "completed"

	// JobError means the job failed on the server.
	JobError JobState = "error"
)

// SubmitResponse is the body of a successful submission.
type SubmitResponse struct {
	// SessionID identifies the server-side job.
	SessionID string `json:"session_id"`

	// TotalURLs is the number of websites the server accepted.
	// Older servers omit it.
	TotalURLs *int `json:"total_urls,omitempty"`
}

// JobStatus is one response from the status endpoint.
// It is transient: each poll replaces the previous value.
type JobStatus struct {
	Status     JobState `json:"status"`
	Completed  int      `json:"completed"`
	Total      int      `json:"total"`
	CurrentURL string   `json:"current_url,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Terminal reports whether the job has reached completed or error.
// Any other status value, known or not, means the job is still running.
func (s *JobStatus) Terminal() bool {
	return s.Status == JobCompleted || s.Status == JobError
}

// Progress renders the status through RenderProgress.
// An empty current_url is shown as "Processing...".
func (s *JobStatus) Progress() Progress {
	current := s.CurrentURL
	if current == "" {
		current = "Processing..."
	}
	return RenderProgress(s.Completed, s.Total, current)
}

// StatusEntry is the outcome of a one-shot status query for a session.
type StatusEntry struct {
	SessionID string `json:"session_id"`

	// Status is nil when the query failed.
	Status *JobStatus `json:"status,omitempty"`

	// ResultsURL is set once the job has completed.
	ResultsURL string `json:"results_url,omitempty"`

	// Error describes why the query failed.
	Error string `json:"error,omitempty"`
}

// State returns the reported job state, or "unknown" when the query failed.
func (e StatusEntry) State() string {
	if e.Status == nil {
		return "unknown"
	}
	return string(e.Status.Status)
}
