// Package api provides the HTTP client for the analysis server.
//
// The server exposes three routes:
//   - POST /scrape starts a job for a set of URLs and returns its session id
//   - GET /status/{session_id} reports the job's progress
//   - GET /results/{session_id} is the results page (navigated to, not called)
//
// The client does not retry. Retrying a failed status request is the
// caller's decision; the session controller simply waits for its next tick.
package api
