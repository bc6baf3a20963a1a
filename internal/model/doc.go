// Package model defines the data structures shared by the rivalscan packages.
//
// This package contains the following main types:
//   - FormField and Payload: the URLs a user submits for analysis
//   - SubmitResponse and JobStatus: values received from the analysis server
//   - Progress: the rendered view of a job's progress
//   - Notification: a short user-facing message with a level
//   - SessionReport: the summary of one analysis session
//
// Types live in their own package so that the API client, the session
// controller and the report writers can share them without import cycles.
package model
