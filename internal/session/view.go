package session

import (
	"context"

	"github.com/nao1215/rivalscan/internal/model"
)

// API is the analysis server as seen by the controller.
// *api.Client implements it.
type API interface {
	Submit(ctx context.Context, payload model.Payload) (*model.SubmitResponse, error)
	Status(ctx context.Context, sessionID string) (*model.JobStatus, error)
	ResultsURL(sessionID string) string
}

// View renders the controller's state.
type View interface {
	// DisableForm prevents further input while a job is submitted or running.
	DisableForm()

	// EnableForm accepts input again.
	EnableForm()

	// ShowProgress shows the progress display with p.
	ShowProgress(p model.Progress)

	// ShowError shows an error message in place of the progress display.
	ShowError(message string)

	// Notify shows a transient notification.
	Notify(n model.Notification)

	// ClearDisplays hides both the progress and the error display.
	ClearDisplays()
}

// Navigator leaves the form for another page.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(url string)

// Navigate calls f(url).
func (f NavigatorFunc) Navigate(url string) {
	f(url)
}
