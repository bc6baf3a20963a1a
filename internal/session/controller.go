package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/nao1215/rivalscan/internal/api"
	"github.com/nao1215/rivalscan/internal/model"
)

const (
	// DefaultPollInterval is how often the job status is requested.
	DefaultPollInterval = 2000 * time.Millisecond

	// DefaultRedirectDelay is how long the success notification is shown
	// before navigating to the results page.
	DefaultRedirectDelay = 1500 * time.Millisecond
)

// Controller is the analysis session controller.
// It owns the session id and the recurring poll; nothing else mutates them.
type Controller struct {
	api    API
	view   View
	nav    Navigator
	clock  clock.WithTickerAndDelayedExecution
	logger *slog.Logger

	pollInterval  time.Duration
	redirectDelay time.Duration

	// ctx is the parent of every poll; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state model.SessionState

	// sessionID identifies the server-side job; empty unless polling or terminal.
	sessionID string
	payload   model.Payload
	progress  model.Progress

	// generation changes on every submit and reset. Responses that carry
	// an older generation belong to a session that is gone and are dropped.
	generation uint64

	// poll is the active recurring poll. At most one exists.
	poll *poller

	// redirect is the pending navigation after completion.
	redirect  clock.Timer
	navigated bool

	jobErr *JobError
	closed bool

	// changed is closed and replaced on every observable change; Wait uses it.
	changed chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock that drives polling and the redirect delay.
func WithClock(clk clock.WithTickerAndDelayedExecution) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithRedirectDelay overrides DefaultRedirectDelay. Zero navigates at once.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.redirectDelay = d
		}
	}
}

// New creates an idle Controller. Call Close when the controller is no
// longer needed to stop any running poll.
func New(client API, view View, nav Navigator, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		api:           client,
		view:          view,
		nav:           nav,
		clock:         clock.RealClock{},
		logger:        slog.Default(),
		pollInterval:  DefaultPollInterval,
		redirectDelay: DefaultRedirectDelay,
		ctx:           ctx,
		cancel:        cancel,
		state:         model.StateIdle,
		changed:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates fields, submits them and, once the server accepts the
// job, starts polling its status.
//
// Validation failures are reported through View.Notify and returned without
// any request being made. Server rejections and transport failures are
// returned as *SubmissionError. Submit is only accepted in the Idle and
// Failed states; otherwise ErrBusy is returned.
func (c *Controller) Submit(ctx context.Context, fields []model.FormField) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != model.StateIdle && c.state != model.StateFailed {
		c.mu.Unlock()
		return ErrBusy
	}

	payload, err := model.BuildPayload(fields)
	if err != nil {
		c.notifyValidationLocked(err)
		c.mu.Unlock()
		return err
	}

	c.generation++
	gen := c.generation
	c.payload = payload
	c.sessionID = ""
	c.jobErr = nil
	c.navigated = false
	c.progress = model.RenderProgress(0, len(payload), "")

	c.setStateLocked(model.StateSubmitting)
	c.view.DisableForm()
	c.view.ShowProgress(c.progress)
	c.mu.Unlock()

	c.logger.Info("submitting analysis", "urls", len(payload))
	resp, err := c.api.Submit(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.state != model.StateSubmitting {
		c.logger.Debug("dropping submission response for a reset session")
		return ErrSuperseded
	}

	if err != nil {
		subErr := &SubmissionError{Message: submissionMessage(err), Err: err}
		c.logger.Error("analysis submission failed", "error", err)
		c.setStateLocked(model.StateIdle)
		c.view.ShowError(subErr.Message)
		c.view.EnableForm()
		return subErr
	}

	total := len(payload)
	if resp.TotalURLs != nil {
		total = *resp.TotalURLs
	}

	c.sessionID = resp.SessionID
	c.progress = model.RenderProgress(0, total, MessageInitializing)
	c.view.ShowProgress(c.progress)
	c.setStateLocked(model.StatePolling)
	c.startPollLocked()

	c.logger.Info("analysis started", "session_id", c.sessionID, "total", total)
	return nil
}

// Reset stops any poll or pending navigation, clears the session and
// returns to Idle. It is safe to call in any state and more than once.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Close resets the controller and rejects further submissions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.resetLocked()
	c.closed = true
	c.cancel()
}

// State returns the current state.
func (c *Controller) State() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the current session id, or "" when there is none.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Payload returns the URLs of the current or last submission.
func (c *Controller) Payload() model.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(model.Payload(nil), c.payload...)
}

// Progress returns the last progress shown.
func (c *Controller) Progress() model.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Outcome is the terminal result of a session.
type Outcome struct {
	State      model.SessionState
	SessionID  string
	ResultsURL string
	Progress   model.Progress

	// Err is the *JobError of a failed session.
	Err error
}

// Wait blocks until the current session is Completed and navigation has
// happened, or has Failed. It returns ErrNoSession when the controller is
// Idle, and ctx.Err() when ctx ends first.
func (c *Controller) Wait(ctx context.Context) (Outcome, error) {
	for {
		c.mu.Lock()
		switch {
		case c.state == model.StateCompleted && c.navigated:
			out := c.outcomeLocked()
			c.mu.Unlock()
			return out, nil
		case c.state == model.StateFailed:
			out := c.outcomeLocked()
			c.mu.Unlock()
			return out, nil
		case c.state == model.StateIdle:
			c.mu.Unlock()
			return Outcome{State: model.StateIdle}, ErrNoSession
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case <-changed:
		}
	}
}

// tick is one poll: it requests the status of the current session and
// folds the response into the controller's state.
func (c *Controller) tick(ctx context.Context) {
	c.mu.Lock()
	id, gen := c.sessionID, c.generation
	c.mu.Unlock()

	if id == "" {
		return
	}

	status, err := c.api.Status(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.state != model.StatePolling {
		c.logger.Debug("dropping status for an inactive session", "session_id", id)
		return
	}

	if err != nil {
		c.logger.Warn("status check failed, will retry on next tick",
			"error", &TransientPollError{SessionID: id, Err: err},
		)
		return
	}

	c.applyStatusLocked(status, gen)
}

// applyStatusLocked updates progress and performs terminal transitions.
func (c *Controller) applyStatusLocked(status *model.JobStatus, gen uint64) {
	c.progress = status.Progress()
	c.view.ShowProgress(c.progress)

	switch status.Status {
	case model.JobCompleted:
		c.stopPollLocked()
		c.setStateLocked(model.StateCompleted)
		c.view.Notify(model.Notification{Level: model.LevelSuccess, Message: MessageCompleted})

		resultsURL := c.api.ResultsURL(c.sessionID)
		c.logger.Info("analysis completed", "session_id", c.sessionID, "results", resultsURL)
		c.redirect = c.clock.AfterFunc(c.redirectDelay, func() {
			c.navigate(gen, resultsURL)
		})

	case model.JobError:
		c.stopPollLocked()
		msg := status.Error
		if msg == "" {
			msg = MessageJobFailed
		}
		c.jobErr = &JobError{SessionID: c.sessionID, Message: msg}
		c.logger.Error("analysis failed", "session_id", c.sessionID, "error", msg)
		c.setStateLocked(model.StateFailed)
		c.view.ShowError(msg)
		c.view.EnableForm()
	}
}

// navigate performs the delayed navigation, at most once per session.
func (c *Controller) navigate(gen uint64, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.state != model.StateCompleted || c.navigated {
		return
	}
	c.navigated = true
	c.redirect = nil
	c.nav.Navigate(url)
	c.signalLocked()
}

// startPollLocked starts the recurring poll, releasing any existing one first.
func (c *Controller) startPollLocked() {
	c.stopPollLocked()
	c.poll = startPoller(c.ctx, c.clock, c.pollInterval, c.tick)
}

// stopPollLocked releases the recurring poll, if any.
func (c *Controller) stopPollLocked() {
	if c.poll == nil {
		return
	}
	c.poll.stop()
	c.poll = nil
}

func (c *Controller) resetLocked() {
	c.generation++
	c.stopPollLocked()
	if c.redirect != nil {
		c.redirect.Stop()
		c.redirect = nil
	}

	c.sessionID = ""
	c.payload = nil
	c.jobErr = nil
	c.navigated = false
	c.progress = model.RenderProgress(0, 0, "")

	c.view.ClearDisplays()
	c.view.EnableForm()
	c.setStateLocked(model.StateIdle)
}

func (c *Controller) setStateLocked(s model.SessionState) {
	if c.state != s {
		c.logger.Debug("session state changed", "from", c.state.String(), "to", s.String())
	}
	c.state = s
	c.signalLocked()
}

func (c *Controller) signalLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) outcomeLocked() Outcome {
	out := Outcome{
		State:     c.state,
		SessionID: c.sessionID,
		Progress:  c.progress,
	}
	if c.state == model.StateCompleted {
		out.ResultsURL = c.api.ResultsURL(c.sessionID)
	}
	if c.jobErr != nil {
		out.Err = c.jobErr
	}
	return out
}

func (c *Controller) notifyValidationLocked(err error) {
	msg := err.Error()
	level := model.LevelError
	switch {
	case errors.Is(err, model.ErrPrimaryURLRequired):
		msg = MessagePrimaryRequired
	case errors.Is(err, model.ErrTooManyURLs):
		msg = MessageTooManyURLs
		level = model.LevelWarning
	}
	c.view.Notify(model.Notification{Level: level, Message: msg})
}

// submissionMessage picks the text shown for a failed submission.
func submissionMessage(err error) string {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	return MessageSubmitFailed
}
