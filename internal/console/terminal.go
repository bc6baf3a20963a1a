package console

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/nao1215/rivalscan/internal/model"
)

// barWidth is the width of the progress bar in characters.
const barWidth = 30

// Terminal writes session updates to a terminal.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger

	// lastLine suppresses repeated identical progress lines, since every
	// poll reports progress even when nothing changed.
	lastLine string

	formEnabled bool
	visited     []string
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger used for form state changes.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Terminal) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Terminal writing to out.
func New(out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		out:         out,
		logger:      slog.Default(),
		formEnabled: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DisableForm marks the input as locked while a session runs.
func (t *Terminal) DisableForm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.formEnabled = false
	t.logger.Debug("form disabled")
}

// EnableForm marks the input as accepting a new submission.
func (t *Terminal) EnableForm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.formEnabled = true
	t.logger.Debug("form enabled")
}

// FormEnabled reports whether the form currently accepts input.
func (t *Terminal) FormEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.formEnabled
}

// ShowProgress prints the progress line if it changed.
func (t *Terminal) ShowProgress(p model.Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := FormatProgress(p)
	if line == t.lastLine {
		return
	}
	t.lastLine = line
	fmt.Fprintln(t.out, line)
}

// ShowError prints an error message.
func (t *Terminal) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s Error: %s\n", model.LevelError.Icon(), message)
}

// Notify prints a notification with its level icon.
func (t *Terminal) Notify(n model.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", n.Level.Icon(), n.Message)
}

// ClearDisplays forgets the last progress line.
func (t *Terminal) ClearDisplays() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastLine = ""
}

// Navigate prints the results URL and records it.
func (t *Terminal) Navigate(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visited = append(t.visited, url)
	fmt.Fprintf(t.out, "➡️  Results: %s\n", url)
}

// Visited returns the URLs navigated to, oldest first.
func (t *Terminal) Visited() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.visited...)
}

// FormatProgress renders p as a single terminal line.
func FormatProgress(p model.Progress) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %3.0f%%  %s", p.Bar(barWidth), p.Percent, p.Summary)
	if p.Activity != "" {
		sb.WriteString("  ")
		sb.WriteString(p.Activity)
	}
	return sb.String()
}
