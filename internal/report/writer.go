package report

import (
	"io"

	"github.com/nao1215/rivalscan/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the summary of one analysis session.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.SessionReport) (int, error)

	// WriteStatuses outputs the result of one-shot status queries.
	WriteStatuses(entries []model.StatusEntry) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// Our Writer writes reports, not raw bytes, so io.MultiWriter does not fit.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers and stops on the first error.
func (m *MultiWriter) Write(report *model.SessionReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteStatuses outputs the status entries to all configured Writers.
func (m *MultiWriter) WriteStatuses(entries []model.StatusEntry) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteStatuses(entries)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeLayout is used for every timestamp in text and markdown reports.
const timeLayout = "2006-01-02 15:04:05 MST"

// statusText returns the one-line outcome of a session.
func statusText(report *model.SessionReport) string {
	switch report.State {
	case model.StateCompleted:
		return "Completed"
	case model.StateFailed:
		return "Failed - " + report.Error
	case model.StateIdle:
		if report.Error != "" {
			return "Not started - " + report.Error
		}
		return "Not started"
	default:
		return "Interrupted (" + report.State.String() + ")"
	}
}
