package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/rivalscan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
// Plain ASCII formatting keeps the output readable when piped to a file.
type SimpleWriter struct {
	baseWriter

	// verbose adds the analysis stage and timestamps.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the session report in human-readable format.
func (w *SimpleWriter) Write(report *model.SessionReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeWebsites(&sb, report)
	w.writeProgress(&sb, report)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteStatuses outputs one line per session.
func (w *SimpleWriter) WriteStatuses(entries []model.StatusEntry) (int, error) {
	var sb strings.Builder

	for _, e := range entries {
		switch {
		case e.Status == nil:
			fmt.Fprintf(&sb, "%s  unknown     %s\n", e.SessionID, e.Error)
		case e.Status.Status == model.JobCompleted:
			fmt.Fprintf(&sb, "%s  %-10s  %s\n", e.SessionID, e.Status.Status, e.ResultsURL)
		case e.Status.Status == model.JobError:
			fmt.Fprintf(&sb, "%s  %-10s  %s\n", e.SessionID, e.Status.Status, e.Status.Error)
		default:
			p := e.Status.Progress()
			fmt.Fprintf(&sb, "%s  %-10s  %s (%.0f%%)\n", e.SessionID, e.Status.Status, p.Summary, p.Percent)
		}
	}

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with session information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.SessionReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                   COMPETITIVE ANALYSIS SESSION\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Server:         %s\n", report.Server)
	if report.SessionID != "" {
		fmt.Fprintf(sb, "Session:        %s\n", report.SessionID)
	}
	fmt.Fprintf(sb, "Status:         %s\n", statusText(report))
	if report.ResultsURL != "" {
		fmt.Fprintf(sb, "Results:        %s\n", report.ResultsURL)
	}
	if w.verbose {
		fmt.Fprintf(sb, "Started:        %s\n", report.StartedAt.Format(timeLayout))
		if d := report.Duration(); d > 0 {
			fmt.Fprintf(sb, "Duration:       %s\n", d.Round(100*time.Millisecond))
		}
	}
	sb.WriteString("\n")
}

// writeWebsites writes the submitted websites.
func (w *SimpleWriter) writeWebsites(sb *strings.Builder, report *model.SessionReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WEBSITES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sites := report.Websites()
	if len(sites) == 0 {
		sb.WriteString("  No websites submitted\n\n")
		return
	}
	for _, s := range sites {
		fmt.Fprintf(sb, "  [%-14s] %s (%s)\n", s.Role, s.URL, s.Company)
	}
	sb.WriteString("\n")
}

// writeProgress writes the last progress seen.
func (w *SimpleWriter) writeProgress(sb *strings.Builder, report *model.SessionReport) {
	p := report.Progress
	if p.Total == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PROGRESS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  %s %3.0f%%\n", p.Bar(40), p.Percent)
	fmt.Fprintf(sb, "  %s\n", p.Summary)
	if w.verbose && p.Stage != "" {
		fmt.Fprintf(sb, "  %s\n", p.Stage)
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by rivalscan\n")
	sb.WriteString("https://github.com/nao1215/rivalscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
