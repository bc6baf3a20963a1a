package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/rivalscan/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is recorded in session reports when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the rivalscan version in session reports.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport wraps a session report with output metadata.
type JSONReport struct {
	// Version is the rivalscan version that generated this report.
	Version string `json:"version,omitempty"`

	// Succeeded mirrors SessionReport.Succeeded for consumers that do not
	// want to interpret the state string.
	Succeeded bool `json:"succeeded"`

	// DurationMS is the session duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`

	// Websites lists the submitted websites with role and company name.
	Websites []JSONWebsite `json:"websites"`

	Report *model.SessionReport `json:"report"`
}

// JSONWebsite is one submitted website.
type JSONWebsite struct {
	Key     string `json:"key"`
	Role    string `json:"role"`
	URL     string `json:"url"`
	Company string `json:"company"`
}

// Write outputs the session report in JSON format.
func (w *JSONWriter) Write(report *model.SessionReport) (int, error) {
	sites := report.Websites()
	websites := make([]JSONWebsite, len(sites))
	for i, s := range sites {
		websites[i] = JSONWebsite(s)
	}

	return w.writeJSON(&JSONReport{
		Version:    w.version,
		Succeeded:  report.Succeeded(),
		DurationMS: report.Duration().Milliseconds(),
		Websites:   websites,
		Report:     report,
	})
}

// WriteStatuses outputs the status entries as a JSON array.
func (w *JSONWriter) WriteStatuses(entries []model.StatusEntry) (int, error) {
	if entries == nil {
		entries = []model.StatusEntry{}
	}
	return w.writeJSON(entries)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
