package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/rivalscan/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, built with
// the nao1215/markdown fluent API.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the session report in Markdown format.
func (w *MarkdownWriter) Write(report *model.SessionReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeWebsites(md, report)
	w.writeProgress(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteStatuses outputs a table of session statuses.
func (w *MarkdownWriter) WriteStatuses(entries []model.StatusEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Analysis Sessions")
	md.PlainText("")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		detail := e.Error
		progress := "-"
		if e.Status != nil {
			p := e.Status.Progress()
			progress = fmt.Sprintf("%s (%.0f%%)", p.Summary, p.Percent)
			switch e.Status.Status {
			case model.JobCompleted:
				detail = e.ResultsURL
			case model.JobError:
				detail = e.Status.Error
			default:
				detail = p.Activity
			}
		}
		if detail == "" {
			detail = "-"
		}
		rows[i] = []string{"`" + e.SessionID + "`", stateIcon(e.State()) + " " + e.State(), progress, detail}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Session", "Status", "Progress", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with session information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SessionReport) {
	md.H1("Competitive Analysis Session")
	md.PlainText("")

	sessionID := "-"
	if report.SessionID != "" {
		sessionID = "`" + report.SessionID + "`"
	}
	results := "-"
	if report.ResultsURL != "" {
		results = report.ResultsURL
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Server", report.Server},
			{"Session", sessionID},
			{"Started", report.StartedAt.Format(timeLayout)},
			{"Websites", strconv.Itoa(len(report.URLs))},
			{"Status", stateIcon(report.State.String()) + " " + statusText(report)},
			{"Results", results},
		},
	})
	md.PlainText("")
}

// writeAlert writes an alert summarizing the outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.SessionReport) {
	switch report.State {
	case model.StateCompleted:
		md.Tip("Competitive analysis completed successfully!")
	case model.StateFailed:
		md.Cautionf("Competitive analysis failed: %s", report.Error)
	case model.StateIdle:
		md.Warningf("Competitive analysis was not started: %s", orDash(report.Error))
	default:
		md.Importantf(
			"Session stopped before the analysis finished. %d of %d websites were analyzed.",
			report.Progress.Completed, report.Progress.Total,
		)
	}
	md.PlainText("")
}

// writeWebsites writes the websites table.
func (w *MarkdownWriter) writeWebsites(md *markdown.Markdown, report *model.SessionReport) {
	md.H2("Websites")
	md.PlainText("")

	sites := report.Websites()
	if len(sites) == 0 {
		md.PlainText("No websites submitted.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(sites))
	for i, s := range sites {
		rows[i] = []string{s.Role, s.Company, s.URL}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Role", "Company", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeProgress writes the progress section with a mermaid pie chart of
// analyzed versus remaining websites.
func (w *MarkdownWriter) writeProgress(md *markdown.Markdown, report *model.SessionReport) {
	p := report.Progress
	if p.Total == 0 {
		return
	}

	md.H2("Progress")
	md.PlainText("")
	md.PlainTextf("%s (%.0f%%)", p.Summary, p.Percent)
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Websites Analyzed"),
		piechart.WithShowData(true),
	)
	if p.Completed > 0 {
		chart.LabelAndIntValue("Analyzed", uint64(p.Completed))
	}
	if remaining := p.Total - p.Completed; remaining > 0 {
		chart.LabelAndIntValue("Remaining", uint64(remaining))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [rivalscan](https://github.com/nao1215/rivalscan)*")
}

// stateIcon returns an emoji for a session or job state name.
func stateIcon(state string) string {
	switch state {
	case "completed":
		return "✅"
	case "failed", "error":
		return "❌"
	case "processing", "polling", "submitting":
		return "⏳"
	default:
		return "❔"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
