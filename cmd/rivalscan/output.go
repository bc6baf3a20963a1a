package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/rivalscan/internal/config"
	"github.com/nao1215/rivalscan/internal/report"
)

// openReport returns the report writer selected by cfg and a function that
// releases its output.
//
// Without --output the report goes to stdout in the selected format. With
// --output the selected format goes to the file and a plain text summary is
// still printed to stdout.
func openReport(cfg *config.Config, stdout io.Writer) (report.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return newFormatWriter(cfg, stdout), func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports list the analyzed websites and server; keep them private.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := report.NewMultiWriter(
		newFormatWriter(cfg, f),
		report.NewSimpleWriter(stdout),
	)
	return w, f.Close, nil
}

// newFormatWriter creates the writer for the format selected by cfg.
func newFormatWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}
}
