package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/rivalscan/internal/api"
	"github.com/nao1215/rivalscan/internal/config"
	"github.com/nao1215/rivalscan/internal/console"
	"github.com/nao1215/rivalscan/internal/model"
	"github.com/nao1215/rivalscan/internal/session"
)

var (
	// errAnalysisFailed is returned when the server reports a failed job.
	errAnalysisFailed = errors.New("competitive analysis failed")

	// errInterrupted is returned when the analysis is stopped by a signal.
	errInterrupted = errors.New("competitive analysis interrupted")
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <primary-url> [competitor-url...]",
		Short: "Run a competitive analysis of your website against competitors",
		Long: `Analyze submits your website and its competitors to the analysis server,
shows the progress while the server analyzes them and prints the results URL
when the analysis is complete.

The first URL is your (primary) website. Up to 9 competitor URLs may follow;
competitors listed in the configuration file are added after them.

Examples:
  # Analyze one website against two competitors
  rivalscan analyze https://mysite.com https://rival-one.com https://rival-two.com

  # Use a remote analysis server and save a Markdown report
  rivalscan analyze -s https://analysis.example.com -m -o report.md https://mysite.com

Configuration file (.rivalscan) example:
  server: https://analysis.example.com
  pollInterval: 2s
  competitors:
    - https://rival-one.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	addServerFlags(cmd)
	cmd.Flags().Duration("poll-interval", config.DefaultPollInterval,
		"Interval between status requests")
	cmd.Flags().Duration("redirect-delay", config.DefaultRedirectDelay,
		"Delay between completion and showing the results URL")
	addReportFlags(cmd)

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// runAnalyze runs one analysis session end to end and writes its report.
// Progress goes to progressOut, the report to stdout.
func runAnalyze(ctx context.Context, cfg *config.Config, stdout, progressOut io.Writer, logger *slog.Logger) error {
	client, err := api.NewClient(cfg.Server,
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithMaxBodySize(cfg.MaxBodySize),
		api.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	term := console.New(progressOut, console.WithLogger(logger))
	ctrl := session.New(client, term, term,
		session.WithLogger(logger),
		session.WithPollInterval(cfg.PollInterval),
		session.WithRedirectDelay(cfg.RedirectDelay),
	)
	defer ctrl.Close()

	rep := model.NewSessionReport(client.BaseURL(), nil)
	runErr := runSession(ctx, ctrl, model.URLFields(cfg.URLs), rep)
	if errors.Is(runErr, model.ErrPrimaryURLRequired) || errors.Is(runErr, model.ErrTooManyURLs) {
		// Nothing was submitted; the terminal already shows why.
		return runErr
	}
	rep.FinishedAt = time.Now()

	w, closeReport, err := openReport(cfg, stdout)
	if err != nil {
		return err
	}
	_, err = w.Write(rep)
	if closeErr := closeReport(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return runErr
}

// runSession submits fields, waits for the outcome and records it in rep.
func runSession(ctx context.Context, ctrl *session.Controller, fields []model.FormField, rep *model.SessionReport) error {
	err := ctrl.Submit(ctx, fields)
	rep.URLs = ctrl.Payload()
	if err != nil {
		rep.State = model.StateIdle
		rep.Error = err.Error()
		if ctx.Err() != nil {
			return errInterrupted
		}
		return err
	}

	rep.SessionID = ctrl.SessionID()
	outcome, err := ctrl.Wait(ctx)
	if err != nil {
		// Interrupted: record where the session was, then release it.
		rep.State = ctrl.State()
		rep.Progress = ctrl.Progress()
		ctrl.Reset()
		if ctx.Err() != nil {
			return errInterrupted
		}
		return err
	}

	rep.State = outcome.State
	rep.Progress = outcome.Progress
	rep.ResultsURL = outcome.ResultsURL
	if outcome.Err != nil {
		rep.Error = outcome.Err.Error()
		return fmt.Errorf("%w: %w", errAnalysisFailed, outcome.Err)
	}
	return nil
}
