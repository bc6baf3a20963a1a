package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/rivalscan/internal/api"
	"github.com/nao1215/rivalscan/internal/config"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <session-id>...",
		Short: "Show the status of analysis sessions",
		Long: `Status asks the analysis server once for the status of each session id
and prints the result. Sessions are queried concurrently.

Examples:
  # Check one session
  rivalscan status 3f2c9a1e-7b4d-4e0f-9c2a-1d5e6f7a8b9c

  # Check several sessions and print JSON
  rivalscan status -j id-one id-two id-three`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStatusCmd,
	}

	addServerFlags(cmd)
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of sessions queried at once")
	addReportFlags(cmd)

	return cmd
}

// runStatusCmd executes the status command.
func runStatusCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runStatus(ctx, cfg, args, cmd.OutOrStdout(), logger)
}

// runStatus queries every session and writes the results.
// It fails when any query failed, after writing all results.
func runStatus(ctx context.Context, cfg *config.Config, ids []string, stdout io.Writer, logger *slog.Logger) error {
	client, err := api.NewClient(cfg.Server,
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithMaxBodySize(cfg.MaxBodySize),
		api.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	querier := api.NewBatchQuerier(client,
		api.WithConcurrency(cfg.Concurrency),
		api.WithBatchLogger(logger),
	)
	entries, queryErr := querier.QueryAll(ctx, ids)

	w, closeReport, err := openReport(cfg, stdout)
	if err != nil {
		return err
	}
	_, err = w.WriteStatuses(entries)
	if closeErr := closeReport(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if queryErr != nil {
		return queryErr
	}

	failed := 0
	for _, e := range entries {
		if e.Status == nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d status queries failed", failed, len(entries))
	}
	return nil
}
