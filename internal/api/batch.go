package api

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/rivalscan/internal/model"
)

// DefaultConcurrency is the default number of status requests in flight.
const DefaultConcurrency = 4

// StatusQuerier is the part of Client used by BatchQuerier.
type StatusQuerier interface {
	Status(ctx context.Context, sessionID string) (*model.JobStatus, error)
	ResultsURL(sessionID string) string
}

// BatchQuerier queries the status of several sessions concurrently.
type BatchQuerier struct {
	client      StatusQuerier
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchQuerier.
type BatchOption func(*BatchQuerier)

// WithBatchLogger sets the logger for batch queries.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchQuerier) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConcurrency sets the maximum number of concurrent status requests.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchQuerier) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchQuerier creates a BatchQuerier backed by client.
func NewBatchQuerier(client StatusQuerier, opts ...BatchOption) *BatchQuerier {
	b := &BatchQuerier{
		client:      client,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// QueryAll requests the status of every session id.
//
// Entries are returned in the order of ids. A failed query is recorded in
// its entry and does not stop the others; the returned error is only set
// when ctx ends before every query ran.
func (b *BatchQuerier) QueryAll(ctx context.Context, ids []string) ([]model.StatusEntry, error) {
	b.logger.Debug("querying session status",
		"sessions", len(ids),
		"concurrency", b.concurrency,
	)
	start := time.Now()

	// Each goroutine writes only its own index.
	entries := make([]model.StatusEntry, len(ids))
	for i, id := range ids {
		entries[i].SessionID = id
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				entries[i].Error = ctx.Err().Error()
				return ctx.Err()
			default:
			}

			status, err := b.client.Status(ctx, id)
			if err != nil {
				b.logger.Warn("status query failed", "session_id", id, "error", err)
				entries[i].Error = err.Error()
				return nil
			}

			entries[i].Status = status
			if status.Status == model.JobCompleted {
				entries[i].ResultsURL = b.client.ResultsURL(id)
			}
			return nil
		})
	}

	err := g.Wait()

	b.logger.Debug("status queries complete",
		"sessions", len(ids),
		"elapsed", time.Since(start),
	)
	return entries, err
}
