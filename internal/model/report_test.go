package model

import (
	"testing"
	"time"
)

// TestSessionReport tests the session report helpers.
func TestSessionReport(t *testing.T) {
	t.Parallel()

	t.Run("new report starts idle", func(t *testing.T) {
		t.Parallel()
		r := NewSessionReport("http://localhost:5000", Payload{"https://a.com"})
		if r.State != StateIdle {
			t.Errorf("expected idle, got %v", r.State)
		}
		if r.StartedAt.IsZero() {
			t.Error("expected StartedAt to be set")
		}
		if r.Duration() != 0 {
			t.Error("expected zero duration before finish")
		}
	})

	t.Run("duration and success", func(t *testing.T) {
		t.Parallel()
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		r := &SessionReport{
			State:      StateCompleted,
			StartedAt:  start,
			FinishedAt: start.Add(90 * time.Second),
		}
		if !r.Succeeded() {
			t.Error("expected success")
		}
		if r.Duration() != 90*time.Second {
			t.Errorf("unexpected duration %v", r.Duration())
		}
	})

	t.Run("websites carry roles and company names", func(t *testing.T) {
		t.Parallel()
		r := &SessionReport{URLs: Payload{"https://www.acme.com", "https://rival-co.io"}}
		sites := r.Websites()
		if len(sites) != 2 {
			t.Fatalf("expected 2 websites, got %d", len(sites))
		}
		if sites[0].Role != "Primary" || sites[0].Key != "url1" || sites[0].Company != "Acme" {
			t.Errorf("unexpected primary row %+v", sites[0])
		}
		if sites[1].Role != "Competitor #1" || sites[1].Key != "url2" || sites[1].Company != "Rival Co" {
			t.Errorf("unexpected competitor row %+v", sites[1])
		}
	})
}

func TestStatusEntryState(t *testing.T) {
	t.Parallel()

	if got := (StatusEntry{SessionID: "x", Error: "boom"}).State(); got != "unknown" {
		t.Errorf("expected unknown, got %q", got)
	}
	e := StatusEntry{SessionID: "x", Status: &JobStatus{Status: JobCompleted}}
	if got := e.State(); got != "completed" {
		t.Errorf("expected completed, got %q", got)
	}
}
