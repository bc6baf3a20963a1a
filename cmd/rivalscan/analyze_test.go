package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/rivalscan/internal/config"
	"github.com/nao1215/rivalscan/internal/model"
	"github.com/nao1215/rivalscan/internal/session"
)

// fakeServer is an analysis server that accepts one session, abc123, and
// answers status requests from a script. The last scripted status repeats.
type fakeServer struct {
	*httptest.Server

	submits  atomic.Int32
	polls    atomic.Int32
	statuses []string
	body     atomic.Value
}

func newFakeServer(t *testing.T, submitStatus int, statuses ...string) *fakeServer {
	t.Helper()

	fs := &fakeServer{statuses: statuses}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scrape", func(w http.ResponseWriter, r *http.Request) {
		fs.submits.Add(1)
		data, _ := io.ReadAll(r.Body)
		fs.body.Store(string(data))

		w.Header().Set("Content-Type", "application/json")
		if submitStatus != http.StatusOK {
			w.WriteHeader(submitStatus)
			_, _ = io.WriteString(w, `{"message":"Server is busy"}`)
			return
		}
		_, _ = io.WriteString(w, `{"session_id":"abc123","total_urls":2}`)
	})
	mux.HandleFunc("GET /status/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "abc123" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Session not found"}`)
			return
		}
		n := int(fs.polls.Add(1)) - 1
		if n >= len(fs.statuses) {
			n = len(fs.statuses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, fs.statuses[n])
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) submittedBody() string {
	s, _ := fs.body.Load().(string)
	return s
}

const (
	statusProcessing = `{"status":"processing","completed":1,"total":2,"current_url":"https://www.b.com"}`
	statusCompleted  = `{"status":"completed","completed":2,"total":2}`
	statusFailed     = `{"status":"error","completed":1,"total":2,"error":"scraper crashed"}`
)

// testConfig returns a fast configuration pointing at server.
func testConfig(server string, urls ...string) *config.Config {
	cfg := config.NewConfig()
	cfg.Server = server
	cfg.PollInterval = 10 * time.Millisecond
	cfg.RedirectDelay = 0
	cfg.URLs = urls
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// jsonRunReport is the subset of the JSON report checked by the tests.
type jsonRunReport struct {
	Succeeded bool `json:"succeeded"`
	Report    struct {
		SessionID  string            `json:"session_id"`
		State      string            `json:"state"`
		ResultsURL string            `json:"results_url"`
		Error      string            `json:"error"`
		URLs       map[string]string `json:"urls"`
	} `json:"report"`
}

func runAnalyzeForTest(t *testing.T, cfg *config.Config) (stdout, progress string, err error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out, prog bytes.Buffer
	err = runAnalyze(ctx, cfg, &out, &prog, discardLogger())
	return out.String(), prog.String(), err
}

// TestRunAnalyze tests a full analysis session against a fake server.
func TestRunAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("completed session prints results", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusOK, statusProcessing, statusCompleted)
		stdout, progress, err := runAnalyzeForTest(t, testConfig(fs.URL, "https://a.com", "https://www.b.com"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := fs.submittedBody(); got != `{"url1":"https://a.com","url2":"https://www.b.com"}` {
			t.Errorf("unexpected submission body: %s", got)
		}
		if !strings.Contains(stdout, "COMPETITIVE ANALYSIS SESSION") {
			t.Errorf("expected simple report, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, fs.URL+"/results/abc123") {
			t.Errorf("expected results URL in report, got:\n%s", stdout)
		}
		if !strings.Contains(progress, "Results: "+fs.URL+"/results/abc123") {
			t.Errorf("expected navigation in progress output, got:\n%s", progress)
		}
		if !strings.Contains(progress, session.MessageCompleted) {
			t.Errorf("expected completion notice, got:\n%s", progress)
		}
	})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusOK, statusCompleted)
		cfg := testConfig(fs.URL, "https://a.com", "https://www.b.com")
		cfg.JSONReport = true

		stdout, _, err := runAnalyzeForTest(t, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got jsonRunReport
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if !got.Succeeded || got.Report.SessionID != "abc123" || got.Report.State != model.StateCompleted.String() {
			t.Errorf("unexpected report: %+v", got)
		}
		if got.Report.ResultsURL != fs.URL+"/results/abc123" {
			t.Errorf("unexpected results URL %q", got.Report.ResultsURL)
		}
		if got.Report.URLs["url1"] != "https://a.com" || got.Report.URLs["url2"] != "https://www.b.com" {
			t.Errorf("unexpected urls: %v", got.Report.URLs)
		}
	})

	t.Run("failed job", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusOK, statusProcessing, statusFailed)
		cfg := testConfig(fs.URL, "https://a.com", "https://www.b.com")
		cfg.JSONReport = true

		stdout, progress, err := runAnalyzeForTest(t, cfg)
		if !errors.Is(err, errAnalysisFailed) {
			t.Fatalf("expected errAnalysisFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "scraper crashed") {
			t.Errorf("expected job error in %q", err.Error())
		}
		if !strings.Contains(progress, "scraper crashed") {
			t.Errorf("expected job error on the terminal, got:\n%s", progress)
		}

		var got jsonRunReport
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if got.Succeeded || got.Report.State != model.StateFailed.String() || got.Report.Error != "scraper crashed" {
			t.Errorf("unexpected report: %+v", got)
		}
	})

	t.Run("rejected submission", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusServiceUnavailable, statusCompleted)
		stdout, progress, err := runAnalyzeForTest(t, testConfig(fs.URL, "https://a.com"))

		var subErr *session.SubmissionError
		if !errors.As(err, &subErr) {
			t.Fatalf("expected SubmissionError, got %v", err)
		}
		if subErr.Message != "Server is busy" {
			t.Errorf("expected server message, got %q", subErr.Message)
		}
		if !strings.Contains(progress, "Server is busy") {
			t.Errorf("expected error on the terminal, got:\n%s", progress)
		}
		if !strings.Contains(stdout, "Not started") {
			t.Errorf("expected not started report, got:\n%s", stdout)
		}
		if fs.polls.Load() != 0 {
			t.Errorf("expected no status requests, got %d", fs.polls.Load())
		}
	})

	t.Run("missing primary url is not submitted", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusOK, statusCompleted)
		stdout, progress, err := runAnalyzeForTest(t, testConfig(fs.URL, "   ", "https://b.com"))
		if !errors.Is(err, model.ErrPrimaryURLRequired) {
			t.Fatalf("expected ErrPrimaryURLRequired, got %v", err)
		}
		if fs.submits.Load() != 0 {
			t.Errorf("expected no submission, got %d", fs.submits.Load())
		}
		if stdout != "" {
			t.Errorf("expected no report, got:\n%s", stdout)
		}
		if !strings.Contains(progress, session.MessagePrimaryRequired) {
			t.Errorf("expected validation notice, got:\n%s", progress)
		}
	})

	t.Run("report file gets format and stdout gets summary", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusOK, statusCompleted)
		cfg := testConfig(fs.URL, "https://a.com", "https://www.b.com")
		cfg.MarkdownReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "reports", "session.md")

		stdout, _, err := runAnalyzeForTest(t, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(data), "# Competitive Analysis Session") {
			t.Errorf("expected markdown report, got:\n%s", data)
		}
		if !strings.Contains(stdout, "COMPETITIVE ANALYSIS SESSION") {
			t.Errorf("expected summary on stdout, got:\n%s", stdout)
		}

		info, err := os.Stat(cfg.ReportFile)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected mode 0600, got %o", perm)
		}
	})

	t.Run("cancelled context interrupts polling", func(t *testing.T) {
		t.Parallel()

		fs := newFakeServer(t, http.StatusOK, statusProcessing)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			for fs.polls.Load() == 0 {
				time.Sleep(5 * time.Millisecond)
			}
			cancel()
		}()

		var out, prog bytes.Buffer
		err := runAnalyze(ctx, testConfig(fs.URL, "https://a.com", "https://www.b.com"), &out, &prog, discardLogger())
		if !errors.Is(err, errInterrupted) {
			t.Fatalf("expected errInterrupted, got %v", err)
		}
		if !strings.Contains(out.String(), "Interrupted") {
			t.Errorf("expected interrupted report, got:\n%s", out.String())
		}
	})
}

// TestAnalyzeCmdFlags tests the analyze command's flag set.
func TestAnalyzeCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()
	for _, name := range []string{"server", "timeout", "config", "poll-interval", "redirect-delay", "json", "markdown", "output"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}

	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("expected error without a primary URL")
	}
}
