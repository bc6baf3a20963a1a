package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/rivalscan/internal/model"
)

// Route paths on the analysis server.
const (
	SubmitPath  = "/scrape"
	StatusPath  = "/status/"
	ResultsPath = "/results/"
)

const (
	// DefaultUserAgent identifies rivalscan in requests to the server.
	DefaultUserAgent = "rivalscan (+https://github.com/nao1215/rivalscan)"

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 1 << 20
)

// Client talks to the analysis server.
// It is safe for concurrent use.
type Client struct {
	// baseURL is the server root; route paths are resolved against it.
	baseURL *url.URL

	// httpClient performs the requests.
	httpClient *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize bounds response reads.
	maxBodySize int64

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize overrides the response size limit.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the server at baseURL.
// The URL is validated but the server is not contacted.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		baseURL:     u,
		httpClient:  &http.Client{},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Submit starts a job for payload.
//
// A non-2xx response yields a *ResponseError carrying the server's message.
// A 2xx response without a session id yields ErrMissingSessionID.
func (c *Client) Submit(ctx context.Context, payload model.Payload) (*model.SubmitResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(SubmitPath), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp model.SubmitResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.SessionID == "" {
		return nil, ErrMissingSessionID
	}

	c.logger.Debug("analysis submitted",
		"session", resp.SessionID,
		"urls", len(payload),
	)
	return &resp, nil
}

// Status fetches the current status of the job identified by sessionID.
func (c *Client) Status(ctx context.Context, sessionID string) (*model.JobStatus, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(StatusPath+sessionID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var status model.JobStatus
	if err := c.do(req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ResultsURL returns the absolute URL of the results page for sessionID.
func (c *Client) ResultsURL(sessionID string) string {
	return c.endpoint(ResultsPath + sessionID)
}

// endpoint resolves the unescaped path against the base URL.
// Escaping happens when the URL is serialized.
func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawPath = ""
	return u.String()
}

// do sends req and decodes a 2xx JSON body into out.
// Non-2xx responses are turned into *ResponseError.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request finished",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the "message" field of an error body.
// Bodies that are not JSON objects yield an empty message.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}
