package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultServer is the analysis server started by its development runner.
	DefaultServer = "http://localhost:5000"

	// DefaultPollInterval is how often the job status is requested.
	DefaultPollInterval = 2 * time.Second

	// DefaultRedirectDelay is how long the success notification stays on
	// screen before the results page is opened.
	DefaultRedirectDelay = 1500 * time.Millisecond

	// DefaultTimeout of zero means requests are bounded only by the
	// command's context. Analysis submissions can take a while to be
	// accepted on a busy server.
	DefaultTimeout time.Duration = 0

	// DefaultMaxBodySize limits how much of a response body is read.
	// Submit and status responses are small JSON documents.
	DefaultMaxBodySize = 1 << 20 // 1MB

	// DefaultConcurrency is the number of status queries run at once.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "rivalscan"

	// DefaultUserAgent identifies rivalscan in HTTP requests.
	DefaultUserAgent = "rivalscan (+https://github.com/nao1215/rivalscan)"
)

// Config holds all configuration options for rivalscan.
// It is populated from the configuration file and CLI flags, flags winning,
// and passed to the commands explicitly.
type Config struct {
	// Server is the base URL of the analysis server.
	Server string

	// PollInterval is the period between status requests.
	PollInterval time.Duration

	// RedirectDelay is the pause between completion and opening the results.
	RedirectDelay time.Duration

	// Timeout bounds each HTTP request. Zero disables the per-request timeout.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Concurrency is the number of status queries run at once by the
	// status command.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport writes the run summary as JSON. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the run summary as GitHub Flavored Markdown.
	MarkdownReport bool

	// ReportFile is the output file path for the run summary.
	// When empty, the summary is written to stdout.
	ReportFile string

	// URLs are the websites to analyze. The first one is the primary website.
	URLs []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:        DefaultServer,
		PollInterval:  DefaultPollInterval,
		RedirectDelay: DefaultRedirectDelay,
		Timeout:       DefaultTimeout,
		MaxBodySize:   DefaultMaxBodySize,
		UserAgent:     DefaultUserAgent,
		Concurrency:   DefaultConcurrency,
	}
}

// XDGConfigDir returns the XDG config directory for rivalscan.
// On Linux: ~/.config/rivalscan
// On macOS: ~/Library/Application Support/rivalscan
// On Windows: %APPDATA%\rivalscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found. The URL list is validated by the session controller,
// which owns the primary/competitor rules.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidServer
	}

	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}

	if c.RedirectDelay < 0 {
		return ErrInvalidRedirectDelay
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// Apply copies the values set in the configuration file into c.
// changed reports whether a setting was given on the command line; those
// settings are left alone. Competitors from the file are appended after
// the URLs already in c.
func (c *Config) Apply(f *File, changed func(name string) bool) {
	if f == nil {
		return
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if f.Server != "" && !changed("server") {
		c.Server = f.Server
	}
	if f.PollInterval > 0 && !changed("poll-interval") {
		c.PollInterval = f.PollInterval
	}
	if f.RedirectDelay != nil && !changed("redirect-delay") {
		c.RedirectDelay = *f.RedirectDelay
	}
	if f.Timeout > 0 && !changed("timeout") {
		c.Timeout = f.Timeout
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if len(c.URLs) > 0 {
		c.URLs = append(c.URLs, f.Competitors...)
	}
}
