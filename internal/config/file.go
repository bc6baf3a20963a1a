package config

import "time"

// File represents the structure of the .rivalscan configuration file.
//
//	server: https://analysis.example.com
//	pollInterval: 2s
//	redirectDelay: 1500ms
//	competitors:
//	  - https://rival-one.com
type File struct {
	// Server is the base URL of the analysis server.
	Server string `yaml:"server,omitempty"`

	// PollInterval overrides the status poll period.
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`

	// RedirectDelay overrides the pause before opening the results.
	// A pointer so that an explicit 0 can be told apart from unset.
	RedirectDelay *time.Duration `yaml:"redirectDelay,omitempty"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Competitors are analyzed alongside every primary website given on
	// the command line.
	Competitors []string `yaml:"competitors,omitempty"`
}
