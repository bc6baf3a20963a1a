package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/rivalscan/internal/config"
)

// addServerFlags adds the flags shared by every command that talks to the
// analysis server.
func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("server", "s", config.DefaultServer,
		"Base URL of the analysis server")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout (0 disables it)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rivalscan in current or home directory)")
}

// addReportFlags adds the report output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output report in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output report in Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// buildConfig creates a Config from defaults, the configuration file and
// the command flags, in increasing order of precedence. urls are the
// websites to analyze, if any.
func buildConfig(cmd *cobra.Command, urls []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.Server, err = flags.GetString("server")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = flags.GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = flags.GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = flags.GetString("output")
	if err != nil {
		return nil, err
	}

	// Command specific flags
	if flags.Lookup("poll-interval") != nil {
		if cfg.PollInterval, err = flags.GetDuration("poll-interval"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("redirect-delay") != nil {
		if cfg.RedirectDelay, err = flags.GetDuration("redirect-delay"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("concurrency") != nil {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.URLs = urls

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
		cfg.Apply(file, flags.Changed)
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}
