package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/rivalscan/internal/config"
)

//go:embed templates/rivalscan.yaml
var configTemplate []byte

// errConfigExists is returned when init would overwrite a file without --force.
var errConfigExists = errors.New("configuration file already exists")

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a rivalscan configuration file",
		Long: `Init writes an annotated .rivalscan configuration file with the analysis
server, the polling and redirect timing and a commented competitor list.

Examples:
  # Create .rivalscan in the current directory
  rivalscan init

  # Point the configuration at a remote analysis server
  rivalscan init -s https://analysis.example.com

  # Write to another path, replacing an existing file
  rivalscan init -o ~/.config/rivalscan/config.yaml -f

  # Print the configuration instead of writing it
  rivalscan init --stdout`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().StringP("server", "s", config.DefaultServer,
		"Analysis server written into the configuration")
	cmd.Flags().Bool("stdout", false,
		"Print the configuration to stdout instead of writing a file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	outputPath, err := flags.GetString("output")
	if err != nil {
		return err
	}
	force, err := flags.GetBool("force")
	if err != nil {
		return err
	}
	server, err := flags.GetString("server")
	if err != nil {
		return err
	}
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}

	content, err := renderConfigTemplate(server)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if toStdout {
		_, err := out.Write(content)
		return err
	}

	if err := writeConfigFile(outputPath, content, force); err != nil {
		return err
	}
	printInitSummary(out, outputPath)
	return nil
}

// renderConfigTemplate returns the embedded template with its server line
// set to server.
func renderConfigTemplate(server string) ([]byte, error) {
	if server == config.DefaultServer {
		return configTemplate, nil
	}

	u, err := url.Parse(server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidServer, server)
	}

	defaultLine := []byte("server: " + config.DefaultServer + "\n")
	if !bytes.Contains(configTemplate, defaultLine) {
		return nil, errors.New("config template has no server line")
	}
	return bytes.Replace(configTemplate, defaultLine, []byte("server: "+server+"\n"), 1), nil
}

// writeConfigFile writes content to path, creating parent directories.
// An existing file is only replaced when force is set.
func writeConfigFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use -f to overwrite)", errConfigExists, path)
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

func printInitSummary(w io.Writer, path string) {
	fmt.Fprintf(w, "Created configuration file: %s\n\n", path)
	fmt.Fprintln(w, "Edit it to set the analysis server, the polling interval and the")
	fmt.Fprintln(w, "competitor websites added to every analysis. Then run:")
	fmt.Fprintln(w, "  rivalscan analyze https://your-site.com")
}
