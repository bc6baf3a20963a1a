package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/rivalscan/internal/config"
)

// execInit runs the init command with args and returns its stdout.
func execInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewInitCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// loadWritten loads the configuration file at path.
func loadWritten(t *testing.T, path string) *config.File {
	t.Helper()

	file, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("written configuration does not load: %v", err)
	}
	return file
}

// TestNewInitCmd tests the init command's flags.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{name: "output", shorthand: "o", def: config.DefaultConfigFile},
		{name: "force", shorthand: "f", def: "false"},
		{name: "server", shorthand: "s", def: config.DefaultServer},
		{name: "stdout", def: "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.def {
				t.Errorf("expected default %q, got %q", tt.def, flag.DefValue)
			}
		})
	}
}

// TestRunInitCmd tests writing configuration files.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes the template", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".rivalscan")
		out, err := execInit(t, "-o", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Created configuration file: "+path) {
			t.Errorf("unexpected output:\n%s", out)
		}
		if got := loadWritten(t, path).Server; got != config.DefaultServer {
			t.Errorf("expected default server, got %q", got)
		}
	})

	t.Run("server flag is written", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".rivalscan")
		if _, err := execInit(t, "-o", path, "-s", "https://analysis.example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := loadWritten(t, path).Server; got != "https://analysis.example.com" {
			t.Errorf("expected server from flag, got %q", got)
		}
	})

	t.Run("invalid server is rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".rivalscan")
		_, err := execInit(t, "-o", path, "-s", "analysis.example.com")
		if !errors.Is(err, config.ErrInvalidServer) {
			t.Fatalf("expected ErrInvalidServer, got %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no file to be written")
		}
	})

	t.Run("existing file needs force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".rivalscan")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if _, err := execInit(t, "-o", path); !errors.Is(err, errConfigExists) {
			t.Fatalf("expected errConfigExists, got %v", err)
		}
		if _, err := execInit(t, "-o", path, "-f"); err != nil {
			t.Fatalf("unexpected error with force: %v", err)
		}
		if content, _ := os.ReadFile(path); string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories with private mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rivalscan", "config.yaml")
		if _, err := execInit(t, "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected file in nested directory: %v", err)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
			t.Errorf("expected permissions 0600, got %o", info.Mode().Perm())
		}
	})

	t.Run("stdout prints instead of writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, ".rivalscan")
		out, err := execInit(t, "-o", path, "--stdout", "-s", "http://127.0.0.1:8080")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "server: http://127.0.0.1:8080\n") {
			t.Errorf("expected rendered server line:\n%s", out)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected no file to be written")
		}
	})
}

// TestConfigTemplate tests that the embedded template matches the defaults.
func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".rivalscan")
	if err := os.WriteFile(path, configTemplate, 0600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	cfg := config.NewConfig()
	cfg.Apply(loadWritten(t, path), nil)
	if diff := cmp.Diff(config.NewConfig(), cfg); diff != "" {
		t.Errorf("template values must match the defaults (-want +got):\n%s", diff)
	}
}
