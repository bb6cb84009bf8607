package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/groove-cli/groove/internal/shared"
	"github.com/groove-cli/groove/internal/spotify"
	tu "github.com/groove-cli/groove/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			client := spotify.NewClient("", spotify.StaticToken("token"), nil)

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Client: client,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built from the client")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.output == nil {
				t.Error("expected default output to be set")
			}
		})

		t.Run("without client has no engine", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.engine != nil {
				t.Error("expected no engine without a client")
			}
			if err := runner.requireClient(); err == nil {
				t.Error("expected requireClient to fail")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
		commands := runner.register()

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "auth", "search", "playlist", "sync", "history"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"added": 3}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := output.String(); got != "{\"added\":3}\n" {
				t.Errorf("unexpected output %q", got)
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"added": 3}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output.String(), "  \"added\": 3") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})

		t.Run("failing writer", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writeJSON("x", false); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("added %d of %d\n", 3, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.String() != "added 3 of 5\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("writeReport", func(t *testing.T) {
		t.Run("json report", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})
			path := filepath.Join(t.TempDir(), "report.json")

			if err := runner.writeReport(path, []spotify.MatchResult{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tu.AssertFileExists(t, path)
		})

		t.Run("csv report", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})
			path := filepath.Join(t.TempDir(), "report.csv")

			if err := runner.writeReport(path, []spotify.MatchResult{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(tu.MustReadFile(t, path), "Artist,Title,Found") {
				t.Error("expected CSV header row")
			}
		})

		t.Run("unknown extension rejected", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
			path := filepath.Join(t.TempDir(), "report.xml")

			if err := runner.writeReport(path, nil); err == nil {
				t.Error("expected error for unsupported format")
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("no file should be written for unsupported formats")
			}
		})
	})
}
