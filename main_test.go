package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/page-rescue/pkg/evaluation"
	"github.com/urfave/cli/v2"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	for _, name := range []string{"quickstart", "serve", "report", "evaluate", "db"} {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}

	dbCmd := app.Command("db")
	if dbCmd == nil {
		t.Fatal("db command missing")
	}
	subcommands := map[string]bool{}
	for _, sub := range dbCmd.Subcommands {
		subcommands[sub.Name] = true
	}
	for _, name := range []string{"records", "show", "import"} {
		if !subcommands[name] {
			t.Errorf("db subcommand %q not registered", name)
		}
	}
}

// writeConfig points the database and snapshot cache into a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf("database:\n  path: %s\ncache:\n  dir: %s\n",
		filepath.Join(dir, "test.db"), filepath.Join(dir, "cache"))
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runApp runs the CLI with args and returns what it printed to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		out, _ := io.ReadAll(r)
		done <- string(out)
	}()

	runErr := app.Run(append([]string{"page-rescue"}, args...))
	w.Close()
	return <-done, runErr
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

func TestEvaluate_EmptyDatabase(t *testing.T) {
	cfg := writeConfig(t)

	out, err := runApp(t, "--config", cfg, "--quiet", "evaluate")
	if err != nil {
		t.Fatalf("evaluate error = %v", err)
	}
	if out != evaluation.NoValidPairsMessage+"\n" {
		t.Errorf("evaluate output = %q, want %q", out, evaluation.NoValidPairsMessage+"\n")
	}
}

func TestEvaluate_UsageErrors(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--config", cfg, "--quiet", "evaluate", "--format", "xml"}},
		{"unknown mode", []string{"--config", cfg, "--quiet", "evaluate", "--mode", "bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			if code := exitCode(err); code != 1 {
				t.Errorf("exit code = %d (err %v), want 1", code, err)
			}
		})
	}
}

func TestEvaluate_ImportedRecords(t *testing.T) {
	article := "The lighthouse keeper climbed the spiral stairs every evening to light the lamp above the harbour"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", article)
	}))
	defer server.Close()

	cfg := writeConfig(t)
	records := fmt.Sprintf(`- url: https://example.com/lighthouse
  archived: true
  snapshot_url: %s/web/2015/https://example.com/lighthouse
  ai_reconstruction: %q
- url: https://example.com/gone
  archived: false
  ai_reconstruction: "AI reconstruction failed."
`, server.URL, article)
	importFile := filepath.Join(t.TempDir(), "records.yaml")
	if err := os.WriteFile(importFile, []byte(records), 0o600); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	out, err := runApp(t, "--config", cfg, "--quiet", "db", "import", importFile)
	if err != nil {
		t.Fatalf("db import error = %v", err)
	}
	if !strings.Contains(out, "Imported 2 records") {
		t.Errorf("db import output = %q", out)
	}

	out, err = runApp(t, "--config", cfg, "--quiet", "db", "records")
	if err != nil {
		t.Fatalf("db records error = %v", err)
	}
	if !strings.Contains(out, "https://example.com/lighthouse") || !strings.Contains(out, "Showing 2 of 2 records") {
		t.Errorf("db records output = %q", out)
	}

	out, err = runApp(t, "--config", cfg, "--quiet", "evaluate")
	if err != nil {
		t.Fatalf("evaluate error = %v", err)
	}
	if !strings.Contains(out, "Evaluated 1 valid page reconstructions") || !strings.Contains(out, "1.0000") {
		t.Errorf("evaluate output = %q, want one perfect pair", out)
	}
}

func TestDBShow_Errors(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing id", []string{"--config", cfg, "--quiet", "db", "show"}, 1},
		{"bad id", []string{"--config", cfg, "--quiet", "db", "show", "abc"}, 1},
		{"not found", []string{"--config", cfg, "--quiet", "db", "show", "99"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			if code := exitCode(err); code != tt.want {
				t.Errorf("exit code = %d (err %v), want %d", code, err, tt.want)
			}
		})
	}
}
