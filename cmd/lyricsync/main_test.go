package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricsync/internal/pipeline"
	"lyricsync/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	inputDir   string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("LYRICSYNC_DSN", "")
	t.Setenv("LYRICSYNC_INPUT_DIR", "")
	env := &cliTestEnv{
		configPath: filepath.Join(base, "lyricsync.toml"),
		inputDir:   filepath.Join(base, "catalog"),
		baseDir:    base,
	}
	content := fmt.Sprintf("[paths]\ninput_dir = %q\nlog_dir = %q\nstate_dir = %q\n\n[pipeline]\nworkers = 2\nmetrics_file = %q\n",
		env.inputDir,
		filepath.Join(base, "logs"),
		filepath.Join(base, "state"),
		filepath.Join(base, "state", "lyricsync.prom"),
	)
	testsupport.WriteFile(t, env.configPath, content)
	if err := os.MkdirAll(env.inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "[OK]")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting an existing file")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "accept_threshold")
}

func TestRunTopAndSummaryCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteAlbum(t, env.inputDir, testsupport.AlbumFixture{
		Artist:    "Taylor Swift",
		Album:     "1989",
		TracksCSV: "name,track_number\nShake It Off,1\nBlank Space,2\n",
		Lyrics: map[string]string{
			"shake_it_off": "Shake it off, shake it off",
			"blank_space":  "Got a long list of ex-lovers",
		},
	})

	out, _, err := runCLI(t, []string{"run", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var summary pipeline.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Matched != 2 || len(summary.Albums) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	out, _, err = runCLI(t, []string{"top", "--artist", "Taylor Swift", "--album", "1989", "-n", "3"}, env.configPath, "")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	requireContains(t, out, "shake")

	out, _, err = runCLI(t, []string{"summary"}, env.configPath, "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	requireContains(t, out, "word_frequencies_album")
	requireContains(t, out, "1989")

	out, _, err = runCLI(t, []string{"run"}, env.configPath, "")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	requireContains(t, out, "Taylor Swift")
	requireContains(t, out, "Missing log:")
}

func TestTopRequiresArtistAndAlbum(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"top", "--artist", "Adele"}, env.configPath, ""); err == nil {
		t.Fatal("expected an error without --album")
	}
}

func TestAnalyzeReadsStdin(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"analyze", "--json"}, env.configPath, "Hello darkness my old friend\nHello again\n")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var result analyzeResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if result.Metrics.Words != 5 || result.Metrics.Lines != 2 {
		t.Fatalf("unexpected metrics %+v", result.Metrics)
	}
	if len(result.TopWords) == 0 || result.TopWords[0].Word != "hello" || result.TopWords[0].Count != 2 {
		t.Fatalf("unexpected top words %+v", result.TopWords)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		pipeline.StatusOK:                  "Ok",
		pipeline.StatusDocumentsUnreadable: "Documents Unreadable",
		pipeline.StatusFailed:              "Failed",
	}
	for status, want := range cases {
		if got := statusLabel(status, false); got != want {
			t.Errorf("statusLabel(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestRunFailsPreflightWithoutInputDir(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.inputDir); err != nil {
		t.Fatalf("remove input: %v", err)
	}
	_, _, err := runCLI(t, []string{"run"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "Input directory") {
		t.Fatalf("expected preflight failure, got %v", err)
	}
}
