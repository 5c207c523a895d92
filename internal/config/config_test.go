package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codescope.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
paths = ["./src"]

[exclude]
dirs = [".git"]
files = ["*.min.js"]

[analysis]
complexity_threshold = 15
workers = 2

[analysis.weights]
documentation = 0.1
tests = 0.3
complexity = 0.2
conventions = 0.2
best_practices = 0.2

[output]
format = "markdown"
project_name = "demo"

[watch]
enabled = true
debounce = "1s"

[history]
path = "runs.db"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0] != "./src" {
		t.Errorf("Unexpected Paths: %v", cfg.Paths)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("Expected format markdown, got %s", cfg.Output.Format)
	}
	if cfg.History.Path != "runs.db" {
		t.Errorf("Expected history path runs.db, got %s", cfg.History.Path)
	}

	ac := cfg.AnalyzerConfig()
	if ac.ComplexityThreshold != 15 {
		t.Errorf("Expected complexity threshold 15, got %d", ac.ComplexityThreshold)
	}
	if ac.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", ac.Workers)
	}
	if ac.Weights.Tests != 0.3 {
		t.Errorf("Expected tests weight 0.3, got %v", ac.Weights.Tests)
	}
	if err := ac.Validate(); err != nil {
		t.Errorf("Mapped config invalid: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Missing file should yield defaults, got %v", err)
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0] != "." {
		t.Errorf("Unexpected default Paths: %v", cfg.Paths)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected default format json, got %s", cfg.Output.Format)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Expected default exclude dirs")
	}

	ac := cfg.AnalyzerConfig()
	if err := ac.Validate(); err != nil {
		t.Errorf("Default analyzer config invalid: %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(writeConfig(t, "bad = toml = format")); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}
