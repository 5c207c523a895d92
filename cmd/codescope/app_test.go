package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codescope/internal/config"
)

func TestApp(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "main.go"),
		[]byte("package main\n\nimport \"fmt\"\n\nfunc main() { fmt.Println(\"hi\") }\n"), 0o644)
	os.WriteFile(filepath.Join(tmpDir, "go.mod"),
		[]byte("module example.com/demo\n\ngo 1.24\n"), 0o644)

	outPath := filepath.Join(tmpDir, "report", "analysis.json")
	cfg := &config.Config{
		Paths: []string{tmpDir},
		Output: config.Output{
			Format:      "json",
			Path:        outPath,
			ProjectName: "demo",
		},
		History: config.History{Path: filepath.Join(tmpDir, "history.db")},
	}

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	result, err := app.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary.Units != 2 {
		t.Errorf("Expected 2 units, got %d", result.Summary.Units)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("report was not written: %v", err)
	}
	if !strings.Contains(string(data), `"summary"`) {
		t.Error("report is missing the summary section")
	}

	// A second run against the same tree must render identical bytes.
	// The first run left its report and history inside tmpDir; neither
	// may show up as an analyzed unit.
	second, err := app.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Summary.Units != result.Summary.Units {
		t.Errorf("unit count drifted between runs: %d then %d",
			result.Summary.Units, second.Summary.Units)
	}
	again, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Error("repeated analysis produced a different report")
	}
}

func TestAppRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{Paths: []string{"."}}
	cfg.Analysis.ComplexityThreshold = 0 // zero falls back to defaults, fine
	if _, err := NewApp(cfg); err != nil {
		t.Fatalf("defaulted config rejected: %v", err)
	}

	bad := &config.Config{Paths: []string{"."}}
	bad.Analysis.MinPatternConfidence = 2
	if _, err := NewApp(bad); err == nil {
		t.Error("out-of-range confidence accepted")
	}
}

func TestAppUnknownFormat(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "main.go"), []byte("package main\n"), 0o644)

	cfg := &config.Config{
		Paths:  []string{tmpDir},
		Output: config.Output{Format: "pdf"},
	}
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	if _, err := app.RunOnce(context.Background()); err == nil {
		t.Error("unknown output format accepted")
	}
}
