package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"codescope/internal/parser"
)

var goSample = []byte(`package demo

import "fmt"

// Greet says hello.
func Greet(name string) {
	if name == "" {
		name = "world"
	}
	fmt.Println(name)
}
`)

var pySample = []byte(`import os


def run(path):
    if path:
        return os.stat(path)
    return None
`)

func sampleUnits() []parser.Unit {
	return []parser.Unit{
		{Path: "demo/greet.go", Content: goSample},
		{Path: "tools/run.py", Content: pySample},
	}
}

func TestAnalyzeInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Tests = 0.9 // sum no longer 1.0

	res, err := Analyze(context.Background(), sampleUnits(), cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if res != nil {
		t.Errorf("result should be nil on config error, got %+v", res)
	}

	cfg = DefaultConfig()
	cfg.MaxFileSize = -1
	if _, err := Analyze(context.Background(), nil, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative max file size: err = %v, want ErrInvalidConfig", err)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 4

	first, err := Analyze(context.Background(), sampleUnits(), cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Analyze(context.Background(), sampleUnits(), cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated runs over identical input serialize differently")
	}
}

func TestAnalyzeSummary(t *testing.T) {
	res, err := Analyze(context.Background(), sampleUnits(), DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Summary.Units != 2 {
		t.Errorf("summary units = %d, want 2", res.Summary.Units)
	}
	if res.Summary.Entities != len(res.Entities) {
		t.Errorf("summary entities = %d, slice has %d", res.Summary.Entities, len(res.Entities))
	}
	if res.Graph == nil || res.Architecture == nil || res.Quality == nil {
		t.Fatal("missing stage results")
	}
	for _, e := range res.Entities {
		if e.Complexity < 1 {
			t.Errorf("entity %s has complexity %d, minimum is 1", e.Qualified, e.Complexity)
		}
	}
}

func TestAnalyzeOversizedUnit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 100 // pySample is 85 bytes, so the sibling stays under the ceiling

	units := []parser.Unit{
		{Path: "big/huge.go", Content: bytes.Repeat([]byte("// filler line\n"), 50)},
		{Path: "small/ok.py", Content: pySample},
	}

	res, err := Analyze(context.Background(), units, cfg)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var sizeDiags int
	for _, d := range res.Diagnostics {
		if d.Stage == parser.StageSize && d.Unit == "big/huge.go" {
			sizeDiags++
		}
	}
	if sizeDiags != 1 {
		t.Errorf("size diagnostics for oversized unit = %d, want 1", sizeDiags)
	}
	for _, e := range res.Entities {
		if e.Unit == "big/huge.go" {
			t.Errorf("oversized unit produced entity %s", e.Qualified)
		}
	}
	for _, imp := range res.Imports {
		if imp.Unit == "big/huge.go" {
			t.Errorf("oversized unit produced import %q", imp.Raw)
		}
	}

	var sawSmall bool
	for _, imp := range res.Imports {
		if imp.Unit == "small/ok.py" && strings.Contains(imp.Raw, "os") {
			sawSmall = true
		}
	}
	if !sawSmall {
		t.Error("sibling unit was not analyzed")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	res, err := Analyze(context.Background(), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Summary.Units != 0 || res.Summary.OverallScore < 0 {
		t.Errorf("summary = %+v", res.Summary)
	}
	if res.Graph == nil || res.Quality == nil {
		t.Fatal("empty input should still produce stage results")
	}
}
