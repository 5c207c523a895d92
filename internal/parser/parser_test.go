package parser

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"codescope/internal/shared/observability"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(NewGrammarLoader(), 100*1024)
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		path, hint string
		want       Language
	}{
		{"main.go", "", LangGo},
		{"script.py", "", LangPython},
		{"app.jsx", "", LangJavaScript},
		{"app.tsx", "", LangTypeScript},
		{"Main.java", "", LangJava},
		{"lib.rs", "", LangRust},
		{"style.scss", "", LangCSS},
		{"page.htm", "", LangHTML},
		{"data.bin", "", LangUnknown},
		{"weird.txt", "python", LangPython},
		{"noext", "ts", LangTypeScript},
	}
	for _, tc := range cases {
		if got := DetectLanguage(tc.path, tc.hint); got != tc.want {
			t.Errorf("DetectLanguage(%q, %q) = %s, want %s", tc.path, tc.hint, got, tc.want)
		}
	}
}

func TestIsTestPath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"pkg/a_test.go", true},
		{"test_things.py", true},
		{"src/app.spec.ts", true},
		{"tests/helper.py", false}, // only a /tests/ segment counts
		{"pkg/tests/helper.py", true},
		{"src/__tests__/app.js", true},
		{"pkg/a.go", false},
	}
	for _, tc := range cases {
		if got := IsTestPath(tc.path); got != tc.want {
			t.Errorf("IsTestPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestLineStats(t *testing.T) {
	content := []byte("package x\n\n// comment\ncode()\n")
	stats := lineStats(content, LangGo)
	// Trailing newline yields a final blank line.
	if stats.Code != 2 || stats.Comment != 1 || stats.Blank != 2 {
		t.Errorf("stats = %+v", stats)
	}

	if got := countLines(content); got != 5 {
		t.Errorf("countLines = %d, want 5", got)
	}
	if got := countLines(nil); got != 0 {
		t.Errorf("countLines(nil) = %d, want 0", got)
	}
}

func TestParseUnitGo(t *testing.T) {
	src := []byte(`package demo

import (
	"fmt"
	"strings"
)

// Greet prints a greeting.
func Greet(name string) {
	if name == "" || strings.TrimSpace(name) == "" {
		name = "world"
	}
	fmt.Println(name)
}

// Greeter prefixes greetings.
type Greeter struct {
	prefix string
}

func (g *Greeter) Greet(name string) string {
	return g.prefix + name
}
`)

	r := newTestParser(t).ParseUnit(Unit{Path: "demo/greet.go", Content: src})

	if r.Source.Language != LangGo {
		t.Fatalf("language = %s", r.Source.Language)
	}
	if len(r.Diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", r.Diagnostics)
	}

	byQualified := make(map[string]Entity, len(r.Entities))
	for _, e := range r.Entities {
		byQualified[e.Qualified] = e
	}

	fn, ok := byQualified["Greet"]
	if !ok {
		t.Fatalf("Greet not extracted: %v", r.Entities)
	}
	if fn.Kind != KindFunction || !fn.HasDoc {
		t.Errorf("Greet = %+v", fn)
	}
	// One if plus one short-circuit or.
	if fn.Complexity != 3 {
		t.Errorf("Greet complexity = %d, want 3", fn.Complexity)
	}

	method, ok := byQualified["Greeter.Greet"]
	if !ok || method.Kind != KindMethod {
		t.Errorf("method = %+v", method)
	}

	var raws []string
	for _, imp := range r.Imports {
		raws = append(raws, imp.Raw)
	}
	if strings.Join(raws, ",") != "fmt,strings" {
		t.Errorf("imports = %v", raws)
	}
}

func TestParseUnitPython(t *testing.T) {
	src := []byte(`import os
from . import models


def load(path):
    """Load a file."""
    if path and os.path.exists(path):
        return open(path).read()
    return None


class Loader:
    def run(self):
        return load(".")
`)

	r := newTestParser(t).ParseUnit(Unit{Path: "app/loader.py", Content: src})

	byQualified := make(map[string]Entity, len(r.Entities))
	for _, e := range r.Entities {
		byQualified[e.Qualified] = e
	}

	load, ok := byQualified["load"]
	if !ok {
		t.Fatalf("load not extracted: %v", r.Entities)
	}
	if !load.HasDoc {
		t.Error("load docstring not recognized")
	}
	// One if plus one boolean and.
	if load.Complexity != 3 {
		t.Errorf("load complexity = %d, want 3", load.Complexity)
	}

	if _, ok := byQualified["Loader.run"]; !ok {
		t.Errorf("method Loader.run not extracted: %v", r.Entities)
	}

	if len(r.Imports) != 2 {
		t.Fatalf("imports = %v", r.Imports)
	}
	if r.Imports[1].Raw != "." || !r.Imports[1].Relative {
		t.Errorf("relative import = %+v", r.Imports[1])
	}
}

func TestParseUnitComplexityFloor(t *testing.T) {
	units := []Unit{
		{Path: "a.go", Content: []byte("package a\n\nfunc Nop() {}\n")},
		{Path: "b.py", Content: []byte("def nop():\n    pass\n")},
		{Path: "c.js", Content: []byte("function nop() {}\n")},
	}
	p := newTestParser(t)
	for _, u := range units {
		r := p.ParseUnit(u)
		for _, e := range r.Entities {
			if e.Complexity < 1 {
				t.Errorf("%s: entity %s complexity %d, minimum is 1", u.Path, e.Name, e.Complexity)
			}
		}
	}
}

func TestParseUnitSizeCeiling(t *testing.T) {
	p := NewParser(NewGrammarLoader(), 16)
	skippedBefore := testutil.ToFloat64(observability.UnitsSkipped)
	r := p.ParseUnit(Unit{Path: "big.go", Content: []byte("package verylongpackagename\n")})

	if got := testutil.ToFloat64(observability.UnitsSkipped) - skippedBefore; got != 1 {
		t.Errorf("skipped counter advanced by %v, want 1", got)
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Stage != StageSize {
		t.Fatalf("diagnostics = %v, want one size diagnostic", r.Diagnostics)
	}
	if len(r.Entities) != 0 || len(r.Imports) != 0 {
		t.Errorf("oversized unit extracted entities=%v imports=%v", r.Entities, r.Imports)
	}
	if r.Source.Path != "big.go" || r.Source.Size == 0 {
		t.Errorf("source metadata missing: %+v", r.Source)
	}
}
