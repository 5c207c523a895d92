package graph

import (
	"reflect"
	"testing"

	"codescope/internal/parser"
)

func goUnit(path string) parser.SourceUnit {
	return parser.SourceUnit{Path: path, Language: parser.LangGo}
}

func goImport(unit, raw string) parser.Import {
	return parser.Import{Unit: unit, Raw: raw, Line: 1}
}

func TestBuildDetectsKnownCycle(t *testing.T) {
	model := &parser.Model{
		Units: []parser.SourceUnit{
			goUnit("a/x.go"),
			goUnit("b/y.go"),
			goUnit("c/z.go"),
			goUnit("d/w.go"),
		},
		Imports: []parser.Import{
			goImport("a/x.go", "proj/b"),
			goImport("b/y.go", "proj/c"),
			goImport("c/z.go", "proj/a"),
			goImport("d/w.go", "proj/a"),
			goImport("d/w.go", "proj/b"),
		},
	}

	g := Build(model, nil)

	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(g.Cycles, want) {
		t.Errorf("cycles = %v, want %v", g.Cycles, want)
	}
}

func TestBuildNoSelfOrDuplicateEdges(t *testing.T) {
	model := &parser.Model{
		Units: []parser.SourceUnit{
			goUnit("a/x.go"),
			goUnit("b/y.go"),
		},
		Imports: []parser.Import{
			goImport("a/x.go", "proj/a"), // self
			goImport("a/x.go", "proj/b"),
			goImport("a/x.go", "proj/b"), // duplicate
		},
	}

	g := Build(model, nil)

	want := []Edge{{From: "a", To: "b"}}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("edges = %v, want %v", g.Edges, want)
	}
	if g.Cycles != nil {
		t.Errorf("expected no cycles, got %v", g.Cycles)
	}
}

func TestBuildExternalRanking(t *testing.T) {
	model := &parser.Model{
		Units: []parser.SourceUnit{goUnit("a/x.go")},
		Imports: []parser.Import{
			goImport("a/x.go", "github.com/spf13/cobra"),
			goImport("a/x.go", "github.com/stretchr/testify"),
			goImport("a/x.go", "github.com/stretchr/testify"),
		},
	}

	g := Build(model, nil)

	want := []ExternalPackage{
		{Name: "github.com/stretchr/testify", Count: 2},
		{Name: "github.com/spf13/cobra", Count: 1},
	}
	if !reflect.DeepEqual(g.External, want) {
		t.Errorf("external = %v, want %v", g.External, want)
	}
}

func TestBuildFanMetricsAndHub(t *testing.T) {
	model := &parser.Model{
		Units: []parser.SourceUnit{
			goUnit("core/x.go"),
			goUnit("a/x.go"),
			goUnit("b/y.go"),
		},
		Imports: []parser.Import{
			goImport("a/x.go", "proj/core"),
			goImport("b/y.go", "proj/core"),
			goImport("b/y.go", "proj/a"),
		},
	}

	g := Build(model, nil)

	if got := g.FanIn["core"]; got != 2 {
		t.Errorf("FanIn[core] = %d, want 2", got)
	}
	if got := g.FanOut["b"]; got != 2 {
		t.Errorf("FanOut[b] = %d, want 2", got)
	}
	if g.Hub != "core" {
		t.Errorf("hub = %q, want core", g.Hub)
	}
	if g.Coupling != "low" {
		t.Errorf("coupling = %q, want low", g.Coupling)
	}
}

func TestBuildDeterministic(t *testing.T) {
	model := &parser.Model{
		Units: []parser.SourceUnit{
			goUnit("a/x.go"),
			goUnit("b/y.go"),
			goUnit("c/z.go"),
		},
		Imports: []parser.Import{
			goImport("c/z.go", "proj/a"),
			goImport("a/x.go", "proj/b"),
			goImport("b/y.go", "proj/c"),
			goImport("a/x.go", "fmt"),
		},
	}

	first := Build(model, nil)
	second := Build(model, nil)

	if !reflect.DeepEqual(first.Edges, second.Edges) {
		t.Errorf("edge order differs between runs: %v vs %v", first.Edges, second.Edges)
	}
	if !reflect.DeepEqual(first.Cycles, second.Cycles) {
		t.Errorf("cycle order differs between runs: %v vs %v", first.Cycles, second.Cycles)
	}
	if !reflect.DeepEqual(first.External, second.External) {
		t.Errorf("external ranking differs between runs: %v vs %v", first.External, second.External)
	}
}

func TestRotateToMin(t *testing.T) {
	got := rotateToMin([]string{"c", "a", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rotateToMin = %v, want %v", got, want)
	}
}

func TestCouplingLevel(t *testing.T) {
	cases := []struct {
		nodes, edges int
		want         string
	}{
		{0, 0, "low"},
		{4, 8, "low"},
		{2, 12, "medium"},
		{2, 22, "high"},
	}
	for _, tc := range cases {
		g := &Graph{
			Nodes: make([]string, tc.nodes),
			Edges: make([]Edge, tc.edges),
		}
		if got := couplingLevel(g); got != tc.want {
			t.Errorf("couplingLevel(%d nodes, %d edges) = %q, want %q", tc.nodes, tc.edges, got, tc.want)
		}
	}
}

func TestModuleID(t *testing.T) {
	cases := []struct {
		path string
		lang parser.Language
		want string
	}{
		{"internal/graph/graph.go", parser.LangGo, "internal/graph"},
		{"main.go", parser.LangGo, "main"},
		{"pkg/__init__.py", parser.LangPython, "pkg"},
		{"pkg/util.py", parser.LangPython, "pkg/util"},
		{"src/widgets/index.ts", parser.LangTypeScript, "src/widgets"},
		{"src/net/mod.rs", parser.LangRust, "src/net"},
		{"src/lib.rs", parser.LangRust, "src"},
		{"com/acme/App.java", parser.LangJava, "com/acme/App"},
	}
	for _, tc := range cases {
		if got := moduleID(tc.path, tc.lang); got != tc.want {
			t.Errorf("moduleID(%q, %s) = %q, want %q", tc.path, tc.lang, got, tc.want)
		}
	}
}
