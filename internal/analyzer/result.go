package analyzer

import (
	"codescope/internal/architecture"
	"codescope/internal/graph"
	"codescope/internal/parser"
	"codescope/internal/quality"
)

// Result is the complete output of one analysis run: plain nested data
// with no timestamps or random identifiers, so analyzing the same
// input twice serializes byte-identically.
type Result struct {
	Summary      Summary              `json:"summary"`
	Units        []parser.SourceUnit  `json:"units"`
	Entities     []parser.Entity      `json:"entities"`
	Imports      []parser.Import      `json:"imports"`
	Diagnostics  []parser.Diagnostic  `json:"diagnostics,omitempty"`
	Graph        *graph.Graph         `json:"graph"`
	Architecture *architecture.Report `json:"architecture"`
	Quality      *quality.Report      `json:"quality"`
}

// Summary is the headline view of a run.
type Summary struct {
	Units          int     `json:"units"`
	Entities       int     `json:"entities"`
	Imports        int     `json:"imports"`
	Diagnostics    int     `json:"diagnostics"`
	Cycles         int     `json:"cycles"`
	ExternalDeps   int     `json:"external_deps"`
	PrimaryPattern string  `json:"primary_pattern,omitempty"`
	OverallScore   float64 `json:"overall_score"`
	Grade          string  `json:"grade"`
}

func buildSummary(r *Result) Summary {
	s := Summary{
		Units:        len(r.Units),
		Entities:     len(r.Entities),
		Imports:      len(r.Imports),
		Diagnostics:  len(r.Diagnostics),
		Cycles:       len(r.Graph.Cycles),
		ExternalDeps: len(r.Graph.External),
		OverallScore: r.Quality.Overall,
		Grade:        r.Quality.Grade,
	}
	if r.Architecture.Primary != nil {
		s.PrimaryPattern = r.Architecture.Primary.Name
	}
	return s
}
