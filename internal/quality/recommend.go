package quality

import (
	"fmt"

	"codescope/internal/graph"
)

// buildRecommendations emits one recommendation per category whose
// score fell under its threshold, each tied to that category's first
// finding, plus graph-level advice for cycles and high coupling.
func buildRecommendations(r *Report, g *graph.Graph, t Thresholds) []string {
	var recs []string

	add := func(score, threshold float64, cs CategoryScore, format string) {
		if score >= threshold {
			return
		}
		detail := ""
		if len(cs.Findings) > 0 {
			detail = " (e.g. " + cs.Findings[0] + ")"
		}
		recs = append(recs, fmt.Sprintf(format, score)+detail)
	}

	add(r.Documentation.Score, t.Documentation, r.Documentation,
		"Documentation at %.1f%%: add docstrings to undocumented functions and classes")
	add(r.Tests.Score, t.Tests, r.Tests,
		"Test coverage estimate at %.1f%%: add unit tests alongside the source tree")
	add(r.Complexity.Score, t.Complexity, r.Complexity,
		"Complexity score at %.1f%%: split functions over the complexity threshold into smaller ones")
	add(r.Conventions.Score, t.Conventions, r.Conventions,
		"Naming conventions at %.1f%%: align entity names with the language's casing rules")
	add(r.BestPractices.Score, t.BestPractices, r.BestPractices,
		"Best practices at %.1f%%: address the flagged anti-patterns")

	if g != nil {
		if n := len(g.Cycles); n > 0 {
			recs = append(recs, fmt.Sprintf("%d dependency cycle(s) detected: break them to keep modules independently testable", n))
		}
		if g.Coupling == "high" {
			recs = append(recs, "High module coupling: consider extracting shared abstractions")
		}
	}
	if len(recs) == 0 {
		recs = []string{"High quality across all categories, keep it up"}
	}
	return recs
}
