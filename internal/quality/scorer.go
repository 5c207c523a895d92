package quality

import (
	"fmt"
	"math"

	"codescope/internal/graph"
	"codescope/internal/parser"
)

// Score computes the quality report. Pure over its inputs; the model
// and graph are never mutated.
func Score(model *parser.Model, g *graph.Graph, units []parser.Unit, cfg Config) *Report {
	r := &Report{
		Documentation: scoreDocumentation(model),
		Tests:         scoreTests(model),
		Complexity:    scoreComplexity(model, cfg.ComplexityThreshold),
		Conventions:   scoreConventions(model),
	}
	r.BestPractices, r.Secrets = scoreBestPractices(units)

	r.Overall = combine(cfg.Weights, r.Documentation.Score, r.Tests.Score,
		r.Complexity.Score, r.Conventions.Score, r.BestPractices.Score)
	r.Grade = gradeFor(r.Overall, cfg.GradeBands)
	r.Recommendations = buildRecommendations(r, g, cfg.Thresholds)
	r.Summary = buildSummary(r)
	return r
}

// combine is the weighted mean of the five category scores.
func combine(w Weights, doc, tests, complexity, conventions, best float64) float64 {
	return round2(doc*w.Documentation +
		tests*w.Tests +
		complexity*w.Complexity +
		conventions*w.Conventions +
		best*w.BestPractices)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func buildSummary(r *Report) string {
	var tone string
	switch {
	case r.Overall >= 85:
		tone = "well structured, high quality"
	case r.Overall >= 70:
		tone = "functional with room for improvement"
	default:
		tone = "needs attention in several areas"
	}
	return fmt.Sprintf("Overall score %.1f/100 (grade %s): codebase is %s. %d recommendation(s).",
		r.Overall, r.Grade, tone, len(r.Recommendations))
}
