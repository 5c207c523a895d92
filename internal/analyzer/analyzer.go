// Package analyzer is the library boundary of the pipeline: it takes
// an ordered list of raw units plus a validated config and produces a
// single Result. It performs no I/O; reading files and rendering
// output belong to the caller.
package analyzer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"codescope/internal/architecture"
	"codescope/internal/graph"
	"codescope/internal/parser"
	"codescope/internal/quality"
	"codescope/internal/shared/observability"
)

// Analyze runs the full pipeline. Config validation is the only error
// path; anything wrong with an individual unit becomes a diagnostic in
// the result instead.
func Analyze(ctx context.Context, units []parser.Unit, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer.Start(ctx, "analyzer.Analyze")
	defer span.End()

	model := buildModel(ctx, units, cfg)

	result := &Result{
		Units:       model.Units,
		Entities:    model.Entities,
		Imports:     model.Imports,
		Diagnostics: model.Diagnostics,
	}

	// Graph and architecture only read the immutable model, so they
	// run concurrently. Quality needs the finished graph for its
	// recommendations and runs after.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Graph = timedStage(ctx, "graph", func() *graph.Graph {
			return graph.Build(model, units)
		})
	}()
	go func() {
		defer wg.Done()
		result.Architecture = timedStage(ctx, "architecture", func() *architecture.Report {
			return architecture.Detect(architecture.BuildSignals(units, model), cfg.MinPatternConfidence)
		})
	}()
	wg.Wait()

	result.Quality = timedStage(ctx, "quality", func() *quality.Report {
		return quality.Score(model, result.Graph, units, cfg.qualityConfig())
	})

	result.Summary = buildSummary(result)
	return result, nil
}

func timedStage[T any](ctx context.Context, name string, fn func() T) T {
	_, span := observability.Tracer.Start(ctx, "analyzer."+name)
	defer span.End()
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()
	return fn()
}

// buildModel parses every unit on a bounded worker pool and merges the
// per-unit results back in input order, never completion order, so the
// model is identical regardless of scheduling.
func buildModel(ctx context.Context, units []parser.Unit, cfg Config) *parser.Model {
	_, span := observability.Tracer.Start(ctx, "analyzer.parse")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("parse").Observe(time.Since(start).Seconds())
	}()

	p := parser.NewParser(parser.NewGrammarLoader(), cfg.MaxFileSize)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(units) {
		workers = len(units)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]parser.UnitResult, len(units))
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.ParseUnit(units[i])
			}
		}()
	}
	for i := range units {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	model := &parser.Model{}
	for _, r := range results {
		model.Units = append(model.Units, r.Source)
		model.Entities = append(model.Entities, r.Entities...)
		model.Imports = append(model.Imports, r.Imports...)
		model.Diagnostics = append(model.Diagnostics, r.Diagnostics...)
	}
	return model
}
