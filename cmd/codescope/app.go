package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codescope/internal/analyzer"
	"codescope/internal/config"
	"codescope/internal/history"
	"codescope/internal/output"
	"codescope/internal/scan"
	"codescope/internal/shared/util"
	"codescope/internal/watcher"
)

type App struct {
	Config      *config.Config
	analyzerCfg analyzer.Config
	store       *history.Store
}

func NewApp(cfg *config.Config) (*App, error) {
	analyzerCfg := cfg.AnalyzerConfig()
	if err := analyzerCfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, analyzerCfg: analyzerCfg}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		app.store = store
	}
	return app, nil
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close history store", "error", err)
		}
	}
}

// RunOnce scans, analyzes, renders the configured output and records
// the run in history.
func (a *App) RunOnce(ctx context.Context) (*analyzer.Result, error) {
	start := time.Now()

	units, err := scan.Scan(scan.Options{
		Roots:        a.Config.Paths,
		ExcludeDirs:  a.Config.Exclude.Dirs,
		ExcludeFiles: a.Config.Exclude.Files,
		// The report and history files may land inside a scanned root;
		// analyzing our own output would make repeated runs diverge.
		ExcludePaths: []string{a.Config.Output.Path, a.Config.History.Path},
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	slog.Info("scan complete", "units", len(units), "elapsed", time.Since(start))

	result, err := analyzer.Analyze(ctx, units, a.analyzerCfg)
	if err != nil {
		return nil, err
	}
	slog.Info("analysis complete",
		"entities", result.Summary.Entities,
		"cycles", result.Summary.Cycles,
		"score", result.Summary.OverallScore,
		"grade", result.Summary.Grade,
		"elapsed", time.Since(start))

	if err := a.render(result); err != nil {
		return nil, err
	}
	a.recordHistory(result)
	return result, nil
}

func (a *App) render(result *analyzer.Result) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(a.Config.Output.Format) {
	case "", "json":
		data, err = output.JSON(result)
	case "markdown", "md":
		data = []byte(output.Markdown(result, output.MarkdownOptions{
			ProjectName:    a.Config.Output.ProjectName,
			Version:        VERSION,
			IncludeMermaid: a.Config.Output.Mermaid,
		}))
	case "dot":
		data = []byte(output.DOT(result.Graph))
	case "mermaid":
		data = []byte(output.Mermaid(result.Graph))
	default:
		return fmt.Errorf("unknown output format %q", a.Config.Output.Format)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if a.Config.Output.Path == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return util.WriteFileWithDirs(a.Config.Output.Path, data, 0o644)
}

func (a *App) recordHistory(result *analyzer.Result) {
	if a.store == nil {
		return
	}
	projectKey := a.Config.Output.ProjectName
	run, delta, err := a.store.Record(projectKey, result)
	if err != nil {
		slog.Warn("failed to record run history", "error", err)
		return
	}
	if delta != nil {
		slog.Info("run recorded",
			"run_id", run.RunID,
			"score_change", fmt.Sprintf("%+.2f", delta.ScoreChange),
			"cycle_change", delta.CycleChange)
	} else {
		slog.Info("run recorded", "run_id", run.RunID)
	}
}

// WatchLoop blocks, re-running the analysis when files change. A rate
// limiter caps how often change bursts can trigger a full re-analysis.
func (a *App) WatchLoop(ctx context.Context) error {
	trigger := make(chan struct{}, 1)

	w, err := watcher.New(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files, func(paths []string) {
		slog.Debug("changes detected", "count", len(paths))
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(a.Config.Paths); err != nil {
		return fmt.Errorf("watch paths: %w", err)
	}
	slog.Info("watching for changes", "paths", a.Config.Paths)

	limiter := util.NewLimiter(0.5, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-trigger:
			if err := limiter.Wait(ctx, 1); err != nil {
				return err
			}
			if _, err := a.RunOnce(ctx); err != nil {
				slog.Error("re-analysis failed", "error", err)
			}
		}
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("metrics server starting", "addr", addr)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server failed", "error", err)
		}
	}()
}
