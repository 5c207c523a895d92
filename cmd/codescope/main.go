package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"codescope/internal/config"
	"codescope/internal/shared/observability"
)

var (
	configPath  = flag.String("config", "./codescope.toml", "Path to config file")
	watch       = flag.Bool("watch", false, "Re-analyze when watched paths change")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	format      = flag.String("format", "", "Output format: json, markdown, dot, mermaid")
	outPath     = flag.String("out", "", "Write output to file instead of stdout")
	metricsAddr = flag.String("metrics", "", "Serve Prometheus metrics on this address")
	otlpTarget  = flag.String("otlp", "", "OTLP gRPC endpoint for traces")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("codescope v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logOutput := os.Stderr
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.Paths = flag.Args()
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *metricsAddr != "" {
		cfg.Telemetry.MetricsAddr = *metricsAddr
	}
	if *otlpTarget != "" {
		cfg.Telemetry.OTLPEndpoint = *otlpTarget
	}

	ctx := context.Background()

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.SetupTracing(ctx, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		}()
	}
	if cfg.Telemetry.MetricsAddr != "" {
		serveMetrics(cfg.Telemetry.MetricsAddr)
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	result, err := app.RunOnce(ctx)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	switch {
	case *ui:
		if err := app.RunUI(ctx, result, *watch || cfg.Watch.Enabled); err != nil {
			slog.Error("ui failed", "error", err)
			os.Exit(1)
		}
	case *watch || cfg.Watch.Enabled:
		if err := app.WatchLoop(ctx); err != nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
	}
}
