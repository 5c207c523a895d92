package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codescope_parsing_seconds",
		Help:    "Time spent parsing a source unit.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codescope_parse_failures_total",
		Help: "Deep parses that fell back to the shallow extractor.",
	}, []string{"language"})

	UnitsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codescope_units_skipped_total",
		Help: "Units skipped by the size ceiling guard.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codescope_analysis_seconds",
		Help:    "Time spent on each analysis stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codescope_graph_nodes_total",
		Help: "Nodes in the most recent dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codescope_graph_edges_total",
		Help: "Internal edges in the most recent dependency graph.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codescope_watcher_events_total",
		Help: "File system events received by the watcher.",
	})
)
