// Package config loads the command-level TOML configuration. The
// analysis core never reads this; the command maps it onto an explicit
// analyzer.Config before calling in.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"codescope/internal/analyzer"
	"codescope/internal/quality"
	"codescope/internal/scan"
)

type Config struct {
	Paths     []string  `toml:"paths"`
	Exclude   Exclude   `toml:"exclude"`
	Analysis  Analysis  `toml:"analysis"`
	Output    Output    `toml:"output"`
	Watch     Watch     `toml:"watch"`
	History   History   `toml:"history"`
	Telemetry Telemetry `toml:"telemetry"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Analysis struct {
	MaxFileSize          int                 `toml:"max_file_size"`
	ComplexityThreshold  int                 `toml:"complexity_threshold"`
	MinPatternConfidence float64             `toml:"min_pattern_confidence"`
	Workers              int                 `toml:"workers"`
	Weights              *quality.Weights    `toml:"weights"`
	GradeBands           []quality.GradeBand `toml:"grade_bands"`
	Thresholds           *quality.Thresholds `toml:"thresholds"`
}

type Output struct {
	Format      string `toml:"format"` // json, markdown, dot, mermaid
	Path        string `toml:"path"`
	ProjectName string `toml:"project_name"`
	Mermaid     bool   `toml:"mermaid"`
}

type Watch struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	Path string `toml:"path"`
}

type Telemetry struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Load reads the file at path. A missing file is not an error; it
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Paths) == 0 {
		c.Paths = []string{"."}
	}
	if len(c.Exclude.Dirs) == 0 {
		c.Exclude.Dirs = scan.DefaultExcludeDirs()
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
}

// AnalyzerConfig maps the file settings onto the core's immutable
// parameter object, falling back to the core defaults for anything
// unset.
func (c *Config) AnalyzerConfig() analyzer.Config {
	out := analyzer.DefaultConfig()
	a := c.Analysis
	if a.MaxFileSize > 0 {
		out.MaxFileSize = a.MaxFileSize
	}
	if a.ComplexityThreshold > 0 {
		out.ComplexityThreshold = a.ComplexityThreshold
	}
	if a.MinPatternConfidence > 0 {
		out.MinPatternConfidence = a.MinPatternConfidence
	}
	if a.Workers > 0 {
		out.Workers = a.Workers
	}
	if a.Weights != nil {
		out.Weights = *a.Weights
	}
	if len(a.GradeBands) > 0 {
		out.GradeBands = a.GradeBands
	}
	if a.Thresholds != nil {
		out.Thresholds = *a.Thresholds
	}
	return out
}
