package analyzer

import (
	"errors"
	"fmt"

	"codescope/internal/architecture"
	"codescope/internal/quality"
)

// DefaultMaxFileSize is the per-unit size ceiling.
const DefaultMaxFileSize = 100 * 1024

// Config is the immutable parameter object for one analysis run. The
// core never reads ambient or global state; everything it needs is
// here.
type Config struct {
	MaxFileSize          int                 `toml:"max_file_size"`
	ComplexityThreshold  int                 `toml:"complexity_threshold"`
	MinPatternConfidence float64             `toml:"min_pattern_confidence"`
	Workers              int                 `toml:"workers"`
	Weights              quality.Weights     `toml:"weights"`
	GradeBands           []quality.GradeBand `toml:"grade_bands"`
	Thresholds           quality.Thresholds  `toml:"thresholds"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:          DefaultMaxFileSize,
		ComplexityThreshold:  10,
		MinPatternConfidence: architecture.DefaultMinConfidence,
		Weights:              quality.DefaultWeights(),
		GradeBands:           quality.DefaultGradeBands(),
		Thresholds:           quality.DefaultThresholds(),
	}
}

var ErrInvalidConfig = errors.New("invalid analyzer config")

// Validate rejects structurally invalid configuration. This is the
// only hard failure the analyzer produces; bad input files degrade to
// diagnostics instead.
func (c Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max file size must be positive, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	if c.ComplexityThreshold < 1 {
		return fmt.Errorf("%w: complexity threshold must be at least 1, got %d", ErrInvalidConfig, c.ComplexityThreshold)
	}
	if c.MinPatternConfidence < 0 || c.MinPatternConfidence > 1 {
		return fmt.Errorf("%w: min pattern confidence must be in [0,1], got %v", ErrInvalidConfig, c.MinPatternConfidence)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := quality.ValidateBands(c.GradeBands); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) qualityConfig() quality.Config {
	return quality.Config{
		Weights:             c.Weights,
		GradeBands:          c.GradeBands,
		Thresholds:          c.Thresholds,
		ComplexityThreshold: c.ComplexityThreshold,
	}
}
