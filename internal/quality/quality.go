// Package quality scores a structural model across five fixed
// categories and combines them into a weighted overall score with a
// letter grade.
package quality

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// CategoryScore is one category's result in [0,100] plus the findings
// that produced it.
type CategoryScore struct {
	Score    float64  `json:"score"`
	Findings []string `json:"findings,omitempty"`
}

// Report is the full quality verdict for one run.
type Report struct {
	Overall         float64       `json:"overall"`
	Grade           string        `json:"grade"`
	Documentation   CategoryScore `json:"documentation"`
	Tests           CategoryScore `json:"tests"`
	Complexity      CategoryScore `json:"complexity"`
	Conventions     CategoryScore `json:"conventions"`
	BestPractices   CategoryScore `json:"best_practices"`
	Secrets         []Secret      `json:"secrets,omitempty"`
	Recommendations []string      `json:"recommendations"`
	Summary         string        `json:"summary"`
}

// Weights combines the five category scores. Must sum to 1.0.
type Weights struct {
	Documentation float64 `json:"documentation" toml:"documentation"`
	Tests         float64 `json:"tests" toml:"tests"`
	Complexity    float64 `json:"complexity" toml:"complexity"`
	Conventions   float64 `json:"conventions" toml:"conventions"`
	BestPractices float64 `json:"best_practices" toml:"best_practices"`
}

// DefaultWeights returns the stock weighting scheme.
func DefaultWeights() Weights {
	return Weights{
		Documentation: 0.20,
		Tests:         0.25,
		Complexity:    0.20,
		Conventions:   0.15,
		BestPractices: 0.20,
	}
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.Documentation + w.Tests + w.Complexity + w.Conventions + w.BestPractices
}

var ErrInvalidWeights = errors.New("quality weights must sum to 1.0")

// Validate rejects weight sets that are negative or do not sum to 1.0
// within a small tolerance.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Documentation, w.Tests, w.Complexity, w.Conventions, w.BestPractices} {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %v", ErrInvalidWeights, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeights, w.Sum())
	}
	return nil
}

// GradeBand maps a minimum score to a letter grade. Bands are kept
// sorted by Min descending; the first band whose Min the score reaches
// wins, and anything below the last band's Min gets the fallback grade.
type GradeBand struct {
	Min   float64 `json:"min" toml:"min"`
	Grade string  `json:"grade" toml:"grade"`
}

// DefaultGradeBands returns the stock bands: A>=90, B>=75, C>=60,
// D>=45, else F.
func DefaultGradeBands() []GradeBand {
	return []GradeBand{
		{Min: 90, Grade: "A"},
		{Min: 75, Grade: "B"},
		{Min: 60, Grade: "C"},
		{Min: 45, Grade: "D"},
	}
}

// FallbackGrade is assigned below the lowest band.
const FallbackGrade = "F"

// ValidateBands rejects band lists that are empty, non-monotonic, or
// out of the [0,100] range.
func ValidateBands(bands []GradeBand) error {
	if len(bands) == 0 {
		return errors.New("grade bands must not be empty")
	}
	if !sort.SliceIsSorted(bands, func(i, j int) bool { return bands[i].Min > bands[j].Min }) {
		return errors.New("grade bands must be strictly decreasing")
	}
	for i, b := range bands {
		if b.Min < 0 || b.Min > 100 {
			return fmt.Errorf("grade band %d min %v out of range [0,100]", i, b.Min)
		}
		if b.Grade == "" {
			return fmt.Errorf("grade band %d has empty grade", i)
		}
		if i > 0 && bands[i-1].Min == b.Min {
			return errors.New("grade bands must be strictly decreasing")
		}
	}
	return nil
}

func gradeFor(score float64, bands []GradeBand) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Grade
		}
	}
	return FallbackGrade
}

// Thresholds are the per-category floors below which a recommendation
// is emitted.
type Thresholds struct {
	Documentation float64 `json:"documentation" toml:"documentation"`
	Tests         float64 `json:"tests" toml:"tests"`
	Complexity    float64 `json:"complexity" toml:"complexity"`
	Conventions   float64 `json:"conventions" toml:"conventions"`
	BestPractices float64 `json:"best_practices" toml:"best_practices"`
}

// DefaultThresholds returns the stock recommendation floors.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Documentation: 70,
		Tests:         70,
		Complexity:    70,
		Conventions:   80,
		BestPractices: 75,
	}
}

// Config carries everything the scorer needs beyond its inputs.
type Config struct {
	Weights             Weights
	GradeBands          []GradeBand
	Thresholds          Thresholds
	ComplexityThreshold int
}

// DefaultConfig returns the stock scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights:             DefaultWeights(),
		GradeBands:          DefaultGradeBands(),
		Thresholds:          DefaultThresholds(),
		ComplexityThreshold: 10,
	}
}

// Validate rejects structurally invalid configuration.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := ValidateBands(c.GradeBands); err != nil {
		return err
	}
	if c.ComplexityThreshold < 1 {
		return fmt.Errorf("complexity threshold must be at least 1, got %d", c.ComplexityThreshold)
	}
	return nil
}
