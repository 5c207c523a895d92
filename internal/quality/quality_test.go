package quality

import (
	"errors"
	"testing"
)

func TestCombineWeightedMean(t *testing.T) {
	got := combine(DefaultWeights(), 80, 0, 90, 70, 100)
	if got != 64.5 {
		t.Errorf("combine = %v, want 64.5", got)
	}
}

func TestGradeFor(t *testing.T) {
	bands := DefaultGradeBands()
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{90, "A"},
		{89.99, "B"},
		{75, "B"},
		{64.5, "C"},
		{60, "C"},
		{45, "D"},
		{44.99, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.score, bands); got != tc.want {
			t.Errorf("gradeFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}

	w := DefaultWeights()
	w.Tests = 0.5
	if err := w.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("oversum weights: err = %v, want ErrInvalidWeights", err)
	}

	w = Weights{Documentation: -0.2, Tests: 0.45, Complexity: 0.2, Conventions: 0.15, BestPractices: 0.4}
	if err := w.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("negative weight: err = %v, want ErrInvalidWeights", err)
	}
}

func TestValidateBands(t *testing.T) {
	if err := ValidateBands(DefaultGradeBands()); err != nil {
		t.Errorf("default bands invalid: %v", err)
	}

	cases := []struct {
		name  string
		bands []GradeBand
	}{
		{"empty", nil},
		{"increasing", []GradeBand{{Min: 60, Grade: "C"}, {Min: 90, Grade: "A"}}},
		{"duplicate min", []GradeBand{{Min: 90, Grade: "A"}, {Min: 90, Grade: "B"}}},
		{"out of range", []GradeBand{{Min: 120, Grade: "A"}}},
		{"empty grade", []GradeBand{{Min: 90, Grade: ""}}},
	}
	for _, tc := range cases {
		if err := ValidateBands(tc.bands); err == nil {
			t.Errorf("%s bands accepted", tc.name)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ComplexityThreshold = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero complexity threshold accepted")
	}
}
