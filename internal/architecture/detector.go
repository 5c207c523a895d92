package architecture

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultMinConfidence is the reporting floor; patterns scoring below
// it are dropped from the result.
const DefaultMinConfidence = 0.3

// Detected is one pattern that cleared the reporting threshold.
type Detected struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
	Evidence    []string `json:"evidence"`
}

// Report is the full architecture verdict for one run.
type Report struct {
	Patterns        []Detected      `json:"patterns"`
	Primary         *Detected       `json:"primary,omitempty"`
	Secondary       []Detected      `json:"secondary,omitempty"`
	Type            string          `json:"type"`
	Complexity      string          `json:"complexity"`
	Frameworks      []FrameworkHint `json:"frameworks,omitempty"`
	Recommendations []string        `json:"recommendations"`
}

// Detect evaluates every pattern table against the signals and returns
// the ranked report. Confidence is the satisfied weight divided by the
// pattern's maximum attainable weight, clamped to [0,1]. Ranking is by
// confidence descending with declaration order breaking ties, so the
// result is stable across runs.
func Detect(signals *Signals, minConfidence float64) *Report {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	var detected []Detected
	for _, p := range patterns {
		if d, ok := evaluate(p, signals, minConfidence); ok {
			detected = append(detected, d)
		}
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})

	r := &Report{Patterns: detected}
	if len(detected) > 0 {
		r.Primary = &detected[0]
		end := len(detected)
		if end > 4 {
			end = 4
		}
		if end > 1 {
			r.Secondary = detected[1:end]
		}
	}
	r.Type = classifyType(detected)
	r.Complexity = assessComplexity(detected)
	r.Frameworks = detectFrameworks(signals)
	r.Recommendations = buildRecommendations(detected)
	return r
}

func evaluate(p Pattern, s *Signals, minConfidence float64) (Detected, bool) {
	var (
		satisfied float64
		max       float64
		dirHits   int
		evidence  []string
	)
	for _, ind := range p.Indicators {
		max += ind.Weight
		ok, why := ind.Probe(s)
		if !ok {
			continue
		}
		satisfied += ind.Weight
		if ind.Kind == kindDir {
			dirHits++
		}
		evidence = append(evidence, why)
	}
	if p.MinDirs > 0 && dirHits < p.MinDirs {
		return Detected{}, false
	}
	if max == 0 {
		return Detected{}, false
	}
	confidence := satisfied / max
	if confidence > 1 {
		confidence = 1
	}
	if confidence < minConfidence {
		return Detected{}, false
	}
	return Detected{
		Name:        p.Name,
		Description: p.Description,
		Confidence:  confidence,
		Evidence:    evidence,
	}, true
}

var patternAdvice = []struct {
	keyword string
	advice  []string
}{
	{"Simple Modular", []string{"Simple pragmatic structure. Add layers as the project grows."}},
	{"Repository", []string{"Repository pattern in place. Consider a unit-of-work if writes span repositories."}},
	{"Domain-Driven", []string{"Keep bounded contexts explicit and dependencies pointing at the domain."}},
	{"Clean Architecture", []string{"Keep dependencies pointing inward at the domain layer."}},
	{"Microservices", []string{"Distributed services detected. Invest in observability and resilience."}},
	{"Event-Driven", []string{"Make event handlers idempotent and plan for dead-letter handling."}},
	{"Feature-Based", []string{"Feature organization scales well. Watch for cross-feature import cycles."}},
}

func buildRecommendations(detected []Detected) []string {
	if len(detected) == 0 {
		return []string{
			"No clear architectural pattern detected. Consider adopting one to ease maintenance.",
		}
	}

	var recs []string
	primary := detected[0]
	if primary.Confidence < 0.5 {
		recs = append(recs, fmt.Sprintf(
			"Primary pattern %q has moderate confidence (%.0f%%). Consider reinforcing the structure.",
			primary.Name, primary.Confidence*100))
	} else if primary.Confidence >= 0.8 {
		recs = append(recs, fmt.Sprintf("Well-defined architecture (%s).", primary.Name))
	}
	if len(detected) > 4 {
		recs = append(recs, "Many patterns detected at once. Consider consolidating to reduce complexity.")
	}
	for _, pa := range patternAdvice {
		for _, d := range detected {
			if strings.Contains(d.Name, pa.keyword) {
				recs = append(recs, pa.advice...)
				break
			}
		}
	}
	if len(recs) == 0 {
		recs = []string{"Architecture looks well structured."}
	}
	return recs
}
