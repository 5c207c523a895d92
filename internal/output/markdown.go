package output

import (
	"fmt"
	"strings"
	"time"

	"codescope/internal/analyzer"
)

// MarkdownOptions controls the report envelope. GeneratedAt is set by
// the caller; the analysis result itself carries no timestamps.
type MarkdownOptions struct {
	ProjectName    string
	Version        string
	GeneratedAt    time.Time
	IncludeMermaid bool
}

// Markdown renders the full analysis report.
func Markdown(res *analyzer.Result, opts MarkdownOptions) string {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Code Analysis Report\n")
	b.WriteString("project: " + nonEmpty(opts.ProjectName, "unknown") + "\n")
	b.WriteString("generated_at: " + opts.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + nonEmpty(opts.Version, "unknown") + "\n")
	b.WriteString("---\n\n")

	b.WriteString("# Analysis Report\n\n")

	b.WriteString("## Summary\n\n")
	s := res.Summary
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Units | %d |\n", s.Units)
	fmt.Fprintf(&b, "| Entities | %d |\n", s.Entities)
	fmt.Fprintf(&b, "| Imports | %d |\n", s.Imports)
	fmt.Fprintf(&b, "| Cycles | %d |\n", s.Cycles)
	fmt.Fprintf(&b, "| External packages | %d |\n", s.ExternalDeps)
	fmt.Fprintf(&b, "| Quality | %.1f (%s) |\n", s.OverallScore, s.Grade)
	if s.PrimaryPattern != "" {
		fmt.Fprintf(&b, "| Primary pattern | %s |\n", s.PrimaryPattern)
	}
	b.WriteString("\n")

	writeCycles(&b, res)
	writeArchitecture(&b, res)
	writeQuality(&b, res)
	writeDiagnostics(&b, res)

	if opts.IncludeMermaid {
		b.WriteString("## Dependency Diagram\n\n```mermaid\n")
		b.WriteString(Mermaid(res.Graph))
		b.WriteString("```\n\n")
	}
	return b.String()
}

func writeCycles(b *strings.Builder, res *analyzer.Result) {
	b.WriteString("## Circular Dependencies\n\n")
	if len(res.Graph.Cycles) == 0 {
		b.WriteString("None detected.\n\n")
		return
	}
	for _, c := range res.Graph.Cycles {
		fmt.Fprintf(b, "- %s -> %s\n", strings.Join(c, " -> "), c[0])
	}
	b.WriteString("\n")
}

func writeArchitecture(b *strings.Builder, res *analyzer.Result) {
	arch := res.Architecture
	b.WriteString("## Architecture\n\n")
	fmt.Fprintf(b, "Type: %s  \nComplexity: %s\n\n", arch.Type, arch.Complexity)
	if len(arch.Patterns) > 0 {
		b.WriteString("| Pattern | Confidence | Evidence |\n|---|---|---|\n")
		for _, p := range arch.Patterns {
			fmt.Fprintf(b, "| %s | %.0f%% | %s |\n", p.Name, p.Confidence*100, strings.Join(p.Evidence, "; "))
		}
		b.WriteString("\n")
	}
	if len(arch.Frameworks) > 0 {
		b.WriteString("Frameworks: ")
		parts := make([]string, 0, len(arch.Frameworks))
		for _, f := range arch.Frameworks {
			parts = append(parts, fmt.Sprintf("%s (%s)", f.Name, f.Category))
		}
		b.WriteString(strings.Join(parts, ", ") + "\n\n")
	}
}

func writeQuality(b *strings.Builder, res *analyzer.Result) {
	q := res.Quality
	b.WriteString("## Quality\n\n")
	b.WriteString("| Category | Score |\n|---|---|\n")
	fmt.Fprintf(b, "| Documentation | %.1f |\n", q.Documentation.Score)
	fmt.Fprintf(b, "| Tests | %.1f |\n", q.Tests.Score)
	fmt.Fprintf(b, "| Complexity | %.1f |\n", q.Complexity.Score)
	fmt.Fprintf(b, "| Conventions | %.1f |\n", q.Conventions.Score)
	fmt.Fprintf(b, "| Best practices | %.1f |\n", q.BestPractices.Score)
	fmt.Fprintf(b, "| **Overall** | **%.1f (%s)** |\n\n", q.Overall, q.Grade)

	if len(q.Recommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		for _, r := range q.Recommendations {
			b.WriteString("- " + r + "\n")
		}
		b.WriteString("\n")
	}
	if len(q.Secrets) > 0 {
		b.WriteString("### Possible Secrets\n\n")
		for _, sec := range q.Secrets {
			fmt.Fprintf(b, "- %s:%d %s (%s) %s\n", sec.Path, sec.Line, sec.Kind, sec.Severity, sec.Masked)
		}
		b.WriteString("\n")
	}
}

func writeDiagnostics(b *strings.Builder, res *analyzer.Result) {
	if len(res.Diagnostics) == 0 {
		return
	}
	b.WriteString("## Diagnostics\n\n")
	for _, d := range res.Diagnostics {
		fmt.Fprintf(b, "- [%s] %s: %s\n", d.Stage, d.Unit, d.Message)
	}
	b.WriteString("\n")
}

func nonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
