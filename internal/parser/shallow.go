package parser

import (
	"regexp"
	"strings"
)

// ShallowExtractor is the pattern-based fallback tier. It produces a
// best-effort entity list with lower-confidence complexity numbers for any
// textual file the deep parsers cannot handle.
type ShallowExtractor struct {
	entityRes []shallowEntityRe
	importRes []shallowImportRe
	decision  *regexp.Regexp
	docAfter  *regexp.Regexp
	docBefore *regexp.Regexp
}

type shallowEntityRe struct {
	re   *regexp.Regexp
	kind EntityKind
}

type shallowImportRe struct {
	re       *regexp.Regexp
	relative bool
}

func NewShallowExtractor() *ShallowExtractor {
	return &ShallowExtractor{
		entityRes: []shallowEntityRe{
			{regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)\s*\(`), KindFunction},
			{regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(`), KindFunction},
			{regexp.MustCompile(`^func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`), KindFunction},
			{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?fn\s+(\w+)`), KindFunction},
			{regexp.MustCompile(`^\s*(?:export\s+)?(?:abstract\s+)?class\s+(\w+)`), KindClass},
			{regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?(?:final\s+)?class\s+(\w+)`), KindClass},
		},
		importRes: []shallowImportRe{
			{regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import`), false},
			{regexp.MustCompile(`^\s*import\s+["']([^"']+)["']`), false},
			{regexp.MustCompile(`^\s*import\s+([\w./-]+)`), false},
			{regexp.MustCompile(`require\(\s*["']([^"']+)["']\s*\)`), false},
			{regexp.MustCompile(`^\s*#include\s+[<"]([^>"]+)[>"]`), false},
			{regexp.MustCompile(`^\s*use\s+([\w:]+)`), false},
		},
		decision:  regexp.MustCompile(`\b(if|elif|else if|for|while|case|when|catch|except|rescue)\b|&&|\|\||\b(and|or)\b`),
		docAfter:  regexp.MustCompile(`^\s*("""|'''|/\*\*)`),
		docBefore: regexp.MustCompile(`^\s*(///|//|#|/\*\*|\*)`),
	}
}

// Extract scans unit line by line. Each entity spans from its declaration to
// the next declaration at the same or lower indentation, which is rough but
// good enough for counting and scoring.
func (s *ShallowExtractor) Extract(unit Unit, result *UnitResult) {
	lines := strings.Split(string(unit.Content), "\n")

	type match struct {
		name   string
		kind   EntityKind
		line   int // 0-based
		indent int
	}
	var matches []match

	for i, line := range lines {
		for _, imp := range s.importRes {
			if m := imp.re.FindStringSubmatch(line); m != nil {
				raw := m[1]
				result.Imports = append(result.Imports, Import{
					Unit:     unit.Path,
					Raw:      raw,
					Line:     i + 1,
					Relative: strings.HasPrefix(raw, "."),
				})
				break
			}
		}
		for _, ent := range s.entityRes {
			if m := ent.re.FindStringSubmatch(line); m != nil {
				matches = append(matches, match{
					name:   m[1],
					kind:   ent.kind,
					line:   i,
					indent: indentOf(line),
				})
				break
			}
		}
	}

	for idx, m := range matches {
		end := len(lines)
		for _, next := range matches[idx+1:] {
			if next.indent <= m.indent {
				end = next.line
				break
			}
		}

		body := strings.Join(lines[m.line:end], "\n")
		complexity := 1 + len(s.decision.FindAllString(body, -1))

		hasDoc := false
		if m.line+1 < len(lines) && s.docAfter.MatchString(lines[m.line+1]) {
			hasDoc = true
		} else if m.line > 0 && s.docBefore.MatchString(lines[m.line-1]) {
			hasDoc = true
		}

		result.Entities = append(result.Entities, Entity{
			Name:       m.name,
			Qualified:  m.name,
			Kind:       m.kind,
			Unit:       unit.Path,
			StartLine:  m.line + 1,
			EndLine:    end,
			HasDoc:     hasDoc,
			Complexity: complexity,
		})
	}
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}
