package quality

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"codescope/internal/parser"
)

const maxFindings = 10

// scoreDocumentation is the fraction of entities carrying a docstring,
// scaled to [0,100]. An empty model scores 0.
func scoreDocumentation(model *parser.Model) CategoryScore {
	total := len(model.Entities)
	if total == 0 {
		return CategoryScore{Score: 0}
	}
	documented := 0
	var findings []string
	for _, e := range model.Entities {
		if e.HasDoc {
			documented++
			continue
		}
		if len(findings) < maxFindings {
			findings = append(findings, fmt.Sprintf("%s %s (%s:%d) has no documentation",
				e.Kind, e.Qualified, e.Unit, e.StartLine))
		}
	}
	return CategoryScore{
		Score:    round2(float64(documented) / float64(total) * 100),
		Findings: findings,
	}
}

// scoreTests estimates test coverage from the ratio of test-designated
// units to the whole set. No test units means a hard zero.
func scoreTests(model *parser.Model) CategoryScore {
	total := len(model.Units)
	testUnits := 0
	for _, u := range model.Units {
		if u.IsTest {
			testUnits++
		}
	}
	if testUnits == 0 {
		return CategoryScore{
			Score:    0,
			Findings: []string{"no test units found"},
		}
	}
	// A test file for roughly every three source files counts as full
	// coverage; beyond that the estimate saturates.
	target := float64(total) * 0.3
	if target < 1 {
		target = 1
	}
	score := float64(testUnits) / target * 100
	if score > 100 {
		score = 100
	}
	return CategoryScore{
		Score:    round2(score),
		Findings: []string{fmt.Sprintf("%d test unit(s) out of %d total", testUnits, total)},
	}
}

// scoreComplexity penalizes entities over the threshold, weighting each
// offender by how far past the threshold it lands. More offenders or
// worse offenders always score lower.
func scoreComplexity(model *parser.Model, threshold int) CategoryScore {
	total := len(model.Entities)
	if total == 0 {
		return CategoryScore{Score: 100}
	}

	type offender struct {
		entity   parser.Entity
		severity float64
	}
	var offenders []offender
	penalty := 0.0
	for _, e := range model.Entities {
		if e.Complexity <= threshold {
			continue
		}
		severity := float64(e.Complexity-threshold) / float64(threshold)
		if severity > 1 {
			severity = 1
		}
		penalty += severity
		offenders = append(offenders, offender{entity: e, severity: severity})
	}

	score := 100 - penalty/float64(total)*100
	if score < 0 {
		score = 0
	}

	sort.SliceStable(offenders, func(i, j int) bool {
		return offenders[i].entity.Complexity > offenders[j].entity.Complexity
	})
	var findings []string
	for i, o := range offenders {
		if i == 5 {
			break
		}
		findings = append(findings, fmt.Sprintf("%s (%s:%d) has complexity %d, threshold %d",
			o.entity.Qualified, o.entity.Unit, o.entity.StartLine, o.entity.Complexity, threshold))
	}
	return CategoryScore{Score: round2(score), Findings: findings}
}

var (
	snakeCaseRE  = regexp.MustCompile(`^_*[a-z][a-z0-9_]*$`)
	pascalCaseRE = regexp.MustCompile(`^_*[A-Z][A-Za-z0-9]*$`)
	camelCaseRE  = regexp.MustCompile(`^_*[a-z][A-Za-z0-9]*$`)
	goNameRE     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// scoreConventions checks per-language casing conventions across the
// extracted entities. Score is the conforming fraction.
func scoreConventions(model *parser.Model) CategoryScore {
	langByUnit := make(map[string]parser.Language, len(model.Units))
	for _, u := range model.Units {
		langByUnit[u.Path] = u.Language
	}

	checked := 0
	violated := 0
	var findings []string
	for _, e := range model.Entities {
		expect, ok := conventionFor(langByUnit[e.Unit], e.Kind)
		if !ok {
			continue
		}
		checked++
		if expect.re.MatchString(e.Name) {
			continue
		}
		violated++
		if len(findings) < maxFindings {
			findings = append(findings, fmt.Sprintf("%s %q (%s:%d) is not %s",
				e.Kind, e.Name, e.Unit, e.StartLine, expect.label))
		}
	}
	if checked == 0 {
		return CategoryScore{Score: 100}
	}
	return CategoryScore{
		Score:    round2(float64(checked-violated) / float64(checked) * 100),
		Findings: findings,
	}
}

type convention struct {
	re    *regexp.Regexp
	label string
}

func conventionFor(lang parser.Language, kind parser.EntityKind) (convention, bool) {
	switch lang {
	case parser.LangGo:
		return convention{goNameRE, "Go mixed caps (no underscores)"}, true
	case parser.LangPython:
		if kind == parser.KindClass {
			return convention{pascalCaseRE, "PascalCase"}, true
		}
		return convention{snakeCaseRE, "snake_case"}, true
	case parser.LangJavaScript, parser.LangTypeScript, parser.LangJava:
		if kind == parser.KindClass {
			return convention{pascalCaseRE, "PascalCase"}, true
		}
		return convention{camelCaseRE, "camelCase"}, true
	case parser.LangRust:
		if kind == parser.KindClass {
			return convention{pascalCaseRE, "PascalCase"}, true
		}
		return convention{snakeCaseRE, "snake_case"}, true
	default:
		return convention{}, false
	}
}

var (
	broadExceptRE = regexp.MustCompile(`(?m)except\s*(:|Exception\b|BaseException\b)|catch\s*\(\s*(Exception|Throwable|error)\b|catch\s*\(\s*\)`)
	todoRE        = regexp.MustCompile(`\bTODO\b|\bFIXME\b`)
	deepNestRE    = regexp.MustCompile(`(?m)^(?:\t{5,}|[ ]{20,})\s*(?:if|for|while|switch|match)\b`)
)

const perIssuePenalty = 5.0

// scoreBestPractices scans raw content for known anti-patterns. Every
// occurrence costs a fixed penalty, floored at zero. Secret findings
// come from the dedicated detector and are reported separately as well.
func scoreBestPractices(units []parser.Unit) (CategoryScore, []Secret) {
	var issues []string
	var secrets []Secret

	detector := newSecretDetector()
	for _, u := range units {
		content := string(u.Content)

		lines := strings.Count(content, "\n") + 1
		if lines > 500 {
			issues = append(issues, fmt.Sprintf("%s: file is very large (%d lines)", u.Path, lines))
		}

		for _, m := range broadExceptRE.FindAllString(content, -1) {
			issues = append(issues, fmt.Sprintf("%s: overly broad exception handling (%s)", u.Path, strings.TrimSpace(m)))
		}

		if todos := len(todoRE.FindAllString(content, -1)); todos > 5 {
			issues = append(issues, fmt.Sprintf("%s: %d TODO/FIXME markers", u.Path, todos))
		}

		if nests := len(deepNestRE.FindAllString(content, -1)); nests > 0 {
			issues = append(issues, fmt.Sprintf("%s: %d deeply nested control-flow block(s)", u.Path, nests))
		}

		found := detector.detect(u.Path, u.Content)
		secrets = append(secrets, found...)
		for _, s := range found {
			issues = append(issues, fmt.Sprintf("%s:%d: possible hardcoded %s (%s)", s.Path, s.Line, s.Kind, s.Masked))
		}
	}

	score := 100 - float64(len(issues))*perIssuePenalty
	if score < 0 {
		score = 0
	}
	findings := issues
	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}
	return CategoryScore{Score: round2(score), Findings: findings}, secrets
}
