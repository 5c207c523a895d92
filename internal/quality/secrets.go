package quality

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Secret is one suspected hardcoded credential. The raw value never
// leaves the detector; only the masked form is reported.
type Secret struct {
	Kind     string  `json:"kind"`
	Severity string  `json:"severity"`
	Path     string  `json:"path"`
	Line     int     `json:"line"`
	Column   int     `json:"column"`
	Entropy  float64 `json:"entropy"`
	Masked   string  `json:"masked"`
}

type secretPattern struct {
	name     string
	severity string
	re       *regexp.Regexp
}

type secretDetector struct {
	entropyThreshold float64
	minTokenLength   int
	patterns         []secretPattern
	contextVarRE     *regexp.Regexp
	quotedValueRE    *regexp.Regexp
}

func newSecretDetector() *secretDetector {
	return &secretDetector{
		entropyThreshold: 4.0,
		minTokenLength:   20,
		patterns: []secretPattern{
			{"aws-access-key-id", "high", regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
			{"github-pat", "high", regexp.MustCompile(`\bghp_[A-Za-z0-9]{36}\b`)},
			{"github-fine-grained-pat", "high", regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{82}\b`)},
			{"stripe-live-secret", "high", regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{16,}\b`)},
			{"slack-token", "high", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`)},
			{"private-key-block", "critical", regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`)},
		},
		contextVarRE:  regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api[_-]?key|token|auth[_-]?token|access[_-]?key|private[_-]?key|client[_-]?secret)\b`),
		quotedValueRE: regexp.MustCompile(`"([^"\r\n]{4,})"|'([^'\r\n]{4,})'`),
	}
}

func (d *secretDetector) detect(path string, content []byte) []Secret {
	if len(content) == 0 {
		return nil
	}

	text := string(content)
	index := buildLineIndex(content)
	findings := make(map[string]Secret)

	for _, p := range d.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			if ignoreCandidate(value) {
				continue
			}
			line, col := index.lineCol(loc[0])
			upsert(findings, Secret{
				Kind:     p.name,
				Severity: p.severity,
				Path:     path,
				Line:     line,
				Column:   col,
				Entropy:  shannonEntropy(value),
				Masked:   maskValue(value),
			})
		}
	}

	d.detectAssignments(path, text, index, findings)

	if len(findings) == 0 {
		return nil
	}
	out := make([]Secret, 0, len(findings))
	for _, s := range findings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// detectAssignments flags high-entropy quoted strings on lines whose
// surrounding identifiers look credential-like.
func (d *secretDetector) detectAssignments(path, text string, index lineIndex, findings map[string]Secret) {
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if !d.contextVarRE.MatchString(line) {
			offset += len(line) + 1
			continue
		}
		for _, match := range d.quotedValueRE.FindAllStringSubmatchIndex(line, -1) {
			start, end, ok := firstGroup(match)
			if !ok {
				continue
			}
			candidate := line[start:end]
			if len(candidate) < d.minTokenLength || ignoreCandidate(candidate) || !letterAndDigit(candidate) {
				continue
			}
			entropy := shannonEntropy(candidate)
			if entropy < d.entropyThreshold*0.8 {
				continue
			}
			ln, col := index.lineCol(offset + start)
			upsert(findings, Secret{
				Kind:     "sensitive-assignment",
				Severity: "medium",
				Path:     path,
				Line:     ln,
				Column:   col,
				Entropy:  entropy,
				Masked:   maskValue(candidate),
			})
		}
		offset += len(line) + 1
	}
}

func upsert(findings map[string]Secret, s Secret) {
	key := fmt.Sprintf("%s:%d:%d:%s", s.Path, s.Line, s.Column, s.Kind)
	if _, ok := findings[key]; ok {
		return
	}
	findings[key] = s
}

func ignoreCandidate(value string) bool {
	lower := strings.ToLower(value)
	for _, blocked := range []string{"example", "sample", "dummy", "placeholder", "changeme", "notasecret", "test"} {
		if strings.Contains(lower, blocked) {
			return true
		}
	}
	return false
}

func letterAndDigit(value string) bool {
	hasLetter, hasDigit := false, false
	for _, r := range value {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if hasLetter && hasDigit {
			return true
		}
	}
	return false
}

func maskValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + "..." + value[len(value)-4:]
}

func shannonEntropy(value string) float64 {
	if value == "" {
		return 0
	}
	freq := make(map[rune]float64)
	for _, r := range value {
		freq[r]++
	}
	length := float64(len([]rune(value)))
	entropy := 0.0
	for _, count := range freq {
		p := count / length
		entropy -= p * math.Log2(p)
	}
	return entropy
}

type lineIndex struct {
	starts []int
}

func buildLineIndex(content []byte) lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts}
}

func (i lineIndex) lineCol(offset int) (int, int) {
	if offset < 0 {
		return 1, 1
	}
	line := sort.Search(len(i.starts), func(idx int) bool { return i.starts[idx] > offset }) - 1
	if line < 0 {
		line = 0
	}
	col := offset - i.starts[line] + 1
	if col < 1 {
		col = 1
	}
	return line + 1, col
}

func firstGroup(match []int) (int, int, bool) {
	for i := 2; i+1 < len(match); i += 2 {
		if match[i] >= 0 && match[i+1] >= 0 {
			return match[i], match[i+1], true
		}
	}
	return 0, 0, false
}
