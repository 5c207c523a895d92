package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"codescope/internal/shared/observability"
)

// Extractor turns a parsed syntax tree into entities and imports.
type Extractor interface {
	Extract(root *sitter.Node, ctx *ExtractionContext) error
}

// Parser selects a parser tier per unit: a tree-sitter extractor for deep
// languages, and the shallow regex extractor for everything else or as a
// fallback when a deep parse fails.
type Parser struct {
	loader      *GrammarLoader
	extractors  map[Language]Extractor
	shallow     *ShallowExtractor
	maxFileSize int
}

func NewParser(loader *GrammarLoader, maxFileSize int) *Parser {
	p := &Parser{
		loader:      loader,
		extractors:  make(map[Language]Extractor),
		shallow:     NewShallowExtractor(),
		maxFileSize: maxFileSize,
	}

	p.extractors[LangGo] = &GoExtractor{}
	p.extractors[LangPython] = &PythonExtractor{}
	p.extractors[LangJavaScript] = &EcmaExtractor{lang: LangJavaScript}
	p.extractors[LangTypeScript] = &EcmaExtractor{lang: LangTypeScript}
	p.extractors[LangJava] = &JavaExtractor{}
	p.extractors[LangRust] = &RustExtractor{}
	p.extractors[LangCSS] = &CSSExtractor{}
	p.extractors[LangHTML] = &HTMLExtractor{}

	return p
}

// ParseUnit analyzes one unit. It never fails the run: parse errors degrade
// to the shallow extractor, and even a shallow failure yields an empty
// result plus a diagnostic.
func (p *Parser) ParseUnit(unit Unit) UnitResult {
	lang := DetectLanguage(unit.Path, unit.LanguageHint)

	result := UnitResult{
		Source: SourceUnit{
			Path:     unit.Path,
			Language: lang,
			Size:     len(unit.Content),
			Lines:    countLines(unit.Content),
			Stats:    lineStats(unit.Content, lang),
			IsTest:   IsTestPath(unit.Path),
		},
	}

	if p.maxFileSize > 0 && len(unit.Content) > p.maxFileSize {
		observability.UnitsSkipped.Inc()
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Unit:    unit.Path,
			Stage:   StageSize,
			Message: fmt.Sprintf("unit exceeds size ceiling (%d > %d bytes), skipped", len(unit.Content), p.maxFileSize),
		})
		return result
	}

	start := time.Now()
	defer func() {
		observability.ParsingDuration.WithLabelValues(string(lang)).Observe(time.Since(start).Seconds())
	}()

	if extractor, ok := p.extractors[lang]; ok && p.loader.Grammar(lang) != nil {
		if err := p.deepParse(unit, lang, extractor, &result); err == nil {
			return result
		} else {
			observability.ParseFailures.WithLabelValues(string(lang)).Inc()
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Unit:    unit.Path,
				Stage:   StageParse,
				Message: fmt.Sprintf("deep parse failed, using shallow extraction: %v", err),
			})
		}
	}

	p.shallow.Extract(unit, &result)
	return result
}

func (p *Parser) deepParse(unit Unit, lang Language, extractor Extractor, result *UnitResult) error {
	pool := p.loader.Pool(lang)
	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(unit.Content, nil)
	if tree == nil {
		return fmt.Errorf("tree-sitter returned no tree for %s", unit.Path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("parse produced no root node for %s", unit.Path)
	}

	ctx := &ExtractionContext{Source: unit.Content, Result: result}
	return extractor.Extract(root, ctx)
}

// DetectLanguage resolves the unit language from the caller's hint first,
// then by file extension.
func DetectLanguage(path, hint string) Language {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "go", "golang":
		return LangGo
	case "python", "py":
		return LangPython
	case "javascript", "js", "jsx":
		return LangJavaScript
	case "typescript", "ts", "tsx":
		return LangTypeScript
	case "java":
		return LangJava
	case "rust", "rs":
		return LangRust
	case "css":
		return LangCSS
	case "html":
		return LangHTML
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return LangGo
	case ".py":
		return LangPython
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript
	case ".ts", ".tsx":
		return LangTypeScript
	case ".java":
		return LangJava
	case ".rs":
		return LangRust
	case ".css", ".scss":
		return LangCSS
	case ".html", ".htm":
		return LangHTML
	default:
		return LangUnknown
	}
}

// IsTestPath reports whether a path designates a test unit by naming or
// location convention.
func IsTestPath(path string) bool {
	lower := strings.ToLower(filepath.ToSlash(path))
	base := filepath.Base(lower)

	if strings.HasSuffix(base, "_test.go") || strings.HasSuffix(base, "_test.py") {
		return true
	}
	if strings.HasPrefix(base, "test_") {
		return true
	}
	if strings.Contains(base, ".spec.") || strings.Contains(base, ".test.") {
		return true
	}
	for _, dir := range []string{"/test/", "/tests/", "/__tests__/", "/spec/"} {
		if strings.Contains(lower, dir) {
			return true
		}
	}
	return false
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 1
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	return n
}

var lineCommentMarkers = map[Language][]string{
	LangGo:         {"//"},
	LangPython:     {"#"},
	LangJavaScript: {"//"},
	LangTypeScript: {"//"},
	LangJava:       {"//"},
	LangRust:       {"//"},
	LangCSS:        {"/*"},
	LangHTML:       {"<!--"},
	LangUnknown:    {"#", "//"},
}

func lineStats(content []byte, lang Language) LineStats {
	var stats LineStats
	if len(content) == 0 {
		return stats
	}
	markers := lineCommentMarkers[lang]
	if markers == nil {
		markers = lineCommentMarkers[LangUnknown]
	}

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			stats.Blank++
		case hasAnyPrefix(trimmed, markers):
			stats.Comment++
		default:
			stats.Code++
		}
	}
	return stats
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
