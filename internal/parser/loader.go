package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// GrammarLoader holds the statically linked tree-sitter grammars, one per
// deep-tier language, plus a parser pool per grammar.
type GrammarLoader struct {
	languages map[Language]*sitter.Language
	pools     map[Language]*ParserPool
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[Language]*sitter.Language),
		pools:     make(map[Language]*ParserPool),
	}

	gl.languages[LangGo] = sitter.NewLanguage(tree_sitter_go.Language())
	gl.languages[LangPython] = sitter.NewLanguage(tree_sitter_python.Language())
	gl.languages[LangJavaScript] = sitter.NewLanguage(tree_sitter_javascript.Language())
	gl.languages[LangTypeScript] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	gl.languages[LangJava] = sitter.NewLanguage(tree_sitter_java.Language())
	gl.languages[LangRust] = sitter.NewLanguage(tree_sitter_rust.Language())
	gl.languages[LangCSS] = sitter.NewLanguage(tree_sitter_css.Language())
	gl.languages[LangHTML] = sitter.NewLanguage(tree_sitter_html.Language())

	for lang, grammar := range gl.languages {
		gl.pools[lang] = NewParserPool(grammar)
	}

	return gl
}

// Grammar returns the grammar for lang, or nil if lang has no deep parser.
func (gl *GrammarLoader) Grammar(lang Language) *sitter.Language {
	return gl.languages[lang]
}

// Pool returns the parser pool for lang, or nil if lang has no deep parser.
func (gl *GrammarLoader) Pool(lang Language) *ParserPool {
	return gl.pools[lang]
}
