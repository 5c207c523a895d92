package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// CSSExtractor and HTMLExtractor form the declarative tier: they extract
// file references only (no entities), since stylesheets and markup have no
// function-like structure worth modeling.

type CSSExtractor struct{}

func (e *CSSExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Kind() == "import_statement" {
			e.extractImport(n, ctx)
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return nil
}

func (e *CSSExtractor) extractImport(node *sitter.Node, ctx *ExtractionContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_value":
			raw := strings.Trim(ctx.Text(child), "\"'")
			ctx.AddImport(raw, ctx.Line(node), strings.HasPrefix(raw, "."))
			return
		case "call_expression":
			// @import url("...")
			var strs []string
			ctx.CollectKind(child, set("string_value"), &strs)
			if len(strs) > 0 {
				raw := strings.Trim(strs[0], "\"'")
				ctx.AddImport(raw, ctx.Line(node), strings.HasPrefix(raw, "."))
			}
			return
		}
	}
}

type HTMLExtractor struct{}

// Extract records script src and stylesheet href references as imports.
func (e *HTMLExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Kind() == "attribute" {
			e.extractAttribute(n, ctx)
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return nil
}

func (e *HTMLExtractor) extractAttribute(node *sitter.Node, ctx *ExtractionContext) {
	name := ctx.ChildText(node, "attribute_name")
	if name != "src" && name != "href" {
		return
	}

	value := ctx.ChildText(node, "quoted_attribute_value")
	if value == "" {
		value = ctx.ChildText(node, "attribute_value")
	}
	value = strings.Trim(value, "\"'")
	if value == "" || strings.HasPrefix(value, "#") {
		return
	}

	lower := strings.ToLower(value)
	if !strings.HasSuffix(lower, ".js") && !strings.HasSuffix(lower, ".mjs") && !strings.HasSuffix(lower, ".css") {
		return
	}
	ctx.AddImport(value, ctx.Line(node), strings.HasPrefix(value, "."))
}
