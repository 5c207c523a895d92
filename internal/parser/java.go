package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type JavaExtractor struct{}

func (e *JavaExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	e.walk(root, ctx, "")
	return nil
}

func (e *JavaExtractor) walk(node *sitter.Node, ctx *ExtractionContext, class string) {
	switch node.Kind() {
	case "import_declaration":
		e.extractImport(node, ctx)
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		e.extractClass(node, ctx)
		return
	case "method_declaration", "constructor_declaration":
		e.extractMethod(node, ctx, class)
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), ctx, class)
	}
}

func (e *JavaExtractor) extractImport(node *sitter.Node, ctx *ExtractionContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "scoped_identifier" || child.Kind() == "identifier" {
			ctx.AddImport(ctx.Text(child), ctx.Line(node), false)
			return
		}
	}
}

func (e *JavaExtractor) extractClass(node *sitter.Node, ctx *ExtractionContext) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		return
	}

	ctx.AddEntity(Entity{
		Name:       name,
		Kind:       KindClass,
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
		HasDoc:     e.hasJavadoc(node, ctx),
		Complexity: 1,
	})

	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			e.walk(body.Child(i), ctx, name)
		}
	}
}

func (e *JavaExtractor) extractMethod(node *sitter.Node, ctx *ExtractionContext, class string) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		return
	}

	qualified := name
	if class != "" {
		qualified = class + "." + name
	}

	body := node.ChildByFieldName("body")

	ctx.AddEntity(Entity{
		Name:       name,
		Qualified:  qualified,
		Kind:       KindMethod,
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
		Params:     e.params(node.ChildByFieldName("parameters"), ctx),
		HasDoc:     e.hasJavadoc(node, ctx),
		Complexity: countComplexity(body, ctx.Source, LangJava),
		Calls:      e.collectInvocations(body, ctx),
	})
}

func (e *JavaExtractor) params(paramList *sitter.Node, ctx *ExtractionContext) []string {
	if paramList == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramList.ChildCount(); i++ {
		child := paramList.Child(i)
		if child.Kind() == "formal_parameter" || child.Kind() == "spread_parameter" {
			if id := ctx.ChildText(child, "identifier"); id != "" {
				names = append(names, id)
			}
		}
	}
	return names
}

func (e *JavaExtractor) collectInvocations(body *sitter.Node, ctx *ExtractionContext) []string {
	if body == nil {
		return nil
	}
	var calls []string
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Kind() == "method_invocation" {
			if name := n.ChildByFieldName("name"); name != nil {
				calls = append(calls, ctx.Text(name))
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(body)
	return calls
}

func (e *JavaExtractor) hasJavadoc(node *sitter.Node, ctx *ExtractionContext) bool {
	prev := node.PrevSibling()
	if prev == nil {
		return false
	}
	if prev.Kind() != "block_comment" && prev.Kind() != "comment" {
		return false
	}
	return strings.HasPrefix(ctx.Text(prev), "/**")
}
