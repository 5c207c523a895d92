package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type RustExtractor struct{}

func (e *RustExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	e.walk(root, ctx, "")
	return nil
}

func (e *RustExtractor) walk(node *sitter.Node, ctx *ExtractionContext, impl string) {
	switch node.Kind() {
	case "use_declaration":
		e.extractUse(node, ctx)
	case "function_item":
		e.extractFunction(node, ctx, impl)
		return
	case "struct_item", "enum_item", "trait_item":
		e.extractType(node, ctx)
		return
	case "impl_item":
		e.extractImpl(node, ctx)
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), ctx, impl)
	}
}

func (e *RustExtractor) extractUse(node *sitter.Node, ctx *ExtractionContext) {
	// Record the use path up to any brace group: `use a::b::{c, d}` -> a::b
	text := strings.TrimSuffix(strings.TrimPrefix(ctx.Text(node), "use "), ";")
	if idx := strings.Index(text, "::{"); idx >= 0 {
		text = text[:idx]
	}
	if idx := strings.Index(text, " as "); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	relative := strings.HasPrefix(text, "crate") || strings.HasPrefix(text, "self") || strings.HasPrefix(text, "super")
	ctx.AddImport(text, ctx.Line(node), relative)
}

func (e *RustExtractor) extractFunction(node *sitter.Node, ctx *ExtractionContext, impl string) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		return
	}

	kind := KindFunction
	qualified := name
	if impl != "" {
		kind = KindMethod
		qualified = impl + "." + name
	}

	body := node.ChildByFieldName("body")

	ctx.AddEntity(Entity{
		Name:       name,
		Qualified:  qualified,
		Kind:       kind,
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
		Params:     e.params(node.ChildByFieldName("parameters"), ctx),
		HasDoc:     e.hasDocComment(node, ctx),
		Complexity: countComplexity(body, ctx.Source, LangRust),
		Calls:      collectCalls(body, ctx, "call_expression", set("identifier", "field_expression", "scoped_identifier")),
	})
}

func (e *RustExtractor) extractType(node *sitter.Node, ctx *ExtractionContext) {
	name := ctx.ChildText(node, "type_identifier")
	if name == "" {
		return
	}

	ctx.AddEntity(Entity{
		Name:       name,
		Kind:       KindClass,
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
		HasDoc:     e.hasDocComment(node, ctx),
		Complexity: 1,
	})

	// Trait bodies carry default method implementations.
	if node.Kind() == "trait_item" {
		if body := node.ChildByFieldName("body"); body != nil {
			for i := uint(0); i < body.ChildCount(); i++ {
				e.walk(body.Child(i), ctx, name)
			}
		}
	}
}

func (e *RustExtractor) extractImpl(node *sitter.Node, ctx *ExtractionContext) {
	implType := ""
	if t := node.ChildByFieldName("type"); t != nil {
		implType = ctx.Text(t)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			e.walk(body.Child(i), ctx, implType)
		}
	}
}

func (e *RustExtractor) params(paramList *sitter.Node, ctx *ExtractionContext) []string {
	if paramList == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramList.ChildCount(); i++ {
		child := paramList.Child(i)
		switch child.Kind() {
		case "parameter":
			if id := ctx.ChildText(child, "identifier"); id != "" {
				names = append(names, id)
			}
		case "self_parameter":
			names = append(names, "self")
		}
	}
	return names
}

func (e *RustExtractor) hasDocComment(node *sitter.Node, ctx *ExtractionContext) bool {
	prev := node.PrevSibling()
	if prev == nil {
		return false
	}
	kind := prev.Kind()
	if kind != "line_comment" && kind != "block_comment" {
		return false
	}
	text := ctx.Text(prev)
	return strings.HasPrefix(text, "///") || strings.HasPrefix(text, "/**") || strings.HasPrefix(text, "//!")
}
