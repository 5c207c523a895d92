package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// EcmaExtractor covers JavaScript and TypeScript; the two grammars share the
// node kinds this extractor touches.
type EcmaExtractor struct {
	lang Language
}

var ecmaCommentKinds = set("comment")

func (e *EcmaExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	e.walk(root, ctx, "")
	return nil
}

func (e *EcmaExtractor) walk(node *sitter.Node, ctx *ExtractionContext, class string) {
	switch node.Kind() {
	case "import_statement", "export_statement":
		e.extractImport(node, ctx)
	case "function_declaration", "generator_function_declaration":
		e.extractFunction(node, ctx, KindFunction, class, "identifier")
		return
	case "method_definition":
		e.extractFunction(node, ctx, KindMethod, class, "property_identifier")
		return
	case "class_declaration":
		e.extractClass(node, ctx)
		return
	case "call_expression":
		e.extractRequire(node, ctx)
	case "lexical_declaration", "variable_declaration":
		e.extractArrowBindings(node, ctx)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), ctx, class)
	}
}

func (e *EcmaExtractor) extractImport(node *sitter.Node, ctx *ExtractionContext) {
	if src := node.ChildByFieldName("source"); src != nil {
		raw := strings.Trim(ctx.Text(src), "\"'`")
		ctx.AddImport(raw, ctx.Line(node), strings.HasPrefix(raw, "."))
	}
}

// extractRequire records CommonJS require("...") calls as imports.
func (e *EcmaExtractor) extractRequire(node *sitter.Node, ctx *ExtractionContext) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || ctx.Text(fn) != "require" {
		return
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		arg := args.Child(i)
		if arg.Kind() == "string" {
			raw := strings.Trim(ctx.Text(arg), "\"'`")
			ctx.AddImport(raw, ctx.Line(node), strings.HasPrefix(raw, "."))
			return
		}
	}
}

func (e *EcmaExtractor) extractFunction(node *sitter.Node, ctx *ExtractionContext, kind EntityKind, class, nameKind string) {
	name := ctx.ChildText(node, nameKind)
	if name == "" {
		return
	}

	qualified := name
	if class != "" && kind == KindMethod {
		qualified = class + "." + name
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
		Complexity: countComplexity(body, ctx.Source, e.lang),
		Calls:      collectCalls(body, ctx, "call_expression", set("identifier", "member_expression")),
	})
}

// extractArrowBindings records `const f = () => {...}` and
// `const f = function() {...}` as function entities.
func (e *EcmaExtractor) extractArrowBindings(node *sitter.Node, ctx *ExtractionContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		decl := node.Child(i)
		if decl.Kind() != "variable_declarator" {
			continue
		}
		value := decl.ChildByFieldName("value")
		if value == nil {
			continue
		}
		if value.Kind() != "arrow_function" && value.Kind() != "function_expression" {
			continue
		}
		name := ctx.ChildText(decl, "identifier")
		if name == "" {
			continue
		}

		body := value.ChildByFieldName("body")
		ctx.AddEntity(Entity{
			Name:       name,
			Kind:       KindFunction,
			StartLine:  ctx.Line(node),
			EndLine:    ctx.EndLine(node),
			Params:     e.params(value.ChildByFieldName("parameters"), ctx),
			HasDoc:     e.hasDocComment(node, ctx),
			Complexity: countComplexity(body, ctx.Source, e.lang),
			Calls:      collectCalls(body, ctx, "call_expression", set("identifier", "member_expression")),
		})
	}
}

func (e *EcmaExtractor) extractClass(node *sitter.Node, ctx *ExtractionContext) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		name = ctx.ChildText(node, "type_identifier")
	}
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

	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			e.walk(body.Child(i), ctx, name)
		}
	}
}

func (e *EcmaExtractor) params(paramList *sitter.Node, ctx *ExtractionContext) []string {
	if paramList == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramList.ChildCount(); i++ {
		child := paramList.Child(i)
		switch child.Kind() {
		case "identifier":
			names = append(names, ctx.Text(child))
		case "required_parameter", "optional_parameter", "default_parameter":
			if id := ctx.ChildText(child, "identifier"); id != "" {
				names = append(names, id)
			}
		}
	}
	return names
}

func (e *EcmaExtractor) hasDocComment(node *sitter.Node, ctx *ExtractionContext) bool {
	prev := node.PrevSibling()
	if prev == nil || prev.Kind() != "comment" {
		return false
	}
	if int(prev.EndPosition().Row)+1 < int(node.StartPosition().Row) {
		return false
	}
	return strings.HasPrefix(ctx.Text(prev), "/**")
}
