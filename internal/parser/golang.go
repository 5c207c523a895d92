package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type GoExtractor struct{}

var goCommentKinds = set("comment")

func (e *GoExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	e.walk(root, ctx)
	return nil
}

func (e *GoExtractor) walk(node *sitter.Node, ctx *ExtractionContext) {
	switch node.Kind() {
	case "import_declaration":
		e.extractImports(node, ctx)
	case "function_declaration":
		e.extractFunction(node, ctx, KindFunction, "")
		return
	case "method_declaration":
		e.extractMethod(node, ctx)
		return
	case "type_declaration":
		e.extractTypes(node, ctx)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), ctx)
	}
}

func (e *GoExtractor) extractImports(node *sitter.Node, ctx *ExtractionContext) {
	var walkSpecs func(*sitter.Node)
	walkSpecs = func(n *sitter.Node) {
		if n.Kind() == "import_spec" {
			for j := uint(0); j < n.ChildCount(); j++ {
				spec := n.Child(j)
				if spec.Kind() == "interpreted_string_literal" {
					path := strings.Trim(ctx.Text(spec), `"`)
					ctx.AddImport(path, ctx.Line(n), false)
				}
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walkSpecs(n.Child(i))
		}
	}
	walkSpecs(node)
}

func (e *GoExtractor) extractFunction(node *sitter.Node, ctx *ExtractionContext, kind EntityKind, receiver string) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		name = ctx.ChildText(node, "field_identifier")
	}
	if name == "" {
		return
	}

	qualified := name
	if receiver != "" {
		qualified = receiver + "." + name
	}

	body := node.ChildByFieldName("body")

	ctx.AddEntity(Entity{
		Name:       name,
		Qualified:  qualified,
		Kind:       kind,
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
		Params:     e.params(node.ChildByFieldName("parameters"), ctx),
		HasDoc:     PrecedingComment(node, goCommentKinds),
		Complexity: countComplexity(body, ctx.Source, LangGo),
		Calls:      collectCalls(body, ctx, "call_expression", set("identifier", "selector_expression")),
	})
}

func (e *GoExtractor) extractMethod(node *sitter.Node, ctx *ExtractionContext) {
	receiver := ""
	if recv := node.ChildByFieldName("receiver"); recv != nil {
		var types []string
		ctx.CollectKind(recv, set("type_identifier"), &types)
		if len(types) > 0 {
			types[0] = strings.TrimPrefix(types[0], "*")
			receiver = types[0]
		}
	}
	e.extractFunction(node, ctx, KindMethod, receiver)
}

func (e *GoExtractor) extractTypes(node *sitter.Node, ctx *ExtractionContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec.Kind() != "type_spec" {
			continue
		}
		name := ctx.ChildText(spec, "type_identifier")
		if name == "" {
			continue
		}
		isStructLike := false
		for j := uint(0); j < spec.ChildCount(); j++ {
			k := spec.Child(j).Kind()
			if k == "struct_type" || k == "interface_type" {
				isStructLike = true
			}
		}
		if !isStructLike {
			continue
		}

		// struct/interface declarations are the closest Go analogue of a
		// class entity
		hasDoc := PrecedingComment(node, goCommentKinds)
		ctx.AddEntity(Entity{
			Name:       name,
			Kind:       KindClass,
			StartLine:  ctx.Line(spec),
			EndLine:    ctx.EndLine(spec),
			HasDoc:     hasDoc,
			Complexity: 1,
		})
	}
}

func (e *GoExtractor) params(paramList *sitter.Node, ctx *ExtractionContext) []string {
	if paramList == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramList.ChildCount(); i++ {
		decl := paramList.Child(i)
		if decl.Kind() != "parameter_declaration" && decl.Kind() != "variadic_parameter_declaration" {
			continue
		}
		for j := uint(0); j < decl.ChildCount(); j++ {
			child := decl.Child(j)
			if child.Kind() == "identifier" {
				names = append(names, ctx.Text(child))
			}
		}
	}
	return names
}

// collectCalls gathers the callee identifier of every call expression inside
// body. Used for pattern evidence, not full call-graph resolution.
func collectCalls(body *sitter.Node, ctx *ExtractionContext, callKind string, calleeKinds map[string]bool) []string {
	if body == nil {
		return nil
	}
	var calls []string
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Kind() == callKind {
			if fn := n.ChildByFieldName("function"); fn != nil && calleeKinds[fn.Kind()] {
				calls = append(calls, ctx.Text(fn))
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(body)
	return calls
}
