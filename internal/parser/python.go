package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, ctx *ExtractionContext) error {
	e.walk(root, ctx, "")
	return nil
}

func (e *PythonExtractor) walk(node *sitter.Node, ctx *ExtractionContext, class string) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, ctx)
	case "import_from_statement":
		e.extractFromImport(node, ctx)
	case "function_definition":
		e.extractFunction(node, ctx, class)
		return
	case "class_definition":
		e.extractClass(node, ctx)
		return
	case "decorated_definition":
		// Unwrap so the inner def/class is attributed to the right scope.
		for i := uint(0); i < node.ChildCount(); i++ {
			e.walk(node.Child(i), ctx, class)
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), ctx, class)
	}
}

func (e *PythonExtractor) extractImport(node *sitter.Node, ctx *ExtractionContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			ctx.AddImport(ctx.Text(child), ctx.Line(node), false)
		case "aliased_import":
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					ctx.AddImport(ctx.Text(sub), ctx.Line(node), false)
					break
				}
			}
		}
	}
}

func (e *PythonExtractor) extractFromImport(node *sitter.Node, ctx *ExtractionContext) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "relative_import":
			ctx.AddImport(ctx.Text(child), ctx.Line(node), true)
			return
		case "dotted_name", "identifier":
			ctx.AddImport(ctx.Text(child), ctx.Line(node), false)
			return
		}
	}
}

func (e *PythonExtractor) extractFunction(node *sitter.Node, ctx *ExtractionContext, class string) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		return
	}

	kind := KindFunction
	qualified := name
	if class != "" {
		kind = KindMethod
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
		HasDoc:     pythonDocstring(body, ctx),
		Complexity: countComplexity(body, ctx.Source, LangPython),
		Calls:      collectCalls(body, ctx, "call", set("identifier", "attribute")),
	})

	// Nested defs inside the body belong to the same class scope.
	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			e.walk(body.Child(i), ctx, "")
		}
	}
}

func (e *PythonExtractor) extractClass(node *sitter.Node, ctx *ExtractionContext) {
	name := ctx.ChildText(node, "identifier")
	if name == "" {
		return
	}

	body := node.ChildByFieldName("body")

	ctx.AddEntity(Entity{
		Name:       name,
		Kind:       KindClass,
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
		HasDoc:     pythonDocstring(body, ctx),
		Complexity: 1,
	})

	if body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			e.walk(body.Child(i), ctx, name)
		}
	}
}

func (e *PythonExtractor) params(paramList *sitter.Node, ctx *ExtractionContext) []string {
	if paramList == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramList.ChildCount(); i++ {
		child := paramList.Child(i)
		switch child.Kind() {
		case "identifier":
			names = append(names, ctx.Text(child))
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if id := ctx.ChildText(child, "identifier"); id != "" {
				names = append(names, id)
			}
		}
	}
	return names
}

// pythonDocstring reports whether the first statement of body is a bare
// string literal.
func pythonDocstring(body *sitter.Node, ctx *ExtractionContext) bool {
	if body == nil {
		return false
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		stmt := body.Child(i)
		if stmt.Kind() != "expression_statement" {
			if stmt.Kind() == "comment" {
				continue
			}
			return false
		}
		first := stmt.Child(0)
		return first != nil && strings.HasPrefix(first.Kind(), "string")
	}
	return false
}
