package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ExtractionContext carries shared state and helpers used by all extractors.
type ExtractionContext struct {
	Source []byte
	Result *UnitResult
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *ExtractionContext) Line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func (c *ExtractionContext) EndLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// ChildText returns the text of the first direct child with the given kind.
func (c *ExtractionContext) ChildText(node *sitter.Node, kind string) string {
	if node == nil {
		return ""
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return c.Text(child)
		}
	}
	return ""
}

// CollectKind appends the text of every descendant of node whose kind is in
// kinds, in document order.
func (c *ExtractionContext) CollectKind(node *sitter.Node, kinds map[string]bool, out *[]string) {
	if node == nil {
		return
	}
	if kinds[node.Kind()] {
		*out = append(*out, c.Text(node))
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c.CollectKind(node.Child(i), kinds, out)
	}
}

// AddImport records a raw import for the current unit.
func (c *ExtractionContext) AddImport(raw string, line int, relative bool) {
	if raw == "" {
		return
	}
	c.Result.Imports = append(c.Result.Imports, Import{
		Unit:     c.Result.Source.Path,
		Raw:      raw,
		Line:     line,
		Relative: relative,
	})
}

// AddEntity records an entity for the current unit, clamping complexity to
// the McCabe floor of 1.
func (c *ExtractionContext) AddEntity(e Entity) {
	if e.Complexity < 1 {
		e.Complexity = 1
	}
	e.Unit = c.Result.Source.Path
	if e.Qualified == "" {
		e.Qualified = e.Name
	}
	c.Result.Entities = append(c.Result.Entities, e)
}

// PrecedingComment reports whether node is directly preceded by a comment
// that ends on the line above it. Used for doc-comment detection in
// languages where docs are ordinary comments (Go, Java, JS, Rust).
func PrecedingComment(node *sitter.Node, commentKinds map[string]bool) bool {
	prev := node.PrevSibling()
	if prev == nil {
		return false
	}
	if !commentKinds[prev.Kind()] {
		return false
	}
	return int(prev.EndPosition().Row)+1 >= int(node.StartPosition().Row)
}
