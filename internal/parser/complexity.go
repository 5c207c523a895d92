package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// complexitySpec lists the syntax constructs that count as decision points
// for one language. Boolean short-circuit operators are matched by operator
// text inside the listed binary-expression kinds, since tree-sitter exposes
// them as generic binary nodes.
type complexitySpec struct {
	decisionKinds map[string]bool
	binaryKinds   map[string]bool
	boolOperators map[string]bool
}

var complexitySpecs = map[Language]complexitySpec{
	LangGo: {
		decisionKinds: set("if_statement", "for_statement", "expression_case", "type_case", "communication_case"),
		binaryKinds:   set("binary_expression"),
		boolOperators: set("&&", "||"),
	},
	LangPython: {
		decisionKinds: set("if_statement", "elif_clause", "for_statement", "while_statement",
			"except_clause", "case_clause", "conditional_expression"),
		binaryKinds:   set("boolean_operator"),
		boolOperators: set("and", "or"),
	},
	LangJavaScript: {
		decisionKinds: set("if_statement", "for_statement", "for_in_statement", "while_statement",
			"do_statement", "switch_case", "catch_clause", "ternary_expression"),
		binaryKinds:   set("binary_expression"),
		boolOperators: set("&&", "||", "??"),
	},
	LangTypeScript: {
		decisionKinds: set("if_statement", "for_statement", "for_in_statement", "while_statement",
			"do_statement", "switch_case", "catch_clause", "ternary_expression"),
		binaryKinds:   set("binary_expression"),
		boolOperators: set("&&", "||", "??"),
	},
	LangJava: {
		decisionKinds: set("if_statement", "for_statement", "enhanced_for_statement", "while_statement",
			"do_statement", "switch_label", "catch_clause", "ternary_expression"),
		binaryKinds:   set("binary_expression"),
		boolOperators: set("&&", "||"),
	},
	LangRust: {
		decisionKinds: set("if_expression", "while_expression", "for_expression", "loop_expression",
			"match_arm"),
		binaryKinds:   set("binary_expression"),
		boolOperators: set("&&", "||"),
	},
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// countComplexity walks body and returns the McCabe complexity of the
// enclosed code: decision points + 1.
func countComplexity(body *sitter.Node, source []byte, lang Language) int {
	spec, ok := complexitySpecs[lang]
	if !ok {
		return 1
	}
	return 1 + countDecisions(body, source, spec)
}

func countDecisions(node *sitter.Node, source []byte, spec complexitySpec) int {
	if node == nil {
		return 0
	}

	count := 0
	kind := node.Kind()
	if spec.decisionKinds[kind] {
		count++
	} else if spec.binaryKinds[kind] {
		if op := node.ChildByFieldName("operator"); op != nil {
			if spec.boolOperators[string(source[op.StartByte():op.EndByte()])] {
				count++
			}
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		count += countDecisions(node.Child(i), source, spec)
	}
	return count
}
