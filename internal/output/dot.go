// Package output renders an analysis result into the formats the
// command layer writes out: JSON, Markdown, Graphviz DOT and Mermaid.
package output

import (
	"fmt"
	"strings"

	"codescope/internal/graph"
)

// DOT renders the internal dependency graph as a Graphviz digraph.
// Nodes and edges come out in the graph's sorted order so the text is
// stable across runs. Cycle members are highlighted.
func DOT(g *graph.Graph) string {
	inCycle := cycleMembers(g.Cycles)

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontsize=10];\n")
	for _, n := range g.Nodes {
		if inCycle[n] {
			fmt.Fprintf(&b, "  %q [color=red, penwidth=2];\n", n)
		} else {
			fmt.Fprintf(&b, "  %q;\n", n)
		}
	}
	cycleEdges := cycleEdgeSet(g.Cycles)
	for _, e := range g.Edges {
		if cycleEdges[e.From+"\x00"+e.To] {
			fmt.Fprintf(&b, "  %q -> %q [color=red];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func cycleMembers(cycles [][]string) map[string]bool {
	members := make(map[string]bool)
	for _, c := range cycles {
		for _, m := range c {
			members[m] = true
		}
	}
	return members
}

func cycleEdgeSet(cycles [][]string) map[string]bool {
	edges := make(map[string]bool)
	for _, c := range cycles {
		for i, from := range c {
			to := c[(i+1)%len(c)]
			edges[from+"\x00"+to] = true
		}
	}
	return edges
}
