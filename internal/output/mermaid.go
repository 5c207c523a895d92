package output

import (
	"fmt"
	"strings"

	"codescope/internal/graph"
)

const externalAggregationThreshold = 10

// Mermaid renders the dependency graph as a flowchart. When the
// external package list is long it collapses into a single aggregate
// node to keep the diagram readable.
func Mermaid(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	ids := makeIDs(g.Nodes)
	inCycle := cycleMembers(g.Cycles)

	for _, n := range g.Nodes {
		if inCycle[n] {
			fmt.Fprintf(&b, "  %s[\"%s\"]:::cycle\n", ids[n], n)
		} else {
			fmt.Fprintf(&b, "  %s[\"%s\"]\n", ids[n], n)
		}
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[e.From], ids[e.To])
	}

	if len(g.External) > 0 {
		if len(g.External) > externalAggregationThreshold {
			fmt.Fprintf(&b, "  ext((%d external packages))\n", len(g.External))
		} else {
			for i, ext := range g.External {
				fmt.Fprintf(&b, "  ext%d((%s))\n", i, ext.Name)
			}
		}
	}

	if len(inCycle) > 0 {
		b.WriteString("  classDef cycle stroke:#c00,stroke-width:2px\n")
	}
	return b.String()
}

// makeIDs assigns stable short identifiers to node names, since
// mermaid node ids cannot contain slashes or dots.
func makeIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	for i, n := range names {
		ids[n] = fmt.Sprintf("n%d", i)
	}
	return ids
}
