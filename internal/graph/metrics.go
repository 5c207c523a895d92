package graph

// couplingLevel grades the graph by average outgoing edges per node:
// above 10 is high, above 5 is medium, everything else low.
func couplingLevel(g *Graph) string {
	if len(g.Nodes) == 0 {
		return "low"
	}
	avg := float64(len(g.Edges)) / float64(len(g.Nodes))
	switch {
	case avg > 10:
		return "high"
	case avg > 5:
		return "medium"
	default:
		return "low"
	}
}

// hubModule is the node with the highest fan-in, ties broken by name
// so the answer is stable across runs.
func hubModule(g *Graph) string {
	best := ""
	bestIn := 0
	for _, node := range g.Nodes {
		if in := g.FanIn[node]; in > bestIn {
			best = node
			bestIn = in
		}
	}
	return best
}
