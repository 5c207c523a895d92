package graph

import (
	"sort"

	"codescope/internal/parser"
	"codescope/internal/shared/observability"
	"codescope/internal/shared/util"
)

// KindInternalExternal classifies a resolved import edge.
type KindInternalExternal string

const (
	KindInternal   KindInternalExternal = "internal"
	KindExternal   KindInternalExternal = "external"
	KindUnresolved KindInternalExternal = "unresolved"
)

// ResolvedImport is an ImportEdge after resolution.
type ResolvedImport struct {
	Unit   string               `json:"unit"`
	Raw    string               `json:"raw"`
	Line   int                  `json:"line"`
	Kind   KindInternalExternal `json:"kind"`
	Target string               `json:"target,omitempty"`
}

// Edge is a directed internal dependency between two module ids.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ExternalPackage tallies references to one external package.
type ExternalPackage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Graph is the module dependency graph built once per analysis run.
// Invariants: node list sorted; no self-edges; no duplicate ordered edges;
// deterministic edge order.
type Graph struct {
	Nodes      []string             `json:"nodes"`
	Edges      []Edge               `json:"edges"`
	Resolved   []ResolvedImport     `json:"resolved"`
	External   []ExternalPackage    `json:"external"`
	Unresolved []ResolvedImport     `json:"unresolved,omitempty"`
	Cycles     [][]string           `json:"cycles,omitempty"`
	FanIn      map[string]int       `json:"fan_in"`
	FanOut     map[string]int       `json:"fan_out"`
	Coupling   string               `json:"coupling"`
	Hub        string               `json:"hub,omitempty"`
	Declared   []DeclaredDependency `json:"declared,omitempty"`

	adjacency map[string][]string
}

// Build resolves the import set against the unit set and assembles the
// dependency graph. Pure over its inputs; safe to call concurrently with
// the other model consumers.
func Build(model *parser.Model, raw []parser.Unit) *Graph {
	ids := make(map[string]bool, len(model.Units))
	unitLang := make(map[string]parser.Language, len(model.Units))
	for _, u := range model.Units {
		ids[moduleID(u.Path, u.Language)] = true
		unitLang[u.Path] = u.Language
	}

	r := newResolver(ids)

	g := &Graph{
		FanIn:     make(map[string]int),
		FanOut:    make(map[string]int),
		adjacency: make(map[string][]string),
	}
	g.Nodes = util.SortedStringKeys(ids)

	edgeSeen := make(map[Edge]bool)
	externalCounts := make(map[string]int)

	for _, imp := range model.Imports {
		lang := unitLang[imp.Unit]
		kind, target := r.resolve(imp, lang)

		ri := ResolvedImport{
			Unit:   imp.Unit,
			Raw:    imp.Raw,
			Line:   imp.Line,
			Kind:   kind,
			Target: target,
		}
		g.Resolved = append(g.Resolved, ri)

		switch kind {
		case KindInternal:
			from := moduleID(imp.Unit, lang)
			if from == target {
				continue // self-edges are dropped
			}
			e := Edge{From: from, To: target}
			if edgeSeen[e] {
				continue
			}
			edgeSeen[e] = true
			g.Edges = append(g.Edges, e)
		case KindExternal:
			externalCounts[target]++
		case KindUnresolved:
			g.Unresolved = append(g.Unresolved, ri)
		}
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})

	for _, e := range g.Edges {
		g.adjacency[e.From] = append(g.adjacency[e.From], e.To)
		g.FanOut[e.From]++
		g.FanIn[e.To]++
	}

	g.External = rankExternal(externalCounts)
	g.Declared = parseManifests(raw)
	g.Cycles = g.detectCycles()
	g.Coupling = couplingLevel(g)
	g.Hub = hubModule(g)

	observability.GraphNodes.Set(float64(len(g.Nodes)))
	observability.GraphEdges.Set(float64(len(g.Edges)))

	return g
}

func rankExternal(counts map[string]int) []ExternalPackage {
	out := make([]ExternalPackage, 0, len(counts))
	for _, name := range util.SortedStringKeys(counts) {
		out = append(out, ExternalPackage{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
