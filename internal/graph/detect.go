package graph

import (
	"sort"
	"strings"
)

// detectCycles runs a DFS over the adjacency list and records every
// elementary cycle it closes. Iteration order is sorted so repeated
// runs over the same graph report cycles in the same order, and each
// cycle is canonicalized by rotating its smallest node to the front
// before dedup.
func (g *Graph) detectCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	for _, node := range g.Nodes {
		if !visited[node] {
			g.findCycles(node, visited, onStack, []string{}, &cycles)
		}
	}

	seen := make(map[string]bool, len(cycles))
	out := cycles[:0]
	for _, c := range cycles {
		canon := rotateToMin(c)
		key := strings.Join(canon, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canon)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Join(out[i], "\x00") < strings.Join(out[j], "\x00")
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func (g *Graph) findCycles(curr string, visited, onStack map[string]bool, path []string, cycles *[][]string) {
	visited[curr] = true
	onStack[curr] = true
	path = append(path, curr)

	next := append([]string(nil), g.adjacency[curr]...)
	sort.Strings(next)
	for _, n := range next {
		if onStack[n] {
			cycleStart := -1
			for i, mod := range path {
				if mod == n {
					cycleStart = i
					break
				}
			}
			if cycleStart != -1 {
				cycle := make([]string, len(path)-cycleStart)
				copy(cycle, path[cycleStart:])
				*cycles = append(*cycles, cycle)
			}
		} else if !visited[n] {
			g.findCycles(n, visited, onStack, path, cycles)
		}
	}

	onStack[curr] = false
}

func rotateToMin(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	min := 0
	for i, m := range cycle {
		if m < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}
