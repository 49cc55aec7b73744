package graph

import (
	"slices"

	gonumgraph "gonum.org/v1/gonum/graph"
)

// FromGonum converts a gonum weighted undirected graph into a UGraph and its
// edge weights. gonum node IDs are mapped to dense vertex indices in
// increasing ID order; ids[v] is the gonum ID of vertex v. Edges are numbered
// by lower endpoint, then by upper endpoint. Self-loops are dropped.
func FromGonum(g gonumgraph.WeightedUndirected) (u *UGraph, weights []float64, ids []int64) {
	nodes := gonumgraph.NodesOf(g.Nodes())
	ids = make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)

	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	u = NewUGraph(len(ids))
	var upper []int
	for v, id := range ids {
		upper = upper[:0]
		for _, n := range gonumgraph.NodesOf(g.From(id)) {
			if w := index[n.ID()]; w > v {
				upper = append(upper, w)
			}
		}
		slices.Sort(upper)
		for _, w := range upper {
			u.AddEdge(v, w)
			weights = append(weights, g.WeightedEdge(id, ids[w]).Weight())
		}
	}
	return u, weights, ids
}
