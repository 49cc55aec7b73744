package hierarchy

import (
	"math"
	"slices"

	"github.com/TrevorS/hierarchy/graph"
)

// LabelisationWatershed returns the watershed cut of an edge-weighted graph
// as a vertex labelling.
//
// Each minimum of the edge weights, a connected set of edges of equal weight
// k whose neighbouring edges all weigh more than k, seeds one catchment
// basin. Basins are numbered from 1 in order of their lowest vertex and grow
// along a minimum spanning forest rooted in the minima, edges taken by
// increasing weight then index. An isolated vertex is a basin of its own.
func LabelisationWatershed(g graph.Graph, edgeWeights []float64) ([]int, error) {
	edges, order, err := sortEdges(g, edgeWeights)
	if err != nil {
		return nil, err
	}

	n := g.NumVertices()
	lowest := make([]float64, n)
	for v := range lowest {
		lowest[v] = math.Inf(1)
	}
	for _, e := range edges {
		w := edgeWeights[e.Index]
		lowest[e.Source] = min(lowest[e.Source], w)
		lowest[e.Target] = min(lowest[e.Target], w)
	}

	// Plateaus of lowest incident edges.
	uf := NewUnionFind(n)
	for _, e := range edges {
		w := edgeWeights[e.Index]
		if w == lowest[e.Source] && w == lowest[e.Target] {
			uf.Union(e.Source, e.Target)
		}
	}
	// A plateau with an edge of its own weight going down is not a minimum.
	leaks := make([]bool, n)
	for _, e := range edges {
		w := edgeWeights[e.Index]
		ls, lt := lowest[e.Source], lowest[e.Target]
		if w == ls && lt < w {
			leaks[uf.Find(e.Source)] = true
		}
		if w == lt && ls < w {
			leaks[uf.Find(e.Target)] = true
		}
	}

	seeds := make([]int, n)
	basin := make([]int, n)
	next := 0
	for v := range n {
		r := uf.Find(v)
		if leaks[r] {
			continue
		}
		if basin[r] == 0 {
			next++
			basin[r] = next
		}
		seeds[v] = basin[r]
	}
	return floodSeeds(edges, order, seeds, 0), nil
}

// LabelisationSeededWatershed extends a partial vertex labelling to a
// watershed cut. seeds holds one label per vertex, background marking the
// unlabelled ones. Edges are taken by increasing weight then index and join
// two components unless both are already labelled, so every labelled
// component keeps its seed label and grows into the background. Vertices of
// a connected component with no seed keep the background label.
func LabelisationSeededWatershed(g graph.Graph, edgeWeights []float64, seeds []int, background int) ([]int, error) {
	if len(seeds) != g.NumVertices() {
		return nil, contractf("seeds length %d does not match %d vertices", len(seeds), g.NumVertices())
	}
	edges, order, err := sortEdges(g, edgeWeights)
	if err != nil {
		return nil, err
	}
	return floodSeeds(edges, order, seeds, background), nil
}

func floodSeeds(edges []graph.Edge, order []int, seeds []int, background int) []int {
	n := len(seeds)
	uf := NewUnionFind(n)
	label := slices.Clone(seeds)
	for _, ei := range order {
		e := edges[ei]
		rs, rt := uf.Find(e.Source), uf.Find(e.Target)
		if rs == rt {
			continue
		}
		ls, lt := label[rs], label[rt]
		if ls != background && lt != background {
			continue
		}
		r := uf.Union(rs, rt)
		if ls == background {
			label[r] = lt
		} else {
			label[r] = ls
		}
	}

	out := make([]int, n)
	for v := range out {
		out[v] = label[uf.Find(v)]
	}
	return out
}
