package hierarchy

import (
	"math"
	"sort"

	"github.com/TrevorS/hierarchy/graph"
)

// BPT is a canonical binary partition tree: the hierarchy of a graph's
// minimum spanning forest under Kruskal's merge order.
type BPT struct {
	Tree *Tree

	// Altitudes holds one value per node: 0 for leaves, the weight of the
	// merging edge for internal nodes.
	Altitudes []float64

	// MSTEdges holds, for each internal node in creation order, the index of
	// the graph edge that created it. Together they form a minimum spanning tree.
	MSTEdges []int
}

// BPTCanonical builds the canonical binary partition tree of g valued by
// edgeWeights. The result has 2·NumVertices-1 nodes.
//
// Edges are processed by increasing weight; ties are broken by increasing
// edge index, which fixes the tree shape when several merges have the same
// weight. Internal nodes are numbered in creation order starting at
// NumVertices, so every parent has a larger index than its children.
//
// A disconnected graph cannot be merged into a single root and is reported
// as an error wrapping ErrContractViolation.
func BPTCanonical(g graph.Graph, edgeWeights []float64) (*BPT, error) {
	n := g.NumVertices()
	if n == 0 {
		return nil, contractf("graph has no vertex")
	}

	edges, order, err := sortEdges(g, edgeWeights)
	if err != nil {
		return nil, err
	}

	numNodes := 2*n - 1
	parents := make([]int, numNodes)
	altitudes := make([]float64, numNodes)
	mst := make([]int, 0, n-1)

	uf := NewUnionFind(n)
	next := n
	for _, ei := range order {
		if next == numNodes {
			break
		}
		e := edges[ei]
		rs := uf.Find(e.Source)
		rt := uf.Find(e.Target)
		if rs == rt {
			continue
		}

		parents[uf.repr[rs]] = next
		parents[uf.repr[rt]] = next
		altitudes[next] = edgeWeights[ei]

		uf.SetRepresentative(uf.Union(rs, rt), next)
		mst = append(mst, ei)
		next++
	}

	if next != numNodes {
		return nil, contractf("graph is disconnected: %d components remain after processing all edges", numNodes-next+1)
	}
	parents[numNodes-1] = numNodes - 1

	tree, err := NewTree(parents)
	if err != nil {
		return nil, err
	}
	return &BPT{Tree: tree, Altitudes: altitudes, MSTEdges: mst}, nil
}

// sortEdges indexes the edges of g and returns their indices sorted by
// increasing weight, ties broken by increasing index.
func sortEdges(g graph.Graph, edgeWeights []float64) ([]graph.Edge, []int, error) {
	m := g.NumEdges()
	if len(edgeWeights) != m {
		return nil, nil, contractf("edge weights length %d does not match %d edges", len(edgeWeights), m)
	}

	edges := make([]graph.Edge, m)
	for e := range g.Edges() {
		if e.Index < 0 || e.Index >= m {
			return nil, nil, contractf("edge index %d outside [0, %d)", e.Index, m)
		}
		if math.IsNaN(edgeWeights[e.Index]) {
			return nil, nil, contractf("edge %d has NaN weight", e.Index)
		}
		edges[e.Index] = e
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return edgeWeights[order[i]] < edgeWeights[order[j]]
	})
	return edges, order, nil
}
