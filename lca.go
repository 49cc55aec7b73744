package hierarchy

import (
	"math/bits"

	"github.com/TrevorS/hierarchy/graph"
)

// LCAIndex answers lowest common ancestor queries in O(log n) after an
// O(n log n) binary lifting preprocessing. Prefer LCAMap when all queries
// are known up front.
type LCAIndex struct {
	tree  *Tree
	depth []int
	// up[v*levels+k] is the 2^k-th ancestor of v, saturating at the root.
	up     []int
	levels int
}

// NewLCAIndex preprocesses t for LCA queries.
func NewLCAIndex(t *Tree) *LCAIndex {
	n := t.NumNodes()
	depth := t.Depths()

	maxDepth := 0
	for _, d := range depth {
		maxDepth = max(maxDepth, d)
	}
	levels := max(bits.Len(uint(maxDepth)), 1)

	up := make([]int, n*levels)
	// Ancestors have larger indices, so walking down from the root finds
	// every up[parent] row complete.
	for v := n - 1; v >= 0; v-- {
		row := v * levels
		up[row] = t.Parent(v)
		for k := 1; k < levels; k++ {
			mid := up[row+k-1]
			up[row+k] = up[mid*levels+k-1]
		}
	}

	return &LCAIndex{tree: t, depth: depth, up: up, levels: levels}
}

// Query returns the lowest common ancestor of a and b.
func (x *LCAIndex) Query(a, b int) int {
	if x.depth[a] < x.depth[b] {
		a, b = b, a
	}

	// Lift a to the depth of b.
	diff := x.depth[a] - x.depth[b]
	for k := 0; diff > 0; k++ {
		if diff&1 == 1 {
			a = x.up[a*x.levels+k]
		}
		diff >>= 1
	}
	if a == b {
		return a
	}

	for k := x.levels - 1; k >= 0; k-- {
		pa := x.up[a*x.levels+k]
		pb := x.up[b*x.levels+k]
		if pa != pb {
			a, b = pa, pb
		}
	}
	return x.up[a*x.levels]
}

// Map returns, for each edge of the leaf graph g, the LCA of its endpoints.
func (x *LCAIndex) Map(g graph.Graph) ([]int, error) {
	if err := checkLeafGraph(x.tree, g); err != nil {
		return nil, err
	}
	result := make([]int, g.NumEdges())
	for e := range g.Edges() {
		result[e.Index] = x.Query(e.Source, e.Target)
	}
	return result, nil
}

// LCAMap returns, for each edge of the leaf graph g, the lowest common
// ancestor of its endpoints in t. It runs Tarjan's offline algorithm: one
// depth-first pass over the tree with a union-find over nodes, answering
// every edge when its second endpoint is reached.
func LCAMap(t *Tree, g graph.Graph) ([]int, error) {
	if err := checkLeafGraph(t, g); err != nil {
		return nil, err
	}

	n := t.NumNodes()
	result := make([]int, g.NumEdges())
	uf := NewUnionFind(n)
	visited := make([]bool, t.NumLeaves())
	nextChild := make([]int, n)

	// uf representatives hold the Tarjan "ancestor" of each set.
	stack := []int{t.Root()}
	for len(stack) > 0 {
		u := stack[len(stack)-1]

		if nextChild[u] == 0 && t.IsLeaf(u) {
			visited[u] = true
			for e := range g.OutEdges(u) {
				if visited[e.Target] {
					result[e.Index] = uf.Representative(e.Target)
				}
			}
		}

		if nextChild[u] < t.NumChildren(u) {
			stack = append(stack, t.Child(nextChild[u], u))
			nextChild[u]++
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			p := stack[len(stack)-1]
			uf.SetRepresentative(uf.Union(p, u), p)
		}
	}
	return result, nil
}

// checkLeafGraph verifies that g has one vertex per leaf of t.
func checkLeafGraph(t *Tree, g graph.Graph) error {
	if g == nil {
		return unsupportedf("a leaf graph is required")
	}
	if g.NumVertices() != t.NumLeaves() {
		return contractf("leaf graph has %d vertices, tree has %d leaves", g.NumVertices(), t.NumLeaves())
	}
	return nil
}
