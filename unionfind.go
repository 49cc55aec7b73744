package hierarchy

// UnionFind implements a disjoint-set forest with path compression and
// union by size. Each set also records a representative tree node, the node
// that currently stands for the whole set in a hierarchy under construction.
type UnionFind struct {
	parent []int
	size   []int
	repr   []int
}

// NewUnionFind creates a UnionFind for n singleton sets; the representative
// of element i is i.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	size := make([]int, n)
	repr := make([]int, n)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
		size[i] = 1
		repr[i] = i
	}
	return &UnionFind{
		parent: parent,
		size:   size,
		repr:   repr,
	}
}

// Find returns the root of the set containing x, with path compression.
func (uf *UnionFind) Find(x int) int {
	// Walk to the root.
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	// Path compression: point all nodes along the path directly to root.
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Union merges the sets containing x and y by attaching the smaller tree
// under the larger. Returns the new root. The representative of the merged
// set is left unspecified; callers set it with SetRepresentative.
func (uf *UnionFind) Union(x, y int) int {
	rootX := uf.Find(x)
	rootY := uf.Find(y)
	if rootX == rootY {
		return rootX
	}

	// Attach smaller to larger.
	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	return rootX
}

// Representative returns the tree node standing for the set containing x.
func (uf *UnionFind) Representative(x int) int {
	return uf.repr[uf.Find(x)]
}

// SetRepresentative records node as the representative of x's set.
func (uf *UnionFind) SetRepresentative(x, node int) {
	uf.repr[uf.Find(x)] = node
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}
