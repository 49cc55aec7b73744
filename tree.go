package hierarchy

import (
	"iter"
	"slices"
	"sync"
)

// Traversal modes for LeavesToRoot and RootToLeaves.
const (
	IncludeLeaves = true
	ExcludeLeaves = false
)

// Tree is an immutable rooted tree in topological numbering: leaves occupy
// [0, NumLeaves), internal nodes [NumLeaves, NumNodes), every non-root node
// has a parent with a larger index and the root is NumNodes-1, its own parent.
//
// A Tree is safe for concurrent use.
type Tree struct {
	parents   []int
	numLeaves int

	// Children in CSR layout: children of n are childList[childStart[n]:childStart[n+1]],
	// in increasing index order.
	childStart []int
	childList  []int

	depthOnce sync.Once
	depths    []int
}

// NewTree builds a tree from a parent array. The array is copied.
// It returns an error wrapping ErrContractViolation if the root is not the
// last node, if some parent(n) <= n, or if the leaves (childless nodes) are
// not exactly a prefix of the node range.
func NewTree(parents []int) (*Tree, error) {
	n := len(parents)
	if n == 0 {
		return nil, contractf("tree must have at least one node")
	}
	root := n - 1
	if parents[root] != root {
		return nil, contractf("last node %d must be the root, got parent %d", root, parents[root])
	}

	counts := make([]int, n+1)
	for i := 0; i < root; i++ {
		p := parents[i]
		if p <= i || p >= n {
			return nil, contractf("parent(%d) = %d must lie in (%d, %d)", i, p, i, n)
		}
		counts[p+1]++
	}

	numLeaves := 0
	for numLeaves < n && counts[numLeaves+1] == 0 {
		numLeaves++
	}
	if numLeaves == n && n > 1 {
		return nil, contractf("tree has no internal node")
	}
	for i := numLeaves; i < n; i++ {
		if counts[i+1] == 0 {
			return nil, contractf("node %d has no child but is numbered after the first internal node %d", i, numLeaves)
		}
	}

	for i := 1; i <= n; i++ {
		counts[i] += counts[i-1]
	}
	childList := make([]int, root)
	fill := slices.Clone(counts[:n])
	for i := 0; i < root; i++ {
		p := parents[i]
		childList[fill[p]] = i
		fill[p]++
	}

	return &Tree{
		parents:    slices.Clone(parents),
		numLeaves:  numLeaves,
		childStart: counts,
		childList:  childList,
	}, nil
}

func (t *Tree) NumLeaves() int { return t.numLeaves }

func (t *Tree) NumNodes() int { return len(t.parents) }

func (t *Tree) Root() int { return len(t.parents) - 1 }

func (t *Tree) Parent(n int) int { return t.parents[n] }

// Parents returns a copy of the parent array.
func (t *Tree) Parents() []int { return slices.Clone(t.parents) }

func (t *Tree) IsLeaf(n int) bool { return n < t.numLeaves }

// Children returns the children of n in increasing order.
// The returned slice aliases the tree and must not be modified.
func (t *Tree) Children(n int) []int {
	return t.childList[t.childStart[n]:t.childStart[n+1]]
}

func (t *Tree) NumChildren(n int) int { return t.childStart[n+1] - t.childStart[n] }

// Child returns the i-th child of n.
func (t *Tree) Child(i, n int) int { return t.childList[t.childStart[n]+i] }

// Ancestors yields n, parent(n), ... up to and including the root.
func (t *Tree) Ancestors(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			if !yield(n) {
				return
			}
			p := t.parents[n]
			if p == n {
				return
			}
			n = p
		}
	}
}

// LeavesToRoot yields nodes in increasing index order, children before
// parents. With ExcludeLeaves only internal nodes are yielded.
func (t *Tree) LeavesToRoot(includeLeaves bool) iter.Seq[int] {
	start := 0
	if !includeLeaves {
		start = t.numLeaves
	}
	return func(yield func(int) bool) {
		for n := start; n < len(t.parents); n++ {
			if !yield(n) {
				return
			}
		}
	}
}

// RootToLeaves yields nodes in decreasing index order, parents before
// children. With ExcludeLeaves only internal nodes are yielded.
func (t *Tree) RootToLeaves(includeLeaves bool) iter.Seq[int] {
	stop := 0
	if !includeLeaves {
		stop = t.numLeaves
	}
	return func(yield func(int) bool) {
		for n := len(t.parents) - 1; n >= stop; n-- {
			if !yield(n) {
				return
			}
		}
	}
}

// Depths returns the edge distance from the root of every node. The result
// is computed once and shared; it must not be modified.
func (t *Tree) Depths() []int {
	t.depthOnce.Do(func() {
		depths := make([]int, len(t.parents))
		for n := len(t.parents) - 2; n >= 0; n-- {
			depths[n] = depths[t.parents[n]] + 1
		}
		t.depths = depths
	})
	return t.depths
}

// LowestCommonAncestor returns the deepest common ancestor of a and b by
// climbing from the deeper node. Each call costs O(depth); use an LCAIndex
// for many queries.
func (t *Tree) LowestCommonAncestor(a, b int) int {
	depths := t.Depths()
	for depths[a] > depths[b] {
		a = t.parents[a]
	}
	for depths[b] > depths[a] {
		b = t.parents[b]
	}
	for a != b {
		a = t.parents[a]
		b = t.parents[b]
	}
	return a
}
