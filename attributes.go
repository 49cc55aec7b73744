package hierarchy

import "slices"

// Area returns the area of every node: leafArea for leaves (1 if nil) and
// the sum of the children's areas for internal nodes.
func Area(t *Tree, leafArea []float64) ([]float64, error) {
	if leafArea == nil {
		leafArea = make([]float64, t.NumLeaves())
		for i := range leafArea {
			leafArea[i] = 1
		}
	}
	return AccumulateSequential(t, leafArea, 1, AccumulatorSum)
}

// Volume returns the volume of every node:
//
//	volume(n) = Σ_{c child of n} area(c)·(altitude(n) - altitude(c)) + volume(c)
//
// Leaves have volume 0. area may be nil, in which case the default Area is used.
func Volume(t *Tree, altitudes, area []float64) ([]float64, error) {
	if err := checkNodeLength(t, "altitudes", len(altitudes)); err != nil {
		return nil, err
	}
	if area == nil {
		area, _ = Area(t, nil)
	} else if err := checkNodeLength(t, "area", len(area)); err != nil {
		return nil, err
	}

	volume := make([]float64, t.NumNodes())
	root := t.Root()
	for n := 0; n < root; n++ {
		p := t.parents[n]
		volume[p] += area[n]*(altitudes[p]-altitudes[n]) + volume[n]
	}
	return volume, nil
}

// Depth returns the edge distance from the root of every node.
func Depth(t *Tree) []int {
	return slices.Clone(t.Depths())
}

// RegularAltitudes returns altitudes derived from the topology only:
// (maxDepth - depth(n)) / maxDepth for internal nodes, 0 for leaves.
// The root gets 1 and altitudes strictly increase towards the root.
func RegularAltitudes(t *Tree) []float64 {
	depths := t.Depths()
	maxDepth := 0
	for _, d := range depths {
		maxDepth = max(maxDepth, d)
	}

	result := make([]float64, t.NumNodes())
	if maxDepth == 0 {
		return result
	}
	for n := t.NumLeaves(); n < t.NumNodes(); n++ {
		result[n] = float64(maxDepth-depths[n]) / float64(maxDepth)
	}
	return result
}

// Sibling returns, for every node, the child of its parent found skip
// positions after it in the parent's child list, cyclically. skip = 1 gives
// the next sibling; in a binary tree it gives the other child. The root maps
// to itself.
func Sibling(t *Tree, skip int) []int {
	result := make([]int, t.NumNodes())
	root := t.Root()
	result[root] = root
	for p := t.NumLeaves(); p < t.NumNodes(); p++ {
		children := t.Children(p)
		k := len(children)
		for i, c := range children {
			result[c] = children[((i+skip)%k+k)%k]
		}
	}
	return result
}

// VertexList returns, for every node, the leaves of its subtree. Memory is
// quadratic in the worst case; use it for checks, not production.
func VertexList(t *Tree) [][]int {
	result := make([][]int, t.NumNodes())
	for n := 0; n < t.NumLeaves(); n++ {
		result[n] = []int{n}
	}
	for n := t.NumLeaves(); n < t.NumNodes(); n++ {
		var list []int
		for _, c := range t.Children(n) {
			list = append(list, result[c]...)
		}
		result[n] = list
	}
	return result
}
