package hierarchy

import (
	"math"
	"slices"
	"sort"
)

// HorizontalCutExplorer indexes the horizontal cuts of a valued hierarchy.
//
// Cut i is the partition obtained by thresholding at levels[i]: it keeps the
// highest nodes whose altitude does not exceed the threshold. Levels are the
// distinct internal-node altitudes in decreasing order, plus the leaf level
// when leaves are strictly below every internal node. Cut 0 is the coarsest
// (the root alone); the number of regions never decreases with i. It grows
// strictly on binary trees, while removing a node with a single child adds
// no region.
//
// Construction sorts the internal nodes once, in O(n log n), and keeps only
// levels and region counts. Locating a cut is a binary search over the
// levels; materializing its nodes scans the tree in O(n).
//
// An explorer is immutable and safe for concurrent use.
type HorizontalCutExplorer struct {
	tree       *Tree
	altitudes  []float64
	levels     []float64
	numRegions []int
}

// NewHorizontalCutExplorer indexes the cuts of t valued by altitudes. It
// returns an error wrapping ErrContractViolation if altitudes has the wrong
// length, contains NaN, or decreases along a leaf-to-root path.
func NewHorizontalCutExplorer(t *Tree, altitudes []float64) (*HorizontalCutExplorer, error) {
	if err := checkNodeLength(t, "altitudes", len(altitudes)); err != nil {
		return nil, err
	}
	root := t.Root()
	for n := 0; n <= root; n++ {
		if math.IsNaN(altitudes[n]) {
			return nil, contractf("altitude of node %d is NaN", n)
		}
		if n != root && altitudes[n] > altitudes[t.parents[n]] {
			return nil, contractf("altitudes are not ultrametric: altitude(%d) = %g > altitude(parent %d) = %g",
				n, altitudes[n], t.parents[n], altitudes[t.parents[n]])
		}
	}

	internal := make([]int, 0, t.NumNodes()-t.NumLeaves())
	for n := t.NumLeaves(); n < t.NumNodes(); n++ {
		internal = append(internal, n)
	}
	sort.SliceStable(internal, func(i, j int) bool {
		return altitudes[internal[i]] > altitudes[internal[j]]
	})

	x := &HorizontalCutExplorer{tree: t, altitudes: slices.Clone(altitudes)}

	// Removing a node with k children above the threshold adds k-1 regions.
	regions := 1
	for i := 0; i < len(internal); {
		level := altitudes[internal[i]]
		x.levels = append(x.levels, level)
		x.numRegions = append(x.numRegions, regions)
		for ; i < len(internal) && altitudes[internal[i]] == level; i++ {
			regions += t.NumChildren(internal[i]) - 1
		}
	}

	leafLevel := math.Inf(-1)
	for n := 0; n < t.NumLeaves(); n++ {
		leafLevel = max(leafLevel, altitudes[n])
	}
	if len(x.levels) == 0 || leafLevel < x.levels[len(x.levels)-1] {
		x.levels = append(x.levels, leafLevel)
		x.numRegions = append(x.numRegions, regions)
	}

	return x, nil
}

// NumCuts returns the number of distinct cuts.
func (x *HorizontalCutExplorer) NumCuts() int { return len(x.levels) }

// Altitude returns the threshold of cut i.
func (x *HorizontalCutExplorer) Altitude(i int) float64 { return x.levels[i] }

// NumRegions returns the number of regions of cut i.
func (x *HorizontalCutExplorer) NumRegions(i int) int { return x.numRegions[i] }

// CutAtIndex materializes cut i, 0 being the coarsest, in O(n).
func (x *HorizontalCutExplorer) CutAtIndex(i int) (*HorizontalCutNodes, error) {
	if i < 0 || i >= len(x.levels) {
		return nil, noCutf("cut index %d outside [0, %d)", i, len(x.levels))
	}
	return x.materialize(x.levels[i]), nil
}

// CutAtAltitude returns the cut obtained by thresholding at threshold: for
// every leaf, its highest ancestor-or-self whose altitude is <= threshold.
// Leaves above the threshold are kept as singletons. The level is found in
// O(log levels) and the cut materialized in O(n). A NaN threshold is an
// error wrapping ErrContractViolation.
func (x *HorizontalCutExplorer) CutAtAltitude(threshold float64) (*HorizontalCutNodes, error) {
	if math.IsNaN(threshold) {
		return nil, contractf("cut threshold is NaN")
	}
	// Levels are decreasing: find the first one <= threshold.
	i := sort.Search(len(x.levels), func(i int) bool { return x.levels[i] <= threshold })
	if i < len(x.levels) {
		return x.materialize(x.levels[i]), nil
	}
	return x.materialize(threshold), nil
}

// CutAtRegionCount returns the coarsest cut with at least k regions.
// It returns an error wrapping ErrNoSuchCut if k < 1, k > NumLeaves, or no
// cut is that fine.
func (x *HorizontalCutExplorer) CutAtRegionCount(k int) (*HorizontalCutNodes, error) {
	if k < 1 || k > x.tree.NumLeaves() {
		return nil, noCutf("region count %d outside [1, %d]", k, x.tree.NumLeaves())
	}
	i := sort.SearchInts(x.numRegions, k)
	if i == len(x.numRegions) {
		return nil, noCutf("finest cut has %d regions, fewer than %d", x.numRegions[len(x.numRegions)-1], k)
	}
	return x.materialize(x.levels[i]), nil
}

// CutAtMostRegions returns the finest cut with at most k regions.
// It returns an error wrapping ErrNoSuchCut if k < 1.
func (x *HorizontalCutExplorer) CutAtMostRegions(k int) (*HorizontalCutNodes, error) {
	if k < 1 {
		return nil, noCutf("region count %d must be >= 1", k)
	}
	i := sort.SearchInts(x.numRegions, k+1) - 1
	return x.materialize(x.levels[i]), nil
}

// materialize lists, in increasing order, the nodes kept by thresholding at
// level: nodes not above the level (or leaves) whose parent is above it.
func (x *HorizontalCutExplorer) materialize(level float64) *HorizontalCutNodes {
	t := x.tree
	root := t.Root()
	var nodes []int
	for n := 0; n <= root; n++ {
		if x.altitudes[n] > level && !t.IsLeaf(n) {
			continue
		}
		if n == root || x.altitudes[t.parents[n]] > level {
			nodes = append(nodes, n)
		}
	}
	return &HorizontalCutNodes{Nodes: nodes, Altitude: level}
}
