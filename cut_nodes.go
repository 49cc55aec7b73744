package hierarchy

import (
	"slices"

	"github.com/TrevorS/hierarchy/graph"
)

// HorizontalCutNodes is an antichain of tree nodes covering every leaf
// exactly once: a flat partition of the leaves.
type HorizontalCutNodes struct {
	// Nodes lists the cut nodes in increasing order.
	Nodes []int
	// Altitude is the threshold that produced the cut.
	Altitude float64
}

// NumRegions returns the number of regions of the cut.
func (c *HorizontalCutNodes) NumRegions() int { return len(c.Nodes) }

// leafCutAncestors returns, for every node at or below the cut, the position
// in c.Nodes of its cut ancestor-or-self; nodes above the cut get -1. It
// verifies that c is an antichain covering all leaves of t.
func (c *HorizontalCutNodes) leafCutAncestors(t *Tree) ([]int, error) {
	n := t.NumNodes()
	anc := make([]int, n)
	for i := range anc {
		anc[i] = -1
	}
	for i, node := range c.Nodes {
		if node < 0 || node >= n {
			return nil, contractf("cut node %d outside [0, %d)", node, n)
		}
		if anc[node] != -1 {
			return nil, contractf("cut node %d listed twice", node)
		}
		anc[node] = i
	}

	root := t.Root()
	for v := root - 1; v >= 0; v-- {
		fromParent := anc[t.parents[v]]
		switch {
		case anc[v] != -1 && fromParent != -1:
			return nil, contractf("cut nodes %d and %d are not an antichain", c.Nodes[fromParent], v)
		case anc[v] == -1:
			anc[v] = fromParent
		}
	}
	for l := 0; l < t.NumLeaves(); l++ {
		if anc[l] == -1 {
			return nil, contractf("leaf %d is not covered by the cut", l)
		}
	}
	return anc, nil
}

// ReconstructLeafData gives every leaf the value of its cut ancestor.
// values holds one value per node, typically the altitudes.
func (c *HorizontalCutNodes) ReconstructLeafData(t *Tree, values []float64) ([]float64, error) {
	if err := checkNodeLength(t, "values", len(values)); err != nil {
		return nil, err
	}
	anc, err := c.leafCutAncestors(t)
	if err != nil {
		return nil, err
	}
	result := make([]float64, t.NumLeaves())
	for l := range result {
		result[l] = values[c.Nodes[anc[l]]]
	}
	return result, nil
}

// LabelLeaves gives every leaf a region id in [0, NumRegions). Ids are
// assigned in increasing order of the first leaf of each region.
func (c *HorizontalCutNodes) LabelLeaves(t *Tree) ([]int, error) {
	anc, err := c.leafCutAncestors(t)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(c.Nodes))
	for i := range ids {
		ids[i] = -1
	}
	labels := make([]int, t.NumLeaves())
	next := 0
	for l := range labels {
		if ids[anc[l]] == -1 {
			ids[anc[l]] = next
			next++
		}
		labels[l] = ids[anc[l]]
	}
	return labels, nil
}

// GraphCut reports, for every edge of the leaf graph g, whether its
// endpoints lie in different regions of the cut.
func (c *HorizontalCutNodes) GraphCut(t *Tree, g graph.Graph) ([]bool, error) {
	if err := checkLeafGraph(t, g); err != nil {
		return nil, err
	}
	anc, err := c.leafCutAncestors(t)
	if err != nil {
		return nil, err
	}
	result := make([]bool, g.NumEdges())
	for e := range g.Edges() {
		result[e.Index] = anc[e.Source] != anc[e.Target]
	}
	return result, nil
}

// LabelVertices is LabelLeaves expressed on the vertices of the original
// graph: when leafGraph is a region adjacency graph, labels are lifted to
// its pre-graph.
func (c *HorizontalCutNodes) LabelVertices(t *Tree, leafGraph graph.Graph) ([]int, error) {
	labels, err := c.LabelLeaves(t)
	if err != nil {
		return nil, err
	}
	if rag, ok := leafGraph.(graph.RegionAdjacencyGraph); ok {
		return BackProjectVertices(rag, labels)
	}
	return labels, nil
}

// ReconstructVertexData is ReconstructLeafData lifted through a region
// adjacency leaf graph to its pre-graph.
func (c *HorizontalCutNodes) ReconstructVertexData(t *Tree, values []float64, leafGraph graph.Graph) ([]float64, error) {
	data, err := c.ReconstructLeafData(t, values)
	if err != nil {
		return nil, err
	}
	if rag, ok := leafGraph.(graph.RegionAdjacencyGraph); ok {
		return BackProjectVertices(rag, data)
	}
	return data, nil
}

// GraphCutEdges is GraphCut lifted through a region adjacency leaf graph to
// its pre-graph. Pre-graph edges inside a region are never cut.
func (c *HorizontalCutNodes) GraphCutEdges(t *Tree, leafGraph graph.Graph) ([]bool, error) {
	cut, err := c.GraphCut(t, leafGraph)
	if err != nil {
		return nil, err
	}
	if rag, ok := leafGraph.(graph.RegionAdjacencyGraph); ok {
		return BackProjectEdges(rag, cut, false)
	}
	return cut, nil
}

// Equal reports whether two cuts hold the same nodes and altitude.
func (c *HorizontalCutNodes) Equal(other *HorizontalCutNodes) bool {
	return c.Altitude == other.Altitude && slices.Equal(c.Nodes, other.Nodes)
}
