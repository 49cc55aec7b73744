package hierarchy

import (
	"fmt"

	"github.com/TrevorS/hierarchy/graph"
)

// PerimeterPolicy selects how the perimeter of a single leaf is measured.
type PerimeterPolicy int

const (
	// PerimeterAuto uses the border degree when the leaf graph reports one
	// and is not a region adjacency graph, and PerimeterNoBorder otherwise.
	PerimeterAuto PerimeterPolicy = iota
	// PerimeterWithBorder counts the outer border: a leaf's perimeter is its
	// border degree. The leaf graph must implement graph.BorderedGraph.
	PerimeterWithBorder
	// PerimeterNoBorder ignores the outer border: a leaf's perimeter is the
	// total length of its incident edges.
	PerimeterNoBorder
)

func (p PerimeterPolicy) String() string {
	switch p {
	case PerimeterAuto:
		return "auto"
	case PerimeterWithBorder:
		return "border"
	case PerimeterNoBorder:
		return "no-border"
	default:
		return fmt.Sprintf("PerimeterPolicy(%d)", int(p))
	}
}

// ParsePerimeterPolicy parses the String form of a policy.
func ParsePerimeterPolicy(s string) (PerimeterPolicy, error) {
	switch s {
	case "", "auto":
		return PerimeterAuto, nil
	case "border":
		return PerimeterWithBorder, nil
	case "no-border":
		return PerimeterNoBorder, nil
	}
	return 0, unsupportedf("unknown perimeter policy %q", s)
}

// EdgeLengths returns the length of every edge of g: 1, except for region
// adjacency graphs where an edge is as long as the number of pre-graph edges
// it stands for.
func EdgeLengths(g graph.Graph) []float64 {
	lengths := make([]float64, g.NumEdges())
	rag, ok := g.(graph.RegionAdjacencyGraph)
	if !ok {
		for i := range lengths {
			lengths[i] = 1
		}
		return lengths
	}
	for e := range rag.PreGraph().Edges() {
		if re := rag.EdgeLabel(e.Index); re != graph.InvalidIndex {
			lengths[re]++
		}
	}
	return lengths
}

// VertexPerimeter returns the perimeter of every vertex of g under policy.
func VertexPerimeter(g graph.Graph, policy PerimeterPolicy) ([]float64, error) {
	n := g.NumVertices()
	perimeter := make([]float64, n)

	bordered, hasBorder := g.(graph.BorderedGraph)
	_, isRAG := g.(graph.RegionAdjacencyGraph)

	switch policy {
	case PerimeterAuto:
		if !hasBorder || isRAG {
			break
		}
		fallthrough
	case PerimeterWithBorder:
		if !hasBorder {
			return nil, unsupportedf("perimeter policy %s needs a graph reporting border degrees", policy)
		}
		for v := range perimeter {
			perimeter[v] = float64(bordered.BorderDegree(v))
		}
		return perimeter, nil
	case PerimeterNoBorder:
	default:
		return nil, unsupportedf("unknown perimeter policy %d", int(policy))
	}

	lengths := EdgeLengths(g)
	for v := range perimeter {
		for e := range g.OutEdges(v) {
			if e.Target != v {
				perimeter[v] += lengths[e.Index]
			}
		}
	}
	return perimeter, nil
}

// OuterBorderLength returns the length of the outer border of a bordered
// graph: the sum over vertices of border degree minus actual degree.
func OuterBorderLength(g graph.BorderedGraph) float64 {
	total := 0
	for v := 0; v < g.NumVertices(); v++ {
		total += g.BorderDegree(v) - g.Degree(v)
	}
	return float64(total)
}

// FrontierLength returns, for every node n, the total length of the
// leaf-graph edges whose endpoints have n as lowest common ancestor: the
// length of the frontier between the children of n. With includeOuterBorder
// and a bordered leaf graph, the root also receives the outer border length.
func FrontierLength(t *Tree, g graph.Graph, includeOuterBorder bool) ([]float64, error) {
	lca, err := LCAMap(t, g)
	if err != nil {
		return nil, err
	}
	lengths := EdgeLengths(g)
	result := make([]float64, t.NumNodes())
	for e, n := range lca {
		result[n] += lengths[e]
	}
	if includeOuterBorder {
		if bordered, ok := g.(graph.BorderedGraph); ok {
			result[t.Root()] += OuterBorderLength(bordered)
		}
	}
	return result, nil
}

// FrontierStrength returns, for every node n, the mean weight of the
// leaf-graph edges whose lowest common ancestor is n, or 0 if there are none.
//
// edgeWeights is indexed by leaf-graph edge. When the leaf graph is a region
// adjacency graph, edgeWeights may instead be indexed by pre-graph edge: the
// mean is then taken over the pre-graph edges between the regions.
func FrontierStrength(t *Tree, g graph.Graph, edgeWeights []float64) ([]float64, error) {
	lca, err := LCAMap(t, g)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, t.NumNodes())
	counts := make([]float64, t.NumNodes())

	switch rag, isRAG := g.(graph.RegionAdjacencyGraph); {
	case len(edgeWeights) == g.NumEdges():
		for e, n := range lca {
			sums[n] += edgeWeights[e]
			counts[n]++
		}
	case isRAG && len(edgeWeights) == rag.PreGraph().NumEdges():
		for e, w := range edgeWeights {
			if re := rag.EdgeLabel(e); re != graph.InvalidIndex {
				sums[lca[re]] += w
				counts[lca[re]]++
			}
		}
	default:
		return nil, contractf("edge weights length %d does not match %d leaf-graph edges", len(edgeWeights), g.NumEdges())
	}

	for n := range sums {
		if counts[n] > 0 {
			sums[n] /= counts[n]
		}
	}
	return sums, nil
}

// PerimeterLength returns the perimeter of every node: the leaf perimeter
// under policy for leaves, and for internal nodes
//
//	perimeter(n) = Σ_{c child of n} perimeter(c) - 2·frontierLength(n)
func PerimeterLength(t *Tree, g graph.Graph, policy PerimeterPolicy) ([]float64, error) {
	if err := checkLeafGraph(t, g); err != nil {
		return nil, err
	}
	leafPerimeter, err := VertexPerimeter(g, policy)
	if err != nil {
		return nil, err
	}
	frontier, err := FrontierLength(t, g, false)
	if err != nil {
		return nil, err
	}

	for n := range frontier {
		frontier[n] *= -2
	}
	return AccumulateAndCombineSequential(t, frontier, leafPerimeter, 1, AccumulatorSum, func(r, own float64) float64 { return r + own })
}

// Compactness returns the isoperimetric ratio area/perimeter² of every node,
// normalized by its maximum so the most compact node scores 1. On a regular
// grid every leaf scores 1. Nodes with a zero perimeter score 1.
func Compactness(t *Tree, area, perimeter []float64) ([]float64, error) {
	if err := checkNodeLength(t, "area", len(area)); err != nil {
		return nil, err
	}
	if err := checkNodeLength(t, "perimeter", len(perimeter)); err != nil {
		return nil, err
	}

	result := make([]float64, t.NumNodes())
	best := 0.0
	for n := range result {
		if perimeter[n] == 0 {
			continue
		}
		result[n] = area[n] / (perimeter[n] * perimeter[n])
		best = max(best, result[n])
	}
	for n := range result {
		switch {
		case perimeter[n] == 0:
			result[n] = 1
		case best > 0:
			result[n] /= best
		}
	}
	return result, nil
}
