package hierarchy

import "github.com/TrevorS/hierarchy/graph"

// BackProjectVertices lifts values indexed by region to the pre-graph
// vertices of rag: result[v] = values[VertexLabel(v)].
func BackProjectVertices[T any](rag graph.RegionAdjacencyGraph, values []T) ([]T, error) {
	if len(values) != rag.NumVertices() {
		return nil, contractf("vertex values length %d does not match %d regions", len(values), rag.NumVertices())
	}
	pre := rag.PreGraph()
	result := make([]T, pre.NumVertices())
	for v := range result {
		result[v] = values[rag.VertexLabel(v)]
	}
	return result, nil
}

// BackProjectEdges lifts values indexed by region edge to the pre-graph
// edges of rag. Pre-graph edges inside a region receive fill.
func BackProjectEdges[T any](rag graph.RegionAdjacencyGraph, values []T, fill T) ([]T, error) {
	if len(values) != rag.NumEdges() {
		return nil, contractf("edge values length %d does not match %d region edges", len(values), rag.NumEdges())
	}
	pre := rag.PreGraph()
	result := make([]T, pre.NumEdges())
	for e := range result {
		if re := rag.EdgeLabel(e); re != graph.InvalidIndex {
			result[e] = values[re]
		} else {
			result[e] = fill
		}
	}
	return result, nil
}
