package graph

import "iter"

// InvalidIndex marks an absent vertex or edge correspondence.
const InvalidIndex = -1

// Edge is an undirected edge with its index in the owning graph.
// When produced by OutEdges(v), Source is v and Target is the other endpoint.
type Edge struct {
	Source int
	Target int
	Index  int
}

// Graph is the minimal capability a hierarchy needs from its leaf graph.
type Graph interface {
	NumVertices() int
	NumEdges() int
	// Edges yields every edge once, in increasing index order.
	Edges() iter.Seq[Edge]
	// OutEdges yields the edges incident to v, oriented away from v.
	OutEdges(v int) iter.Seq[Edge]
	Degree(v int) int
}

// GridGraph is a graph whose vertices are the raster-ordered cells of a
// multi-dimensional grid.
type GridGraph interface {
	Graph
	Shape() []int
}

// BorderedGraph reports, for each vertex, the degree it would have if the
// graph had no outer border (4 for every pixel of a 4-adjacency image).
type BorderedGraph interface {
	Graph
	BorderDegree(v int) int
}

// RegionAdjacencyGraph is a quotient graph over a labelled pre-graph.
type RegionAdjacencyGraph interface {
	Graph
	PreGraph() Graph
	// VertexLabel maps a pre-graph vertex to its region.
	VertexLabel(v int) int
	// EdgeLabel maps a pre-graph edge to the region edge it induces, or
	// InvalidIndex when both endpoints lie in the same region.
	EdgeLabel(e int) int
}
