// Package graph provides the undirected graphs a hierarchy is built on.
//
// The hierarchy package only needs the capabilities declared by the [Graph],
// [GridGraph], [BorderedGraph] and [RegionAdjacencyGraph] interfaces. This
// package also ships concrete implementations of them:
//
//	g, _ := graph.NewGrid(3, 3)           // 4-adjacency grid, 12 edges
//	g8, _ := graph.NewGridWithAdjacency(graph.FullAdjacency, 3, 3) // 8-adjacency, 20 edges
//	rag, _ := graph.NewRAG(g, labels)      // quotient graph of a labelling
//	u, w, ids := graph.FromGonum(gonumG)   // import a gonum weighted graph
//
// Edges are identified by a dense index in [0, NumEdges). Edge indices are
// stable: they follow insertion order, which for grids is raster order of the
// lower endpoint, then increasing index of the upper endpoint.
package graph
