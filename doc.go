// Package hierarchy builds and analyzes hierarchical partitions of
// edge-weighted graphs.
//
// A hierarchy is a [Tree] whose leaves are the vertices of a graph and whose
// internal nodes are nested regions, together with a per-node altitude that
// is non-decreasing from the leaves to the root. Nodes are numbered so that
// every parent has a larger index than its children: ascending index order is
// a valid leaves-to-root traversal.
//
// Basic usage:
//
//	g, _ := graph.NewGrid(3, 3)
//	bpt, err := hierarchy.BPTCanonical(g, edgeWeights)
//	area, _ := hierarchy.Area(bpt.Tree, nil)
//
//	explorer, _ := hierarchy.NewHorizontalCutExplorer(bpt.Tree, bpt.Altitudes)
//	cut, _ := explorer.CutAtRegionCount(3)
//	labels, _ := cut.LabelLeaves(bpt.Tree)
//
// # Attributes
//
// Attribute functions ([Area], [Volume], [Depth], [FrontierLength],
// [PerimeterLength], [Compactness], [MeanWeights], [GaussianRegionModel], ...)
// are pure: they read the tree and return a fresh slice indexed by node.
// Several attributes can be computed concurrently with [ComputeAttributes].
//
// # Region adjacency graphs
//
// When the leaf graph is a [graph.RegionAdjacencyGraph], results indexed by
// leaf or by leaf-graph edge can be lifted to the pre-graph with
// [BackProjectVertices] and [BackProjectEdges].
//
// # Errors
//
// Every returned error wraps one of [ErrContractViolation], [ErrNoSuchCut]
// or [ErrUnsupportedConfiguration].
package hierarchy
