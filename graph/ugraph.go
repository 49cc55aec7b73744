package graph

import (
	"fmt"
	"iter"
)

// UGraph is an explicit undirected graph stored as an edge list plus
// per-vertex incidence lists. Self-loops and parallel edges are allowed.
type UGraph struct {
	edges []Edge
	out   [][]int
}

// NewUGraph creates a graph with numVertices vertices and no edges.
func NewUGraph(numVertices int) *UGraph {
	return &UGraph{out: make([][]int, numVertices)}
}

// NewUGraphFromEdges creates a graph with numVertices vertices and the given
// edges, in order. It returns an error if an endpoint is out of range.
func NewUGraphFromEdges(numVertices int, edges [][2]int) (*UGraph, error) {
	if numVertices < 0 {
		return nil, fmt.Errorf("graph: numVertices must be >= 0, got %d", numVertices)
	}
	g := NewUGraph(numVertices)
	for i, e := range edges {
		if e[0] < 0 || e[0] >= numVertices || e[1] < 0 || e[1] >= numVertices {
			return nil, fmt.Errorf("graph: edge %d (%d, %d) has an endpoint outside [0, %d)", i, e[0], e[1], numVertices)
		}
		g.AddEdge(e[0], e[1])
	}
	return g, nil
}

// AddVertex appends a vertex and returns its index.
func (g *UGraph) AddVertex() int {
	g.out = append(g.out, nil)
	return len(g.out) - 1
}

// AddEdge appends the edge {s, t} and returns its index.
// It panics if s or t is not a vertex of g.
func (g *UGraph) AddEdge(s, t int) int {
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{Source: s, Target: t, Index: idx})
	g.out[s] = append(g.out[s], idx)
	if t != s {
		g.out[t] = append(g.out[t], idx)
	}
	return idx
}

func (g *UGraph) NumVertices() int { return len(g.out) }

func (g *UGraph) NumEdges() int { return len(g.edges) }

// Edge returns the edge with index i.
func (g *UGraph) Edge(i int) Edge { return g.edges[i] }

func (g *UGraph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, e := range g.edges {
			if !yield(e) {
				return
			}
		}
	}
}

func (g *UGraph) OutEdges(v int) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, idx := range g.out[v] {
			e := g.edges[idx]
			if e.Source != v {
				e.Source, e.Target = e.Target, e.Source
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (g *UGraph) Degree(v int) int { return len(g.out[v]) }
