package graph

import (
	"fmt"
	"iter"
	"slices"
)

// Adjacency selects which cells of a grid are neighbours.
type Adjacency int

const (
	// AxisAdjacency links cells one step apart along a single axis:
	// 4-adjacency in 2D, 6-adjacency in 3D.
	AxisAdjacency Adjacency = iota
	// FullAdjacency links cells whose coordinates all differ by at most one:
	// 8-adjacency in 2D, 26-adjacency in 3D.
	FullAdjacency
)

func (a Adjacency) String() string {
	switch a {
	case AxisAdjacency:
		return "axis"
	case FullAdjacency:
		return "full"
	}
	return fmt.Sprintf("Adjacency(%d)", int(a))
}

// Grid is an n-dimensional grid graph. Vertices are numbered in raster order
// (last axis fastest). The grid is immutable once built.
type Grid struct {
	g       *UGraph
	adj     Adjacency
	shape   []int
	strides []int
}

// NewGrid builds the axis-adjacency grid graph of the given shape.
func NewGrid(shape ...int) (*Grid, error) {
	return NewGridWithAdjacency(AxisAdjacency, shape...)
}

// NewGridWithAdjacency builds the grid graph of the given shape and
// neighbourhood. Each vertex v gets its edges to higher-numbered neighbours
// in increasing neighbour order, so out-edge lists are sorted by target.
func NewGridWithAdjacency(adj Adjacency, shape ...int) (*Grid, error) {
	if adj != AxisAdjacency && adj != FullAdjacency {
		return nil, fmt.Errorf("graph: unknown adjacency %v", adj)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("graph: grid shape must have at least one dimension")
	}
	n := 1
	for i, s := range shape {
		if s < 1 {
			return nil, fmt.Errorf("graph: grid dimension %d must be >= 1, got %d", i, s)
		}
		n *= s
	}

	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	g := &Grid{g: NewUGraph(n), adj: adj, shape: slices.Clone(shape), strides: strides}
	offsets := forwardOffsets(len(shape), adj)
	coords := make([]int, len(shape))
	for v := 0; v < n; v++ {
	next:
		for _, off := range offsets {
			w := v
			for d, o := range off {
				c := coords[d] + o
				if c < 0 || c >= shape[d] {
					continue next
				}
				w += o * strides[d]
			}
			g.g.AddEdge(v, w)
		}
		for d := len(shape) - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < shape[d] {
				break
			}
			coords[d] = 0
		}
	}
	return g, nil
}

// forwardOffsets lists the neighbour offsets whose first non-zero coordinate
// is positive, in lexicographic order. Those are exactly the neighbours with
// a higher raster index, sorted by that index.
func forwardOffsets(dims int, adj Adjacency) [][]int {
	var out [][]int
	off := make([]int, dims)
	for i := range off {
		off[i] = -1
	}
	for {
		first, nonZero := 0, 0
		for _, o := range off {
			if o != 0 {
				if nonZero == 0 {
					first = o
				}
				nonZero++
			}
		}
		if first > 0 && (adj == FullAdjacency || nonZero == 1) {
			out = append(out, slices.Clone(off))
		}

		d := dims - 1
		for ; d >= 0; d-- {
			if off[d] < 1 {
				off[d]++
				break
			}
			off[d] = -1
		}
		if d < 0 {
			return out
		}
	}
}

func (g *Grid) NumVertices() int { return g.g.NumVertices() }

func (g *Grid) NumEdges() int { return g.g.NumEdges() }

// Edge returns the edge with index i.
func (g *Grid) Edge(i int) Edge { return g.g.Edge(i) }

func (g *Grid) Edges() iter.Seq[Edge] { return g.g.Edges() }

func (g *Grid) OutEdges(v int) iter.Seq[Edge] { return g.g.OutEdges(v) }

func (g *Grid) Degree(v int) int { return g.g.Degree(v) }

// Adjacency returns the neighbourhood the grid was built with.
func (g *Grid) Adjacency() Adjacency { return g.adj }

// Shape returns a copy of the grid dimensions.
func (g *Grid) Shape() []int { return slices.Clone(g.shape) }

// BorderDegree is the degree of an interior vertex: 2·d for axis adjacency,
// 3^d - 1 for full adjacency.
func (g *Grid) BorderDegree(int) int {
	if g.adj == FullAdjacency {
		n := 1
		for range g.shape {
			n *= 3
		}
		return n - 1
	}
	return 2 * len(g.shape)
}

// Index linearizes grid coordinates.
func (g *Grid) Index(coords ...int) int {
	v := 0
	for i, c := range coords {
		v += c * g.strides[i]
	}
	return v
}

// Coordinates returns the grid coordinates of vertex v.
func (g *Grid) Coordinates(v int) []int {
	coords := make([]int, len(g.shape))
	for i, s := range g.strides {
		coords[i] = v / s
		v %= s
	}
	return coords
}
