package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hierarchy/graph"
)

// graphFile is the on-disk description of a weighted graph. YAML and JSON
// are both accepted.
//
//	grid: [3, 3]              # or: vertices: 4 + edges: [[0, 1], [1, 2], ...]
//	adjacency: axis           # grid neighbourhood: axis (4 in 2D) or full (8 in 2D)
//	weights: [0, 6, 2, ...]   # one per edge
//	labels: [0, 1, 1, ...]    # optional: build a region adjacency graph first
//	vertex_weights: [...]     # optional, dims values per vertex
//	dims: 1
//	seeds: [1, 0, 0, ...]     # optional markers for the seeded watershed
//	background: 0             # seed value of unmarked vertices
type graphFile struct {
	Grid          []int     `yaml:"grid"`
	Adjacency     string    `yaml:"adjacency"`
	Vertices      int       `yaml:"vertices"`
	Edges         [][2]int  `yaml:"edges"`
	Weights       []float64 `yaml:"weights"`
	Labels        []int     `yaml:"labels"`
	VertexWeights []float64 `yaml:"vertex_weights"`
	Dims          int       `yaml:"dims"`
	Seeds         []int     `yaml:"seeds"`
	Background    int       `yaml:"background"`
}

// problem is a decoded graph file, ready for hierarchy construction.
type problem struct {
	// leaf is the graph whose vertices become the tree leaves: the input
	// graph, or its region adjacency graph when labels are given.
	leaf graph.Graph
	// base is the input graph.
	base graph.Graph
	rag  *graph.RAG

	// weights values the edges of leaf.
	weights []float64
	// baseWeights values the edges of base when they were given or derived
	// on it; nil otherwise.
	baseWeights []float64

	// leafWeights holds dims values per leaf, nil if the file has none.
	leafWeights []float64
	// leafVariance is the (co)variance of vertex_weights inside each
	// region; nil unless leaves are regions.
	leafVariance []float64
	// leafArea is nil (unit area) unless leaves are regions.
	leafArea []float64
	dims     int

	// seeds marks base vertices for the seeded watershed, nil if unset.
	seeds      []int
	background int
}

// readGraphFile decodes a graph file from disk.
func readGraphFile(path string) (*graphFile, error) {
	if path == "" {
		return nil, errors.New("no graph file: use --graph")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	var f graphFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode graph %s: %w", path, err)
	}
	return &f, nil
}

// buildProblem materializes the graph described by f. Edge weights come
// from f.Weights or, failing that, from f.VertexWeights through metric.
func buildProblem(f *graphFile, metric graph.Metric) (*problem, error) {
	base, err := f.graph()
	if err != nil {
		return nil, err
	}
	p := &problem{leaf: base, base: base, dims: max(f.Dims, 1), seeds: f.Seeds, background: f.Background}
	if f.Seeds != nil && len(f.Seeds) != base.NumVertices() {
		return nil, fmt.Errorf("seeds has %d values, graph has %d vertices", len(f.Seeds), base.NumVertices())
	}

	if f.VertexWeights != nil && len(f.VertexWeights) != base.NumVertices()*p.dims {
		return nil, fmt.Errorf("vertex_weights has %d values, want %d vertices x %d", len(f.VertexWeights), base.NumVertices(), p.dims)
	}

	weights := f.Weights
	if weights == nil {
		if f.VertexWeights == nil {
			return nil, errors.New("graph file needs weights or vertex_weights")
		}
		if weights, err = graph.WeightEdges(base, f.VertexWeights, p.dims, metric); err != nil {
			return nil, err
		}
	}

	if f.Labels == nil {
		if len(weights) != base.NumEdges() {
			return nil, fmt.Errorf("weights has %d values, graph has %d edges", len(weights), base.NumEdges())
		}
		p.weights = weights
		p.baseWeights = weights
		p.leafWeights = f.VertexWeights
		return p, nil
	}

	rag, err := graph.NewRAG(base, f.Labels)
	if err != nil {
		return nil, err
	}
	p.leaf, p.rag = rag, rag
	p.leafArea = rag.RegionSizes()

	switch len(weights) {
	case base.NumEdges():
		p.baseWeights = weights
		if p.weights, err = rag.MeanEdgeWeights(weights); err != nil {
			return nil, err
		}
	case rag.NumEdges():
		p.weights = weights
	default:
		return nil, fmt.Errorf("weights has %d values, want %d graph edges or %d region edges",
			len(weights), base.NumEdges(), rag.NumEdges())
	}

	if f.VertexWeights != nil {
		if p.leafWeights, p.leafVariance, err = rag.VertexStatistics(f.VertexWeights, p.dims); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (f *graphFile) graph() (graph.Graph, error) {
	switch {
	case f.Grid != nil && f.Edges != nil:
		return nil, errors.New("graph file sets both grid and edges")
	case f.Grid != nil:
		var adj graph.Adjacency
		switch f.Adjacency {
		case "", "axis":
			adj = graph.AxisAdjacency
		case "full":
			adj = graph.FullAdjacency
		default:
			return nil, fmt.Errorf("unknown grid adjacency %q (want axis or full)", f.Adjacency)
		}
		return graph.NewGridWithAdjacency(adj, f.Grid...)
	case f.Adjacency != "":
		return nil, errors.New("adjacency only applies to grid graphs")
	case f.Vertices > 0:
		return graph.NewUGraphFromEdges(f.Vertices, f.Edges)
	}
	return nil, errors.New("graph file needs grid or vertices")
}
