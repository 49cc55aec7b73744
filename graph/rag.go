package graph

import (
	"fmt"
	"iter"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RAG is a region adjacency graph: one vertex per connected component of
// equally labelled pre-graph vertices, one edge per pair of adjacent regions.
// A RAG is read-only once built.
type RAG struct {
	g         *UGraph
	pre       Graph
	vertexMap []int
	edgeMap   []int
}

// NewRAG builds the region adjacency graph of pre under the given vertex
// labelling. Two vertices with the same label that are not connected through
// equally labelled vertices end up in different regions.
//
// Regions are numbered in order of their lowest pre-graph vertex. A region
// edge is created the first time an edge between two regions is explored;
// its source is the region discovered first.
func NewRAG(pre Graph, labels []int) (*RAG, error) {
	n := pre.NumVertices()
	if len(labels) != n {
		return nil, fmt.Errorf("graph: labels length %d does not match number of vertices %d", len(labels), n)
	}

	vertexMap := make([]int, n)
	for i := range vertexMap {
		vertexMap[i] = InvalidIndex
	}
	edgeMap := make([]int, pre.NumEdges())
	for i := range edgeMap {
		edgeMap[i] = InvalidIndex
	}

	rag := &RAG{g: NewUGraph(0), pre: pre, vertexMap: vertexMap, edgeMap: edgeMap}
	canonical := make(map[[2]int]int)
	var stack []int

	for start := 0; start < n; start++ {
		if vertexMap[start] != InvalidIndex {
			continue
		}
		region := rag.g.AddVertex()
		label := labels[start]
		vertexMap[start] = region
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			for e := range pre.OutEdges(v) {
				w := e.Target
				if labels[w] == label {
					if vertexMap[w] == InvalidIndex {
						vertexMap[w] = region
						stack = append(stack, w)
					}
					continue
				}
				adjacent := vertexMap[w]
				if adjacent == InvalidIndex {
					// Recorded when w's region is explored.
					continue
				}
				key := [2]int{adjacent, region}
				idx, ok := canonical[key]
				if !ok {
					idx = rag.g.AddEdge(adjacent, region)
					canonical[key] = idx
				}
				edgeMap[e.Index] = idx
			}
		}
	}

	return rag, nil
}

func (r *RAG) NumVertices() int { return r.g.NumVertices() }

func (r *RAG) NumEdges() int { return r.g.NumEdges() }

// Edge returns the region edge with index i.
func (r *RAG) Edge(i int) Edge { return r.g.Edge(i) }

func (r *RAG) Edges() iter.Seq[Edge] { return r.g.Edges() }

func (r *RAG) OutEdges(v int) iter.Seq[Edge] { return r.g.OutEdges(v) }

func (r *RAG) Degree(v int) int { return r.g.Degree(v) }

// PreGraph returns the graph the RAG was built from.
func (r *RAG) PreGraph() Graph { return r.pre }

func (r *RAG) VertexLabel(v int) int { return r.vertexMap[v] }

func (r *RAG) EdgeLabel(e int) int { return r.edgeMap[e] }

// VertexMap returns the pre-graph vertex to region mapping. The returned
// slice must not be modified.
func (r *RAG) VertexMap() []int { return r.vertexMap }

// EdgeMap returns the pre-graph edge to region edge mapping, InvalidIndex
// for intra-region edges. The returned slice must not be modified.
func (r *RAG) EdgeMap() []int { return r.edgeMap }

// RegionSizes returns the number of pre-graph vertices in each region.
func (r *RAG) RegionSizes() []float64 {
	sizes := make([]float64, r.NumVertices())
	for _, region := range r.vertexMap {
		sizes[region]++
	}
	return sizes
}

// MeanEdgeWeights averages pre-graph edge weights onto the region edges they
// induce. Intra-region edges are ignored.
func (r *RAG) MeanEdgeWeights(preWeights []float64) ([]float64, error) {
	if len(preWeights) != len(r.edgeMap) {
		return nil, fmt.Errorf("graph: edge weights length %d does not match pre-graph edges %d", len(preWeights), len(r.edgeMap))
	}
	sums := make([]float64, r.NumEdges())
	counts := make([]int, r.NumEdges())
	for e, re := range r.edgeMap {
		if re == InvalidIndex {
			continue
		}
		sums[re] += preWeights[e]
		counts[re]++
	}
	for i := range sums {
		if counts[i] == 0 {
			sums[i] = math.NaN()
			continue
		}
		sums[i] /= float64(counts[i])
	}
	return sums, nil
}

// MeanVertexWeights averages pre-graph vertex values over each region.
// values is flat row-major with dims values per pre-graph vertex; the result
// has dims values per region.
func (r *RAG) MeanVertexWeights(values []float64, dims int) ([]float64, error) {
	if dims < 1 {
		return nil, fmt.Errorf("graph: dims must be >= 1, got %d", dims)
	}
	if len(values) != len(r.vertexMap)*dims {
		return nil, fmt.Errorf("graph: vertex values length %d does not match %d pre-graph vertices x %d", len(values), len(r.vertexMap), dims)
	}
	sums := make([]float64, r.NumVertices()*dims)
	for v, region := range r.vertexMap {
		for d := 0; d < dims; d++ {
			sums[region*dims+d] += values[v*dims+d]
		}
	}
	sizes := r.RegionSizes()
	for region, size := range sizes {
		for d := 0; d < dims; d++ {
			sums[region*dims+d] /= size
		}
	}
	return sums, nil
}

// VertexStatistics returns the mean and the biased (co)variance of the
// pre-graph vertex values over each region. For dims == 1 variance holds one
// value per region; otherwise a dims×dims covariance matrix per region, flat
// row-major.
func (r *RAG) VertexStatistics(values []float64, dims int) (mean, variance []float64, err error) {
	mean, err = r.MeanVertexWeights(values, dims)
	if err != nil {
		return nil, nil, err
	}
	sq := dims * dims
	variance = make([]float64, r.NumVertices()*sq)
	for v, region := range r.vertexMap {
		x := values[v*dims : (v+1)*dims]
		m := mean[region*dims : (region+1)*dims]
		cov := variance[region*sq : (region+1)*sq]
		for i := range dims {
			for j := range dims {
				cov[i*dims+j] += (x[i] - m[i]) * (x[j] - m[j])
			}
		}
	}
	for region, size := range r.RegionSizes() {
		floats.Scale(1/size, variance[region*sq:(region+1)*sq])
	}
	return mean, variance, nil
}
