package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric measures the dissimilarity between two vertex value vectors.
type Metric interface {
	Distance(a, b []float64) float64
}

// LpMetric is the distance induced by the L-p norm of a - b. The value is
// the order p and must be >= 1; +Inf gives the Chebyshev distance.
type LpMetric float64

// Common orders of LpMetric.
const (
	Manhattan LpMetric = 1
	Euclidean LpMetric = 2
)

// Chebyshev is the L-infinity distance, the largest coordinate difference.
var Chebyshev = LpMetric(math.Inf(1))

func (p LpMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, float64(p))
}

// CosineMetric computes 1 - cos(a, b). Zero vectors give NaN.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	return 1 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

// ParseMetric returns the metric with the given name: "euclidean" (or "l2"),
// "manhattan" ("l1", the default for ""), "chebyshev" ("linf"), "cosine",
// or "minkowski:P" for the L-P distance with P >= 1.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "euclidean", "l2":
		return Euclidean, nil
	case "manhattan", "l1", "":
		return Manhattan, nil
	case "chebyshev", "linf":
		return Chebyshev, nil
	case "cosine":
		return CosineMetric{}, nil
	}
	if order, ok := strings.CutPrefix(name, "minkowski:"); ok {
		p, err := strconv.ParseFloat(order, 64)
		if err != nil || math.IsNaN(p) || p < 1 {
			return nil, fmt.Errorf("graph: minkowski order must be a number >= 1, got %q", order)
		}
		return LpMetric(p), nil
	}
	return nil, fmt.Errorf("graph: unknown metric %q", name)
}

// WeightEdges derives edge weights from vertex values: the weight of edge
// {s, t} is metric.Distance(values[s], values[t]). values is flat row-major
// with NumVertices rows of dims values.
func WeightEdges(g Graph, values []float64, dims int, metric Metric) ([]float64, error) {
	if dims < 1 {
		return nil, fmt.Errorf("graph: dims must be >= 1, got %d", dims)
	}
	if len(values) != g.NumVertices()*dims {
		return nil, fmt.Errorf("graph: vertex values length %d does not match %d vertices x %d", len(values), g.NumVertices(), dims)
	}
	weights := make([]float64, g.NumEdges())
	for e := range g.Edges() {
		weights[e.Index] = metric.Distance(
			values[e.Source*dims:(e.Source+1)*dims],
			values[e.Target*dims:(e.Target+1)*dims],
		)
	}
	return weights, nil
}
