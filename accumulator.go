package hierarchy

import (
	"fmt"
	"math"
)

// Accumulator reduces the values of a node's children to a single value.
// Vector values of dims components are reduced component-wise.
type Accumulator int

const (
	AccumulatorSum Accumulator = iota
	AccumulatorProd
	AccumulatorMin
	AccumulatorMax
	AccumulatorMean
	// AccumulatorCounter counts the children. Its output has one component
	// whatever the input width.
	AccumulatorCounter
	AccumulatorFirst
	AccumulatorLast
)

var accumulatorNames = [...]string{"sum", "prod", "min", "max", "mean", "counter", "first", "last"}

func (a Accumulator) String() string {
	if a >= 0 && int(a) < len(accumulatorNames) {
		return accumulatorNames[a]
	}
	return fmt.Sprintf("Accumulator(%d)", int(a))
}

// ParseAccumulator returns the accumulator with the given name.
func ParseAccumulator(name string) (Accumulator, error) {
	for i, n := range accumulatorNames {
		if n == name {
			return Accumulator(i), nil
		}
	}
	return 0, unsupportedf("unknown accumulator %q", name)
}

func (a Accumulator) outputDims(dims int) int {
	if a == AccumulatorCounter {
		return 1
	}
	return dims
}

// empty is the reduction of no value at all.
func (a Accumulator) empty() float64 {
	switch a {
	case AccumulatorProd:
		return 1
	case AccumulatorMin:
		return math.Inf(1)
	case AccumulatorMax:
		return math.Inf(-1)
	}
	return 0
}

// reduce writes to out the reduction of the rows of values selected by
// children. values holds dims components per row; out holds outputDims(dims).
func (a Accumulator) reduce(out, values []float64, dims int, children []int) {
	switch a {
	case AccumulatorCounter:
		out[0] = float64(len(children))
		return
	case AccumulatorFirst, AccumulatorLast:
		if len(children) == 0 {
			clear(out)
			return
		}
		c := children[0]
		if a == AccumulatorLast {
			c = children[len(children)-1]
		}
		copy(out, values[c*dims:(c+1)*dims])
		return
	}

	init := a.empty()
	for i := range out {
		out[i] = init
	}
	for _, c := range children {
		row := values[c*dims : (c+1)*dims]
		switch a {
		case AccumulatorSum, AccumulatorMean:
			for i, v := range row {
				out[i] += v
			}
		case AccumulatorProd:
			for i, v := range row {
				out[i] *= v
			}
		case AccumulatorMin:
			for i, v := range row {
				out[i] = min(out[i], v)
			}
		case AccumulatorMax:
			for i, v := range row {
				out[i] = max(out[i], v)
			}
		}
	}
	if a == AccumulatorMean && len(children) > 0 {
		k := float64(len(children))
		for i := range out {
			out[i] /= k
		}
	}
}

func checkAccumulator(a Accumulator, dims int) error {
	if a < 0 || int(a) >= len(accumulatorNames) {
		return unsupportedf("unknown accumulator %v", a)
	}
	if dims < 1 {
		return contractf("dims must be >= 1, got %d", dims)
	}
	return nil
}

// AccumulateParallel reduces, for every node, the input values of its
// children. input holds dims values per node. Leaves have no children and
// get the reduction of nothing: 0 for sum, mean, counter, first and last,
// 1 for prod, +Inf for min and -Inf for max.
func AccumulateParallel(t *Tree, input []float64, dims int, acc Accumulator) ([]float64, error) {
	if err := checkAccumulator(acc, dims); err != nil {
		return nil, err
	}
	if len(input) != t.NumNodes()*dims {
		return nil, contractf("input length %d does not match %d nodes x %d", len(input), t.NumNodes(), dims)
	}

	od := acc.outputDims(dims)
	out := make([]float64, t.NumNodes()*od)
	for n := range t.NumNodes() {
		acc.reduce(out[n*od:(n+1)*od], input, dims, t.Children(n))
	}
	return out, nil
}

// AccumulateSequential computes a bottom-up reduction: leaves take their
// row of leafData and every internal node the reduction of its children's
// results. AccumulatorCounter needs dims == 1.
func AccumulateSequential(t *Tree, leafData []float64, dims int, acc Accumulator) ([]float64, error) {
	return AccumulateAndCombineSequential(t, nil, leafData, dims, acc, nil)
}

// AccumulateAndCombineSequential is AccumulateSequential where the
// reduction r of an internal node's children is then combined with the
// node's own input row, component-wise: result(n) = combine(r, input(n)).
// input holds dims values per node and may be nil when combine is nil.
func AccumulateAndCombineSequential(t *Tree, input, leafData []float64, dims int, acc Accumulator, combine func(reduced, own float64) float64) ([]float64, error) {
	if err := checkAccumulator(acc, dims); err != nil {
		return nil, err
	}
	if acc.outputDims(dims) != dims {
		return nil, unsupportedf("accumulator %v changes the value width and cannot be chained", acc)
	}
	if err := checkLeafLength(t, "leaf data", len(leafData), dims); err != nil {
		return nil, err
	}
	if combine != nil && len(input) != t.NumNodes()*dims {
		return nil, contractf("input length %d does not match %d nodes x %d", len(input), t.NumNodes(), dims)
	}

	out := make([]float64, t.NumNodes()*dims)
	copy(out, leafData)
	for n := t.NumLeaves(); n < t.NumNodes(); n++ {
		row := out[n*dims : (n+1)*dims]
		acc.reduce(row, out, dims, t.Children(n))
		if combine != nil {
			for i := range row {
				row[i] = combine(row[i], input[n*dims+i])
			}
		}
	}
	return out, nil
}

// PropagateParallel copies to every node the input row of its parent when
// condition is nil or condition[n] holds, and keeps its own row otherwise.
// The root is its own parent and keeps its row.
func PropagateParallel(t *Tree, input []float64, dims int, condition []bool) ([]float64, error) {
	if err := checkPropagate(t, input, dims, condition); err != nil {
		return nil, err
	}
	out := make([]float64, len(input))
	for n := range t.NumNodes() {
		src := n
		if condition == nil || condition[n] {
			src = t.parents[n]
		}
		copy(out[n*dims:(n+1)*dims], input[src*dims:(src+1)*dims])
	}
	return out, nil
}

// PropagateSequential is the top-down counterpart of AccumulateSequential.
// Walking from the root, a node whose condition holds takes the propagated
// row of its parent and the others keep their input row, so a value travels
// down until it meets a node where condition is false.
func PropagateSequential(t *Tree, input []float64, dims int, condition []bool) ([]float64, error) {
	if err := checkPropagate(t, input, dims, condition); err != nil {
		return nil, err
	}
	out := make([]float64, len(input))
	root := t.Root()
	copy(out[root*dims:], input[root*dims:(root+1)*dims])
	for n := root - 1; n >= 0; n-- {
		src, from := input, n
		if condition == nil || condition[n] {
			src, from = out, t.parents[n]
		}
		copy(out[n*dims:(n+1)*dims], src[from*dims:(from+1)*dims])
	}
	return out, nil
}

func checkPropagate(t *Tree, input []float64, dims int, condition []bool) error {
	if dims < 1 {
		return contractf("dims must be >= 1, got %d", dims)
	}
	if len(input) != t.NumNodes()*dims {
		return contractf("input length %d does not match %d nodes x %d", len(input), t.NumNodes(), dims)
	}
	if condition != nil {
		return checkNodeLength(t, "condition", len(condition))
	}
	return nil
}
