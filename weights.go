package hierarchy

// MeanWeights returns the area-weighted mean of per-leaf vectors for every
// node. leafWeights is flat row-major with NumLeaves rows of dims values;
// the result is flat with NumNodes rows. area may be nil (unit leaf area)
// or hold one value per node. Nodes with zero area get a zero mean.
func MeanWeights(t *Tree, leafWeights []float64, dims int, area []float64) ([]float64, error) {
	if dims < 1 {
		return nil, contractf("dims must be >= 1, got %d", dims)
	}
	if err := checkLeafLength(t, "leaf weights", len(leafWeights), dims); err != nil {
		return nil, err
	}
	if area == nil {
		area, _ = Area(t, nil)
	} else if err := checkNodeLength(t, "area", len(area)); err != nil {
		return nil, err
	}

	weighted := make([]float64, len(leafWeights))
	for l := range t.NumLeaves() {
		for d := range dims {
			weighted[l*dims+d] = area[l] * leafWeights[l*dims+d]
		}
	}
	sums, err := AccumulateSequential(t, weighted, dims, AccumulatorSum)
	if err != nil {
		return nil, err
	}

	n := t.NumNodes()
	for v := 0; v < n; v++ {
		if area[v] == 0 {
			clear(sums[v*dims : (v+1)*dims])
			continue
		}
		for d := 0; d < dims; d++ {
			sums[v*dims+d] /= area[v]
		}
	}
	return sums, nil
}

// GaussianRegionModel returns the mean and biased variance of the values
// under every node. leafWeights is flat row-major with NumLeaves rows of dims
// values. For dims == 1 variance has one value per node; otherwise it holds a
// dims×dims covariance matrix per node, flat row-major.
//
// A leaf may stand for several samples, such as the pixels of a region:
// leafCount gives the number of samples of each leaf (nil means 1) and
// leafVariance their (co)variance around the leaf's value, in the layout of
// the output (nil means 0). Children are merged with the parallel moment
// formula
//
//	mean' = (n₁m₁ + n₂m₂) / (n₁+n₂)
//	var'  = (n₁(v₁+m₁²) + n₂(v₂+m₂²)) / (n₁+n₂) - mean'²
//
// so the result equals the batch statistics of the underlying samples
// without materializing them. Nodes with no samples get zeros.
func GaussianRegionModel(t *Tree, leafWeights []float64, dims int, leafCount, leafVariance []float64) (mean, variance []float64, err error) {
	if dims < 1 {
		return nil, nil, contractf("dims must be >= 1, got %d", dims)
	}
	sq := dims * dims
	if err := checkLeafLength(t, "leaf weights", len(leafWeights), dims); err != nil {
		return nil, nil, err
	}
	if leafCount != nil {
		if err := checkLeafLength(t, "leaf count", len(leafCount), 1); err != nil {
			return nil, nil, err
		}
	}
	if leafVariance != nil {
		if err := checkLeafLength(t, "leaf variance", len(leafVariance), sq); err != nil {
			return nil, nil, err
		}
	}

	n := t.NumNodes()
	count := make([]float64, n)
	mean = make([]float64, n*dims)
	// Second moments, Σ count·(cov + m mᵀ), until finalized into covariance.
	moment := make([]float64, n*sq)

	for l := range t.NumLeaves() {
		count[l] = 1
		if leafCount != nil {
			count[l] = leafCount[l]
		}
	}
	copy(mean, leafWeights)
	copy(moment, leafVariance)

	for v := range n {
		if !t.IsLeaf(v) {
			// Children are final: turn sums into moments.
			c := count[v]
			m := mean[v*dims : (v+1)*dims]
			cov := moment[v*sq : (v+1)*sq]
			if c == 0 {
				clear(m)
				clear(cov)
			} else {
				for i := range dims {
					m[i] /= c
				}
				for i := range dims {
					for j := range dims {
						cov[i*dims+j] = cov[i*dims+j]/c - m[i]*m[j]
					}
				}
			}
		}
		if v == t.Root() {
			break
		}

		p := t.parents[v]
		c := count[v]
		count[p] += c
		for i := range dims {
			mi := mean[v*dims+i]
			mean[p*dims+i] += c * mi
			for j := range dims {
				moment[p*sq+i*dims+j] += c * (moment[v*sq+i*dims+j] + mi*mean[v*dims+j])
			}
		}
	}

	return mean, moment, nil
}
