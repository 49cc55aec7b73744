package hierarchy

// SimplifiedTree is the result of removing internal nodes from a tree.
type SimplifiedTree struct {
	Tree *Tree
	// NodeMap maps each node of Tree to the node it came from.
	NodeMap []int
}

// SimplifyTree removes every internal, non-root node n for which remove(n)
// is true. Children of a removed node are re-parented to its nearest kept
// ancestor; kept nodes retain their relative order, so the topological
// numbering is preserved. Leaves and the root are never removed.
func SimplifyTree(t *Tree, remove func(n int) bool) (*SimplifiedTree, error) {
	n := t.NumNodes()
	root := t.Root()

	removed := make([]bool, n)
	newIndex := make([]int, n)
	next := 0
	for v := 0; v < n; v++ {
		if v >= t.NumLeaves() && v != root && remove(v) {
			removed[v] = true
			newIndex[v] = -1
			continue
		}
		newIndex[v] = next
		next++
	}

	// keptAncestor[v] is the nearest kept proper ancestor of v.
	keptAncestor := make([]int, n)
	keptAncestor[root] = root
	for v := root - 1; v >= 0; v-- {
		p := t.parents[v]
		if removed[p] {
			keptAncestor[v] = keptAncestor[p]
		} else {
			keptAncestor[v] = p
		}
	}

	parents := make([]int, next)
	nodeMap := make([]int, next)
	for v := 0; v < n; v++ {
		if removed[v] {
			continue
		}
		parents[newIndex[v]] = newIndex[keptAncestor[v]]
		nodeMap[newIndex[v]] = v
	}

	tree, err := NewTree(parents)
	if err != nil {
		return nil, err
	}
	return &SimplifiedTree{Tree: tree, NodeMap: nodeMap}, nil
}

// CanonizeHierarchy removes the internal nodes whose altitude equals their
// parent's: the resulting tree has the same horizontal cuts as (t, altitudes)
// but no redundant node. It returns the simplified tree and its altitudes.
func CanonizeHierarchy(t *Tree, altitudes []float64) (*SimplifiedTree, []float64, error) {
	if err := checkNodeLength(t, "altitudes", len(altitudes)); err != nil {
		return nil, nil, err
	}
	s, err := SimplifyTree(t, func(n int) bool {
		return altitudes[n] == altitudes[t.parents[n]]
	})
	if err != nil {
		return nil, nil, err
	}
	newAltitudes := make([]float64, len(s.NodeMap))
	for i, v := range s.NodeMap {
		newAltitudes[i] = altitudes[v]
	}
	return s, newAltitudes, nil
}
