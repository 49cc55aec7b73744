package hierarchy

import (
	"errors"
	"slices"
	"testing"
)

func TestArea(t *testing.T) {
	_, bpt := gridBPT(t)

	area, err := Area(bpt.Tree, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "area", area, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 3, 4, 7, 9})

	leafArea := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	area, err = Area(bpt.Tree, leafArea)
	if err != nil {
		t.Fatal(err)
	}
	if area[bpt.Tree.Root()] != 45 {
		t.Errorf("root area = %v, want 45", area[bpt.Tree.Root()])
	}
	if area[13] != 7+8+9 {
		t.Errorf("area(13) = %v, want 24", area[13])
	}

	if _, err := Area(bpt.Tree, []float64{1, 2}); !errors.Is(err, ErrContractViolation) {
		t.Errorf("short leaf area: error = %v, want ErrContractViolation", err)
	}
}

func TestArea_RootIsTotal(t *testing.T) {
	tree := mustTree(t, []int{6, 6, 7, 8, 8, 8, 7, 9, 9, 9})
	area, err := Area(tree, nil)
	if err != nil {
		t.Fatal(err)
	}
	if area[tree.Root()] != float64(tree.NumLeaves()) {
		t.Errorf("root area = %v, want %d", area[tree.Root()], tree.NumLeaves())
	}
	for n := tree.NumLeaves(); n < tree.NumNodes(); n++ {
		var sum float64
		for _, c := range tree.Children(n) {
			sum += area[c]
		}
		if area[n] != sum {
			t.Errorf("area(%d) = %v, want sum of children %v", n, area[n], sum)
		}
	}
}

func TestVolume(t *testing.T) {
	_, bpt := gridBPT(t)

	volume, err := Volume(bpt.Tree, bpt.Altitudes, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 8, 21, 36}
	assertFloats(t, "volume", volume, want)

	area, _ := Area(bpt.Tree, nil)
	explicit, err := Volume(bpt.Tree, bpt.Altitudes, area)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "volume with explicit area", explicit, want)
}

func TestVolume_Errors(t *testing.T) {
	_, bpt := gridBPT(t)

	if _, err := Volume(bpt.Tree, []float64{0, 1}, nil); !errors.Is(err, ErrContractViolation) {
		t.Errorf("short altitudes: error = %v, want ErrContractViolation", err)
	}
	if _, err := Volume(bpt.Tree, bpt.Altitudes, []float64{1}); !errors.Is(err, ErrContractViolation) {
		t.Errorf("short area: error = %v, want ErrContractViolation", err)
	}
}

func TestDepthAndRegularAltitudes(t *testing.T) {
	tree := mustTree(t, []int{6, 6, 7, 8, 8, 8, 7, 9, 9, 9})

	if got, want := Depth(tree), []int{3, 3, 2, 2, 2, 2, 2, 1, 1, 0}; !slices.Equal(got, want) {
		t.Errorf("Depth = %v, want %v", got, want)
	}
	assertFloats(t, "regular altitudes", RegularAltitudes(tree),
		[]float64{0, 0, 0, 0, 0, 0, 1.0 / 3, 2.0 / 3, 2.0 / 3, 1})

	// Depth returns a copy.
	d := Depth(tree)
	d[0] = 42
	if tree.Depths()[0] != 3 {
		t.Error("Depth aliases the tree's cached depths")
	}
}

func TestRegularAltitudes_Ultrametric(t *testing.T) {
	_, bpt := gridBPT(t)
	alt := RegularAltitudes(bpt.Tree)

	if alt[bpt.Tree.Root()] != 1 {
		t.Errorf("root regular altitude = %v, want 1", alt[bpt.Tree.Root()])
	}
	for n := 0; n < bpt.Tree.Root(); n++ {
		if alt[n] >= alt[bpt.Tree.Parent(n)] {
			t.Errorf("regular altitude(%d) = %v not below parent %v", n, alt[n], alt[bpt.Tree.Parent(n)])
		}
	}
}

func TestSibling(t *testing.T) {
	tree := mustTree(t, []int{5, 5, 6, 6, 6, 7, 7, 7})

	tests := []struct {
		skip int
		want []int
	}{
		{1, []int{1, 0, 3, 4, 2, 6, 5, 7}},
		{-1, []int{1, 0, 4, 2, 3, 6, 5, 7}},
		{3, []int{1, 0, 2, 3, 4, 6, 5, 7}},
	}
	for _, tt := range tests {
		if got := Sibling(tree, tt.skip); !slices.Equal(got, tt.want) {
			t.Errorf("Sibling(skip=%d) = %v, want %v", tt.skip, got, tt.want)
		}
	}
}

func TestSibling_BinaryTreeIsInvolution(t *testing.T) {
	_, bpt := gridBPT(t)
	sib := Sibling(bpt.Tree, 1)

	for n := 0; n < bpt.Tree.Root(); n++ {
		s := sib[n]
		if s == n || bpt.Tree.Parent(s) != bpt.Tree.Parent(n) || sib[s] != n {
			t.Errorf("sibling(%d) = %d is not the other child of %d", n, s, bpt.Tree.Parent(n))
		}
	}
}

func TestVertexList(t *testing.T) {
	_, bpt := gridBPT(t)
	lists := VertexList(bpt.Tree)

	tests := map[int][]int{
		0:  {0},
		9:  {0, 1},
		13: {8, 6, 7},
		14: {0, 1, 2, 5},
		16: {3, 4, 8, 6, 7, 0, 1, 2, 5},
	}
	for n, want := range tests {
		if !slices.Equal(lists[n], want) {
			t.Errorf("VertexList[%d] = %v, want %v", n, lists[n], want)
		}
	}

	area, _ := Area(bpt.Tree, nil)
	for n, l := range lists {
		if float64(len(l)) != area[n] {
			t.Errorf("node %d lists %d leaves, area is %v", n, len(l), area[n])
		}
	}
}
