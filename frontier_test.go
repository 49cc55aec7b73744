package hierarchy

import (
	"errors"
	"testing"

	"github.com/TrevorS/hierarchy/graph"
)

// ragLabels partitions the 3x3 grid into five regions:
//
//	0 1 1
//	0 2 2
//	3 2 4
var ragLabels = []int{0, 1, 1, 0, 2, 2, 3, 2, 4}

// ragBPT builds the RAG of ragLabels, whose edges are {0,1} {1,2} {0,2}
// {0,3} {2,3} {2,4}, and its BPT under weights 1 5 4 3 6 2:
//
//	0,1 -> 5 (1)   2,4 -> 6 (2)   5,3 -> 7 (3)   7,6 -> 8 (4)
func ragBPT(t testing.TB) (*graph.RAG, *BPT) {
	t.Helper()
	grid, err := graph.NewGrid(3, 3)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	rag, err := graph.NewRAG(grid, ragLabels)
	if err != nil {
		t.Fatalf("NewRAG: %v", err)
	}
	bpt, err := BPTCanonical(rag, []float64{1, 5, 4, 3, 6, 2})
	if err != nil {
		t.Fatalf("BPTCanonical: %v", err)
	}
	return rag, bpt
}

func TestParsePerimeterPolicy(t *testing.T) {
	for _, p := range []PerimeterPolicy{PerimeterAuto, PerimeterWithBorder, PerimeterNoBorder} {
		got, err := ParsePerimeterPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePerimeterPolicy(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
	if _, err := ParsePerimeterPolicy("diagonal"); !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("unknown policy: error = %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestEdgeLengths(t *testing.T) {
	grid, _ := graph.NewGrid(2, 2)
	assertFloats(t, "grid edge lengths", EdgeLengths(grid), []float64{1, 1, 1, 1})

	rag, _ := ragBPT(t)
	assertFloats(t, "RAG edge lengths", EdgeLengths(rag), []float64{1, 2, 1, 1, 1, 2})
}

func TestFrontierLength_Grid(t *testing.T) {
	g, bpt := gridBPT(t)

	got, err := FrontierLength(bpt.Tree, g, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 5}
	assertFloats(t, "frontier length", got, want)

	// The outer border of a 3x3 grid has length 12.
	got, err = FrontierLength(bpt.Tree, g, true)
	if err != nil {
		t.Fatal(err)
	}
	want[16] = 17
	assertFloats(t, "frontier length with outer border", got, want)
}

func TestFrontierLength_RAG(t *testing.T) {
	rag, bpt := ragBPT(t)

	got, err := FrontierLength(bpt.Tree, rag, false)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "RAG frontier length", got, []float64{0, 0, 0, 0, 0, 1, 2, 1, 4})
}

func TestFrontierStrength(t *testing.T) {
	g, bpt := gridBPT(t)

	got, err := FrontierStrength(bpt.Tree, g, gridWeights)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 26.0 / 5}
	assertFloats(t, "frontier strength", got, want)

	if _, err := FrontierStrength(bpt.Tree, g, []float64{1, 2, 3}); !errors.Is(err, ErrContractViolation) {
		t.Errorf("short weights: error = %v, want ErrContractViolation", err)
	}
}

func TestFrontierStrength_RAG(t *testing.T) {
	rag, bpt := ragBPT(t)

	// Weights of the region edges themselves.
	got, err := FrontierStrength(bpt.Tree, rag, []float64{1, 5, 4, 3, 6, 2})
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "RAG edge frontier strength", got, []float64{0, 0, 0, 0, 0, 1, 2, 3, 5})

	// Weights of the pre-graph edges: means are taken over pixel frontiers.
	pre := []float64{1, 6, 2, 6, 1, 1, 5, 4, 5, 3, 1, 1}
	got, err = FrontierStrength(bpt.Tree, rag, pre)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "pre-graph frontier strength", got, []float64{0, 0, 0, 0, 0, 1, 2, 5, 9.0 / 4})
}

func TestVertexPerimeter(t *testing.T) {
	g, _ := graph.NewGrid(3, 3)

	tests := []struct {
		policy PerimeterPolicy
		want   []float64
	}{
		{PerimeterAuto, []float64{4, 4, 4, 4, 4, 4, 4, 4, 4}},
		{PerimeterWithBorder, []float64{4, 4, 4, 4, 4, 4, 4, 4, 4}},
		{PerimeterNoBorder, []float64{2, 3, 2, 3, 4, 3, 2, 3, 2}},
	}
	for _, tt := range tests {
		got, err := VertexPerimeter(g, tt.policy)
		if err != nil {
			t.Fatalf("%v: %v", tt.policy, err)
		}
		assertFloats(t, tt.policy.String(), got, tt.want)
	}

	plain, _ := graph.NewUGraphFromEdges(2, [][2]int{{0, 1}})
	if _, err := VertexPerimeter(plain, PerimeterWithBorder); !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("border policy on plain graph: error = %v, want ErrUnsupportedConfiguration", err)
	}
	if _, err := VertexPerimeter(plain, PerimeterPolicy(9)); !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("unknown policy: error = %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestPerimeterLength_Grid(t *testing.T) {
	g, bpt := gridBPT(t)

	got, err := PerimeterLength(bpt.Tree, g, PerimeterAuto)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "perimeter", got, []float64{4, 4, 4, 4, 4, 4, 4, 4, 4, 6, 6, 6, 6, 8, 10, 16, 12})

	got, err = PerimeterLength(bpt.Tree, g, PerimeterNoBorder)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "no-border perimeter", got, []float64{2, 3, 2, 3, 4, 3, 2, 3, 2, 3, 3, 5, 3, 3, 4, 5, 0})
}

func TestPerimeterLength_RAG(t *testing.T) {
	rag, bpt := ragBPT(t)

	got, err := PerimeterLength(bpt.Tree, rag, PerimeterAuto)
	if err != nil {
		t.Fatal(err)
	}
	assertFloats(t, "RAG perimeter", got, []float64{3, 3, 6, 2, 2, 4, 4, 4, 0})

	if _, err := PerimeterLength(bpt.Tree, rag, PerimeterWithBorder); !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("border policy on RAG: error = %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestCompactness(t *testing.T) {
	g, bpt := gridBPT(t)
	area, _ := Area(bpt.Tree, nil)
	perimeter, err := PerimeterLength(bpt.Tree, g, PerimeterAuto)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Compactness(bpt.Tree, area, perimeter)
	if err != nil {
		t.Fatal(err)
	}
	q := 8.0 / 9
	want := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, q, q, q, q, 0.75, 0.64, 0.4375, 1}
	assertFloats(t, "compactness", got, want)

	for n, c := range got {
		if c < 0 || c > 1 {
			t.Errorf("compactness(%d) = %v outside [0, 1]", n, c)
		}
	}
}

func TestCompactness_ZeroPerimeter(t *testing.T) {
	rag, bpt := ragBPT(t)
	area, err := Area(bpt.Tree, rag.RegionSizes())
	if err != nil {
		t.Fatal(err)
	}
	perimeter, err := PerimeterLength(bpt.Tree, rag, PerimeterAuto)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Compactness(bpt.Tree, area, perimeter)
	if err != nil {
		t.Fatal(err)
	}
	if got[bpt.Tree.Root()] != 1 {
		t.Errorf("root with zero perimeter: compactness = %v, want 1", got[bpt.Tree.Root()])
	}

	if _, err := Compactness(bpt.Tree, area[:3], perimeter); !errors.Is(err, ErrContractViolation) {
		t.Errorf("short area: error = %v, want ErrContractViolation", err)
	}
}
