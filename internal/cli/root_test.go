package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hierarchy"
)

// run executes the CLI with args and returns what it printed on stdout and
// stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestBuildCommand(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	stdout, _, err := run(t, "build", "--graph", path)
	require.NoError(t, err)

	var out treeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 9, out.NumLeaves)
	assert.Equal(t, []int{9, 9, 10, 11, 11, 10, 12, 12, 13, 14, 14, 16, 13, 15, 15, 16, 16}, out.Parents)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4}, out.Altitudes)
	assert.Equal(t, []int{0, 4, 5, 10, 11, 2, 9, 7}, out.MSTEdges)
}

func TestBuildCommand_YAMLAndVerbose(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	stdout, stderr, err := run(t, "build", "-g", path, "--format", "yaml", "-v")
	require.NoError(t, err)

	var out treeOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 17, len(out.Parents))
	assert.Contains(t, stderr, "built binary partition tree")
}

func TestLevelsCommand(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	stdout, _, err := run(t, "levels", "--graph", path)
	require.NoError(t, err)

	var levels []levelOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &levels))
	require.Len(t, levels, 5)
	for i, l := range levels {
		assert.Equal(t, i, l.Index)
		assert.Equal(t, float64(4-i), l.Altitude)
		assert.Equal(t, i+1, l.Regions)
	}
}

func TestCutCommand(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	for _, args := range [][]string{
		{"--altitude", "2"},
		{"--regions", "3"},
		{"--max-regions", "3"},
		{"--index", "2"},
	} {
		stdout, _, err := run(t, append([]string{"cut", "--graph", path}, args...)...)
		require.NoError(t, err, args)

		var out cutOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		assert.Equal(t, 2.0, out.Altitude, args)
		assert.Equal(t, []int{11, 13, 14}, out.Nodes, args)
		assert.Equal(t, []int{0, 0, 0, 1, 1, 0, 2, 2, 2}, out.Labels, args)
		assert.Equal(t, []bool{false, true, false, true, false, false, true, true, true, true, false, false}, out.CutEdges, args)
	}
}

func TestCutCommand_RAG(t *testing.T) {
	path := writeFile(t, "rag.json", ragJSON)

	stdout, _, err := run(t, "cut", "--graph", path, "--regions", "2")
	require.NoError(t, err)

	var out cutOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []int{4, 7}, out.Nodes)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 1}, out.Labels, "labels are given per grid pixel")
	assert.Len(t, out.CutEdges, 12)
}

func TestCutCommand_Errors(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	_, _, err := run(t, "cut", "--graph", path)
	assert.ErrorContains(t, err, "exactly one")

	_, _, err = run(t, "cut", "--graph", path, "--regions", "2", "--altitude", "1")
	assert.ErrorContains(t, err, "exactly one")

	_, _, err = run(t, "cut", "--graph", path, "--regions", "7")
	assert.ErrorIs(t, err, hierarchy.ErrNoSuchCut)

	_, _, err = run(t, "cut", "--graph", path, "--index", "9")
	assert.ErrorIs(t, err, hierarchy.ErrNoSuchCut)

	_, _, err = run(t, "cut", "--graph", path, "--altitude", "NaN")
	assert.ErrorIs(t, err, hierarchy.ErrContractViolation)
}

func TestAttributesCommand(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	stdout, _, err := run(t, "attributes", "--graph", path, "--attr", "area,volume,frontier_strength", "-w", "2")
	require.NoError(t, err)

	var out attributesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 17, out.NumNodes)
	assert.Len(t, out.Attributes, 3)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 3, 4, 7, 9}, out.Attributes["area"])
	assert.Equal(t, 36.0, out.Attributes["volume"][16])
	assert.InDelta(t, 26.0/5, out.Attributes["frontier_strength"][16], 1e-12)
}

func TestAttributesCommand_RAGWithConfig(t *testing.T) {
	graphPath := writeFile(t, "rag.json", ragJSON)
	configPath := writeFile(t, "hierarchy.toml", `
[attributes]
names = ["area", "frontier_strength", "perimeter_length"]
`)

	stdout, _, err := run(t, "attributes", "--graph", graphPath, "--config", configPath)
	require.NoError(t, err)

	var out attributesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 5, out.NumLeaves)
	// Region areas are pixel counts.
	assert.Equal(t, []float64{2, 2, 3, 1, 1, 4, 7, 8, 9}, out.Attributes["area"])
	// Strength is averaged over pixel frontiers, not region edges.
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0, 1, 8.0 / 3, 3, 2}, out.Attributes["frontier_strength"], 1e-12)
	assert.Equal(t, 0.0, out.Attributes["perimeter_length"][8])
}

func TestAttributesCommand_RegionGaussianModel(t *testing.T) {
	// Region 0 holds the pixels {0, 0, 9}, region 1 the pixel {1}.
	path := writeFile(t, "regions.yaml", `grid: [1, 4]
labels: [0, 0, 0, 1]
vertex_weights: [0, 0, 9, 1]
`)

	stdout, _, err := run(t, "attributes", "--graph", path, "--attr", "mean_weights,gaussian_region_model")
	require.NoError(t, err)

	var out attributesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.InDeltaSlice(t, []float64{3, 1, 2.5}, out.Attributes["mean_weights"], 1e-12)
	assert.InDeltaSlice(t, []float64{3, 1, 2.5}, out.Attributes["gaussian_mean"], 1e-12)
	assert.InDeltaSlice(t, []float64{18, 0, 14.25}, out.Attributes["gaussian_variance"], 1e-12)
}

func TestBuildCommand_MinkowskiMetric(t *testing.T) {
	path := writeFile(t, "points.yaml", `grid: [1, 3]
vertex_weights: [0, 0, 3, 4, 3, 4]
dims: 2
`)

	stdout, _, err := run(t, "build", "--graph", path, "--metric", "minkowski:2")
	require.NoError(t, err)

	var out treeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []int{4, 3, 3, 4, 4}, out.Parents)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 5}, out.Altitudes, 1e-12)

	_, _, err = run(t, "build", "--graph", path, "--metric", "minkowski:0.5")
	assert.Error(t, err)
}

func TestBuildCommand_FullAdjacency(t *testing.T) {
	// Edges {0,1} {0,2} {0,3} {1,2} {1,3} {2,3}.
	path := writeFile(t, "grid8.yaml", `grid: [2, 2]
adjacency: full
weights: [5, 5, 1, 2, 5, 5]
`)

	stdout, _, err := run(t, "build", "--graph", path)
	require.NoError(t, err)

	var out treeOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []int{4, 5, 5, 4, 6, 6, 6}, out.Parents)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 2, 5}, out.Altitudes)
	assert.Equal(t, []int{2, 3, 0}, out.MSTEdges)
}

func TestWatershedCommand(t *testing.T) {
	path := writeFile(t, "basins.yaml", `grid: [4, 4]
weights: [1, 2, 5, 5, 5, 8, 1, 4, 3, 4, 4, 1, 5, 2, 6, 3, 5, 4, 0, 7, 0, 3, 4, 0]
`)

	stdout, _, err := run(t, "watershed", "--graph", path)
	require.NoError(t, err)

	var out watershedOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 3, out.NumRegions)
	assert.Equal(t, []int{1, 1, 1, 2, 1, 1, 2, 2, 1, 1, 3, 3, 1, 1, 3, 3}, out.Labels)
}

func TestWatershedCommand_Seeded(t *testing.T) {
	path := writeFile(t, "seeded.yaml", `grid: [2, 3]
weights: [1, 0, 2, 0, 0, 1, 2]
seeds: [5, 7, 5, 9, 9, 9]
background: 9
`)

	stdout, _, err := run(t, "watershed", "--graph", path, "--format", "yaml")
	require.NoError(t, err)

	var out watershedOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 2, out.NumRegions)
	assert.Equal(t, []int{5, 7, 5, 5, 7, 5}, out.Labels)
}

func TestWatershedCommand_RegionWeights(t *testing.T) {
	// Region edges {0,1} {1,2} {0,2} {0,3} {2,3} {2,4}.
	path := writeFile(t, "regions.yaml", `grid: [3, 3]
labels: [0, 1, 1, 0, 2, 2, 3, 2, 4]
weights: [1, 5, 4, 3, 6, 2]
`)

	stdout, _, err := run(t, "watershed", "--graph", path)
	require.NoError(t, err)

	var out watershedOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 2, out.NumRegions)
	assert.Equal(t, []int{1, 1, 1, 1, 2, 2, 1, 2, 2}, out.Labels, "labels are given per grid pixel")

	seeded := writeFile(t, "seeded.yaml", `grid: [3, 3]
labels: [0, 1, 1, 0, 2, 2, 3, 2, 4]
weights: [1, 5, 4, 3, 6, 2]
seeds: [1, 0, 0, 0, 0, 0, 0, 0, 2]
`)
	_, _, err = run(t, "watershed", "--graph", seeded)
	assert.ErrorContains(t, err, "seeds")
}

func TestAttributesCommand_Unsupported(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	_, _, err := run(t, "attributes", "--graph", path, "--attr", "mean_weights")
	assert.ErrorIs(t, err, hierarchy.ErrUnsupportedConfiguration)

	_, _, err = run(t, "attributes", "--graph", path, "--attr", "roundness")
	assert.ErrorIs(t, err, hierarchy.ErrUnsupportedConfiguration)
}

func TestRootCommand_Errors(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)

	_, _, err := run(t, "build")
	assert.ErrorContains(t, err, "--graph")

	_, _, err = run(t, "build", "--graph", path, "--format", "xml")
	assert.ErrorContains(t, err, "xml")

	_, _, err = run(t, "build", "--graph", path, "--metric", "hamming")
	assert.Error(t, err)

	_, _, err = run(t, "build", "--graph", path, "--config", writeFile(t, "bad.toml", "nonsense = "))
	assert.Error(t, err)
}

func TestExecuteContextCanceled(t *testing.T) {
	path := writeFile(t, "grid.yaml", gridYAML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs([]string{"build", "--graph", path})
	err := root.ExecuteContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stdout.Len())
}
