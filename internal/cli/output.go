package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s or %s)", format, formatJSON, formatYAML)
}

// encode writes v to w in the given format.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return checkFormat(format)
}

type treeOutput struct {
	NumLeaves int       `json:"num_leaves" yaml:"num_leaves"`
	Parents   []int     `json:"parents" yaml:"parents,flow"`
	Altitudes []float64 `json:"altitudes" yaml:"altitudes,flow"`
	MSTEdges  []int     `json:"mst_edges" yaml:"mst_edges,flow"`
}

type attributesOutput struct {
	NumLeaves  int                  `json:"num_leaves" yaml:"num_leaves"`
	NumNodes   int                  `json:"num_nodes" yaml:"num_nodes"`
	Attributes map[string][]float64 `json:"attributes" yaml:"attributes"`
}

type levelOutput struct {
	Index    int     `json:"index" yaml:"index"`
	Altitude float64 `json:"altitude" yaml:"altitude"`
	Regions  int     `json:"regions" yaml:"regions"`
}

type cutOutput struct {
	Altitude   float64 `json:"altitude" yaml:"altitude"`
	NumRegions int     `json:"num_regions" yaml:"num_regions"`
	Nodes      []int   `json:"nodes" yaml:"nodes,flow"`
	// Labels gives a region id to every vertex of the input graph.
	Labels []int `json:"labels" yaml:"labels,flow"`
	// CutEdges flags the input-graph edges between two regions.
	CutEdges []bool `json:"cut_edges" yaml:"cut_edges,flow"`
}

type watershedOutput struct {
	NumRegions int `json:"num_regions" yaml:"num_regions"`
	// Labels gives a basin to every vertex of the input graph.
	Labels []int `json:"labels" yaml:"labels,flow"`
}
