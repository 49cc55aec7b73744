package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/TrevorS/hierarchy"
)

// fileConfig is the optional TOML configuration passed with --config:
//
//	[attributes]
//	names = ["area", "volume", "compactness"]
//	perimeter = "border"
//	outer_border = true
//	sibling_skip = 1
//	workers = 4
//
//	[weights]
//	metric = "euclidean"
//
// Command-line flags override file values.
type fileConfig struct {
	Attributes attributesConfig `toml:"attributes"`
	Weights    weightsConfig    `toml:"weights"`
}

type attributesConfig struct {
	Names       []string `toml:"names"`
	Perimeter   string   `toml:"perimeter"`
	OuterBorder bool     `toml:"outer_border"`
	SiblingSkip int      `toml:"sibling_skip"`
	Workers     int      `toml:"workers"`
}

type weightsConfig struct {
	// Metric turns vertex_weights into edge weights when a graph file gives
	// no edge weights.
	Metric string `toml:"metric"`
}

// loadConfig reads a TOML configuration file. An empty path yields the zero
// configuration.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// attributeConfig turns the file configuration into a hierarchy.Config.
// names, when non-empty, replaces the attribute list of the file.
func (c fileConfig) attributeConfig(names []string) (hierarchy.Config, error) {
	cfg := hierarchy.DefaultConfig()
	if len(names) == 0 {
		names = c.Attributes.Names
	}
	if len(names) > 0 {
		cfg.Attributes = make([]hierarchy.Attribute, len(names))
		for i, n := range names {
			cfg.Attributes[i] = hierarchy.Attribute(n)
		}
	}

	policy, err := hierarchy.ParsePerimeterPolicy(c.Attributes.Perimeter)
	if err != nil {
		return cfg, err
	}
	cfg.Perimeter = policy
	cfg.OuterBorder = c.Attributes.OuterBorder
	if c.Attributes.SiblingSkip != 0 {
		cfg.SiblingSkip = c.Attributes.SiblingSkip
	}
	cfg.Workers = c.Attributes.Workers
	return cfg, nil
}
