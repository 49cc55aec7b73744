package hierarchy

import (
	"runtime"
	"slices"
)

// Attribute names a per-node (or, for AttrLCAMap, per-edge) quantity that
// ComputeAttributes can produce.
type Attribute string

const (
	AttrArea             Attribute = "area"
	AttrVolume           Attribute = "volume"
	AttrDepth            Attribute = "depth"
	AttrRegularAltitudes Attribute = "regular_altitudes"
	AttrLCAMap           Attribute = "lca_map"
	AttrFrontierLength   Attribute = "frontier_length"
	AttrFrontierStrength Attribute = "frontier_strength"
	AttrPerimeterLength  Attribute = "perimeter_length"
	AttrCompactness      Attribute = "compactness"
	AttrSibling          Attribute = "sibling"
	AttrMeanWeights      Attribute = "mean_weights"
	// AttrGaussianRegionModel produces two outputs, AttrGaussianMean and
	// AttrGaussianVariance.
	AttrGaussianRegionModel Attribute = "gaussian_region_model"
	AttrGaussianMean        Attribute = "gaussian_mean"
	AttrGaussianVariance    Attribute = "gaussian_variance"
)

// Attributes lists every attribute ComputeAttributes accepts.
var Attributes = []Attribute{
	AttrArea, AttrVolume, AttrDepth, AttrRegularAltitudes, AttrLCAMap,
	AttrFrontierLength, AttrFrontierStrength, AttrPerimeterLength,
	AttrCompactness, AttrSibling, AttrMeanWeights, AttrGaussianRegionModel,
}

// Config controls a batch attribute computation.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Attributes to compute. Default: area, volume, depth, regular_altitudes.
	Attributes []Attribute

	// Perimeter selects how leaf perimeters are measured for
	// perimeter_length and compactness. Default: PerimeterAuto.
	Perimeter PerimeterPolicy

	// OuterBorder adds the outer border length to the root's frontier_length
	// when the leaf graph reports border degrees. Default: false.
	OuterBorder bool

	// LeafArea is the area of each leaf. nil means 1 per leaf. It also
	// weighs mean_weights and counts the samples behind each leaf for
	// gaussian_region_model.
	LeafArea []float64

	// LeafWeights holds Dims values per leaf, flat row-major. Required by
	// mean_weights and gaussian_region_model.
	LeafWeights []float64

	// LeafVariance is the (co)variance of the samples each leaf stands for,
	// one value per leaf when Dims is 1 and a Dims×Dims matrix otherwise.
	// Used by gaussian_region_model. nil means 0.
	LeafVariance []float64

	// Dims is the number of values per leaf in LeafWeights. Default: 1.
	Dims int

	// EdgeWeights are the leaf-graph (or RAG pre-graph) edge weights used by
	// frontier_strength.
	EdgeWeights []float64

	// SiblingSkip is the offset used by sibling. 0 selects the default, 1;
	// the identity mapping that Sibling(t, 0) gives cannot be requested here.
	SiblingSkip int

	// Workers bounds the number of attributes computed concurrently.
	// 0 means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Attributes:  []Attribute{AttrArea, AttrVolume, AttrDepth, AttrRegularAltitudes},
		Perimeter:   PerimeterAuto,
		Dims:        1,
		SiblingSkip: 1,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if len(cfg.Attributes) == 0 {
		cfg.Attributes = DefaultConfig().Attributes
	}
	if cfg.Dims == 0 {
		cfg.Dims = 1
	}
	if cfg.SiblingSkip == 0 {
		cfg.SiblingSkip = 1
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks that every requested attribute can be computed from
// the inputs at hand.
func validateConfig(cfg *Config, altitudes []float64, hasLeafGraph bool) error {
	if cfg.Workers < 0 {
		return unsupportedf("Workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Dims < 1 {
		return unsupportedf("Dims must be >= 1, got %d", cfg.Dims)
	}
	for _, a := range cfg.Attributes {
		if !slices.Contains(Attributes, a) {
			return unsupportedf("unknown attribute %q", a)
		}
		switch a {
		case AttrVolume:
			if altitudes == nil {
				return unsupportedf("attribute %s needs altitudes", a)
			}
		case AttrLCAMap, AttrFrontierLength, AttrPerimeterLength, AttrCompactness:
			if !hasLeafGraph {
				return unsupportedf("attribute %s needs a leaf graph", a)
			}
		case AttrFrontierStrength:
			if !hasLeafGraph || cfg.EdgeWeights == nil {
				return unsupportedf("attribute %s needs a leaf graph and edge weights", a)
			}
		case AttrMeanWeights, AttrGaussianRegionModel:
			if cfg.LeafWeights == nil {
				return unsupportedf("attribute %s needs leaf weights", a)
			}
		}
	}
	return nil
}
