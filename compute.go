package hierarchy

import (
	"golang.org/x/sync/errgroup"

	"github.com/TrevorS/hierarchy/graph"
)

// AttributeSet holds the outputs of ComputeAttributes, keyed by attribute.
// Integer attributes (depth, sibling, lca_map) are converted to float64.
type AttributeSet map[Attribute][]float64

type attributeOutput struct {
	name   Attribute
	values []float64
}

// ComputeAttributes computes the attributes named in cfg. Attributes are
// independent of each other and run concurrently, at most cfg.Workers at a
// time; each writes its own output, so the result is identical to calling
// the attribute functions one after another. leafGraph and altitudes may be
// nil when no requested attribute needs them.
func ComputeAttributes(t *Tree, altitudes []float64, leafGraph graph.Graph, cfg Config) (AttributeSet, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg, altitudes, leafGraph != nil); err != nil {
		return nil, err
	}
	if cfg.LeafArea != nil {
		if err := checkLeafLength(t, "leaf area", len(cfg.LeafArea), 1); err != nil {
			return nil, err
		}
	}

	outputs := make([][]attributeOutput, len(cfg.Attributes))

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i, a := range cfg.Attributes {
		g.Go(func() error {
			out, err := computeAttribute(t, altitudes, leafGraph, &cfg, a)
			outputs[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(AttributeSet)
	for _, outs := range outputs {
		for _, o := range outs {
			set[o.name] = o.values
		}
	}
	return set, nil
}

func computeAttribute(t *Tree, altitudes []float64, g graph.Graph, cfg *Config, a Attribute) ([]attributeOutput, error) {
	single := func(values []float64, err error) ([]attributeOutput, error) {
		if err != nil {
			return nil, err
		}
		return []attributeOutput{{name: a, values: values}}, nil
	}

	switch a {
	case AttrArea:
		return single(Area(t, cfg.LeafArea))
	case AttrVolume:
		area, err := Area(t, cfg.LeafArea)
		if err != nil {
			return nil, err
		}
		return single(Volume(t, altitudes, area))
	case AttrDepth:
		return single(intsToFloats(t.Depths()), nil)
	case AttrRegularAltitudes:
		return single(RegularAltitudes(t), nil)
	case AttrLCAMap:
		lca, err := LCAMap(t, g)
		if err != nil {
			return nil, err
		}
		return single(intsToFloats(lca), nil)
	case AttrFrontierLength:
		return single(FrontierLength(t, g, cfg.OuterBorder))
	case AttrFrontierStrength:
		return single(FrontierStrength(t, g, cfg.EdgeWeights))
	case AttrPerimeterLength:
		return single(PerimeterLength(t, g, cfg.Perimeter))
	case AttrCompactness:
		area, err := Area(t, cfg.LeafArea)
		if err != nil {
			return nil, err
		}
		perimeter, err := PerimeterLength(t, g, cfg.Perimeter)
		if err != nil {
			return nil, err
		}
		return single(Compactness(t, area, perimeter))
	case AttrSibling:
		return single(intsToFloats(Sibling(t, cfg.SiblingSkip)), nil)
	case AttrMeanWeights:
		area, err := Area(t, cfg.LeafArea)
		if err != nil {
			return nil, err
		}
		return single(MeanWeights(t, cfg.LeafWeights, cfg.Dims, area))
	case AttrGaussianRegionModel:
		mean, variance, err := GaussianRegionModel(t, cfg.LeafWeights, cfg.Dims, cfg.LeafArea, cfg.LeafVariance)
		if err != nil {
			return nil, err
		}
		return []attributeOutput{
			{name: AttrGaussianMean, values: mean},
			{name: AttrGaussianVariance, values: variance},
		}, nil
	}
	return nil, unsupportedf("unknown attribute %q", a)
}

func intsToFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
