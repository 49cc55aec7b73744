package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TrevorS/hierarchy"
	"github.com/TrevorS/hierarchy/graph"
)

var version string

// SetVersion sets the version reported by --version.
func SetVersion(v string) { version = v }

// app holds the state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose    bool
	graphPath  string
	configPath string
	format     string
	metric     string

	cfg fileConfig
}

// Execute runs the hierarchy CLI.
func Execute(ctx context.Context) error {
	return newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "hierarchy",
		Short:         "Build and explore hierarchies of graph partitions",
		Long:          `hierarchy builds the canonical binary partition tree of an edge-weighted graph, computes region attributes on it, extracts horizontal cuts and labels watershed cuts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(a.stderr, level)))

			if err := checkFormat(a.format); err != nil {
				return err
			}
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&a.graphPath, "graph", "g", "", "graph file (YAML or JSON)")
	flags.StringVarP(&a.configPath, "config", "c", "", "TOML configuration file")
	flags.StringVarP(&a.format, "format", "f", formatJSON, "output format: json or yaml")
	flags.StringVar(&a.metric, "metric", "", "metric deriving edge weights from vertex_weights: euclidean, manhattan, chebyshev, cosine or minkowski:P (default from config, else manhattan)")

	root.AddCommand(a.buildCommand())
	root.AddCommand(a.attributesCommand())
	root.AddCommand(a.levelsCommand())
	root.AddCommand(a.cutCommand())
	root.AddCommand(a.watershedCommand())

	return root
}

// read decodes the graph file and derives its edge weights.
func (a *app) read(ctx context.Context) (*problem, error) {
	logger := loggerFromContext(ctx)

	f, err := readGraphFile(a.graphPath)
	if err != nil {
		return nil, err
	}
	name := a.metric
	if name == "" {
		name = a.cfg.Weights.Metric
	}
	metric, err := graph.ParseMetric(name)
	if err != nil {
		return nil, err
	}
	p, err := buildProblem(f, metric)
	if err != nil {
		return nil, err
	}
	logger.Debug("graph loaded", "file", a.graphPath, "vertices", p.base.NumVertices(), "edges", p.base.NumEdges())
	if p.rag != nil {
		logger.Debug("region adjacency graph", "regions", p.rag.NumVertices(), "edges", p.rag.NumEdges())
	}
	return p, nil
}

// load reads the graph file and builds its canonical binary partition tree.
func (a *app) load(ctx context.Context) (*problem, *hierarchy.BPT, error) {
	logger := loggerFromContext(ctx)

	p, err := a.read(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t := startTimer(logger)
	bpt, err := hierarchy.BPTCanonical(p.leaf, p.weights)
	if err != nil {
		return nil, nil, err
	}
	t.done("built binary partition tree", "nodes", bpt.Tree.NumNodes())
	return p, bpt, nil
}

func (a *app) write(v any) error {
	return encode(a.stdout, a.format, v)
}

func (a *app) buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Print the canonical binary partition tree of the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, bpt, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			return a.write(treeOutput{
				NumLeaves: bpt.Tree.NumLeaves(),
				Parents:   bpt.Tree.Parents(),
				Altitudes: bpt.Altitudes,
				MSTEdges:  bpt.MSTEdges,
			})
		},
	}
}

func (a *app) attributesCommand() *cobra.Command {
	var names []string
	var workers int

	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "Compute node attributes on the binary partition tree",
		Long: fmt.Sprintf(`Compute node attributes on the binary partition tree.

Available attributes: %v.
gaussian_region_model is reported as gaussian_mean and gaussian_variance.`, hierarchy.Attributes),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := a.cfg.attributeConfig(names)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			p, bpt, err := a.load(ctx)
			if err != nil {
				return err
			}
			cfg.LeafArea = p.leafArea
			cfg.LeafWeights = p.leafWeights
			cfg.LeafVariance = p.leafVariance
			cfg.Dims = p.dims
			cfg.EdgeWeights = p.weights
			if p.baseWeights != nil {
				cfg.EdgeWeights = p.baseWeights
			}

			t := startTimer(logger)
			set, err := hierarchy.ComputeAttributes(bpt.Tree, bpt.Altitudes, p.leaf, cfg)
			if err != nil {
				return err
			}
			t.done("computed attributes", "count", len(set))

			out := attributesOutput{
				NumLeaves:  bpt.Tree.NumLeaves(),
				NumNodes:   bpt.Tree.NumNodes(),
				Attributes: make(map[string][]float64, len(set)),
			}
			for name, values := range set {
				out.Attributes[string(name)] = values
			}
			return a.write(out)
		},
	}
	cmd.Flags().StringSliceVarP(&names, "attr", "a", nil, "attributes to compute (default from config, else area,volume,depth,regular_altitudes)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "attributes computed concurrently (0 = number of CPUs)")
	return cmd
}

func (a *app) levelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the horizontal cuts of the hierarchy, coarsest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, bpt, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			x, err := hierarchy.NewHorizontalCutExplorer(bpt.Tree, bpt.Altitudes)
			if err != nil {
				return err
			}
			levels := make([]levelOutput, x.NumCuts())
			for i := range levels {
				levels[i] = levelOutput{Index: i, Altitude: x.Altitude(i), Regions: x.NumRegions(i)}
			}
			return a.write(levels)
		},
	}
}

func (a *app) cutCommand() *cobra.Command {
	var (
		altitude   float64
		regions    int
		maxRegions int
		index      int
	)

	cmd := &cobra.Command{
		Use:   "cut",
		Short: "Extract one horizontal cut of the hierarchy",
		Long: `Extract one horizontal cut of the hierarchy, selected by exactly one of
--altitude (threshold), --regions (coarsest cut with at least that many
regions), --max-regions (finest cut with at most that many regions) or
--index (position in the list printed by "levels").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			selectors := 0
			for _, name := range []string{"altitude", "regions", "max-regions", "index"} {
				if flags.Changed(name) {
					selectors++
				}
			}
			if selectors != 1 {
				return errors.New("cut needs exactly one of --altitude, --regions, --max-regions, --index")
			}

			p, bpt, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			x, err := hierarchy.NewHorizontalCutExplorer(bpt.Tree, bpt.Altitudes)
			if err != nil {
				return err
			}

			var cut *hierarchy.HorizontalCutNodes
			switch {
			case flags.Changed("altitude"):
				cut, err = x.CutAtAltitude(altitude)
			case flags.Changed("regions"):
				cut, err = x.CutAtRegionCount(regions)
			case flags.Changed("max-regions"):
				cut, err = x.CutAtMostRegions(maxRegions)
			default:
				cut, err = x.CutAtIndex(index)
			}
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("selected cut", "altitude", cut.Altitude, "regions", cut.NumRegions())

			labels, err := cut.LabelVertices(bpt.Tree, p.leaf)
			if err != nil {
				return err
			}
			edges, err := cut.GraphCutEdges(bpt.Tree, p.leaf)
			if err != nil {
				return err
			}
			return a.write(cutOutput{
				Altitude:   cut.Altitude,
				NumRegions: cut.NumRegions(),
				Nodes:      cut.Nodes,
				Labels:     labels,
				CutEdges:   edges,
			})
		},
	}
	cmd.Flags().Float64Var(&altitude, "altitude", 0, "threshold altitude")
	cmd.Flags().IntVar(&regions, "regions", 0, "minimum number of regions")
	cmd.Flags().IntVar(&maxRegions, "max-regions", 0, "maximum number of regions")
	cmd.Flags().IntVar(&index, "index", 0, "cut index, 0 being the coarsest")
	return cmd
}

func (a *app) watershedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watershed",
		Short: "Label the watershed cut of the graph",
		Long: `Label the watershed cut of the graph: one basin per minimum of the edge
weights, or one per seed label when the graph file has seeds.

The cut is computed on the input graph. When weights are given per region
edge it is computed on the region adjacency graph instead and labels are
spread back to the input vertices; seeds are not supported then.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.read(ctx)
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			onRegions := p.baseWeights == nil
			g, weights := p.base, p.baseWeights
			if onRegions {
				g, weights = p.leaf, p.weights
			}

			var labels []int
			switch {
			case p.seeds == nil:
				labels, err = hierarchy.LabelisationWatershed(g, weights)
			case onRegions:
				return errors.New("seeds need weights on the graph edges, not on region edges")
			default:
				labels, err = hierarchy.LabelisationSeededWatershed(g, weights, p.seeds, p.background)
			}
			if err != nil {
				return err
			}
			if onRegions {
				if labels, err = hierarchy.BackProjectVertices(p.rag, labels); err != nil {
					return err
				}
			}

			basins := make(map[int]struct{})
			for _, l := range labels {
				basins[l] = struct{}{}
			}
			loggerFromContext(ctx).Debug("watershed cut", "basins", len(basins), "seeded", p.seeds != nil)
			return a.write(watershedOutput{NumRegions: len(basins), Labels: labels})
		},
	}
}
