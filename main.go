package main

import (
	"context"
	"io"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Ahmed-Sermani/go-pregel/algorithms/pagerank"
	"github.com/Ahmed-Sermani/go-pregel/algorithms/sssp"
	"github.com/Ahmed-Sermani/go-pregel/algorithms/wcc"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/cdb"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/edgelist"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/progress"
	"github.com/Ahmed-Sermani/go-pregel/service"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"
)

var (
	appName = "pregel"
	appSha  = ""
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP)
	defer cancel()

	if err := newRootCmd(rootLogger, logger, os.Stdout).ExecuteContext(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		cancel()
		os.Exit(1)
	}
}

func newRootCmd(rootLogger *logrus.Logger, logger *logrus.Entry, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Run vertex-centric graph algorithms on the Pregel engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newRunCmd(rootLogger, logger, out),
		newServeCmd(rootLogger, logger),
	)
	return rootCmd
}

func newRunCmd(rootLogger *logrus.Logger, logger *logrus.Entry, out io.Writer) *cobra.Command {
	cfg := defaultRunConfig()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute an algorithm and print the per-node results",
		Example: `  pregel run --algorithm pagerank --graph-uri file://graph.txt
  pregel run --algorithm sssp --source-node 42 --graph-uri postgresql://root@localhost:26257/graph?sslmode=disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile != "" {
				if err := overlayConfigFile(cmd.Flags(), cfgFile, &cfg); err != nil {
					return err
				}
			}
			if err := configureLogger(rootLogger, cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, logger, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "An optional TOML file with run settings; explicitly set flags take precedence")
	registerRunFlags(flags, &cfg)
	return cmd
}

// registerRunFlags binds the flags shared by the run and serve commands.
func registerRunFlags(flags *pflag.FlagSet, cfg *runConfig) {
	flags.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "The algorithm to run (supported values: pagerank, wcc, sssp)")
	flags.StringVar(&cfg.GraphURI, "graph-uri", cfg.GraphURI, "The URI of the graph to load (supported URIs: file:///path/to/edges.txt, postgresql://user@host:26257/graph?sslmode=disable)")
	flags.BoolVar(&cfg.Undirected, "undirected", cfg.Undirected, "Add the reverse of every relationship when loading edge lists")
	flags.StringVar(&cfg.WriteProperty, "write-property", cfg.WriteProperty, "Write the main result property back to the graph store under this key (postgresql:// graphs only)")
	flags.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "The number of workers that execute each superstep (defaults to number of CPUs)")
	flags.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "The maximum number of supersteps to execute")
	flags.StringVar(&cfg.Partitioning, "partitioning", cfg.Partitioning, "How nodes are split across workers (supported values: range, degree)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "The log level (panic, fatal, error, warn, info, debug, trace)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "The log format (text, json)")
	flags.Float64Var(&cfg.PageRank.DampingFactor, "damping-factor", cfg.PageRank.DampingFactor, "The PageRank damping factor")
	flags.Float64Var(&cfg.PageRank.Tolerance, "tolerance", cfg.PageRank.Tolerance, "PageRank stops once the sum of absolute score differences falls below this value")
	flags.Int64Var(&cfg.SSSP.SourceNode, "source-node", cfg.SSSP.SourceNode, "The id of the SSSP source node as it appears in the graph source")
	flags.StringVar(&cfg.WCC.SeedProperty, "seed-property", cfg.WCC.SeedProperty, "An optional node property with initial WCC component ids")
}

func newServeCmd(rootLogger *logrus.Logger, logger *logrus.Entry) *cobra.Command {
	cfg := defaultRunConfig()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Periodically recompute an algorithm and write its results back to the graph store",
		Example: `  pregel serve --algorithm pagerank --interval 5m --write-property pagerank \
    --graph-uri postgresql://root@localhost:26257/graph?sslmode=disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile != "" {
				if err := overlayConfigFile(cmd.Flags(), cfgFile, &cfg); err != nil {
					return err
				}
			}
			if err := configureLogger(rootLogger, cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "An optional TOML file with run settings; explicitly set flags take precedence")
	registerRunFlags(flags, &cfg)
	flags.DurationVar(&cfg.Interval, "interval", cfg.Interval, "The time between two recomputations")
	return cmd
}

func serve(ctx context.Context, cfg runConfig, logger *logrus.Entry) error {
	if cfg.WriteProperty == "" {
		return xerrors.Errorf("serve requires --write-property")
	}
	if uri, err := url.Parse(cfg.GraphURI); err != nil || uri.Scheme != "postgresql" {
		return xerrors.Errorf("serve requires a postgresql:// graph URI")
	}

	svcLogger := logger.WithField("algorithm", cfg.Algorithm)
	recompute, err := service.NewPeriodic(service.PeriodicConfig{
		Name:     cfg.Algorithm + "-recompute",
		Interval: cfg.Interval,
		Logger:   svcLogger,
		Job: func(ctx context.Context) error {
			return compute(ctx, cfg, svcLogger, nil)
		},
	})
	if err != nil {
		return err
	}
	return service.Group{recompute}.Run(ctx)
}

func run(ctx context.Context, cfg runConfig, logger *logrus.Entry, out io.Writer) error {
	return compute(ctx, cfg, logger, func(src *graphSource, res *pregel.Result) error {
		return writeResult(out, res, src.ids)
	})
}

// compute loads the configured graph, runs the configured algorithm and
// writes the main result property back if requested. onResult, if not nil,
// is invoked before the result is released.
func compute(ctx context.Context, cfg runConfig, logger *logrus.Entry, onResult func(*graphSource, *pregel.Result) error) error {
	engineCfg, err := cfg.engineConfig(logger)
	if err != nil {
		return err
	}

	src, err := openGraph(ctx, cfg.GraphURI, cfg.Undirected, logger)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	logger.WithFields(logrus.Fields{
		"nodes":         humanize.Comma(src.g.NodeCount()),
		"relationships": humanize.Comma(src.g.RelationshipCount()),
	}).Info("graph loaded")

	tracker := progress.NewLogTracker(logger.WithField("algorithm", cfg.Algorithm), clock.WallClock)
	res, mainProperty, err := runAlgorithm(ctx, cfg, src, engineCfg, tracker)
	if err != nil {
		return err
	}
	defer res.NodeValues.Release()

	logger.WithFields(logrus.Fields{
		"algorithm":      cfg.Algorithm,
		"run_id":         res.RunID.String(),
		"ran_iterations": res.RanIterations,
		"did_converge":   res.DidConverge,
		"state":          res.State.String(),
	}).Info("algorithm completed")

	if cfg.WriteProperty != "" {
		if err := src.writeBack(ctx, cfg.WriteProperty, res, mainProperty); err != nil {
			return err
		}
		logger.WithField("property", cfg.WriteProperty).Info("results written back to graph store")
	}
	if onResult == nil {
		return nil
	}
	return onResult(src, res)
}

func runAlgorithm(ctx context.Context, cfg runConfig, src *graphSource, engineCfg pregel.Config, tracker progress.Tracker) (*pregel.Result, string, error) {
	switch cfg.Algorithm {
	case "pagerank":
		r, err := pagerank.NewRanker(pagerank.Config{
			DampingFactor:        cfg.PageRank.DampingFactor,
			MinSADForConvergence: cfg.PageRank.Tolerance,
			Pregel:               engineCfg,
			Tracker:              tracker,
		})
		if err != nil {
			return nil, "", err
		}
		res, err := r.Run(ctx, src.g)
		return res, pagerank.ScoreProperty, err
	case "wcc":
		res, err := wcc.Run(ctx, src.g, wcc.Config{
			SeedProperty: cfg.WCC.SeedProperty,
			IDs:          src.ids,
			Pregel:       engineCfg,
			Tracker:      tracker,
		})
		return res, wcc.ComponentProperty, err
	case "sssp":
		source, ok := src.ids.ToInternal(cfg.SSSP.SourceNode)
		if !ok {
			return nil, "", xerrors.Errorf("source node %d: %w", cfg.SSSP.SourceNode, graph.ErrUnknownNode)
		}
		res, err := sssp.Run(ctx, src.g, sssp.Config{
			SourceNode: source,
			Pregel:     engineCfg,
			Tracker:    tracker,
		})
		return res, sssp.DistanceProperty, err
	default:
		return nil, "", xerrors.Errorf("unsupported algorithm %q", cfg.Algorithm)
	}
}

// graphSource is a loaded graph together with the store it came from.
type graphSource struct {
	g     graph.Graph
	ids   *graph.IDMap
	store *cdb.CockroachDBStore
}

func (s *graphSource) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *graphSource) writeBack(ctx context.Context, key string, res *pregel.Result, property string) error {
	if s.store == nil {
		return xerrors.Errorf("write-property is only supported for postgresql:// graphs")
	}
	values, ok := res.NodeValues.PropertyValues(property)
	if !ok {
		return xerrors.Errorf("result has no property %q", property)
	}
	return s.store.WriteNodeProperty(ctx, key, values, s.ids)
}

func openGraph(ctx context.Context, graphURI string, undirected bool, logger *logrus.Entry) (*graphSource, error) {
	if graphURI == "" {
		return nil, xerrors.Errorf("graph URI must be specified with --graph-uri")
	}

	uri, err := url.Parse(graphURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse graph URI: %w", err)
	}

	switch uri.Scheme {
	case "file":
		logger.WithField("path", uri.Path).Info("using edge list graph")
		g, ids, err := edgelist.LoadFile(uri.Path, edgelist.Options{Undirected: undirected})
		if err != nil {
			return nil, err
		}
		return &graphSource{g: g, ids: ids}, nil
	case "postgresql":
		logger.Info("using CDB graph")
		store, err := cdb.NewCockroachDBStore(graphURI)
		if err != nil {
			return nil, err
		}
		g, ids, err := store.Load(ctx)
		if err != nil {
			if cErr := store.Close(); cErr != nil {
				err = multierror.Append(err, cErr)
			}
			return nil, err
		}
		return &graphSource{g: g, ids: ids, store: store}, nil
	default:
		return nil, xerrors.Errorf("unsupported graph URI scheme: %q", uri.Scheme)
	}
}

func defaultConcurrency() int { return runtime.NumCPU() }
