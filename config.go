package main

import (
	"time"

	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"
)

// runConfig holds the settings of the run and serve commands. It can be
// populated from a TOML file as well as from flags.
type runConfig struct {
	Algorithm     string `toml:"algorithm"`
	GraphURI      string `toml:"graph_uri"`
	Undirected    bool   `toml:"undirected"`
	WriteProperty string `toml:"write_property"`
	Concurrency   int    `toml:"concurrency"`
	MaxIterations int    `toml:"max_iterations"`
	Partitioning  string `toml:"partitioning"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`

	// Only used by the serve command.
	Interval time.Duration `toml:"-"`

	PageRank struct {
		DampingFactor float64 `toml:"damping_factor"`
		Tolerance     float64 `toml:"tolerance"`
	} `toml:"pagerank"`

	SSSP struct {
		SourceNode int64 `toml:"source_node"`
	} `toml:"sssp"`

	WCC struct {
		SeedProperty string `toml:"seed_property"`
	} `toml:"wcc"`
}

func defaultRunConfig() runConfig {
	cfg := runConfig{
		Algorithm:     "pagerank",
		Concurrency:   defaultConcurrency(),
		MaxIterations: 30,
		Partitioning:  pregel.RangePartitioning.String(),
		LogLevel:      "info",
		LogFormat:     "text",
		Interval:      10 * time.Minute,
	}
	cfg.PageRank.DampingFactor = 0.85
	cfg.PageRank.Tolerance = 1e-7
	return cfg
}

// overlayConfigFile loads filename into cfg. Flags that were set explicitly
// keep their command line values.
func overlayConfigFile(flags *pflag.FlagSet, filename string, cfg *runConfig) error {
	changed := make(map[string]string)
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return xerrors.Errorf("could not decode TOML config: %w", err)
	}

	for name, value := range changed {
		if err := flags.Set(name, value); err != nil {
			return xerrors.Errorf("reapply flag %q: %w", name, err)
		}
	}
	return nil
}

func (cfg runConfig) engineConfig(logger *logrus.Entry) (pregel.Config, error) {
	partitioning, err := pregel.ParsePartitioning(cfg.Partitioning)
	if err != nil {
		return pregel.Config{}, err
	}
	return pregel.Config{
		Concurrency:   cfg.Concurrency,
		MaxIterations: cfg.MaxIterations,
		Partitioning:  partitioning,
		Logger:        logger.WithField("component", "pregel"),
	}, nil
}

func configureLogger(logger *logrus.Logger, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return xerrors.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(lvl)

	switch format {
	case "text":
		logger.SetFormatter(new(logrus.TextFormatter))
	case "json":
		logger.SetFormatter(new(logrus.JSONFormatter))
	default:
		return xerrors.Errorf("unsupported log format %q", format)
	}
	return nil
}
