package pregel

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Partitioning selects how the node id space is split across workers.
type Partitioning uint8

const (
	// RangePartitioning splits the node ids into contiguous ranges of
	// equal size.
	RangePartitioning Partitioning = iota

	// DegreePartitioning splits the node ids into contiguous ranges that
	// carry roughly the same number of relationships.
	DegreePartitioning
)

func (p Partitioning) String() string {
	switch p {
	case RangePartitioning:
		return "range"
	case DegreePartitioning:
		return "degree"
	default:
		return "unknown"
	}
}

// ParsePartitioning is the inverse of Partitioning.String.
func ParsePartitioning(s string) (Partitioning, error) {
	switch s {
	case "range":
		return RangePartitioning, nil
	case "degree":
		return DegreePartitioning, nil
	default:
		return 0, xerrors.Errorf("unsupported partitioning %q", s)
	}
}

// Config holds the engine level parameters of a Pregel run. It is read-only
// once the run has started.
type Config struct {
	// The number of workers that execute each superstep.
	Concurrency int

	// The maximum number of supersteps to execute.
	MaxIterations int

	// The strategy used to split nodes across workers.
	Partitioning Partitioning

	// The logger to use. If not defined, output is discarded.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Concurrency <= 0 {
		err = multierror.Append(err, xerrors.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency))
	}
	if cfg.MaxIterations <= 0 {
		err = multierror.Append(err, xerrors.Errorf("max iterations must be at least 1, got %d", cfg.MaxIterations))
	}
	if cfg.Partitioning != RangePartitioning && cfg.Partitioning != DegreePartitioning {
		err = multierror.Append(err, xerrors.Errorf("unsupported partitioning %d", cfg.Partitioning))
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}
