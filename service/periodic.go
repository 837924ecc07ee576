package service

import (
	"context"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// PeriodicConfig encapsulates the settings for a Periodic service.
type PeriodicConfig struct {
	// The name reported by the service.
	Name string

	// The time between two job executions.
	Interval time.Duration

	// The job to execute. A job error stops the service.
	Job func(context.Context) error

	// A clock instance for scheduling jobs. If not specified, the wall
	// clock is used.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *PeriodicConfig) validate() error {
	var err error
	if cfg.Name == "" {
		err = multierror.Append(err, xerrors.Errorf("service name not specified"))
	}
	if cfg.Interval <= 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid interval %s", cfg.Interval))
	}
	if cfg.Job == nil {
		err = multierror.Append(err, xerrors.Errorf("job not specified"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Periodic executes a job on a fixed interval.
type Periodic struct {
	cfg PeriodicConfig
}

func NewPeriodic(cfg PeriodicConfig) (*Periodic, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("periodic service config validation failed: %w", err)
	}
	return &Periodic{cfg: cfg}, nil
}

func (p *Periodic) Name() string { return p.cfg.Name }

// Run blocks until ctx is cancelled or the job fails. The first job runs
// one interval after Run is called.
func (p *Periodic) Run(ctx context.Context) error {
	logger := p.cfg.Logger.WithField("service", p.cfg.Name)
	logger.WithField("interval", p.cfg.Interval.String()).Info("started")
	defer logger.Info("stopped")

	for runs := 1; ; runs++ {
		select {
		case <-ctx.Done():
			return nil
		case <-p.cfg.Clock.After(p.cfg.Interval):
		}

		start := p.cfg.Clock.Now()
		if err := p.cfg.Job(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logger.WithFields(logrus.Fields{
			"run":      runs,
			"duration": p.cfg.Clock.Now().Sub(start).String(),
		}).Info("job completed")
	}
}
