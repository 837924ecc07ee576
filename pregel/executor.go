package pregel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Ahmed-Sermani/go-pregel/collections/bitset"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/Ahmed-Sermani/go-pregel/progress"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ExecutorConfig bundles everything needed to run a VertexProgram.
type ExecutorConfig[C, M any] struct {
	// The graph to run on.
	Graph graph.Graph

	// Engine parameters.
	Config Config

	// The algorithm configuration, passed opaquely to the program.
	AlgorithmConfig C

	// The per-node values of the computation.
	Schema *Schema

	// The program to execute. If it also implements MasterComputer, its
	// MasterCompute method runs after every superstep.
	Program VertexProgram[C, M]

	// The messenger to use. If not defined, a message.QueueMessenger is
	// allocated for the graph.
	Messenger message.Messenger[M]

	// Aggregators made available to compute and master compute steps.
	Aggregators map[string]Aggregator

	// Receives progress notifications. If not defined, progress is
	// discarded.
	Tracker progress.Tracker
}

func (cfg *ExecutorConfig[C, M]) validate() error {
	err := cfg.Config.validate()
	if cfg.Graph == nil {
		err = multierror.Append(err, xerrors.Errorf("graph not specified"))
	}
	if cfg.Schema == nil {
		err = multierror.Append(err, xerrors.Errorf("schema not specified"))
	}
	if cfg.Program == nil {
		err = multierror.Append(err, xerrors.Errorf("vertex program not specified"))
	}
	if cfg.Tracker == nil {
		cfg.Tracker = progress.Noop{}
	}
	if cfg.Aggregators == nil {
		cfg.Aggregators = make(map[string]Aggregator)
	}
	return err
}

// Executor owns the BSP loop of a single Pregel run: it sequences property
// projection, the parallel supersteps and master compute, and decides when
// the run terminates.
type Executor[C, M any] struct {
	cfg    ExecutorConfig[C, M]
	runID  uuid.UUID
	logger *logrus.Entry

	// mu serializes whole-table access to nodeValues between supersteps.
	// Compute workers write their own rows without holding it.
	mu         sync.RWMutex
	nodeValues *NodeValue

	state    atomic.Uint32
	consumed atomic.Bool
}

// NewExecutor validates cfg and returns an executor for a single run.
func NewExecutor[C, M any](cfg ExecutorConfig[C, M]) (*Executor[C, M], error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("pregel config validation failed: %w", err)
	}

	runID := uuid.New()
	return &Executor[C, M]{
		cfg:    cfg,
		runID:  runID,
		logger: cfg.Config.Logger.WithField("run_id", runID.String()),
	}, nil
}

// RunID returns the identifier used to tag the log output of this run.
func (ex *Executor[C, M]) RunID() uuid.UUID { return ex.runID }

// State returns the current state of the run.
func (ex *Executor[C, M]) State() State { return State(ex.state.Load()) }

// Run executes supersteps until every node voted to halt with no messages in
// flight, master compute requests termination, MaxIterations supersteps
// have run, the context is cancelled or an error occurs. Run may only be
// called once; a failed run produces no result.
func (ex *Executor[C, M]) Run(ctx context.Context) (*Result, error) {
	if !ex.consumed.CompareAndSwap(false, true) {
		return nil, ErrExecutorConsumed
	}

	tracker := ex.cfg.Tracker
	tracker.BeginSubTask("Pregel", 0)
	res, err := ex.run(ctx)
	if err != nil {
		tracker.EndSubTaskWithFailure("Pregel", err)
		ex.logger.WithError(err).Error("pregel run failed")
		return nil, err
	}
	tracker.EndSubTask("Pregel")
	return res, nil
}

func (ex *Executor[C, M]) run(ctx context.Context) (*Result, error) {
	var (
		cfg       = ex.cfg
		g         = cfg.Graph
		nodeCount = g.NodeCount()
		maxIter   = cfg.Config.MaxIterations
		tracker   = cfg.Tracker
	)
	ex.logger.WithFields(logrus.Fields{
		"nodes":          humanize.Comma(nodeCount),
		"relationships":  humanize.Comma(g.RelationshipCount()),
		"concurrency":    cfg.Config.Concurrency,
		"max_iterations": maxIter,
		"partitioning":   cfg.Config.Partitioning.String(),
	}).Info("starting pregel run")

	ex.mu.Lock()
	ex.nodeValues = NewNodeValue(cfg.Schema, nodeCount, cfg.Config.Concurrency)
	err := projectProperties(g, ex.nodeValues, cfg.Config.Concurrency, ex.logger)
	ex.mu.Unlock()
	if err != nil {
		return nil, err
	}

	messenger := cfg.Messenger
	if messenger == nil {
		messenger = message.NewQueueMessenger[M](nodeCount)
	}
	voteBits := bitset.NewAtomic(nodeCount)

	engine, err := newComputeEngine(
		g, cfg.Config, cfg.AlgorithmConfig, cfg.Program,
		ex.nodeValues, messenger, voteBits, cfg.Aggregators, tracker,
	)
	if err != nil {
		return nil, err
	}
	defer engine.release()

	ex.state.Store(uint32(Running))
	tracker.BeginSubTask("Initialization", nodeCount)
	if err := engine.initComputation(ctx); err != nil {
		tracker.EndSubTaskWithFailure("Initialization", err)
		return nil, err
	}
	tracker.EndSubTask("Initialization")

	master, hasMaster := cfg.Program.(MasterComputer[C])
	ranIterations, finalState := maxIter, ExhaustedIterations
	for superstep := 0; superstep < maxIter; superstep++ {
		if err := ctx.Err(); err != nil {
			return nil, xerrors.Errorf("pregel run interrupted before superstep %d: %w", superstep, err)
		}

		taskName := fmt.Sprintf("Compute iteration %d of %d", superstep+1, maxIter)
		tracker.BeginSubTask(taskName, nodeCount)
		engine.initIteration(superstep)
		if err := engine.runIteration(ctx); err != nil {
			tracker.EndSubTaskWithFailure(taskName, err)
			return nil, err
		}
		tracker.EndSubTask(taskName)

		terminate := false
		if hasMaster {
			if terminate, err = ex.runMasterCompute(ctx, master, superstep); err != nil {
				return nil, err
			}
		}
		converged := engine.hasConverged()

		ex.logger.WithFields(logrus.Fields{
			"superstep":      superstep,
			"active_nodes":   humanize.Comma(engine.activeInStep),
			"sent_messages":  engine.sentMessage,
			"master_stopped": terminate,
		}).Debug("superstep completed")

		if converged || terminate {
			ranIterations = superstep + 1
			finalState = TerminatedByMaster
			if converged {
				finalState = Converged
			}
			break
		}
	}
	ex.state.Store(uint32(finalState))

	ex.logger.WithFields(logrus.Fields{
		"ran_iterations": ranIterations,
		"state":          finalState.String(),
	}).Info("pregel run completed")

	ex.mu.RLock()
	defer ex.mu.RUnlock()
	return &Result{
		RunID:         ex.runID,
		NodeValues:    ex.nodeValues,
		RanIterations: ranIterations,
		DidConverge:   finalState != ExhaustedIterations,
		State:         finalState,
	}, nil
}

func (ex *Executor[C, M]) runMasterCompute(ctx context.Context, master MasterComputer[C], superstep int) (terminate bool, err error) {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = xerrors.Errorf("error while running master compute in superstep %d: %w", superstep, panicError(r))
		}
	}()

	mctx := &MasterComputeContext[C]{
		ctx:         ctx,
		g:           ex.cfg.Graph,
		config:      ex.cfg.AlgorithmConfig,
		nodeValues:  ex.nodeValues,
		superstep:   superstep,
		aggregators: ex.cfg.Aggregators,
		logger:      ex.logger,
	}
	if terminate, err = master.MasterCompute(mctx); err != nil {
		return false, xerrors.Errorf("error while running master compute in superstep %d: %w", superstep, err)
	}
	return terminate, nil
}
