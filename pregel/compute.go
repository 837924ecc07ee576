package pregel

import (
	"context"

	"github.com/Ahmed-Sermani/go-pregel/collections/bitset"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/partition"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/Ahmed-Sermani/go-pregel/progress"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Workers look for cancellation every cancelCheckInterval nodes.
const cancelCheckInterval = 1 << 10

// computeEngine executes the init and compute functions of a program over
// statically assigned node partitions.
type computeEngine[C, M any] struct {
	g           graph.Graph
	config      C
	program     VertexProgram[C, M]
	nodeValues  *NodeValue
	messenger   message.Messenger[M]
	voteBits    *bitset.Atomic
	aggregators map[string]Aggregator
	tracker     progress.Tracker
	concurrency int

	partitions []partition.Partition
	workers    []*worker[C, M]

	superstep    int
	sentMessage  bool
	activeInStep int64
}

// worker holds the scratch state of one partition. Scratch state is reused
// across supersteps and only touched by the goroutine processing the
// partition.
type worker[C, M any] struct {
	part       partition.Partition
	initCtx    InitContext[C]
	computeCtx ComputeContext[C, M]
	it         *message.Iterator[M]
	active     int64
}

func newComputeEngine[C, M any](
	g graph.Graph,
	cfg Config,
	algoConfig C,
	program VertexProgram[C, M],
	nodeValues *NodeValue,
	messenger message.Messenger[M],
	voteBits *bitset.Atomic,
	aggregators map[string]Aggregator,
	tracker progress.Tracker,
) (*computeEngine[C, M], error) {
	e := &computeEngine[C, M]{
		g:           g,
		config:      algoConfig,
		program:     program,
		nodeValues:  nodeValues,
		messenger:   messenger,
		voteBits:    voteBits,
		aggregators: aggregators,
		tracker:     tracker,
		concurrency: cfg.Concurrency,
	}

	if g.NodeCount() == 0 {
		return e, nil
	}

	var (
		r   partition.Range
		err error
	)
	switch cfg.Partitioning {
	case DegreePartitioning:
		r, err = partition.NewDegreeBalancedRange(g, cfg.Concurrency)
	default:
		r, err = partition.NewFullRange(g.NodeCount(), cfg.Concurrency)
	}
	if err != nil {
		return nil, xerrors.Errorf("partition nodes: %w", err)
	}

	e.partitions = r.Partitions()
	e.workers = make([]*worker[C, M], len(e.partitions))
	for i, p := range e.partitions {
		base := nodeContext[C]{g: g, config: algoConfig, nodeValues: nodeValues}
		e.workers[i] = &worker[C, M]{
			part:    p,
			initCtx: InitContext[C]{nodeContext: base},
			computeCtx: ComputeContext[C, M]{
				nodeContext: base,
				messenger:   messenger,
				voteBits:    voteBits,
				aggregators: aggregators,
			},
			it: message.NewIterator[M](),
		}
	}
	return e, nil
}

// initComputation runs the program's Init function once for every node.
func (e *computeEngine[C, M]) initComputation(ctx context.Context) error {
	return e.forEachWorker(ctx, func(gctx context.Context, w *worker[C, M]) (err error) {
		node := w.part.Start
		defer func() {
			if r := recover(); r != nil {
				err = xerrors.Errorf("error while running init function for node %d: %w", node, panicError(r))
			}
		}()

		w.initCtx.ctx = ctx
		for ; node < w.part.End; node++ {
			if (node-w.part.Start)%cancelCheckInterval == 0 && gctx.Err() != nil {
				return gctx.Err()
			}
			w.initCtx.node = node
			if err := e.program.Init(&w.initCtx); err != nil {
				return xerrors.Errorf("error while running init function for node %d: %w", node, err)
			}
		}
		e.tracker.LogProgress(w.part.Len())
		return nil
	})
}

// initIteration prepares the messenger for the given superstep. It must be
// called exactly once per superstep, between supersteps.
func (e *computeEngine[C, M]) initIteration(superstep int) {
	e.superstep = superstep
	e.sentMessage = false
	e.activeInStep = 0
	e.messenger.InitIteration(superstep)
}

// runIteration executes one superstep. A node is processed if it has not
// voted to halt or if it received messages; receiving messages clears its
// vote.
func (e *computeEngine[C, M]) runIteration(ctx context.Context) error {
	err := e.forEachWorker(ctx, func(gctx context.Context, w *worker[C, M]) (err error) {
		node := w.part.Start
		defer func() {
			if r := recover(); r != nil {
				err = xerrors.Errorf("error while running compute function for node %d: %w", node, panicError(r))
			}
		}()

		cctx := &w.computeCtx
		cctx.ctx = ctx
		cctx.superstep = e.superstep
		cctx.sent = false
		w.active = 0
		for ; node < w.part.End; node++ {
			if (node-w.part.Start)%cancelCheckInterval == 0 && gctx.Err() != nil {
				return gctx.Err()
			}

			e.messenger.InitMessageIterator(w.it, node)
			if e.voteBits.Get(node) {
				if w.it.IsEmpty() {
					continue
				}
				e.voteBits.Clear(node)
			}

			cctx.node = node
			if err := e.program.Compute(cctx, w.it); err != nil {
				return xerrors.Errorf("error while running compute function for node %d: %w", node, err)
			}
			w.active++
		}
		e.tracker.LogProgress(w.part.Len())
		return nil
	})
	if err != nil {
		return err
	}

	for _, w := range e.workers {
		e.sentMessage = e.sentMessage || w.computeCtx.sent
		e.activeInStep += w.active
	}
	return nil
}

// hasConverged reports whether every node voted to halt and no message was
// sent during the last superstep.
func (e *computeEngine[C, M]) hasConverged() bool {
	return !e.sentMessage && e.voteBits.AllSet()
}

// release drops worker scratch state and the messenger buffers.
func (e *computeEngine[C, M]) release() {
	e.workers = nil
	e.messenger.Release()
}

func (e *computeEngine[C, M]) forEachWorker(ctx context.Context, fn func(context.Context, *worker[C, M]) error) error {
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.concurrency)
	for _, w := range e.workers {
		w := w
		grp.Go(func() error { return fn(gctx, w) })
	}
	return grp.Wait()
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return xerrors.Errorf("panic: %v", r)
}
