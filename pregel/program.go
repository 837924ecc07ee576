package pregel

import "github.com/Ahmed-Sermani/go-pregel/pregel/message"

// VertexProgram is implemented by algorithms that run on the Pregel engine.
// C is the algorithm configuration and M the message payload type.
//
// Init is invoked once per node before the first superstep. Compute is
// invoked once per active node and superstep. Both may run concurrently for
// different nodes and must only touch the row of the node they are invoked
// for. Any error returned, or panic raised, aborts the whole run.
type VertexProgram[C, M any] interface {
	Init(ctx *InitContext[C]) error
	Compute(ctx *ComputeContext[C, M], messages *message.Iterator[M]) error
}

// MasterComputer is an optional capability of a VertexProgram. MasterCompute
// runs single-threaded after every superstep; returning true terminates the
// run.
type MasterComputer[C any] interface {
	MasterCompute(ctx *MasterComputeContext[C]) (bool, error)
}

// Funcs adapts plain functions to a VertexProgram. Nil functions are no-ops.
type Funcs[C, M any] struct {
	InitFn          func(ctx *InitContext[C]) error
	ComputeFn       func(ctx *ComputeContext[C, M], messages *message.Iterator[M]) error
	MasterComputeFn func(ctx *MasterComputeContext[C]) (bool, error)
}

var (
	_ VertexProgram[any, any] = Funcs[any, any]{}
	_ MasterComputer[any]     = Funcs[any, any]{}
)

func (f Funcs[C, M]) Init(ctx *InitContext[C]) error {
	if f.InitFn == nil {
		return nil
	}
	return f.InitFn(ctx)
}

func (f Funcs[C, M]) Compute(ctx *ComputeContext[C, M], messages *message.Iterator[M]) error {
	if f.ComputeFn == nil {
		return nil
	}
	return f.ComputeFn(ctx, messages)
}

func (f Funcs[C, M]) MasterCompute(ctx *MasterComputeContext[C]) (bool, error) {
	if f.MasterComputeFn == nil {
		return false, nil
	}
	return f.MasterComputeFn(ctx)
}
