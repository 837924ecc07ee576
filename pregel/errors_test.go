package pregel_test

import (
	"context"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/mocks"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/golang/mock/gomock"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(FailureTestSuite))

type FailureTestSuite struct{}

var errBoom = xerrors.New("boom")

func (s *FailureTestSuite) TestConfigValidation(c *gc.C) {
	_, err := pregel.NewExecutor(pregel.ExecutorConfig[noConfig, int64]{
		Config: pregel.Config{Concurrency: 0, MaxIterations: -1},
	})
	c.Assert(err, gc.ErrorMatches, "(?s)pregel config validation failed: .*")
	c.Assert(err, gc.ErrorMatches, "(?s).*concurrency must be at least 1, got 0.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*max iterations must be at least 1, got -1.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*graph not specified.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*schema not specified.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*vertex program not specified.*")
}

func (s *FailureTestSuite) TestComputeError(c *gc.C) {
	g := memory.NewBuilder(4).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))

	res, err := runProgram(c, g, schema, 5, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
			if ctx.Superstep() == 1 && ctx.NodeID() == 3 {
				return errBoom
			}
			return nil
		},
	})
	c.Assert(res, gc.IsNil)
	c.Assert(err, gc.ErrorMatches, "error while running compute function for node 3: boom")
	c.Assert(xerrors.Is(err, errBoom), gc.Equals, true)
}

func (s *FailureTestSuite) TestComputePanic(c *gc.C) {
	g := memory.NewBuilder(4).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))

	res, err := runProgram(c, g, schema, 5, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
			if ctx.NodeID() == 2 {
				panic("bad state")
			}
			return nil
		},
	})
	c.Assert(res, gc.IsNil)
	c.Assert(err, gc.ErrorMatches, "error while running compute function for node 2: panic: bad state")
}

func (s *FailureTestSuite) TestWrongAccessorInComputeIsAnError(c *gc.C) {
	g := memory.NewBuilder(1).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))

	_, err := runProgram(c, g, schema, 5, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
			ctx.SetDouble("value", 1.0)
			return nil
		},
	})
	c.Assert(xerrors.Is(err, pregel.ErrValueTypeMismatch), gc.Equals, true)

	_, err = runProgram(c, g, schema, 5, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
			_ = ctx.LongValue("missing")
			return nil
		},
	})
	c.Assert(xerrors.Is(err, pregel.ErrUnknownProperty), gc.Equals, true)
}

func (s *FailureTestSuite) TestInitError(c *gc.C) {
	g := memory.NewBuilder(4).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))

	computed := false
	_, err := runProgram(c, g, schema, 5, pregel.Funcs[noConfig, int64]{
		InitFn: func(ctx *pregel.InitContext[noConfig]) error {
			if ctx.NodeID() == 0 {
				return errBoom
			}
			return nil
		},
		ComputeFn: func(*pregel.ComputeContext[noConfig, int64], *message.Iterator[int64]) error {
			computed = true
			return nil
		},
	})
	c.Assert(err, gc.ErrorMatches, "error while running init function for node 0: boom")
	c.Assert(computed, gc.Equals, false)
}

func (s *FailureTestSuite) TestMasterComputeError(c *gc.C) {
	g := memory.NewBuilder(2).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))

	_, err := runProgram(c, g, schema, 5, pregel.Funcs[noConfig, int64]{
		MasterComputeFn: func(ctx *pregel.MasterComputeContext[noConfig]) (bool, error) {
			if ctx.Superstep() == 1 {
				return false, errBoom
			}
			return false, nil
		},
	})
	c.Assert(err, gc.ErrorMatches, "error while running master compute in superstep 1: boom")
}

func (s *FailureTestSuite) TestCancelledBeforeRun(c *gc.C) {
	g := memory.NewBuilder(2).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))
	ex, err := pregel.NewExecutor(pregel.ExecutorConfig[noConfig, int64]{
		Graph:   g,
		Config:  pregel.Config{Concurrency: 1, MaxIterations: 3},
		Schema:  schema,
		Program: pregel.Funcs[noConfig, int64]{},
	})
	c.Assert(err, gc.IsNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := ex.Run(ctx)
	c.Assert(res, gc.IsNil)
	c.Assert(xerrors.Is(err, context.Canceled), gc.Equals, true)
}

func (s *FailureTestSuite) TestCancelledBetweenSupersteps(c *gc.C) {
	g := memory.NewBuilder(8).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("value", graph.Long))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ex, err := pregel.NewExecutor(pregel.ExecutorConfig[noConfig, int64]{
		Graph:  g,
		Config: pregel.Config{Concurrency: 2, MaxIterations: 10},
		Schema: schema,
		Program: pregel.Funcs[noConfig, int64]{
			ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
				ctx.SetLong("value", ctx.LongValue("value")+1)
				return nil
			},
			MasterComputeFn: func(ctx *pregel.MasterComputeContext[noConfig]) (bool, error) {
				if ctx.Superstep() == 1 {
					cancel()
				}
				return false, nil
			},
		},
	})
	c.Assert(err, gc.IsNil)

	res, err := ex.Run(ctx)
	c.Assert(res, gc.IsNil)
	c.Assert(err, gc.ErrorMatches, "pregel run interrupted before superstep 2: context canceled")
}

func (s *FailureTestSuite) TestMissingSourcePropertyKeepsDefaults(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	g := mocks.NewMockGraph(ctrl)
	g.EXPECT().NodeCount().Return(int64(3)).AnyTimes()
	g.EXPECT().RelationshipCount().Return(int64(0)).AnyTimes()
	g.EXPECT().NodeProperties("seed").Return(nil, false)

	schema := mustSchema(c, pregel.NewSchemaBuilder().AddElement(pregel.Element{
		PropertyKey:    "rank",
		ValueType:      graph.Double,
		SourceProperty: "seed",
		DefaultValue:   0.25,
	}))
	res, err := runProgram(c, g, schema, 1, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
			ctx.VoteToHalt()
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	for node := int64(0); node < 3; node++ {
		c.Assert(res.NodeValues.DoubleValue("rank", node), gc.Equals, 0.25)
	}
}

func (s *FailureTestSuite) TestSourcePropertyTypeMismatch(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	props := mocks.NewMockPropertyValues(ctrl)
	props.EXPECT().ValueType().Return(graph.Double).AnyTimes()

	g := mocks.NewMockGraph(ctrl)
	g.EXPECT().NodeCount().Return(int64(3)).AnyTimes()
	g.EXPECT().RelationshipCount().Return(int64(0)).AnyTimes()
	g.EXPECT().NodeProperties("community").Return(props, true)

	schema := mustSchema(c, pregel.NewSchemaBuilder().AddFromProperty("label", graph.Long, "community"))
	computed := false
	res, err := runProgram(c, g, schema, 1, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(*pregel.ComputeContext[noConfig, int64], *message.Iterator[int64]) error {
			computed = true
			return nil
		},
	})
	c.Assert(res, gc.IsNil)
	c.Assert(xerrors.Is(err, pregel.ErrPropertyTypeMismatch), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `project property "community" into "label": found DOUBLE, expected LONG: .*`)
	c.Assert(computed, gc.Equals, false)
}

func (s *FailureTestSuite) TestShortSourcePropertyIsAnError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	g := mocks.NewMockGraph(ctrl)
	g.EXPECT().NodeCount().Return(int64(3)).AnyTimes()
	g.EXPECT().RelationshipCount().Return(int64(0)).AnyTimes()
	g.EXPECT().NodeProperties("seed").Return(memory.LongProperty{7}, true)

	schema := mustSchema(c, pregel.NewSchemaBuilder().AddFromProperty("value", graph.Long, "seed"))
	computed := false
	res, err := runProgram(c, g, schema, 1, pregel.Funcs[noConfig, int64]{
		ComputeFn: func(*pregel.ComputeContext[noConfig, int64], *message.Iterator[int64]) error {
			computed = true
			return nil
		},
	})
	c.Assert(res, gc.IsNil)
	c.Assert(err, gc.ErrorMatches, `project property "seed" into "value": nodes \[\d+, \d+\): runtime error: index out of range .*`)
	c.Assert(computed, gc.Equals, false)
}
