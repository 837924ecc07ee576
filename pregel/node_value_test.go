package pregel_test

import (
	"context"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(NodeValueTestSuite))

type NodeValueTestSuite struct{}

func (s *NodeValueTestSuite) TestDefaults(c *gc.C) {
	schema := mustSchema(c, pregel.NewSchemaBuilder().
		Add("zero", graph.Long).
		AddElement(pregel.Element{PropertyKey: "long", ValueType: graph.Long, DefaultValue: int64(7)}).
		AddElement(pregel.Element{PropertyKey: "double", ValueType: graph.Double, DefaultValue: 1.5}).
		AddElement(pregel.Element{PropertyKey: "longs", ValueType: graph.LongArray, DefaultValue: []int64{1, 2}}).
		AddElement(pregel.Element{PropertyKey: "doubles", ValueType: graph.DoubleArray, DefaultValue: []float64{0.5}}))

	// Spans several pages of the backing arrays.
	nodeCount := int64(40000)
	nv := pregel.NewNodeValue(schema, nodeCount, 4)
	defer nv.Release()

	c.Assert(nv.NodeCount(), gc.Equals, nodeCount)
	for _, node := range []int64{0, 16383, 16384, nodeCount - 1} {
		c.Assert(nv.LongValue("zero", node), gc.Equals, int64(0))
		c.Assert(nv.LongValue("long", node), gc.Equals, int64(7))
		c.Assert(nv.DoubleValue("double", node), gc.Equals, 1.5)
		c.Assert(nv.LongArrayValue("longs", node), gc.DeepEquals, []int64{1, 2})
		c.Assert(nv.DoubleArrayValue("doubles", node), gc.DeepEquals, []float64{0.5})
	}

	// Array defaults are not shared between rows.
	nv.LongArrayValue("longs", 0)[0] = 99
	c.Assert(nv.LongArrayValue("longs", 1), gc.DeepEquals, []int64{1, 2})
}

func (s *NodeValueTestSuite) TestSetAndGet(c *gc.C) {
	schema := mustSchema(c, pregel.NewSchemaBuilder().
		Add("l", graph.Long).
		Add("d", graph.Double).
		Add("la", graph.LongArray).
		Add("da", graph.DoubleArray))
	nv := pregel.NewNodeValue(schema, 3, 1)

	nv.SetLong("l", 2, -4)
	nv.SetDouble("d", 1, 3.25)
	nv.SetLongArray("la", 0, []int64{5})
	nv.SetDoubleArray("da", 2, []float64{1, 2, 3})

	c.Assert(nv.LongValue("l", 2), gc.Equals, int64(-4))
	c.Assert(nv.LongValue("l", 1), gc.Equals, int64(0))
	c.Assert(nv.DoubleValue("d", 1), gc.Equals, 3.25)
	c.Assert(nv.LongArrayValue("la", 0), gc.DeepEquals, []int64{5})
	c.Assert(nv.LongArrayValue("la", 1), gc.IsNil)
	c.Assert(nv.DoubleArrayValue("da", 2), gc.DeepEquals, []float64{1, 2, 3})

	pv, ok := nv.PropertyValues("d")
	c.Assert(ok, gc.Equals, true)
	c.Assert(pv.ValueType(), gc.Equals, graph.Double)
	c.Assert(pv.DoubleValue(1), gc.Equals, 3.25)

	_, ok = nv.PropertyValues("missing")
	c.Assert(ok, gc.Equals, false)
}

func (s *NodeValueTestSuite) TestInvalidAccessPanics(c *gc.C) {
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("l", graph.Long))
	nv := pregel.NewNodeValue(schema, 2, 1)

	c.Assert(func() { nv.LongValue("l", 2) }, gc.PanicMatches, `hugearray: index 2 out of range \[0, 2\)`)
	c.Assert(func() { nv.LongValue("l", -1) }, gc.PanicMatches, `hugearray: index -1 out of range \[0, 2\)`)

	err := recoveredError(func() { nv.DoubleValue("l", 0) })
	c.Assert(xerrors.Is(err, pregel.ErrValueTypeMismatch), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `node value "l" is LONG, accessed as DOUBLE: .*`)

	err = recoveredError(func() { nv.SetLong("nope", 0, 1) })
	c.Assert(xerrors.Is(err, pregel.ErrUnknownProperty), gc.Equals, true)
}

func (s *NodeValueTestSuite) TestPropertyProjectionRoundTrip(c *gc.C) {
	b := memory.NewBuilder(3)
	c.Assert(b.AddNodeProperty("age", memory.LongProperty{30, 40, 50}), gc.IsNil)
	c.Assert(b.AddNodeProperty("score", memory.DoubleProperty{0.1, 0.2, 0.3}), gc.IsNil)
	c.Assert(b.AddNodeProperty("tags", memory.LongArrayProperty{{1}, {2, 3}, nil}), gc.IsNil)
	c.Assert(b.AddNodeProperty("embedding", memory.DoubleArrayProperty{{1, 0}, {0, 1}, {0.5, 0.5}}), gc.IsNil)
	g := b.Build()

	schema := mustSchema(c, pregel.NewSchemaBuilder().
		AddFromProperty("age", graph.Long, "age").
		AddFromProperty("score", graph.Double, "score").
		AddFromProperty("tags", graph.LongArray, "tags").
		AddFromProperty("vec", graph.DoubleArray, "embedding"))

	nv := pregel.NewNodeValue(schema, g.NodeCount(), 2)
	defer nv.Release()
	c.Assert(pregel.ProjectProperties(g, nv, 2), gc.IsNil)
	for node := int64(0); node < 3; node++ {
		age, _ := g.NodeProperties("age")
		score, _ := g.NodeProperties("score")
		tags, _ := g.NodeProperties("tags")
		vec, _ := g.NodeProperties("embedding")
		c.Assert(nv.LongValue("age", node), gc.Equals, age.LongValue(node))
		c.Assert(nv.DoubleValue("score", node), gc.Equals, score.DoubleValue(node))
		c.Assert(len(nv.LongArrayValue("tags", node)), gc.Equals, len(tags.LongArrayValue(node)))
		c.Assert(nv.DoubleArrayValue("vec", node), gc.DeepEquals, vec.DoubleArrayValue(node))
	}
	c.Assert(nv.LongArrayValue("tags", 1), gc.DeepEquals, []int64{2, 3})

	// Projected arrays are copies.
	nv.DoubleArrayValue("vec", 0)[0] = 42
	vec, _ := g.NodeProperties("embedding")
	c.Assert(vec.DoubleArrayValue(0)[0], gc.Equals, 1.0)
}

func (s *NodeValueTestSuite) TestComputeWritesOwnRowsConcurrently(c *gc.C) {
	g := memory.NewBuilder(100000).Build()
	schema := mustSchema(c, pregel.NewSchemaBuilder().Add("id", graph.Long))

	ex, err := pregel.NewExecutor(pregel.ExecutorConfig[noConfig, int64]{
		Graph:  g,
		Config: pregel.Config{Concurrency: 16, MaxIterations: 1},
		Schema: schema,
		Program: pregel.Funcs[noConfig, int64]{
			ComputeFn: func(ctx *pregel.ComputeContext[noConfig, int64], _ *message.Iterator[int64]) error {
				ctx.SetLong("id", ctx.NodeID()*2)
				return nil
			},
		},
	})
	c.Assert(err, gc.IsNil)
	res, err := ex.Run(context.TODO())
	c.Assert(err, gc.IsNil)
	for node := int64(0); node < g.NodeCount(); node++ {
		if got := res.NodeValues.LongValue("id", node); got != node*2 {
			c.Fatalf("node %d: expected %d, got %d", node, node*2, got)
		}
	}
}

func recoveredError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}
