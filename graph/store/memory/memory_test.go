package memory

import (
	"testing"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(InMemoryGraphTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type InMemoryGraphTestSuite struct{}

func (s *InMemoryGraphTestSuite) TestTopology(c *gc.C) {
	b := NewBuilder(4)
	c.Assert(b.AddRelationship(0, 1), gc.IsNil)
	c.Assert(b.AddRelationship(0, 2), gc.IsNil)
	c.Assert(b.AddRelationship(2, 3), gc.IsNil)
	c.Assert(b.AddRelationship(0, 3), gc.IsNil)
	g := b.Build()

	c.Assert(g.NodeCount(), gc.Equals, int64(4))
	c.Assert(g.RelationshipCount(), gc.Equals, int64(4))
	c.Assert(g.Degree(0), gc.Equals, 3)
	c.Assert(g.Degree(1), gc.Equals, 0)
	c.Assert(g.Degree(2), gc.Equals, 1)

	var targets []int64
	g.ForEachRelationship(0, func(t int64) bool {
		targets = append(targets, t)
		return true
	})
	c.Assert(targets, gc.DeepEquals, []int64{1, 2, 3})

	targets = targets[:0]
	g.ForEachRelationship(0, func(t int64) bool {
		targets = append(targets, t)
		return false
	})
	c.Assert(targets, gc.DeepEquals, []int64{1})
}

func (s *InMemoryGraphTestSuite) TestWeights(c *gc.C) {
	b := NewBuilder(3)
	c.Assert(b.AddWeightedRelationship(0, 1, 2.5), gc.IsNil)
	c.Assert(b.AddRelationship(0, 2), gc.IsNil)
	g := b.Build()

	var weights []float64
	g.ForEachWeightedRelationship(0, 42, func(_ int64, w float64) bool {
		weights = append(weights, w)
		return true
	})
	c.Assert(weights, gc.DeepEquals, []float64{2.5, 1.0})

	unweighted := NewBuilder(2)
	c.Assert(unweighted.AddRelationship(0, 1), gc.IsNil)
	unweighted.Build().ForEachWeightedRelationship(0, 42, func(_ int64, w float64) bool {
		c.Assert(w, gc.Equals, 42.0)
		return true
	})
}

func (s *InMemoryGraphTestSuite) TestUnknownNode(c *gc.C) {
	b := NewBuilder(2)
	err := b.AddRelationship(0, 2)
	c.Assert(xerrors.Is(err, graph.ErrUnknownNode), gc.Equals, true)
	err = b.AddRelationship(-1, 0)
	c.Assert(xerrors.Is(err, graph.ErrUnknownNode), gc.Equals, true)
}

func (s *InMemoryGraphTestSuite) TestNodeProperties(c *gc.C) {
	b := NewBuilder(2)
	c.Assert(b.AddNodeProperty("age", LongProperty{7, 9}), gc.IsNil)
	c.Assert(b.AddNodeProperty("score", DoubleProperty{0.5, 1.5}), gc.IsNil)
	c.Assert(b.AddNodeProperty("vec", DoubleArrayProperty{{1, 2}, {3}}), gc.IsNil)

	err := b.AddNodeProperty("age", LongProperty{1, 2})
	c.Assert(xerrors.Is(err, graph.ErrDuplicateProperty), gc.Equals, true)
	err = b.AddNodeProperty("short", LongProperty{1})
	c.Assert(xerrors.Is(err, graph.ErrPropertySize), gc.Equals, true)

	g := b.Build()
	age, ok := g.NodeProperties("age")
	c.Assert(ok, gc.Equals, true)
	c.Assert(age.ValueType(), gc.Equals, graph.Long)
	c.Assert(age.LongValue(1), gc.Equals, int64(9))

	vec, ok := g.NodeProperties("vec")
	c.Assert(ok, gc.Equals, true)
	c.Assert(vec.DoubleArrayValue(0), gc.DeepEquals, []float64{1, 2})

	_, ok = g.NodeProperties("missing")
	c.Assert(ok, gc.Equals, false)
	c.Assert(g.PropertyKeys(), gc.HasLen, 3)
}
