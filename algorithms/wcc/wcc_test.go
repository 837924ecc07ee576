package wcc_test

import (
	"context"
	"testing"

	"github.com/Ahmed-Sermani/go-pregel/algorithms/wcc"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(WCCTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type WCCTestSuite struct{}

func undirected(c *gc.C, nodeCount int64, rels [][2]int64) *memory.InMemoryGraph {
	b := memory.NewBuilder(nodeCount)
	for _, rel := range rels {
		c.Assert(b.AddRelationship(rel[0], rel[1]), gc.IsNil)
		c.Assert(b.AddRelationship(rel[1], rel[0]), gc.IsNil)
	}
	return b.Build()
}

func (s *WCCTestSuite) TestComponents(c *gc.C) {
	g := undirected(c, 8, [][2]int64{{0, 1}, {1, 2}, {5, 3}, {3, 4}, {6, 7}})

	res, err := wcc.Run(context.TODO(), g, wcc.Config{
		Pregel: pregel.Config{Concurrency: 3, MaxIterations: 20},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(res.DidConverge, gc.Equals, true)
	c.Assert(res.State, gc.Equals, pregel.Converged)

	exp := []int64{0, 0, 0, 3, 3, 3, 6, 6}
	for node, component := range exp {
		c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, int64(node)), gc.Equals, component, gc.Commentf("node %d", node))
	}
}

func (s *WCCTestSuite) TestLongChainNeedsEnoughIterations(c *gc.C) {
	var rels [][2]int64
	for i := int64(0); i < 9; i++ {
		rels = append(rels, [2]int64{i, i + 1})
	}
	g := undirected(c, 10, rels)

	res, err := wcc.Run(context.TODO(), g, wcc.Config{
		Pregel: pregel.Config{Concurrency: 2, MaxIterations: 3},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(res.DidConverge, gc.Equals, false)
	c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, 9), gc.Not(gc.Equals), int64(0))

	res, err = wcc.Run(context.TODO(), g, wcc.Config{
		Pregel: pregel.Config{Concurrency: 2, MaxIterations: 20},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(res.DidConverge, gc.Equals, true)
	c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, 9), gc.Equals, int64(0))
}

func (s *WCCTestSuite) TestSeededComponents(c *gc.C) {
	b := memory.NewBuilder(4)
	for _, rel := range [][2]int64{{0, 1}, {1, 0}, {2, 3}, {3, 2}} {
		c.Assert(b.AddRelationship(rel[0], rel[1]), gc.IsNil)
	}
	c.Assert(b.AddNodeProperty("seed", memory.LongProperty{-1, 100, 42, -1}), gc.IsNil)

	res, err := wcc.Run(context.TODO(), b.Build(), wcc.Config{
		SeedProperty: "seed",
		Pregel:       pregel.Config{Concurrency: 1, MaxIterations: 10},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, 0), gc.Equals, int64(0))
	c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, 1), gc.Equals, int64(0))
	c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, 2), gc.Equals, int64(3))
	c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, 3), gc.Equals, int64(3))
}

func (s *WCCTestSuite) TestComponentsUseOriginalIDs(c *gc.C) {
	// Dense ids follow first appearance, which is not the numeric order of
	// the original ids.
	ids := graph.NewIDMap()
	for _, original := range []int64{30, 20, 10, 70, 50} {
		ids.Add(original)
	}
	g := undirected(c, ids.NodeCount(), [][2]int64{{0, 1}, {1, 2}, {3, 4}})

	res, err := wcc.Run(context.TODO(), g, wcc.Config{
		IDs:    ids,
		Pregel: pregel.Config{Concurrency: 2, MaxIterations: 20},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(res.State, gc.Equals, pregel.Converged)

	exp := []int64{10, 10, 10, 50, 50}
	for node, component := range exp {
		c.Assert(res.NodeValues.LongValue(wcc.ComponentProperty, int64(node)), gc.Equals, component, gc.Commentf("node %d", node))
	}
}
