package sssp_test

import (
	"context"
	"math"
	"testing"

	"github.com/Ahmed-Sermani/go-pregel/algorithms/sssp"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SSSPTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type SSSPTestSuite struct{}

func (s *SSSPTestSuite) TestWeightedDistances(c *gc.C) {
	b := memory.NewBuilder(5)
	for _, rel := range []struct {
		src, dst int64
		w        float64
	}{
		{0, 1, 4}, {0, 2, 1}, {2, 1, 2}, {1, 3, 1}, {2, 3, 5},
	} {
		c.Assert(b.AddWeightedRelationship(rel.src, rel.dst, rel.w), gc.IsNil)
	}

	res, err := sssp.Run(context.TODO(), b.Build(), sssp.Config{
		SourceNode: 0,
		Pregel:     pregel.Config{Concurrency: 2, MaxIterations: 10},
	})
	c.Assert(err, gc.IsNil)
	c.Assert(res.DidConverge, gc.Equals, true)

	exp := []float64{0, 3, 1, 4}
	for node, dist := range exp {
		c.Assert(res.NodeValues.DoubleValue(sssp.DistanceProperty, int64(node)), gc.Equals, dist, gc.Commentf("node %d", node))
	}
	c.Assert(math.IsInf(res.NodeValues.DoubleValue(sssp.DistanceProperty, 4), 1), gc.Equals, true)
}

func (s *SSSPTestSuite) TestUnweightedHops(c *gc.C) {
	b := memory.NewBuilder(4)
	for _, rel := range [][2]int64{{3, 2}, {2, 1}, {1, 0}, {3, 0}} {
		c.Assert(b.AddRelationship(rel[0], rel[1]), gc.IsNil)
	}

	res, err := sssp.Run(context.TODO(), b.Build(), sssp.Config{
		SourceNode: 3,
		Pregel:     pregel.Config{Concurrency: 1, MaxIterations: 10},
	})
	c.Assert(err, gc.IsNil)
	for node, dist := range []float64{1, 2, 1, 0} {
		c.Assert(res.NodeValues.DoubleValue(sssp.DistanceProperty, int64(node)), gc.Equals, dist)
	}
}

func (s *SSSPTestSuite) TestUnknownSource(c *gc.C) {
	_, err := sssp.NewExecutor(memory.NewBuilder(2).Build(), sssp.Config{
		SourceNode: 2,
		Pregel:     pregel.Config{Concurrency: 1, MaxIterations: 10},
	})
	c.Assert(xerrors.Is(err, graph.ErrUnknownNode), gc.Equals, true)
}
