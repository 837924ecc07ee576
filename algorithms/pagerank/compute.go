package pagerank

import (
	"math"

	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
)

type program struct{}

// Init evenly distributes the PageRank scores across all nodes. As the sum
// of all scores should be equal to 1, each node starts with 1/nodeCount.
func (program) Init(ctx *pregel.InitContext[Config]) error {
	ctx.SetDouble(ScoreProperty, 1.0/float64(ctx.NodeCount()))
	return nil
}

func (program) Compute(ctx *pregel.ComputeContext[Config, float64], msgs *message.Iterator[float64]) error {
	var (
		superstep     = ctx.Superstep()
		pageCount     = float64(ctx.NodeCount())
		dampingFactor = ctx.Config().DampingFactor
		newScore      = ctx.DoubleValue(ScoreProperty)
	)
	if superstep > 0 {
		// Incoming scores are summed up by the messenger.
		newScore = (1.0 - dampingFactor) / pageCount
		for msgs.Next() {
			newScore += dampingFactor * msgs.Message()
		}

		// Add accumulated residual page rank from any dead-ends
		// encountered during the previous step.
		resAggr := ctx.Aggregator(residualInputAccName(superstep))
		newScore += dampingFactor * resAggr.Get().(float64)

		absDelta := math.Abs(ctx.DoubleValue(ScoreProperty) - newScore)
		ctx.Aggregator("SAD").Aggregate(absDelta)
		ctx.SetDouble(ScoreProperty, newScore)
	}

	// If this is a dead-end (no outgoing links) we treat this link
	// as if it was being connected to all links in the graph.
	// Since we cannot broadcast a message to all nodes we will
	// add the per-node residual score to an accumulator and
	// integrate it into the scores calculated over the next round.
	numOutLinks := float64(ctx.Degree())
	if numOutLinks == 0.0 {
		ctx.Aggregator(residualOutputAccName(superstep)).Aggregate(newScore / pageCount)
		return nil
	}

	// Otherwise, evenly distribute this node's score to all its
	// neighbors.
	ctx.SendToNeighbors(newScore / numOutLinks)
	return nil
}

// MasterCompute stops the run once the scores settle and resets the
// aggregators written by the next superstep.
func (program) MasterCompute(ctx *pregel.MasterComputeContext[Config]) (bool, error) {
	superstep := ctx.Superstep()
	sad := ctx.Aggregator("SAD").Get().(float64)

	// Superstep 0 only distributes the initial scores; the predicate should
	// only be evaluated for supersteps > 0.
	if superstep > 0 && sad < ctx.Config().MinSADForConvergence {
		return true, nil
	}

	ctx.Aggregator("SAD").Set(0.0)
	ctx.Aggregator(residualOutputAccName(superstep + 1)).Set(0.0)
	return false, nil
}
