/*
   Single-source shortest paths in the style of Bellman-Ford. Distances are
   relaxed along outgoing relationships; unweighted relationships count as 1.
*/
package sssp

import (
	"context"
	"math"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/Ahmed-Sermani/go-pregel/pregel/reducers"
	"github.com/Ahmed-Sermani/go-pregel/progress"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// DistanceProperty is the node value that holds the distance from the
// source node. Unreachable nodes keep +Inf.
const DistanceProperty = "distance"

// Config holds the parameters of an SSSP run.
type Config struct {
	// The internal id of the node distances are measured from.
	SourceNode int64

	// Engine parameters.
	Pregel pregel.Config

	// Receives progress notifications. Optional.
	Tracker progress.Tracker
}

func (cfg *Config) validate(nodeCount int64) error {
	var err error
	if cfg.SourceNode < 0 || cfg.SourceNode >= nodeCount {
		err = multierror.Append(err, xerrors.Errorf("source node %d: %w", cfg.SourceNode, graph.ErrUnknownNode))
	}
	return err
}

// Run computes the distance from cfg.SourceNode to every node of g.
func Run(ctx context.Context, g graph.Graph, cfg Config) (*pregel.Result, error) {
	ex, err := NewExecutor(g, cfg)
	if err != nil {
		return nil, err
	}
	return ex.Run(ctx)
}

// NewExecutor creates a pregel executor for g.
func NewExecutor(g graph.Graph, cfg Config) (*pregel.Executor[Config, float64], error) {
	if err := cfg.validate(g.NodeCount()); err != nil {
		return nil, xerrors.Errorf("SSSP config validation failed: %w", err)
	}

	schema, err := pregel.NewSchemaBuilder().AddElement(pregel.Element{
		PropertyKey:  DistanceProperty,
		ValueType:    graph.Double,
		DefaultValue: math.Inf(1),
	}).Build()
	if err != nil {
		return nil, xerrors.Errorf("sssp: %w", err)
	}

	return pregel.NewExecutor(pregel.ExecutorConfig[Config, float64]{
		Graph:           g,
		Config:          cfg.Pregel,
		AlgorithmConfig: cfg,
		Schema:          schema,
		Program:         program{},
		Messenger:       message.NewReducingMessenger[float64](g.NodeCount(), reducers.Min{}),
		Tracker:         cfg.Tracker,
	})
}

type program struct{}

func (program) Init(ctx *pregel.InitContext[Config]) error {
	if ctx.NodeID() == ctx.Config().SourceNode {
		ctx.SetDouble(DistanceProperty, 0)
	}
	return nil
}

func (program) Compute(ctx *pregel.ComputeContext[Config, float64], msgs *message.Iterator[float64]) error {
	distance := ctx.DoubleValue(DistanceProperty)
	improved := ctx.IsInitialSuperstep() && ctx.NodeID() == ctx.Config().SourceNode
	if msgs.Next() {
		if candidate := msgs.Message(); candidate < distance {
			distance, improved = candidate, true
			ctx.SetDouble(DistanceProperty, distance)
		}
	}

	if improved {
		ctx.ForEachWeightedNeighbor(1.0, func(target int64, weight float64) bool {
			ctx.SendTo(target, distance+weight)
			return true
		})
	}
	ctx.VoteToHalt()
	return nil
}
