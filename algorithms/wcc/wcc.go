/*
   Weakly connected components via min-label propagation. Every node starts
   in its own component and adopts the smallest component id it hears about
   until no label changes anymore. When the graph was loaded through an
   IDMap, components are labelled in the id space of the graph source.

   Labels only travel along outgoing relationships, so directed graphs must
   be loaded with reverse relationships for the result to be weakly
   connected components.
*/
package wcc

import (
	"context"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/Ahmed-Sermani/go-pregel/pregel/reducers"
	"github.com/Ahmed-Sermani/go-pregel/progress"
	"golang.org/x/xerrors"
)

// ComponentProperty is the node value that holds the component id.
const ComponentProperty = "component"

// Config holds the parameters of a WCC run.
type Config struct {
	// Optional node property with initial component ids.
	SeedProperty string

	// Optional mapping to the ids of the graph source. If set, a node starts
	// with its original id and components carry the smallest original id of
	// their members. Otherwise dense node ids are used.
	IDs *graph.IDMap

	// Engine parameters.
	Pregel pregel.Config

	// Receives progress notifications. Optional.
	Tracker progress.Tracker
}

// Run labels every node of g with the smallest node id of its component.
func Run(ctx context.Context, g graph.Graph, cfg Config) (*pregel.Result, error) {
	ex, err := NewExecutor(g, cfg)
	if err != nil {
		return nil, err
	}
	return ex.Run(ctx)
}

// NewExecutor creates a pregel executor for g. Component ids are carried
// in float64 messages and must stay below 2^53.
func NewExecutor(g graph.Graph, cfg Config) (*pregel.Executor[Config, float64], error) {
	b := pregel.NewSchemaBuilder()
	if cfg.SeedProperty != "" {
		b.AddElement(pregel.Element{
			PropertyKey:    ComponentProperty,
			ValueType:      graph.Long,
			SourceProperty: cfg.SeedProperty,
			DefaultValue:   int64(-1),
		})
	} else {
		b.Add(ComponentProperty, graph.Long)
	}
	schema, err := b.Build()
	if err != nil {
		return nil, xerrors.Errorf("wcc: %w", err)
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
	// Seeded components were projected already; nodes without a seed get
	// their own id.
	cfg := ctx.Config()
	if cfg.SeedProperty == "" || ctx.LongValue(ComponentProperty) < 0 {
		id := ctx.NodeID()
		if cfg.IDs != nil {
			id = cfg.IDs.ToOriginal(id)
		}
		ctx.SetLong(ComponentProperty, id)
	}
	return nil
}

func (program) Compute(ctx *pregel.ComputeContext[Config, float64], msgs *message.Iterator[float64]) error {
	component := ctx.LongValue(ComponentProperty)
	if ctx.IsInitialSuperstep() {
		ctx.SendToNeighbors(float64(component))
		ctx.VoteToHalt()
		return nil
	}

	if msgs.Next() {
		if candidate := int64(msgs.Message()); candidate < component {
			ctx.SetLong(ComponentProperty, candidate)
			ctx.SendToNeighbors(float64(candidate))
		}
	}
	ctx.VoteToHalt()
	return nil
}
