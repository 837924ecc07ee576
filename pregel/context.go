package pregel

import (
	"context"

	"github.com/Ahmed-Sermani/go-pregel/collections/bitset"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"github.com/sirupsen/logrus"
)

// nodeContext gives a compute or init function access to the node it runs
// for. Value accessors are scoped to the node's row.
type nodeContext[C any] struct {
	ctx        context.Context
	g          graph.Graph
	config     C
	nodeValues *NodeValue
	node       int64
}

func (c *nodeContext[C]) NodeID() int64 { return c.node }

func (c *nodeContext[C]) NodeCount() int64 { return c.g.NodeCount() }

// Config returns the algorithm configuration.
func (c *nodeContext[C]) Config() C { return c.config }

func (c *nodeContext[C]) Degree() int { return c.g.Degree(c.node) }

// Running reports whether the run is still wanted. Programs should vote to
// halt once it returns false.
func (c *nodeContext[C]) Running() bool { return c.ctx.Err() == nil }

// ForEachNeighbor invokes fn for every outgoing relationship of the node
// until fn returns false.
func (c *nodeContext[C]) ForEachNeighbor(fn func(target int64) bool) {
	c.g.ForEachRelationship(c.node, fn)
}

// ForEachWeightedNeighbor is like ForEachNeighbor but also passes the
// relationship weight, or fallback for unweighted graphs.
func (c *nodeContext[C]) ForEachWeightedNeighbor(fallback float64, fn func(target int64, weight float64) bool) {
	c.g.ForEachWeightedRelationship(c.node, fallback, fn)
}

func (c *nodeContext[C]) LongValue(key string) int64 { return c.nodeValues.LongValue(key, c.node) }

func (c *nodeContext[C]) DoubleValue(key string) float64 {
	return c.nodeValues.DoubleValue(key, c.node)
}

func (c *nodeContext[C]) LongArrayValue(key string) []int64 {
	return c.nodeValues.LongArrayValue(key, c.node)
}

func (c *nodeContext[C]) DoubleArrayValue(key string) []float64 {
	return c.nodeValues.DoubleArrayValue(key, c.node)
}

func (c *nodeContext[C]) SetLong(key string, v int64) { c.nodeValues.SetLong(key, c.node, v) }

func (c *nodeContext[C]) SetDouble(key string, v float64) { c.nodeValues.SetDouble(key, c.node, v) }

func (c *nodeContext[C]) SetLongArray(key string, v []int64) {
	c.nodeValues.SetLongArray(key, c.node, v)
}

func (c *nodeContext[C]) SetDoubleArray(key string, v []float64) {
	c.nodeValues.SetDoubleArray(key, c.node, v)
}

// InitContext is passed to VertexProgram.Init.
type InitContext[C any] struct {
	nodeContext[C]
}

// NodeProperties looks up a graph node property so that Init can derive
// initial values from it.
func (c *InitContext[C]) NodeProperties(key string) (graph.PropertyValues, bool) {
	return c.g.NodeProperties(key)
}

// ComputeContext is passed to VertexProgram.Compute. A context is owned by
// a single worker and reused for every node the worker processes.
type ComputeContext[C, M any] struct {
	nodeContext[C]

	superstep   int
	messenger   message.Messenger[M]
	voteBits    *bitset.Atomic
	aggregators map[string]Aggregator

	// sent is set once any node processed by the owning worker sends a
	// message during the current superstep.
	sent bool
}

func (c *ComputeContext[C, M]) Superstep() int { return c.superstep }

func (c *ComputeContext[C, M]) IsInitialSuperstep() bool { return c.superstep == 0 }

// SendTo sends msg to target. The message is delivered in the next
// superstep.
func (c *ComputeContext[C, M]) SendTo(target int64, msg M) {
	c.messenger.SendTo(target, msg)
	c.sent = true
}

// SendToNeighbors sends msg to every target of the node's outgoing
// relationships.
func (c *ComputeContext[C, M]) SendToNeighbors(msg M) {
	c.g.ForEachRelationship(c.node, func(target int64) bool {
		c.SendTo(target, msg)
		return true
	})
}

// VoteToHalt marks the node as inactive. Inactive nodes are skipped in the
// following supersteps unless they receive a message, in which case they
// are re-activated.
func (c *ComputeContext[C, M]) VoteToHalt() { c.voteBits.Set(c.node) }

// Aggregator returns the aggregator registered under name, or nil.
func (c *ComputeContext[C, M]) Aggregator(name string) Aggregator { return c.aggregators[name] }

// MasterComputeContext is passed to MasterComputer.MasterCompute. It has
// read and write access to the whole node value table.
type MasterComputeContext[C any] struct {
	ctx         context.Context
	g           graph.Graph
	config      C
	nodeValues  *NodeValue
	superstep   int
	aggregators map[string]Aggregator
	logger      *logrus.Entry
}

func (c *MasterComputeContext[C]) Superstep() int { return c.superstep }

func (c *MasterComputeContext[C]) IsInitialSuperstep() bool { return c.superstep == 0 }

func (c *MasterComputeContext[C]) NodeCount() int64 { return c.g.NodeCount() }

func (c *MasterComputeContext[C]) Config() C { return c.config }

// NodeValues returns the node value table of the run.
func (c *MasterComputeContext[C]) NodeValues() *NodeValue { return c.nodeValues }

// ForEachNode invokes fn for every node id until fn returns false.
func (c *MasterComputeContext[C]) ForEachNode(fn func(node int64) bool) {
	for node, n := int64(0), c.g.NodeCount(); node < n; node++ {
		if !fn(node) {
			return
		}
	}
}

func (c *MasterComputeContext[C]) Aggregator(name string) Aggregator { return c.aggregators[name] }

func (c *MasterComputeContext[C]) Logger() *logrus.Entry { return c.logger }

func (c *MasterComputeContext[C]) Running() bool { return c.ctx.Err() == nil }
