package pregel

import (
	"github.com/Ahmed-Sermani/go-pregel/collections/hugearray"
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/partition"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// NodeValue is the per-node value table of a Pregel run. It holds one column
// per schema element and one row per node.
//
// Rows of distinct nodes may be written concurrently. Callers must make sure
// that a single row is never written by more than one goroutine at a time.
// Accessing an unknown key, a key with the wrong accessor or a node id
// outside of [0, NodeCount) panics.
type NodeValue struct {
	schema    *Schema
	nodeCount int64

	longs        map[string]*hugearray.Array[int64]
	doubles      map[string]*hugearray.Array[float64]
	longArrays   map[string]*hugearray.Array[[]int64]
	doubleArrays map[string]*hugearray.Array[[]float64]
}

// NewNodeValue allocates a table for nodeCount nodes and initializes every
// row with the schema defaults. Defaults are written by up to concurrency
// goroutines.
func NewNodeValue(schema *Schema, nodeCount int64, concurrency int) *NodeValue {
	nv := &NodeValue{
		schema:       schema,
		nodeCount:    nodeCount,
		longs:        make(map[string]*hugearray.Array[int64]),
		doubles:      make(map[string]*hugearray.Array[float64]),
		longArrays:   make(map[string]*hugearray.Array[[]int64]),
		doubleArrays: make(map[string]*hugearray.Array[[]float64]),
	}

	for _, e := range schema.elements {
		switch e.ValueType {
		case graph.Long:
			nv.longs[e.PropertyKey] = hugearray.New[int64](nodeCount)
		case graph.Double:
			nv.doubles[e.PropertyKey] = hugearray.New[float64](nodeCount)
		case graph.LongArray:
			nv.longArrays[e.PropertyKey] = hugearray.New[[]int64](nodeCount)
		case graph.DoubleArray:
			nv.doubleArrays[e.PropertyKey] = hugearray.New[[]float64](nodeCount)
		}
	}

	// Defaults were type checked by the schema builder and fn never fails,
	// so the only possible error is a broken partitioning of the node range.
	err := parallelForEachNode(nodeCount, concurrency, func(from, to int64) error {
		for _, e := range schema.elements {
			if e.DefaultValue != nil {
				nv.fillDefault(e, from, to)
			}
		}
		return nil
	})
	if err != nil {
		panic(xerrors.Errorf("initialize node value defaults: %w", err))
	}
	return nv
}

func (nv *NodeValue) fillDefault(e Element, from, to int64) {
	switch def := e.DefaultValue.(type) {
	case int64:
		nv.longs[e.PropertyKey].SetRange(from, to, func(int64) int64 { return def })
	case float64:
		nv.doubles[e.PropertyKey].SetRange(from, to, func(int64) float64 { return def })
	case []int64:
		nv.longArrays[e.PropertyKey].SetRange(from, to, func(int64) []int64 { return append([]int64(nil), def...) })
	case []float64:
		nv.doubleArrays[e.PropertyKey].SetRange(from, to, func(int64) []float64 { return append([]float64(nil), def...) })
	}
}

// Schema returns the schema the table was built from.
func (nv *NodeValue) Schema() *Schema { return nv.schema }

// NodeCount returns the number of rows.
func (nv *NodeValue) NodeCount() int64 { return nv.nodeCount }

func (nv *NodeValue) LongValue(key string, node int64) int64 {
	return nv.longColumn(key).Get(node)
}

func (nv *NodeValue) SetLong(key string, node int64, v int64) {
	nv.longColumn(key).Set(node, v)
}

func (nv *NodeValue) DoubleValue(key string, node int64) float64 {
	return nv.doubleColumn(key).Get(node)
}

func (nv *NodeValue) SetDouble(key string, node int64, v float64) {
	nv.doubleColumn(key).Set(node, v)
}

// LongArrayValue returns the array stored for node. The returned slice is
// shared with the table.
func (nv *NodeValue) LongArrayValue(key string, node int64) []int64 {
	return nv.longArrayColumn(key).Get(node)
}

func (nv *NodeValue) SetLongArray(key string, node int64, v []int64) {
	nv.longArrayColumn(key).Set(node, v)
}

// DoubleArrayValue returns the array stored for node. The returned slice is
// shared with the table.
func (nv *NodeValue) DoubleArrayValue(key string, node int64) []float64 {
	return nv.doubleArrayColumn(key).Get(node)
}

func (nv *NodeValue) SetDoubleArray(key string, node int64, v []float64) {
	nv.doubleArrayColumn(key).Set(node, v)
}

// PropertyValues exposes a column as graph.PropertyValues so that results
// can be written back to or compared with graph properties.
func (nv *NodeValue) PropertyValues(key string) (graph.PropertyValues, bool) {
	e, ok := nv.schema.Element(key)
	if !ok {
		return nil, false
	}
	return columnValues{nv: nv, key: key, valueType: e.ValueType}, true
}

// Release drops every column. The table must not be used afterwards.
func (nv *NodeValue) Release() {
	for _, c := range nv.longs {
		c.Release()
	}
	for _, c := range nv.doubles {
		c.Release()
	}
	for _, c := range nv.longArrays {
		c.Release()
	}
	for _, c := range nv.doubleArrays {
		c.Release()
	}
}

func (nv *NodeValue) longColumn(key string) *hugearray.Array[int64] {
	c, ok := nv.longs[key]
	if !ok {
		panic(nv.accessError(key, graph.Long))
	}
	return c
}

func (nv *NodeValue) doubleColumn(key string) *hugearray.Array[float64] {
	c, ok := nv.doubles[key]
	if !ok {
		panic(nv.accessError(key, graph.Double))
	}
	return c
}

func (nv *NodeValue) longArrayColumn(key string) *hugearray.Array[[]int64] {
	c, ok := nv.longArrays[key]
	if !ok {
		panic(nv.accessError(key, graph.LongArray))
	}
	return c
}

func (nv *NodeValue) doubleArrayColumn(key string) *hugearray.Array[[]float64] {
	c, ok := nv.doubleArrays[key]
	if !ok {
		panic(nv.accessError(key, graph.DoubleArray))
	}
	return c
}

func (nv *NodeValue) accessError(key string, requested graph.ValueType) error {
	e, ok := nv.schema.Element(key)
	if !ok {
		return xerrors.Errorf("node value %q: %w", key, ErrUnknownProperty)
	}
	return xerrors.Errorf("node value %q is %s, accessed as %s: %w", key, e.ValueType, requested, ErrValueTypeMismatch)
}

var _ graph.PropertyValues = columnValues{}

type columnValues struct {
	nv        *NodeValue
	key       string
	valueType graph.ValueType
}

func (c columnValues) ValueType() graph.ValueType { return c.valueType }

func (c columnValues) LongValue(node int64) int64 { return c.nv.LongValue(c.key, node) }

func (c columnValues) DoubleValue(node int64) float64 { return c.nv.DoubleValue(c.key, node) }

func (c columnValues) LongArrayValue(node int64) []int64 { return c.nv.LongArrayValue(c.key, node) }

func (c columnValues) DoubleArrayValue(node int64) []float64 {
	return c.nv.DoubleArrayValue(c.key, node)
}

// parallelForEachNode splits [0, nodeCount) into contiguous ranges and calls
// fn for each of them using up to concurrency goroutines. A panic in fn is
// returned as an error.
func parallelForEachNode(nodeCount int64, concurrency int, fn func(from, to int64) error) error {
	if nodeCount == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	r, err := partition.NewFullRange(nodeCount, concurrency)
	if err != nil {
		return xerrors.Errorf("partition node range: %w", err)
	}

	var grp errgroup.Group
	for _, p := range r.Partitions() {
		p := p
		grp.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = xerrors.Errorf("nodes [%d, %d): %w", p.Start, p.End, panicError(r))
				}
			}()
			return fn(p.Start, p.End)
		})
	}
	return grp.Wait()
}
