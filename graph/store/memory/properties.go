package memory

import "github.com/Ahmed-Sermani/go-pregel/graph"

var (
	_ graph.PropertyValues = LongProperty(nil)
	_ graph.PropertyValues = DoubleProperty(nil)
	_ graph.PropertyValues = LongArrayProperty(nil)
	_ graph.PropertyValues = DoubleArrayProperty(nil)
)

// LongProperty is a node property holding one int64 per node.
type LongProperty []int64

func (p LongProperty) Len() int { return len(p) }
func (LongProperty) ValueType() graph.ValueType { return graph.Long }
func (p LongProperty) LongValue(node int64) int64 { return p[node] }
func (LongProperty) DoubleValue(int64) float64 { return 0 }
func (LongProperty) LongArrayValue(int64) []int64 { return nil }
func (LongProperty) DoubleArrayValue(int64) []float64 { return nil }

// DoubleProperty is a node property holding one float64 per node.
type DoubleProperty []float64

func (p DoubleProperty) Len() int { return len(p) }
func (DoubleProperty) ValueType() graph.ValueType { return graph.Double }
func (DoubleProperty) LongValue(int64) int64 { return 0 }
func (p DoubleProperty) DoubleValue(node int64) float64 { return p[node] }
func (DoubleProperty) LongArrayValue(int64) []int64 { return nil }
func (DoubleProperty) DoubleArrayValue(int64) []float64 { return nil }

// LongArrayProperty is a node property holding an int64 slice per node.
type LongArrayProperty [][]int64

func (p LongArrayProperty) Len() int { return len(p) }
func (LongArrayProperty) ValueType() graph.ValueType { return graph.LongArray }
func (LongArrayProperty) LongValue(int64) int64 { return 0 }
func (LongArrayProperty) DoubleValue(int64) float64 { return 0 }
func (p LongArrayProperty) LongArrayValue(node int64) []int64 { return p[node] }
func (LongArrayProperty) DoubleArrayValue(int64) []float64 { return nil }

// DoubleArrayProperty is a node property holding a float64 slice per node.
type DoubleArrayProperty [][]float64

func (p DoubleArrayProperty) Len() int { return len(p) }
func (DoubleArrayProperty) ValueType() graph.ValueType { return graph.DoubleArray }
func (DoubleArrayProperty) LongValue(int64) int64 { return 0 }
func (DoubleArrayProperty) DoubleValue(int64) float64 { return 0 }
func (DoubleArrayProperty) LongArrayValue(int64) []int64 { return nil }
func (p DoubleArrayProperty) DoubleArrayValue(node int64) []float64 { return p[node] }
