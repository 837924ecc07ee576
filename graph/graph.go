package graph

import (
	"fmt"

	"golang.org/x/xerrors"
)

var (
	// ErrUnknownNode is returned when a relationship references a node id
	// outside of [0, NodeCount).
	ErrUnknownNode = xerrors.New("unknown node")

	// ErrDuplicateProperty is returned when a node property key is
	// registered twice on the same graph.
	ErrDuplicateProperty = xerrors.New("duplicate node property")

	// ErrPropertySize is returned when a node property does not provide a
	// value for every node of the graph.
	ErrPropertySize = xerrors.New("node property size does not match node count")
)

// ValueType describes the kind of value stored in a node property.
type ValueType uint8

const (
	Long ValueType = iota
	Double
	LongArray
	DoubleArray
)

func (t ValueType) String() string {
	switch t {
	case Long:
		return "LONG"
	case Double:
		return "DOUBLE"
	case LongArray:
		return "LONG_ARRAY"
	case DoubleArray:
		return "DOUBLE_ARRAY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ParseValueType is the inverse of ValueType.String.
func ParseValueType(s string) (ValueType, error) {
	for _, t := range []ValueType{Long, Double, LongArray, DoubleArray} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, xerrors.Errorf("unsupported value type %q", s)
}

//go:generate mockgen -package mocks -destination mocks/mock.go github.com/Ahmed-Sermani/go-pregel/graph Graph,PropertyValues

// PropertyValues gives typed access to the values of a single node property.
// Only the accessor matching ValueType is expected to return meaningful data.
type PropertyValues interface {
	ValueType() ValueType
	LongValue(node int64) int64
	DoubleValue(node int64) float64
	LongArrayValue(node int64) []int64
	DoubleArrayValue(node int64) []float64
}

// Graph is a read-only view of a directed graph whose nodes are addressed by
// dense ids in [0, NodeCount). Implementations must be safe for concurrent
// reads.
type Graph interface {
	NodeCount() int64
	RelationshipCount() int64

	// Degree returns the number of outgoing relationships of node.
	Degree(node int64) int

	// ForEachRelationship invokes fn for every outgoing relationship of
	// node until fn returns false.
	ForEachRelationship(node int64, fn func(target int64) bool)

	// ForEachWeightedRelationship is like ForEachRelationship but also
	// passes the relationship weight. Unweighted graphs report fallback.
	ForEachWeightedRelationship(node int64, fallback float64, fn func(target int64, weight float64) bool)

	// NodeProperties looks up a node property by key.
	NodeProperties(key string) (PropertyValues, bool)
}
