/*
   Implements the Pregel https://15799.courses.cs.cmu.edu/fall2013/static/papers/p135-malewicz.pdf
   vertex-centric model on top of the BSP https://en.wikipedia.org/wiki/Bulk_synchronous_parallel
   computing model. Algorithms supply a VertexProgram that is executed in
   lock-step supersteps over every active node of a graph.
*/
package pregel

import (
	"golang.org/x/xerrors"
)

var (
	// ErrExecutorConsumed is returned when Run is invoked on an executor
	// that has already run.
	ErrExecutorConsumed = xerrors.New("executor has already been run")

	// ErrPropertyTypeMismatch is returned by property projection when a
	// source property exists but holds values of another type than the
	// schema element it feeds.
	ErrPropertyTypeMismatch = xerrors.New("source property type does not match schema element type")

	// ErrDuplicateSchemaKey is returned when a schema declares the same
	// property key twice.
	ErrDuplicateSchemaKey = xerrors.New("duplicate schema property key")

	// ErrUnknownProperty is raised when a node value is accessed by a key
	// that is not part of the schema.
	ErrUnknownProperty = xerrors.New("unknown node value property")

	// ErrValueTypeMismatch is raised when a node value is accessed with an
	// accessor that does not match the schema element type.
	ErrValueTypeMismatch = xerrors.New("node value accessed with wrong type")
)

type Aggregator interface {
	Type() string
	Set(val any)
	Get() any
	// updates the Aggregator value based on the current value.
	Aggregate(val any)

	// Delta returns the change in the aggregator's value since the last
	// call to Delta.
	Delta() any
}
