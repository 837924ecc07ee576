package pregel

import (
	"io"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ProjectProperties copies the source properties of the schema elements of
// nv from g into nv. Executors call it before the first superstep; it is
// exported so that a projection can be inspected without running a program.
func ProjectProperties(g graph.Graph, nv *NodeValue, concurrency int) error {
	l := logrus.New()
	l.Out = io.Discard
	return projectProperties(g, nv, concurrency, logrus.NewEntry(l))
}

// projectProperties copies graph node properties into the schema elements
// that declare a source property. Missing source properties leave the
// element at its default; a source of another value type is an error.
func projectProperties(g graph.Graph, nv *NodeValue, concurrency int, logger *logrus.Entry) error {
	for _, e := range nv.schema.elements {
		if e.SourceProperty == "" {
			continue
		}

		props, ok := g.NodeProperties(e.SourceProperty)
		if !ok {
			logger.WithFields(logrus.Fields{
				"element":         e.PropertyKey,
				"source_property": e.SourceProperty,
			}).Debug("source property not present on graph; keeping defaults")
			continue
		}
		if props.ValueType() != e.ValueType {
			return xerrors.Errorf(
				"project property %q into %q: found %s, expected %s: %w",
				e.SourceProperty, e.PropertyKey, props.ValueType(), e.ValueType, ErrPropertyTypeMismatch,
			)
		}

		e := e
		err := parallelForEachNode(nv.nodeCount, concurrency, func(from, to int64) error {
			copyProperty(nv, e, props, from, to)
			return nil
		})
		if err != nil {
			return xerrors.Errorf("project property %q into %q: %w", e.SourceProperty, e.PropertyKey, err)
		}
	}
	return nil
}

func copyProperty(nv *NodeValue, e Element, props graph.PropertyValues, from, to int64) {
	key := e.PropertyKey
	switch e.ValueType {
	case graph.Long:
		nv.longs[key].SetRange(from, to, props.LongValue)
	case graph.Double:
		nv.doubles[key].SetRange(from, to, props.DoubleValue)
	case graph.LongArray:
		nv.longArrays[key].SetRange(from, to, func(node int64) []int64 {
			return append([]int64(nil), props.LongArrayValue(node)...)
		})
	case graph.DoubleArray:
		nv.doubleArrays[key].SetRange(from, to, func(node int64) []float64 {
			return append([]float64(nil), props.DoubleArrayValue(node)...)
		})
	}
}
