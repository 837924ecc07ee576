package pregel

import (
	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Visibility controls whether a schema element is part of the run result.
type Visibility uint8

const (
	Public Visibility = iota
	// Private elements hold intermediate state and are omitted from
	// Result.Properties.
	Private
)

// Element declares one per-node value of a Pregel computation.
type Element struct {
	PropertyKey string
	ValueType   graph.ValueType
	Visibility  Visibility

	// SourceProperty names a graph node property whose values initialize
	// this element. Empty means no projection.
	SourceProperty string

	// DefaultValue is the initial value for every node when no source
	// property provides one. It must be an int64, float64, []int64 or
	// []float64 matching ValueType; nil means the zero value.
	DefaultValue any
}

// Schema is an ordered, immutable set of elements.
type Schema struct {
	elements []Element
	index    map[string]int
}

// Elements returns a copy of the schema elements in declaration order.
func (s *Schema) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Element looks up an element by property key.
func (s *Schema) Element(key string) (Element, bool) {
	i, ok := s.index[key]
	if !ok {
		return Element{}, false
	}
	return s.elements[i], true
}

// Len returns the number of elements.
func (s *Schema) Len() int { return len(s.elements) }

// SchemaBuilder assembles a Schema.
type SchemaBuilder struct {
	elements []Element
}

func NewSchemaBuilder() *SchemaBuilder { return new(SchemaBuilder) }

// Add declares a public element without a source property.
func (b *SchemaBuilder) Add(key string, valueType graph.ValueType) *SchemaBuilder {
	return b.AddElement(Element{PropertyKey: key, ValueType: valueType})
}

// AddWithVisibility declares an element with the given visibility.
func (b *SchemaBuilder) AddWithVisibility(key string, valueType graph.ValueType, visibility Visibility) *SchemaBuilder {
	return b.AddElement(Element{PropertyKey: key, ValueType: valueType, Visibility: visibility})
}

// AddFromProperty declares a public element that is initialized from the
// graph node property sourceProperty when it exists.
func (b *SchemaBuilder) AddFromProperty(key string, valueType graph.ValueType, sourceProperty string) *SchemaBuilder {
	return b.AddElement(Element{PropertyKey: key, ValueType: valueType, SourceProperty: sourceProperty})
}

func (b *SchemaBuilder) AddElement(e Element) *SchemaBuilder {
	b.elements = append(b.elements, e)
	return b
}

// Build validates the declared elements and returns the schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	var (
		err   error
		index = make(map[string]int, len(b.elements))
	)
	for i, e := range b.elements {
		if e.PropertyKey == "" {
			err = multierror.Append(err, xerrors.Errorf("schema element #%d: empty property key", i))
			continue
		}
		if _, dup := index[e.PropertyKey]; dup {
			err = multierror.Append(err, xerrors.Errorf("schema element %q: %w", e.PropertyKey, ErrDuplicateSchemaKey))
			continue
		}
		if e.ValueType > graph.DoubleArray {
			err = multierror.Append(err, xerrors.Errorf("schema element %q: unsupported value type %s", e.PropertyKey, e.ValueType))
		} else if !defaultMatches(e) {
			err = multierror.Append(err, xerrors.Errorf("schema element %q: default value %v (%T) is not a valid %s", e.PropertyKey, e.DefaultValue, e.DefaultValue, e.ValueType))
		}
		index[e.PropertyKey] = i
	}
	if err != nil {
		return nil, xerrors.Errorf("pregel schema validation failed: %w", err)
	}

	elements := make([]Element, len(b.elements))
	copy(elements, b.elements)
	return &Schema{elements: elements, index: index}, nil
}

func defaultMatches(e Element) bool {
	if e.DefaultValue == nil {
		return true
	}
	switch e.DefaultValue.(type) {
	case int64:
		return e.ValueType == graph.Long
	case float64:
		return e.ValueType == graph.Double
	case []int64:
		return e.ValueType == graph.LongArray
	case []float64:
		return e.ValueType == graph.DoubleArray
	default:
		return false
	}
}
