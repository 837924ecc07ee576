package cdb

import (
	"database/sql"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

type relationshipRow struct {
	src, dst int64
	weight   sql.NullFloat64
}

type relationshipIterator struct {
	rows       *sql.Rows
	lastErr    error
	latchedRel relationshipRow
}

func (i *relationshipIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var rel relationshipRow
	i.lastErr = i.rows.Scan(&rel.src, &rel.dst, &rel.weight)
	if i.lastErr != nil {
		return false
	}
	i.latchedRel = rel
	return true
}

func (i *relationshipIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *relationshipIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("relationship iter: %w", err)
	}
	return nil
}

func (i *relationshipIterator) Relationship() relationshipRow {
	return i.latchedRel
}

type propertyRow struct {
	key       string
	node      int64
	valueType graph.ValueType
	long      int64
	double    float64
	longs     []int64
	doubles   []float64
}

type propertyIterator struct {
	rows        *sql.Rows
	lastErr     error
	latchedProp propertyRow
}

func (i *propertyIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var (
		p  propertyRow
		l  sql.NullInt64
		d  sql.NullFloat64
		la pq.Int64Array
		da pq.Float64Array
	)
	if i.lastErr = i.rows.Scan(&p.key, &p.node, &l, &d, &la, &da); i.lastErr != nil {
		return false
	}
	switch {
	case l.Valid:
		p.valueType, p.long = graph.Long, l.Int64
	case d.Valid:
		p.valueType, p.double = graph.Double, d.Float64
	case la != nil:
		p.valueType, p.longs = graph.LongArray, la
	case da != nil:
		p.valueType, p.doubles = graph.DoubleArray, da
	default:
		i.lastErr = xerrors.Errorf("node property %q of node %d has no value", p.key, p.node)
		return false
	}
	i.latchedProp = p
	return true
}

func (i *propertyIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *propertyIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("node property iter: %w", err)
	}
	return nil
}

func (i *propertyIterator) Property() propertyRow {
	return i.latchedProp
}

// propertyColumn collects the values of one property key. Nodes without a
// stored value keep the zero value.
type propertyColumn struct {
	key       string
	valueType graph.ValueType
	longs     memory.LongProperty
	doubles   memory.DoubleProperty
	longArrs  memory.LongArrayProperty
	dblArrs   memory.DoubleArrayProperty
}

func newPropertyColumn(key string, valueType graph.ValueType, nodeCount int64) *propertyColumn {
	c := &propertyColumn{key: key, valueType: valueType}
	switch valueType {
	case graph.Long:
		c.longs = make(memory.LongProperty, nodeCount)
	case graph.Double:
		c.doubles = make(memory.DoubleProperty, nodeCount)
	case graph.LongArray:
		c.longArrs = make(memory.LongArrayProperty, nodeCount)
	case graph.DoubleArray:
		c.dblArrs = make(memory.DoubleArrayProperty, nodeCount)
	}
	return c
}

func (c *propertyColumn) set(node int64, p propertyRow) error {
	if p.valueType != c.valueType {
		return xerrors.Errorf("node property %q mixes %s and %s values", c.key, c.valueType, p.valueType)
	}
	switch c.valueType {
	case graph.Long:
		c.longs[node] = p.long
	case graph.Double:
		c.doubles[node] = p.double
	case graph.LongArray:
		c.longArrs[node] = p.longs
	case graph.DoubleArray:
		c.dblArrs[node] = p.doubles
	}
	return nil
}

func (c *propertyColumn) values() graph.PropertyValues {
	switch c.valueType {
	case graph.Long:
		return c.longs
	case graph.Double:
		return c.doubles
	case graph.LongArray:
		return c.longArrs
	default:
		return c.dblArrs
	}
}
