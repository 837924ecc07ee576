package cdb

import (
	"context"
	"database/sql"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/Ahmed-Sermani/go-pregel/graph/store/memory"
	"github.com/hashicorp/go-multierror"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

const (
	createSchemaQuery = `
  CREATE TABLE IF NOT EXISTS nodes (
    id BIGINT PRIMARY KEY
  );
  CREATE TABLE IF NOT EXISTS relationships (
    src BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    dst BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    weight DOUBLE PRECISION
  );
  CREATE TABLE IF NOT EXISTS node_properties (
    key TEXT NOT NULL,
    node BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    long_value BIGINT,
    double_value DOUBLE PRECISION,
    long_array BIGINT[],
    double_array DOUBLE PRECISION[],
    PRIMARY KEY (key, node)
  );
  `
	upsertNodeQuery = `
  INSERT INTO nodes (id) VALUES ($1) ON CONFLICT (id) DO NOTHING
  `
	insertRelationshipQuery = `
  INSERT INTO relationships (src, dst, weight) VALUES ($1, $2, $3)
  `
	upsertNodePropertyQuery = `
  INSERT INTO node_properties (key, node, long_value, double_value, long_array, double_array)
  VALUES ($1, $2, $3, $4, $5, $6)
  ON CONFLICT (key, node) DO UPDATE SET
    long_value=$3, double_value=$4, long_array=$5, double_array=$6
  `
	rmNodePropertyQuery = `
  DELETE FROM node_properties WHERE key=$1
  `
	iterNodesQuery = `
  SELECT id FROM nodes ORDER BY id
  `
	iterRelationshipsQuery = `
  SELECT src, dst, weight FROM relationships ORDER BY src
  `
	iterNodePropertiesQuery = `
  SELECT key, node, long_value, double_value, long_array, double_array FROM node_properties ORDER BY key
  `
)

// CockroachDBStore persists graphs in a CockroachDB or PostgreSQL database
// and loads them into memory for analysis.
type CockroachDBStore struct {
	db *sql.DB
}

func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &CockroachDBStore{db}, nil
}

func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tables used by the store if they do not exist.
func (s *CockroachDBStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSchemaQuery); err != nil {
		return xerrors.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *CockroachDBStore) UpsertNode(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, upsertNodeQuery, id); err != nil {
		return xerrors.Errorf("upsert node: %w", err)
	}
	return nil
}

// InsertRelationship stores a relationship between two existing nodes. A nil
// weight marks the relationship as unweighted.
func (s *CockroachDBStore) InsertRelationship(ctx context.Context, src, dst int64, weight *float64) error {
	var w sql.NullFloat64
	if weight != nil {
		w = sql.NullFloat64{Float64: *weight, Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, insertRelationshipQuery, src, dst, w); err != nil {
		if isForeignKeyError(err) {
			err = graph.ErrUnknownNode
		}
		return xerrors.Errorf("insert relationship: %w", err)
	}
	return nil
}

// UpsertNodeProperty stores the value of a property for a single node.
// value must be an int64, float64, []int64 or []float64.
func (s *CockroachDBStore) UpsertNodeProperty(ctx context.Context, key string, node int64, value any) error {
	cols, err := propertyColumns(value)
	if err != nil {
		return xerrors.Errorf("upsert node property %q: %w", key, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertNodePropertyQuery, append([]any{key, node}, cols...)...); err != nil {
		if isForeignKeyError(err) {
			err = graph.ErrUnknownNode
		}
		return xerrors.Errorf("upsert node property %q: %w", key, err)
	}
	return nil
}

// WriteNodeProperty replaces every value of the property key with values.
// Internal node ids are translated back to store ids through ids.
func (s *CockroachDBStore) WriteNodeProperty(ctx context.Context, key string, values graph.PropertyValues, ids *graph.IDMap) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return xerrors.Errorf("write node property %q: %w", key, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = multierror.Append(err, rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, rmNodePropertyQuery, key); err != nil {
		return xerrors.Errorf("write node property %q: %w", key, err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("node_properties",
		"key", "node", "long_value", "double_value", "long_array", "double_array",
	))
	if err != nil {
		return xerrors.Errorf("write node property %q: %w", key, err)
	}
	for node := int64(0); node < ids.NodeCount(); node++ {
		cols, _ := propertyColumns(propertyValue(values, node))
		if _, err = stmt.ExecContext(ctx, append([]any{key, ids.ToOriginal(node)}, cols...)...); err != nil {
			_ = stmt.Close()
			return xerrors.Errorf("write node property %q: %w", key, err)
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return xerrors.Errorf("write node property %q: %w", key, err)
	}
	if err = stmt.Close(); err != nil {
		return xerrors.Errorf("write node property %q: %w", key, err)
	}
	if err = tx.Commit(); err != nil {
		return xerrors.Errorf("write node property %q: %w", key, err)
	}
	return nil
}

// Load reads the whole graph into memory. Store ids are mapped to dense ids
// in ascending order.
func (s *CockroachDBStore) Load(ctx context.Context) (*memory.InMemoryGraph, *graph.IDMap, error) {
	ids, err := s.loadNodes(ctx)
	if err != nil {
		return nil, nil, err
	}

	b := memory.NewBuilder(ids.NodeCount())
	if err := s.loadRelationships(ctx, b, ids); err != nil {
		return nil, nil, err
	}
	if err := s.loadNodeProperties(ctx, b, ids); err != nil {
		return nil, nil, err
	}
	return b.Build(), ids, nil
}

func (s *CockroachDBStore) loadNodes(ctx context.Context) (*graph.IDMap, error) {
	rows, err := s.db.QueryContext(ctx, iterNodesQuery)
	if err != nil {
		return nil, xerrors.Errorf("load nodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := graph.NewIDMap()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, xerrors.Errorf("load nodes: %w", err)
		}
		ids.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Errorf("load nodes: %w", err)
	}
	return ids, nil
}

func (s *CockroachDBStore) loadRelationships(ctx context.Context, b *memory.Builder, ids *graph.IDMap) error {
	rows, err := s.db.QueryContext(ctx, iterRelationshipsQuery)
	if err != nil {
		return xerrors.Errorf("load relationships: %w", err)
	}
	it := &relationshipIterator{rows: rows}
	defer func() { _ = it.Close() }()

	for it.Next() {
		rel := it.Relationship()
		src, srcOK := ids.ToInternal(rel.src)
		dst, dstOK := ids.ToInternal(rel.dst)
		if !srcOK || !dstOK {
			return xerrors.Errorf("load relationship (%d)->(%d): %w", rel.src, rel.dst, graph.ErrUnknownNode)
		}
		if rel.weight.Valid {
			err = b.AddWeightedRelationship(src, dst, rel.weight.Float64)
		} else {
			err = b.AddRelationship(src, dst)
		}
		if err != nil {
			return xerrors.Errorf("load relationships: %w", err)
		}
	}
	if err := it.Error(); err != nil {
		return xerrors.Errorf("load relationships: %w", err)
	}
	return nil
}

func (s *CockroachDBStore) loadNodeProperties(ctx context.Context, b *memory.Builder, ids *graph.IDMap) error {
	rows, err := s.db.QueryContext(ctx, iterNodePropertiesQuery)
	if err != nil {
		return xerrors.Errorf("load node properties: %w", err)
	}
	it := &propertyIterator{rows: rows}
	defer func() { _ = it.Close() }()

	var cur *propertyColumn
	flush := func() error {
		if cur == nil {
			return nil
		}
		return b.AddNodeProperty(cur.key, cur.values())
	}
	for it.Next() {
		p := it.Property()
		node, ok := ids.ToInternal(p.node)
		if !ok {
			return xerrors.Errorf("load node property %q of node %d: %w", p.key, p.node, graph.ErrUnknownNode)
		}
		if cur == nil || cur.key != p.key {
			if err := flush(); err != nil {
				return xerrors.Errorf("load node properties: %w", err)
			}
			cur = newPropertyColumn(p.key, p.valueType, ids.NodeCount())
		}
		if err := cur.set(node, p); err != nil {
			return xerrors.Errorf("load node properties: %w", err)
		}
	}
	if err := it.Error(); err != nil {
		return xerrors.Errorf("load node properties: %w", err)
	}
	if err := flush(); err != nil {
		return xerrors.Errorf("load node properties: %w", err)
	}
	return nil
}

func propertyValue(values graph.PropertyValues, node int64) any {
	switch values.ValueType() {
	case graph.Long:
		return values.LongValue(node)
	case graph.Double:
		return values.DoubleValue(node)
	case graph.LongArray:
		return values.LongArrayValue(node)
	default:
		return values.DoubleArrayValue(node)
	}
}

// propertyColumns maps a value onto the (long_value, double_value,
// long_array, double_array) columns.
func propertyColumns(value any) ([]any, error) {
	var (
		l  sql.NullInt64
		d  sql.NullFloat64
		la pq.Int64Array
		da pq.Float64Array
	)
	switch v := value.(type) {
	case int64:
		l = sql.NullInt64{Int64: v, Valid: true}
	case float64:
		d = sql.NullFloat64{Float64: v, Valid: true}
	case []int64:
		la = pq.Int64Array(v)
		if la == nil {
			la = pq.Int64Array{}
		}
	case []float64:
		da = pq.Float64Array(v)
		if da == nil {
			da = pq.Float64Array{}
		}
	default:
		return nil, xerrors.Errorf("unsupported property value type %T", value)
	}
	return []any{l, d, la, da}, nil
}

func isForeignKeyError(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}
