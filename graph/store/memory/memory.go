package memory

import (
	"sync"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"golang.org/x/xerrors"
)

var _ graph.Graph = (*InMemoryGraph)(nil)

// InMemoryGraph is an immutable graph that stores its topology in
// compressed sparse row form.
type InMemoryGraph struct {
	nodeCount int64
	offsets   []int64
	targets   []int64
	weights   []float64
	weighted  bool

	props map[string]graph.PropertyValues
}

func (g *InMemoryGraph) NodeCount() int64 { return g.nodeCount }

func (g *InMemoryGraph) RelationshipCount() int64 { return int64(len(g.targets)) }

func (g *InMemoryGraph) Degree(node int64) int {
	return int(g.offsets[node+1] - g.offsets[node])
}

func (g *InMemoryGraph) ForEachRelationship(node int64, fn func(target int64) bool) {
	for i := g.offsets[node]; i < g.offsets[node+1]; i++ {
		if !fn(g.targets[i]) {
			return
		}
	}
}

func (g *InMemoryGraph) ForEachWeightedRelationship(node int64, fallback float64, fn func(target int64, weight float64) bool) {
	for i := g.offsets[node]; i < g.offsets[node+1]; i++ {
		w := fallback
		if g.weighted {
			w = g.weights[i]
		}
		if !fn(g.targets[i], w) {
			return
		}
	}
}

func (g *InMemoryGraph) NodeProperties(key string) (graph.PropertyValues, bool) {
	p, ok := g.props[key]
	return p, ok
}

// PropertyKeys returns the keys of all node properties attached to the graph.
func (g *InMemoryGraph) PropertyKeys() []string {
	keys := make([]string, 0, len(g.props))
	for k := range g.props {
		keys = append(keys, k)
	}
	return keys
}

type relationship struct {
	src, dst int64
	weight   float64
}

// Builder collects relationships and node properties for a graph with a
// fixed number of nodes. It is safe for concurrent use.
type Builder struct {
	mu sync.Mutex

	nodeCount int64
	rels      []relationship
	weighted  bool
	props     map[string]graph.PropertyValues
}

// NewBuilder returns a builder for a graph with nodeCount nodes.
func NewBuilder(nodeCount int64) *Builder {
	return &Builder{
		nodeCount: nodeCount,
		props:     make(map[string]graph.PropertyValues),
	}
}

// AddRelationship inserts a directed relationship from src to dst.
func (b *Builder) AddRelationship(src, dst int64) error {
	return b.addRelationship(src, dst, 1.0, false)
}

// AddWeightedRelationship inserts a directed relationship from src to dst
// annotated with the given weight. Once any weighted relationship is added,
// unweighted ones report a weight of 1.0.
func (b *Builder) AddWeightedRelationship(src, dst int64, weight float64) error {
	return b.addRelationship(src, dst, weight, true)
}

func (b *Builder) addRelationship(src, dst int64, weight float64, weighted bool) error {
	if src < 0 || src >= b.nodeCount || dst < 0 || dst >= b.nodeCount {
		return xerrors.Errorf("add relationship (%d)->(%d): %w", src, dst, graph.ErrUnknownNode)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.rels = append(b.rels, relationship{src: src, dst: dst, weight: weight})
	b.weighted = b.weighted || weighted
	return nil
}

// AddNodeProperty attaches a node property to the graph. The property must
// hold exactly one value per node.
func (b *Builder) AddNodeProperty(key string, values graph.PropertyValues) error {
	if n, ok := values.(interface{ Len() int }); ok && int64(n.Len()) != b.nodeCount {
		return xerrors.Errorf("add node property %q with %d values for %d nodes: %w", key, n.Len(), b.nodeCount, graph.ErrPropertySize)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.props[key]; exists {
		return xerrors.Errorf("add node property %q: %w", key, graph.ErrDuplicateProperty)
	}
	b.props[key] = values
	return nil
}

// Build assembles the collected data into an immutable graph. Relationships
// keep their insertion order per source node.
func (b *Builder) Build() *InMemoryGraph {
	b.mu.Lock()
	defer b.mu.Unlock()

	offsets := make([]int64, b.nodeCount+1)
	for _, r := range b.rels {
		offsets[r.src+1]++
	}
	for i := int64(1); i <= b.nodeCount; i++ {
		offsets[i] += offsets[i-1]
	}

	var (
		targets = make([]int64, len(b.rels))
		weights []float64
		cursor  = make([]int64, b.nodeCount)
	)
	if b.weighted {
		weights = make([]float64, len(b.rels))
	}
	copy(cursor, offsets[:b.nodeCount])
	for _, r := range b.rels {
		idx := cursor[r.src]
		cursor[r.src]++
		targets[idx] = r.dst
		if weights != nil {
			weights[idx] = r.weight
		}
	}

	props := make(map[string]graph.PropertyValues, len(b.props))
	for k, v := range b.props {
		props[k] = v
	}

	return &InMemoryGraph{
		nodeCount: b.nodeCount,
		offsets:   offsets,
		targets:   targets,
		weights:   weights,
		weighted:  b.weighted,
		props:     props,
	}
}
