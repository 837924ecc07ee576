package message

import (
	"sync"

	"github.com/Ahmed-Sermani/go-pregel/collections/bitset"
	"github.com/Ahmed-Sermani/go-pregel/collections/hugearray"
)

var _ Messenger[float64] = (*ReducingMessenger[float64])(nil)

// ReducingMessenger combines all messages sent to a node during a superstep
// into a single value using a Reducer. Each node receives at most one
// message per superstep.
type ReducingMessenger[M any] struct {
	reducer Reducer[M]

	current, next       *hugearray.Array[M]
	currentHas, nextHas *bitset.Atomic

	locks [lockStripes]sync.Mutex
}

// NewReducingMessenger returns a double-buffered messenger that reduces
// messages per target with reducer.
func NewReducingMessenger[M any](nodeCount int64, reducer Reducer[M]) *ReducingMessenger[M] {
	return &ReducingMessenger[M]{
		reducer:    reducer,
		current:    hugearray.New[M](nodeCount),
		next:       hugearray.New[M](nodeCount),
		currentHas: bitset.NewAtomic(nodeCount),
		nextHas:    bitset.NewAtomic(nodeCount),
	}
}

func (m *ReducingMessenger[M]) InitIteration(int) {
	m.current, m.next = m.next, m.current
	m.currentHas, m.nextHas = m.nextHas, m.currentHas
	m.nextHas.ClearAll()
}

func (m *ReducingMessenger[M]) SendTo(target int64, msg M) {
	l := &m.locks[target&stripeMask]
	l.Lock()
	acc := m.reducer.Identity()
	if m.nextHas.Get(target) {
		acc = m.next.Get(target)
	} else {
		m.nextHas.Set(target)
	}
	m.next.Set(target, m.reducer.Reduce(acc, msg))
	l.Unlock()
}

func (m *ReducingMessenger[M]) InitMessageIterator(it *Iterator[M], node int64) {
	if !m.currentHas.GetAndClear(node) {
		it.reset(nil)
		return
	}
	it.resetSingle(m.current.Get(node))
}

func (m *ReducingMessenger[M]) Release() {
	m.current.Release()
	m.next.Release()
	m.currentHas.Release()
	m.nextHas.Release()
}
