package message

import (
	"sync"

	"github.com/Ahmed-Sermani/go-pregel/collections/hugearray"
)

const (
	lockStripes = 1 << 10
	stripeMask  = lockStripes - 1
)

var _ Messenger[any] = (*QueueMessenger[any])(nil)

// QueueMessenger keeps every message in per-node queues. Two buffers are
// needed: one holds the messages for the current superstep while the other
// buffers the messages sent during it. InitIteration swaps them.
type QueueMessenger[M any] struct {
	current *hugearray.Array[[]M]
	next    *hugearray.Array[[]M]

	// Concurrent senders to the same target serialize on the target's
	// stripe.
	locks [lockStripes]sync.Mutex
}

// NewQueueMessenger returns a synchronous double-buffered messenger for a
// graph with nodeCount nodes.
func NewQueueMessenger[M any](nodeCount int64) *QueueMessenger[M] {
	return &QueueMessenger[M]{
		current: hugearray.New[[]M](nodeCount),
		next:    hugearray.New[[]M](nodeCount),
	}
}

func (m *QueueMessenger[M]) InitIteration(int) {
	m.current, m.next = m.next, m.current
}

func (m *QueueMessenger[M]) SendTo(target int64, msg M) {
	l := &m.locks[target&stripeMask]
	l.Lock()
	m.next.Set(target, append(m.next.Get(target), msg))
	l.Unlock()
}

func (m *QueueMessenger[M]) InitMessageIterator(it *Iterator[M], node int64) {
	msgs := m.current.Get(node)
	// Keep the backing array for reuse: the slot only receives writes again
	// once it becomes the next buffer, after this superstep has finished.
	m.current.Set(node, msgs[:0])
	it.reset(msgs)
}

func (m *QueueMessenger[M]) Release() {
	m.current.Release()
	m.next.Release()
}
