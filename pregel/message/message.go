/*
	Superstep scoped message passing between nodes.
*/
package message

// Messenger delivers messages between nodes with exactly one superstep of
// latency: a message sent during superstep k is visible to its target only
// during superstep k+1.
//
// SendTo may be called concurrently by compute workers. InitIteration and
// Release are only called between supersteps by a single goroutine.
type Messenger[M any] interface {
	// InitIteration prepares the buffers for the given superstep. It must
	// be invoked exactly once per superstep before any compute step runs.
	InitIteration(superstep int)

	// SendTo enqueues msg for target for delivery in the next superstep.
	SendTo(target int64, msg M)

	// InitMessageIterator loads the messages addressed to node for the
	// current superstep into it. Messages are handed out at most once.
	InitMessageIterator(it *Iterator[M], node int64)

	// Release drops the buffers held by the messenger.
	Release()
}

// Reducer combines messages addressed to the same node. Reduce must be
// associative and commutative so that delivery order does not matter.
type Reducer[M any] interface {
	Identity() M
	Reduce(current, message M) M
}

// Iterator is a single-pass iterator over the messages delivered to a node
// in one superstep. Iterators are reused across nodes by the same worker and
// are not safe for concurrent access.
type Iterator[M any] struct {
	msgs    []M
	pos     int
	latched M
	single  [1]M
}

// NewIterator returns an empty iterator.
func NewIterator[M any]() *Iterator[M] { return new(Iterator[M]) }

// Next advances the iterator. It returns false once all messages have been
// consumed.
func (it *Iterator[M]) Next() bool {
	if it.pos >= len(it.msgs) {
		return false
	}
	it.latched = it.msgs[it.pos]
	it.pos++
	return true
}

// Message returns the message the iterator currently points to.
func (it *Iterator[M]) Message() M { return it.latched }

// IsEmpty reports whether there are no messages left to consume.
func (it *Iterator[M]) IsEmpty() bool { return it.pos >= len(it.msgs) }

// Len returns the total number of messages loaded into the iterator.
func (it *Iterator[M]) Len() int { return len(it.msgs) }

func (it *Iterator[M]) reset(msgs []M) {
	var zero M
	it.msgs, it.pos, it.latched = msgs, 0, zero
}

func (it *Iterator[M]) resetSingle(msg M) {
	it.single[0] = msg
	it.reset(it.single[:])
}
