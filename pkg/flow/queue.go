package flow

import (
	"sync/atomic"
	"time"

	"github.com/mflow-go/mflow/pkg/types"
)

// MessageQueue is a fixed-capacity FIFO channel between exactly one consuming
// InputPort and any number of producing OutputPorts. Payloads are untyped at
// this level; type safety is enforced by the port layer through TypeIDs, so a
// queue only ever carries values of one concrete type.
//
// The queue itself has no shutdown concept. Close is a one-way flag consulted
// by producers; buffered messages remain readable after it is set.
type MessageQueue struct {
	buf    chan any
	closed atomic.Bool
	clock  types.Clock
	notify func()
}

// NewMessageQueue creates a queue with the given capacity. The notify callback
// is fired after every successful push to wake the consuming component;
// capacities below one are raised to one.
func NewMessageQueue(capacity int, clock types.Clock, notify func()) *MessageQueue {
	if capacity < 1 {
		capacity = 1
	}
	if clock == nil {
		clock = types.NewRealClock()
	}
	if notify == nil {
		notify = func() {}
	}
	return &MessageQueue{
		buf:    make(chan any, capacity),
		clock:  clock,
		notify: notify,
	}
}

// HasMessage reports whether at least one message is buffered.
func (q *MessageQueue) HasMessage() bool {
	return len(q.buf) > 0
}

// MessageCount returns the number of currently buffered messages.
func (q *MessageQueue) MessageCount() int {
	return len(q.buf)
}

// Capacity returns the fixed capacity of the queue.
func (q *MessageQueue) Capacity() int {
	return cap(q.buf)
}

// Close flags the queue as closed. Idempotent and one-directional; it does
// not drain buffered messages, it only changes what producers observe.
func (q *MessageQueue) Close() {
	q.closed.Store(true)
}

// IsClosed reports whether the queue has been closed.
func (q *MessageQueue) IsClosed() bool {
	return q.closed.Load()
}

// Push enqueues one message, waiting at most timeout for a free slot. It
// returns false only on timeout. On success the consumer is notified.
func (q *MessageQueue) Push(m any, timeout time.Duration) bool {
	select {
	case q.buf <- m:
		q.notify()
		return true
	default:
	}

	if timeout <= 0 {
		return false
	}

	timer := q.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case q.buf <- m:
		q.notify()
		return true
	case <-timer.C():
		return false
	}
}

// Pop dequeues the oldest buffered message without blocking. The second
// return value is false when the queue is empty. Blocking receive semantics
// live in the port layer, which waits on the component's arrival signal and
// only calls Pop once HasMessage reports true.
func (q *MessageQueue) Pop() (any, bool) {
	select {
	case m := <-q.buf:
		return m, true
	default:
		return nil, false
	}
}
