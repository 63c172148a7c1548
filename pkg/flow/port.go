package flow

import (
	"time"

	"github.com/mflow-go/mflow/pkg/types"
)

// Port is the common state of input and output endpoints: the owning
// component, the attached message queue (nil for unconnected outputs) and the
// identity of the message type the port carries. A port's type never changes
// after construction.
type Port struct {
	parent *Core
	queue  *MessageQueue
	typeID types.TypeID
}

// TypeID returns the identity of the port's message type.
func (p *Port) TypeID() types.TypeID {
	return p.typeID
}

// HasMessage reports whether the attached queue buffers at least one message.
// Always false without an attached queue.
func (p *Port) HasMessage() bool {
	return p.queue != nil && p.queue.HasMessage()
}

// MessageCount returns the number of messages buffered in the attached queue.
func (p *Port) MessageCount() int {
	if p.queue == nil {
		return 0
	}
	return p.queue.MessageCount()
}

// Capacity returns the capacity of the attached queue, zero when unconnected.
func (p *Port) Capacity() int {
	if p.queue == nil {
		return 0
	}
	return p.queue.Capacity()
}

// IsClosed reports whether the attached queue is closed. A port without a
// queue reports closed.
func (p *Port) IsClosed() bool {
	return p.queue == nil || p.queue.IsClosed()
}

// sendToQueue pushes one message with a bounded timeout. A missing or closed
// queue counts as an immediate successful discard, so producers are never
// wedged by a consumer that shut down or was never wired up.
func (p *Port) sendToQueue(m any, timeout time.Duration) bool {
	if p.queue == nil || p.queue.IsClosed() {
		return true
	}
	return p.queue.Push(m, timeout)
}

// InputPort is the receiving endpoint. It creates and owns its queue at
// construction; connected OutputPorts share that queue.
type InputPort struct {
	Port
}

// close flags the owned queue as closed. Called exactly once, from the owning
// component's teardown.
func (p *InputPort) close() {
	if p.queue != nil {
		p.queue.Close()
	}
}

// OutputPort is the sending endpoint. It starts without a queue and acquires
// shared access to exactly one InputPort's queue on connection; an
// unconnected OutputPort silently discards sends.
type OutputPort struct {
	Port
}

// Connected reports whether the port has acquired a queue.
func (p *OutputPort) Connected() bool {
	return p.queue != nil
}

// AddInput declares an input port carrying T messages on component c under
// the given index, owning a fresh queue of the given capacity. Ports must be
// declared during component construction, before the component is started.
func AddInput[T any](c Component, index uint, capacity int) *InputPort {
	core := c.core()
	p := &InputPort{Port{
		parent: core,
		queue:  NewMessageQueue(capacity, core.clock, core.signalArrival),
		typeID: types.For[T](),
	}}
	core.inputs[index] = p
	return p
}

// AddOutput declares an unconnected output port carrying T messages on
// component c under the given index.
func AddOutput[T any](c Component, index uint) *OutputPort {
	core := c.core()
	p := &OutputPort{Port{
		parent: core,
		typeID: types.For[T](),
	}}
	core.outputs[index] = p
	return p
}

// ConnectPorts attaches the target InputPort's queue to the source
// OutputPort, so messages sent on the output arrive at the input. The two
// ports must belong to different components and carry the same message type;
// an OutputPort can be connected at most once. Multiple OutputPorts may share
// one InputPort (fan-in).
//
// Wiring is static: connect before starting the components involved.
func ConnectPorts(source *OutputPort, target *InputPort) error {
	if source == nil || target == nil {
		return types.ErrUnknownPort
	}
	// A component feeding its own input from its own output can deadlock its
	// single process loop.
	if source.parent == target.parent {
		return types.ErrSelfConnection
	}
	if source.typeID != target.typeID {
		return types.ErrTypeMismatch
	}
	if source.queue != nil {
		return types.ErrAlreadyConnected
	}
	source.queue = target.queue
	return nil
}

// Connect wires the source component's output port to the target component's
// input port by index.
func Connect(source Component, sourceIndex uint, target Component, targetIndex uint) error {
	return ConnectPorts(source.core().Output(sourceIndex), target.core().Input(targetIndex))
}

// Send transfers one message through the output port. The declared type T
// must match the port type, otherwise StatusTypeMismatch is returned without
// touching the queue. A full queue is retried with bounded-timeout pushes
// paced by the component's send policy until the push succeeds or the
// component is asked to stop (StatusTerminated). Unconnected and closed
// outputs discard immediately with StatusOkay.
func Send[T any](p *OutputPort, value T) types.Status {
	if p == nil {
		return types.StatusError
	}
	if types.For[T]() != p.typeID {
		return types.StatusTypeMismatch
	}

	for attempt := 0; p.parent.ShouldRun(); attempt++ {
		if p.sendToQueue(value, p.parent.sendPolicy.NextDelay(attempt)) {
			return types.StatusOkay
		}
	}
	return types.StatusTerminated
}

// Receive takes the oldest message from the input port. The declared type T
// must match the port type. With no message buffered the calling goroutine
// parks on the component's arrival signal, so it reacts to both message
// arrival and shutdown without polling; shutdown is re-checked before every
// attempt and yields StatusTerminated.
func Receive[T any](p *InputPort) types.Result[T] {
	if p == nil {
		return types.Failure[T](types.StatusError)
	}
	if types.For[T]() != p.typeID {
		return types.Failure[T](types.StatusTypeMismatch)
	}

	for {
		if !p.parent.ShouldRun() {
			return types.Failure[T](types.StatusTerminated)
		}
		if m, ok := p.queue.Pop(); ok {
			return types.Okay(m.(T))
		}
		p.parent.waitSignal()
	}
}

// SendMessage pushes a message into an input port from outside the graph,
// bypassing producer-side shutdown checks. It is meant for seeding initial
// messages before a network starts, not for component process code: it keeps
// retrying until the push succeeds or the target queue closes
// (StatusTerminated).
func SendMessage[T any](target *InputPort, message T) types.Status {
	if target == nil {
		return types.StatusError
	}
	if types.For[T]() != target.typeID {
		return types.StatusTypeMismatch
	}

	for attempt := 0; !target.queue.IsClosed(); attempt++ {
		if target.queue.Push(message, target.parent.sendPolicy.NextDelay(attempt)) {
			return types.StatusOkay
		}
	}
	return types.StatusTerminated
}
