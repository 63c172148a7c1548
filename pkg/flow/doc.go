/*
Package flow is the runtime substrate for flow-based programs: components
scheduled on their own goroutines, communicating exclusively through typed,
bounded, point-to-point ports.

# Model

A component declares input ports (index, message type, queue capacity) and
output ports (index, message type) in its constructor, implements Initialize
(called once) and Process (called in a loop), and never shares mutable state
with other components. Connecting an output port to an input port of another
component gives the output shared access to the input's bounded queue; fan-in
(many outputs, one input) is supported, fan-out from a single OutputPort is
not — declare one output per edge.

	type Doubler struct {
		*flow.Core
	}

	func NewDoubler() *Doubler {
		d := &Doubler{Core: flow.NewCore()}
		flow.AddInput[float64](d, 0, 8)
		flow.AddOutput[float64](d, 0)
		return d
	}

	func (d *Doubler) Initialize() {}

	func (d *Doubler) Process() {
		in := flow.Receive[float64](d.Input(0))
		if !in.IsOkay() {
			return
		}
		flow.Send(d.Output(0), 2*in.Value())
	}

# Transfers

Every transfer returns a types.Status or types.Result: StatusTypeMismatch
when the declared type doesn't match the port (checked against TypeIDs before
any queue access), StatusTerminated when the owning component is shutting
down, StatusOkay on success. Failures are values, never panics; check them
before using a payload.

Producers facing a full queue retry bounded-timeout pushes between shutdown
checks (backpressure); unconnected or closed outputs discard immediately, so
a producer is never wedged by a consumer that went away. Consumers with an
empty queue park on the component's arrival signal and react to both message
arrival and shutdown without polling.

# Lifecycle

StartProcess spawns the component goroutine; StopProcess flips the should-run
flag and wakes any blocked port operation. Stopping never preempts a Process
call: termination latency is bounded by the time the current call takes to
reach its next port operation or return.
*/
package flow
