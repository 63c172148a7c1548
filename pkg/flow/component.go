package flow

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mflow-go/mflow/pkg/retry"
	"github.com/mflow-go/mflow/pkg/types"
)

// defaultPushTimeout paces producer-side push attempts between shutdown
// checks.
const defaultPushTimeout = 10 * time.Millisecond

// Component is an independently scheduled unit of computation. Initialize is
// called exactly once after StartProcess, before the first Process call;
// Process is called in a loop on the component's own goroutine until
// StopProcess. Process bodies exchange data exclusively through the port API
// (Receive, Send, Await), which doubles as the cooperative shutdown point.
//
// Concrete components embed *Core, which contributes everything except
// Initialize and Process.
type Component interface {
	// Initialize performs one-time setup. Initial messages seeded into the
	// input ports before start are available here.
	Initialize()

	// Process implements one iteration of the component's behaviour.
	Process()

	// Input returns the input port declared under index, nil when absent.
	Input(index uint) *InputPort

	// Output returns the output port declared under index, nil when absent.
	Output(index uint) *OutputPort

	core() *Core
}

// Core holds the runtime state every component carries: the port sets, the
// lifecycle flags and the wake signals its blocked operations park on.
// Concrete component types embed a *Core obtained from NewCore.
type Core struct {
	inputs  map[uint]*InputPort
	outputs map[uint]*OutputPort

	clock      types.Clock
	sendPolicy retry.Policy
	logger     *slog.Logger

	shouldRun atomic.Bool
	isRunning atomic.Bool

	// arrival and quit are capacity-1 edge-triggered wake signals. Producers
	// set arrival after every successful push; StopProcess sets quit. Waiters
	// re-check their condition after every wake, so coalesced or stale
	// tokens cause at most one spurious loop iteration.
	arrival chan struct{}
	quit    chan struct{}

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// Option configures a Core.
type Option func(*Core)

// WithClock sets the clock used for send pacing and tick delays.
func WithClock(clock types.Clock) Option {
	return func(c *Core) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSendPolicy sets the pacing policy for bounded push attempts.
func WithSendPolicy(policy retry.Policy) Option {
	return func(c *Core) {
		if policy != nil {
			c.sendPolicy = policy
		}
	}
}

// WithLogger sets the logger for lifecycle transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Core) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCore creates the runtime state for one component. Declare ports with
// AddInput/AddOutput immediately after, in the component's constructor.
func NewCore(opts ...Option) *Core {
	c := &Core{
		inputs:     make(map[uint]*InputPort),
		outputs:    make(map[uint]*OutputPort),
		clock:      types.NewRealClock(),
		sendPolicy: retry.NewFixedDelay(defaultPushTimeout),
		logger:     slog.Default(),
		arrival:    make(chan struct{}, 1),
		quit:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Core) core() *Core { return c }

// Input returns the input port declared under index, nil when absent.
func (c *Core) Input(index uint) *InputPort {
	return c.inputs[index]
}

// Output returns the output port declared under index, nil when absent.
func (c *Core) Output(index uint) *OutputPort {
	return c.outputs[index]
}

// Clock returns the component's clock.
func (c *Core) Clock() types.Clock {
	return c.clock
}

// ShouldRun reports whether the component has been asked to keep executing.
func (c *Core) ShouldRun() bool {
	return c.shouldRun.Load()
}

// IsRunning reports whether the component's goroutine is currently executing.
func (c *Core) IsRunning() bool {
	return c.isRunning.Load()
}

// Await blocks until one of the given input ports has a message available and
// returns its index, or returns StatusTerminated when shutdown is requested
// first. The arrival signal is registered before the has-message re-check
// loop blocks, so a message arriving between check and wait is never missed.
func (c *Core) Await(indices ...uint) types.Result[uint] {
	for {
		if !c.ShouldRun() {
			return types.Failure[uint](types.StatusTerminated)
		}
		for _, index := range indices {
			if in := c.inputs[index]; in != nil && in.HasMessage() {
				return types.Okay(index)
			}
		}
		c.waitSignal()
	}
}

// signalArrival wakes the component's blocked port operation, if any.
// Non-blocking; concurrent signals coalesce into the buffered token.
func (c *Core) signalArrival() {
	select {
	case c.arrival <- struct{}{}:
	default:
	}
}

func (c *Core) signalQuit() {
	select {
	case c.quit <- struct{}{}:
	default:
	}
}

// waitSignal parks the calling goroutine until a message arrival or a
// shutdown request. Callers must re-check their condition afterwards.
func (c *Core) waitSignal() {
	select {
	case <-c.arrival:
	case <-c.quit:
	}
}

// StartProcess releases the component for execution: it sets the should-run
// flag and spawns the goroutine driving the Initialize-then-Process loop.
// Starting an already-started component is a no-op.
func StartProcess(c Component) {
	core := c.core()

	core.mu.Lock()
	if core.started {
		core.mu.Unlock()
		return
	}
	core.started = true
	core.done = make(chan struct{})
	done := core.done
	core.mu.Unlock()

	core.shouldRun.Store(true)
	go runProcess(c, done)
}

// StopProcess asks the component to stop and wakes its blocked port
// operation, so a pending Receive, Send or Await returns StatusTerminated
// promptly. It does not wait for the goroutine to exit; observe that through
// IsRunning or Done.
func StopProcess(c Component) {
	core := c.core()
	core.shouldRun.Store(false)
	core.signalQuit()
}

// IsRunning reports whether the component's goroutine is currently executing.
func IsRunning(c Component) bool {
	return c.core().IsRunning()
}

// Done returns a channel closed when the component's goroutine exits. It is
// nil before the first StartProcess and replaced on every restart.
func Done(c Component) <-chan struct{} {
	core := c.core()
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.done
}

// Teardown stops the component and closes every input queue it owns. This is
// the only path that closes a queue; connected producers observe the closure
// as discard-on-send. Call it when removing a component from a graph for
// good.
func Teardown(c Component) {
	StopProcess(c)
	for _, in := range c.core().inputs {
		in.close()
	}
}

func runProcess(c Component, done chan struct{}) {
	core := c.core()

	defer func() {
		core.mu.Lock()
		core.started = false
		core.mu.Unlock()
		close(done)
	}()

	core.isRunning.Store(true)
	core.logger.Debug("component initializing")

	c.Initialize()

	core.logger.Debug("component running")

	for core.shouldRun.Load() {
		c.Process()
	}

	core.isRunning.Store(false)
	core.logger.Debug("component shutting down")
}
