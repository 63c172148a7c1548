// Package network is the graph registry of the flow runtime: it catalogs
// component kinds by string identifier, instantiates named nodes, wires edges
// between their ports, seeds initial messages and drives start/stop of the
// whole graph.
package network

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mflow-go/mflow/pkg/flow"
	"github.com/mflow-go/mflow/pkg/types"
)

// Factory creates a fresh component instance of one kind. Factories take no
// arguments; configuration reaches a component through initial messages on
// its ports.
type Factory func() flow.Component

// Network owns the kind and node catalogs of one dataflow graph. Construction
// (registering, adding nodes, edges and initials) must finish before Start;
// wiring is static while the graph runs. Unlike the ports it creates, the
// Network holds no queue references of its own: edges live entirely in the
// connected ports.
type Network struct {
	mu        sync.Mutex
	factories map[string]Factory
	nodes     map[string]flow.Component
	order     []string

	clock  types.Clock
	logger *slog.Logger
}

// Option configures a Network.
type Option func(*Network)

// WithClock sets the clock used by Wait deadlines.
func WithClock(clock types.Clock) Option {
	return func(n *Network) {
		if clock != nil {
			n.clock = clock
		}
	}
}

// WithLogger sets the logger for network lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates an empty network.
func New(opts ...Option) *Network {
	n := &Network{
		factories: make(map[string]Factory),
		nodes:     make(map[string]flow.Component),
		clock:     types.NewRealClock(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// RegisterKind registers a component factory under the given kind identifier.
func (n *Network) RegisterKind(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("register kind: empty identifier")
	}
	if factory == nil {
		return fmt.Errorf("register kind %q: nil factory", id)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.factories[id]; exists {
		return fmt.Errorf("register kind %q: %w", id, types.ErrDuplicateKind)
	}
	n.factories[id] = factory
	return nil
}

// AddNode instantiates the given kind and stores it under name. Nodes start
// in the created state; nothing executes until Start.
func (n *Network) AddNode(kind, name string) error {
	if name == "" {
		return fmt.Errorf("add node: empty name")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	factory, ok := n.factories[kind]
	if !ok {
		return fmt.Errorf("add node %q: kind %q: %w", name, kind, types.ErrUnknownKind)
	}
	if _, exists := n.nodes[name]; exists {
		return fmt.Errorf("add node %q: %w", name, types.ErrDuplicateNode)
	}

	n.nodes[name] = factory()
	n.order = append(n.order, name)
	return nil
}

// RemoveNode stops the named node, closes its input queues and forgets it.
// Producers still connected to the removed node observe closed queues and
// discard. Removing an unknown name is an error.
func (n *Network) RemoveNode(name string) error {
	n.mu.Lock()
	node, ok := n.nodes[name]
	if ok {
		delete(n.nodes, name)
		for i, existing := range n.order {
			if existing == name {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
	n.mu.Unlock()

	if !ok {
		return fmt.Errorf("remove node %q: %w", name, types.ErrUnknownNode)
	}
	flow.Teardown(node)
	return nil
}

// AddEdge connects the source node's output port to the target node's input
// port. Both nodes must already be part of the network and the ports must
// carry the same message type.
func (n *Network) AddEdge(source string, sourcePort uint, target string, targetPort uint) error {
	n.mu.Lock()
	src, srcOK := n.nodes[source]
	dst, dstOK := n.nodes[target]
	n.mu.Unlock()

	if !srcOK {
		return fmt.Errorf("add edge: source %q: %w", source, types.ErrUnknownNode)
	}
	if !dstOK {
		return fmt.Errorf("add edge: target %q: %w", target, types.ErrUnknownNode)
	}
	if err := flow.Connect(src, sourcePort, dst, targetPort); err != nil {
		return fmt.Errorf("add edge %s[%d] -> %s[%d]: %w",
			source, sourcePort, target, targetPort, err)
	}
	return nil
}

// AddInitial seeds one message into the named node's input port. Call it
// before Start: seeding bypasses the producer/consumer concurrency of a
// running graph. (A function rather than a method: methods cannot take type
// parameters.)
func AddInitial[T any](n *Network, name string, port uint, message T) error {
	n.mu.Lock()
	node, ok := n.nodes[name]
	n.mu.Unlock()

	if !ok {
		return fmt.Errorf("add initial: node %q: %w", name, types.ErrUnknownNode)
	}
	in := node.Input(port)
	if in == nil {
		return fmt.Errorf("add initial: node %q port %d: %w", name, port, types.ErrUnknownPort)
	}

	switch status := flow.SendMessage(in, message); status {
	case types.StatusOkay:
		return nil
	case types.StatusTypeMismatch:
		return fmt.Errorf("add initial: node %q port %d: %w", name, port, types.ErrTypeMismatch)
	case types.StatusTerminated:
		return fmt.Errorf("add initial: node %q port %d: %w", name, port, types.ErrQueueClosed)
	default:
		return fmt.Errorf("add initial: node %q port %d: status %s", name, port, status)
	}
}

// Start releases every node for execution, in the order they were added.
// Order is a convenience only: nodes communicate exclusively through queues
// and tolerate peers that are not running yet.
func (n *Network) Start() {
	n.mu.Lock()
	nodes := make([]flow.Component, 0, len(n.order))
	for _, name := range n.order {
		nodes = append(nodes, n.nodes[name])
	}
	n.mu.Unlock()

	n.logger.Info("starting network", "nodes", len(nodes))
	for _, node := range nodes {
		flow.StartProcess(node)
	}
}

// Stop signals every node to stop and returns without waiting for their
// goroutines to exit. Use Wait (or the per-node flow.IsRunning/flow.Done) to
// observe actual termination.
func (n *Network) Stop() {
	n.mu.Lock()
	nodes := make([]flow.Component, 0, len(n.order))
	for _, name := range n.order {
		nodes = append(nodes, n.nodes[name])
	}
	n.mu.Unlock()

	n.logger.Info("stopping network", "nodes", len(nodes))
	for _, node := range nodes {
		flow.StopProcess(node)
	}
}

// Wait blocks until every started node's goroutine has exited, or returns
// ErrTimeout when the deadline expires first.
func (n *Network) Wait(timeout time.Duration) error {
	n.mu.Lock()
	dones := make([]<-chan struct{}, 0, len(n.nodes))
	for _, node := range n.nodes {
		if done := flow.Done(node); done != nil {
			dones = append(dones, done)
		}
	}
	n.mu.Unlock()

	deadline := n.clock.NewTimer(timeout)
	defer deadline.Stop()

	for _, done := range dones {
		select {
		case <-done:
		case <-deadline.C():
			return fmt.Errorf("wait for network shutdown: %w", types.ErrTimeout)
		}
	}
	return nil
}

// Node returns the named component instance, nil when unknown.
func (n *Network) Node(name string) flow.Component {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nodes[name]
}

// Nodes returns the node names in the order they were added.
func (n *Network) Nodes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}
