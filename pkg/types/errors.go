package types

import "errors"

// Predefined errors
var (
	// ErrTypeMismatch indicates the declared message type does not match the port type
	ErrTypeMismatch = errors.New("port type mismatch")

	// ErrTerminated indicates the owning component is shutting down
	ErrTerminated = errors.New("component is terminating")

	// ErrQueueClosed indicates the target message queue is closed
	ErrQueueClosed = errors.New("message queue is closed")

	// ErrTimeout indicates operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrSelfConnection indicates an attempt to connect two ports of the same component
	ErrSelfConnection = errors.New("cannot connect ports of the same component")

	// ErrAlreadyConnected indicates the output port already holds a queue reference
	ErrAlreadyConnected = errors.New("output port is already connected")

	// ErrUnknownKind indicates the component kind is not registered
	ErrUnknownKind = errors.New("unknown component kind")

	// ErrUnknownNode indicates the node name is not part of the network
	ErrUnknownNode = errors.New("unknown node name")

	// ErrUnknownPort indicates the port index does not exist on the component
	ErrUnknownPort = errors.New("unknown port index")

	// ErrDuplicateNode indicates the node name is already in use
	ErrDuplicateNode = errors.New("node name already in use")

	// ErrDuplicateKind indicates the component kind is already registered
	ErrDuplicateKind = errors.New("component kind already registered")
)
