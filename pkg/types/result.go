// Package types defines the core value types shared by the flow runtime:
// operation statuses, the Result container, type identities and the clock
// abstraction.
package types

// Status describes the outcome of a port send/receive operation.
type Status int

const (
	// StatusOkay indicates the operation succeeded and the payload is valid
	StatusOkay Status = iota
	// StatusTypeMismatch indicates the declared message type does not match the port type
	StatusTypeMismatch
	// StatusTerminated indicates the owning component is shutting down
	StatusTerminated
	// StatusError indicates an internal queue failure
	StatusError
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case StatusOkay:
		return "okay"
	case StatusTypeMismatch:
		return "type-mismatch"
	case StatusTerminated:
		return "terminated"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result carries either a message value or a failure status. Every
// cross-component transfer returns one; callers must check IsOkay (or
// Status) before touching Value.
type Result[T any] struct {
	value  T
	status Status
}

// Okay creates a successful Result carrying value.
func Okay[T any](value T) Result[T] {
	return Result[T]{value: value, status: StatusOkay}
}

// Failure creates a Result carrying only a failure status. A StatusOkay
// argument is normalized to StatusError, since a success must carry a value.
func Failure[T any](status Status) Result[T] {
	if status == StatusOkay {
		status = StatusError
	}
	return Result[T]{status: status}
}

// IsOkay reports whether the operation succeeded.
func (r Result[T]) IsOkay() bool {
	return r.status == StatusOkay
}

// Value returns the carried message. Only valid when IsOkay is true; for
// failed results it is the zero value of T.
func (r Result[T]) Value() T {
	return r.value
}

// Status returns the outcome of the operation.
func (r Result[T]) Status() Status {
	return r.status
}
