package retry

import (
	"math"
	"math/rand"
	"time"
)

// Policy supplies the timeout for the attempt-th push onto a full message
// queue. Attempts are numbered from zero and unbounded; the send loop itself
// decides when to stop (on component shutdown or queue closure).
type Policy interface {
	// NextDelay returns the bounded wait for the given attempt
	NextDelay(attempt int) time.Duration
}

// FixedDelay waits the same bounded time on every attempt.
type FixedDelay struct {
	delay        time.Duration
	jitter       bool
	jitterFactor float64
}

// NewFixedDelay creates a fixed delay policy
func NewFixedDelay(delay time.Duration, opts ...Option) *FixedDelay {
	p := &FixedDelay{delay: delay, jitterFactor: 0.1}
	for _, opt := range opts {
		opt(&p.jitter, &p.jitterFactor)
	}
	return p
}

// NextDelay returns the bounded wait for the given attempt
func (p *FixedDelay) NextDelay(_ int) time.Duration {
	return applyJitter(p.delay, p.jitter, p.jitterFactor)
}

// ExponentialBackoff grows the bounded wait geometrically up to a cap, so a
// producer facing a stalled consumer burns fewer wakeups over time.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	jitter       bool
	jitterFactor float64
}

// NewExponentialBackoff creates a capped exponential backoff policy
func NewExponentialBackoff(initialDelay, maxDelay time.Duration, multiplier float64, opts ...Option) *ExponentialBackoff {
	if multiplier <= 1.0 {
		multiplier = 2.0
	}
	p := &ExponentialBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		multiplier:   multiplier,
		jitterFactor: 0.1,
	}
	for _, opt := range opts {
		opt(&p.jitter, &p.jitterFactor)
	}
	return p
}

// NextDelay returns the bounded wait for the given attempt
func (p *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := time.Duration(float64(p.initialDelay) * math.Pow(p.multiplier, float64(attempt)))
	if delay > p.maxDelay || delay <= 0 {
		delay = p.maxDelay
	}
	return applyJitter(delay, p.jitter, p.jitterFactor)
}

// Option is a configuration option for pacing policies
type Option func(jitter *bool, factor *float64)

// WithJitter enables jitter with the given factor (0 < factor <= 1)
func WithJitter(factor float64) Option {
	return func(jitter *bool, f *float64) {
		*jitter = true
		if factor > 0 && factor <= 1 {
			*f = factor
		}
	}
}

// applyJitter spreads delay by up to ±factor to decorrelate producers
// contending for the same queue.
func applyJitter(delay time.Duration, enabled bool, factor float64) time.Duration {
	if !enabled {
		return delay
	}

	jitterRange := float64(delay) * factor
	jitterAmount := (rand.Float64() - 0.5) * 2 * jitterRange

	result := delay + time.Duration(jitterAmount)
	if result < 0 {
		result = delay / 2
	}

	return result
}
