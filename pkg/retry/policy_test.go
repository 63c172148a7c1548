package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelay(t *testing.T) {
	p := NewFixedDelay(10 * time.Millisecond)

	assert.Equal(t, 10*time.Millisecond, p.NextDelay(0))
	assert.Equal(t, 10*time.Millisecond, p.NextDelay(100))
}

func TestFixedDelay_Jitter(t *testing.T) {
	p := NewFixedDelay(100*time.Millisecond, WithJitter(0.5))

	for i := 0; i < 100; i++ {
		d := p.NextDelay(i)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestExponentialBackoff(t *testing.T) {
	p := NewExponentialBackoff(10*time.Millisecond, 1*time.Second, 2.0)

	assert.Equal(t, 10*time.Millisecond, p.NextDelay(0))
	assert.Equal(t, 20*time.Millisecond, p.NextDelay(1))
	assert.Equal(t, 40*time.Millisecond, p.NextDelay(2))
}

func TestExponentialBackoff_Cap(t *testing.T) {
	p := NewExponentialBackoff(10*time.Millisecond, 1*time.Second, 2.0)

	assert.Equal(t, 1*time.Second, p.NextDelay(20))
	// Large attempt counts overflow the float math; the cap still holds.
	assert.Equal(t, 1*time.Second, p.NextDelay(10_000))
}

func TestExponentialBackoff_InvalidMultiplier(t *testing.T) {
	p := NewExponentialBackoff(10*time.Millisecond, 1*time.Second, 0.5)

	// Falls back to doubling.
	assert.Equal(t, 20*time.Millisecond, p.NextDelay(1))
}
