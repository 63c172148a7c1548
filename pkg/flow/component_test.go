package flow

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mflow-go/mflow/pkg/types"
)

// counter is a component whose Process ticks an atomic counter.
type counter struct {
	*Core
	initialized int64
	processed   int64
}

func newCounter() *counter {
	return &counter{Core: NewCore()}
}

func (c *counter) Initialize() {
	atomic.AddInt64(&c.initialized, 1)
}

func (c *counter) Process() {
	atomic.AddInt64(&c.processed, 1)
	time.Sleep(time.Millisecond)
}

func TestLifecycle_StartStop(t *testing.T) {
	c := newCounter()
	assert.False(t, IsRunning(c))
	assert.Nil(t, Done(c))

	StartProcess(c)

	assert.Eventually(t, func() bool { return IsRunning(c) },
		time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return atomic.LoadInt64(&c.processed) > 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&c.initialized))

	StopProcess(c)

	select {
	case <-Done(c):
	case <-time.After(time.Second):
		t.Fatal("component goroutine did not exit")
	}
	assert.False(t, IsRunning(c))
}

func TestLifecycle_StartIdempotent(t *testing.T) {
	c := newCounter()
	StartProcess(c)
	StartProcess(c)
	StartProcess(c)

	assert.Eventually(t, func() bool { return atomic.LoadInt64(&c.processed) > 0 },
		time.Second, time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&c.initialized))

	StopProcess(c)
	<-Done(c)
}

func TestLifecycle_StopIdempotent(t *testing.T) {
	c := newCounter()
	StartProcess(c)
	assert.Eventually(t, func() bool { return IsRunning(c) },
		time.Second, time.Millisecond)

	StopProcess(c)
	StopProcess(c)
	<-Done(c)
	assert.False(t, IsRunning(c))
}

func TestLifecycle_Restart(t *testing.T) {
	c := newCounter()

	StartProcess(c)
	assert.Eventually(t, func() bool { return IsRunning(c) },
		time.Second, time.Millisecond)
	StopProcess(c)
	<-Done(c)

	StartProcess(c)
	assert.Eventually(t, func() bool { return IsRunning(c) },
		time.Second, time.Millisecond)
	assert.Equal(t, int64(2), atomic.LoadInt64(&c.initialized))

	StopProcess(c)
	<-Done(c)
}

func TestAwait_ReturnsReadyIndex(t *testing.T) {
	c := newStub().release()
	AddInput[int](c, 0, 1)
	in1 := AddInput[int](c, 1, 1)

	require.Equal(t, types.StatusOkay, SendMessage(in1, 5))

	r := c.Await(0, 1)
	require.True(t, r.IsOkay())
	assert.Equal(t, uint(1), r.Value())
}

func TestAwait_WakesOnArrival(t *testing.T) {
	c := newStub().release()
	in0 := AddInput[int](c, 0, 1)
	AddInput[int](c, 1, 1)

	result := make(chan types.Result[uint], 1)
	go func() {
		result <- c.Await(0, 1)
	}()

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, types.StatusOkay, SendMessage(in0, 9))

	select {
	case r := <-result:
		require.True(t, r.IsOkay())
		assert.Equal(t, uint(0), r.Value())
	case <-time.After(time.Second):
		t.Fatal("await did not wake on arrival")
	}
}

func TestAwait_TerminatedOnStop(t *testing.T) {
	c := newStub().release()
	AddInput[int](c, 0, 1)

	result := make(chan types.Result[uint], 1)
	go func() {
		result <- c.Await(0)
	}()

	time.Sleep(20 * time.Millisecond)
	StopProcess(c)

	select {
	case r := <-result:
		assert.Equal(t, types.StatusTerminated, r.Status())
	case <-time.After(time.Second):
		t.Fatal("await did not observe shutdown")
	}
}

func TestTeardown_ClosesInputs(t *testing.T) {
	c := newStub()
	in0 := AddInput[int](c, 0, 1)
	in1 := AddInput[float64](c, 1, 1)

	Teardown(c)

	assert.True(t, in0.IsClosed())
	assert.True(t, in1.IsClosed())
	assert.False(t, c.ShouldRun())
}

func TestCoreOptions(t *testing.T) {
	clock := types.NewRealClock()
	c := NewCore(WithClock(clock))
	assert.Same(t, clock, c.Clock())

	// Nil options keep the defaults.
	c = NewCore(WithClock(nil), WithSendPolicy(nil), WithLogger(nil))
	assert.NotNil(t, c.clock)
	assert.NotNil(t, c.sendPolicy)
	assert.NotNil(t, c.logger)
}
