package flow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Model-based check of the FIFO and capacity invariants: any interleaving of
// non-blocking pushes and pops behaves like a bounded slice queue.
func TestQueue_FIFOProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(rt, "capacity")
		ops := rapid.IntRange(1, 200).Draw(rt, "ops")

		q := NewMessageQueue(capacity, nil, nil)
		var model []int
		next := 0

		for i := 0; i < ops; i++ {
			if rapid.Bool().Draw(rt, "push") {
				ok := q.Push(next, 0)
				if len(model) < capacity {
					require.True(rt, ok, "push into non-full queue failed")
					model = append(model, next)
				} else {
					require.False(rt, ok, "push into full queue succeeded")
				}
				next++
			} else {
				m, ok := q.Pop()
				if len(model) > 0 {
					require.True(rt, ok, "pop from non-empty queue failed")
					require.Equal(rt, model[0], m, "FIFO order violated")
					model = model[1:]
				} else {
					require.False(rt, ok, "pop from empty queue succeeded")
				}
			}

			require.Equal(rt, len(model), q.MessageCount())
			require.Equal(rt, capacity, q.Capacity())
		}
	})
}
