package components

import (
	"github.com/mflow-go/mflow/pkg/flow"
)

// MovingAverage port indices.
const (
	MovingAveragePortIn    uint = 0
	MovingAveragePortWidth uint = 1
	MovingAveragePortOut   uint = 0
)

// MovingAverage smooths its input with a sliding window of configurable
// width. The width arrives as an initial message and supports live
// reconfiguration, which resets the window.
type MovingAverage struct {
	*flow.Core

	window []float64
}

// NewMovingAverage creates a moving-average filter; seed the window width as
// an initial message before starting the component.
func NewMovingAverage(opts ...flow.Option) *MovingAverage {
	m := &MovingAverage{Core: flow.NewCore(opts...)}
	flow.AddInput[float64](m, MovingAveragePortIn, 1)
	flow.AddInput[uint](m, MovingAveragePortWidth, 1)
	flow.AddOutput[float64](m, MovingAveragePortOut)
	return m
}

// Initialize reads the seeded window width.
func (m *MovingAverage) Initialize() {
	width := uint(1)
	if r := flow.Receive[uint](m.Input(MovingAveragePortWidth)); r.IsOkay() && r.Value() > 0 {
		width = r.Value()
	}
	m.window = make([]float64, width)
}

// Process consumes one sample and emits the current window mean.
func (m *MovingAverage) Process() {
	if m.Input(MovingAveragePortWidth).HasMessage() {
		if r := flow.Receive[uint](m.Input(MovingAveragePortWidth)); r.IsOkay() && r.Value() > 0 {
			m.window = make([]float64, r.Value())
		}
	}

	in := flow.Receive[float64](m.Input(MovingAveragePortIn))
	if !in.IsOkay() {
		return
	}

	copy(m.window, m.window[1:])
	m.window[len(m.window)-1] = in.Value()

	sum := 0.0
	for _, v := range m.window {
		sum += v
	}
	flow.Send(m.Output(MovingAveragePortOut), sum/float64(len(m.window)))
}
