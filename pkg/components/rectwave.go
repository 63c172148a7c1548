package components

import (
	"github.com/mflow-go/mflow/pkg/flow"
)

// RectifiedWave port indices.
const (
	RectifiedWavePortPeriod uint = 0
	RectifiedWavePortDuty   uint = 1
	RectifiedWavePortClk    uint = 2
	RectifiedWavePortOut    uint = 0
)

// RectifiedWave emits a rectangular pulse train: high (50.0) while the sample
// counter is inside the duty window, low (0.0) for the rest of the period.
// Period and duty cycle (percent) arrive as initial messages; duty supports
// live reconfiguration through later messages on the same port.
type RectifiedWave struct {
	*flow.Core

	counter uint
	period  uint
	duty    uint
}

const (
	rectHigh = 50.0
	rectLow  = 0.0
)

// NewRectifiedWave creates a rectangular wave generator; seed period and duty
// as initial messages before starting the component.
func NewRectifiedWave(opts ...flow.Option) *RectifiedWave {
	w := &RectifiedWave{Core: flow.NewCore(opts...), period: 1, duty: 100}
	flow.AddInput[uint](w, RectifiedWavePortPeriod, 1)
	flow.AddInput[uint](w, RectifiedWavePortDuty, 1)
	flow.AddInput[bool](w, RectifiedWavePortClk, 1)
	flow.AddOutput[float64](w, RectifiedWavePortOut)
	return w
}

// Initialize reads the seeded period and duty cycle.
func (w *RectifiedWave) Initialize() {
	if r := flow.Receive[uint](w.Input(RectifiedWavePortPeriod)); r.IsOkay() && r.Value() > 0 {
		w.period = r.Value()
	}
	if r := flow.Receive[uint](w.Input(RectifiedWavePortDuty)); r.IsOkay() {
		w.duty = r.Value()
	}
}

// Process emits the next sample, picking up duty-cycle updates first.
func (w *RectifiedWave) Process() {
	if w.Input(RectifiedWavePortDuty).HasMessage() {
		if r := flow.Receive[uint](w.Input(RectifiedWavePortDuty)); r.IsOkay() {
			w.duty = r.Value()
		}
	}

	sample := rectLow
	if float64(w.counter) < float64(w.duty)/100.0*float64(w.period) {
		sample = rectHigh
	}
	flow.Send(w.Output(RectifiedWavePortOut), sample)

	w.counter = (w.counter + 1) % w.period
}
