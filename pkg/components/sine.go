// Package components provides ready-made signal components built entirely on
// the public port contract of pkg/flow: periodic generators, filters and
// sinks for best-effort telemetry pipelines.
package components

import (
	"math"
	"time"

	"github.com/mflow-go/mflow/pkg/flow"
)

// SineWave port indices.
const (
	SineWavePortAmplitude uint = 0
	SineWavePortPeriod    uint = 1
	SineWavePortPhase     uint = 2
	SineWavePortOut       uint = 0
)

// SineWave emits amplitude·sin(2π·tick/period) on every Process call, with a
// tick counter starting at zero. Amplitude and period arrive as initial
// messages; an optional phase message offsets the tick counter.
type SineWave struct {
	*flow.Core

	// Interval paces ticks on the component's clock; zero disables pacing
	// and lets queue backpressure set the rate. Set before starting.
	Interval time.Duration

	amplitude uint
	period    uint
	tick      uint
}

// NewSineWave creates a sine generator with unconfigured amplitude and
// period; seed both as initial messages before starting the component.
func NewSineWave(opts ...flow.Option) *SineWave {
	s := &SineWave{Core: flow.NewCore(opts...), amplitude: 1, period: 1}
	flow.AddInput[uint](s, SineWavePortAmplitude, 1)
	flow.AddInput[uint](s, SineWavePortPeriod, 1)
	flow.AddInput[uint](s, SineWavePortPhase, 1)
	flow.AddOutput[float64](s, SineWavePortOut)
	return s
}

// Initialize reads the seeded period and amplitude, and the phase offset when
// one was provided.
func (s *SineWave) Initialize() {
	if r := flow.Receive[uint](s.Input(SineWavePortPeriod)); r.IsOkay() && r.Value() > 0 {
		s.period = r.Value()
	}
	if r := flow.Receive[uint](s.Input(SineWavePortAmplitude)); r.IsOkay() {
		s.amplitude = r.Value()
	}
	if s.Input(SineWavePortPhase).HasMessage() {
		if r := flow.Receive[uint](s.Input(SineWavePortPhase)); r.IsOkay() {
			s.tick = r.Value()
		}
	}
}

// Process emits the next sample.
func (s *SineWave) Process() {
	sample := float64(s.amplitude) * math.Sin(2*math.Pi*float64(s.tick)/float64(s.period))
	s.tick++

	flow.Send(s.Output(SineWavePortOut), sample)

	if s.Interval > 0 {
		s.Clock().Sleep(s.Interval)
	}
}
