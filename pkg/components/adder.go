package components

import (
	"github.com/mflow-go/mflow/pkg/flow"
)

// Adder port indices.
const (
	AdderPortIn0 uint = 0
	AdderPortIn1 uint = 1
	AdderPortOut uint = 0
)

// Adder emits, on every Process call, the sum of the most recent sample from
// each of its two inputs. It consumes the inputs in lockstep, so its n-th
// output pairs the n-th sample of both upstream streams.
type Adder struct {
	*flow.Core
}

// NewAdder creates a two-input summing component.
func NewAdder(opts ...flow.Option) *Adder {
	a := &Adder{Core: flow.NewCore(opts...)}
	flow.AddInput[float64](a, AdderPortIn0, 10)
	flow.AddInput[float64](a, AdderPortIn1, 10)
	flow.AddOutput[float64](a, AdderPortOut)
	return a
}

// Initialize is a no-op; the adder carries no configuration.
func (a *Adder) Initialize() {}

// Process receives one sample from each input and emits their sum.
func (a *Adder) Process() {
	in0 := flow.Receive[float64](a.Input(AdderPortIn0))
	if !in0.IsOkay() {
		return
	}
	in1 := flow.Receive[float64](a.Input(AdderPortIn1))
	if !in1.IsOkay() {
		return
	}
	flow.Send(a.Output(AdderPortOut), in0.Value()+in1.Value())
}
