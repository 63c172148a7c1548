package components

import (
	"fmt"
	"io"
	"os"

	"github.com/mflow-go/mflow/pkg/flow"
)

// PlotterPortIn is the Plotter's sample input.
const PlotterPortIn uint = 0

// Plotter is a sink that writes one line per received sample, suitable for
// feeding a serial plotter or plain log capture.
type Plotter struct {
	*flow.Core

	out io.Writer
}

// NewPlotter creates a plotter writing to out; nil means os.Stdout.
func NewPlotter(out io.Writer, opts ...flow.Option) *Plotter {
	if out == nil {
		out = os.Stdout
	}
	p := &Plotter{Core: flow.NewCore(opts...), out: out}
	flow.AddInput[float64](p, PlotterPortIn, 1)
	return p
}

// Initialize is a no-op; the plotter carries no configuration.
func (p *Plotter) Initialize() {}

// Process writes the next sample.
func (p *Plotter) Process() {
	r := flow.Receive[float64](p.Input(PlotterPortIn))
	if !r.IsOkay() {
		return
	}
	fmt.Fprintf(p.out, "%f\n", r.Value())
}
