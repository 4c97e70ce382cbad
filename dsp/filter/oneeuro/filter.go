package oneeuro

import (
	"math"

	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/cwbudde/algo-smooth/dsp/filter/lowpass"
)

// Filter is a scalar One Euro filter.
//
// It is not safe for concurrent use.
type Filter struct {
	params Params

	value       lowpass.Filter
	derivative  lowpass.Filter
	out         float64
	firstUpdate bool
}

// New constructs a scalar filter. Without options it uses DefaultParams.
func New(opts ...Option) (*Filter, error) {
	p, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Filter{
		params:      p,
		firstUpdate: true,
	}, nil
}

// Params returns the current parameters.
func (f *Filter) Params() Params { return f.params }

// Value returns the last output, or 0 before the first step.
func (f *Filter) Value() float64 { return f.out }

// SetProperties replaces the parameters. Invalid parameters are rejected with
// an error wrapping ErrInvalidParams and the previous parameters stay active.
// Calling it every frame with unchanged values is cheap and does not disturb
// the filter history.
func (f *Filter) SetProperties(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	f.params = p
	return nil
}

// MustSetProperties is like SetProperties but panics on invalid parameters.
func (f *Filter) MustSetProperties(p Params) {
	if err := f.SetProperties(p); err != nil {
		panic(err)
	}
}

// Step filters x sampled dt seconds after the previous sample and returns the
// smoothed value. If dt is not positive, or so small that 1/dt overflows,
// the last output is returned and no state changes.
func (f *Filter) Step(x, dt float64) float64 {
	if !(dt > 0) {
		return f.out
	}

	rate := 1 / dt
	if math.IsInf(rate, 0) {
		return f.out
	}

	dx := 0.0
	if !f.firstUpdate {
		dx = (x - f.value.LastInput()) * rate
	}
	f.firstUpdate = false

	edx := f.derivative.Filter(dx, lowpass.Alpha(rate, f.params.DerivativeCutoff))
	cutoff := f.params.MinCutoff + f.params.Beta*math.Abs(edx)

	f.out = f.value.Filter(x, lowpass.Alpha(rate, cutoff))
	return f.out
}

// StepDefault is Step at core.DefaultStepRate.
func (f *Filter) StepDefault(x float64) float64 {
	return f.Step(x, 1/core.DefaultStepRate)
}

// ProcessInPlace filters buf as a sequence of samples spaced dt seconds apart.
func (f *Filter) ProcessInPlace(buf []float64, dt float64) {
	for i, x := range buf {
		buf[i] = f.Step(x, dt)
	}
}

// Reset clears the history. The next step is treated as the first sample and
// Value returns 0 until then.
func (f *Filter) Reset() {
	f.value.Reset()
	f.derivative.Reset()
	f.out = 0
	f.firstUpdate = true
}
