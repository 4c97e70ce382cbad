package lowpass

import "math"

// Alpha returns the smoothing factor of an RC low-pass stage with the given
// cutoff in Hz, updated at rate Hz:
//
//	tau = 1 / (2*pi*cutoff), te = 1 / rate, alpha = 1 / (1 + tau/te)
func Alpha(rate, cutoff float64) float64 {
	tau := 1 / (2 * math.Pi * cutoff)
	te := 1 / rate
	return 1 / (1 + tau/te)
}

// Filter is a single-pole exponential smoother over one scalar stream.
//
// It is not safe for concurrent use.
type Filter struct {
	prev        float64
	lastInput   float64
	initialized bool
}

// New returns a filter that treats its next input as the first sample.
func New() *Filter {
	return &Filter{}
}

// Filter smooths x with the smoothing factor alpha and returns the output.
//
// The first call after construction or Reset returns x unchanged. Later calls
// return alpha*x + (1-alpha)*previous, evaluated as previous +
// alpha*(x-previous) so a constant input is held exactly. alpha is expected
// in (0, 1] and is not validated.
func (f *Filter) Filter(x, alpha float64) float64 {
	f.lastInput = x

	if !f.initialized {
		f.initialized = true
		f.prev = x
		return x
	}

	f.prev += alpha * (x - f.prev)
	return f.prev
}

// Reset clears the history so the next input is treated as the first sample.
func (f *Filter) Reset() {
	f.prev = 0
	f.lastInput = 0
	f.initialized = false
}

// Value returns the last output, or 0 before the first sample.
func (f *Filter) Value() float64 { return f.prev }

// LastInput returns the raw input of the last Filter call.
func (f *Filter) LastInput() float64 { return f.lastInput }

// Initialized reports whether the filter has seen a sample since construction
// or the last Reset.
func (f *Filter) Initialized() bool { return f.initialized }
