// Package tracking measures how closely a smoothed trajectory follows its
// reference: lag, residual jitter and high-band noise suppression.
package tracking

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/cwbudde/algo-smooth/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const defaultHighBandDivisor = 6.0

// ErrEmptyInput is returned when an input signal has no samples.
var ErrEmptyInput = errors.New("tracking: empty input")

// Config holds measurement parameters.
type Config struct {
	// StepRate is the sample rate of the trajectories in Hz.
	StepRate float64
	// MaxLag bounds the lag search in samples. Zero selects len/4.
	MaxLag int
	// HighBandHz is the lower edge of the band treated as jitter. Zero
	// selects StepRate/6.
	HighBandHz float64
}

// Result holds tracking measurements.
type Result struct {
	// LagSamples is the delay of the filtered signal behind the reference.
	LagSamples int
	// Lag is LagSamples in seconds.
	Lag float64
	// ErrorRMS is the RMS difference without lag compensation.
	ErrorRMS float64
	// JitterRMS is the RMS difference after shifting by LagSamples.
	JitterRMS float64
}

func normalizeConfig(cfg Config, n int) Config {
	if !core.IsFinite(cfg.StepRate) || cfg.StepRate <= 0 {
		cfg.StepRate = core.DefaultStepRate
	}
	if cfg.MaxLag <= 0 {
		cfg.MaxLag = n / 4
	}
	cfg.MaxLag = int(core.Clamp(float64(cfg.MaxLag), 1, float64(n-1)))
	if !core.IsFinite(cfg.HighBandHz) || cfg.HighBandHz <= 0 {
		cfg.HighBandHz = cfg.StepRate / defaultHighBandDivisor
	}
	return cfg
}

// Analyze compares filtered against the noise-free reference it should
// follow. Both signals must have the same non-zero length.
func Analyze(reference, filtered []float64, cfg Config) (Result, error) {
	if len(reference) == 0 || len(filtered) == 0 {
		return Result{}, ErrEmptyInput
	}
	if len(reference) != len(filtered) {
		return Result{}, fmt.Errorf("tracking: length mismatch: %d vs %d", len(reference), len(filtered))
	}

	n := len(reference)
	if n == 1 {
		e := math.Abs(filtered[0] - reference[0])
		return Result{ErrorRMS: e, JitterRMS: e}, nil
	}
	cfg = normalizeConfig(cfg, n)

	corr, err := crossCorrelate(filtered, reference)
	if err != nil {
		return Result{}, err
	}

	// Energies of the overlapping parts for every shift k:
	// filtered[k:] against reference[:n-k].
	tailF := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		tailF[i] = tailF[i+1] + filtered[i]*filtered[i]
	}
	headR := make([]float64, n+1)
	for i := range n {
		headR[i+1] = headR[i] + reference[i]*reference[i]
	}

	mseAt := func(k int) float64 {
		overlap := n - k
		sse := tailF[k] + headR[overlap] - 2*corr[k]
		return math.Max(sse, 0) / float64(overlap)
	}

	bestLag := 0
	bestMSE := mseAt(0)
	for k := 1; k <= cfg.MaxLag; k++ {
		if mse := mseAt(k); mse < bestMSE-1e-12*math.Max(1, bestMSE) {
			bestMSE = mse
			bestLag = k
		}
	}

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = filtered[i] - reference[i]
	}

	return Result{
		LagSamples: bestLag,
		Lag:        float64(bestLag) / cfg.StepRate,
		ErrorRMS:   core.RMS(diff),
		JitterRMS:  math.Sqrt(bestMSE),
	}, nil
}

// NoiseReduction returns how many dB of power above cfg.HighBandHz the filter
// removed from raw. Both signals are Hann windowed before the transform.
func NoiseReduction(raw, filtered []float64, cfg Config) (float64, error) {
	if len(raw) == 0 || len(filtered) == 0 {
		return 0, ErrEmptyInput
	}
	if len(raw) != len(filtered) {
		return 0, fmt.Errorf("tracking: length mismatch: %d vs %d", len(raw), len(filtered))
	}
	cfg = normalizeConfig(cfg, max(len(raw), 2))

	rawPower, err := HighBandPower(raw, cfg)
	if err != nil {
		return 0, err
	}
	filteredPower, err := HighBandPower(filtered, cfg)
	if err != nil {
		return 0, err
	}

	if filteredPower == 0 {
		if rawPower == 0 {
			return 0, nil
		}
		return math.Inf(1), nil
	}

	return core.LinearPowerToDB(rawPower / filteredPower), nil
}

// HighBandPower returns the summed spectral power of the mean-removed,
// Hann windowed signal at and above cfg.HighBandHz.
func HighBandPower(data []float64, cfg Config) (float64, error) {
	if len(data) == 0 {
		return 0, ErrEmptyInput
	}
	cfg = normalizeConfig(cfg, max(len(data), 2))

	n := len(data)
	fftSize := nextPowerOf2(n)

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	buf := make([]float64, n)
	for i, v := range data {
		buf[i] = v - mean
	}
	window.Apply(window.TypeHann, buf)

	spec, err := forward(buf, fftSize)
	if err != nil {
		return 0, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(spec[i])
		im[i] = imag(spec[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	binHz := cfg.StepRate / float64(fftSize)
	first := int(math.Ceil(cfg.HighBandHz / binHz))

	total := 0.0
	for k := max(first, 1); k < bins; k++ {
		total += power[k]
	}
	return total, nil
}

// crossCorrelate returns r[k] = sum_i a[i+k]*b[i] for k in [0, len(a)).
func crossCorrelate(a, b []float64) ([]float64, error) {
	n := len(a)
	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to create FFT plan: %w", err)
	}

	aFreq, err := forwardWith(plan, a, fftSize)
	if err != nil {
		return nil, err
	}
	bFreq, err := forwardWith(plan, b, fftSize)
	if err != nil {
		return nil, err
	}

	prod := make([]complex128, fftSize)
	for i := range prod {
		prod[i] = aFreq[i] * complex(real(bFreq[i]), -imag(bFreq[i]))
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, prod); err != nil {
		return nil, fmt.Errorf("tracking: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for k := range out {
		out[k] = real(timeDomain[k])
	}
	return out, nil
}

func forward(data []float64, fftSize int) ([]complex128, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to create FFT plan: %w", err)
	}
	return forwardWith(plan, data, fftSize)
}

func forwardWith(plan *algofft.Plan[complex128], data []float64, fftSize int) ([]complex128, error) {
	in := make([]complex128, fftSize)
	for i, v := range data {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("tracking: forward FFT failed: %w", err)
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
