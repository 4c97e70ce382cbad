package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Generator creates deterministic per-frame signals from a shared step
// configuration.
type Generator struct {
	cfg core.StepConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.StepOption) *Generator {
	return &Generator{cfg: core.ApplyStepOptions(opts...)}
}

// Config returns the generator step configuration.
func (g *Generator) Config() core.StepConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.cfg.Seed }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.cfg.Seed = seed }

// Ramp generates start + slope*t where slope is in units per second.
func (g *Generator) Ramp(start, slope float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ramp samples must be > 0: %d", samples)
	}
	dt := g.cfg.DeltaTime()
	out := make([]float64, samples)
	for i := range out {
		out[i] = start + slope*dt*float64(i)
	}
	return out, nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz * g.cfg.DeltaTime()
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.cfg.Seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// AddNoise returns data with deterministic white noise of the given amplitude
// added.
func (g *Generator) AddNoise(data []float64, amplitude float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, errors.New("noise input must not be empty")
	}
	noise, err := g.WhiteNoise(amplitude, len(data))
	if err != nil {
		return nil, err
	}
	for i, v := range data {
		noise[i] += v
	}
	return noise, nil
}

// FrameTimes generates frame durations around the configured step time,
// varying uniformly by up to jitter (a fraction of the step time, in [0, 1)).
func (g *Generator) FrameTimes(jitter float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("frame samples must be > 0: %d", samples)
	}
	if jitter < 0 || jitter >= 1 {
		return nil, fmt.Errorf("frame jitter must be in [0, 1): %f", jitter)
	}
	dt := g.cfg.DeltaTime()
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.cfg.Seed + 1))
	for i := range out {
		out[i] = dt * (1 + jitter*(rng.Float64()*2-1))
	}
	return out, nil
}

// Segment is one eased move of a motion trajectory.
type Segment struct {
	// To is the value reached at the end of the segment.
	To float64
	// Duration is the move time in seconds. Must be > 0.
	Duration float64
	// Hold is the rest time in seconds after reaching To.
	Hold float64
	// Ease shapes the move; nil uses ease.InOutQuad.
	Ease ease.TweenFunc
}

// Motion generates a point-to-point trajectory starting at start and running
// through segments in order. The first sample is start and the last value is
// held once all segments are done.
func (g *Generator) Motion(start float64, segments []Segment, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("motion samples must be > 0: %d", samples)
	}
	for i, s := range segments {
		if !core.IsFinite(s.Duration) || s.Duration <= 0 {
			return nil, fmt.Errorf("motion segment %d duration must be > 0: %f", i, s.Duration)
		}
		if s.Hold < 0 {
			return nil, fmt.Errorf("motion segment %d hold must be >= 0: %f", i, s.Hold)
		}
	}

	dt := float32(g.cfg.DeltaTime())
	out := make([]float64, samples)

	cur := start
	seg := 0
	var tween *gween.Tween
	hold := 0.0

	for i := range out {
		out[i] = cur

		if tween == nil && hold <= 0 && seg < len(segments) {
			s := segments[seg]
			fn := s.Ease
			if fn == nil {
				fn = ease.InOutQuad
			}
			tween = gween.New(float32(cur), float32(s.To), float32(s.Duration), fn)
		}

		switch {
		case tween != nil:
			v, done := tween.Update(dt)
			cur = float64(v)
			if done {
				cur = segments[seg].To
				hold = segments[seg].Hold
				tween = nil
				seg++
			}
		case hold > 0:
			hold -= float64(dt)
		}
	}

	return out, nil
}
