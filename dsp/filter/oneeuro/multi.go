package oneeuro

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-smooth/dsp/core"
)

// Multi applies an independent scalar Filter to every component of T.
//
// All channels share the same Params but keep their own history. Multi is not
// safe for concurrent use.
type Multi[T any] struct {
	channels  []*Filter
	scratch   []float64
	assemble  func([]float64) T
	component func(T, int) float64
	value     T
}

// NewMulti constructs a filter over n components. assemble builds a T from n
// filtered components; the slice passed to it is reused between calls and
// must not be retained. component extracts component i of a T.
func NewMulti[T any](n int, assemble func([]float64) T, component func(T, int) float64, opts ...Option) (*Multi[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("oneeuro: component count must be > 0: %d", n)
	}
	if assemble == nil {
		return nil, errors.New("oneeuro: nil assemble function")
	}
	if component == nil {
		return nil, errors.New("oneeuro: nil component function")
	}

	p, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	m := &Multi[T]{
		channels:  make([]*Filter, n),
		scratch:   core.EnsureLen(nil, n),
		assemble:  assemble,
		component: component,
	}
	for i := range m.channels {
		m.channels[i] = &Filter{params: p, firstUpdate: true}
	}

	return m, nil
}

// Len returns the number of filtered components.
func (m *Multi[T]) Len() int { return len(m.channels) }

// Params returns the parameters shared by all channels.
func (m *Multi[T]) Params() Params { return m.channels[0].params }

// Value returns the last output, or the zero T before the first step.
func (m *Multi[T]) Value() T { return m.value }

// SetProperties validates p once and applies it to every channel.
func (m *Multi[T]) SetProperties(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	for _, ch := range m.channels {
		ch.params = p
	}
	return nil
}

// MustSetProperties is like SetProperties but panics on invalid parameters.
func (m *Multi[T]) MustSetProperties(p Params) {
	if err := m.SetProperties(p); err != nil {
		panic(err)
	}
}

// Step filters every component of v sampled dt seconds after the previous
// value. If dt is not positive the last output is returned unchanged.
func (m *Multi[T]) Step(v T, dt float64) T {
	if !(dt > 0) {
		return m.value
	}

	for i, ch := range m.channels {
		m.scratch[i] = ch.Step(m.component(v, i), dt)
	}

	m.value = m.assemble(m.scratch)
	return m.value
}

// StepDefault is Step at core.DefaultStepRate.
func (m *Multi[T]) StepDefault(v T) T {
	return m.Step(v, 1/core.DefaultStepRate)
}

// Reset clears the history of every channel.
func (m *Multi[T]) Reset() {
	for _, ch := range m.channels {
		ch.Reset()
	}
	core.Zero(m.scratch)

	var zero T
	m.value = zero
}
