package oneeuro

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-smooth/dsp/core"
)

const (
	defaultMinCutoff        = 1.0
	defaultBeta             = 0.0
	defaultDerivativeCutoff = 1.0
)

// ErrInvalidParams is wrapped by every parameter validation error.
var ErrInvalidParams = errors.New("oneeuro: invalid parameters")

// Params is the tuning of a One Euro filter. All fields must be finite and
// non-negative.
type Params struct {
	// MinCutoff is the cutoff frequency in Hz applied to a resting signal.
	MinCutoff float64 `toml:"min_cutoff" yaml:"min_cutoff"`
	// Beta scales how much the signal speed raises the cutoff.
	Beta float64 `toml:"beta" yaml:"beta"`
	// DerivativeCutoff is the cutoff frequency in Hz of the speed estimate.
	DerivativeCutoff float64 `toml:"derivative_cutoff" yaml:"derivative_cutoff"`
}

// DefaultParams returns {MinCutoff: 1, Beta: 0, DerivativeCutoff: 1}.
func DefaultParams() Params {
	return Params{
		MinCutoff:        defaultMinCutoff,
		Beta:             defaultBeta,
		DerivativeCutoff: defaultDerivativeCutoff,
	}
}

// Validate reports the first field that is negative or not finite.
func (p Params) Validate() error {
	if err := validateNonNegative(p.MinCutoff, "min cutoff"); err != nil {
		return err
	}
	if err := validateNonNegative(p.Beta, "beta"); err != nil {
		return err
	}
	return validateNonNegative(p.DerivativeCutoff, "derivative cutoff")
}

func (p Params) String() string {
	return fmt.Sprintf("min_cutoff=%g beta=%g derivative_cutoff=%g", p.MinCutoff, p.Beta, p.DerivativeCutoff)
}

func validateNonNegative(v float64, name string) error {
	if !core.IsFinite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be >= 0 and finite: %g", ErrInvalidParams, name, v)
	}
	return nil
}

// Option mutates constructor parameters.
type Option func(*Params) error

// WithParams replaces all parameters.
func WithParams(p Params) Option {
	return func(dst *Params) error {
		if err := p.Validate(); err != nil {
			return err
		}
		*dst = p
		return nil
	}
}

// WithMinCutoff sets the resting cutoff in Hz. Must be finite and >= 0.
func WithMinCutoff(hz float64) Option {
	return func(p *Params) error {
		if err := validateNonNegative(hz, "min cutoff"); err != nil {
			return err
		}
		p.MinCutoff = hz
		return nil
	}
}

// WithBeta sets the speed coefficient. Must be finite and >= 0.
func WithBeta(beta float64) Option {
	return func(p *Params) error {
		if err := validateNonNegative(beta, "beta"); err != nil {
			return err
		}
		p.Beta = beta
		return nil
	}
}

// WithDerivativeCutoff sets the speed estimate cutoff in Hz. Must be finite
// and >= 0.
func WithDerivativeCutoff(hz float64) Option {
	return func(p *Params) error {
		if err := validateNonNegative(hz, "derivative cutoff"); err != nil {
			return err
		}
		p.DerivativeCutoff = hz
		return nil
	}
}

func applyOptions(opts []Option) (Params, error) {
	p := DefaultParams()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&p); err != nil {
			return Params{}, err
		}
	}
	return p, nil
}
