package core

// DefaultStepRate is the update rate in Hz assumed when a caller does not
// supply a frame time.
const DefaultStepRate = 60.0

// StepConfig defines the frame clock shared by smoothing processors.
type StepConfig struct {
	StepRate float64
	Seed     int64
}

// StepOption mutates a StepConfig.
type StepOption func(*StepConfig)

// DefaultStepConfig returns the defaults used for interactive frame updates.
func DefaultStepConfig() StepConfig {
	return StepConfig{
		StepRate: DefaultStepRate,
		Seed:     1,
	}
}

// WithStepRate sets the update rate in Hz. Non-positive or non-finite values
// are ignored.
func WithStepRate(rate float64) StepOption {
	return func(cfg *StepConfig) {
		if IsFinite(rate) && rate > 0 {
			cfg.StepRate = rate
		}
	}
}

// WithSeed sets the seed for deterministic random sources.
func WithSeed(seed int64) StepOption {
	return func(cfg *StepConfig) {
		cfg.Seed = seed
	}
}

// ApplyStepOptions applies zero or more options to the default config.
func ApplyStepOptions(opts ...StepOption) StepConfig {
	cfg := DefaultStepConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// DeltaTime returns the frame time in seconds for cfg.
func (c StepConfig) DeltaTime() float64 {
	if c.StepRate <= 0 {
		return 1 / DefaultStepRate
	}
	return 1 / c.StepRate
}
