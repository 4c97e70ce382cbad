// Package transform smooths the pose of a tracked object frame by frame with
// One Euro filters on its position, rotation and scale.
package transform

import (
	"fmt"

	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the position, rotation and scale of an object.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityPose returns a pose at the origin with no rotation and unit scale.
func IdentityPose() Pose {
	return Pose{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("pos=%v rot=%v scale=%v", p.Position, p.Rotation, p.Scale)
}

// Channel names one filtered component of a pose.
type Channel int

const (
	// ChannelPosition is the translation.
	ChannelPosition Channel = iota
	// ChannelRotation is the orientation quaternion.
	ChannelRotation
	// ChannelScale is the per-axis scale.
	ChannelScale
)

func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	default:
		return "unknown"
	}
}

type channelConfig struct {
	enabled bool
	params  oneeuro.Params
}

type config struct {
	position channelConfig
	rotation channelConfig
	scale    channelConfig
}

func defaultConfig() config {
	return config{
		position: channelConfig{enabled: true, params: oneeuro.DefaultParams()},
		rotation: channelConfig{enabled: true, params: oneeuro.DefaultParams()},
		scale:    channelConfig{params: oneeuro.DefaultParams()},
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

func withChannel(dst *channelConfig, p oneeuro.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dst.enabled = true
	dst.params = p
	return nil
}

// WithPosition enables position filtering with p.
func WithPosition(p oneeuro.Params) Option {
	return func(cfg *config) error { return withChannel(&cfg.position, p) }
}

// WithRotation enables rotation filtering with p.
func WithRotation(p oneeuro.Params) Option {
	return func(cfg *config) error { return withChannel(&cfg.rotation, p) }
}

// WithScale enables scale filtering with p. Scale is not filtered by default.
func WithScale(p oneeuro.Params) Option {
	return func(cfg *config) error { return withChannel(&cfg.scale, p) }
}

// WithoutPosition passes the position through unfiltered.
func WithoutPosition() Option {
	return func(cfg *config) error {
		cfg.position.enabled = false
		return nil
	}
}

// WithoutRotation passes the rotation through unfiltered.
func WithoutRotation() Option {
	return func(cfg *config) error {
		cfg.rotation.enabled = false
		return nil
	}
}

// Filtered drives per-frame smoothing of a pose. Disabled channels pass the
// source value through.
//
// It is not safe for concurrent use.
type Filtered struct {
	cfg config

	position *oneeuro.Multi[mgl32.Vec3]
	rotation *oneeuro.QuatFilter
	scale    *oneeuro.Multi[mgl32.Vec3]

	pose Pose
}

// New constructs a pose smoother. By default position and rotation are
// filtered with oneeuro.DefaultParams and scale passes through.
func New(opts ...Option) (*Filtered, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	position, err := oneeuro.NewVec3(oneeuro.WithParams(cfg.position.params))
	if err != nil {
		return nil, err
	}
	rotation, err := oneeuro.NewQuat(oneeuro.WithParams(cfg.rotation.params))
	if err != nil {
		return nil, err
	}
	scale, err := oneeuro.NewVec3(oneeuro.WithParams(cfg.scale.params))
	if err != nil {
		return nil, err
	}

	return &Filtered{
		cfg:      cfg,
		position: position,
		rotation: rotation,
		scale:    scale,
		pose:     IdentityPose(),
	}, nil
}

// Pose returns the last smoothed pose, or the identity pose before the first
// step.
func (f *Filtered) Pose() Pose { return f.pose }

// Enabled reports whether ch is filtered.
func (f *Filtered) Enabled(ch Channel) bool {
	c, err := f.channel(ch)
	if err != nil {
		return false
	}
	return c.enabled
}

// Params returns the parameters of ch.
func (f *Filtered) Params(ch Channel) (oneeuro.Params, error) {
	c, err := f.channel(ch)
	if err != nil {
		return oneeuro.Params{}, err
	}
	return c.params, nil
}

// SetProperties replaces the parameters of ch. The history of the channel is
// kept.
func (f *Filtered) SetProperties(ch Channel, p oneeuro.Params) error {
	c, err := f.channel(ch)
	if err != nil {
		return err
	}

	switch ch {
	case ChannelPosition:
		err = f.position.SetProperties(p)
	case ChannelRotation:
		err = f.rotation.SetProperties(p)
	case ChannelScale:
		err = f.scale.SetProperties(p)
	}
	if err != nil {
		return err
	}

	c.params = p
	return nil
}

// SetEnabled turns filtering of ch on or off. Turning a channel on resets its
// filter so it starts from the next source value.
func (f *Filtered) SetEnabled(ch Channel, enabled bool) error {
	c, err := f.channel(ch)
	if err != nil {
		return err
	}
	if enabled && !c.enabled {
		f.resetChannel(ch)
	}
	c.enabled = enabled
	return nil
}

// Step smooths source sampled dt seconds after the previous frame. If dt is
// not positive the last pose is returned unchanged.
func (f *Filtered) Step(source Pose, dt float64) Pose {
	if !(dt > 0) {
		return f.pose
	}

	out := source
	if f.cfg.position.enabled {
		out.Position = f.position.Step(source.Position, dt)
	}
	if f.cfg.rotation.enabled {
		out.Rotation = f.rotation.Step(source.Rotation, dt)
	}
	if f.cfg.scale.enabled {
		out.Scale = f.scale.Step(source.Scale, dt)
	}

	f.pose = out
	return out
}

// StepDefault is Step at core.DefaultStepRate.
func (f *Filtered) StepDefault(source Pose) Pose {
	return f.Step(source, 1/core.DefaultStepRate)
}

// Teleport discards the history and places the smoother at p without lag.
func (f *Filtered) Teleport(p Pose) {
	f.Reset()
	f.StepDefault(p)
}

// Reset discards the history of every channel. The next step is passed
// through unchanged.
func (f *Filtered) Reset() {
	f.position.Reset()
	f.rotation.Reset()
	f.scale.Reset()
	f.pose = IdentityPose()
}

func (f *Filtered) resetChannel(ch Channel) {
	switch ch {
	case ChannelPosition:
		f.position.Reset()
	case ChannelRotation:
		f.rotation.Reset()
	case ChannelScale:
		f.scale.Reset()
	}
}

func (f *Filtered) channel(ch Channel) (*channelConfig, error) {
	switch ch {
	case ChannelPosition:
		return &f.cfg.position, nil
	case ChannelRotation:
		return &f.cfg.rotation, nil
	case ChannelScale:
		return &f.cfg.scale, nil
	default:
		return nil, fmt.Errorf("transform: unknown channel: %d", ch)
	}
}
