package transform

import (
	"testing"

	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func pose(x float32, angle float32) Pose {
	return Pose{
		Position: mgl32.Vec3{x, 0, 0},
		Rotation: mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func TestNewDefaults(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	assert.True(t, f.Enabled(ChannelPosition))
	assert.True(t, f.Enabled(ChannelRotation))
	assert.False(t, f.Enabled(ChannelScale))
	assert.Equal(t, IdentityPose(), f.Pose())

	p, err := f.Params(ChannelRotation)
	require.NoError(t, err)
	assert.Equal(t, oneeuro.DefaultParams(), p)
}

func TestNewValidation(t *testing.T) {
	_, err := New(WithPosition(oneeuro.Params{MinCutoff: -1, DerivativeCutoff: 1}))
	assert.ErrorIs(t, err, oneeuro.ErrInvalidParams)

	_, err = New(WithScale(oneeuro.Params{MinCutoff: 1, Beta: -2, DerivativeCutoff: 1}))
	assert.ErrorIs(t, err, oneeuro.ErrInvalidParams)
}

func TestFirstStepPassesThrough(t *testing.T) {
	f, err := New(WithScale(oneeuro.DefaultParams()))
	require.NoError(t, err)

	src := pose(2, 0.4)
	src.Scale = mgl32.Vec3{2, 2, 2}

	out := f.Step(src, frame)
	assert.Equal(t, src.Position, out.Position)
	assert.True(t, out.Rotation.ApproxEqualThreshold(src.Rotation, 1e-6))
	assert.Equal(t, src.Scale, out.Scale)
}

func TestStepSmoothsPosition(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	f.Step(pose(0, 0), frame)
	out := f.Step(pose(1, 0), frame)

	assert.Greater(t, out.Position.X(), float32(0))
	assert.Less(t, out.Position.X(), float32(1))
}

func TestDisabledChannelsPassThrough(t *testing.T) {
	f, err := New(WithoutPosition(), WithoutRotation())
	require.NoError(t, err)

	f.Step(pose(0, 0), frame)
	src := pose(5, 1)
	src.Scale = mgl32.Vec3{3, 3, 3}

	assert.Equal(t, src, f.Step(src, frame))
}

func TestHoldOnNonPositiveDelta(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	f.Step(pose(0, 0), frame)
	held := f.Step(pose(1, 0.5), frame)

	assert.Equal(t, held, f.Step(pose(10, 2), 0))
	assert.Equal(t, held, f.Step(pose(10, 2), -frame))
	assert.Equal(t, held, f.Pose())
}

func TestTeleport(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	for i := range 30 {
		f.StepDefault(pose(float32(i)*0.1, 0))
	}

	dst := pose(100, 1.5)
	f.Teleport(dst)
	assert.Equal(t, dst.Position, f.Pose().Position)

	// No lag toward the old trajectory after the jump.
	out := f.Step(dst, frame)
	assert.Equal(t, dst.Position, out.Position)
	assert.True(t, out.Rotation.ApproxEqualThreshold(dst.Rotation, 1e-5))
}

func TestSetPropertiesAndEnabled(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	p := oneeuro.Params{MinCutoff: 3, Beta: 1, DerivativeCutoff: 1}
	require.NoError(t, f.SetProperties(ChannelScale, p))
	got, err := f.Params(ChannelScale)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	assert.ErrorIs(t, f.SetProperties(ChannelPosition, oneeuro.Params{Beta: -1}), oneeuro.ErrInvalidParams)
	got, err = f.Params(ChannelPosition)
	require.NoError(t, err)
	assert.Equal(t, oneeuro.DefaultParams(), got)

	require.NoError(t, f.SetEnabled(ChannelScale, true))
	assert.True(t, f.Enabled(ChannelScale))

	assert.Error(t, f.SetProperties(Channel(7), p))
	assert.Error(t, f.SetEnabled(Channel(7), true))
	assert.False(t, f.Enabled(Channel(7)))
	_, err = f.Params(Channel(7))
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	f.Step(pose(1, 0), frame)
	f.Step(pose(2, 0), frame)
	f.Reset()
	assert.Equal(t, IdentityPose(), f.Pose())

	src := pose(-4, 0.2)
	assert.Equal(t, src.Position, f.Step(src, frame).Position)
}

func TestChannelString(t *testing.T) {
	assert.Equal(t, "position", ChannelPosition.String())
	assert.Equal(t, "rotation", ChannelRotation.String())
	assert.Equal(t, "scale", ChannelScale.String())
	assert.Equal(t, "unknown", Channel(9).String())
}
