package oneeuro

import (
	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/go-gl/mathgl/mgl32"
)

// NewVec2 returns a Multi filter over mgl32.Vec2.
func NewVec2(opts ...Option) (*Multi[mgl32.Vec2], error) {
	return NewMulti(2,
		func(c []float64) mgl32.Vec2 { return mgl32.Vec2{float32(c[0]), float32(c[1])} },
		func(v mgl32.Vec2, i int) float64 { return float64(v[i]) },
		opts...)
}

// NewVec3 returns a Multi filter over mgl32.Vec3.
func NewVec3(opts ...Option) (*Multi[mgl32.Vec3], error) {
	return NewMulti(3,
		func(c []float64) mgl32.Vec3 { return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])} },
		func(v mgl32.Vec3, i int) float64 { return float64(v[i]) },
		opts...)
}

// NewVec4 returns a Multi filter over mgl32.Vec4.
func NewVec4(opts ...Option) (*Multi[mgl32.Vec4], error) {
	return NewMulti(4,
		func(c []float64) mgl32.Vec4 {
			return mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		},
		func(v mgl32.Vec4, i int) float64 { return float64(v[i]) },
		opts...)
}

// QuatFilter smooths unit quaternions component-wise and renormalizes the
// result.
//
// Inputs are flipped into the hemisphere of the previous output first, since
// q and -q describe the same rotation but would otherwise drag the filter
// through the origin.
type QuatFilter struct {
	*Multi[mgl32.Quat]
	primed bool
}

// NewQuat returns a quaternion filter. Components are ordered X, Y, Z, W.
func NewQuat(opts ...Option) (*QuatFilter, error) {
	m, err := NewMulti(4, assembleQuat, quatComponent, opts...)
	if err != nil {
		return nil, err
	}
	return &QuatFilter{Multi: m}, nil
}

// Step filters q sampled dt seconds after the previous rotation.
func (f *QuatFilter) Step(q mgl32.Quat, dt float64) mgl32.Quat {
	if !(dt > 0) {
		return f.Value()
	}

	if f.primed && q.Dot(f.Value()) < 0 {
		q = q.Scale(-1)
	}
	f.primed = true

	return f.Multi.Step(q, dt)
}

// StepDefault is Step at core.DefaultStepRate.
func (f *QuatFilter) StepDefault(q mgl32.Quat) mgl32.Quat {
	return f.Step(q, 1/core.DefaultStepRate)
}

// Reset clears the history of every channel.
func (f *QuatFilter) Reset() {
	f.Multi.Reset()
	f.primed = false
}

// quatZeroEps is the norm below which a filtered quaternion is treated as
// degenerate.
const quatZeroEps = 1e-12

func assembleQuat(c []float64) mgl32.Quat {
	q := mgl32.Quat{
		W: float32(c[3]),
		V: mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])},
	}
	if core.NearlyEqual(float64(q.Len()), 0, quatZeroEps) {
		return mgl32.QuatIdent()
	}
	return q.Normalize()
}

func quatComponent(q mgl32.Quat, i int) float64 {
	if i == 3 {
		return float64(q.W)
	}
	return float64(q.V[i])
}
