package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func TestNewDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultPosition, c.Position)
	assert.Equal(t, float32(0), c.Yaw)
	assert.Equal(t, float32(0), c.Pitch)
	assert.Equal(t, DefaultMoveSpeed, c.MoveSpeed)
	assert.Equal(t, DefaultMouseSensitivity, c.MouseSensitivity)
}

func TestPitchClamp(t *testing.T) {
	c := New()
	c.MouseSensitivity = 1
	c.AddRotation(0, 10)
	assert.Equal(t, MaxPitch, c.Pitch)
	assert.InDelta(t, math.Pi/2-0.1, float64(c.Pitch), tol)

	c.AddRotation(0, -100)
	assert.Equal(t, MinPitch, c.Pitch)
}

func TestAddRotationScalesBySensitivity(t *testing.T) {
	c := New()
	c.AddRotation(100, 40)
	assert.InDelta(t, 100*DefaultMouseSensitivity, c.Yaw, tol)
	assert.InDelta(t, 40*DefaultMouseSensitivity, c.Pitch, tol)
}

func TestYawWraps(t *testing.T) {
	c := New()
	c.MouseSensitivity = 1
	c.AddRotation(2*math.Pi+0.5, 0)
	assert.InDelta(t, 0.5, c.Yaw, tol)

	c.Yaw = 0
	c.AddRotation(-(2*math.Pi + 0.5), 0)
	assert.InDelta(t, -0.5, c.Yaw, tol, "wrap keeps the sign of the angle")
}

func TestMoveStrafeForwardSymmetry(t *testing.T) {
	for _, yaw := range []float32{0, 0.7, -2.1, 3} {
		a := New()
		a.Yaw = yaw
		start := a.Position
		a.Move(1, 0, 0)
		strafe := a.Position.Sub(start)

		b := New()
		b.Yaw = yaw
		b.Move(0, 1, 0)
		forward := b.Position.Sub(start)

		assert.InDelta(t, DefaultMoveSpeed, strafe.Len(), tol)
		assert.InDelta(t, DefaultMoveSpeed, forward.Len(), tol)
		assert.InDelta(t, 0, strafe.Dot(forward), tol, "strafe is perpendicular to forward")
	}
}

func TestMoveDiagonalIsNormalized(t *testing.T) {
	c := New()
	start := c.Position
	c.Move(1, 1, 0)
	assert.InDelta(t, DefaultMoveSpeed, c.Position.Sub(start).Len(), tol)

	c = New()
	c.Move(0.1, 0, 0)
	assert.InDelta(t, DefaultMoveSpeed, c.Position.Sub(start).Len(), tol, "step size does not matter")
}

func TestMoveForwardIgnoresPitch(t *testing.T) {
	c := New()
	c.Pitch = 1
	c.Move(0, 1, 0)
	assert.Equal(t, DefaultPosition[1], c.Position[1])
	assertNear(t, mgl32.Vec3{0, 0, -2 + DefaultMoveSpeed}, c.Position, tol)
}

// The vertical term is added after normalization and is not scaled by MoveSpeed.
func TestMoveVerticalIndependent(t *testing.T) {
	c := New()
	c.Move(0, 0, 0.1)
	assertNear(t, mgl32.Vec3{0, 0.1, -2}, c.Position, tol)

	c = New()
	start := c.Position
	c.Move(1, 0, 1)
	d := c.Position.Sub(start)
	assert.InDelta(t, 1, d[1], tol)
	assert.InDelta(t, DefaultMoveSpeed, mgl32.Vec2{d[0], d[2]}.Len(), tol)
	assert.Greater(t, d.Len(), DefaultMoveSpeed)
}

func TestMoveZeroIsNoop(t *testing.T) {
	c := New()
	c.Move(0, 0, 0)
	assert.Equal(t, DefaultPosition, c.Position)
}

func TestViewMatrix(t *testing.T) {
	c := New()
	// yaw 0 looks down +Z, so the origin is 2 units in front (-Z in eye space).
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertNear(t, mgl32.Vec3{0, 0, -2}, p.Vec3(), tol)

	c.Yaw = math.Pi / 2
	assertNear(t, mgl32.Vec3{1, 0, 0}, c.LookDir(), tol)
	// A point one unit along the look direction lands straight ahead.
	ahead := c.Position.Add(c.LookDir())
	p = c.ViewMatrix().Mul4x1(ahead.Vec4(1))
	assertNear(t, mgl32.Vec3{0, 0, -1}, p.Vec3(), tol)
}

func TestReset(t *testing.T) {
	c := New()
	c.Move(1, 1, 1)
	c.AddRotation(50, 50)
	c.MoveSpeed = 3
	c.Reset()
	assert.Equal(t, *New(), *c)
}

// assertNear compares component-wise with an absolute tolerance.
func assertNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}
