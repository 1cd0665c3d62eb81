package camera

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultMoveSpeed        = float32(0.2)
	DefaultMouseSensitivity = float32(0.0025)

	// MaxPitch keeps the look vector away from the poles, where it would be parallel to world up.
	MaxPitch = float32(math.Pi/2 - 0.1)
	MinPitch = -MaxPitch

	fullTurn = float32(2 * math.Pi)
)

// DefaultPosition is where a new camera starts: two units behind the origin, looking toward +Z.
var DefaultPosition = mgl32.Vec3{0, 0, -2}

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a first-person camera. Yaw and Pitch are in radians; yaw 0 looks down +Z.
// Move and AddRotation are the only mutators used by the frame loop.
type Camera struct {
	Position         mgl32.Vec3
	Yaw              float32
	Pitch            float32
	MoveSpeed        float32
	MouseSensitivity float32
}

// New returns a camera at DefaultPosition with default speed and sensitivity.
func New() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores position, orientation, speed and sensitivity to their defaults.
func (c *Camera) Reset() {
	c.Position = DefaultPosition
	c.Yaw = 0
	c.Pitch = 0
	c.MoveSpeed = DefaultMoveSpeed
	c.MouseSensitivity = DefaultMouseSensitivity
}

// LookDir returns the unit view direction from yaw and pitch.
func (c *Camera) LookDir() mgl32.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return mgl32.Vec3{sy * cp, sp, cy * cp}
}

// ViewMatrix returns the world-to-camera transform looking from Position along LookDir with +Y up.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.LookDir()), worldUp)
}

// Move translates the camera. x strafes along the right vector and y moves along the yaw-only
// forward vector, so walking stays horizontal whatever the pitch. The horizontal part is
// normalized before scaling by MoveSpeed so diagonals are no faster than a single axis.
// z is added to the height afterwards, unscaled and outside the normalization.
func (c *Camera) Move(x, y, z float32) {
	sy, cy := math32.Sincos(c.Yaw)
	forward := mgl32.Vec3{sy, 0, cy}
	right := mgl32.Vec3{-forward[2], 0, forward[0]}

	offset := right.Mul(x).Add(forward.Mul(y))
	if l := offset.Len(); l > 0 {
		offset = offset.Mul(c.MoveSpeed / l)
	}
	offset[1] += z

	c.Position = c.Position.Add(offset)
}

// AddRotation applies a pointer delta. Both components are scaled by MouseSensitivity; yaw wraps
// at a full turn (keeping the sign of the dividend) and pitch is clamped to [MinPitch, MaxPitch].
func (c *Camera) AddRotation(dx, dy float32) {
	dx *= c.MouseSensitivity
	dy *= c.MouseSensitivity

	c.Yaw = math32.Mod(c.Yaw+dx, fullTurn)
	c.Pitch = math32.Max(math32.Min(c.Pitch+dy, MaxPitch), MinPitch)
}
