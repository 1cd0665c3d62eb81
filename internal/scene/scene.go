package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"trispin/internal/camera"
	"trispin/internal/volume"
)

const (
	DefaultFovY = float32(1.3) // radians
	DefaultNear = float32(1.0)
	DefaultFar  = float32(40.0)
)

// Projection holds the perspective parameters. FovY is the vertical field of view in radians;
// Aspect is width/height and is refreshed from the window each frame.
type Projection struct {
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultProjection returns the demo's perspective: fov 1.3 rad, near 1, far 40, square aspect.
func DefaultProjection() Projection {
	return Projection{FovY: DefaultFovY, Aspect: 1, Near: DefaultNear, Far: DefaultFar}
}

// Matrix returns the perspective matrix. A non-positive aspect is treated as 1.
func (p Projection) Matrix() mgl32.Mat4 {
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(p.FovY, aspect, p.Near, p.Far)
}

// Scene owns the volumes and the camera for one session. Volumes are fixed after setup;
// their order is the draw and aggregation order.
type Scene struct {
	Volumes    []*volume.Volume
	Camera     *camera.Camera
	Projection Projection
}

// New returns an empty scene with a default camera and projection.
func New() *Scene {
	return &Scene{
		Camera:     camera.New(),
		Projection: DefaultProjection(),
	}
}

// Add appends volumes during setup.
func (s *Scene) Add(vols ...*volume.Volume) {
	s.Volumes = append(s.Volumes, vols...)
}

// Update advances spin animation to the given total elapsed time in seconds.
func (s *Scene) Update(elapsed float32) {
	for _, v := range s.Volumes {
		v.Animate(elapsed)
	}
}

// Frame aggregates the scene for this frame. It runs unconditionally every frame; there is no dirty tracking.
func (s *Scene) Frame() *Frame {
	return Aggregate(s.Volumes, s.Camera, s.Projection)
}

// Meshes returns the file-loaded volumes, in scene order.
func (s *Scene) Meshes() []*volume.Volume {
	var out []*volume.Volume
	for _, v := range s.Volumes {
		if v.Kind == volume.KindMesh {
			out = append(out, v)
		}
	}
	return out
}
