package volume

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tags which geometry source a Volume was built from. The set is closed:
// procedural pyramid, textured pyramid, and file-loaded mesh.
type Kind int

const (
	KindPyramid Kind = iota
	KindTexPyramid
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindPyramid:
		return "pyramid"
	case KindTexPyramid:
		return "texpyramid"
	case KindMesh:
		return "mesh"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrIndexOutOfRange = errors.New("volume: index out of range")
	ErrIndexCount      = errors.New("volume: index count is not a multiple of 3")
	ErrAttributeCount  = errors.New("volume: attribute count does not match vertex count")
)

// Volume is a renderable object: geometry, per-vertex attributes and a local transform.
// Position, Rotation (radians per axis) and Scale define the local-to-world transform.
// The three matrices are recomputed every frame by the scene aggregator and are not persisted state.
type Volume struct {
	Kind Kind
	Name string

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	// Spin is the rotation rate in radians per second applied by Animate. Zero = static.
	Spin mgl32.Vec3

	Textured bool
	Texture  string // texture name; resolved to a GPU handle by the render layer
	// Source is the file the geometry was loaded from; empty for procedural volumes.
	Source string

	vertices  []mgl32.Vec3
	indices   []int
	colors    []mgl32.Vec3
	texCoords []mgl32.Vec2
	revision  uint64

	ModelMatrix               mgl32.Mat4
	ViewProjectionMatrix      mgl32.Mat4
	ModelViewProjectionMatrix mgl32.Mat4
}

func newVolume(kind Kind, name string) *Volume {
	return &Volume{
		Kind:                      kind,
		Name:                      name,
		Scale:                     mgl32.Vec3{1, 1, 1},
		ModelMatrix:               mgl32.Ident4(),
		ViewProjectionMatrix:      mgl32.Ident4(),
		ModelViewProjectionMatrix: mgl32.Ident4(),
	}
}

// NewMesh returns a file-loaded volume over the given arrays. The slices are owned by the volume afterwards.
func NewMesh(name string, vertices []mgl32.Vec3, indices []int, colors []mgl32.Vec3, texCoords []mgl32.Vec2) *Volume {
	v := newVolume(KindMesh, name)
	v.vertices = vertices
	v.indices = indices
	v.colors = colors
	v.texCoords = texCoords
	return v
}

func (v *Volume) VertexCount() int { return len(v.vertices) }

// Vertices returns the object-space vertex positions. Callers must not modify the slice.
func (v *Volume) Vertices() []mgl32.Vec3 { return v.vertices }

func (v *Volume) IndexCount() int { return len(v.indices) }

// Indices returns a new slice with offset added to every index. The aggregator passes the running
// sum of all prior volumes' vertex counts so several volumes can share one index buffer.
func (v *Volume) Indices(offset int) []int {
	out := make([]int, len(v.indices))
	for i, idx := range v.indices {
		out[i] = idx + offset
	}
	return out
}

func (v *Volume) ColorCount() int { return len(v.colors) }

// Colors returns one RGB triple per vertex. Callers must not modify the slice.
func (v *Volume) Colors() []mgl32.Vec3 { return v.colors }

// TextureCoords returns one UV pair per vertex. Untextured procedural volumes return zero UVs
// so attribute buffers stay parallel to the vertex buffer.
func (v *Volume) TextureCoords() []mgl32.Vec2 { return v.texCoords }

// ComputeModelMatrix composes scale, rotate X, rotate Y, rotate Z and translate, in that order of
// application, stores the result in ModelMatrix and returns it. mgl32 multiplies column vectors,
// so the product reads right to left; the memory layout matches the row-vector product S*Rx*Ry*Rz*T.
func (v *Volume) ComputeModelMatrix() mgl32.Mat4 {
	s := mgl32.Scale3D(v.Scale[0], v.Scale[1], v.Scale[2])
	rx := mgl32.HomogRotate3DX(v.Rotation[0])
	ry := mgl32.HomogRotate3DY(v.Rotation[1])
	rz := mgl32.HomogRotate3DZ(v.Rotation[2])
	t := mgl32.Translate3D(v.Position[0], v.Position[1], v.Position[2])
	v.ModelMatrix = t.Mul4(rz).Mul4(ry).Mul4(rx).Mul4(s)
	return v.ModelMatrix
}

// Animate sets Rotation from Spin for the given elapsed time in seconds. Volumes without spin are untouched.
func (v *Volume) Animate(elapsed float32) {
	if v.Spin == (mgl32.Vec3{}) {
		return
	}
	v.Rotation = v.Spin.Mul(elapsed)
}

// Replace swaps in the geometry of other, keeping this volume's transform, name and texture binding.
// Used when a mesh file is reloaded.
func (v *Volume) Replace(other *Volume) {
	v.vertices = other.vertices
	v.indices = other.indices
	v.colors = other.colors
	v.texCoords = other.texCoords
	v.revision++
}

// Revision counts geometry replacements. GPU-side copies compare it to decide when to re-upload.
func (v *Volume) Revision() uint64 { return v.revision }

// Validate checks the data-integrity invariants: index count multiple of 3, every index within
// the vertex buffer, and colors/UVs parallel to vertices. It never panics; the first problem
// found is returned wrapped around one of the Err* sentinels.
func (v *Volume) Validate() error {
	if len(v.indices)%3 != 0 {
		return fmt.Errorf("%w: %s has %d indices", ErrIndexCount, v.Label(), len(v.indices))
	}
	n := len(v.vertices)
	for i, idx := range v.indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: %s index[%d]=%d, %d vertices", ErrIndexOutOfRange, v.Label(), i, idx, n)
		}
	}
	if len(v.colors) != n {
		return fmt.Errorf("%w: %s has %d colors for %d vertices", ErrAttributeCount, v.Label(), len(v.colors), n)
	}
	if len(v.texCoords) != n {
		return fmt.Errorf("%w: %s has %d texture coords for %d vertices", ErrAttributeCount, v.Label(), len(v.texCoords), n)
	}
	return nil
}

// Label returns Name, or the kind when unnamed.
func (v *Volume) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return v.Kind.String()
}
