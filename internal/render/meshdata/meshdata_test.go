package meshdata

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trispin/internal/camera"
	"trispin/internal/scene"
	"trispin/internal/volume"
)

func TestPackSecondVolume(t *testing.T) {
	first := volume.NewPyramid()
	second := volume.NewMesh("tri",
		[]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]int{2, 1, 0},
		[]mgl32.Vec3{{1, 0, 0}, {0, 2, 0}, {-1, 0.5, 0}},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}})
	f := scene.Aggregate([]*volume.Volume{first, second}, camera.New(), scene.DefaultProjection())

	b, err := Pack(f, f.Draws[1])
	require.NoError(t, err)
	assert.Equal(t, 3, b.VertexCount())
	assert.Equal(t, 1, b.TriangleCount())
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, b.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, b.TexCoords)
	assert.Equal(t, []uint8{255, 0, 0, 255, 0, 255, 0, 255, 0, 128, 0, 255}, b.Colors)
	assert.Equal(t, []uint16{2, 1, 0}, b.Indices)
}

func TestPackRejectsInvalidVolume(t *testing.T) {
	bad := volume.NewMesh("bad", []mgl32.Vec3{{}}, []int{0, 0, 5}, []mgl32.Vec3{{}}, []mgl32.Vec2{{}})
	f := scene.Aggregate([]*volume.Volume{bad}, camera.New(), scene.DefaultProjection())
	_, err := Pack(f, f.Draws[0])
	assert.True(t, errors.Is(err, volume.ErrIndexOutOfRange))
}

func TestPackTooManyVertices(t *testing.T) {
	f := &scene.Frame{}
	_, err := Pack(f, scene.Draw{VertexCount: MaxVertices + 1})
	assert.ErrorIs(t, err, ErrTooManyVertices)
}

func TestColorByte(t *testing.T) {
	assert.Equal(t, uint8(0), ColorByte(-3))
	assert.Equal(t, uint8(255), ColorByte(3))
	assert.Equal(t, uint8(128), ColorByte(0.5))
	assert.Equal(t, uint8(0), ColorByte(math32NaN()))
}

func math32NaN() float32 {
	zero := float32(0)
	return zero / zero
}
