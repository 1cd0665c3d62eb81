package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trispin/internal/camera"
	"trispin/internal/volume"
)

func meshWith(name string, n int, indices []int) *volume.Volume {
	verts := make([]mgl32.Vec3, n)
	for i := range verts {
		verts[i] = mgl32.Vec3{float32(i), 0, 0}
	}
	return volume.NewMesh(name, verts, indices, make([]mgl32.Vec3, n), make([]mgl32.Vec2, n))
}

func TestAggregateOffsetsIndices(t *testing.T) {
	a := meshWith("a", 5, []int{0, 1, 2, 2, 3, 4})
	b := meshWith("b", 6, []int{0, 1, 2, 3, 4, 5, 5, 0, 1})

	f := Aggregate([]*volume.Volume{a, b}, camera.New(), DefaultProjection())

	require.Len(t, f.Indices, a.IndexCount()+b.IndexCount())
	assert.Equal(t, a.Indices(0), f.Indices[:6])
	second := f.Indices[6:]
	for i, idx := range b.Indices(0) {
		assert.Equal(t, idx+5, second[i])
	}
	assert.Len(t, f.Vertices, 11)
	assert.Len(t, f.Colors, 11)
	assert.Len(t, f.TexCoords, 11)

	require.Len(t, f.Draws, 2)
	assert.Equal(t, Draw{Volume: b, VertexStart: 5, VertexCount: 6, IndexStart: 6, IndexCount: 9,
		Model: f.Draws[1].Model, ViewProjection: f.Draws[1].ViewProjection, MVP: f.Draws[1].MVP}, f.Draws[1])

	for _, idx := range f.Indices {
		assert.Less(t, idx, len(f.Vertices))
	}
	vs, tris := f.Stats()
	assert.Equal(t, 11, vs)
	assert.Equal(t, 5, tris)
}

func TestAggregateKeepsOrder(t *testing.T) {
	p := volume.NewPyramid()
	tp := volume.NewTexPyramid()
	f := Aggregate([]*volume.Volume{tp, p}, camera.New(), DefaultProjection())
	assert.Equal(t, tp.Vertices(), f.Vertices[:18])
	assert.Equal(t, p.Vertices(), f.Vertices[18:])
	assert.Equal(t, tp.TextureCoords(), f.TexCoords[:18])
	assert.Equal(t, p.Colors(), f.Colors[18:])
}

func TestAggregateFitsAttributes(t *testing.T) {
	short := volume.NewMesh("short", make([]mgl32.Vec3, 4), []int{0, 1, 2},
		[]mgl32.Vec3{{1, 0, 0}}, nil)
	long := volume.NewMesh("long", make([]mgl32.Vec3, 1), nil,
		[]mgl32.Vec3{{0, 1, 0}, {0, 0, 1}}, []mgl32.Vec2{{1, 1}, {2, 2}})
	f := Aggregate([]*volume.Volume{short, long}, camera.New(), DefaultProjection())

	require.Len(t, f.Colors, 5)
	require.Len(t, f.TexCoords, 5)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, f.Colors[0])
	assert.Equal(t, mgl32.Vec3{}, f.Colors[3])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, f.Colors[4], "second volume's colors stay aligned")
	assert.Equal(t, mgl32.Vec2{1, 1}, f.TexCoords[4])
}

func TestAggregateMatrices(t *testing.T) {
	cam := camera.New()
	proj := DefaultProjection()
	v := volume.NewPyramid()
	v.Position = mgl32.Vec3{1, 0, 0}
	v.Rotation = mgl32.Vec3{0, 0.5, 0}

	f := Aggregate([]*volume.Volume{v}, cam, proj)
	d := f.Draws[0]

	model := v.ComputeModelMatrix()
	vp := proj.Matrix().Mul4(cam.ViewMatrix())
	assert.Equal(t, model, d.Model)
	assert.Equal(t, vp, d.ViewProjection)
	assert.Equal(t, vp.Mul4(model), d.MVP)
	assert.Equal(t, d.MVP, v.ModelViewProjectionMatrix)
	assert.Equal(t, d.ViewProjection, v.ViewProjectionMatrix)

	// Applying the MVP equals applying model, view and projection in turn.
	p := mgl32.Vec4{0.5, -0.25, 0.5, 1}
	stepwise := proj.Matrix().Mul4x1(cam.ViewMatrix().Mul4x1(model.Mul4x1(p)))
	got := d.MVP.Mul4x1(p)
	for i := range stepwise {
		assert.InDelta(t, stepwise[i], got[i], 1e-4, "component %d", i)
	}
}

func TestAggregateEmpty(t *testing.T) {
	f := Aggregate(nil, camera.New(), DefaultProjection())
	assert.Empty(t, f.Vertices)
	assert.Empty(t, f.Indices)
	assert.Empty(t, f.Draws)
}

func TestProjectionMatrixAspectFallback(t *testing.T) {
	p := DefaultProjection()
	p.Aspect = 0
	q := DefaultProjection()
	assert.Equal(t, q.Matrix(), p.Matrix())
}

func TestSceneUpdateAndFrame(t *testing.T) {
	s := New()
	spinning := volume.NewTexPyramid()
	spinning.Spin = mgl32.Vec3{0, 0.5, 0}
	still := volume.NewPyramid()
	s.Add(spinning, still)

	s.Update(2)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, spinning.Rotation)
	assert.Equal(t, mgl32.Vec3{}, still.Rotation)

	f := s.Frame()
	assert.Len(t, f.Draws, 2)
	assert.Equal(t, 18, f.Draws[1].VertexStart)

	mesh := volume.NewMesh("m", nil, nil, nil, nil)
	s.Add(mesh)
	assert.Equal(t, []*volume.Volume{mesh}, s.Meshes())
}
