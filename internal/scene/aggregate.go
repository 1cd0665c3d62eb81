package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"trispin/internal/volume"
)

// Viewer supplies the view matrix for a frame.
type Viewer interface {
	ViewMatrix() mgl32.Mat4
}

// Draw describes one volume's slice of the merged buffers and its transforms for the frame.
// IndexStart/IndexCount address Frame.Indices; VertexStart is the offset already added to those indices.
type Draw struct {
	Volume      *volume.Volume
	VertexStart int
	VertexCount int
	IndexStart  int
	IndexCount  int

	Model          mgl32.Mat4
	ViewProjection mgl32.Mat4
	MVP            mgl32.Mat4
}

// Frame is the per-frame output handed to the render layer: four parallel-by-vertex buffers
// plus one Draw per volume, in scene order.
type Frame struct {
	Vertices  []mgl32.Vec3
	Indices   []int
	Colors    []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Draws     []Draw
}

// Aggregate merges the volumes into one frame. Volumes are processed in slice order with a running
// vertex offset: each volume's vertices, colors and texture coordinates are appended, then its
// indices shifted by the number of vertices already in the buffer. Colors and texture coordinates
// are fitted to exactly one entry per vertex (zero-padded) so later volumes never shift out of step.
//
// Each volume's model matrix is recomputed; the view-projection is projection*view and the MVP is
// viewProjection*model in mgl32's column-vector order, which is model, then view, then projection
// in order of application. The products are also stored on the volume.
func Aggregate(vols []*volume.Volume, cam Viewer, proj Projection) *Frame {
	var nv, ni int
	for _, v := range vols {
		nv += v.VertexCount()
		ni += v.IndexCount()
	}
	f := &Frame{
		Vertices:  make([]mgl32.Vec3, 0, nv),
		Indices:   make([]int, 0, ni),
		Colors:    make([]mgl32.Vec3, 0, nv),
		TexCoords: make([]mgl32.Vec2, 0, nv),
		Draws:     make([]Draw, 0, len(vols)),
	}

	viewProjection := proj.Matrix().Mul4(cam.ViewMatrix())

	vertexOffset := 0
	for _, v := range vols {
		n := v.VertexCount()
		d := Draw{
			Volume:      v,
			VertexStart: vertexOffset,
			VertexCount: n,
			IndexStart:  len(f.Indices),
			IndexCount:  v.IndexCount(),
		}

		f.Vertices = append(f.Vertices, v.Vertices()...)
		f.Colors = appendFitted3(f.Colors, v.Colors(), n)
		f.TexCoords = appendFitted2(f.TexCoords, v.TextureCoords(), n)
		f.Indices = append(f.Indices, v.Indices(vertexOffset)...)
		vertexOffset += n

		d.Model = v.ComputeModelMatrix()
		d.ViewProjection = viewProjection
		d.MVP = viewProjection.Mul4(d.Model)
		v.ViewProjectionMatrix = d.ViewProjection
		v.ModelViewProjectionMatrix = d.MVP

		f.Draws = append(f.Draws, d)
	}
	return f
}

// Stats returns the merged vertex and triangle counts.
func (f *Frame) Stats() (vertices, triangles int) {
	return len(f.Vertices), len(f.Indices) / 3
}

func appendFitted3(dst, src []mgl32.Vec3, n int) []mgl32.Vec3 {
	if len(src) >= n {
		return append(dst, src[:n]...)
	}
	dst = append(dst, src...)
	return append(dst, make([]mgl32.Vec3, n-len(src))...)
}

func appendFitted2(dst, src []mgl32.Vec2, n int) []mgl32.Vec2 {
	if len(src) >= n {
		return append(dst, src[:n]...)
	}
	dst = append(dst, src...)
	return append(dst, make([]mgl32.Vec2, n-len(src))...)
}
