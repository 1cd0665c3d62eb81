package volume

import "github.com/go-gl/mathgl/mgl32"

const (
	pyramidHalfWidth = 0.5
	pyramidDrop      = pyramidHalfWidth / 2
)

// pyramidPalette is cycled over the untextured pyramid's vertices.
var pyramidPalette = []mgl32.Vec3{
	{1, 0, 0},
	{0, 0, 1},
	{0, 1, 0},
}

// sandColor tints every vertex of the textured pyramid.
var sandColor = mgl32.Vec3{0.761, 0.698, 0.502}

// pyramidCorners returns apex and the four base corners (+x+z, -x+z, -x-z, +x-z).
func pyramidCorners() (top, pp, np, nn, pn mgl32.Vec3) {
	const v, h = pyramidHalfWidth, pyramidDrop
	top = mgl32.Vec3{0, v - h, 0}
	pp = mgl32.Vec3{v, -h, v}
	np = mgl32.Vec3{-v, -h, v}
	nn = mgl32.Vec3{-v, -h, -v}
	pn = mgl32.Vec3{v, -h, -v}
	return
}

// NewPyramid returns a square pyramid with shared vertices: apex plus four base corners,
// four side faces and a two-triangle base. Colors cycle red, blue, green.
func NewPyramid() *Volume {
	top, pp, np, nn, pn := pyramidCorners()
	p := newVolume(KindPyramid, "")
	p.vertices = []mgl32.Vec3{top, pp, np, nn, pn}
	p.indices = []int{
		0, 1, 2,
		0, 2, 3,
		0, 3, 4,
		0, 4, 1,
		1, 2, 3,
		1, 4, 3,
	}
	p.colors = make([]mgl32.Vec3, len(p.vertices))
	for i := range p.colors {
		p.colors[i] = pyramidPalette[i%len(pyramidPalette)]
	}
	p.texCoords = make([]mgl32.Vec2, len(p.vertices))
	return p
}

// NewTexPyramid returns a textured square pyramid. Every face has its own three vertices so
// each can carry its own UVs; indices are simply 0..17.
func NewTexPyramid() *Volume {
	top, pp, np, nn, pn := pyramidCorners()
	p := newVolume(KindTexPyramid, "")
	p.Textured = true
	p.vertices = []mgl32.Vec3{
		// sides
		top, np, pp,
		top, pn, pp,
		top, nn, pn,
		top, nn, np,
		// bottom
		nn, pn, pp,
		nn, np, pp,
	}
	p.indices = make([]int, len(p.vertices))
	for i := range p.indices {
		p.indices[i] = i
	}
	p.colors = make([]mgl32.Vec3, len(p.vertices))
	for i := range p.colors {
		p.colors[i] = sandColor
	}
	side := []mgl32.Vec2{{0.5, 1}, {0, 0}, {1, 0}}
	p.texCoords = make([]mgl32.Vec2, 0, len(p.vertices))
	for i := 0; i < 4; i++ {
		p.texCoords = append(p.texCoords, side...)
	}
	p.texCoords = append(p.texCoords,
		mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1},
		mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1},
	)
	return p
}
