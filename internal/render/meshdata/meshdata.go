// Package meshdata packs one volume's slice of an aggregated frame into the flat arrays a GPU mesh takes.
package meshdata

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"trispin/internal/scene"
	"trispin/internal/volume"
)

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 1 << 16

var ErrTooManyVertices = errors.New("meshdata: too many vertices for 16-bit indices")

// Buffers holds one volume's attributes: XYZ positions, UV pairs, RGBA bytes and 16-bit local indices.
type Buffers struct {
	Positions []float32
	TexCoords []float32
	Colors    []uint8
	Indices   []uint16
}

func (b Buffers) VertexCount() int   { return len(b.Positions) / 3 }
func (b Buffers) TriangleCount() int { return len(b.Indices) / 3 }

// Pack validates d.Volume and copies its range of f into Buffers. Indices are rebased so the
// volume's first vertex is 0.
func Pack(f *scene.Frame, d scene.Draw) (Buffers, error) {
	if d.Volume != nil {
		if err := d.Volume.Validate(); err != nil {
			return Buffers{}, err
		}
	}
	if d.VertexCount > MaxVertices {
		return Buffers{}, fmt.Errorf("%w: %d", ErrTooManyVertices, d.VertexCount)
	}
	if d.VertexStart+d.VertexCount > len(f.Vertices) || d.IndexStart+d.IndexCount > len(f.Indices) {
		return Buffers{}, fmt.Errorf("%w: draw outside frame buffers", volume.ErrIndexOutOfRange)
	}

	b := Buffers{
		Positions: make([]float32, 0, d.VertexCount*3),
		TexCoords: make([]float32, 0, d.VertexCount*2),
		Colors:    make([]uint8, 0, d.VertexCount*4),
		Indices:   make([]uint16, 0, d.IndexCount),
	}
	end := d.VertexStart + d.VertexCount
	for i := d.VertexStart; i < end; i++ {
		p := f.Vertices[i]
		b.Positions = append(b.Positions, p[0], p[1], p[2])
		uv := f.TexCoords[i]
		b.TexCoords = append(b.TexCoords, uv[0], uv[1])
		c := f.Colors[i]
		b.Colors = append(b.Colors, ColorByte(c[0]), ColorByte(c[1]), ColorByte(c[2]), 255)
	}
	for _, idx := range f.Indices[d.IndexStart : d.IndexStart+d.IndexCount] {
		local := idx - d.VertexStart
		if local < 0 || local >= d.VertexCount {
			return Buffers{}, fmt.Errorf("%w: index %d outside [%d,%d)", volume.ErrIndexOutOfRange, idx, d.VertexStart, end)
		}
		b.Indices = append(b.Indices, uint16(local))
	}
	return b, nil
}

// ColorByte maps a [0,1] channel to 0..255, clamping values outside the range.
func ColorByte(c float32) uint8 {
	if math32.IsNaN(c) {
		return 0
	}
	c = math32.Max(0, math32.Min(1, c))
	return uint8(math32.Round(c * 255))
}
