package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the runtime overlays: FPS, heap size and scene geometry counts. All are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool

	font rl.Font // optional; zero texture ID = raylib default font

	vertices, triangles int
	shader              string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the overlay font. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// SetStats records this frame's totals for the stats overlay.
func (d *Debug) SetStats(vertices, triangles int, shader string) {
	if vertices != d.vertices || triangles != d.triangles || shader != d.shader {
		d.lastStats = ""
	}
	d.vertices, d.triangles, d.shader = vertices, triangles, shader
}

// Draw renders the enabled overlays top-right in green, one per line.
// Text is recomputed every updateInterval frames, or immediately when it is missing.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	line := func(text string) {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(float32(screenW)-w-padding, float32(y)), fontSize, 1, rl.DarkGreen)
		} else {
			w := rl.MeasureText(text, fontSize)
			rl.DrawText(text, screenW-w-padding, y, fontSize, rl.DarkGreen)
		}
		y += lineHeight
	}

	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update || d.lastMemText == "" {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		line(d.lastMemText)
	}
	if d.ShowStats {
		if d.lastStats == "" {
			d.lastStats = fmt.Sprintf("%d verts  %d tris  [%s]", d.vertices, d.triangles, d.shader)
		}
		line(d.lastStats)
	}
}
