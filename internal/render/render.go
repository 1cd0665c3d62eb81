// Package render submits aggregated frames to raylib: one GPU mesh per volume, drawn with the
// volume's model-view-projection matrix and the active shader.
package render

import (
	"errors"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"trispin/internal/camera"
	"trispin/internal/logger"
	"trispin/internal/render/meshdata"
	"trispin/internal/scene"
	"trispin/internal/volume"
)

// TextureDir is where named textures are looked up: <dir>/<name>.png, then .jpg.
const TextureDir = "assets/textures"

var textureExts = []string{".png", ".jpg", ".jpeg"}

// gpuMesh is a volume's uploaded geometry. buf keeps the CPU arrays referenced by mesh alive.
type gpuMesh struct {
	mesh     rl.Mesh
	buf      meshdata.Buffers
	revision uint64
	count    int
}

// Renderer owns GPU resources. Create it after the window exists; all methods run on the window thread.
type Renderer struct {
	log        *logger.Logger
	textureDir string

	shaders   [shaderCount]rl.Shader
	materials [shaderCount]rl.Material
	active    ShaderSlot
	fallback  rl.Texture2D

	textures map[string]rl.Texture2D
	meshes   map[*volume.Volume]*gpuMesh
	// skipped records the geometry revision a volume was rejected at, so it is logged once.
	skipped map[*volume.Volume]uint64

	GridVisible bool
}

// New compiles both shader slots. A shader that fails to compile is a fatal error.
func New(log *logger.Logger, textureDir string) (*Renderer, error) {
	r := &Renderer{
		log:        log,
		textureDir: textureDir,
		active:     ShaderTexture,
		textures:   make(map[string]rl.Texture2D),
		meshes:     make(map[*volume.Volume]*gpuMesh),
		skipped:    make(map[*volume.Volume]uint64),
	}
	for s := ShaderColor; s < shaderCount; s++ {
		sh, err := loadShader(s)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.shaders[s] = sh
		r.materials[s] = rl.LoadMaterialDefault()
		r.materials[s].Shader = sh
	}
	r.fallback = rl.Texture2D{
		ID:      rl.GetTextureIdDefault(),
		Width:   1,
		Height:  1,
		Mipmaps: 1,
		Format:  rl.UncompressedR8g8b8a8,
	}
	return r, nil
}

func (r *Renderer) Shader() ShaderSlot { return r.active }

func (r *Renderer) SetShader(s ShaderSlot) {
	if s >= 0 && s < shaderCount {
		r.active = s
	}
}

// NextShader switches to the other shader slot.
func (r *Renderer) NextShader() {
	r.active = r.active.Next()
}

// Draw submits f. view/proj are only used for the grid; volumes carry their own MVP, so rlgl's
// view and projection are reset to identity while meshes are drawn.
func (r *Renderer) Draw(f *scene.Frame, cam *camera.Camera, proj scene.Projection) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Position.Add(cam.LookDir())),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       proj.FovY * rl.Rad2deg,
		Projection: rl.CameraPerspective,
	})

	rl.SetMatrixProjection(rl.MatrixIdentity())
	rl.SetMatrixModelview(rl.MatrixIdentity())
	rl.DisableBackfaceCulling()

	mtl := r.materials[r.active]
	live := make(map[*volume.Volume]bool, len(f.Draws))
	for _, d := range f.Draws {
		live[d.Volume] = true
		gm := r.ensureMesh(f, d)
		if gm == nil {
			continue
		}
		if r.active == ShaderTexture {
			rl.SetMaterialTexture(&mtl, rl.MapAlbedo, r.texture(d.Volume.Texture))
		}
		rl.DrawMesh(gm.mesh, mtl, toMatrix(d.MVP))
	}
	rl.EnableBackfaceCulling()

	if r.GridVisible {
		rl.SetMatrixProjection(toMatrix(proj.Matrix()))
		rl.SetMatrixModelview(toMatrix(cam.ViewMatrix()))
		drawGrid()
	}
	rl.EndMode3D()

	for v := range r.meshes {
		if !live[v] {
			r.Forget(v)
		}
	}
}

// ensureMesh uploads d's geometry on first sight or after the volume's geometry was replaced.
// Returns nil for volumes with nothing to draw or that fail validation.
func (r *Renderer) ensureMesh(f *scene.Frame, d scene.Draw) *gpuMesh {
	v := d.Volume
	if gm, ok := r.meshes[v]; ok {
		if gm.revision == v.Revision() && gm.count == d.VertexCount {
			return gm
		}
		r.Forget(v)
	}
	if d.VertexCount == 0 || d.IndexCount == 0 {
		return nil
	}
	if rev, ok := r.skipped[v]; ok && rev == v.Revision() {
		return nil
	}

	buf, err := meshdata.Pack(f, d)
	if err != nil {
		r.skipped[v] = v.Revision()
		r.log.Logf("render: skipping %s: %v", v.Label(), err)
		return nil
	}
	delete(r.skipped, v)

	gm := &gpuMesh{buf: buf, revision: v.Revision(), count: d.VertexCount}
	gm.mesh = rl.Mesh{
		VertexCount:   int32(buf.VertexCount()),
		TriangleCount: int32(buf.TriangleCount()),
		Vertices:      &gm.buf.Positions[0],
		Texcoords:     &gm.buf.TexCoords[0],
		Colors:        &gm.buf.Colors[0],
		Indices:       &gm.buf.Indices[0],
	}
	rl.UploadMesh(&gm.mesh, false)
	r.meshes[v] = gm
	return gm
}

// Forget releases v's GPU mesh, if any.
func (r *Renderer) Forget(v *volume.Volume) {
	gm, ok := r.meshes[v]
	if !ok {
		return
	}
	rl.UnloadMesh(&gm.mesh)
	delete(r.meshes, v)
}

// texture returns the named texture, loading it on first use. Missing files log once and
// fall back to raylib's 1x1 white texture.
func (r *Renderer) texture(name string) rl.Texture2D {
	if name == "" {
		return r.fallback
	}
	if tex, ok := r.textures[name]; ok {
		return tex
	}
	tex := r.fallback
	path, err := r.findTexture(name)
	if err != nil {
		r.log.Logf("render: texture %q: %v", name, err)
	} else if loaded := rl.LoadTexture(path); rl.IsTextureValid(loaded) {
		rl.GenTextureMipmaps(&loaded)
		rl.SetTextureFilter(loaded, rl.FilterTrilinear)
		tex = loaded
	} else {
		r.log.Logf("render: texture %q: failed to load %s", name, path)
	}
	r.textures[name] = tex
	return tex
}

// ForgetTextures drops every cached texture so the next draw reloads them from disk.
func (r *Renderer) ForgetTextures() {
	for name, tex := range r.textures {
		if tex.ID != r.fallback.ID {
			rl.UnloadTexture(tex)
		}
		delete(r.textures, name)
	}
}

func (r *Renderer) findTexture(name string) (string, error) {
	for _, ext := range textureExts {
		path := filepath.Join(r.textureDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New("not found in " + r.textureDir)
}

// Close unloads meshes, textures and shaders.
func (r *Renderer) Close() {
	for v := range r.meshes {
		r.Forget(v)
	}
	r.ForgetTextures()
	for s := range r.shaders {
		if r.shaders[s].ID != 0 {
			rl.UnloadShader(r.shaders[s])
			r.shaders[s] = rl.Shader{}
		}
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// toMatrix converts a column-major mgl32 matrix to raylib's, which uses the same element order.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
