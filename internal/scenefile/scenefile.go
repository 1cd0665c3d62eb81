// Package scenefile reads the YAML scene description (e.g. assets/scenes/default.yaml):
// camera start, projection and the ordered list of volumes.
package scenefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"trispin/internal/camera"
	"trispin/internal/meshfile"
	"trispin/internal/scene"
	"trispin/internal/volume"
)

// Document is the root of a scene file. Zero values mean "use the default".
type Document struct {
	Camera     CameraDef     `yaml:"camera,omitempty"`
	Projection ProjectionDef `yaml:"projection,omitempty"`
	Volumes    []VolumeDef   `yaml:"volumes"`
}

// CameraDef sets the camera's starting state. Position nil = camera.DefaultPosition.
type CameraDef struct {
	Position         *[3]float32 `yaml:"position,omitempty"`
	Yaw              float32     `yaml:"yaw,omitempty"`
	Pitch            float32     `yaml:"pitch,omitempty"`
	MoveSpeed        float32     `yaml:"move_speed,omitempty"`
	MouseSensitivity float32     `yaml:"mouse_sensitivity,omitempty"`
}

// ProjectionDef: fov in radians.
type ProjectionDef struct {
	Fov  float32 `yaml:"fov,omitempty"`
	Near float32 `yaml:"near,omitempty"`
	Far  float32 `yaml:"far,omitempty"`
}

// VolumeDef is one volume. Kind is "pyramid", "texpyramid" or "mesh"; Mesh is the mesh file path
// (relative to the scene file) and is required for kind mesh. Scale nil = (1,1,1).
type VolumeDef struct {
	Name     string      `yaml:"name,omitempty"`
	Kind     string      `yaml:"kind"`
	Mesh     string      `yaml:"mesh,omitempty"`
	Texture  string      `yaml:"texture,omitempty"`
	Textured bool        `yaml:"textured,omitempty"`
	Position [3]float32  `yaml:"position,omitempty"`
	Rotation [3]float32  `yaml:"rotation,omitempty"`
	Scale    *[3]float32 `yaml:"scale,omitempty"`
	Spin     [3]float32  `yaml:"spin,omitempty"`
}

// MeshReport carries the diagnostics of one mesh file loaded while building a scene.
type MeshReport struct {
	Path        string
	Diagnostics meshfile.Diagnostics
}

// Default returns the demo scene: two textured pyramids either side of the origin, spinning about Y.
func Default() Document {
	return Document{
		Volumes: []VolumeDef{
			{Name: "left", Kind: "texpyramid", Texture: "bricks2", Position: [3]float32{-1, 0, 0}, Spin: [3]float32{0, 0.5, 0}},
			{Name: "right", Kind: "texpyramid", Texture: "bricks", Position: [3]float32{1, 0, 0}, Spin: [3]float32{0, 0.5, 0}},
		},
	}
}

// Parse decodes a scene document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("scenefile: %w", err)
	}
	return doc, nil
}

// Load reads and decodes the scene file at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("scenefile: %w", err)
	}
	return Parse(data)
}

// Marshal encodes doc as YAML.
func Marshal(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Build turns doc into a scene. Mesh paths are resolved against baseDir. Mesh load problems are
// returned as reports and never fail the build; an unknown kind or a mesh volume without a path does.
func Build(doc Document, baseDir string) (*scene.Scene, []MeshReport, error) {
	s := scene.New()
	applyCamera(s.Camera, doc.Camera)
	applyProjection(&s.Projection, doc.Projection)

	var reports []MeshReport
	for i, def := range doc.Volumes {
		var v *volume.Volume
		switch def.Kind {
		case "pyramid":
			v = volume.NewPyramid()
		case "texpyramid":
			v = volume.NewTexPyramid()
		case "mesh":
			if def.Mesh == "" {
				return nil, nil, fmt.Errorf("scenefile: volume %d: mesh path required", i)
			}
			path := def.Mesh
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			var diags meshfile.Diagnostics
			v, diags = meshfile.Load(path)
			if len(diags) > 0 {
				reports = append(reports, MeshReport{Path: path, Diagnostics: diags})
			}
		default:
			return nil, nil, fmt.Errorf("scenefile: volume %d: unknown kind %q", i, def.Kind)
		}

		if def.Name != "" {
			v.Name = def.Name
		}
		if def.Textured {
			v.Textured = true
		}
		v.Texture = def.Texture
		v.Position = mgl32.Vec3(def.Position)
		v.Rotation = mgl32.Vec3(def.Rotation)
		if def.Scale != nil {
			v.Scale = mgl32.Vec3(*def.Scale)
		}
		v.Spin = mgl32.Vec3(def.Spin)
		s.Add(v)
	}
	return s, reports, nil
}

func applyCamera(c *camera.Camera, def CameraDef) {
	if def.Position != nil {
		c.Position = mgl32.Vec3(*def.Position)
	}
	c.Yaw = def.Yaw
	c.Pitch = def.Pitch
	if c.Pitch > camera.MaxPitch {
		c.Pitch = camera.MaxPitch
	}
	if c.Pitch < camera.MinPitch {
		c.Pitch = camera.MinPitch
	}
	if def.MoveSpeed > 0 {
		c.MoveSpeed = def.MoveSpeed
	}
	if def.MouseSensitivity > 0 {
		c.MouseSensitivity = def.MouseSensitivity
	}
}

func applyProjection(p *scene.Projection, def ProjectionDef) {
	if def.Fov > 0 {
		p.FovY = def.Fov
	}
	if def.Near > 0 {
		p.Near = def.Near
	}
	if def.Far > 0 {
		p.Far = def.Far
	}
}

// Snapshot describes s as a document, so the current camera and volume transforms can be saved.
// Mesh sources are written relative to baseDir when possible. Spinning volumes are written without
// their momentary rotation, since Animate overwrites it.
func Snapshot(s *scene.Scene, baseDir string) Document {
	pos := [3]float32(s.Camera.Position)
	doc := Document{
		Camera: CameraDef{
			Position:         &pos,
			Yaw:              s.Camera.Yaw,
			Pitch:            s.Camera.Pitch,
			MoveSpeed:        s.Camera.MoveSpeed,
			MouseSensitivity: s.Camera.MouseSensitivity,
		},
		Projection: ProjectionDef{Fov: s.Projection.FovY, Near: s.Projection.Near, Far: s.Projection.Far},
	}
	for _, v := range s.Volumes {
		def := VolumeDef{
			Kind:     v.Kind.String(),
			Texture:  v.Texture,
			Position: [3]float32(v.Position),
			Spin:     [3]float32(v.Spin),
		}
		if v.Spin == (mgl32.Vec3{}) {
			def.Rotation = [3]float32(v.Rotation)
		}
		if v.Scale != (mgl32.Vec3{1, 1, 1}) {
			scale := [3]float32(v.Scale)
			def.Scale = &scale
		}
		if v.Kind != volume.KindTexPyramid && v.Textured {
			def.Textured = true
		}
		if v.Kind == volume.KindMesh {
			def.Mesh = meshPath(baseDir, v.Source)
			if v.Name != filepath.Base(v.Source) {
				def.Name = v.Name
			}
		} else {
			def.Name = v.Name
		}
		doc.Volumes = append(doc.Volumes, def)
	}
	return doc
}

// meshPath expresses source relative to baseDir, falling back to an absolute path so the
// document still resolves when Build joins it with baseDir.
func meshPath(baseDir, source string) string {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return source
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return absSource
	}
	rel, err := filepath.Rel(absBase, absSource)
	if err != nil {
		return absSource
	}
	return rel
}

// Save writes doc to path as YAML.
func Save(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	return nil
}
