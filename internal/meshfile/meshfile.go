// Package meshfile loads the plain-text mesh format: "v x y z" vertex records and
// "f i1 i2 i3" triangle records with 1-based indices. Anything else is ignored.
//
// Loading never fails. Malformed records are skipped or partially kept and reported
// as Diagnostics so a partially corrupt mesh still renders.
package meshfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"trispin/internal/volume"
)

type face struct {
	line int
	idx  [3]int
}

// Parse reads mesh text and returns a mesh volume plus any diagnostics.
// Vertex records with unparseable coordinates are kept (failed fields are 0);
// face records with any unparseable index are dropped, as are faces that reference missing vertices.
func Parse(text string) (*volume.Volume, Diagnostics) {
	var (
		verts  []mgl32.Vec3
		colors []mgl32.Vec3
		uvs    []mgl32.Vec2
		faces  []face
		diags  Diagnostics
	)

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) != 4 {
				diags = append(diags, Diagnostic{Line: lineNo, Kind: FieldCount, Text: strings.TrimSpace(line)})
				continue
			}
			var vec mgl32.Vec3
			var firstErr error
			for j := 0; j < 3; j++ {
				f, err := parseFloat(fields[j+1])
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					f = 0
				}
				vec[j] = f
			}
			// Placeholder attributes until the format carries real ones.
			s := math32.Sin(vec[2])
			colors = append(colors, mgl32.Vec3{s, s, s})
			uvs = append(uvs, mgl32.Vec2{s, s})
			verts = append(verts, vec)
			if firstErr != nil {
				diags = append(diags, Diagnostic{Line: lineNo, Kind: VertexParse, Text: strings.TrimSpace(line), Err: firstErr})
			}
		case "f":
			if len(fields) != 4 {
				diags = append(diags, Diagnostic{Line: lineNo, Kind: FieldCount, Text: strings.TrimSpace(line)})
				continue
			}
			var idx [3]int
			var parseErr error
			for j := 0; j < 3; j++ {
				n, err := strconv.Atoi(fields[j+1])
				if err != nil {
					parseErr = err
					break
				}
				idx[j] = n - 1
			}
			if parseErr != nil {
				diags = append(diags, Diagnostic{Line: lineNo, Kind: FaceParse, Text: strings.TrimSpace(line), Err: parseErr})
				continue
			}
			faces = append(faces, face{line: lineNo, idx: idx})
		}
	}

	indices := make([]int, 0, len(faces)*3)
	for _, f := range faces {
		if !inRange(f.idx, len(verts)) {
			diags = append(diags, Diagnostic{Line: f.line, Kind: IndexRange, Text: faceText(f.idx)})
			continue
		}
		indices = append(indices, f.idx[0], f.idx[1], f.idx[2])
	}

	return volume.NewMesh("", verts, indices, colors, uvs), diags
}

// Load reads and parses the mesh file at path. A missing or unreadable file is reported
// as a diagnostic and yields an empty mesh volume.
func Load(path string) (*volume.Volume, Diagnostics) {
	data, err := os.ReadFile(path)
	return finishLoad(path, data, err)
}

// LoadFS is Load over an fs.FS.
func LoadFS(fsys fs.FS, path string) (*volume.Volume, Diagnostics) {
	data, err := fs.ReadFile(fsys, path)
	return finishLoad(path, data, err)
}

func finishLoad(path string, data []byte, err error) (*volume.Volume, Diagnostics) {
	name := filepath.Base(path)
	if err != nil {
		kind := IO
		if errors.Is(err, fs.ErrNotExist) {
			kind = NotFound
		}
		v := volume.NewMesh(name, nil, nil, nil, nil)
		v.Source = path
		return v, Diagnostics{{Kind: kind, Text: path, Err: err}}
	}
	v, diags := Parse(string(data))
	v.Name = name
	v.Source = path
	return v, diags
}

// parseFloat accepts both '.' and ',' as the decimal mark; parsing itself is locale independent.
func parseFloat(s string) (float32, error) {
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func inRange(idx [3]int, n int) bool {
	for _, i := range idx {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}

func faceText(idx [3]int) string {
	return "f " + strconv.Itoa(idx[0]+1) + " " + strconv.Itoa(idx[1]+1) + " " + strconv.Itoa(idx[2]+1)
}
