package meshfile

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trispin/internal/volume"
)

func assertInvariants(t *testing.T, v *volume.Volume) {
	t.Helper()
	assert.Equal(t, v.VertexCount(), v.ColorCount())
	assert.Len(t, v.TextureCoords(), v.VertexCount())
	assert.Equal(t, 0, v.IndexCount()%3)
	for _, idx := range v.Indices(0) {
		assert.Less(t, idx, v.VertexCount())
		assert.GreaterOrEqual(t, idx, 0)
	}
	assert.NoError(t, v.Validate())
}

func TestParseBasic(t *testing.T) {
	v, diags := Parse("v 1.0 2.0 3.0\nv 4.0 5.0 6.0\nf 1 2 1\n")
	assert.Empty(t, diags)
	require.Equal(t, 2, v.VertexCount())
	assert.Equal(t, []int{0, 1, 0}, v.Indices(0))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v.Vertices()[0])
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, v.Vertices()[1])
	assert.Equal(t, volume.KindMesh, v.Kind)
	assertInvariants(t, v)
}

func TestParseVertexFieldCount(t *testing.T) {
	v, diags := Parse("v 1.0 2.0\n")
	assert.Equal(t, 0, v.VertexCount())
	require.Len(t, diags, 1)
	assert.Equal(t, FieldCount, diags[0].Kind)
	assert.Equal(t, 1, diags[0].Line)
	assertInvariants(t, v)
}

func TestParseVertexPartialFailure(t *testing.T) {
	v, diags := Parse("v a 2.0 3.0\n")
	require.Equal(t, 1, v.VertexCount())
	assert.Equal(t, mgl32.Vec3{0, 2, 3}, v.Vertices()[0])
	require.Len(t, diags, 1)
	assert.Equal(t, VertexParse, diags[0].Kind)
	assert.Error(t, diags[0].Err)
	assertInvariants(t, v)
}

// Vertices are kept when a coordinate fails to parse but faces are dropped entirely.
func TestParseFaceFailureDropsFace(t *testing.T) {
	v, diags := Parse("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 x 3\nf 1 2 3\n")
	assert.Equal(t, 3, v.VertexCount())
	assert.Equal(t, []int{0, 1, 2}, v.Indices(0))
	require.Len(t, diags, 1)
	assert.Equal(t, FaceParse, diags[0].Kind)
	assert.Equal(t, 4, diags[0].Line)
	assertInvariants(t, v)
}

func TestParseFaceFieldCount(t *testing.T) {
	v, diags := Parse("v 0 0 0\nf 1 1\nf 1 1 1 1\n")
	assert.Equal(t, 0, v.IndexCount())
	assert.Equal(t, 2, diags.Count(FieldCount))
}

func TestParseFaceOutOfRange(t *testing.T) {
	v, diags := Parse("f 1 2 3\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\nf 0 1 2\n")
	assert.Equal(t, []int{0, 1, 2}, v.Indices(0), "faces may precede their vertices")
	assert.Equal(t, 2, diags.Count(IndexRange))
	assertInvariants(t, v)
}

func TestParseIgnoresOtherRecords(t *testing.T) {
	src := "# comment\nvn 0 1 0\nvt 0 1\no thing\n\n   \nv 1 1 1\n"
	v, diags := Parse(src)
	assert.Empty(t, diags)
	assert.Equal(t, 1, v.VertexCount())
}

func TestParseWhitespace(t *testing.T) {
	v, diags := Parse("v\t1   2 \t3\r\nf  1 1   1\r\n")
	assert.Empty(t, diags)
	require.Equal(t, 1, v.VertexCount())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v.Vertices()[0])
	assert.Equal(t, []int{0, 0, 0}, v.Indices(0))
}

// Both decimal marks parse to the same value regardless of the process locale.
func TestParseDecimalSeparator(t *testing.T) {
	dot, d1 := Parse("v 1.5 -2.25 3.0\n")
	comma, d2 := Parse("v 1,5 -2,25 3,0\n")
	assert.Empty(t, d1)
	assert.Empty(t, d2)
	assert.Equal(t, dot.Vertices(), comma.Vertices())
	assert.Equal(t, mgl32.Vec3{1.5, -2.25, 3}, dot.Vertices()[0])
}

func TestParsePlaceholderAttributes(t *testing.T) {
	v, _ := Parse("v 0 0 1.2\n")
	s := math32.Sin(1.2)
	assert.Equal(t, mgl32.Vec3{s, s, s}, v.Colors()[0])
	assert.Equal(t, mgl32.Vec2{s, s}, v.TextureCoords()[0])
}

func TestParseEmpty(t *testing.T) {
	v, diags := Parse("")
	require.NotNil(t, v)
	assert.Empty(t, diags)
	assert.Equal(t, 0, v.VertexCount())
	assert.NoError(t, diags.Err())
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"models/tri.obj": {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
	}
	v, diags := LoadFS(fsys, "models/tri.obj")
	assert.Empty(t, diags)
	assert.Equal(t, "tri.obj", v.Name)
	assert.Equal(t, 3, v.IndexCount())
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.obj")
	v, diags := Load(path)
	require.NotNil(t, v)
	assert.Equal(t, 0, v.VertexCount())
	require.Len(t, diags, 1)
	assert.Equal(t, NotFound, diags[0].Kind)
	assert.Equal(t, path, diags[0].Text)
	assert.Error(t, diags.Err())
}

func TestLoadIOError(t *testing.T) {
	dir := t.TempDir()
	v, diags := Load(dir)
	require.NotNil(t, v)
	assert.Equal(t, 0, v.VertexCount())
	require.Len(t, diags, 1)
	assert.Equal(t, IO, diags[0].Kind)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	src := "v -1 -1 0\nv 1 -1 0\nv 1 1 0\nv -1 1 0\nf 1 2 3\nf 1 3 4\nv broken\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	v, diags := Load(path)
	assert.Equal(t, 4, v.VertexCount())
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, v.Indices(0))
	assert.Equal(t, 1, diags.Count(FieldCount))
	assertInvariants(t, v)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Line: 3, Kind: FaceParse, Text: "f 1 a 2"}
	assert.Equal(t, `line 3: face parse: "f 1 a 2"`, d.String())
	assert.Contains(t, d.Error(), "meshfile: ")
}
