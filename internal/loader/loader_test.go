package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Scanline/internal/geometry"
	"Scanline/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parse(t *testing.T, text string) (*scene.Scene, error) {
	t.Helper()
	return ParseScene(strings.NewReader(text), "test.scn")
}

func raw(x, y, z float32) scene.ValPoint3 {
	return scene.RawPoint(geometry.Point3{X: x, Y: y, Z: z})
}

func TestParseEveryCommand(t *testing.T) {
	text := `# a comment
point 1 2 3 4

line 0 0 0 10 10 0
triangle 0 0 0 1 0 0 0 1 0
identity
translate 1 2 3
scale 2 2 2
rotate 90 0 0 1
color 255 128 0
`
	sc, err := parse(t, text)
	require.NoError(t, err)

	want := []scene.Command{
		scene.Point{P: raw(1, 2, 3), Radius: scene.RawVal(4)},
		scene.Line{P1: raw(0, 0, 0), P2: raw(10, 10, 0)},
		scene.Triangle{P1: raw(0, 0, 0), P2: raw(1, 0, 0), P3: raw(0, 1, 0)},
		scene.Identity{},
		scene.Translate{X: scene.RawVal(1), Y: scene.RawVal(2), Z: scene.RawVal(3)},
		scene.Scale{X: scene.RawVal(2), Y: scene.RawVal(2), Z: scene.RawVal(2)},
		scene.Rotate{Theta: scene.RawVal(90), Axis: raw(0, 0, 1)},
		scene.SetColor{Color: geometry.Color{R: 255, G: 128, B: 0}},
	}
	assert.Equal(t, want, sc.Commands)
}

func TestParseKeywordsAreCaseInsensitive(t *testing.T) {
	sc, err := parse(t, "POINT 1 1 0 0\n  Identity  \nCoLoR 1 2 3\n")
	require.NoError(t, err)
	assert.Len(t, sc.Commands, 3)
}

func TestParseIndentedComment(t *testing.T) {
	sc, err := parse(t, "   # nothing here\n#point 1 1 1 1\n")
	require.NoError(t, err)
	assert.Empty(t, sc.Commands)
}

func TestParseVariablesFallback(t *testing.T) {
	sc, err := parse(t, "point x 2 3x 1e3\n")
	require.NoError(t, err)

	p := sc.Commands[0].(scene.Point)
	assert.Equal(t, scene.VarVal("x"), p.P.X)
	assert.Equal(t, scene.RawVal(2), p.P.Y)
	// a malformed number silently becomes a variable name
	assert.Equal(t, scene.VarVal("3x"), p.P.Z)
	assert.Equal(t, scene.RawVal(1000), p.Radius)
}

func TestParseHexAndUnderscoreAreVariables(t *testing.T) {
	sc, err := parse(t, "translate 0x1p3 0x_1p3 1_0\npoint inf -Infinity nan 2.5e1\n")
	require.NoError(t, err)

	tr := sc.Commands[0].(scene.Translate)
	assert.Equal(t, scene.VarVal("0x1p3"), tr.X)
	assert.Equal(t, scene.VarVal("0x_1p3"), tr.Y)
	assert.Equal(t, scene.VarVal("1_0"), tr.Z)

	p := sc.Commands[1].(scene.Point)
	assert.False(t, p.P.X.IsVar())
	assert.False(t, p.P.Y.IsVar())
	assert.False(t, p.P.Z.IsVar())
	assert.Equal(t, scene.RawVal(25), p.Radius)

	_, err = parse(t, "animate v 0 0x10 0 1\n")
	assert.True(t, errors.Is(err, ErrBadNumber))
}

func TestParseOutOfRangeLiteral(t *testing.T) {
	sc, err := parse(t, "translate 1e99 0 0\n")
	require.NoError(t, err)
	tr := sc.Commands[0].(scene.Translate)
	assert.False(t, tr.X.IsVar())
	assert.True(t, tr.X.Raw > 1e38)
}

func TestParseAnimate(t *testing.T) {
	sc, err := parse(t, "animate v 0 10 0 10\npoint v 0 0 1\n")
	require.NoError(t, err)
	assert.Equal(t, []scene.Animation{{From: 0, To: 10, T1: 0, T2: 10}}, sc.Animations("v"))
	assert.Len(t, sc.Commands, 1, "animate does not emit a command")

	got, err := sc.Eval(5, scene.VarVal("v"))
	require.NoError(t, err)
	assert.Equal(t, float32(5), got)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		want error
	}{
		{"line arity", "point 1 1 1 1\nline 1 2 3\n", 2, ErrArgCount},
		{"point arity", "point 1 2 3\n", 1, ErrArgCount},
		{"triangle arity", "triangle 1 2 3 4 5 6 7 8\n", 1, ErrArgCount},
		{"identity arity", "identity 1\n", 1, ErrArgCount},
		{"color range", "color 256 0 0\n", 1, ErrBadNumber},
		{"color negative", "color 1 -1 0\n", 1, ErrBadNumber},
		{"color variable", "color r 0 0\n", 1, ErrBadNumber},
		{"color arity", "color 1 2\n", 1, ErrArgCount},
		{"unknown", "\n\nsphere 1 2 3\n", 3, ErrUnknownCommand},
		{"animate arity", "animate v 0 1 2\n", 1, ErrArgCount},
		{"animate number", "animate v 0 one 0 1\n", 1, ErrBadNumber},
		{"animate overlap", "animate v 0 1 0 5\nanimate v 0 1 3 8\n", 2, scene.ErrOverlappingAnimation},
		{"animate reversed", "animate v 0 1 5 1\n", 1, scene.ErrInvalidAnimation},
		{"mesh unquoted", "mesh cube.mesh\n", 1, ErrBadPath},
		{"mesh two paths", `mesh "a" "b"` + "\n", 1, ErrBadPath},
		{"mesh missing", `mesh "does-not-exist.mesh"` + "\n", 1, ErrMissingFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := parse(t, tt.text)
			require.Error(t, err)
			assert.Nil(t, sc)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, "test.scn", perr.Path)
		})
	}
}

func TestParseErrorIdentifiesBadLine(t *testing.T) {
	_, err := parse(t, "line 1 2 3 4 5\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `test.scn:1: "line 1 2 3 4 5"`)
	assert.Contains(t, err.Error(), "expected 6 values, found 5")
}

func TestTouchingAnimationsLoad(t *testing.T) {
	sc, err := parse(t, "animate v 0 1 0 5\nanimate v 1 2 5 10\n")
	require.NoError(t, err)
	assert.Len(t, sc.Animations("v"), 2)
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "nope.scn"))
	assert.True(t, errors.Is(err, ErrMissingFile))
}

func TestLoadSceneWithMesh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meshes/tri.mesh", "points\n0 0 0\n4 0 0\n0 4 0\ntriangles\n0 1 2\n")
	path := writeFile(t, dir, "scene.scn", "color 0 0 255\nmesh \"meshes/tri.mesh\"\n")

	sc, err := LoadScene(path)
	require.NoError(t, err)
	require.Len(t, sc.Commands, 2)

	m := sc.Commands[1].(scene.Mesh)
	assert.Equal(t, "meshes/tri.mesh", m.Path)
	assert.Equal(t, []geometry.Point3{{}, {X: 4}, {Y: 4}}, m.Points)
	assert.Equal(t, []int{0, 1, 2}, m.Triangles)
}

func TestLoadSceneMeshPathWithSpaces(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "my mesh.mesh", "points\n0 0 0\ntriangles\n0 0 0\n")
	path := writeFile(t, dir, "scene.scn", `mesh "my mesh.mesh"`+"\n")

	sc, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "my mesh.mesh", sc.Commands[0].(scene.Mesh).Path)
}

func TestLoadSceneBadMeshReportsBothFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.mesh", "points\n0 0\n")
	path := writeFile(t, dir, "scene.scn", "identity\nmesh \"bad.mesh\"\n")

	_, err := LoadScene(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedMesh))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, err.Error(), "bad.mesh:2")
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.mesh", "points\n0 0 0\n1 0 0\n1 1 0\n0 1 0\ntriangles\n0 1 2\n0 2 3\n")
	text := `color 10 20 30
translate tx 50 0
rotate angle 0 0 1
scale 1.5 1.5 1
point 1 2 3 r
line 0 0 0 x y 0
triangle 0 0 0 10 0 0 0 10 0
mesh "quad.mesh"
identity
animate angle 0 360 0 4
animate tx 0 100 0 2
animate tx 100 0 2 4
animate r 1 3 0 1
animate x 0 1 0 1
animate y 1 0 0 1
`
	path := writeFile(t, dir, "scene.scn", text)
	first, err := LoadScene(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, scene.Encode(&buf, first))
	second, err := ParseScene(&buf, path)
	require.NoError(t, err)

	assert.Equal(t, first.Commands, second.Commands)
	assert.Equal(t, first.Variables(), second.Variables())
	for _, name := range first.Variables() {
		assert.Equal(t, first.Animations(name), second.Animations(name), name)
	}
}
