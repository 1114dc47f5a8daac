package scene

import (
	"errors"
	"testing"

	"Scanline/internal/geometry"
	"Scanline/internal/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogus struct{}

func (bogus) command()       {}
func (bogus) String() string { return "bogus" }

func raw3(x, y, z float32) ValPoint3 {
	return RawPoint(geometry.Point3{X: x, Y: y, Z: z})
}

func pixel(t *testing.T, s *renderer.Screen, x, y int) geometry.Color {
	t.Helper()
	c, ok := s.Pixel(x, y)
	require.True(t, ok)
	return c
}

func countLit(s *renderer.Screen) int {
	n := 0
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if c, _ := s.Pixel(x, y); c != renderer.Background {
				n++
			}
		}
	}
	return n
}

func TestDrawSceneDefaultsToWhite(t *testing.T) {
	sc := New()
	sc.Append(Point{P: raw3(5, 5, 0), Radius: RawVal(0)})

	screen := renderer.NewScreen(10, 10)
	require.NoError(t, DrawScene(screen, sc, 0))
	assert.Equal(t, geometry.White, pixel(t, screen, 5, 5))
	assert.Equal(t, 1, countLit(screen))
}

func TestDrawSceneColorPersists(t *testing.T) {
	sc := New()
	sc.Append(SetColor{Color: geometry.Red})
	sc.Append(Point{P: raw3(1, 1, 0), Radius: RawVal(0)})
	sc.Append(Translate{RawVal(5), RawVal(0), RawVal(0)})
	sc.Append(Line{P1: raw3(0, 8, 0), P2: raw3(3, 8, 0)})

	screen := renderer.NewScreen(10, 10)
	require.NoError(t, DrawScene(screen, sc, 0))
	assert.Equal(t, geometry.Red, pixel(t, screen, 1, 1))
	assert.Equal(t, geometry.Red, pixel(t, screen, 5, 8))
	assert.Equal(t, geometry.Red, pixel(t, screen, 8, 8))
	assert.Equal(t, geometry.Black, pixel(t, screen, 0, 8))
}

func TestDrawSceneComposesNewTimesCurrent(t *testing.T) {
	// scale then translate: tr = T * S, so the point is scaled first.
	sc := New()
	sc.Append(Scale{RawVal(2), RawVal(2), RawVal(1)})
	sc.Append(Translate{RawVal(1), RawVal(0), RawVal(0)})
	sc.Append(Point{P: raw3(3, 3, 0), Radius: RawVal(0)})

	screen := renderer.NewScreen(20, 20)
	require.NoError(t, DrawScene(screen, sc, 0))
	assert.Equal(t, geometry.White, pixel(t, screen, 7, 6))
	assert.Equal(t, 1, countLit(screen))
}

func TestDrawSceneIdentityResets(t *testing.T) {
	sc := New()
	sc.Append(Translate{RawVal(100), RawVal(100), RawVal(0)})
	sc.Append(Identity{})
	sc.Append(Point{P: raw3(2, 2, 0), Radius: RawVal(0)})

	screen := renderer.NewScreen(10, 10)
	require.NoError(t, DrawScene(screen, sc, 0))
	assert.Equal(t, geometry.White, pixel(t, screen, 2, 2))
}

func TestDrawSceneRotateUsesDegrees(t *testing.T) {
	sc := New()
	sc.Append(Rotate{Theta: RawVal(90), Axis: raw3(0, 0, 1)})
	sc.Append(Point{P: raw3(4, 0, 0), Radius: RawVal(0)})

	screen := renderer.NewScreen(10, 10)
	require.NoError(t, DrawScene(screen, sc, 0))
	require.Equal(t, 1, countLit(screen))

	// (4,0) turns onto (0,4) give or take float32 rounding.
	lit := pixel(t, screen, 0, 4) == geometry.White || pixel(t, screen, 0, 3) == geometry.White
	assert.True(t, lit)
}

func TestDrawSceneAnimatedPoint(t *testing.T) {
	sc := New()
	require.NoError(t, sc.AddAnimation("x", Animation{From: 0, To: 8, T1: 0, T2: 1}))
	sc.Append(Point{P: ValPoint3{VarVal("x"), RawVal(5), RawVal(0)}, Radius: RawVal(0)})

	screen := renderer.NewScreen(10, 10)
	require.NoError(t, DrawScene(screen, sc, 0.5))
	assert.Equal(t, geometry.White, pixel(t, screen, 4, 5))

	screen.Clear()
	require.NoError(t, DrawScene(screen, sc, 3))
	assert.Equal(t, geometry.White, pixel(t, screen, 8, 5))
}

func TestDrawSceneTriangleAndMesh(t *testing.T) {
	sc := New()
	sc.Append(SetColor{Color: geometry.Green})
	sc.Append(Triangle{P1: raw3(0, 0, 0), P2: raw3(4, 0, 0), P3: raw3(0, 4, 0)})
	sc.Append(SetColor{Color: geometry.Blue})
	sc.Append(Translate{RawVal(10), RawVal(10), RawVal(0)})
	sc.Append(Mesh{
		Path:      "quad.mesh",
		Points:    []geometry.Point3{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}},
		Triangles: []int{0, 1, 2},
	})

	screen := renderer.NewScreen(20, 20)
	require.NoError(t, DrawScene(screen, sc, 0))
	assert.Equal(t, geometry.Green, pixel(t, screen, 1, 1))
	assert.Equal(t, geometry.Blue, pixel(t, screen, 11, 11))
	assert.Equal(t, 30, countLit(screen))
}

func TestDrawSceneEvaluationErrorAborts(t *testing.T) {
	sc := New()
	sc.Append(Point{P: raw3(1, 1, 0), Radius: RawVal(0)})
	sc.Append(Line{P1: raw3(0, 0, 0), P2: ValPoint3{VarVal("nope"), RawVal(1), RawVal(0)}})
	sc.Append(Point{P: raw3(5, 5, 0), Radius: RawVal(0)})

	screen := renderer.NewScreen(10, 10)
	err := DrawScene(screen, sc, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndefinedVariable))
	assert.Contains(t, err.Error(), "command 1 (line 0 0 0 nope 1 0)")
	assert.Equal(t, geometry.Black, pixel(t, screen, 5, 5))
}

func TestDrawSceneUnsupportedCommand(t *testing.T) {
	sc := New()
	sc.Append(bogus{})

	err := DrawScene(renderer.NewScreen(4, 4), sc, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedCommand))
	assert.Contains(t, err.Error(), "bogus")
}

func TestDrawSceneNegativeRadiusDrawsNothing(t *testing.T) {
	sc := New()
	sc.Append(Point{P: raw3(5, 5, 0), Radius: RawVal(-3)})

	screen := renderer.NewScreen(10, 10)
	require.NoError(t, DrawScene(screen, sc, 0))
	assert.Equal(t, 0, countLit(screen))
}
