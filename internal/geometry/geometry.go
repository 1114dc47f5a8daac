package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
)

func (c Color) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

type Point3 struct {
	X, Y, Z float32
}

func (p Point3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

func FromVec3(v mgl32.Vec3) Point3 {
	return Point3{v[0], v[1], v[2]}
}

// Mul scales every component by s.
func (p Point3) Mul(s float32) Point3 {
	return FromVec3(p.Vec3().Mul(s))
}

// Magnitude is the Euclidean norm.
func (p Point3) Magnitude() float32 {
	return p.Vec3().Len()
}

// screenLimit bounds converted coordinates far outside any buffer while
// leaving room for the rasterizer's integer arithmetic.
const screenLimit = 1 << 30

// Screen truncates x and y toward zero. The z component is dropped.
// Coordinates beyond ±1<<30 saturate, and NaN maps to -1<<30.
func (p Point3) Screen() PointScreen {
	return PointScreen{X: toScreen(p.X), Y: toScreen(p.Y)}
}

func toScreen(f float32) int {
	switch {
	case f != f, f <= -screenLimit:
		return -screenLimit
	case f >= screenLimit:
		return screenLimit
	}
	return int(f)
}

// PointScreen is a pixel coordinate. X grows to the right, Y grows downward.
// Coordinates may lie outside the buffer; the rasterizer clips them.
type PointScreen struct {
	X, Y int
}
