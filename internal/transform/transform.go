// Package transform implements the 4x4 affine matrices used to place scene
// geometry. Matrices are stored row-major and points are column vectors, so
// a.Mul(b).Apply(p) applies b first.
package transform

import (
	"Scanline/internal/geometry"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a row-major 4x4 matrix in homogeneous coordinates.
type Transform [16]float32

var Identity = Transform{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func Scale(x, y, z float32) Transform {
	return Transform{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func Translate(x, y, z float32) Transform {
	return Transform{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// RotateZ rotates counter-clockwise about the z axis by theta radians.
func RotateZ(theta float32) Transform {
	s, c := math32.Sincos(theta)
	return Transform{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotate rotates by theta radians about axis. The rotation is built as a
// change of basis taking axis onto z, a z rotation, and the way back. An axis
// with no xy component (including the zero vector) yields RotateZ(theta).
func Rotate(theta float32, axis geometry.Point3) Transform {
	if axis.X == 0 && axis.Y == 0 {
		return RotateZ(theta)
	}

	n := axis.Magnitude()
	ux, uy, uz := axis.X/n, axis.Y/n, axis.Z/n
	d := math32.Sqrt(ux*ux + uy*uy)

	// Columns are an orthonormal right-handed frame whose third vector is the axis.
	basis := Transform{
		ux * uz / d, -uy / d, ux, 0,
		uy * uz / d, ux / d, uy, 0,
		-d, 0, uz, 0,
		0, 0, 0, 1,
	}
	return basis.Mul(RotateZ(theta)).Mul(basis.Transpose())
}

// At returns the element at row r, column c.
func (t Transform) At(r, c int) float32 {
	return t[r*4+c]
}

func (t Transform) Transpose() Transform {
	var out Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = t[r*4+c]
		}
	}
	return out
}

// Mul returns t*b.
func (t Transform) Mul(b Transform) Transform {
	var out Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = t[r*4]*b[c] + t[r*4+1]*b[4+c] + t[r*4+2]*b[8+c] + t[r*4+3]*b[12+c]
		}
	}
	return out
}

// Apply multiplies p as (x, y, z, 1). The resulting w is discarded; there is
// no perspective divide.
func (t Transform) Apply(p geometry.Point3) geometry.Point3 {
	return geometry.Point3{
		X: t[0]*p.X + t[1]*p.Y + t[2]*p.Z + t[3],
		Y: t[4]*p.X + t[5]*p.Y + t[6]*p.Z + t[7],
		Z: t[8]*p.X + t[9]*p.Y + t[10]*p.Z + t[11],
	}
}

// Mat4 converts to the column-major layout used by mathgl.
func (t Transform) Mat4() mgl32.Mat4 {
	var m mgl32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, t[r*4+c])
		}
	}
	return m
}

func FromMat4(m mgl32.Mat4) Transform {
	var t Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[r*4+c] = m.At(r, c)
		}
	}
	return t
}
