package scene

import (
	"fmt"
	"strconv"
	"strings"

	"Scanline/internal/geometry"
)

// Command is one line of a scene. The concrete types below are the complete
// set of variants; String renders the line the parser accepts.
type Command interface {
	fmt.Stringer
	command()
}

type Point struct {
	P      ValPoint3
	Radius Val
}

type Line struct {
	P1, P2 ValPoint3
}

type Triangle struct {
	P1, P2, P3 ValPoint3
}

// Mesh is an indexed triangle list loaded from a mesh file. Every entry of
// Triangles indexes Points and len(Triangles) is a multiple of 3.
type Mesh struct {
	Path      string
	Points    []geometry.Point3
	Triangles []int
}

// Identity resets the accumulated transform.
type Identity struct{}

type Translate struct {
	X, Y, Z Val
}

type Scale struct {
	X, Y, Z Val
}

// Rotate turns by Theta degrees about Axis.
type Rotate struct {
	Theta Val
	Axis  ValPoint3
}

// SetColor changes the draw color for subsequent geometry.
type SetColor struct {
	Color geometry.Color
}

func (Point) command()     {}
func (Line) command()      {}
func (Triangle) command()  {}
func (Mesh) command()      {}
func (Identity) command()  {}
func (Translate) command() {}
func (Scale) command()     {}
func (Rotate) command()    {}
func (SetColor) command()  {}

func (c Point) String() string {
	return "point " + c.P.String() + " " + c.Radius.String()
}

func (c Line) String() string {
	return "line " + c.P1.String() + " " + c.P2.String()
}

func (c Triangle) String() string {
	return "triangle " + c.P1.String() + " " + c.P2.String() + " " + c.P3.String()
}

func (c Mesh) String() string {
	return "mesh " + strconv.Quote(c.Path)
}

func (Identity) String() string { return "identity" }

func (c Translate) String() string {
	return strings.Join([]string{"translate", c.X.String(), c.Y.String(), c.Z.String()}, " ")
}

func (c Scale) String() string {
	return strings.Join([]string{"scale", c.X.String(), c.Y.String(), c.Z.String()}, " ")
}

func (c Rotate) String() string {
	return "rotate " + c.Theta.String() + " " + c.Axis.String()
}

func (c SetColor) String() string {
	return "color " + c.Color.String()
}
