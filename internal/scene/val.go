package scene

import "Scanline/internal/geometry"

// Val is a scene parameter: either a literal or a reference to an animated
// variable. The zero value is the literal 0.
type Val struct {
	Raw  float32
	Name string
}

func RawVal(x float32) Val { return Val{Raw: x} }

func VarVal(name string) Val { return Val{Name: name} }

func (v Val) IsVar() bool { return v.Name != "" }

func (v Val) String() string {
	if v.IsVar() {
		return v.Name
	}
	return ftoa(v.Raw)
}

type ValPoint3 struct {
	X, Y, Z Val
}

func RawPoint(p geometry.Point3) ValPoint3 {
	return ValPoint3{RawVal(p.X), RawVal(p.Y), RawVal(p.Z)}
}

func (p ValPoint3) String() string {
	return p.X.String() + " " + p.Y.String() + " " + p.Z.String()
}
