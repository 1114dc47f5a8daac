package scene

import (
	"Scanline/internal/geometry"
	"Scanline/internal/renderer"
	"Scanline/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// DrawScene executes the command list at time t against screen.
//
// The accumulated transform starts at the identity and the draw color at
// white. Each transform command is composed as new*current. The first
// evaluation error aborts the pass.
func DrawScene(screen *renderer.Screen, s *Scene, t float32) error {
	tr := transform.Identity
	color := geometry.White

	for i, cmd := range s.Commands {
		var err error
		switch c := cmd.(type) {
		case Point:
			err = s.drawPoint(screen, t, tr, c, color)
		case Line:
			err = s.drawLine(screen, t, tr, c, color)
		case Triangle:
			err = s.drawTriangle(screen, t, tr, c, color)
		case Mesh:
			screen.DrawMesh(tr, c.Points, c.Triangles, color)
		case Identity:
			tr = transform.Identity
		case Translate:
			var next transform.Transform
			if next, err = s.evalTranslate(t, c); err == nil {
				tr = next.Mul(tr)
			}
		case Scale:
			var next transform.Transform
			if next, err = s.evalScale(t, c); err == nil {
				tr = next.Mul(tr)
			}
		case Rotate:
			var next transform.Transform
			if next, err = s.evalRotate(t, c); err == nil {
				tr = next.Mul(tr)
			}
		case SetColor:
			color = c.Color
		default:
			err = ErrUnsupportedCommand
		}
		if err != nil {
			return errors.Wrapf(err, "command %d (%v)", i, cmd)
		}
	}
	return nil
}

func (s *Scene) project(t float32, tr transform.Transform, p ValPoint3) (geometry.PointScreen, error) {
	pt, err := s.EvalPoint(t, p)
	if err != nil {
		return geometry.PointScreen{}, err
	}
	return tr.Apply(pt).Screen(), nil
}

func (s *Scene) drawPoint(screen *renderer.Screen, t float32, tr transform.Transform, c Point, color geometry.Color) error {
	p, err := s.project(t, tr, c.P)
	if err != nil {
		return err
	}
	r, err := s.Eval(t, c.Radius)
	if err != nil {
		return err
	}
	screen.DrawPoint(p, radius(r), color)
	return nil
}

// radius truncates r, mapping NaN to nothing drawn and capping huge values.
func radius(r float32) int {
	const limit = 1 << 24
	switch {
	case r != r, r <= -1:
		return -1
	case r > limit:
		return limit
	}
	return int(r)
}

func (s *Scene) drawLine(screen *renderer.Screen, t float32, tr transform.Transform, c Line, color geometry.Color) error {
	p1, err := s.project(t, tr, c.P1)
	if err != nil {
		return err
	}
	p2, err := s.project(t, tr, c.P2)
	if err != nil {
		return err
	}
	screen.DrawLine(p1, p2, color)
	return nil
}

func (s *Scene) drawTriangle(screen *renderer.Screen, t float32, tr transform.Transform, c Triangle, color geometry.Color) error {
	var v [3]geometry.PointScreen
	for i, p := range [3]ValPoint3{c.P1, c.P2, c.P3} {
		var err error
		if v[i], err = s.project(t, tr, p); err != nil {
			return err
		}
	}
	screen.DrawTriangle(v[0], v[1], v[2], color)
	return nil
}

func (s *Scene) evalTranslate(t float32, c Translate) (transform.Transform, error) {
	p, err := s.EvalPoint(t, ValPoint3{c.X, c.Y, c.Z})
	if err != nil {
		return transform.Transform{}, err
	}
	return transform.Translate(p.X, p.Y, p.Z), nil
}

func (s *Scene) evalScale(t float32, c Scale) (transform.Transform, error) {
	p, err := s.EvalPoint(t, ValPoint3{c.X, c.Y, c.Z})
	if err != nil {
		return transform.Transform{}, err
	}
	return transform.Scale(p.X, p.Y, p.Z), nil
}

func (s *Scene) evalRotate(t float32, c Rotate) (transform.Transform, error) {
	theta, err := s.Eval(t, c.Theta)
	if err != nil {
		return transform.Transform{}, err
	}
	axis, err := s.EvalPoint(t, c.Axis)
	if err != nil {
		return transform.Transform{}, err
	}
	return transform.Rotate(mgl32.DegToRad(theta), axis), nil
}
