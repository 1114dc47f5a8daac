// Package scene holds a parsed scene: its command list and the animation
// table that resolves variables at a given time.
package scene

import (
	"sort"

	"Scanline/internal/geometry"

	"github.com/pkg/errors"
)

// Scene is built once by the loader and not mutated while it is drawn.
// A reload replaces the whole value.
type Scene struct {
	Commands []Command
	vars     map[string][]Animation
}

func New() *Scene {
	return &Scene{vars: make(map[string][]Animation)}
}

func (s *Scene) Append(cmd Command) {
	s.Commands = append(s.Commands, cmd)
}

// AddAnimation registers a keyframe segment for name. Segments for one
// variable may not overlap. A new segment goes before the first stored one
// starting after it ends, or last if there is none.
func (s *Scene) AddAnimation(name string, a Animation) error {
	if a.T1 > a.T2 {
		return errors.Wrapf(ErrInvalidAnimation, "var %q window [%v, %v]", name, a.T1, a.T2)
	}
	if s.vars == nil {
		s.vars = make(map[string][]Animation)
	}

	anims := s.vars[name]
	for _, other := range anims {
		if a.Overlaps(other) {
			return errors.Wrapf(ErrOverlappingAnimation,
				"animation for var %q [%v, %v] overlaps [%v, %v]", name, a.T1, a.T2, other.T1, other.T2)
		}
	}

	i := sort.Search(len(anims), func(i int) bool { return anims[i].T1 > a.T2 })
	anims = append(anims, Animation{})
	copy(anims[i+1:], anims[i:])
	anims[i] = a
	s.vars[name] = anims
	return nil
}

// Animations returns a copy of the segments registered for name.
func (s *Scene) Animations(name string) []Animation {
	return append([]Animation(nil), s.vars[name]...)
}

// Variables lists animated variable names in sorted order.
func (s *Scene) Variables() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eval resolves v at time t. Inside a window the value is interpolated;
// after the latest finished window its end value is held. Before every
// window there is no value.
func (s *Scene) Eval(t float32, v Val) (float32, error) {
	if !v.IsVar() {
		return v.Raw, nil
	}

	anims, ok := s.vars[v.Name]
	if !ok {
		return 0, errors.Wrapf(ErrUndefinedVariable, "var %q not defined", v.Name)
	}

	var held *Animation
	for i := range anims {
		a := &anims[i]
		if a.contains(t) {
			return a.at(t), nil
		}
		if a.T2 < t && (held == nil || a.T2 > held.T2) {
			held = a
		}
	}
	if held == nil {
		return 0, errors.Wrapf(ErrNoMatchingAnimation, "var %q has no animation at time %v", v.Name, t)
	}
	return held.To, nil
}

func (s *Scene) EvalPoint(t float32, p ValPoint3) (geometry.Point3, error) {
	x, err := s.Eval(t, p.X)
	if err != nil {
		return geometry.Point3{}, err
	}
	y, err := s.Eval(t, p.Y)
	if err != nil {
		return geometry.Point3{}, err
	}
	z, err := s.Eval(t, p.Z)
	if err != nil {
		return geometry.Point3{}, err
	}
	return geometry.Point3{X: x, Y: y, Z: z}, nil
}
