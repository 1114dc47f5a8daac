package scene

import (
	"fmt"
	"strconv"
)

// Animation interpolates a variable linearly from From to To over the closed
// window [T1, T2].
type Animation struct {
	From, To float32
	T1, T2   float32
}

func (a Animation) contains(t float32) bool {
	return a.T1 <= t && t <= a.T2
}

// at interpolates inside the window. A single-instant window yields To.
func (a Animation) at(t float32) float32 {
	if a.T2 == a.T1 {
		return a.To
	}
	return a.From + (a.To-a.From)*(t-a.T1)/(a.T2-a.T1)
}

// Overlaps reports whether an endpoint of either window lies strictly inside
// the other. Windows that only touch at an endpoint do not overlap, and
// neither do two equal windows.
func (a Animation) Overlaps(b Animation) bool {
	return (a.T1 < b.T1 && b.T1 < a.T2) ||
		(a.T1 < b.T2 && b.T2 < a.T2) ||
		(b.T1 < a.T1 && a.T1 < b.T2) ||
		(b.T1 < a.T2 && a.T2 < b.T2)
}

func (a Animation) String() string {
	return fmt.Sprintf("%s %s %s %s", ftoa(a.From), ftoa(a.To), ftoa(a.T1), ftoa(a.T2))
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
