package renderer

import (
	"math"
	"sort"

	"Scanline/internal/geometry"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FillRow writes every pixel of row y between x1 and x2 inclusive.
// The range is clipped to the buffer.
func (s *Screen) FillRow(y, x1, x2 int, c geometry.Color) {
	if y < 0 || y >= s.Height {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x2 < 0 || x1 >= s.Width {
		return
	}
	x1 = clamp(x1, 0, s.Width-1)
	x2 = clamp(x2, 0, s.Width-1)
	for x := x1; x <= x2; x++ {
		s.set(x, y, c)
	}
}

// FillCol writes every pixel of column x between y1 and y2 inclusive.
// The range is clipped to the buffer.
func (s *Screen) FillCol(x, y1, y2 int, c geometry.Color) {
	if x < 0 || x >= s.Width {
		return
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if y2 < 0 || y1 >= s.Height {
		return
	}
	y1 = clamp(y1, 0, s.Height-1)
	y2 = clamp(y2, 0, s.Height-1)
	for y := y1; y <= y2; y++ {
		s.set(x, y, c)
	}
}

// DrawPoint fills the square of side 2*radius+1 centred on center.
// A negative radius draws nothing.
func (s *Screen) DrawPoint(center geometry.PointScreen, radius int, c geometry.Color) {
	if radius < 0 {
		return
	}
	top := clamp(center.Y-radius, 0, s.Height)
	bot := clamp(center.Y+radius, -1, s.Height-1)
	for y := top; y <= bot; y++ {
		s.FillRow(y, center.X-radius, center.X+radius, c)
	}
}

// DrawLine rasterizes the segment p1-p2 one pixel per step along the major
// axis. The minor coordinate is interpolated with truncating integer
// division. Endpoints are ordered so the major axis always increases, which
// makes the result independent of argument order.
func (s *Screen) DrawLine(p1, p2 geometry.PointScreen, c geometry.Color) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y

	if abs(dx) >= abs(dy) {
		if dx == 0 {
			// dy is zero too: a single pixel
			s.SetPixel(p1.X, p1.Y, c)
			return
		}
		if dy == 0 {
			s.FillRow(p1.Y, p1.X, p2.X, c)
			return
		}
		if p1.X > p2.X {
			p1, p2 = p2, p1
			dx, dy = -dx, -dy
		}
		x0, x1 := clamp(p1.X, 0, s.Width), clamp(p2.X, -1, s.Width-1)
		for x := x0; x <= x1; x++ {
			i := x - p1.X
			s.SetPixel(x, p1.Y+i*dy/dx, c)
		}
		return
	}

	if dx == 0 {
		s.FillCol(p1.X, p1.Y, p2.Y, c)
		return
	}
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
		dx, dy = -dx, -dy
	}
	y0, y1 := clamp(p1.Y, 0, s.Height), clamp(p2.Y, -1, s.Height-1)
	for y := y0; y <= y1; y++ {
		i := y - p1.Y
		s.SetPixel(p1.X+i*dx/dy, y, c)
	}
}

// DrawTriangle fills the triangle p1 p2 p3 by splitting it at the middle
// vertex into a flat-bottom and a flat-top triangle.
//
// Vertices are ordered by descending y; vertices with equal y keep their
// argument order. A triangle whose vertices share one row draws nothing.
func (s *Screen) DrawTriangle(p1, p2, p3 geometry.PointScreen, c geometry.Color) {
	v := [3]geometry.PointScreen{p1, p2, p3}
	sort.SliceStable(v[:], func(i, j int) bool { return v[i].Y > v[j].Y })
	bot, mid, top := v[0], v[1], v[2]

	// mid2 sits on the top-bot edge at mid's row.
	mid2X := float64(top.X)
	if dy := bot.Y - top.Y; dy != 0 {
		mid2X = float64(top.X) + float64(mid.Y-top.Y)*float64(bot.X-top.X)/float64(dy)
	}

	s.fillFlat(top, mid.Y, float64(mid.X), mid2X, c)
	s.fillFlat(bot, mid.Y, float64(mid.X), mid2X, c)
}

// fillFlat fills the triangle with the given apex and a horizontal edge on
// row edgeY whose ends are at ax and bx. Rows are clipped to the buffer.
func (s *Screen) fillFlat(apex geometry.PointScreen, edgeY int, ax, bx float64, c geometry.Color) {
	dy := edgeY - apex.Y
	if dy == 0 {
		return
	}

	lo, hi := apex.Y, edgeY
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 0 || lo >= s.Height {
		return
	}
	lo = clamp(lo, 0, s.Height-1)
	hi = clamp(hi, 0, s.Height-1)

	px := float64(apex.X)
	for y := lo; y <= hi; y++ {
		t := float64(y-apex.Y) / float64(dy)
		xa := px + t*(ax-px)
		xb := px + t*(bx-px)
		left := math.Round(math.Min(xa, xb))
		right := math.Round(math.Max(xa, xb))
		s.FillRow(y, clampToInt(left), clampToInt(right), c)
	}
}

// clampToInt keeps far off-screen spans from overflowing int conversion.
func clampToInt(f float64) int {
	const limit = 1 << 30
	if f < -limit {
		return -limit
	}
	if f > limit {
		return limit
	}
	return int(f)
}
