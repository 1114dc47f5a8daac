package renderer

import (
	"Scanline/internal/geometry"
	"Scanline/internal/transform"
)

// DrawMesh transforms every vertex once and fills one triangle per index
// triple. Indices must be valid for points; the loader guarantees this for
// scene meshes.
func (s *Screen) DrawMesh(tr transform.Transform, points []geometry.Point3, triangles []int, c geometry.Color) {
	projected := make([]geometry.PointScreen, len(points))
	for i, p := range points {
		projected[i] = tr.Apply(p).Screen()
	}
	for i := 0; i+2 < len(triangles); i += 3 {
		s.DrawTriangle(projected[triangles[i]], projected[triangles[i+1]], projected[triangles[i+2]], c)
	}
}
