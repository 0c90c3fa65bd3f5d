// Package geom provides ground-plane (XZ) triangle predicates used for height
// sampling on navigation meshes and terrain.
package geom

import (
	"errors"

	"scene-toolkit/core/scene"

	"github.com/chewxy/math32"
)

// ErrDegenerateTriangle is returned when a triangle has no area on the XZ plane.
var ErrDegenerateTriangle = errors.New("triangle is degenerate on the XZ plane")

// Sign returns the 2D cross product of (p1-p3) and (p2-p3) on the XZ plane.
// Y is ignored.
func Sign(p1, p2, p3 scene.Vector3) float32 {
	return (p1.X-p3.X)*(p2.Z-p3.Z) - (p2.X-p3.X)*(p1.Z-p3.Z)
}

// PointInTriangle reports whether p lies inside triangle abc on the XZ plane.
// Points on edges and vertices count as inside, for either winding.
func PointInTriangle(p, a, b, c scene.Vector3) bool {
	d1 := Sign(p, a, b)
	d2 := Sign(p, b, c)
	d3 := Sign(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// YFromTriangle returns the height of the plane through abc at p's X and Z.
func YFromTriangle(p, a, b, c scene.Vector3) (float32, error) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	xy := ab.X*ac.Y - ac.X*ab.Y
	xz := ab.X*ac.Z - ac.X*ab.Z
	zy := ab.Z*ac.Y - ac.Z*ab.Y
	if xz == 0 {
		return 0, ErrDegenerateTriangle
	}

	y := a.Y + xy/xz*(p.Z-a.Z) - zy/xz*(p.X-a.X)
	if math32.IsNaN(y) || math32.IsInf(y, 0) {
		return 0, ErrDegenerateTriangle
	}
	return y, nil
}
