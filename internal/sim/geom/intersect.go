package geom

import "math"

// epsilon is the tolerance used for parallel-line and boundary tests
// throughout the geometry primitives.
const epsilon = 1e-6

// LineHitsPlane intersects the line through lineOrigin in direction
// lineDirection with the plane through planePoint with normal planeNormal.
// It returns the hit point and true, or the zero point and false if the
// line is parallel to the plane (|dot(n, d)| < epsilon). No near-clip is
// performed: a negative t (a plane behind the ray origin) is a valid hit.
func LineHitsPlane(planePoint Point, planeNormal Vector, lineOrigin Point, lineDirection Vector) (Point, bool) {
	denom := planeNormal.Dot(lineDirection)
	if float32(math.Abs(float64(denom))) < epsilon {
		return Point{}, false
	}
	t := planeNormal.Dot(planePoint.Sub(lineOrigin)) / denom
	return lineOrigin.Add(lineDirection.Scale(t)), true
}

// PointInConvexQuad reports whether p lies inside the planar convex
// quadrilateral a->b->c->d (given in winding order). For every consecutive
// edge (x, y) the sign of (y-x) x (p-x) . n must be non-negative, where n is
// the quad's normal (b-a) x (c-a). Boundary points (within epsilon of zero)
// are treated as inside.
func PointInConvexQuad(p, a, b, c, d Point) bool {
	normal := b.Sub(a).Cross(c.Sub(a))

	edges := [4][2]Point{{a, b}, {b, c}, {c, d}, {d, a}}
	for _, edge := range edges {
		x, y := edge[0], edge[1]
		edgeVec := y.Sub(x)
		toPoint := p.Sub(x)
		side := edgeVec.Cross(toPoint).Dot(normal)
		if side < -epsilon {
			return false
		}
	}
	return true
}
