package geom

import "testing"

func TestLineHitsPlane(t *testing.T) {
	planePoint := Point{Z: 5}
	planeNormal := Vector{Z: 1}
	origin := Point{}
	dir := Vector{Z: 1}

	hit, ok := LineHitsPlane(planePoint, planeNormal, origin, dir)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit != (Point{Z: 5}) {
		t.Errorf("hit = %v, want (0,0,5)", hit)
	}
}

func TestLineHitsPlaneParallel(t *testing.T) {
	planePoint := Point{Z: 5}
	planeNormal := Vector{Z: 1}
	origin := Point{}
	dir := Vector{X: 1}

	if _, ok := LineHitsPlane(planePoint, planeNormal, origin, dir); ok {
		t.Error("expected no hit for a line parallel to the plane")
	}
}

func TestPointInConvexQuad(t *testing.T) {
	a := Point{X: -1, Y: -1}
	b := Point{X: 1, Y: -1}
	c := Point{X: 1, Y: 1}
	d := Point{X: -1, Y: 1}

	inside := Point{X: 0, Y: 0}
	outside := Point{X: 2, Y: 2}
	boundary := Point{X: 1, Y: 0}

	if !PointInConvexQuad(inside, a, b, c, d) {
		t.Error("expected center point to be inside")
	}
	if PointInConvexQuad(outside, a, b, c, d) {
		t.Error("expected far point to be outside")
	}
	if !PointInConvexQuad(boundary, a, b, c, d) {
		t.Error("expected boundary point to be considered inside")
	}
}
