// Package shape implements the surface-point samplers (Cube, Cylinder) that
// contribute static geometry to a scene, and the mesh cache shared by both.
package shape

import (
	"math"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
)

// Shape is anything that can sample its own surface into a point cloud at a
// given quality, and report the node whose global transform it samples
// against.
type Shape interface {
	SurfaceMesh(quality int) *geom.PointCloud
	Node() *spatial.Node
	Name() string
}

// meshCache memoizes the last surface mesh computed for a shape, keyed on
// quality and the node's global transform value. It is invalidated whenever
// the owning node's global transform changes or the cached quality differs
// from the requested one.
type meshCache struct {
	quality  int
	global   spatial.Transform
	haveMesh bool
	mesh     *geom.PointCloud
}

func (c *meshCache) lookup(quality int, global spatial.Transform) (*geom.PointCloud, bool) {
	if c.haveMesh && c.quality == quality && c.global == global {
		return c.mesh, true
	}
	return nil, false
}

func (c *meshCache) store(quality int, global spatial.Transform, mesh *geom.PointCloud) {
	c.quality = quality
	c.global = global
	c.mesh = mesh
	c.haveMesh = true
}

func roundSqrt(quality int) int {
	n := int(math.Round(math.Sqrt(float64(quality))))
	if n < 2 {
		return 2
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func worldPoint(local geom.Vector, global spatial.Transform) geom.Point {
	rotated := geom.RotatePointByEuler(local, global.Orientation)
	return global.Position.Add(rotated)
}
