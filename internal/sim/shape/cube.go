package shape

import "github.com/banshee-data/velocity.report/internal/sim/geom"
import "github.com/banshee-data/velocity.report/internal/sim/spatial"

// faceConfig pairs a face's outward normal with two orthonormal in-plane
// basis vectors, matching the six-face enumeration of a cube.
type faceConfig struct {
	normal, u, v geom.Vector
}

var cubeFaces = [6]faceConfig{
	{geom.Vector{X: 1}, geom.Vector{Y: 1}, geom.Vector{Z: 1}},
	{geom.Vector{X: -1}, geom.Vector{Y: 1}, geom.Vector{Z: 1}},
	{geom.Vector{Y: 1}, geom.Vector{X: 1}, geom.Vector{Z: 1}},
	{geom.Vector{Y: -1}, geom.Vector{X: 1}, geom.Vector{Z: 1}},
	{geom.Vector{Z: 1}, geom.Vector{X: 1}, geom.Vector{Y: 1}},
	{geom.Vector{Z: -1}, geom.Vector{X: 1}, geom.Vector{Y: 1}},
}

// Cube is an axis-aligned (in its local frame) cube shape sampled on its
// owning node's global transform.
type Cube struct {
	node      *spatial.Node
	name      string
	dimension float32
	cache     meshCache
}

// NewCube returns a cube of the given edge length attached to node.
func NewCube(name string, node *spatial.Node, dimension float32) *Cube {
	return &Cube{node: node, name: name, dimension: dimension}
}

func (c *Cube) Node() *spatial.Node { return c.node }
func (c *Cube) Name() string        { return c.name }

// Dimension returns the cube's edge length.
func (c *Cube) Dimension() float32 { return c.dimension }

// SurfaceMesh samples n*n points per face (n = max(2, round(sqrt(quality)))),
// for 6*n^2 points total, each rotated and translated by the node's global
// transform. The result is cached until quality or the global transform changes.
func (c *Cube) SurfaceMesh(quality int) *geom.PointCloud {
	global := c.node.GlobalTransform()
	if mesh, ok := c.cache.lookup(quality, global); ok {
		return mesh
	}

	n := roundSqrt(quality)
	half := c.dimension / 2.0

	cloud := geom.NewPointCloud(6 * n * n)
	step := c.dimension / float32(n-1)

	for _, face := range cubeFaces {
		center := face.normal.Scale(half)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				offset := face.u.Scale(-half+float32(i)*step).Add(face.v.Scale(-half + float32(j)*step))
				local := center.Add(offset)
				cloud.Append(worldPoint(local, global))
			}
		}
	}

	c.cache.store(quality, global, cloud)
	return cloud
}
