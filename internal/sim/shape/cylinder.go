package shape

import (
	"math"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
)

// Cylinder is a shape with its axis along local +Z, sampled on its owning
// node's global transform.
type Cylinder struct {
	node   *spatial.Node
	name   string
	radius float32
	height float32
	cache  meshCache
}

// NewCylinder returns a cylinder of the given radius and height attached to node.
func NewCylinder(name string, node *spatial.Node, radius, height float32) *Cylinder {
	return &Cylinder{node: node, name: name, radius: radius, height: height}
}

func (c *Cylinder) Node() *spatial.Node { return c.node }
func (c *Cylinder) Name() string        { return c.name }
func (c *Cylinder) Radius() float32     { return c.radius }
func (c *Cylinder) Height() float32     { return c.height }

// SurfaceMesh samples two discs of circRes = max(8, quality) points at
// z = +-h/2, plus a side surface of circRes x heightRes points
// (heightRes = max(2, quality/2)), all rotated and translated by the
// node's global transform. The result is cached until quality or the
// global transform changes.
func (c *Cylinder) SurfaceMesh(quality int) *geom.PointCloud {
	global := c.node.GlobalTransform()
	if mesh, ok := c.cache.lookup(quality, global); ok {
		return mesh
	}

	circRes := maxInt(8, quality)
	heightRes := maxInt(2, quality/2)
	halfHeight := c.height / 2.0

	cloud := geom.NewPointCloud(2*circRes + circRes*heightRes)

	for _, z := range [2]float32{-halfHeight, halfHeight} {
		for i := 0; i < circRes; i++ {
			angle := 2.0 * math.Pi * float64(i) / float64(circRes)
			local := geom.Vector{
				X: c.radius * float32(math.Cos(angle)),
				Y: c.radius * float32(math.Sin(angle)),
				Z: z,
			}
			cloud.Append(worldPoint(local, global))
		}
	}

	for i := 0; i < circRes; i++ {
		angle := 2.0 * math.Pi * float64(i) / float64(circRes)
		cosA := c.radius * float32(math.Cos(angle))
		sinA := c.radius * float32(math.Sin(angle))
		base := geom.Vector{X: cosA, Y: sinA, Z: -halfHeight}
		top := geom.Vector{X: cosA, Y: sinA, Z: halfHeight}

		for j := 0; j < heightRes; j++ {
			t := float32(j) / float32(heightRes-1)
			local := base.Add(top.Sub(base).Scale(t))
			cloud.Append(worldPoint(local, global))
		}
	}

	c.cache.store(quality, global, cloud)
	return cloud
}
