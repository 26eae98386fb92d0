// Package device implements the transmitter/receiver field-of-view filter:
// given a device's pose, horizontal/vertical FOV, and range, it reports
// which points of a cloud fall inside its viewing frustum.
package device

import (
	"math"

	"github.com/banshee-data/velocity.report/internal/sim/geom"
	"github.com/banshee-data/velocity.report/internal/sim/spatial"
)

// Device is a directional transmitter or receiver: a pose (via its Node),
// a horizontal and vertical field of view, and a nominal range.
type Device struct {
	node             *spatial.Node
	name             string
	horizontalFovRad float32
	verticalFovRad   float32
	rangeMeters      float32
}

// NewDevice returns a device with FOVs and range already in radians/meters.
func NewDevice(name string, node *spatial.Node, horizontalFovRad, verticalFovRad, rangeMeters float32) *Device {
	return &Device{node: node, name: name, horizontalFovRad: horizontalFovRad, verticalFovRad: verticalFovRad, rangeMeters: rangeMeters}
}

func (d *Device) Node() *spatial.Node    { return d.node }
func (d *Device) Name() string           { return d.name }
func (d *Device) HorizontalFovRad() float32 { return d.horizontalFovRad }
func (d *Device) VerticalFovRad() float32   { return d.verticalFovRad }
func (d *Device) Range() float32            { return d.rangeMeters }

// Origin returns the device's world-space position.
func (d *Device) Origin() geom.Point {
	return d.node.GlobalTransform().Position
}

// Forward returns the device's world-space forward direction (local +Z).
func (d *Device) Forward() geom.Vector {
	return d.node.GlobalTransform().ForwardDirection()
}

// frustumEdgeVectors returns the four corner-ray vectors v_k = corner_k - O
// delimiting the device's truncated-pyramid far plane, in world space.
// Corners are built in the device-local frame with local +Z as the range
// axis: (-halfW, halfH, R), (halfW, halfH, R), (halfW, -halfH, R), (-halfW, -halfH, R).
func (d *Device) frustumEdgeVectors() [4]geom.Vector {
	global := d.node.GlobalTransform()
	halfW := d.rangeMeters * float32(math.Tan(float64(d.horizontalFovRad)/2))
	halfH := d.rangeMeters * float32(math.Tan(float64(d.verticalFovRad)/2))

	localCorners := [4]geom.Vector{
		{X: -halfW, Y: halfH, Z: d.rangeMeters},
		{X: halfW, Y: halfH, Z: d.rangeMeters},
		{X: halfW, Y: -halfH, Z: d.rangeMeters},
		{X: -halfW, Y: -halfH, Z: d.rangeMeters},
	}

	var v [4]geom.Vector
	for i, c := range localCorners {
		worldCorner := global.Position.Add(geom.RotatePointByEuler(c, global.Orientation))
		v[i] = worldCorner.Sub(global.Position)
	}
	return v
}

// PointsInFov returns the subset of pcd's points that fall inside the
// device's viewing frustum. Points at or behind the plane through the
// device origin perpendicular to forward are dropped. For every other point
// p, each of the four corner rays (origin + t*v_k) is intersected with the
// plane through p perpendicular to forward, giving the frustum's
// cross-section at p's depth, and p is kept iff it lies inside that convex
// quadrilateral (boundary inclusive). Range only sets the angular extent of
// the corner rays; points beyond range are not cut off.
func (d *Device) PointsInFov(pcd *geom.PointCloud) *geom.PointCloud {
	origin := d.Origin()
	forward := d.Forward()
	edges := d.frustumEdgeVectors()

	visible := geom.NewPointCloud(pcd.Len())
	for _, p := range pcd.Points() {
		if forward.Dot(p.Sub(origin)) <= 0 {
			continue
		}
		var corners [4]geom.Point
		ok := true
		for i, v := range edges {
			hit, hitOk := geom.LineHitsPlane(p, forward, origin, v)
			if !hitOk {
				ok = false
				break
			}
			corners[i] = hit
		}
		if !ok {
			continue
		}
		if geom.PointInConvexQuad(p, corners[0], corners[1], corners[2], corners[3]) {
			visible.Append(p)
		}
	}
	return visible
}

// ComposeFOV filters cloud through tx's frustum, then through rx's: the
// straightforward two-stage reference composition that any single-pass
// prefiltered variant (see solver) must match exactly.
func ComposeFOV(tx, rx *Device, cloud *geom.PointCloud) *geom.PointCloud {
	return rx.PointsInFov(tx.PointsInFov(cloud))
}
