// Package spatial implements the rigid-transform scene graph: local
// transforms composed through a tree of nodes with lazy global-transform
// recomputation.
package spatial

import "github.com/banshee-data/velocity.report/internal/sim/geom"

// Transform is a rigid pose: a position plus an orientation expressed as
// Euler angles (roll X, pitch Y, yaw Z) in radians, composed Rz . Ry . Rx.
type Transform struct {
	Position    geom.Point
	Orientation geom.Vector
}

// Identity returns the zero transform (origin, no rotation).
func Identity() Transform {
	return Transform{}
}

// Compose returns parent ∘ child: child.Position is rotated by the parent's
// orientation and translated by the parent's position; orientations compose
// as rotations (parent's rotation matrix times child's), then are converted
// back to the Rz.Ry.Rx Euler triple. Summing Euler angles axis-by-axis is
// not equivalent to this in general and is deliberately not used here.
func (t Transform) Compose(child Transform) Transform {
	rotatedChildPos := geom.RotatePointByEuler(geom.VectorFromPoint(child.Position), t.Orientation)
	return Transform{
		Position:    t.Position.Add(rotatedChildPos),
		Orientation: geom.ComposeOrientations(t.Orientation, child.Orientation),
	}
}

// ForwardDirection returns the world-space forward vector implied by this
// transform's orientation: the rotation of local +Z by Rz(yaw).Ry(pitch).Rx(roll).
func (t Transform) ForwardDirection() geom.Vector {
	return geom.ForwardFromOrientation(t.Orientation)
}
