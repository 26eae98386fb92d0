package geom

import "math"

// RotatePointByEuler rotates v by the Euler angles rpy = (roll, pitch, yaw),
// all in radians, applying Rz(yaw) . Ry(pitch) . Rx(roll) to v.
func RotatePointByEuler(v Vector, rpy Vector) Vector {
	roll, pitch, yaw := float64(rpy.X), float64(rpy.Y), float64(rpy.Z)

	sr, cr := math.Sincos(roll)
	sp, cp := math.Sincos(pitch)
	sy, cy := math.Sincos(yaw)

	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)

	// Rx(roll)
	x1, y1, z1 := x, cr*y-sr*z, sr*y+cr*z

	// Ry(pitch)
	x2, y2, z2 := cp*x1+sp*z1, y1, -sp*x1+cp*z1

	// Rz(yaw)
	x3, y3 := cy*x2-sy*y2, sy*x2+cy*y2
	z3 := z2

	return Vector{float32(x3), float32(y3), float32(z3)}
}

// ForwardFromOrientation returns the world-space forward direction implied
// by orientation rpy, i.e. RotatePointByEuler((0,0,1), rpy).
func ForwardFromOrientation(rpy Vector) Vector {
	return RotatePointByEuler(Vector{0, 0, 1}, rpy).Normalize()
}

// EulerFromDirection returns the (0, pitch, yaw) orientation triple whose
// forward direction (as computed by ForwardFromOrientation) is d: pitch tilts
// local +Z away from world Z, and yaw turns that tilt about world Z. Roll
// cannot be recovered from a direction alone and is fixed at 0.
func EulerFromDirection(d Vector) Vector {
	n := d.Normalize()
	pitch := float32(math.Atan2(math.Sqrt(float64(n.X*n.X+n.Y*n.Y)), float64(n.Z)))
	yaw := float32(math.Atan2(float64(n.Y), float64(n.X)))
	return Vector{0, pitch, yaw}
}

// SphericalToCartesian converts a distance (meters) and azimuth/elevation
// (radians) into a Cartesian vector in the local device frame, with local
// +Z as the forward/range axis.
func SphericalToCartesian(distance, azimuthRad, elevationRad float32) Vector {
	cosEl := float32(math.Cos(float64(elevationRad)))
	sinEl := float32(math.Sin(float64(elevationRad)))
	cosAz := float32(math.Cos(float64(azimuthRad)))
	sinAz := float32(math.Sin(float64(azimuthRad)))

	return Vector{
		X: distance * cosEl * sinAz,
		Y: distance * sinEl,
		Z: distance * cosEl * cosAz,
	}
}
