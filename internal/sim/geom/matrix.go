package geom

import "math"

// Matrix3 is a row-major 3x3 rotation matrix.
type Matrix3 [3][3]float32

// RotationFromEuler builds the rotation matrix Rz(yaw).Ry(pitch).Rx(roll)
// for rpy = (roll, pitch, yaw) in radians.
func RotationFromEuler(rpy Vector) Matrix3 {
	roll, pitch, yaw := float64(rpy.X), float64(rpy.Y), float64(rpy.Z)
	sr, cr := math.Sincos(roll)
	sp, cp := math.Sincos(pitch)
	sy, cy := math.Sincos(yaw)

	return Matrix3{
		{float32(cy * cp), float32(cy*sp*sr - sy*cr), float32(cy*sp*cr + sy*sr)},
		{float32(sy * cp), float32(sy*sp*sr + cy*cr), float32(sy*sp*cr - cy*sr)},
		{float32(-sp), float32(cp * sr), float32(cp * cr)},
	}
}

// EulerFromRotation extracts the (roll, pitch, yaw) triple from a rotation
// matrix built with the Rz(yaw).Ry(pitch).Rx(roll) convention, inverting
// RotationFromEuler.
func EulerFromRotation(m Matrix3) Vector {
	pitch := math.Atan2(float64(-m[2][0]), math.Sqrt(float64(m[0][0]*m[0][0]+m[1][0]*m[1][0])))
	yaw := math.Atan2(float64(m[1][0]), float64(m[0][0]))
	roll := math.Atan2(float64(m[2][1]), float64(m[2][2]))
	return Vector{float32(roll), float32(pitch), float32(yaw)}
}

// Multiply returns the matrix product m * other.
func (m Matrix3) Multiply(other Matrix3) Matrix3 {
	var result Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// Apply rotates vector v by m.
func (m Matrix3) Apply(v Vector) Vector {
	return Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// ComposeOrientations returns the Euler orientation equivalent to applying
// child's rotation first, then parent's: EulerFromRotation(parent * child).
func ComposeOrientations(parent, child Vector) Vector {
	return EulerFromRotation(RotationFromEuler(parent).Multiply(RotationFromEuler(child)))
}
