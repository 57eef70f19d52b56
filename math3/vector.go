// Package math3 is the vector/quaternion/3x3-matrix kit the solver is built
// on: mgl64 for ordinary vector and quaternion algebra, plus the handful of
// operations (adaptive inverse/determinant, axis-angle extraction,
// quaternion-between-vectors) whose special cases are load-bearing for the
// constraint solver and are therefore implemented here rather than trusted
// to a general-purpose math library.
package math3

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3-component vector. Ordinary algebra (add, sub, scale, cross,
// dot, length, normalize) is mgl64's; see Divide and Max below for the two
// operations mgl64 doesn't provide directly.
type Vec3 = mgl64.Vec3

var (
	Up    = Vec3{0, 1, 0}
	Right = Vec3{1, 0, 0}
	Zero  = Vec3{0, 0, 0}
)

// Divide scales v by 1/divisor, matching the reciprocal-multiply form used
// throughout the constraint variants rather than a direct component divide.
func Divide(v Vec3, divisor float64) Vec3 {
	inv := 1 / divisor
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Max returns the componentwise maximum of a and b.
func Max(a, b Vec3) Vec3 {
	result := a
	if b[0] > result[0] {
		result[0] = b[0]
	}
	if b[1] > result[1] {
		result[1] = b[1]
	}
	if b[2] > result[2] {
		result[2] = b[2]
	}
	return result
}
