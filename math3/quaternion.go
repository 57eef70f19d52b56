package math3

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quat is a unit quaternion. Conjugate, Mul, Normalize, Inverse, and
// Rotate(v) (vector transform) are mgl64's; AxisAngle and QuatBetween below
// hold the near-identity and antiparallel special cases the solver depends
// on bit-exactly.
type Quat = mgl64.Quat

// Concatenate returns b*a: the same Hamilton product as b.Mul(a), spelled
// out so call sites read in "apply a, then b" order.
func Concatenate(a, b Quat) Quat {
	return b.Mul(a)
}

// AxisAngle extracts the rotation axis and angle of q. Near-identity
// quaternions (w > 1-1e-12 after sign correction) return (Up, 0) rather than
// dividing by a vanishing sin(angle/2).
func AxisAngle(q Quat) (axis Vec3, angle float64) {
	qx, qy, qz, qw := q.V[0], q.V[1], q.V[2], q.W
	if qw < 0 {
		qx, qy, qz, qw = -qx, -qy, -qz, -qw
	}
	if qw > 1-1e-12 {
		return Up, 0
	}
	angle = 2 * math.Acos(qw)
	denom := 1 / math.Sqrt(1-qw*qw)
	return Vec3{qx * denom, qy * denom, qz * denom}, angle
}

// QuatBetween returns the shortest rotation taking normalized v1 onto
// normalized v2. When v1 and v2 are nearly antiparallel (dot < -0.9999) the
// cross product vanishes, so the fixed axis (-z1, y1, x1) is used instead of
// falling through to a degenerate quaternion; that axis is perpendicular to
// v1 only when v1 has no y component.
func QuatBetween(v1, v2 Vec3) Quat {
	dot := v1.Dot(v2)
	axis := v1.Cross(v2)
	var q Quat
	if dot < -0.9999 {
		q = Quat{W: 0, V: Vec3{-v1[2], v1[1], v1[0]}}
	} else {
		q = Quat{W: dot + 1, V: axis}
	}
	return q.Normalize()
}
