// Package limit holds the one-sided two-bone constraints that cap relative
// motion without locking it: swing cones, twist ranges, distance bounds,
// per-axis linear bounds, and elliptical swing cones. Every variant embeds
// constraint.TwoBoneJoint with OneSided set and supplies
// UpdateJacobiansAndVelocityBias; impulses only ever push the bones apart,
// never pull them together, since accumulated impulse is floored at zero
// each iteration.
package limit

import (
	"math"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// SwingLimit caps the angle between bone A's axis and bone B's axis at
// MaximumAngle, a circular swing cone.
type SwingLimit struct {
	constraint.TwoBoneJoint

	axisA, axisB math3.Vec3
	MaximumAngle float64
}

// NewSwingLimit creates a swing cone between a and b around the given
// local-frame axes, capped at maximumAngle radians.
func NewSwingLimit(a, b *bone.Bone, axisA, axisB math3.Vec3, maximumAngle float64) *SwingLimit {
	l := &SwingLimit{axisA: axisA, axisB: axisB, MaximumAngle: maximumAngle}
	l.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, l)
	l.OneSided = true
	return l
}

// UpdateJacobiansAndVelocityBias measures the swing angle via the two world
// axes and builds a restricted-axis Jacobian. When the angle has reached or
// exceeded MaximumAngle the velocity bias pushes it back down; below the
// limit the constraint stays engaged speculatively, with a bias that allows
// only as much motion as would bring the angle to the limit.
func (l *SwingLimit) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := l.BoneA(), l.BoneB()

	worldAxisA := boneA.Orientation.Rotate(l.axisA)
	worldAxisB := boneB.Orientation.Rotate(l.axisB)

	dot := clampDot(worldAxisA.Dot(worldAxisB))
	angle := math.Acos(dot)

	axis := worldAxisA.Cross(worldAxisB)
	if axis.LenSqr() < 1e-9 {
		axis = worldAxisA.Cross(math3.Up)
		if axis.LenSqr() < 1e-9 {
			axis = worldAxisA.Cross(math3.Right)
		}
	}
	axis = axis.Normalize()

	var angular math3.Mat3
	angular[0] = axis

	l.JacobianA.Linear = math3.Mat3{}
	l.JacobianB.Linear = math3.Mat3{}
	l.JacobianA.Angular = angular
	l.JacobianB.Angular = math3.Negate(angular)

	if angle >= l.MaximumAngle {
		l.VelocityBias = math3.Vec3{(angle - l.MaximumAngle) * l.ErrorCorrectionFactor(), 0, 0}
	} else {
		// Not yet violated, but speculative: allow only as much motion as
		// would bring it to the limit, uncorrected by errorCorrectionFactor.
		l.VelocityBias = math3.Vec3{angle - l.MaximumAngle, 0, 0}
	}
}

func clampDot(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
