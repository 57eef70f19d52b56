package limit

import (
	"math"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// twistMeasurementEpsilonSqr guards computeTwistMeasurementAxes's
// perpendicular cross product against a degenerate result.
const twistMeasurementEpsilonSqr = 1e-14

// TwistLimit caps the signed twist angle of bone B relative to bone A's
// measurement axis within [MinimumAngle, MaximumAngle].
type TwistLimit struct {
	constraint.TwoBoneJoint

	axisA, axisB                       math3.Vec3
	measurementAxisA, measurementAxisB math3.Vec3
	MinimumAngle, MaximumAngle         float64
}

// NewTwistLimit creates a twist range limit between a and b. The
// measurement axes used to read the twist angle are derived automatically,
// perpendicular to axisA, so the limit reads zero twist at the bones'
// current relative orientation.
func NewTwistLimit(a, b *bone.Bone, axisA, axisB math3.Vec3, minimumAngle, maximumAngle float64) *TwistLimit {
	l := &TwistLimit{axisA: axisA, axisB: axisB, MinimumAngle: minimumAngle, MaximumAngle: maximumAngle}
	l.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, l)
	l.OneSided = true
	l.measurementAxisA, l.measurementAxisB = computeTwistMeasurementAxes(a, b, axisA, axisB)
	return l
}

// computeTwistMeasurementAxes picks a world axis perpendicular to axisA,
// falling back from Up to Right when axisA is nearly vertical, then carries
// it onto bone B via the shortest rotation from worldAxisA to worldAxisB.
// Returns both axes in their owning bone's local frame.
func computeTwistMeasurementAxes(a, b *bone.Bone, axisA, axisB math3.Vec3) (measureA, measureB math3.Vec3) {
	worldAxisA := a.Orientation.Rotate(axisA)
	worldAxisB := b.Orientation.Rotate(axisB)

	worldMeasureA := math3.Up.Cross(worldAxisA)
	if worldMeasureA.LenSqr() < twistMeasurementEpsilonSqr {
		worldMeasureA = math3.Right.Cross(worldAxisA)
	}
	worldMeasureA = worldMeasureA.Normalize()

	alignment := math3.QuatBetween(worldAxisA, worldAxisB)
	worldMeasureB := alignment.Rotate(worldMeasureA)

	return a.Orientation.Inverse().Rotate(worldMeasureA), b.Orientation.Inverse().Rotate(worldMeasureB)
}

// UpdateJacobiansAndVelocityBias measures the signed twist angle the same
// way joint.TwistJoint does, then engages whichever side (minimum or
// maximum) is currently violated; if neither is, the constraint goes inert.
func (l *TwistLimit) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := l.BoneA(), l.BoneB()

	worldAxisA := boneA.Orientation.Rotate(l.axisA)
	worldAxisB := boneB.Orientation.Rotate(l.axisB)
	worldMeasureA := boneA.Orientation.Rotate(l.measurementAxisA)
	worldMeasureB := boneB.Orientation.Rotate(l.measurementAxisB)

	alignment := math3.QuatBetween(worldAxisB, worldAxisA)
	measureOnB := alignment.Rotate(worldMeasureB)

	cos := clampDot(worldMeasureA.Dot(measureOnB))
	angle := math.Acos(cos)
	if worldMeasureA.Cross(measureOnB).Dot(worldAxisA) < 0 {
		angle = -angle
	}

	// Can't use axisA directly as the jacobian: consider one bone cranking
	// around the other. Use the bisector of the two world axes instead.
	cranking := worldAxisA.Add(worldAxisB)
	if cranking.LenSqr() > 1e-12 {
		cranking = cranking.Normalize()
	} else {
		cranking = math3.Zero
	}
	var angular math3.Mat3
	angular[0] = cranking

	switch {
	case angle <= l.MinimumAngle:
		l.JacobianA.Angular = math3.Negate(angular)
		l.JacobianB.Angular = angular
		l.VelocityBias = math3.Vec3{(l.MinimumAngle - angle) * l.ErrorCorrectionFactor(), 0, 0}
	case angle >= l.MaximumAngle:
		l.JacobianA.Angular = angular
		l.JacobianB.Angular = math3.Negate(angular)
		l.VelocityBias = math3.Vec3{(angle - l.MaximumAngle) * l.ErrorCorrectionFactor(), 0, 0}
	default:
		l.JacobianA.Angular = math3.Mat3{}
		l.JacobianB.Angular = math3.Mat3{}
		l.VelocityBias = math3.Zero
	}
	l.JacobianA.Linear = math3.Mat3{}
	l.JacobianB.Linear = math3.Mat3{}
}
