package joint

import (
	"math"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// twistMeasurementEpsilonSqr guards computeMeasurementAxes's perpendicular
// cross product against a degenerate result.
const twistMeasurementEpsilonSqr = 1e-14

// TwistJoint locks the rotation of bone B around bone A's measurement axis
// to a fixed angle offset, used to keep a forearm from spinning freely
// relative to the upper arm.
type TwistJoint struct {
	constraint.TwoBoneJoint

	AxisA, AxisB                       math3.Vec3
	MeasurementAxisA, MeasurementAxisB math3.Vec3

	// GoalAngle is the signed twist angle, relative to the measurement
	// axes, the joint holds bone B at.
	GoalAngle float64
}

// NewTwistJoint creates a twist lock between a and b around the given
// local-frame twist axes. The measurement axes are derived automatically,
// perpendicular to axisA, and pushed onto bone B through the axisA-to-axisB
// alignment so the joint reads zero twist at the bones' current relative
// orientation.
func NewTwistJoint(a, b *bone.Bone, axisA, axisB math3.Vec3) *TwistJoint {
	j := &TwistJoint{AxisA: axisA, AxisB: axisB}
	j.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, j)
	j.MeasurementAxisA, j.MeasurementAxisB = computeMeasurementAxes(a, b, axisA, axisB)
	return j
}

// computeMeasurementAxes picks a world axis perpendicular to axisA, falling
// back from Up to Right when axisA is nearly vertical, then carries it onto
// bone B via the shortest rotation from worldAxisA to worldAxisB. Returns
// both axes in their owning bone's local frame.
func computeMeasurementAxes(a, b *bone.Bone, axisA, axisB math3.Vec3) (measureA, measureB math3.Vec3) {
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

// UpdateJacobiansAndVelocityBias aligns the two bones' twist axes (via the
// rotation between them), measures the signed angle between bone A's
// rotated measurement axis and bone B's, and drives that angle toward
// GoalAngle. The constraint is single-DOF: only row 0 of each angular
// Jacobian is nonzero.
func (j *TwistJoint) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := j.BoneA(), j.BoneB()

	worldAxisA := boneA.Orientation.Rotate(j.AxisA)
	worldAxisB := boneB.Orientation.Rotate(j.AxisB)
	worldMeasureA := boneA.Orientation.Rotate(j.MeasurementAxisA)
	worldMeasureB := boneB.Orientation.Rotate(j.MeasurementAxisB)

	alignment := math3.QuatBetween(worldAxisB, worldAxisA)
	measureOnB := alignment.Rotate(worldMeasureB)

	cos := clampUnit(worldMeasureA.Dot(measureOnB))
	angle := math.Acos(cos)
	if worldMeasureA.Cross(measureOnB).Dot(worldAxisA) < 0 {
		angle = -angle
	}

	j.VelocityBias = math3.Vec3{(angle - j.GoalAngle) * j.ErrorCorrectionFactor(), 0, 0}

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

	j.JacobianA.Linear = math3.Mat3{}
	j.JacobianB.Linear = math3.Mat3{}
	j.JacobianA.Angular = angular
	j.JacobianB.Angular = math3.Negate(angular)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
