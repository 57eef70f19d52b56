package motor

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// AngularMotor drives a bone's full orientation toward a goal quaternion,
// the motor behind control.StateControl's orientation goal.
type AngularMotor struct {
	constraint.SingleBoneConstraint

	Goal math3.Quat
}

// NewAngularMotor creates an angular motor on bone b.
func NewAngularMotor(b *bone.Bone) *AngularMotor {
	m := &AngularMotor{Goal: math3.Quat{W: 1}}
	m.SingleBoneConstraint = constraint.NewSingleBoneConstraint(b, constraint.DefaultControlRigidity)
	return m
}

// UpdateJacobiansAndVelocityBias has no linear block (orientation motors
// never touch position) and biases the angular error, extracted via
// axis-angle from the relative rotation, toward zero.
func (m *AngularMotor) UpdateJacobiansAndVelocityBias() {
	b := m.TargetBone()

	m.Jacobian.Linear = math3.Mat3{}
	m.Jacobian.Angular = math3.Identity()

	errorQuat := m.Goal.Mul(b.Orientation.Inverse())
	axis, angle := math3.AxisAngle(errorQuat)
	m.VelocityBias = axis.Mul(angle * m.ErrorCorrectionFactor())
}
