package motor

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// AngularPlaneConstraint drives a bone-local axis to stay perpendicular to
// a world-space plane normal, the motor behind control.AngularPlaneControl
// (keeping a foot level, or a gaze axis in a fixed plane).
type AngularPlaneConstraint struct {
	constraint.SingleBoneConstraint

	LocalAxis   math3.Vec3
	PlaneNormal math3.Vec3
}

// NewAngularPlaneConstraint creates a plane constraint on bone b.
func NewAngularPlaneConstraint(b *bone.Bone) *AngularPlaneConstraint {
	m := &AngularPlaneConstraint{PlaneNormal: math3.Up}
	m.SingleBoneConstraint = constraint.NewSingleBoneConstraint(b, constraint.DefaultControlRigidity)
	return m
}

// UpdateJacobiansAndVelocityBias restricts rotation around the axis formed
// by the cross product of the world axis and the plane normal, the same
// restricted-axis technique joint.SwivelHingeJoint uses.
func (m *AngularPlaneConstraint) UpdateJacobiansAndVelocityBias() {
	b := m.TargetBone()
	worldAxis := b.Orientation.Rotate(m.LocalAxis)

	restrictedAxis := worldAxis.Cross(m.PlaneNormal)
	dot := worldAxis.Dot(m.PlaneNormal)

	m.Jacobian.Linear = math3.Mat3{}
	var angular math3.Mat3
	angular[0] = restrictedAxis
	m.Jacobian.Angular = angular

	m.VelocityBias = math3.Vec3{-dot * m.ErrorCorrectionFactor(), 0, 0}
}
