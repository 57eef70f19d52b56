package motor

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// freeAxisEpsilonSqr guards SetFreeAxis's degenerate-cross fallback.
const freeAxisEpsilonSqr = 1e-14

// RevoluteConstraint keeps a bone-local axis aligned with a world-space free
// axis, the motor behind control.RevoluteControl. It constrains the two
// rotational degrees of freedom perpendicular to the free axis; rotation
// around the free axis itself is left unconstrained, so there is no goal
// angle, only an axis to hold steady.
type RevoluteConstraint struct {
	constraint.SingleBoneConstraint

	BoneLocalFreeAxis math3.Vec3

	freeAxis         math3.Vec3
	constrainedAxis1 math3.Vec3
	constrainedAxis2 math3.Vec3
}

// NewRevoluteConstraint creates a revolute motor on bone b holding
// boneLocalFreeAxis aligned to freeAxis, a world-space direction.
func NewRevoluteConstraint(b *bone.Bone, boneLocalFreeAxis, freeAxis math3.Vec3) *RevoluteConstraint {
	m := &RevoluteConstraint{BoneLocalFreeAxis: boneLocalFreeAxis}
	m.SingleBoneConstraint = constraint.NewSingleBoneConstraint(b, constraint.DefaultControlRigidity)
	m.SetFreeAxis(freeAxis)
	return m
}

// FreeAxis returns the world-space axis the bone-local axis is held against.
func (m *RevoluteConstraint) FreeAxis() math3.Vec3 { return m.freeAxis }

// SetFreeAxis sets the world-space target axis and rebuilds the pair of
// directions perpendicular to it that the bone-local axis is constrained
// against, falling back to Right when Up is nearly parallel to the new axis.
func (m *RevoluteConstraint) SetFreeAxis(value math3.Vec3) {
	m.freeAxis = value
	constrainedAxis1 := m.freeAxis.Cross(math3.Up)
	if constrainedAxis1.LenSqr() < freeAxisEpsilonSqr {
		constrainedAxis1 = m.freeAxis.Cross(math3.Right)
	}
	m.constrainedAxis1 = constrainedAxis1.Normalize()
	m.constrainedAxis2 = m.freeAxis.Cross(m.constrainedAxis1)
}

// UpdateJacobiansAndVelocityBias measures how far the bone-local axis has
// drifted off the free axis, in the constrainedAxis1/constrainedAxis2 basis,
// and constrains it back.
func (m *RevoluteConstraint) UpdateJacobiansAndVelocityBias() {
	b := m.TargetBone()
	boneAxis := b.Orientation.Rotate(m.BoneLocalFreeAxis)

	m.Jacobian.Linear = math3.Mat3{}
	var angular math3.Mat3
	angular[0] = m.constrainedAxis1
	angular[1] = m.constrainedAxis2
	m.Jacobian.Angular = angular

	error := boneAxis.Cross(m.freeAxis)
	m.VelocityBias = math3.Vec3{
		error.Dot(m.constrainedAxis1) * m.ErrorCorrectionFactor(),
		error.Dot(m.constrainedAxis2) * m.ErrorCorrectionFactor(),
		0,
	}
}
