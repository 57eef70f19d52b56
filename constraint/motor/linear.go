// Package motor holds the single-bone constraints a Control drives: they
// push one bone's point or orientation toward a goal, bounded by
// MaximumForce, and never touch a second bone directly — the chain reaction
// onto neighboring bones comes entirely from the joints between them.
package motor

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// LinearMotor drives a point fixed in the target bone's local frame toward
// a world-space goal position, the motor behind control.DragControl.
type LinearMotor struct {
	constraint.SingleBoneConstraint

	LocalOffset math3.Vec3
	Goal        math3.Vec3
}

// NewLinearMotor creates a linear motor on bone b with a zero LocalOffset and
// Goal; callers set both fields afterwards.
func NewLinearMotor(b *bone.Bone) *LinearMotor {
	m := &LinearMotor{}
	m.SingleBoneConstraint = constraint.NewSingleBoneConstraint(b, constraint.DefaultControlRigidity)
	return m
}

// UpdateJacobiansAndVelocityBias builds the standard point-to-point
// Jacobian (identity linear block, cross-product angular block) and biases
// toward Goal.
func (m *LinearMotor) UpdateJacobiansAndVelocityBias() {
	b := m.TargetBone()
	r := b.Orientation.Rotate(m.LocalOffset)

	m.Jacobian.Linear = math3.Identity()
	m.Jacobian.Angular = math3.Transpose(math3.CrossProductMatrix(r))

	worldPoint := b.Position.Add(r)
	m.VelocityBias = m.Goal.Sub(worldPoint).Mul(m.ErrorCorrectionFactor())
}
