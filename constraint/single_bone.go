package constraint

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/math3"
)

// SingleBoneConstraint is the shared protocol implementation for
// constraints acting on exactly one bone — the motors backing Controls. A
// variant embeds SingleBoneConstraint and supplies its own
// UpdateJacobiansAndVelocityBias, which fills in Jacobian (not JacobianA/B —
// single-bone constraints use one block) and VelocityBias.
type SingleBoneConstraint struct {
	Base
	Jacobian   Jacobian
	targetBone *bone.Bone
}

// NewSingleBoneConstraint returns a SingleBoneConstraint targeting bone b
// with the given default rigidity.
func NewSingleBoneConstraint(b *bone.Bone, rigidity float64) SingleBoneConstraint {
	s := SingleBoneConstraint{targetBone: b}
	s.Base.rigidity = rigidity
	return s
}

// TargetBone returns the bone this constraint acts on.
func (s *SingleBoneConstraint) TargetBone() *bone.Bone { return s.targetBone }

// SetTargetBone retargets the constraint.
func (s *SingleBoneConstraint) SetTargetBone(b *bone.Bone) { s.targetBone = b }

// ComputeEffectiveMass forms J*W*Jᵀ (linear block over inverse mass, angular
// block over inertia tensor inverse), adds softness to nonzero diagonals,
// and adaptively inverts.
func (s *SingleBoneConstraint) ComputeEffectiveMass() {
	linearW := math3.Scale(s.targetBone.InverseMass())
	linear := math3.MultiplyByTransposed(math3.Multiply(s.Jacobian.Linear, linearW), s.Jacobian.Linear)

	angular := math3.MultiplyByTransposed(math3.Multiply(s.Jacobian.Angular, s.targetBone.InertiaTensorInverse), s.Jacobian.Angular)

	effectiveMass := math3.Add(linear, angular)
	effectiveMass = s.addSoftnessToNonzeroDiagonal(effectiveMass)
	s.EffectiveMass = math3.AdaptiveInvert(effectiveMass)
}

// WarmStart applies the accumulated impulse to the target bone via the
// transposed Jacobian, bootstrapping convergence from the prior iteration.
func (s *SingleBoneConstraint) WarmStart() {
	s.targetBone.ApplyLinearImpulse(math3.Transform(s.AccumulatedImpulse, s.Jacobian.Linear))
	s.targetBone.ApplyAngularImpulse(math3.Transform(s.AccumulatedImpulse, s.Jacobian.Angular))
}

// SolveVelocityIteration computes the constraint-space velocity error,
// converts it to an impulse via EffectiveMass, accumulates and clamps it,
// and applies the resulting delta back to the target bone.
func (s *SingleBoneConstraint) SolveVelocityIteration() {
	linearContribution := math3.TransformTranspose(s.targetBone.LinearVelocity, s.Jacobian.Linear)
	angularContribution := math3.TransformTranspose(s.targetBone.AngularVelocity, s.Jacobian.Angular)

	velocityError := linearContribution.Add(angularContribution)
	velocityError = velocityError.Sub(s.VelocityBias)
	velocityError = velocityError.Sub(s.AccumulatedImpulse.Mul(-s.Softness()))

	constraintSpaceImpulse := math3.Transform(velocityError, s.EffectiveMass).Mul(-1)
	delta := s.clampImpulse(constraintSpaceImpulse, false)

	s.targetBone.ApplyLinearImpulse(math3.Transform(delta, s.Jacobian.Linear))
	s.targetBone.ApplyAngularImpulse(math3.Transform(delta, s.Jacobian.Angular))
}
