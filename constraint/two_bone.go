package constraint

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/math3"
)

// TwoBoneJoint is the shared protocol implementation for constraints acting
// on two bones — joints and limits. A variant embeds TwoBoneJoint and
// supplies UpdateJacobiansAndVelocityBias (filling JacobianA/JacobianB and
// VelocityBias) and OneSided (true for limits).
type TwoBoneJoint struct {
	Base
	boneA, boneB *bone.Bone
	enabled      bool
	self         bone.Joint
	// OneSided, when true, floors the accumulated impulse at zero each
	// iteration: "limits can only push, never pull".
	OneSided bool
}

// NewTwoBoneJoint returns a TwoBoneJoint connecting a and b, registering
// self (the embedding variant's own bone.Joint view) in both bones' joint
// lists per the enabled<=>adjacency invariant.
func NewTwoBoneJoint(a, b *bone.Bone, rigidity float64, self bone.Joint) TwoBoneJoint {
	j := TwoBoneJoint{boneA: a, boneB: b, self: self}
	j.Base.rigidity = rigidity
	j.SetEnabled(true)
	return j
}

// BoneA returns the first connected bone.
func (j *TwoBoneJoint) BoneA() *bone.Bone { return j.boneA }

// BoneB returns the second connected bone.
func (j *TwoBoneJoint) BoneB() *bone.Bone { return j.boneB }

// Enabled reports whether the joint currently appears in both bones' joint
// lists.
func (j *TwoBoneJoint) Enabled() bool { return j.enabled }

// SetEnabled toggles the joint and keeps both bones' joint lists in sync:
// enabled=true implies membership in both lists exactly once, enabled=false
// implies membership in neither.
func (j *TwoBoneJoint) SetEnabled(value bool) {
	if value == j.enabled {
		return
	}
	j.enabled = value
	if value {
		j.boneA.Joints = append(j.boneA.Joints, j.self)
		j.boneB.Joints = append(j.boneB.Joints, j.self)
		return
	}
	j.boneA.Joints = removeJoint(j.boneA.Joints, j.self)
	j.boneB.Joints = removeJoint(j.boneB.Joints, j.self)
}

func removeJoint(joints []bone.Joint, target bone.Joint) []bone.Joint {
	for i, j := range joints {
		if j == target {
			return append(joints[:i], joints[i+1:]...)
		}
	}
	return joints
}

// ComputeEffectiveMass sums each endpoint's linear+angular contribution,
// treating a pinned endpoint's contribution as the zero matrix (infinite
// inertia), adds softness to nonzero diagonals, and adaptively inverts.
func (j *TwoBoneJoint) ComputeEffectiveMass() {
	var sum math3.Mat3
	if !j.boneA.Pinned {
		linear := math3.MultiplyByTransposed(math3.Multiply(j.JacobianA.Linear, math3.Scale(j.boneA.InverseMass())), j.JacobianA.Linear)
		angular := math3.MultiplyByTransposed(math3.Multiply(j.JacobianA.Angular, j.boneA.InertiaTensorInverse), j.JacobianA.Angular)
		sum = math3.Add(sum, math3.Add(linear, angular))
	}
	if !j.boneB.Pinned {
		linear := math3.MultiplyByTransposed(math3.Multiply(j.JacobianB.Linear, math3.Scale(j.boneB.InverseMass())), j.JacobianB.Linear)
		angular := math3.MultiplyByTransposed(math3.Multiply(j.JacobianB.Angular, j.boneB.InertiaTensorInverse), j.JacobianB.Angular)
		sum = math3.Add(sum, math3.Add(linear, angular))
	}
	sum = j.addSoftnessToNonzeroDiagonal(sum)
	j.EffectiveMass = math3.AdaptiveInvert(sum)
}

// WarmStart applies the accumulated impulse to both non-pinned endpoints.
func (j *TwoBoneJoint) WarmStart() {
	if !j.boneA.Pinned {
		j.boneA.ApplyLinearImpulse(math3.Transform(j.AccumulatedImpulse, j.JacobianA.Linear))
		j.boneA.ApplyAngularImpulse(math3.Transform(j.AccumulatedImpulse, j.JacobianA.Angular))
	}
	if !j.boneB.Pinned {
		j.boneB.ApplyLinearImpulse(math3.Transform(j.AccumulatedImpulse, j.JacobianB.Linear))
		j.boneB.ApplyAngularImpulse(math3.Transform(j.AccumulatedImpulse, j.JacobianB.Angular))
	}
}

// SolveVelocityIteration computes the constraint-space velocity error from
// both endpoints, converts it to an impulse, accumulates and clamps it
// (flooring at zero first when OneSided), and applies the delta to both
// non-pinned endpoints.
func (j *TwoBoneJoint) SolveVelocityIteration() {
	linearA := math3.TransformTranspose(j.boneA.LinearVelocity, j.JacobianA.Linear)
	angularA := math3.TransformTranspose(j.boneA.AngularVelocity, j.JacobianA.Angular)
	linearB := math3.TransformTranspose(j.boneB.LinearVelocity, j.JacobianB.Linear)
	angularB := math3.TransformTranspose(j.boneB.AngularVelocity, j.JacobianB.Angular)

	velocityError := linearA.Add(angularA).Add(linearB).Add(angularB)
	velocityError = velocityError.Sub(j.VelocityBias)
	velocityError = velocityError.Sub(j.AccumulatedImpulse.Mul(-j.Softness()))

	constraintSpaceImpulse := math3.Transform(velocityError, j.EffectiveMass).Mul(-1)
	delta := j.clampImpulse(constraintSpaceImpulse, j.OneSided)

	if !j.boneA.Pinned {
		j.boneA.ApplyLinearImpulse(math3.Transform(delta, j.JacobianA.Linear))
		j.boneA.ApplyAngularImpulse(math3.Transform(delta, j.JacobianA.Angular))
	}
	if !j.boneB.Pinned {
		j.boneB.ApplyLinearImpulse(math3.Transform(delta, j.JacobianB.Linear))
		j.boneB.ApplyAngularImpulse(math3.Transform(delta, j.JacobianB.Angular))
	}
}
