package joint

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// SwivelHingeJoint restricts bone B's hinge axis to stay perpendicular to
// bone A's hinge axis, the single degree of freedom a swivel hinge (a hinge
// whose axis itself can swing, as in a universal joint) needs locked.
type SwivelHingeJoint struct {
	constraint.TwoBoneJoint

	HingeAxisA, TwistAxisB math3.Vec3
}

// NewSwivelHingeJoint creates a swivel hinge restricting b's twist axis to
// stay perpendicular to a's hinge axis.
func NewSwivelHingeJoint(a, b *bone.Bone, hingeAxisA, twistAxisB math3.Vec3) *SwivelHingeJoint {
	j := &SwivelHingeJoint{HingeAxisA: hingeAxisA, TwistAxisB: twistAxisB}
	j.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, j)
	return j
}

// UpdateJacobiansAndVelocityBias restricts rotation around the axis formed
// by the cross product of the two world axes: the single DOF that keeps
// them perpendicular.
func (j *SwivelHingeJoint) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := j.BoneA(), j.BoneB()

	worldHingeAxisA := boneA.Orientation.Rotate(j.HingeAxisA)
	worldTwistAxisB := boneB.Orientation.Rotate(j.TwistAxisB)

	restrictedAxis := worldHingeAxisA.Cross(worldTwistAxisB)
	dot := worldHingeAxisA.Dot(worldTwistAxisB)

	var angular math3.Mat3
	angular[0] = restrictedAxis

	j.JacobianA.Linear = math3.Mat3{}
	j.JacobianB.Linear = math3.Mat3{}
	j.JacobianA.Angular = angular
	j.JacobianB.Angular = math3.Negate(angular)

	j.VelocityBias = math3.Vec3{-dot * j.ErrorCorrectionFactor(), 0, 0}
}
