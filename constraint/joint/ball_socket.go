// Package joint holds the hard two-bone constraints that hold a rig
// together: ball sockets, hinges, twist locks, swivel hinges, and rigid
// distance links. Every variant embeds constraint.TwoBoneJoint and supplies
// UpdateJacobiansAndVelocityBias.
package joint

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// BallSocketJoint holds two bones' anchor points coincident in world space,
// the way a shoulder or hip holds two capsules together with three degrees
// of rotational freedom.
type BallSocketJoint struct {
	constraint.TwoBoneJoint

	// AnchorA and AnchorB are the attachment offsets in each bone's local
	// frame; the joint drives worldAnchorA toward worldAnchorB.
	AnchorA, AnchorB math3.Vec3
}

// NewBallSocketJoint creates a socket joint connecting a and b at the given
// local-frame anchors.
func NewBallSocketJoint(a, b *bone.Bone, anchorA, anchorB math3.Vec3) *BallSocketJoint {
	j := &BallSocketJoint{AnchorA: anchorA, AnchorB: anchorB}
	j.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, j)
	return j
}

// UpdateJacobiansAndVelocityBias derives the constrained-axes Jacobian from
// the current anchor offsets and sets the velocity bias to close the
// anchor-to-anchor separation.
func (j *BallSocketJoint) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := j.BoneA(), j.BoneB()

	rA := boneA.Orientation.Rotate(j.AnchorA)
	rB := boneB.Orientation.Rotate(j.AnchorB)

	j.JacobianA.Linear = math3.Identity()
	j.JacobianB.Linear = math3.Scale(-1)
	j.JacobianA.Angular = math3.Transpose(math3.CrossProductMatrix(rA))
	j.JacobianB.Angular = math3.CrossProductMatrix(rB)

	worldA := boneA.Position.Add(rA)
	worldB := boneB.Position.Add(rB)
	j.VelocityBias = worldB.Sub(worldA).Mul(j.ErrorCorrectionFactor())
}
