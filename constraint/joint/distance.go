package joint

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// DistanceJoint holds two bones' anchors a fixed distance apart, as a rigid
// strut rather than a coincident socket.
type DistanceJoint struct {
	constraint.TwoBoneJoint

	AnchorA, AnchorB math3.Vec3
	Distance         float64
}

// NewDistanceJoint creates a distance joint holding a and b's local-frame
// anchors the given distance apart.
func NewDistanceJoint(a, b *bone.Bone, anchorA, anchorB math3.Vec3, distance float64) *DistanceJoint {
	j := &DistanceJoint{AnchorA: anchorA, AnchorB: anchorB, Distance: distance}
	j.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, j)
	return j
}

// UpdateJacobiansAndVelocityBias builds a single-DOF Jacobian along the unit
// separation vector between the two world anchors.
func (j *DistanceJoint) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := j.BoneA(), j.BoneB()

	rA := boneA.Orientation.Rotate(j.AnchorA)
	rB := boneB.Orientation.Rotate(j.AnchorB)
	worldA := boneA.Position.Add(rA)
	worldB := boneB.Position.Add(rB)

	separation := worldB.Sub(worldA)
	currentDistance := separation.Len()
	var axis math3.Vec3
	if currentDistance > 1e-9 {
		axis = math3.Divide(separation, currentDistance)
	} else {
		axis = math3.Right
	}

	var linear, angularA, angularB math3.Mat3
	linear[0] = axis
	angularA[0] = rA.Cross(axis)
	angularB[0] = axis.Cross(rB)

	j.JacobianA.Linear = linear
	j.JacobianB.Linear = math3.Negate(linear)
	j.JacobianA.Angular = angularA
	j.JacobianB.Angular = angularB

	j.VelocityBias = math3.Vec3{(currentDistance - j.Distance) * j.ErrorCorrectionFactor(), 0, 0}
}
