package joint

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// RevoluteJoint restricts relative rotation to a single shared hinge axis,
// the way an elbow or knee only bends around one direction.
type RevoluteJoint struct {
	constraint.TwoBoneJoint

	// AxisA and AxisB are the hinge axis expressed in each bone's local
	// frame; they are driven to stay coincident in world space.
	AxisA, AxisB math3.Vec3
}

// NewRevoluteJoint creates a hinge joint between a and b around the given
// local-frame axes.
func NewRevoluteJoint(a, b *bone.Bone, axisA, axisB math3.Vec3) *RevoluteJoint {
	j := &RevoluteJoint{AxisA: axisA, AxisB: axisB}
	j.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, j)
	return j
}

// UpdateJacobiansAndVelocityBias builds the two axes perpendicular to the
// world hinge axis that together restrict the remaining two rotational
// degrees of freedom, falling back from a cross with Up to a cross with
// Right when the hinge axis is itself near-vertical.
func (j *RevoluteJoint) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := j.BoneA(), j.BoneB()

	worldAxisA := boneA.Orientation.Rotate(j.AxisA)
	worldAxisB := boneB.Orientation.Rotate(j.AxisB)

	error := worldAxisA.Cross(worldAxisB)

	constrained1 := error
	if constrained1.LenSqr() < 1e-9 {
		constrained1 = worldAxisA.Cross(math3.Up)
		if constrained1.LenSqr() < 1e-9 {
			constrained1 = worldAxisA.Cross(math3.Right)
		}
	}
	constrained1 = constrained1.Normalize()
	constrained2 := worldAxisA.Cross(constrained1).Normalize()

	var angular math3.Mat3
	angular[0] = constrained1
	angular[1] = constrained2

	j.JacobianA.Linear = math3.Mat3{}
	j.JacobianB.Linear = math3.Mat3{}
	j.JacobianA.Angular = angular
	j.JacobianB.Angular = math3.Negate(angular)

	j.VelocityBias = math3.Vec3{
		constrained1.Dot(error) * j.ErrorCorrectionFactor(),
		constrained2.Dot(error) * j.ErrorCorrectionFactor(),
		0,
	}
}
