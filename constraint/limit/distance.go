package limit

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// DistanceLimit caps the separation between two bones' anchors within
// [MinimumDistance, MaximumDistance], a soft leash rather than a rigid
// joint.DistanceJoint strut.
type DistanceLimit struct {
	constraint.TwoBoneJoint

	AnchorA, AnchorB               math3.Vec3
	MinimumDistance, MaximumDistance float64
}

// NewDistanceLimit creates a distance range limit between a and b.
func NewDistanceLimit(a, b *bone.Bone, anchorA, anchorB math3.Vec3, minimumDistance, maximumDistance float64) *DistanceLimit {
	l := &DistanceLimit{AnchorA: anchorA, AnchorB: anchorB, MinimumDistance: minimumDistance, MaximumDistance: maximumDistance}
	l.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, l)
	l.OneSided = true
	return l
}

// UpdateJacobiansAndVelocityBias measures the anchor separation and engages
// whichever bound is violated, or goes inert within range.
func (l *DistanceLimit) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := l.BoneA(), l.BoneB()

	rA := boneA.Orientation.Rotate(l.AnchorA)
	rB := boneB.Orientation.Rotate(l.AnchorB)
	worldA := boneA.Position.Add(rA)
	worldB := boneB.Position.Add(rB)

	separation := worldB.Sub(worldA)
	distance := separation.Len()
	var axis math3.Vec3
	if distance > 1e-9 {
		axis = math3.Divide(separation, distance)
	} else {
		axis = math3.Right
	}

	var linear, angularA, angularB math3.Mat3
	linear[0] = axis
	angularA[0] = rA.Cross(axis)
	angularB[0] = axis.Cross(rB)

	switch {
	case distance < l.MinimumDistance:
		// The limit can only push in one direction: flip the jacobian.
		l.JacobianA.Linear = math3.Negate(linear)
		l.JacobianB.Linear = linear
		l.JacobianA.Angular = math3.Negate(angularA)
		l.JacobianB.Angular = math3.Negate(angularB)
		l.VelocityBias = math3.Vec3{(l.MinimumDistance - distance) * l.ErrorCorrectionFactor(), 0, 0}
	case distance > l.MaximumDistance:
		l.JacobianA.Linear = linear
		l.JacobianB.Linear = math3.Negate(linear)
		l.JacobianA.Angular = angularA
		l.JacobianB.Angular = angularB
		l.VelocityBias = math3.Vec3{(distance - l.MaximumDistance) * l.ErrorCorrectionFactor(), 0, 0}
	default:
		l.JacobianA.Linear = math3.Mat3{}
		l.JacobianB.Linear = math3.Mat3{}
		l.JacobianA.Angular = math3.Mat3{}
		l.JacobianB.Angular = math3.Mat3{}
		l.VelocityBias = math3.Zero
	}
}
