package limit

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// LinearAxisLimit caps the signed projection of the anchor separation onto
// a single world-varying axis (driven by bone A's orientation) within
// [MinimumOffset, MaximumOffset], a prismatic travel limit.
type LinearAxisLimit struct {
	constraint.TwoBoneJoint

	AnchorA, AnchorB, AxisA      math3.Vec3
	MinimumOffset, MaximumOffset float64
}

// NewLinearAxisLimit creates a travel limit along axisA (bone A local
// frame) between the two anchors.
func NewLinearAxisLimit(a, b *bone.Bone, anchorA, anchorB, axisA math3.Vec3, minimumOffset, maximumOffset float64) *LinearAxisLimit {
	l := &LinearAxisLimit{AnchorA: anchorA, AnchorB: anchorB, AxisA: axisA, MinimumOffset: minimumOffset, MaximumOffset: maximumOffset}
	l.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, l)
	l.OneSided = true
	return l
}

// UpdateJacobiansAndVelocityBias projects the anchor separation onto the
// world axis and engages whichever bound is violated.
func (l *LinearAxisLimit) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := l.BoneA(), l.BoneB()

	rA := boneA.Orientation.Rotate(l.AnchorA)
	rB := boneB.Orientation.Rotate(l.AnchorB)
	worldA := boneA.Position.Add(rA)
	worldB := boneB.Position.Add(rB)
	worldAxis := boneA.Orientation.Rotate(l.AxisA)

	offset := worldB.Sub(worldA).Dot(worldAxis)

	var linear, angularA, angularB math3.Mat3
	linear[0] = worldAxis
	angularA[0] = rA.Cross(worldAxis)
	angularB[0] = worldAxis.Cross(rB)

	switch {
	case offset < l.MinimumOffset:
		// The limit can only push in one direction: flip the jacobian.
		l.JacobianA.Linear = math3.Negate(linear)
		l.JacobianB.Linear = linear
		l.JacobianA.Angular = math3.Negate(angularA)
		l.JacobianB.Angular = math3.Negate(angularB)
		l.VelocityBias = math3.Vec3{(l.MinimumOffset - offset) * l.ErrorCorrectionFactor(), 0, 0}
	case offset > l.MaximumOffset:
		l.JacobianA.Linear = linear
		l.JacobianB.Linear = math3.Negate(linear)
		l.JacobianA.Angular = angularA
		l.JacobianB.Angular = angularB
		l.VelocityBias = math3.Vec3{(offset - l.MaximumOffset) * l.ErrorCorrectionFactor(), 0, 0}
	default:
		l.JacobianA.Linear = math3.Mat3{}
		l.JacobianB.Linear = math3.Mat3{}
		l.JacobianA.Angular = math3.Mat3{}
		l.JacobianB.Angular = math3.Mat3{}
		l.VelocityBias = math3.Zero
	}
}
