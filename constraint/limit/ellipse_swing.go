package limit

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/math3"
)

// EllipseSwingLimit caps bone B's swing relative to bone A within an
// elliptical cone instead of SwingLimit's circular one, letting a joint
// bend further in one plane than the other (a shoulder's forward reach vs.
// its sideways reach). The cone is defined in bone A's local basis: AxisA
// is the cone's main axis, BasisX/BasisY the two swing directions the
// independent half-angles MaximumAngleX/MaximumAngleY apply to.
type EllipseSwingLimit struct {
	constraint.TwoBoneJoint

	AxisA, BasisX, BasisY        math3.Vec3
	AxisB                        math3.Vec3
	MaximumAngleX, MaximumAngleY float64
}

// NewEllipseSwingLimit creates an elliptical swing cone between a and b.
func NewEllipseSwingLimit(a, b *bone.Bone, axisA, basisX, basisY, axisB math3.Vec3, maximumAngleX, maximumAngleY float64) *EllipseSwingLimit {
	l := &EllipseSwingLimit{AxisA: axisA, BasisX: basisX, BasisY: basisY, AxisB: axisB, MaximumAngleX: maximumAngleX, MaximumAngleY: maximumAngleY}
	l.TwoBoneJoint = constraint.NewTwoBoneJoint(a, b, constraint.DefaultRigidity, l)
	l.OneSided = true
	return l
}

// UpdateJacobiansAndVelocityBias decomposes the relative rotation between
// the two world axes into an axis-angle vector, projects it onto bone A's
// X/Y basis to get the two swing components, and evaluates the ellipse
// error x²*maxY² + y²*maxX² - maxX²*maxY². A positive error means the
// swing has left the ellipse; the constraint engages along the gradient of
// that error, which always points outward, and goes inert otherwise.
func (l *EllipseSwingLimit) UpdateJacobiansAndVelocityBias() {
	boneA, boneB := l.BoneA(), l.BoneB()

	worldAxisA := boneA.Orientation.Rotate(l.AxisA)
	worldAxisB := boneB.Orientation.Rotate(l.AxisB)
	worldBasisX := boneA.Orientation.Rotate(l.BasisX)
	worldBasisY := boneA.Orientation.Rotate(l.BasisY)

	relativeRotation := math3.QuatBetween(worldAxisA, worldAxisB)
	axis, angle := math3.AxisAngle(relativeRotation)
	swing := axis.Mul(angle)

	angleX := swing.Dot(worldBasisX)
	angleY := swing.Dot(worldBasisY)

	maxXSq := l.MaximumAngleX * l.MaximumAngleX
	maxYSq := l.MaximumAngleY * l.MaximumAngleY
	errorMetric := angleX*angleX*maxYSq + angleY*angleY*maxXSq - maxXSq*maxYSq

	if errorMetric <= 0 {
		l.JacobianA.Angular = math3.Mat3{}
		l.JacobianB.Angular = math3.Mat3{}
		l.JacobianA.Linear = math3.Mat3{}
		l.JacobianB.Linear = math3.Mat3{}
		l.VelocityBias = math3.Zero
		return
	}

	gradient := worldBasisX.Mul(2 * angleX * maxYSq).Add(worldBasisY.Mul(2 * angleY * maxXSq))
	if gradient.LenSqr() < 1e-12 {
		gradient = worldAxisA
	}
	restrictedAxis := gradient.Normalize()

	var angular math3.Mat3
	angular[0] = restrictedAxis

	l.JacobianA.Angular = angular
	l.JacobianB.Angular = math3.Negate(angular)
	l.JacobianA.Linear = math3.Mat3{}
	l.JacobianB.Linear = math3.Mat3{}

	l.VelocityBias = math3.Vec3{errorMetric * l.ErrorCorrectionFactor(), 0, 0}
}
