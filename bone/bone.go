// Package bone defines the rigid-body type the solver moves: a capsule-shaped
// segment with position, orientation, mass/inertia, and the traversal flags
// the active-set graph analysis reads and writes mid-pass.
package bone

import "github.com/ikrig/ik/math3"

const (
	// Epsilon is the mass at or below which SetMass treats the value as
	// numerically zero and floors the inverse mass.
	Epsilon = 1e-7

	// InertiaTensorScaling is the default multiplier applied to the capsule
	// inertia tensor.
	InertiaTensorScaling = 2.5
)

// Joint is the subset of a two-bone constraint a Bone needs to know about
// for adjacency bookkeeping; constraint.TwoBoneJoint satisfies it.
type Joint interface {
	Enabled() bool
}

// Bone is a rigid body participating in the IK rig.
type Bone struct {
	Position    math3.Vec3
	Orientation math3.Quat

	inverseMass float64
	radius      float64
	halfHeight  float64
	scaling     float64

	localInertiaTensorInverse math3.Mat3
	InertiaTensorInverse      math3.Mat3 // world-space, refreshed by UpdateInertiaTensor

	LinearVelocity  math3.Vec3
	AngularVelocity math3.Vec3

	Pinned bool

	// Traversal scratch state, owned by whichever ActiveSet pass is
	// currently running. Must be false/zero/empty between passes.
	Active                 bool
	Traversed              bool
	UnstressedCycle        bool
	TargetedByOtherControl bool
	StressCount            int
	Predecessors           []*Bone

	Joints []Joint
}

// New creates a Bone with unit mass at the given position and orientation,
// with the given radius and height, matching the teacher's
// transform-then-physical-property constructor order.
func New(position math3.Vec3, orientation math3.Quat, radius, height float64) *Bone {
	b := &Bone{
		Position:    position,
		Orientation: orientation,
		scaling:     InertiaTensorScaling,
	}
	b.SetMass(1)
	b.SetRadius(radius)
	b.SetHeight(height)
	return b
}

// Mass returns 1/inverseMass.
func (b *Bone) Mass() float64 { return 1 / b.inverseMass }

// InverseMass returns the bone's inverse mass as stored (not adjusted for
// Pinned; callers that need the effective, pin-aware value should check
// Pinned themselves, as the solver does).
func (b *Bone) InverseMass() float64 { return b.inverseMass }

// SetMass sets the bone's mass, flooring the inverse mass at 1e7 for
// near-zero masses to avoid propagating NaNs through long chains, and
// recomputes the local inertia tensor (it depends on mass).
func (b *Bone) SetMass(value float64) {
	if value > Epsilon {
		b.inverseMass = 1 / value
	} else {
		b.inverseMass = 1e7
	}
	b.computeLocalInertiaTensor()
}

// Radius returns the capsule radius used for inertia computation.
func (b *Bone) Radius() float64 { return b.radius }

// SetRadius sets the capsule radius and recomputes the local inertia tensor.
func (b *Bone) SetRadius(value float64) {
	b.radius = value
	b.computeLocalInertiaTensor()
}

// Height returns the capsule height (2x half-height).
func (b *Bone) Height() float64 { return b.halfHeight * 2 }

// SetHeight sets the capsule height and recomputes the local inertia tensor.
func (b *Bone) SetHeight(value float64) {
	b.halfHeight = value / 2
	b.computeLocalInertiaTensor()
}

func (b *Bone) computeLocalInertiaTensor() {
	multiplier := b.Mass() * b.scaling
	height := b.Height()
	diag := (0.0833333333*height*height + 0.25*b.radius*b.radius) * multiplier
	var local math3.Mat3
	local[0][0] = diag
	local[1][1] = 0.5 * b.radius * b.radius * multiplier
	local[2][2] = diag
	b.localInertiaTensorInverse = math3.Invert(local)
}

// UpdateInertiaTensor rotates the local inverse inertia tensor into world
// space. The composition order here — transpose(R)*Ilocal⁻¹ then *R, via
// MultiplyTransposed then Multiply — is not the textbook R*I*Rᵀ; it is the
// order every Jacobian in this package was derived against, and must not be
// "corrected" to the standard form (see SPEC_FULL.md §9).
func (b *Bone) UpdateInertiaTensor() {
	r := math3.FromQuat(b.Orientation)
	b.InertiaTensorInverse = math3.Multiply(math3.MultiplyTransposed(r, b.localInertiaTensorInverse), r)
}

// UpdatePosition integrates position and orientation from the current
// velocities with no dt scaling, then zeroes both velocities. Softness
// already encodes dt in its derivation (see constraint.Base.Preupdate), and
// bones never accumulate more than one iteration's worth of velocity before
// this runs, so scaling here would double-count it.
func (b *Bone) UpdatePosition() {
	b.Position = b.Position.Add(b.LinearVelocity)

	inc := b.AngularVelocity.Mul(0.5)
	multiplier := math3.Quat{W: 0, V: inc}.Mul(b.Orientation)
	b.Orientation = b.Orientation.Add(multiplier).Normalize()

	b.LinearVelocity = math3.Zero
	b.AngularVelocity = math3.Zero
}

// ApplyLinearImpulse adds impulse*inverseMass to the bone's linear velocity.
// Callers must skip pinned bones themselves (pinned bones act as having
// infinite mass; this method does not check Pinned).
func (b *Bone) ApplyLinearImpulse(impulse math3.Vec3) {
	b.LinearVelocity = b.LinearVelocity.Add(impulse.Mul(b.inverseMass))
}

// ApplyAngularImpulse adds InertiaTensorInverse*impulse to the bone's
// angular velocity. Callers must skip pinned bones themselves.
func (b *Bone) ApplyAngularImpulse(impulse math3.Vec3) {
	b.AngularVelocity = b.AngularVelocity.Add(math3.Transform(impulse, b.InertiaTensorInverse))
}

// ClearTraversalFlags resets the scratch fields an ActiveSet pass owns.
// Every pass must leave bones in this state when it finishes.
func (b *Bone) ClearTraversalFlags() {
	b.Active = false
	b.Traversed = false
	b.UnstressedCycle = false
	b.TargetedByOtherControl = false
	b.StressCount = 0
	b.Predecessors = b.Predecessors[:0]
}
