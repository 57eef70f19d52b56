// Package constraint holds the shared impulse-solving protocol all joints,
// limits, and motors implement, plus the two body-count specializations
// (SingleBoneConstraint, TwoBoneJoint) variants embed.
package constraint

import (
	"math"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/ikerr"
	"github.com/ikrig/ik/math3"
)

// DefaultRigidity is the rigidity every joint and limit defaults to.
const DefaultRigidity = 16

// DefaultControlRigidity is the softer rigidity controls' motors default to.
const DefaultControlRigidity = 1

// stiffnessOverDamping is the fixed ratio between stiffness and damping a
// Base derives stiffness/damping from rigidity with.
const stiffnessOverDamping = 0.25

// Jacobian holds the linear and angular 3x3 blocks a constraint produces
// for one attached bone.
type Jacobian struct {
	Linear  math3.Mat3
	Angular math3.Mat3
}

// Base holds the rigidity/softness/force parameters and Jacobian/impulse
// state shared by every constraint kind, and implements the Preupdate math
// common to all of them.
type Base struct {
	rigidity     float64
	maximumForce float64

	softness              float64
	errorCorrectionFactor float64
	maximumImpulse        float64
	maximumImpulseSquared float64

	JacobianA, JacobianB Jacobian
	EffectiveMass        math3.Mat3
	AccumulatedImpulse   math3.Vec3
	VelocityBias         math3.Vec3
}

// Rigidity returns the constraint's rigidity.
func (b *Base) Rigidity() float64 { return b.rigidity }

// SetRigidity sets the constraint's rigidity. Rigidity must be strictly
// positive; returns a ConfigError otherwise.
func (b *Base) SetRigidity(value float64) error {
	if value <= 0 {
		return ikerr.NewConfigError("rigidity", "must be > 0")
	}
	b.rigidity = value
	return nil
}

// MaximumForce returns the constraint's maximum force.
func (b *Base) MaximumForce() float64 { return b.maximumForce }

// SetMaximumForce clamps value to >= 0 and stores it.
func (b *Base) SetMaximumForce(value float64) {
	if value < 0 {
		value = 0
	}
	b.maximumForce = value
}

// Preupdate derives softness, error-correction factor, and maximum impulse
// from rigidity, dt, and updateRate (= 1/dt). Must run once per solver
// iteration loop before the first ComputeEffectiveMass.
func (b *Base) Preupdate(dt, updateRate float64) {
	stiffness := stiffnessOverDamping * b.rigidity
	damping := b.rigidity
	multiplier := 1 / (dt*stiffness + damping)
	b.errorCorrectionFactor = stiffness * multiplier
	b.softness = updateRate * multiplier

	b.maximumImpulse = b.maximumForce * dt
	squared := b.maximumImpulse * b.maximumImpulse
	if math.IsInf(squared, 1) || math.IsNaN(squared) {
		squared = math.MaxFloat64
	}
	b.maximumImpulseSquared = squared
}

// ErrorCorrectionFactor returns the Preupdate-derived error-correction
// factor, for use by UpdateJacobiansAndVelocityBias implementations.
func (b *Base) ErrorCorrectionFactor() float64 { return b.errorCorrectionFactor }

// Softness returns the Preupdate-derived softness regularization term.
func (b *Base) Softness() float64 { return b.softness }

// addSoftnessToNonzeroDiagonal adds softness to each diagonal entry of m
// that is nonzero, per the shared ComputeEffectiveMass step.
func (b *Base) addSoftnessToNonzeroDiagonal(m math3.Mat3) math3.Mat3 {
	if m[0][0] != 0 {
		m[0][0] += b.softness
	}
	if m[1][1] != 0 {
		m[1][1] += b.softness
	}
	if m[2][2] != 0 {
		m[2][2] += b.softness
	}
	return m
}

// clampImpulse applies the shared accumulate/clamp step of
// SolveVelocityIteration: adds delta to the accumulated impulse, optionally
// floors each component at zero (limits only — "limits can only push"),
// then clamps by length to maximumImpulse. It returns the delta actually
// applied, which may differ from delta once clamping kicks in.
func (b *Base) clampImpulse(delta math3.Vec3, oneSided bool) math3.Vec3 {
	preadd := b.AccumulatedImpulse
	accumulated := preadd.Add(delta)
	if oneSided {
		accumulated = math3.Max(math3.Zero, accumulated)
	}
	if lenSq := accumulated.LenSqr(); lenSq > b.maximumImpulseSquared {
		accumulated = accumulated.Mul(b.maximumImpulse / math.Sqrt(lenSq))
	}
	b.AccumulatedImpulse = accumulated
	return accumulated.Sub(preadd)
}

// ClearAccumulatedImpulses zeroes the accumulated impulse.
func (b *Base) ClearAccumulatedImpulses() {
	b.AccumulatedImpulse = math3.Zero
}

// TwoBodyConstraint is the shared interface both joints and limits satisfy,
// used by ActiveSet and Solver to drive the solve protocol without knowing
// the concrete variant.
type TwoBodyConstraint interface {
	BoneA() *bone.Bone
	BoneB() *bone.Bone
	Enabled() bool
	SetEnabled(bool)
	Preupdate(dt, updateRate float64)
	UpdateJacobiansAndVelocityBias()
	ComputeEffectiveMass()
	WarmStart()
	SolveVelocityIteration()
	ClearAccumulatedImpulses()
}

// Motor is the interface single-bone constraints backing a Control satisfy.
type Motor interface {
	TargetBone() *bone.Bone
	Preupdate(dt, updateRate float64)
	UpdateJacobiansAndVelocityBias()
	ComputeEffectiveMass()
	WarmStart()
	SolveVelocityIteration()
	ClearAccumulatedImpulses()
	MaximumForce() float64
	SetMaximumForce(float64)
}
