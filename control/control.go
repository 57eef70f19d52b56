// Package control holds the user-facing goals the solver pursues: each
// Control owns one or more constraint.Motor instances bound to a single
// target bone, and Solver drives those motors the way it drives any other
// single-bone constraint.
package control

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
)

// Control is the interface Solver and ActiveSet use to drive any control
// variant without knowing its concrete type.
type Control interface {
	TargetBone() *bone.Bone
	Enabled() bool
	SetEnabled(bool)
	Motors() []constraint.Motor
	ClearAccumulatedImpulses()
}

// clearAccumulatedImpulses zeroes the accumulated impulse of every motor
// backing c, the shared implementation each Control's
// ClearAccumulatedImpulses delegates to.
func clearAccumulatedImpulses(c Control) {
	for _, m := range c.Motors() {
		m.ClearAccumulatedImpulses()
	}
}

// base holds the fields every Control variant shares.
type base struct {
	targetBone *bone.Bone
	enabled    bool
}

// TargetBone returns the bone this control acts on.
func (c *base) TargetBone() *bone.Bone { return c.targetBone }

// Enabled reports whether the control currently participates in solves.
func (c *base) Enabled() bool { return c.enabled }

// SetEnabled toggles whether the control participates in solves.
func (c *base) SetEnabled(value bool) { c.enabled = value }
