package control

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/constraint/motor"
	"github.com/ikrig/ik/math3"
)

// RevoluteControl keeps a bone-local axis aligned with a world-space free
// axis — a hinge held on its pivot, a wheel kept rolling around one
// direction — without driving any particular angle around that axis.
type RevoluteControl struct {
	base
	revolute *motor.RevoluteConstraint
}

// NewRevoluteControl creates a revolute control on bone b holding
// boneLocalFreeAxis aligned to freeAxis, a world-space direction.
func NewRevoluteControl(b *bone.Bone, boneLocalFreeAxis, freeAxis math3.Vec3) *RevoluteControl {
	c := &RevoluteControl{base: base{targetBone: b, enabled: true}}
	c.revolute = motor.NewRevoluteConstraint(b, boneLocalFreeAxis, freeAxis)
	c.revolute.SetRigidity(constraint.DefaultControlRigidity)
	return c
}

// FreeAxis returns the world-space axis the bone-local axis is held against.
func (c *RevoluteControl) FreeAxis() math3.Vec3 { return c.revolute.FreeAxis() }

// SetFreeAxis sets the world-space target axis.
func (c *RevoluteControl) SetFreeAxis(axis math3.Vec3) { c.revolute.SetFreeAxis(axis) }

// Motors returns the control's single motor.
func (c *RevoluteControl) Motors() []constraint.Motor { return []constraint.Motor{c.revolute} }

// ClearAccumulatedImpulses zeroes the revolute motor's accumulated impulse.
func (c *RevoluteControl) ClearAccumulatedImpulses() { clearAccumulatedImpulses(c) }
