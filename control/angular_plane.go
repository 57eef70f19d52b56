package control

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/constraint/motor"
	"github.com/ikrig/ik/math3"
)

// AngularPlaneControl keeps a bone-local axis perpendicular to a
// world-space plane normal — a foot kept level, a gaze axis kept in a
// fixed plane — without pinning any other rotational degree of freedom.
type AngularPlaneControl struct {
	base
	plane *motor.AngularPlaneConstraint
}

// NewAngularPlaneControl creates a plane control on bone b restricting
// boneLocalAxis to the plane with the given normal.
func NewAngularPlaneControl(b *bone.Bone, boneLocalAxis, planeNormal math3.Vec3) *AngularPlaneControl {
	c := &AngularPlaneControl{base: base{targetBone: b, enabled: true}}
	c.plane = motor.NewAngularPlaneConstraint(b)
	c.plane.LocalAxis = boneLocalAxis
	c.plane.PlaneNormal = planeNormal
	c.plane.SetRigidity(constraint.DefaultControlRigidity)
	return c
}

// PlaneNormal returns the world-space plane normal.
func (c *AngularPlaneControl) PlaneNormal() math3.Vec3 { return c.plane.PlaneNormal }

// SetPlaneNormal sets the world-space plane normal.
func (c *AngularPlaneControl) SetPlaneNormal(n math3.Vec3) { c.plane.PlaneNormal = n }

// Motors returns the control's single motor.
func (c *AngularPlaneControl) Motors() []constraint.Motor { return []constraint.Motor{c.plane} }

// ClearAccumulatedImpulses zeroes the plane motor's accumulated impulse.
func (c *AngularPlaneControl) ClearAccumulatedImpulses() { clearAccumulatedImpulses(c) }
