package control

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/constraint/motor"
	"github.com/ikrig/ik/math3"
)

// OrientedDragControl drags a point toward a target position like
// DragControl, and additionally snaps the bone's orientation directly to
// TargetOrientation when ClearAccumulatedImpulses runs at the end of the
// solve — an override rather than a motor, since the override must not
// fight the position motor's own angular contribution mid-solve.
type OrientedDragControl struct {
	base
	linear            *motor.LinearMotor
	TargetOrientation math3.Quat
}

// NewOrientedDragControl creates an oriented drag control on bone b.
func NewOrientedDragControl(b *bone.Bone, localOffset math3.Vec3) *OrientedDragControl {
	c := &OrientedDragControl{base: base{targetBone: b, enabled: true}, TargetOrientation: b.Orientation}
	c.linear = motor.NewLinearMotor(b)
	c.linear.LocalOffset = localOffset
	c.linear.Goal = b.Position.Add(b.Orientation.Rotate(localOffset))
	c.linear.SetRigidity(constraint.DefaultControlRigidity)
	return c
}

// TargetPosition returns the world-space goal the drag motor drives toward.
func (c *OrientedDragControl) TargetPosition() math3.Vec3 { return c.linear.Goal }

// SetTargetPosition sets the world-space drag goal.
func (c *OrientedDragControl) SetTargetPosition(p math3.Vec3) { c.linear.Goal = p }

// Motors returns the control's single drag motor; the orientation override
// is applied separately, by ClearAccumulatedImpulses.
func (c *OrientedDragControl) Motors() []constraint.Motor { return []constraint.Motor{c.linear} }

// ClearAccumulatedImpulses zeroes the drag motor's accumulated impulse, then
// snaps the bone's orientation to TargetOrientation. Solver calls this once,
// at the very end of the whole solve — the override must not run mid-solve,
// where it would fight the position motor's own angular contribution.
func (c *OrientedDragControl) ClearAccumulatedImpulses() {
	clearAccumulatedImpulses(c)
	c.targetBone.Orientation = c.TargetOrientation
}
