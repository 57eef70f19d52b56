package control

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/constraint/motor"
	"github.com/ikrig/ik/math3"
)

// DragControl pulls a bone-local point toward a world-space target
// position, the simplest control: a single LinearMotor.
type DragControl struct {
	base
	linear *motor.LinearMotor
}

// NewDragControl creates a drag control on bone b at the given local-frame
// offset, targeting that offset point's current world position.
func NewDragControl(b *bone.Bone, localOffset math3.Vec3) *DragControl {
	c := &DragControl{base: base{targetBone: b, enabled: true}}
	c.linear = motor.NewLinearMotor(b)
	c.linear.LocalOffset = localOffset
	c.linear.Goal = b.Position.Add(b.Orientation.Rotate(localOffset))
	c.linear.SetRigidity(constraint.DefaultControlRigidity)
	return c
}

// TargetPosition returns the world-space goal the control drives toward.
func (c *DragControl) TargetPosition() math3.Vec3 { return c.linear.Goal }

// SetTargetPosition sets the world-space goal.
func (c *DragControl) SetTargetPosition(p math3.Vec3) { c.linear.Goal = p }

// Motors returns the control's single motor.
func (c *DragControl) Motors() []constraint.Motor { return []constraint.Motor{c.linear} }

// ClearAccumulatedImpulses zeroes the drag motor's accumulated impulse.
func (c *DragControl) ClearAccumulatedImpulses() { clearAccumulatedImpulses(c) }
