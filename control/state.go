package control

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/constraint/motor"
	"github.com/ikrig/ik/math3"
)

// StateControl drives both a bone's position and its full orientation
// toward independent goals via a LinearMotor and an AngularMotor, the
// control used for end effectors that care about pose, not just placement.
type StateControl struct {
	base
	linear  *motor.LinearMotor
	angular *motor.AngularMotor
}

// NewStateControl creates a state control on bone b at the given
// local-frame offset.
func NewStateControl(b *bone.Bone, localOffset math3.Vec3) *StateControl {
	c := &StateControl{base: base{targetBone: b, enabled: true}}
	c.linear = motor.NewLinearMotor(b)
	c.linear.LocalOffset = localOffset
	c.linear.Goal = b.Position.Add(b.Orientation.Rotate(localOffset))
	c.linear.SetRigidity(constraint.DefaultControlRigidity)

	c.angular = motor.NewAngularMotor(b)
	c.angular.Goal = b.Orientation
	c.angular.SetRigidity(constraint.DefaultControlRigidity)
	return c
}

// TargetPosition returns the world-space position goal.
func (c *StateControl) TargetPosition() math3.Vec3 { return c.linear.Goal }

// SetTargetPosition sets the world-space position goal.
func (c *StateControl) SetTargetPosition(p math3.Vec3) { c.linear.Goal = p }

// TargetOrientation returns the orientation goal.
func (c *StateControl) TargetOrientation() math3.Quat { return c.angular.Goal }

// SetTargetOrientation sets the orientation goal.
func (c *StateControl) SetTargetOrientation(q math3.Quat) { c.angular.Goal = q }

// Motors returns the control's linear and angular motors.
func (c *StateControl) Motors() []constraint.Motor {
	return []constraint.Motor{c.linear, c.angular}
}

// ClearAccumulatedImpulses zeroes both motors' accumulated impulses.
func (c *StateControl) ClearAccumulatedImpulses() { clearAccumulatedImpulses(c) }
