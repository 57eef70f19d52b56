package control

import (
	"testing"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/math3"
)

func TestOrientedDragControl_ClearAccumulatedImpulsesSnapsOrientation(t *testing.T) {
	b := bone.New(math3.Zero, math3.Quat{W: 1}, 0.1, 1)
	c := NewOrientedDragControl(b, math3.Zero)

	target := math3.QuatBetween(math3.Up, math3.Right)
	c.TargetOrientation = target
	c.linear.AccumulatedImpulse = math3.Vec3{1, 2, 3}

	b.Orientation = math3.Quat{W: 1}

	c.ClearAccumulatedImpulses()

	if c.linear.AccumulatedImpulse != math3.Zero {
		t.Errorf("AccumulatedImpulse after ClearAccumulatedImpulses = %v, want zero", c.linear.AccumulatedImpulse)
	}
	if b.Orientation != target {
		t.Errorf("bone.Orientation after ClearAccumulatedImpulses = %v, want %v", b.Orientation, target)
	}
}

func TestDragControl_ClearAccumulatedImpulsesDoesNotTouchOrientation(t *testing.T) {
	b := bone.New(math3.Zero, math3.Quat{W: 1}, 0.1, 1)
	c := NewDragControl(b, math3.Zero)
	c.linear.AccumulatedImpulse = math3.Vec3{1, 2, 3}

	c.ClearAccumulatedImpulses()

	if c.linear.AccumulatedImpulse != math3.Zero {
		t.Errorf("AccumulatedImpulse after ClearAccumulatedImpulses = %v, want zero", c.linear.AccumulatedImpulse)
	}
	if b.Orientation != (math3.Quat{W: 1}) {
		t.Errorf("bone.Orientation changed to %v, want unchanged", b.Orientation)
	}
}
