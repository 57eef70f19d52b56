package activeset

import (
	"testing"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint/joint"
	"github.com/ikrig/ik/control"
	"github.com/ikrig/ik/math3"
)

func identity() math3.Quat { return math3.Quat{W: 1} }

func TestUpdateActiveSetControls_CollectsReachableBonesAndJoints(t *testing.T) {
	a, err := New(false, 1.0, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := bone.New(math3.Zero, identity(), 0.1, 1)
	root.Pinned = true
	mid := bone.New(math3.Vec3{1, 0, 0}, identity(), 0.1, 1)
	tip := bone.New(math3.Vec3{2, 0, 0}, identity(), 0.1, 1)

	j1 := joint.NewBallSocketJoint(root, mid, math3.Vec3{0.5, 0, 0}, math3.Vec3{-0.5, 0, 0})
	j2 := joint.NewBallSocketJoint(mid, tip, math3.Vec3{0.5, 0, 0}, math3.Vec3{-0.5, 0, 0})

	c := control.NewDragControl(tip, math3.Zero)

	a.UpdateActiveSetControls([]control.Control{c})

	if len(a.Joints) != 2 {
		t.Errorf("len(Joints) = %d, want 2", len(a.Joints))
	}
	if len(a.Bones) != 2 {
		t.Errorf("len(Bones) = %d, want 2 (mid, tip; pinned root is not collected)", len(a.Bones))
	}
	_ = j1
	_ = j2
}

func TestUpdateActiveSetControls_Automass_StressedBoneOutweighsUnstressedLimb(t *testing.T) {
	a, err := New(true, 10.0, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := bone.New(math3.Zero, identity(), 0.1, 1)
	root.Pinned = true
	// spine: the stressed path from control to pin.
	spine := bone.New(math3.Vec3{1, 0, 0}, identity(), 0.1, 1)
	// limb: hangs off spine but is not itself on a path to a pin or another
	// control, so it should end up lighter than spine.
	limb := bone.New(math3.Vec3{1, 1, 0}, identity(), 0.1, 1)

	joint.NewBallSocketJoint(root, spine, math3.Vec3{0.5, 0, 0}, math3.Vec3{-0.5, 0, 0})
	joint.NewBallSocketJoint(spine, limb, math3.Vec3{0, 0.5, 0}, math3.Vec3{0, -0.5, 0})

	c := control.NewDragControl(spine, math3.Zero)
	a.UpdateActiveSetControls([]control.Control{c})

	if spine.Mass() <= limb.Mass() {
		t.Errorf("spine.Mass() = %v, limb.Mass() = %v; want spine heavier (stressed path)", spine.Mass(), limb.Mass())
	}
}
