package rig_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint/joint"
	"github.com/ikrig/ik/constraint/limit"
	"github.com/ikrig/ik/control"
	"github.com/ikrig/ik/math3"
	"github.com/ikrig/ik/rig"
)

// RigSuite exercises Rig.Solve against small hand-built chains, the way a
// full IK rig is actually assembled and driven.
type RigSuite struct {
	suite.Suite
}

func TestRigSuite(t *testing.T) {
	suite.Run(t, new(RigSuite))
}

func identityOrientation() math3.Quat { return math3.Quat{W: 1} }

// TestTwoBoneChainReachesDragTarget verifies a minimal pinned-shoulder,
// free-elbow, free-wrist chain converges its end effector close to a
// reachable drag target.
func (s *RigSuite) TestTwoBoneChainReachesDragTarget() {
	r, err := rig.New(false, 1.0, 0.5, nil)
	require.NoError(s.T(), err)

	shoulder := r.AddBone(bone.New(math3.Vec3{0, 0, 0}, identityOrientation(), 0.1, 1))
	shoulder.Pinned = true
	elbow := r.AddBone(bone.New(math3.Vec3{1, 0, 0}, identityOrientation(), 0.1, 1))
	wrist := r.AddBone(bone.New(math3.Vec3{2, 0, 0}, identityOrientation(), 0.1, 1))

	r.AddJoint(joint.NewBallSocketJoint(shoulder, elbow, math3.Vec3{0.5, 0, 0}, math3.Vec3{-0.5, 0, 0}))
	r.AddJoint(joint.NewBallSocketJoint(elbow, wrist, math3.Vec3{0.5, 0, 0}, math3.Vec3{-0.5, 0, 0}))

	drag := control.NewDragControl(wrist, math3.Zero)
	target := math3.Vec3{1.5, 1.0, 0}
	drag.SetTargetPosition(target)
	r.AddControl(drag)

	require.NoError(s.T(), r.Solve())

	distance := wrist.Position.Sub(target).Len()
	require.Less(s.T(), distance, 0.1, "wrist should land near the drag target, got %v (target %v)", wrist.Position, target)
}

// TestSolveSkipsControlTargetingPinnedBone verifies a control on a pinned
// bone is reported, not silently applied.
func (s *RigSuite) TestSolveSkipsControlTargetingPinnedBone() {
	r, err := rig.New(false, 1.0, 0.5, nil)
	require.NoError(s.T(), err)

	pinned := r.AddBone(bone.New(math3.Zero, identityOrientation(), 0.1, 1))
	pinned.Pinned = true

	drag := control.NewDragControl(pinned, math3.Zero)
	drag.SetTargetPosition(math3.Vec3{5, 5, 5})
	r.AddControl(drag)

	err = r.Solve()
	require.Error(s.T(), err)
}

// TestSwingLimitCapsElbowBend verifies a 0.3 rad swing limit keeps the elbow
// from folding past a right angle to the shoulder when a drag control pulls
// it straight up.
func (s *RigSuite) TestSwingLimitCapsElbowBend() {
	r, err := rig.New(false, 1.0, 0.5, nil)
	require.NoError(s.T(), err)

	shoulder := r.AddBone(bone.New(math3.Vec3{0, 0, 0}, identityOrientation(), 0.1, 1))
	shoulder.Pinned = true
	elbow := r.AddBone(bone.New(math3.Vec3{1, 0, 0}, identityOrientation(), 0.1, 1))

	r.AddJoint(joint.NewBallSocketJoint(shoulder, elbow, math3.Vec3{0.5, 0, 0}, math3.Vec3{-0.5, 0, 0}))
	r.AddJoint(limit.NewSwingLimit(shoulder, elbow, math3.Right, math3.Right, 0.3))

	drag := control.NewDragControl(elbow, math3.Zero)
	drag.SetTargetPosition(math3.Vec3{0, 5, 0})
	r.AddControl(drag)

	require.NoError(s.T(), r.Solve())

	worldAxisA := shoulder.Orientation.Rotate(math3.Right)
	worldAxisB := elbow.Orientation.Rotate(math3.Right)
	dot := worldAxisA.Dot(worldAxisB)
	if dot > 1 {
		dot = 1
	}
	require.GreaterOrEqual(s.T(), dot, 0.0, "swing limit should keep the elbow from folding past a right angle")
}
