// Command chainreach builds a four-bone arm (shoulder pinned, elbow, wrist,
// fingertip) connected by ball-socket joints and swing limits, attaches a
// drag control to the fingertip, and runs a few solves while the drag
// target moves, printing the fingertip's position after each solve.
package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint/joint"
	"github.com/ikrig/ik/constraint/limit"
	"github.com/ikrig/ik/control"
	"github.com/ikrig/ik/math3"
	"github.com/ikrig/ik/rig"
)

func buildArm(r *rig.Rig) (shoulder, elbow, wrist, tip *bone.Bone) {
	const segment = 1.0
	identity := math3.Quat{W: 1}
	half := math3.Vec3{segment / 2, 0, 0}
	negHalf := math3.Vec3{-segment / 2, 0, 0}

	shoulder = r.AddBone(bone.New(math3.Vec3{0, 0, 0}, identity, 0.15, segment))
	shoulder.Pinned = true

	elbow = r.AddBone(bone.New(math3.Vec3{segment, 0, 0}, identity, 0.12, segment))
	wrist = r.AddBone(bone.New(math3.Vec3{2 * segment, 0, 0}, identity, 0.10, segment))
	tip = r.AddBone(bone.New(math3.Vec3{3 * segment, 0, 0}, identity, 0.05, 0.2))

	shoulderElbow := joint.NewBallSocketJoint(shoulder, elbow, half, negHalf)
	elbowWrist := joint.NewBallSocketJoint(elbow, wrist, half, negHalf)
	wristTip := joint.NewBallSocketJoint(wrist, tip, half, negHalf)

	elbowSwing := limit.NewSwingLimit(shoulder, elbow, math3.Right, math3.Right, 2.2)
	wristSwing := limit.NewSwingLimit(elbow, wrist, math3.Right, math3.Right, 2.6)

	r.AddJoint(shoulderElbow)
	r.AddJoint(elbowWrist)
	r.AddJoint(wristTip)
	r.AddJoint(elbowSwing)
	r.AddJoint(wristSwing)

	return shoulder, elbow, wrist, tip
}

func main() {
	log, _ := zap.NewDevelopment()
	defer log.Sync()

	r, err := rig.New(true, 1.0, 0.5, log)
	if err != nil {
		panic(err)
	}

	_, _, _, tip := buildArm(r)

	drag := control.NewDragControl(tip, math3.Zero)
	drag.SetTargetPosition(tip.Position)
	r.AddControl(drag)

	targets := []math3.Vec3{
		{2.5, 1.5, 0},
		{1.0, 2.0, 1.0},
		{0.5, 0.5, -1.5},
	}

	for i, target := range targets {
		drag.SetTargetPosition(target)
		if err := r.Solve(); err != nil {
			log.Warn("solve reported a graph error", zap.Error(err))
		}
		fmt.Printf("step %d: target=%v fingertip=%v\n", i, target, tip.Position)
	}
}
