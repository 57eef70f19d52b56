// Package rig provides Rig, a convenience container that owns a bone/joint
// graph and the controls driving it behind a single Solve entry point. It is
// not part of the core solve contract — a caller is free to manage bones,
// joints, controls, and a solver.Solver directly — but it is the shape most
// callers want: one object to add bones and joints to, attach controls to,
// and step forward.
package rig

import (
	"go.uber.org/zap"

	"github.com/ikrig/ik/activeset"
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/control"
	"github.com/ikrig/ik/solver"
)

// Rig owns a bone/joint graph, the controls currently attached to it, and
// the Solver that drives both.
type Rig struct {
	Bones    []*bone.Bone
	Joints   []constraint.TwoBodyConstraint
	Controls []control.Control

	Solver *solver.Solver
}

// New creates an empty Rig with the given automass tuning and a Solver at
// the spec's default iteration counts. A nil logger falls back to zap's
// no-op logger.
func New(useAutomass bool, automassTarget, automassUnstressedFalloff float64, log *zap.Logger) (*Rig, error) {
	set, err := activeset.New(useAutomass, automassTarget, automassUnstressedFalloff)
	if err != nil {
		return nil, err
	}
	return &Rig{Solver: solver.New(set, log)}, nil
}

// AddBone adds a bone to the rig and returns it, for chaining into joint
// construction.
func (r *Rig) AddBone(b *bone.Bone) *bone.Bone {
	r.Bones = append(r.Bones, b)
	return b
}

// AddJoint adds a joint or limit to the rig.
func (r *Rig) AddJoint(j constraint.TwoBodyConstraint) {
	r.Joints = append(r.Joints, j)
}

// AddControl attaches a control to the rig. A control need not target a
// bone owned by this rig (e.g. when composing rigs), but it must not target
// a pinned bone — Solve reports that as a GraphError rather than panicking.
func (r *Rig) AddControl(c control.Control) {
	r.Controls = append(r.Controls, c)
}

// RemoveBone removes a bone from the rig. It does not detach joints or
// controls still referencing it; callers that remove a bone mid-graph are
// responsible for also removing or disabling whatever still targets it.
func (r *Rig) RemoveBone(b *bone.Bone) {
	for i, x := range r.Bones {
		if x == b {
			r.Bones = append(r.Bones[:i], r.Bones[i+1:]...)
			return
		}
	}
}

// RemoveControl removes a control from the rig.
func (r *Rig) RemoveControl(c control.Control) {
	for i, x := range r.Controls {
		if x == c {
			r.Controls = append(r.Controls[:i], r.Controls[i+1:]...)
			return
		}
	}
}

// enabledControls returns the subset of r.Controls currently enabled.
func (r *Rig) enabledControls() []control.Control {
	out := make([]control.Control, 0, len(r.Controls))
	for _, c := range r.Controls {
		if c.Enabled() {
			out = append(out, c)
		}
	}
	return out
}

// Solve runs one control-then-fixer solve over every enabled control
// attached to the rig, using the rig's full joint graph. A control
// targeting a pinned bone is skipped for this solve and reported as an
// error rather than aborting the others.
func (r *Rig) Solve() error {
	return r.Solver.SolveWithControls(r.enabledControls())
}

// Relax runs a fixer-only solve over the rig's joint graph with no
// controls, letting accumulated constraint error settle — useful after
// directly moving a bone (e.g. replaying an animation) without going
// through a control.
func (r *Rig) Relax() {
	r.Solver.SolveWithJoints(r.Joints)
}
