// Package activeset identifies, each solve, the subset of the bone/joint
// graph a set of controls actually needs to touch (the active set), and —
// when automass is enabled — assigns bone masses so that stressed paths
// (those bridging a control to a pinned bone, or to another control) carry
// more weight than unstressed limbs hanging off them.
//
// The algorithm is two DFS/BFS passes grounded directly on BEPUik's
// ActiveSet: FindStressedPaths marks every bone on a path from a control to
// a pin or another control with a StressCount; DistributeMass then walks
// outward from the controls a second time, giving stressed bones mass
// proportional to how many stress paths cross them and unstressed limbs a
// falling-off fraction of their parent's mass, with cycles in the
// unstressed part of the graph getting their full parent mass to avoid
// mass-ratio instability.
package activeset

import (
	"github.com/ikrig/ik/bone"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/control"
	"github.com/ikrig/ik/ikerr"
)

// ActiveSet holds the current solving frontier plus the automass tuning
// parameters. It must not be shared between two concurrent solves — the
// traversal flags it reads and writes live on the bones themselves.
type ActiveSet struct {
	Bones  []*bone.Bone
	Joints []constraint.TwoBodyConstraint

	UseAutomass               bool
	AutomassUnstressedFalloff float64
	AutomassTarget            float64

	bonesToVisit   []*bone.Bone
	touchedBones   []*bone.Bone
	uniqueChildren []*bone.Bone
}

// New creates an ActiveSet with the given automass tuning. AutomassTarget
// must be strictly positive.
func New(useAutomass bool, automassTarget, automassUnstressedFalloff float64) (*ActiveSet, error) {
	a := &ActiveSet{UseAutomass: useAutomass}
	if err := a.SetAutomassTarget(automassTarget); err != nil {
		return nil, err
	}
	a.SetAutomassUnstressedFalloff(automassUnstressedFalloff)
	return a, nil
}

// SetAutomassTarget sets the mass the heaviest bone in an automassed active
// set is normalized to. Must be strictly positive.
func (a *ActiveSet) SetAutomassTarget(value float64) error {
	if value <= 0 {
		return ikerr.NewConfigError("automass_target", "must be > 0")
	}
	a.AutomassTarget = value
	return nil
}

// SetAutomassUnstressedFalloff sets the per-hop mass multiplier applied
// down unstressed chains, floored at zero.
func (a *ActiveSet) SetAutomassUnstressedFalloff(value float64) {
	if value < 0 {
		value = 0
	}
	a.AutomassUnstressedFalloff = value
}

func neighborJoints(b *bone.Bone) []constraint.TwoBodyConstraint {
	var out []constraint.TwoBodyConstraint
	for _, j := range b.Joints {
		if tb, ok := j.(constraint.TwoBodyConstraint); ok && tb.Enabled() {
			out = append(out, tb)
		}
	}
	return out
}

func otherBone(j constraint.TwoBodyConstraint, b *bone.Bone) *bone.Bone {
	if j.BoneA() == b {
		return j.BoneB()
	}
	return j.BoneA()
}

func containsBone(list []*bone.Bone, b *bone.Bone) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}

// Clear resets every bone and joint currently in the active set to its
// pre-traversal state, matching the invariant that no bone may belong to
// two ActiveSets concurrently.
func (a *ActiveSet) Clear() {
	for _, b := range a.Bones {
		b.ClearTraversalFlags()
	}
	a.Bones = a.Bones[:0]
	a.Joints = a.Joints[:0]
	a.bonesToVisit = a.bonesToVisit[:0]
	a.touchedBones = a.touchedBones[:0]
}

func bonesHaveInteracted(b, child *bone.Bone) bool {
	for _, p := range b.Predecessors {
		if p == child {
			return true
		}
	}
	for _, p := range child.Predecessors {
		if p == b {
			return true
		}
	}
	return false
}

// notifyPredecessorsOfStress marks bone and every predecessor on its path
// back to a control as traversed and increments their stress count.
func notifyPredecessorsOfStress(b *bone.Bone) {
	if b.Traversed {
		return
	}
	b.Traversed = true
	b.StressCount++
	for _, p := range b.Predecessors {
		notifyPredecessorsOfStress(p)
	}
}

func (a *ActiveSet) findStressedPathsFrom(b *bone.Bone) {
	b.Active = true
	a.touchedBones = append(a.touchedBones, b)

	for _, j := range neighborJoints(b) {
		next := otherBone(j, b)
		if bonesHaveInteracted(b, next) {
			continue
		}

		if !next.Pinned {
			next.Predecessors = append(next.Predecessors, b)
		}

		if next.Pinned || next.Traversed {
			notifyPredecessorsOfStress(b)
			continue
		}

		if next.TargetedByOtherControl {
			notifyPredecessorsOfStress(b)
		}
		if next.Active {
			continue
		}

		a.findStressedPathsFrom(next)
	}
}

// findStressedPaths runs Phase A: a DFS from each control's target bone
// marking every bone on a path to a pin or another control as stressed.
// Stress counts persist across controls; traversal/active/predecessor
// state is reset between each control's DFS.
func (a *ActiveSet) findStressedPaths(controls []control.Control) {
	for _, c := range controls {
		for _, other := range controls {
			if other != c {
				other.TargetBone().TargetedByOtherControl = true
			}
		}

		a.touchedBones = a.touchedBones[:0]
		a.findStressedPathsFrom(c.TargetBone())

		for _, b := range a.touchedBones {
			b.Traversed = false
			b.Active = false
			b.Predecessors = b.Predecessors[:0]
		}

		for _, other := range controls {
			other.TargetBone().TargetedByOtherControl = false
		}
	}
	a.touchedBones = a.touchedBones[:0]
}

func notifyPredecessorsOfCycle(b *bone.Bone) {
	if !b.UnstressedCycle && b.StressCount == 0 {
		b.UnstressedCycle = true
		for _, p := range b.Predecessors {
			notifyPredecessorsOfCycle(p)
		}
	}
}

func (a *ActiveSet) findCycles(b *bone.Bone) {
	for _, j := range neighborJoints(b) {
		next := otherBone(j, b)
		if bonesHaveInteracted(b, next) {
			continue
		}
		next.Predecessors = append(next.Predecessors, b)

		if next.Active {
			notifyPredecessorsOfCycle(b)
			continue
		}

		next.Active = true
		a.touchedBones = append(a.touchedBones, next)
		a.findCycles(next)
	}
}

func (a *ActiveSet) distributeMassFrom(b *bone.Bone) {
	a.uniqueChildren = a.uniqueChildren[:0]
	for _, j := range neighborJoints(b) {
		next := otherBone(j, b)
		if next.Traversed || next.UnstressedCycle || containsBone(a.uniqueChildren, next) {
			continue
		}
		a.uniqueChildren = append(a.uniqueChildren, next)
	}

	var massPerChild float64
	if len(a.uniqueChildren) > 0 {
		massPerChild = a.AutomassUnstressedFalloff * b.Mass() / float64(len(a.uniqueChildren))
	}
	a.uniqueChildren = a.uniqueChildren[:0]

	for _, j := range neighborJoints(b) {
		next := otherBone(j, b)
		if next.Traversed {
			continue
		}

		if next.UnstressedCycle {
			next.SetMass(b.Mass())
		} else {
			next.SetMass(massPerChild)
		}
		next.Traversed = true
		a.distributeMassFrom(next)
	}
}

// distributeMass runs Phase B: a multi-source BFS from every control's
// target bone assigning bone masses — stressCount for stressed bones,
// AutomassUnstressedFalloff-scaled for unstressed limbs — then normalizes
// so the heaviest bone in the active set has AutomassTarget mass.
func (a *ActiveSet) distributeMass(controls []control.Control) {
	a.touchedBones = a.touchedBones[:0]
	queue := a.bonesToVisit[:0]
	for _, c := range controls {
		b := c.TargetBone()
		b.Active = true
		b.Traversed = true
		a.touchedBones = append(a.touchedBones, b)
		queue = append(queue, b)
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if b.StressCount == 0 {
			b.SetMass(a.AutomassUnstressedFalloff)
			a.findCycles(b)
			a.distributeMassFrom(b)
			continue
		}
		b.SetMass(float64(b.StressCount))

		for _, j := range neighborJoints(b) {
			next := otherBone(j, b)
			if next.Pinned || next.Active {
				continue
			}
			next.Active = true
			next.Traversed = true
			next.Predecessors = append(next.Predecessors, b)
			a.touchedBones = append(a.touchedBones, next)
			queue = append(queue, next)
		}
	}
	a.bonesToVisit = queue[:0]

	lowestInverseMass := 0.0
	first := true
	for _, b := range a.touchedBones {
		if first || b.InverseMass() < lowestInverseMass {
			lowestInverseMass = b.InverseMass()
			first = false
		}
	}
	if lowestInverseMass <= 0 {
		lowestInverseMass = 1
	}
	inverseMassScale := 1 / (a.AutomassTarget * lowestInverseMass)

	for _, b := range a.touchedBones {
		b.SetMass(b.Mass() / inverseMassScale)
		b.ClearTraversalFlags()
	}
	a.touchedBones = a.touchedBones[:0]
}

// UpdateActiveSetControls rebuilds the active set for a control-driven
// solve: when UseAutomass is set, runs the stress/mass passes first, then
// performs a breadth-first traversal from every control's target bone,
// collecting every reachable bone (stopping at pins) and enabled joint.
func (a *ActiveSet) UpdateActiveSetControls(controls []control.Control) {
	a.Clear()

	if a.UseAutomass {
		a.findStressedPaths(controls)
		a.distributeMass(controls)
	}

	queue := a.bonesToVisit[:0]
	for _, c := range controls {
		b := c.TargetBone()
		b.Active = true
		a.Bones = append(a.Bones, b)
		queue = append(queue, b)
	}

	jointSeen := make(map[constraint.TwoBodyConstraint]bool)
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		for _, j := range neighborJoints(b) {
			if !jointSeen[j] {
				jointSeen[j] = true
				a.Joints = append(a.Joints, j)
			}
			next := otherBone(j, b)
			if next.Pinned || next.Active {
				continue
			}
			next.Active = true
			queue = append(queue, next)
			a.Bones = append(a.Bones, next)
		}
	}
	a.bonesToVisit = queue[:0]
}

// UpdateActiveSetJoints rebuilds the active set for a fixer-only solve:
// every enabled joint and the bones it touches participate, with no
// control-driven traversal or automass pass. When UseAutomass is set, every
// bone in the set is given AutomassTarget mass directly (there is no
// control to derive stress from).
func (a *ActiveSet) UpdateActiveSetJoints(joints []constraint.TwoBodyConstraint) {
	a.Clear()

	for _, j := range joints {
		if !j.Enabled() {
			continue
		}
		if !j.BoneA().Active {
			j.BoneA().Active = true
			a.Bones = append(a.Bones, j.BoneA())
		}
		if !j.BoneB().Active {
			j.BoneB().Active = true
			a.Bones = append(a.Bones, j.BoneB())
		}
		a.Joints = append(a.Joints, j)
	}

	if a.UseAutomass {
		for _, b := range a.Bones {
			b.SetMass(a.AutomassTarget)
		}
	}
}
