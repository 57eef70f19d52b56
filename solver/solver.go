// Package solver orchestrates one full IK solve: active-set rebuild,
// per-constraint preupdate, a run of control iterations that pulls bones
// toward their goals, and a run of fixer iterations that relaxes whatever
// constraint error the control pass couldn't fully resolve.
package solver

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ikrig/ik/activeset"
	"github.com/ikrig/ik/constraint"
	"github.com/ikrig/ik/control"
	"github.com/ikrig/ik/ikerr"
	"github.com/ikrig/ik/permute"
)

// Solver owns the tuning parameters and scratch state (active set,
// permutation mapper) a solve run needs. Not safe for concurrent use on
// the same Solver, nor across Solvers that share bones or joints.
type Solver struct {
	ControlIterationCount      int
	FixerIterationCount        int
	VelocitySubiterationCount  int
	AutoscaleControlImpulses   bool
	AutoscaleControlMaxForce   float64

	timeStepDuration float64

	ActiveSet *activeset.ActiveSet
	mapper    *permute.Mapper
	log       *zap.Logger
}

// New creates a Solver with the spec's default tuning, backed by the given
// ActiveSet (callers share the ActiveSet to read its last-computed bones
// and joints after a solve). A nil logger falls back to zap's no-op
// logger.
func New(set *activeset.ActiveSet, log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Solver{
		ControlIterationCount:     50,
		FixerIterationCount:       20,
		VelocitySubiterationCount: 3,
		AutoscaleControlImpulses:  true,
		AutoscaleControlMaxForce:  1,
		timeStepDuration:          1.0,
		ActiveSet:                 set,
		mapper:                    permute.New(),
		log:                       log,
	}
	return s
}

// TimeStepDuration returns the per-call time step.
func (s *Solver) TimeStepDuration() float64 { return s.timeStepDuration }

// SetTimeStepDuration sets the per-call time step. Must be strictly
// positive.
func (s *Solver) SetTimeStepDuration(value float64) error {
	if value <= 0 {
		return ikerr.NewConfigError("time_step_duration", "must be > 0")
	}
	s.timeStepDuration = value
	return nil
}

// SolveWithControls runs a full control-then-fixer solve: ActiveSet
// rebuild, optional control-impulse autoscaling, preupdate, N control
// iterations, an impulse clear, then M fixer iterations and a final clear.
// A control targeting a pinned bone is reported as a GraphError and
// skipped for this solve rather than aborting the rest.
func (s *Solver) SolveWithControls(controls []control.Control) error {
	s.ActiveSet.UpdateActiveSetControls(controls)

	active, err := s.filterPinnedControls(controls)
	if err != nil {
		s.log.Warn("skipping control targeting pinned bone", zap.Error(err))
	}

	if s.AutoscaleControlImpulses {
		for _, c := range active {
			maxForce := c.TargetBone().Mass() * s.AutoscaleControlMaxForce
			for _, m := range c.Motors() {
				m.SetMaximumForce(maxForce)
			}
		}
	}

	s.mapper.SetIndex(0)
	dt := s.timeStepDuration
	updateRate := 1 / dt

	for _, j := range s.ActiveSet.Joints {
		j.Preupdate(dt, updateRate)
	}
	for _, c := range active {
		for _, m := range c.Motors() {
			m.Preupdate(dt, updateRate)
		}
	}

	for i := 0; i < s.ControlIterationCount; i++ {
		s.iterate(active, true)
	}

	for _, j := range s.ActiveSet.Joints {
		j.ClearAccumulatedImpulses()
	}

	for i := 0; i < s.FixerIterationCount; i++ {
		s.iterate(nil, false)
	}

	for _, j := range s.ActiveSet.Joints {
		j.ClearAccumulatedImpulses()
	}
	for _, c := range active {
		c.ClearAccumulatedImpulses()
	}

	return err
}

// SolveWithJoints runs the fixer-only variant: an ActiveSet rebuild from
// joints alone, preupdate, and a fixer-iteration run with no controls
// involved.
func (s *Solver) SolveWithJoints(joints []constraint.TwoBodyConstraint) {
	s.ActiveSet.UpdateActiveSetJoints(joints)

	s.mapper.SetIndex(0)
	dt := s.timeStepDuration
	updateRate := 1 / dt

	for _, j := range s.ActiveSet.Joints {
		j.Preupdate(dt, updateRate)
	}

	for i := 0; i < s.FixerIterationCount; i++ {
		s.iterate(nil, false)
	}

	for _, j := range s.ActiveSet.Joints {
		j.ClearAccumulatedImpulses()
	}
}

// iterate runs one control or fixer iteration: inertia tensor refresh,
// Jacobian/effective-mass/warm-start for joints (and controls, when
// withControls), K velocity subiterations in permuted joint order, then
// position integration. This ordering — inertia before Jacobians before
// warm start before subiterations before integration — is load-bearing for
// convergence and must not be reordered.
func (s *Solver) iterate(active []control.Control, withControls bool) {
	for _, b := range s.ActiveSet.Bones {
		b.UpdateInertiaTensor()
	}

	for _, j := range s.ActiveSet.Joints {
		j.UpdateJacobiansAndVelocityBias()
		j.ComputeEffectiveMass()
		j.WarmStart()
	}

	if withControls {
		for _, c := range active {
			for _, m := range c.Motors() {
				m.UpdateJacobiansAndVelocityBias()
				m.ComputeEffectiveMass()
				m.WarmStart()
			}
		}
	}

	n := len(s.ActiveSet.Joints)
	for j := 0; j < s.VelocitySubiterationCount; j++ {
		if withControls {
			for _, c := range active {
				for _, m := range c.Motors() {
					m.SolveVelocityIteration()
				}
			}
		}
		for k := 0; k < n; k++ {
			idx := s.mapper.GetMappedIndex(k, n)
			s.ActiveSet.Joints[idx].SolveVelocityIteration()
		}
		s.mapper.SetIndex(s.mapper.Index() + 1)
	}

	for _, b := range s.ActiveSet.Bones {
		b.UpdatePosition()
	}
}

// filterPinnedControls returns the enabled controls not targeting a pinned
// bone, wrapping the first pinned-target offender (if any) in a GraphError.
// Disabled controls are dropped silently; they are a normal, expected state.
func (s *Solver) filterPinnedControls(controls []control.Control) ([]control.Control, error) {
	var err error
	active := make([]control.Control, 0, len(controls))
	for _, c := range controls {
		if !c.Enabled() {
			continue
		}
		if c.TargetBone().Pinned {
			if err == nil {
				err = errors.Wrap(ikerr.NewGraphError("control targets a pinned bone"), "solver: skipping control")
			}
			continue
		}
		active = append(active, c)
	}
	return active, err
}
