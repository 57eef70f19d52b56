// Package config loads a solver tuning profile from YAML, overriding the
// defaults solver.New and activeset.New otherwise apply.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ikrig/ik/activeset"
	"github.com/ikrig/ik/solver"
)

// Profile is the YAML-serializable form of a solver/active-set tuning
// configuration. Zero values for counts/durations are treated as "use the
// built-in default" rather than as explicit zero, since zero iterations or
// a zero time step are never valid.
type Profile struct {
	ControlIterationCount     int     `yaml:"control_iteration_count"`
	FixerIterationCount       int     `yaml:"fixer_iteration_count"`
	VelocitySubiterationCount int     `yaml:"velocity_subiteration_count"`
	TimeStepDuration          float64 `yaml:"time_step_duration"`
	AutoscaleControlImpulses  bool    `yaml:"autoscale_control_impulses"`
	AutoscaleControlMaxForce  float64 `yaml:"autoscale_control_max_force"`

	UseAutomass               bool    `yaml:"use_automass"`
	AutomassTarget            float64 `yaml:"automass_target"`
	AutomassUnstressedFalloff float64 `yaml:"automass_unstressed_falloff"`
}

// Load reads and parses a Profile from a YAML file at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: reading profile")
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "config: parsing profile")
	}
	return &p, nil
}

// NewActiveSet builds an activeset.ActiveSet from the profile's automass
// tuning, falling back to 1.0/0.5 when AutomassTarget/AutomassUnstressedFalloff
// are left at their zero value.
func (p *Profile) NewActiveSet() (*activeset.ActiveSet, error) {
	target := p.AutomassTarget
	if target == 0 {
		target = 1.0
	}
	falloff := p.AutomassUnstressedFalloff
	if falloff == 0 {
		falloff = 0.5
	}
	return activeset.New(p.UseAutomass, target, falloff)
}

// Apply overrides s's tuning fields with the profile's, skipping any numeric
// field left at its YAML zero value so an absent key in the file means "keep
// the Solver's current default" rather than "force it to zero". The
// AutoscaleControlImpulses bool is always copied, so an absent key sets it
// to false.
func (p *Profile) Apply(s *solver.Solver) error {
	if p.ControlIterationCount != 0 {
		s.ControlIterationCount = p.ControlIterationCount
	}
	if p.FixerIterationCount != 0 {
		s.FixerIterationCount = p.FixerIterationCount
	}
	if p.VelocitySubiterationCount != 0 {
		s.VelocitySubiterationCount = p.VelocitySubiterationCount
	}
	if p.TimeStepDuration != 0 {
		if err := s.SetTimeStepDuration(p.TimeStepDuration); err != nil {
			return err
		}
	}
	s.AutoscaleControlImpulses = p.AutoscaleControlImpulses
	if p.AutoscaleControlMaxForce != 0 {
		s.AutoscaleControlMaxForce = p.AutoscaleControlMaxForce
	}
	return nil
}
