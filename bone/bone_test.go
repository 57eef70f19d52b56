package bone

import (
	"math"
	"testing"

	"github.com/ikrig/ik/math3"
)

func TestNew_DefaultsToUnitMass(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	if got := b.Mass(); math.Abs(got-1) > 1e-9 {
		t.Errorf("Mass() = %v, want 1", got)
	}
}

func TestSetMass_FloorsNearZeroMass(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	b.SetMass(0)
	if got := b.InverseMass(); got != 1e7 {
		t.Errorf("InverseMass() after SetMass(0) = %v, want 1e7", got)
	}
}

func TestSetMass_RoundTrips(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	b.SetMass(5)
	if got := b.Mass(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Mass() after SetMass(5) = %v, want 5", got)
	}
	if got := b.InverseMass(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("InverseMass() after SetMass(5) = %v, want 0.2", got)
	}
}

func TestUpdatePosition_IntegratesAndZeroesVelocity(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	b.LinearVelocity = math3.Vec3{1, 2, 3}

	b.UpdatePosition()

	if b.Position != (math3.Vec3{1, 2, 3}) {
		t.Errorf("Position after UpdatePosition = %v, want {1 2 3}", b.Position)
	}
	if b.LinearVelocity != math3.Zero {
		t.Errorf("LinearVelocity after UpdatePosition = %v, want zero", b.LinearVelocity)
	}
	if b.AngularVelocity != math3.Zero {
		t.Errorf("AngularVelocity after UpdatePosition = %v, want zero", b.AngularVelocity)
	}
}

func TestUpdatePosition_OrientationStaysNormalized(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	b.AngularVelocity = math3.Vec3{0.3, 0.1, -0.2}

	b.UpdatePosition()

	length := math.Sqrt(b.Orientation.W*b.Orientation.W + b.Orientation.V.LenSqr())
	if math.Abs(length-1) > 1e-9 {
		t.Errorf("Orientation length after UpdatePosition = %v, want 1", length)
	}
}

func TestApplyLinearImpulse_ScalesByInverseMass(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	b.SetMass(2)
	b.ApplyLinearImpulse(math3.Vec3{2, 0, 0})
	if got := b.LinearVelocity; got != (math3.Vec3{1, 0, 0}) {
		t.Errorf("LinearVelocity after impulse = %v, want {1 0 0}", got)
	}
}

func TestClearTraversalFlags_ResetsAllScratchState(t *testing.T) {
	b := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	other := New(math3.Zero, math3.Quat{W: 1}, 0.1, 1.0)
	b.Active = true
	b.Traversed = true
	b.UnstressedCycle = true
	b.TargetedByOtherControl = true
	b.StressCount = 3
	b.Predecessors = append(b.Predecessors, other)

	b.ClearTraversalFlags()

	if b.Active || b.Traversed || b.UnstressedCycle || b.TargetedByOtherControl || b.StressCount != 0 || len(b.Predecessors) != 0 {
		t.Errorf("ClearTraversalFlags left state set: %+v", b)
	}
}
