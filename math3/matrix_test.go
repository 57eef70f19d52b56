package math3

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIdentity_IsMultiplicativeUnit(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	got := Multiply(m, Identity())
	if got != m {
		t.Errorf("Multiply(m, Identity()) = %v, want %v", got, m)
	}
}

func TestInvert_RoundTrips(t *testing.T) {
	m := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	inv := Invert(m)
	got := Multiply(m, inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if !almostEqual(got[i][j], want) {
				t.Errorf("Multiply(m, Invert(m))[%d][%d] = %v, want %v", i, j, got[i][j], want)
			}
		}
	}
}

func TestAdaptiveInvert_SingularFullMatrixFallsBackToSubCase(t *testing.T) {
	// A matrix singular overall but with a nonsingular upper-left 2x2 should
	// still invert that 2x2 block rather than returning garbage.
	m := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 0}}
	inv := AdaptiveInvert(m)
	if !almostEqual(inv[0][0], 0.5) || !almostEqual(inv[1][1], 1.0/3.0) {
		t.Errorf("AdaptiveInvert(%v) = %v, want upper-left block inverted", m, inv)
	}
	if inv[2][2] != 0 {
		t.Errorf("AdaptiveInvert(%v)[2][2] = %v, want 0 (singular third axis)", m, inv[2][2])
	}
}

func TestAdaptiveInvert_AllZero(t *testing.T) {
	inv := AdaptiveInvert(Mat3{})
	if inv != (Mat3{}) {
		t.Errorf("AdaptiveInvert(zero) = %v, want zero matrix", inv)
	}
}

func TestTranspose_IsInvolution(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	got := Transpose(Transpose(m))
	if got != m {
		t.Errorf("Transpose(Transpose(m)) = %v, want %v", got, m)
	}
}

func TestCrossProductMatrix_MatchesCrossProduct(t *testing.T) {
	v := Vec3{1, 2, 3}
	u := Vec3{4, 5, 6}
	viaMatrix := TransformTranspose(u, CrossProductMatrix(v))
	viaCross := v.Cross(u)
	if viaMatrix != viaCross {
		t.Errorf("TransformTranspose(u, CrossProductMatrix(v)) = %v, want v.Cross(u) = %v", viaMatrix, viaCross)
	}
}
