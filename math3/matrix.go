package math3

// Mat3 is a row-major 3x3 matrix, m[row][col]. It is kept distinct from
// mgl64.Mat3 (column-major [9]float64) because the adaptive inverse below
// indexes sub-matrices by explicit row/col and reads far more directly
// against the row-major convention the constraint solver was derived from.
type Mat3 [3][3]float64

// Scale returns a diagonal matrix with value on the diagonal. The identity
// is Scale(1); the zero matrix is the Mat3 zero value.
func Scale(value float64) Mat3 {
	return Mat3{
		{value, 0, 0},
		{0, value, 0},
		{0, 0, value},
	}
}

// Identity is the 3x3 identity matrix.
func Identity() Mat3 { return Scale(1) }

// Multiply returns a*b.
func Multiply(a, b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return r
}

// MultiplyByTransposed returns m*transposeᵀ.
func MultiplyByTransposed(m, transpose Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*transpose[j][0] + m[i][1]*transpose[j][1] + m[i][2]*transpose[j][2]
		}
	}
	return r
}

// MultiplyTransposed returns transposeᵀ*m.
func MultiplyTransposed(transpose, m Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = transpose[0][i]*m[0][j] + transpose[1][i]*m[1][j] + transpose[2][i]*m[2][j]
		}
	}
	return r
}

// Add returns a+b.
func Add(a, b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] + b[i][j]
		}
	}
	return r
}

// Negate returns -m.
func Negate(m Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = -m[i][j]
		}
	}
	return r
}

// Transpose returns mᵀ.
func Transpose(m Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Transform returns v*m, treating v as a row vector (equivalently mᵀ*v for a
// column vector v).
func Transform(v Vec3, m Mat3) Vec3 {
	return Vec3{
		v[0]*m[0][0] + v[1]*m[1][0] + v[2]*m[2][0],
		v[0]*m[0][1] + v[1]*m[1][1] + v[2]*m[2][1],
		v[0]*m[0][2] + v[1]*m[1][2] + v[2]*m[2][2],
	}
}

// TransformTranspose returns v*mᵀ, treating v as a row vector (equivalently
// m*v for a column vector v).
func TransformTranspose(v Vec3, m Mat3) Vec3 {
	return Vec3{
		v[0]*m[0][0] + v[1]*m[0][1] + v[2]*m[0][2],
		v[0]*m[1][0] + v[1]*m[1][1] + v[2]*m[1][2],
		v[0]*m[2][0] + v[1]*m[2][1] + v[2]*m[2][2],
	}
}

// CrossProductMatrix returns the skew-symmetric matrix K such that K*x
// equals v cross x for any x.
func CrossProductMatrix(v Vec3) Mat3 {
	return Mat3{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// FromQuat returns the rotation matrix equivalent to q.
func FromQuat(q Quat) Mat3 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	xx, yy, zz := 2*x*x, 2*y*y, 2*z*z
	xy, xz, xw := 2*x*y, 2*x*z, 2*x*w
	yz, yw, zw := 2*y*z, 2*y*w, 2*z*w

	var r Mat3
	r[0][0] = 1 - yy - zz
	r[1][0] = xy - zw
	r[2][0] = xz + yw

	r[0][1] = xy + zw
	r[1][1] = 1 - xx - zz
	r[2][1] = yz - xw

	r[0][2] = xz - yw
	r[1][2] = yz + xw
	r[2][2] = 1 - xx - yy
	return r
}

// Determinant returns the plain 3x3 determinant of m.
func Determinant(m Mat3) float64 {
	return m[0][0]*m[1][1]*m[2][2] + m[0][1]*m[1][2]*m[2][0] + m[0][2]*m[1][0]*m[2][1] -
		m[2][0]*m[1][1]*m[0][2] - m[2][1]*m[1][2]*m[0][0] - m[2][2]*m[1][0]*m[0][1]
}

// Invert returns the plain cofactor/determinant inverse of m. Callers
// holding a matrix that may be singular (zero Jacobian rows) should use
// AdaptiveInvert instead.
func Invert(m Mat3) Mat3 {
	detInv := 1 / Determinant(m)
	var r Mat3
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * detInv
	r[0][1] = (m[0][2]*m[2][1] - m[2][2]*m[0][1]) * detInv
	r[0][2] = (m[0][1]*m[1][2] - m[1][1]*m[0][2]) * detInv

	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * detInv
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * detInv
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * detInv

	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * detInv
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * detInv
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * detInv
	return r
}

// AdaptiveDeterminant tries the full 3x3 determinant, then six fixed
// sub-matrix determinants in order (upper-left 2x2; lower-right 2x2; corner
// 2x2 of m11/m13/m31/m33; single diagonal entries m11, m22, m33), returning
// the first nonzero value found along with a code identifying which
// sub-matrix it came from. subMatrixCode is -1 when every candidate is zero.
//
// The corner case uses m11*m33 - m13*m31, the determinant of the actual
// corner sub-matrix; this diverges from a transcription slip in the
// original source (which computes m11*m33 - m13*m12, mixing a term from the
// wrong row) that would make AdaptiveInvert's own corner-case formula
// inconsistent with the determinant it is divided by.
func AdaptiveDeterminant(m Mat3) (determinant float64, subMatrixCode int) {
	full := Determinant(m)
	if full != 0 {
		return full, 0
	}
	upperLeft := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	if upperLeft != 0 {
		return upperLeft, 1
	}
	lowerRight := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	if lowerRight != 0 {
		return lowerRight, 2
	}
	corners := m[0][0]*m[2][2] - m[0][2]*m[2][0]
	if corners != 0 {
		return corners, 3
	}
	if m[0][0] != 0 {
		return m[0][0], 4
	}
	if m[1][1] != 0 {
		return m[1][1], 5
	}
	if m[2][2] != 0 {
		return m[2][2], 6
	}
	return 0, -1
}

// AdaptiveInvert inverts m using the sub-matrix cascade of AdaptiveDeterminant,
// zeroing the rows/columns outside whichever sub-matrix turned out
// nonsingular. This is the pseudo-inverse the effective-mass computation
// needs: constraint Jacobians routinely produce matrices singular along one
// or two axes, and the plain cofactor inverse would divide by zero.
func AdaptiveInvert(m Mat3) Mat3 {
	det, code := AdaptiveDeterminant(m)
	var r Mat3
	if code == -1 {
		return r
	}
	detInv := 1 / det
	switch code {
	case 0:
		r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * detInv
		r[0][1] = (m[0][2]*m[2][1] - m[2][2]*m[0][1]) * detInv
		r[0][2] = (m[0][1]*m[1][2] - m[1][1]*m[0][2]) * detInv

		r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * detInv
		r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * detInv
		r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * detInv

		r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * detInv
		r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * detInv
		r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * detInv
	case 1: // upper-left 2x2: m11, m12, m21, m22.
		r[0][0] = m[1][1] * detInv
		r[0][1] = -m[0][1] * detInv
		r[1][0] = -m[1][0] * detInv
		r[1][1] = m[0][0] * detInv
	case 2: // lower-right 2x2: m22, m23, m32, m33.
		r[1][1] = m[2][2] * detInv
		r[1][2] = -m[1][2] * detInv
		r[2][1] = -m[2][1] * detInv
		r[2][2] = m[1][1] * detInv
	case 3: // corners: m11, m13, m31, m33.
		r[0][0] = m[2][2] * detInv
		r[0][2] = -m[0][2] * detInv
		r[2][0] = -m[2][0] * detInv
		r[2][2] = m[0][0] * detInv
	case 4:
		r[0][0] = 1 / m[0][0]
	case 5:
		r[1][1] = 1 / m[1][1]
	case 6:
		r[2][2] = 1 / m[2][2]
	}
	return r
}
