package math3d

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is
// too close to zero.
var ErrSingularMatrix = errors.New("math3d: matrix is singular")

// singularEpsilon bounds |det| relative to the product of the row lengths,
// which is the largest |det| rows of those lengths can have. The ratio does
// not change when the matrix is scaled, so small but well-conditioned
// matrices still invert.
const singularEpsilon = 1e-12

// Mat3 is a 3x3 matrix. RnCm is the element at row n, column m.
// Vectors are treated as columns: M.MulVec3(v) computes M·v.
type Mat3 struct {
	R1C1, R1C2, R1C3 float64
	R2C1, R2C2, R2C3 float64
	R3C1, R3C2, R3C3 float64
}

// NewMat3 creates a matrix from nine values in row-major order.
func NewMat3(r1c1, r1c2, r1c3, r2c1, r2c2, r2c3, r3c1, r3c2, r3c3 float64) Mat3 {
	return Mat3{
		R1C1: r1c1, R1C2: r1c2, R1C3: r1c3,
		R2C1: r2c1, R2C2: r2c2, R2C3: r2c3,
		R3C1: r3c1, R3C2: r3c2, R3C3: r3c3,
	}
}

// Mat3FromColumns creates a matrix whose columns are c1, c2 and c3. With an
// orthonormal right/up/forward triple this is the local-to-world basis.
func Mat3FromColumns(c1, c2, c3 Vec3) Mat3 {
	return NewMat3(
		c1.X, c2.X, c3.X,
		c1.Y, c2.Y, c3.Y,
		c1.Z, c2.Z, c3.Z,
	)
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return NewMat3(1, 0, 0, 0, 1, 0, 0, 0, 1)
}

// Determinant returns the determinant by cofactor expansion along the first row.
func (m Mat3) Determinant() float64 {
	return m.R1C1*(m.R2C2*m.R3C3-m.R2C3*m.R3C2) -
		m.R1C2*(m.R2C1*m.R3C3-m.R2C3*m.R3C1) +
		m.R1C3*(m.R2C1*m.R3C2-m.R2C2*m.R3C1)
}

// Cofactor returns the matrix of cofactors.
func (m Mat3) Cofactor() Mat3 {
	return NewMat3(
		m.R2C2*m.R3C3-m.R2C3*m.R3C2,
		-(m.R2C1*m.R3C3 - m.R2C3*m.R3C1),
		m.R2C1*m.R3C2-m.R2C2*m.R3C1,

		-(m.R1C2*m.R3C3 - m.R1C3*m.R3C2),
		m.R1C1*m.R3C3-m.R1C3*m.R3C1,
		-(m.R1C1*m.R3C2 - m.R1C2*m.R3C1),

		m.R1C2*m.R2C3-m.R1C3*m.R2C2,
		-(m.R1C1*m.R2C3 - m.R1C3*m.R2C1),
		m.R1C1*m.R2C2-m.R1C2*m.R2C1,
	)
}

// Adjugate returns the transposed cofactor matrix.
func (m Mat3) Adjugate() Mat3 {
	return m.Cofactor().Transpose()
}

// Inverse returns adj(M)/det(M). It returns ErrSingularMatrix instead of
// dividing when |det| is at most 1e-12 of |r1|·|r2|·|r3|.
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Determinant()
	r1 := V3(m.R1C1, m.R1C2, m.R1C3)
	r2 := V3(m.R2C1, m.R2C2, m.R2C3)
	r3 := V3(m.R3C1, m.R3C2, m.R3C3)
	if math.Abs(det) <= singularEpsilon*r1.Len()*r2.Len()*r3.Len() {
		return Mat3{}, fmt.Errorf("%w: determinant %g", ErrSingularMatrix, det)
	}
	return m.Adjugate().MulScalar(1 / det), nil
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return NewMat3(
		m.R1C1, m.R2C1, m.R3C1,
		m.R1C2, m.R2C2, m.R3C2,
		m.R1C3, m.R2C3, m.R3C3,
	)
}

// Mul returns the matrix product m · n.
func (m Mat3) Mul(n Mat3) Mat3 {
	return NewMat3(
		m.R1C1*n.R1C1+m.R1C2*n.R2C1+m.R1C3*n.R3C1,
		m.R1C1*n.R1C2+m.R1C2*n.R2C2+m.R1C3*n.R3C2,
		m.R1C1*n.R1C3+m.R1C2*n.R2C3+m.R1C3*n.R3C3,

		m.R2C1*n.R1C1+m.R2C2*n.R2C1+m.R2C3*n.R3C1,
		m.R2C1*n.R1C2+m.R2C2*n.R2C2+m.R2C3*n.R3C2,
		m.R2C1*n.R1C3+m.R2C2*n.R2C3+m.R2C3*n.R3C3,

		m.R3C1*n.R1C1+m.R3C2*n.R2C1+m.R3C3*n.R3C1,
		m.R3C1*n.R1C2+m.R3C2*n.R2C2+m.R3C3*n.R3C2,
		m.R3C1*n.R1C3+m.R3C2*n.R2C3+m.R3C3*n.R3C3,
	)
}

// MulScalar multiplies every element by s.
func (m Mat3) MulScalar(s float64) Mat3 {
	return NewMat3(
		m.R1C1*s, m.R1C2*s, m.R1C3*s,
		m.R2C1*s, m.R2C2*s, m.R2C3*s,
		m.R3C1*s, m.R3C2*s, m.R3C3*s,
	)
}

// MulVec3 returns m · v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m.R1C1*v.X + m.R1C2*v.Y + m.R1C3*v.Z,
		m.R2C1*v.X + m.R2C2*v.Y + m.R2C3*v.Z,
		m.R3C1*v.X + m.R3C2*v.Y + m.R3C3*v.Z,
	}
}

// ApproxEqual reports whether every element of m and n differs by at most eps.
func (m Mat3) ApproxEqual(n Mat3, eps float64) bool {
	a := [9]float64{m.R1C1, m.R1C2, m.R1C3, m.R2C1, m.R2C2, m.R2C3, m.R3C1, m.R3C2, m.R3C3}
	b := [9]float64{n.R1C1, n.R1C2, n.R1C3, n.R2C1, n.R2C2, n.R2C3, n.R3C1, n.R3C2, n.R3C3}
	for i := range a {
		d := a[i] - b[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

func (m Mat3) String() string {
	return fmt.Sprintf("|%8.3f %8.3f %8.3f|\n|%8.3f %8.3f %8.3f|\n|%8.3f %8.3f %8.3f|",
		m.R1C1, m.R1C2, m.R1C3,
		m.R2C1, m.R2C2, m.R2C3,
		m.R3C1, m.R3C2, m.R3C3)
}
