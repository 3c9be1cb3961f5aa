package math3d

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMat3Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
	}{
		{"identity", Identity3()},
		{"diagonal", NewMat3(2, 0, 0, 0, 4, 0, 0, 0, 0.5)},
		{"general", NewMat3(2, 0, 1, 1, 3, 0, 0, 1, 4)},
		{"rotation", QuatFromAxisAngle(V3(1, 1, 0), 0.7).ToMat3()},
		{"basis", Mat3FromColumns(V3(0, 0, -1), V3(0, 1, 0), V3(1, 0, 0))},
		{"small scale", Identity3().MulScalar(1e-5)},
		{"large scale", NewMat3(2, 0, 1, 1, 3, 0, 0, 1, 4).MulScalar(1e6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := tc.m.Inverse()
			if err != nil {
				t.Fatalf("Inverse() error = %v", err)
			}
			if got := tc.m.Mul(inv); !got.ApproxEqual(Identity3(), 1e-9) {
				t.Errorf("M * M⁻¹ =\n%v\nwant identity", got)
			}
			if got := inv.Mul(tc.m); !got.ApproxEqual(Identity3(), 1e-9) {
				t.Errorf("M⁻¹ * M =\n%v\nwant identity", got)
			}
		})
	}
}

func TestMat3InverseMatchesMathGL(t *testing.T) {
	m := NewMat3(
		3, -1, 2,
		0.5, 4, 1,
		-2, 1, 5,
	)
	ref := mgl64.Mat3FromRows(
		mgl64.Vec3{3, -1, 2},
		mgl64.Vec3{0.5, 4, 1},
		mgl64.Vec3{-2, 1, 5},
	)

	if math.Abs(m.Determinant()-ref.Det()) > 1e-9 {
		t.Errorf("Determinant = %v, mathgl = %v", m.Determinant(), ref.Det())
	}

	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}
	refInv := ref.Inv()
	want := NewMat3(
		refInv.At(0, 0), refInv.At(0, 1), refInv.At(0, 2),
		refInv.At(1, 0), refInv.At(1, 1), refInv.At(1, 2),
		refInv.At(2, 0), refInv.At(2, 1), refInv.At(2, 2),
	)
	if !inv.ApproxEqual(want, 1e-9) {
		t.Errorf("Inverse =\n%v\nmathgl =\n%v", inv, want)
	}
}

func TestMat3InverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
	}{
		{"zero", Mat3{}},
		{"repeated row", NewMat3(1, 2, 3, 1, 2, 3, 0, 1, 0)},
		{"collinear basis", Mat3FromColumns(V3(1, 0, 0), V3(2, 0, 0), V3(0, 0, 1))},
		{"nearly collinear", NewMat3(1, 0, 0, 1, 1e-14, 0, 0, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.m.Inverse()
			if !errors.Is(err, ErrSingularMatrix) {
				t.Errorf("Inverse() error = %v, want ErrSingularMatrix", err)
			}
		})
	}
}

func TestMat3MulVec3(t *testing.T) {
	m := Mat3FromColumns(Right(), Up(), Forward())
	v := V3(1, 2, 3)
	if got := m.MulVec3(v); got != v {
		t.Errorf("identity basis * v = %v, want %v", got, v)
	}

	// Columns are the images of the unit axes.
	m = Mat3FromColumns(V3(0, 0, -1), V3(0, 1, 0), V3(1, 0, 0))
	if got := m.MulVec3(V3(1, 0, 0)); got != V3(0, 0, -1) {
		t.Errorf("M * X = %v, want first column", got)
	}
	if got := m.MulVec3(V3(0, 0, 1)); got != V3(1, 0, 0) {
		t.Errorf("M * Z = %v, want third column", got)
	}
}

func TestMat3Transpose(t *testing.T) {
	m := NewMat3(1, 2, 3, 4, 5, 6, 7, 8, 9)
	want := NewMat3(1, 4, 7, 2, 5, 8, 3, 6, 9)
	if got := m.Transpose(); got != want {
		t.Errorf("Transpose =\n%v\nwant\n%v", got, want)
	}

	// For a rotation the transpose is the inverse.
	r := QuatFromAxisAngle(V3(0, 1, 1), 1.2).ToMat3()
	if got := r.Mul(r.Transpose()); !got.ApproxEqual(Identity3(), 1e-9) {
		t.Errorf("R * Rᵀ =\n%v\nwant identity", got)
	}
}

func TestLookAtMatchesCameraBasis(t *testing.T) {
	eye := V3(0, 0, -10)
	view := LookAt(eye, Zero3(), Up())

	// The target sits straight ahead on the view-space +Z axis.
	if got := view.MulVec3(Zero3()); !got.ApproxEqual(V3(0, 0, 10), 1e-9) {
		t.Errorf("target in view space = %v, want (0, 0, 10)", got)
	}
	if got := view.MulVec3(V3(1, 0, -10)); !got.ApproxEqual(V3(1, 0, 0), 1e-9) {
		t.Errorf("point to the right = %v, want (1, 0, 0)", got)
	}
}
