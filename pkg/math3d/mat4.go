package math3d

import "math"

// Mat4 is a homogeneous transform in column-major order: element (row, col)
// lives at index row+4*col, and the translation occupies indices 12..14.
//
// Scene-side rotation uses Quat and Mat3; Mat4 carries model, view and
// projection transforms to the screen.
type Mat4 [16]float64

// Identity4 returns the 4x4 identity.
func Identity4() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// RigidTransform returns the matrix that applies the linear map r and then
// moves by t.
func RigidTransform(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r.R1C1, r.R2C1, r.R3C1, 0,
		r.R1C2, r.R2C2, r.R3C2, 0,
		r.R1C3, r.R2C3, r.R3C3, 0,
		t.X, t.Y, t.Z, 1,
	}
}

// LookAt returns the view matrix of an eye at eye facing target. View space
// is left-handed like the world: +X right, +Y up, +Z away from the eye.
func LookAt(eye, target, up Vec3) Mat4 {
	fwd := target.Sub(eye).Normalize()
	right := up.Cross(fwd).Normalize()
	trueUp := fwd.Cross(right)

	return Mat4{
		right.X, trueUp.X, fwd.X, 0,
		right.Y, trueUp.Y, fwd.Y, 0,
		right.Z, trueUp.Z, fwd.Z, 0,
		-right.Dot(eye), -trueUp.Dot(eye), -fwd.Dot(eye), 1,
	}
}

// Perspective returns a projection taking view depth [near, far] to NDC
// depth [-1, 1]. fovy is the vertical field of view in radians and aspect
// is width over height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	depth := far - near

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = 1 // w takes the view depth
	m[14] = -2 * far * near / depth
	return m
}

// At returns the element at (row, col).
func (m Mat4) At(row, col int) float64 {
	return m[row+4*col]
}

// Mul returns m·n, which applies n first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			out[row+4*col] = m[row]*n[4*col] +
				m[row+4]*n[1+4*col] +
				m[row+8]*n[2+4*col] +
				m[row+12]*n[3+4*col]
		}
	}
	return out
}

// Project transforms the point p (w = 1) into clip space.
func (m Mat4) Project(p Vec3) Clip {
	return Clip{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
		W: m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15],
	}
}

// MulVec3 transforms the point p and divides by the resulting w. A zero w
// is treated as 1.
func (m Mat4) MulVec3(p Vec3) Vec3 {
	c := m.Project(p)
	if c.W == 0 {
		return Vec3{c.X, c.Y, c.Z}
	}
	return Vec3{c.X / c.W, c.Y / c.W, c.Z / c.W}
}

// Clip is a homogeneous point in clip space.
type Clip struct {
	X, Y, Z, W float64
}

// NDC returns the normalized device coordinates of c. ok is false when c is
// at or behind the eye, where the divide is meaningless.
func (c Clip) NDC() (ndc Vec3, ok bool) {
	if c.W <= 0 {
		return Vec3{}, false
	}
	return Vec3{c.X / c.W, c.Y / c.W, c.Z / c.W}, true
}

// InViewVolume reports whether ndc lies inside the [-1, 1] cube.
func InViewVolume(ndc Vec3) bool {
	return math.Abs(ndc.X) <= 1 && math.Abs(ndc.Y) <= 1 && math.Abs(ndc.Z) <= 1
}
