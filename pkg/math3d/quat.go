package math3d

import (
	"fmt"
	"math"
)

// Quat is a rotation quaternion with scalar part W.
//
// Constructors that take an axis and angle always produce a unit quaternion.
// Quat{} (all zero) is not a rotation; use QuatIdentity.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// NewQuat creates a quaternion from raw components. The components are
// trusted as given and are not normalized.
func NewQuat(w, x, y, z float64) Quat {
	return Quat{W: w, X: x, Y: y, Z: z}
}

// QuatFromAxisAngle creates a rotation of angle radians about axis. The axis
// is normalized first; a zero axis yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	if axis.IsZero() {
		return QuatIdentity()
	}
	s, c := math.Sincos(angle / 2)
	return Quat{
		W: c,
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QuatFromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z) angles.
func QuatFromEuler(pitch, yaw, roll float64) Quat {
	sr, cr := math.Sincos(pitch * 0.5)
	sp, cp := math.Sincos(yaw * 0.5)
	sy, cy := math.Sincos(roll * 0.5)

	return Quat{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}

// Len returns the norm of the quaternion.
func (q Quat) Len() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns q scaled to unit norm. A zero quaternion normalizes to
// the identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Mul returns the Hamilton product q * r. Applying the result to a vector
// rotates by r first, then by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns (w, -x, -y, -z).
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the inverse rotation. It is the conjugate, which is only
// the true inverse when q has unit norm.
func (q Quat) Inverse() Quat {
	return q.Conjugate()
}

// RotateVec rotates v by q, computing q * v * q⁻¹ without building the
// intermediate pure quaternion.
func (q Quat) RotateVec(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ToMat3 returns the rotation matrix equivalent to q.
func (q Quat) ToMat3() Mat3 {
	q = q.Normalize()

	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return NewMat3(
		1-2*(yy+zz), 2*(xy-wz), 2*(xz+wy),
		2*(xy+wz), 1-2*(xx+zz), 2*(yz-wx),
		2*(xz-wy), 2*(yz+wx), 1-2*(xx+yy),
	)
}

// ApproxEqual reports whether q and r represent the same components within eps.
func (q Quat) ApproxEqual(r Quat, eps float64) bool {
	return math.Abs(q.W-r.W) <= eps &&
		math.Abs(q.X-r.X) <= eps &&
		math.Abs(q.Y-r.Y) <= eps &&
		math.Abs(q.Z-r.Z) <= eps
}

func (q Quat) String() string {
	return fmt.Sprintf("[%.3f, %.3f, %.3f, %.3f]", q.W, q.X, q.Y, q.Z)
}
