// Package math3d provides the vector, quaternion and matrix algebra used by
// the prism scene engine.
//
// All angles are radians. The world is left-handed with +Y up, +X right and +Z as the
// forward direction of an unrotated object or camera.
package math3d

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D point or direction. Vec3 values are immutable; every
// operation returns a new vector.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0}
}

// Forward returns the world forward vector (0, 0, 1).
func Forward() Vec3 {
	return Vec3{0, 0, 1}
}

// Right returns the world right vector (1, 0, 0).
func Right() Vec3 {
	return Vec3{1, 0, 0}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns a / s.
func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.LenSq())
}

// LenSq returns the squared length.
func (a Vec3) LenSq() float64 {
	return a.Dot(a)
}

// Normalize returns the unit vector in the same direction.
// The zero vector has no direction and normalizes to the zero vector.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l != 0 {
		return a.Div(l)
	}
	return Vec3{}
}

// IsZero reports whether all components are exactly zero.
func (a Vec3) IsZero() bool {
	return a.X == 0 && a.Y == 0 && a.Z == 0
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return a.Scale(-1)
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Distance returns the distance between two points.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Len()
}

// AngleBetween returns the angle in [0, π] between a and b. Neither input
// needs to be normalized. If either vector is zero the angle is 0.
func (a Vec3) AngleBetween(b Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	return math.Acos(Clamp(a.Dot(b)/(la*lb), -1, 1))
}

// Rotate returns a rotated by the unit quaternion q.
func (a Vec3) Rotate(q Quat) Vec3 {
	return q.RotateVec(a)
}

// RotateX rotates a about the world X axis. Positive angles tilt +Z toward +Y.
func (a Vec3) RotateX(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		a.X,
		a.Y*c + a.Z*s,
		a.Z*c - a.Y*s,
	}
}

// RotateY rotates a about the world Y axis. Positive angles turn +Z toward +X,
// which matches increasing yaw in AngleToVector.
func (a Vec3) RotateY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		a.X*c + a.Z*s,
		a.Y,
		a.Z*c - a.X*s,
	}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	d := a.Sub(b)
	return max(math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)) <= eps
}

func (a Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", a.X, a.Y, a.Z)
}
