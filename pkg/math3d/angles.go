package math3d

import "math"

// AngleToVector converts a yaw (rotation about +Y, measured from +Z toward +X)
// and a pitch (elevation above the XZ plane) into a unit direction vector.
func AngleToVector(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		math.Sin(yaw) * cp,
		math.Sin(pitch),
		math.Cos(yaw) * cp,
	}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapTwoPi wraps an angle into [0, 2π).
func WrapTwoPi(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
