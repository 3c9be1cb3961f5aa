package math3d

import "math"

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal Vec3
	D      float64
}

// PlaneFromPoints builds the plane through a, b and c. The normal is
// (b-a)×(c-a), normalized, so it follows the winding of the points.
// Collinear points have no plane; the result then has a zero normal.
func PlaneFromPoints(a, b, c Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: n, D: -n.Dot(a)}
}

// DistanceToPoint returns the signed distance from the plane to p.
func (p Plane) DistanceToPoint(pt Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// IntersectRay returns the point where the ray origin + t*dir (t >= 0) meets
// the plane. ok is false when the ray is parallel to the plane or points away.
func (p Plane) IntersectRay(origin, dir Vec3) (hit Vec3, ok bool) {
	denom := p.Normal.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return Vec3{}, false
	}
	t := -(p.Normal.Dot(origin) + p.D) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}
