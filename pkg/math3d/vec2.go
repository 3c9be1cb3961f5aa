package math3d

// Vec2 is a 2D vector. In this engine it only carries UV texture
// coordinates, nominally in [0,1] but not enforced.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// IsZero reports whether both components are zero. The zero UV is used as the
// "untextured" sentinel on triangles.
func (a Vec2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}
