package models

import (
	"image/color"

	"github.com/taigrr/prism/pkg/math3d"
)

// Triangle is one face of a Mesh. Its corners are indices into the parent
// mesh's vertex arena.
type Triangle struct {
	mesh *Mesh

	V  [3]int         // Indices into the mesh vertex arena
	UV [3]math3d.Vec2 // Texture coordinates; zero when untextured

	Color  color.RGBA // Base color, fixed at load time
	Shaded color.RGBA // Color after the last lighting pass
}

// Mesh returns the mesh the triangle belongs to.
func (t *Triangle) Mesh() *Mesh {
	return t.mesh
}

// Vertices returns the current positions of the triangle's corners.
func (t *Triangle) Vertices() (a, b, c math3d.Vec3) {
	v := t.mesh.vertices
	return v[t.V[0]], v[t.V[1]], v[t.V[2]]
}

// Normal returns the unnormalized face normal (v1-v2)×(v2-v3). A degenerate
// triangle has a zero normal.
func (t *Triangle) Normal() math3d.Vec3 {
	a, b, c := t.Vertices()
	return a.Sub(b).Cross(b.Sub(c))
}

// Center returns the centroid of the triangle.
func (t *Triangle) Center() math3d.Vec3 {
	a, b, c := t.Vertices()
	return a.Add(b).Add(c).Div(3)
}

// Plane returns the plane through the triangle's corners.
func (t *Triangle) Plane() math3d.Plane {
	a, b, c := t.Vertices()
	return math3d.PlaneFromPoints(a, b, c)
}

// UVCenter returns the centroid of the triangle's texture coordinates.
func (t *Triangle) UVCenter() math3d.Vec2 {
	a, b, c := t.UV[0], t.UV[1], t.UV[2]
	return math3d.V2((a.X+b.X+c.X)/3, (a.Y+b.Y+c.Y)/3)
}
