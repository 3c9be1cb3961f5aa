// Package models provides mesh loading and representation for Prism.
//
// A Mesh owns an arena of vertex positions. Triangles refer to vertices by
// index, so rotating or translating the arena is immediately visible through
// every triangle without rebuilding them.
package models

import (
	"fmt"
	"image/color"

	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
)

// DefaultColor is the base color of meshes loaded without a color or texture.
var DefaultColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Mesh is a triangle mesh with flat per-triangle colors.
type Mesh struct {
	Name string

	vertices  []math3d.Vec3
	triangles []*Triangle
	color     color.RGBA
	shaded    bool

	totalMovement math3d.Vec3

	// light is the last light passed to CalculateLighting; RefreshLighting
	// re-applies it.
	light    lighting.Light
	hasLight bool

	warnings []string

	// Bounding box, recalculated whenever the vertex arena changes.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh with the given base color.
func NewMesh(name string, base color.RGBA, shaded bool) *Mesh {
	return &Mesh{
		Name:      name,
		vertices:  make([]math3d.Vec3, 0),
		triangles: make([]*Triangle, 0),
		color:     base,
		shaded:    shaded,
	}
}

// AddVertex appends a vertex to the arena and returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.vertices = append(m.vertices, v)
	return len(m.vertices) - 1
}

// AddTriangle appends a triangle over three existing vertices with the given
// base color. Its shaded color starts out equal to the base color.
func (m *Mesh) AddTriangle(v [3]int, base color.RGBA) (*Triangle, error) {
	for _, i := range v {
		if i < 0 || i >= len(m.vertices) {
			return nil, fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, i, len(m.vertices))
		}
	}
	t := &Triangle{mesh: m, V: v, Color: base, Shaded: base}
	m.triangles = append(m.triangles, t)
	return t, nil
}

// Vertices returns the vertex arena. The slice is owned by the mesh; use the
// mutators to change it.
func (m *Mesh) Vertices() []math3d.Vec3 {
	return m.vertices
}

// Triangles returns the mesh's triangles.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Color returns the mesh base color.
func (m *Mesh) Color() color.RGBA {
	return m.color
}

// IsShaded reports whether CalculateLighting affects this mesh.
func (m *Mesh) IsShaded() bool {
	return m.shaded
}

// TotalMovement returns the sum of all Translate deltas.
func (m *Mesh) TotalMovement() math3d.Vec3 {
	return m.totalMovement
}

// Warnings returns the non-fatal problems hit while loading the mesh.
func (m *Mesh) Warnings() []string {
	return m.warnings
}

func (m *Mesh) warn(format string, args ...any) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}

// Rotate rotates every vertex by q about center.
func (m *Mesh) Rotate(q math3d.Quat, center math3d.Vec3) {
	for i, v := range m.vertices {
		m.vertices[i] = q.RotateVec(v.Sub(center)).Add(center)
	}
	m.CalculateBounds()
}

// Translate shifts every vertex by delta and adds delta to the total movement.
func (m *Mesh) Translate(delta math3d.Vec3) {
	for i := range m.vertices {
		m.vertices[i] = m.vertices[i].Add(delta)
	}
	m.totalMovement = m.totalMovement.Add(delta)
	m.CalculateBounds()
}

// ApplyMatrix applies the linear map mat to every vertex about center.
func (m *Mesh) ApplyMatrix(mat math3d.Mat3, center math3d.Vec3) {
	for i, v := range m.vertices {
		m.vertices[i] = mat.MulVec3(v.Sub(center)).Add(center)
	}
	m.CalculateBounds()
}

// CalculateLighting recomputes every triangle's shaded color from its base
// color and current geometry, and remembers light for RefreshLighting.
// Unshaded meshes keep their colors, but the light is still remembered.
func (m *Mesh) CalculateLighting(light lighting.Light) {
	m.light = light
	m.hasLight = true
	if !m.shaded {
		return
	}
	for _, t := range m.triangles {
		t.Shaded = light.Shade(t.Color, t.Normal())
	}
}

// RefreshLighting re-applies the last light given to CalculateLighting. It
// does nothing if no light has been applied yet.
func (m *Mesh) RefreshLighting() {
	if !m.hasLight {
		return
	}
	m.CalculateLighting(m.light)
}

// Light returns the last light applied to the mesh.
func (m *Mesh) Light() (lighting.Light, bool) {
	return m.light, m.hasLight
}

// CenterOfMass returns the unweighted centroid of the mesh's vertices.
func (m *Mesh) CenterOfMass() math3d.Vec3 {
	return CenterOfMass(m.vertices)
}

// CenterOfMass returns the unweighted centroid of vertices, or the origin for
// an empty list.
func CenterOfMass(vertices []math3d.Vec3) math3d.Vec3 {
	if len(vertices) == 0 {
		return math3d.Zero3()
	}
	var sum math3d.Vec3
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	return sum.Div(float64(len(vertices)))
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.vertices[0]
	m.BoundsMax = m.vertices[0]

	for _, v := range m.vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// GetVertex returns the position of vertex i.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.vertices[i]
}

// GetFace returns the vertex indices of triangle i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.triangles[i].V
}

// Clone creates a deep copy of the mesh. The copy's triangles refer to the
// copy's own vertex arena.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:          m.Name,
		vertices:      make([]math3d.Vec3, len(m.vertices)),
		triangles:     make([]*Triangle, len(m.triangles)),
		color:         m.color,
		shaded:        m.shaded,
		totalMovement: m.totalMovement,
		light:         m.light,
		hasLight:      m.hasLight,
		warnings:      append([]string(nil), m.warnings...),
		BoundsMin:     m.BoundsMin,
		BoundsMax:     m.BoundsMax,
	}
	copy(clone.vertices, m.vertices)
	for i, t := range m.triangles {
		tc := *t
		tc.mesh = clone
		clone.triangles[i] = &tc
	}
	return clone
}
