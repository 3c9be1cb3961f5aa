// Package scene holds the objects placed in the world: each Object owns a
// mesh and the Transform that moves it, and a Scene is a flat list of them.
package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/prism/pkg/math3d"
)

var (
	// ErrUnbound is returned by Transform operations that need the owning
	// object's mesh before Bind has been called.
	ErrUnbound = errors.New("transform is not bound to an object")

	// ErrAlreadyBound is returned when binding a transform that already
	// belongs to another object.
	ErrAlreadyBound = errors.New("transform is already bound to an object")
)

// Transform is the orientation frame of an object: a position, an orthonormal
// right/up/forward basis, and the cumulative rotation that produced the
// basis. Moving or rotating the transform moves or rotates the bound
// object's mesh by the same amount.
type Transform struct {
	object *Object

	position math3d.Vec3
	right    math3d.Vec3
	up       math3d.Vec3
	forward  math3d.Vec3
	rotation math3d.Quat
}

// NewTransform creates an unrotated transform at position.
func NewTransform(position math3d.Vec3) *Transform {
	return &Transform{
		position: position,
		right:    math3d.Right(),
		up:       math3d.Up(),
		forward:  math3d.Forward(),
		rotation: math3d.QuatIdentity(),
	}
}

// Bind attaches the transform to o. A transform belongs to one object for
// its whole life; binding it to a second object fails.
func (t *Transform) Bind(o *Object) error {
	if t.object != nil && t.object != o {
		return ErrAlreadyBound
	}
	t.object = o
	return nil
}

// Object returns the bound object, or nil.
func (t *Transform) Object() *Object {
	return t.object
}

// Position returns the world position of the transform.
func (t *Transform) Position() math3d.Vec3 {
	return t.position
}

// Rotation returns the cumulative rotation.
func (t *Transform) Rotation() math3d.Quat {
	return t.rotation
}

// Right returns the local +X axis in world space.
func (t *Transform) Right() math3d.Vec3 {
	t.right = t.right.Normalize()
	return t.right
}

// Up returns the local +Y axis in world space.
func (t *Transform) Up() math3d.Vec3 {
	t.up = t.up.Normalize()
	return t.up
}

// Forward returns the local +Z axis in world space.
func (t *Transform) Forward() math3d.Vec3 {
	t.forward = t.forward.Normalize()
	return t.forward
}

// SetPosition moves the transform, and its object's mesh, to p.
func (t *Transform) SetPosition(p math3d.Vec3) error {
	return t.Move(p.Sub(t.position))
}

// Move shifts the object's mesh by delta and then the transform itself.
func (t *Transform) Move(delta math3d.Vec3) error {
	if t.object == nil {
		return ErrUnbound
	}
	t.object.mesh.Translate(delta)
	t.position = t.position.Add(delta)
	return nil
}

// Rotate applies the world-space rotation q. The cumulative rotation becomes
// q * rotation and is renormalized so that many small increments do not
// drift away from unit length. The mesh turns about the transform's
// position and its lighting is recomputed.
func (t *Transform) Rotate(q math3d.Quat) error {
	if t.object == nil {
		return ErrUnbound
	}
	q = q.Normalize()
	t.rotation = q.Mul(t.rotation).Normalize()

	mesh := t.object.mesh
	mesh.Rotate(q, t.position)
	mesh.RefreshLighting()

	t.right = t.right.Rotate(q)
	t.up = t.up.Rotate(q)
	t.forward = t.forward.Rotate(q)
	return nil
}

// Basis returns the local-to-world matrix whose columns are the normalized
// right, up and forward vectors.
func (t *Transform) Basis() math3d.Mat3 {
	return math3d.Mat3FromColumns(t.Right(), t.Up(), t.Forward())
}

// TransformToWorld maps a direction given in local coordinates to world
// space. Local (0, 0, 1) maps to Forward. Position is not added.
func (t *Transform) TransformToWorld(p math3d.Vec3) math3d.Vec3 {
	return t.Basis().MulVec3(p)
}

// TransformToLocal is the inverse of TransformToWorld for the current basis.
func (t *Transform) TransformToLocal(p math3d.Vec3) (math3d.Vec3, error) {
	inv, err := t.Basis().Inverse()
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("invert basis: %w", err)
	}
	return inv.MulVec3(p), nil
}
