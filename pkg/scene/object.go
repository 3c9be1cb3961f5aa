package scene

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// Object is a named mesh placed in the world by its Transform.
type Object struct {
	Name string

	mesh      *models.Mesh
	transform *Transform
}

// NewObject creates an object owning mesh, with a transform at position. The
// mesh is expected to already sit at position; the transform only tracks
// changes from here on.
func NewObject(name string, mesh *models.Mesh, position math3d.Vec3) *Object {
	o := &Object{Name: name, mesh: mesh}
	o.transform = NewTransform(position)
	// A fresh transform cannot already be bound.
	_ = o.transform.Bind(o)
	return o
}

// Mesh returns the object's mesh.
func (o *Object) Mesh() *models.Mesh {
	return o.mesh
}

// Transform returns the object's transform.
func (o *Object) Transform() *Transform {
	return o.transform
}

// Position returns the object's world position, so an Object can be the
// focus of an orbiting camera.
func (o *Object) Position() math3d.Vec3 {
	return o.transform.position
}

// ReplaceMesh swaps in a freshly loaded mesh, for example after the model
// file changed on disk. The new mesh is rotated to the transform's current
// orientation about its position and takes over the old mesh's light.
func (o *Object) ReplaceMesh(mesh *models.Mesh) {
	if rot := o.transform.rotation; rot != math3d.QuatIdentity() {
		mesh.Rotate(rot, o.transform.position)
	}
	if light, ok := o.mesh.Light(); ok {
		mesh.CalculateLighting(light)
	}
	o.mesh = mesh
}
