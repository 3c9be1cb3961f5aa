package scene

import (
	"slices"

	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/models"
)

// Scene is a flat list of independent objects lit by one directional light.
type Scene struct {
	objects []*Object
	light   lighting.Light
}

// New creates an empty scene lit by light.
func New(light lighting.Light) *Scene {
	return &Scene{light: light}
}

// Add appends objects to the scene and lights their meshes.
func (s *Scene) Add(objects ...*Object) {
	for _, o := range objects {
		o.mesh.CalculateLighting(s.light)
	}
	s.objects = append(s.objects, objects...)
}

// Remove deletes the first object with the given name. It reports whether
// one was found.
func (s *Scene) Remove(name string) bool {
	i := slices.IndexFunc(s.objects, func(o *Object) bool { return o.Name == name })
	if i < 0 {
		return false
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	return true
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (*Object, bool) {
	for _, o := range s.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Objects returns the objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Meshes returns every object's mesh in insertion order.
func (s *Scene) Meshes() []*models.Mesh {
	meshes := make([]*models.Mesh, len(s.objects))
	for i, o := range s.objects {
		meshes[i] = o.mesh
	}
	return meshes
}

// Light returns the scene light.
func (s *Scene) Light() lighting.Light {
	return s.light
}

// Relight replaces the scene light and reshades every mesh with it.
func (s *Scene) Relight(light lighting.Light) {
	s.light = light
	for _, o := range s.objects {
		o.mesh.CalculateLighting(light)
	}
}
