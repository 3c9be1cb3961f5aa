// Package render provides the camera, its interactive controllers, and a
// flat-shaded terminal renderer for Prism.
package render

import (
	"math"

	"github.com/taigrr/prism/pkg/input"
	"github.com/taigrr/prism/pkg/math3d"
)

// RenderPlaneDistance is the distance from the camera to its render plane.
const RenderPlaneDistance = 50.0

// Camera is a perspective camera oriented by yaw and pitch.
//
// Yaw is measured about +Y from +Z toward +X; pitch is elevation above the XZ
// plane. Both are radians. The field of view is horizontal.
type Camera struct {
	position  math3d.Vec3
	yaw       float64
	pitch     float64
	direction math3d.Vec3

	fov    float64 // Horizontal field of view in radians
	aspect float64 // Width / Height
	near   float64
	far    float64

	// renderPlaneWidth depends only on fov and is recomputed by SetFOV.
	renderPlaneWidth float64

	// At most one controller is active.
	orbit *Orbit
	free  *FreeFly

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a camera at position looking down +Z. fovDegrees is the
// horizontal field of view in degrees.
func NewCamera(position math3d.Vec3, fovDegrees, near, far float64) *Camera {
	c := &Camera{
		position:  position,
		direction: math3d.AngleToVector(0, 0),
		aspect:    16.0 / 9.0,
		near:      near,
		far:       far,
		viewDirty: true,
		projDirty: true,
	}
	c.SetFOV(fovDegrees)
	return c
}

// Position returns the camera position in world space.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.position = pos
	c.viewDirty = true
}

// Yaw returns the camera yaw in radians.
func (c *Camera) Yaw() float64 {
	return c.yaw
}

// Pitch returns the camera pitch in radians.
func (c *Camera) Pitch() float64 {
	return c.pitch
}

// SetOrientation sets yaw and pitch (radians) and updates the direction.
func (c *Camera) SetOrientation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = pitch
	c.direction = math3d.AngleToVector(yaw, pitch)
	c.viewDirty = true
}

// Direction returns the unit vector the camera faces.
func (c *Camera) Direction() math3d.Vec3 {
	return c.direction
}

// Up returns the camera's up vector: the direction with its pitch raised by
// a quarter turn. It stays perpendicular to Direction at every pitch.
func (c *Camera) Up() math3d.Vec3 {
	return math3d.AngleToVector(c.yaw, c.pitch+math.Pi/2)
}

// Left returns the horizontal vector to the camera's left.
func (c *Camera) Left() math3d.Vec3 {
	return math3d.AngleToVector(c.yaw-math.Pi/2, 0)
}

// FOV returns the horizontal field of view in radians.
func (c *Camera) FOV() float64 {
	return c.fov
}

// SetFOV sets the horizontal field of view in degrees and recomputes the
// render plane width.
func (c *Camera) SetFOV(degrees float64) {
	c.fov = math3d.DegToRad(degrees)
	c.renderPlaneWidth = math.Tan(c.fov/2) * RenderPlaneDistance * 2
	c.projDirty = true
}

// RenderPlaneWidth returns the width of the render plane at
// RenderPlaneDistance for the current field of view.
func (c *Camera) RenderPlaneWidth() float64 {
	return c.renderPlaneWidth
}

// RenderPlaneDistance returns the distance from the camera to its render plane.
func (c *Camera) RenderPlaneDistance() float64 {
	return RenderPlaneDistance
}

// Near returns the near clip distance.
func (c *Camera) Near() float64 {
	return c.near
}

// Far returns the far clip distance.
func (c *Camera) Far() float64 {
	return c.far
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.aspect = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.near = near
	c.far = far
	c.projDirty = true
}

// LookAt turns the camera toward target.
//
// Yaw comes from the arctangent of the horizontal offset, with a branch for
// targets at negative X; pitch from the arctangent of the vertical offset over
// the horizontal distance. Angles beyond ±π are reduced with a plain modulo π,
// which is a simplification and not a full normalization. A target at the
// camera position leaves the orientation unchanged.
func (c *Camera) LookAt(target math3d.Vec3) {
	d := target.Sub(c.position)
	horizontal := math.Hypot(d.X, d.Z)
	if horizontal == 0 && d.Y == 0 {
		return
	}

	yaw := c.yaw
	if horizontal != 0 {
		switch {
		case d.X == 0 && d.Z > 0:
			yaw = 0
		case d.X == 0:
			yaw = math.Pi
		case d.X < 0:
			yaw = -math.Atan(d.Z/d.X) - math.Pi/2
		default:
			yaw = math.Pi/2 - math.Atan(d.Z/d.X)
		}
	}
	pitch := math.Atan(d.Y / horizontal)

	c.SetOrientation(wrapPi(yaw), wrapPi(pitch))
}

func wrapPi(angle float64) float64 {
	if math.Abs(angle) > math.Pi {
		return math.Mod(angle, math.Pi)
	}
	return angle
}

// MoveForward moves the camera along its direction (backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.move(c.direction.Scale(distance))
}

// MoveLeft moves the camera horizontally to its left (right if negative).
func (c *Camera) MoveLeft(distance float64) {
	c.move(c.Left().Scale(distance))
}

// MoveUp moves the camera along its up vector (down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.move(c.Up().Scale(distance))
}

func (c *Camera) move(delta math3d.Vec3) {
	c.position = c.position.Add(delta)
	c.viewDirty = true
}

// SetOrbitControls makes an orbit controller around focus the active
// controller, replacing any free-fly controller.
func (c *Camera) SetOrbitControls(focus Focus, sensitivity, scrollSensitivity float64) *Orbit {
	c.free = nil
	c.orbit = newOrbit(c, focus, sensitivity, scrollSensitivity)
	return c.orbit
}

// SetFreeControls makes a free-fly controller the active controller,
// replacing any orbit controller.
func (c *Camera) SetFreeControls(movementSpeed, sensitivity float64) *FreeFly {
	c.orbit = nil
	c.free = newFreeFly(c, movementSpeed, sensitivity)
	return c.free
}

// OrbitControls returns the active orbit controller, or nil.
func (c *Camera) OrbitControls() *Orbit {
	return c.orbit
}

// FreeControls returns the active free-fly controller, or nil.
func (c *Camera) FreeControls() *FreeFly {
	return c.free
}

// SetSensitivity changes the orbit controller's drag sensitivity. It does
// nothing when no orbit controller is active.
func (c *Camera) SetSensitivity(sensitivity float64) {
	if c.orbit != nil {
		c.orbit.SetSensitivity(sensitivity)
	}
}

// HandleEvent forwards ev to the active controller.
func (c *Camera) HandleEvent(ev input.Event) {
	switch {
	case c.orbit != nil:
		c.orbit.HandleEvent(ev)
	case c.free != nil:
		c.free.HandleEvent(ev)
	}
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.position, c.position.Add(c.direction), c.Up())
		c.viewDirty = false
		c.viewProjDirty = true
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		// Perspective takes a vertical field of view.
		fovy := 2 * math.Atan(math.Tan(c.fov/2)/c.aspect)
		c.projMatrix = math3d.Perspective(fovy, c.aspect, c.near, c.far)
		c.projDirty = false
		c.viewProjDirty = true
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.viewProjDirty {
		c.viewProjMatrix = proj.Mul(view)
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// ViewDepth returns the distance of p in front of the camera along its
// direction. Negative values are behind the camera.
func (c *Camera) ViewDepth(p math3d.Vec3) float64 {
	return p.Sub(c.position).Dot(c.direction)
}

// WorldToScreen projects a world point onto a screen of the given size, with
// y growing downward. depth is the NDC depth in [-1, 1] for points between
// the clip planes. visible is false outside the view volume, and all values
// are zero for points behind the camera.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	ndc, ok := c.ViewProjectionMatrix().Project(worldPos).NDC()
	if !ok {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) / 2 * float64(screenWidth)
	y = (1 - ndc.Y) / 2 * float64(screenHeight)
	return x, y, ndc.Z, math3d.InViewVolume(ndc)
}
