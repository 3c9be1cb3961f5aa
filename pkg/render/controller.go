package render

import (
	"math"

	"github.com/taigrr/prism/pkg/input"
	"github.com/taigrr/prism/pkg/math3d"
)

// OrbitPitchLimit bounds the orbit elevation to
// [-OrbitPitchLimit, OrbitPitchLimit] so the camera never passes over a pole.
const OrbitPitchLimit = math.Pi/2 - 0.1

// Focus is anything with a world position an orbit camera can circle.
type Focus interface {
	Position() math3d.Vec3
}

// Orbit circles the camera around a focus. Dragging swings the camera around
// the focus; scrolling changes its distance.
type Orbit struct {
	cam   *Camera
	focus Focus

	distance    float64
	minDistance float64
	maxDistance float64

	// direction points from the focus to the camera.
	direction math3d.Vec3

	sensitivity       float64
	scrollSensitivity float64

	prevX, prevY int
}

func newOrbit(cam *Camera, focus Focus, sensitivity, scrollSensitivity float64) *Orbit {
	o := &Orbit{
		cam:               cam,
		focus:             focus,
		minDistance:       cam.near,
		maxDistance:       cam.far,
		direction:         math3d.V3(0, 0, -1),
		sensitivity:       sensitivity,
		scrollSensitivity: scrollSensitivity,
	}
	o.distance = (o.minDistance + o.maxDistance) / 2
	o.Refresh()
	return o
}

// Distance returns the distance from the focus to the camera.
func (o *Orbit) Distance() float64 {
	return o.distance
}

// SetDistance sets the distance, clamped to the near/far range captured when
// the controller was created.
func (o *Orbit) SetDistance(d float64) {
	o.distance = math3d.Clamp(d, o.minDistance, o.maxDistance)
	o.Refresh()
}

// Direction returns the unit vector from the focus to the camera.
func (o *Orbit) Direction() math3d.Vec3 {
	return o.direction
}

// SetDirection places the camera on the side of the focus given by d, with
// the elevation limited to OrbitPitchLimit. A zero d is ignored.
func (o *Orbit) SetDirection(d math3d.Vec3) {
	if d.IsZero() {
		return
	}
	d = d.Normalize()
	if elev := math.Asin(math3d.Clamp(d.Y, -1, 1)); math.Abs(elev) > OrbitPitchLimit {
		heading := math.Atan2(d.X, d.Z)
		d = math3d.AngleToVector(heading, math.Copysign(OrbitPitchLimit, elev))
	}
	o.direction = d
	o.Refresh()
}

// Elevation returns the angle of the camera above the focus's horizontal plane.
func (o *Orbit) Elevation() float64 {
	return math.Asin(math3d.Clamp(o.direction.Y, -1, 1))
}

// Focus returns the orbited object.
func (o *Orbit) Focus() Focus {
	return o.focus
}

// SetFocus switches the orbited object and re-aims the camera.
func (o *Orbit) SetFocus(f Focus) {
	o.focus = f
	o.Refresh()
}

// SetSensitivity sets the drag sensitivity.
func (o *Orbit) SetSensitivity(s float64) {
	o.sensitivity = s
}

// Refresh places the camera at the current distance and direction from the
// focus and aims it at the focus. Call it after the focus moves.
func (o *Orbit) Refresh() {
	target := o.focus.Position()
	o.cam.SetPosition(target.Add(o.direction.Scale(o.distance)))
	o.cam.LookAt(target)
}

// HandleEvent applies a press, drag or scroll event.
func (o *Orbit) HandleEvent(ev input.Event) {
	switch ev := ev.(type) {
	case input.PressEvent:
		o.Press(ev.X, ev.Y)
	case input.DragEvent:
		o.Drag(ev.X, ev.Y)
	case input.ScrollEvent:
		o.Scroll(ev.Delta)
	}
}

// Press records the pointer position a drag starts from.
func (o *Orbit) Press(x, y int) {
	o.prevX, o.prevY = x, y
}

// Scroll moves the camera toward (negative delta) or away from the focus.
func (o *Orbit) Scroll(delta int) {
	o.SetDistance(o.distance + float64(delta)*o.scrollSensitivity)
}

// Drag swings the camera around the focus by the pointer movement since the
// last press or drag. Horizontal movement turns about world up. Vertical
// movement tilts about the camera's horizontal axis, but only if the result
// stays within OrbitPitchLimit; otherwise the tilt is dropped.
func (o *Orbit) Drag(x, y int) {
	dx := float64(x - o.prevX)
	dy := float64(y - o.prevY)
	o.prevX, o.prevY = x, y

	dir := o.direction.RotateY(dx * o.sensitivity / 2000)

	if dy != 0 {
		delta := dy * o.sensitivity / 2000
		elevation := math.Asin(math3d.Clamp(dir.Y, -1, 1))
		if next := elevation + delta; next >= -OrbitPitchLimit && next <= OrbitPitchLimit {
			heading := math.Atan2(dir.X, dir.Z)
			dir = dir.RotateY(-heading).RotateX(delta).RotateY(heading)
		}
	}

	o.direction = dir.Normalize()
	o.Refresh()
}

// FreeFly moves the camera like a first-person flyer: dragging looks around
// and the movement keys translate along the view.
type FreeFly struct {
	cam *Camera

	movementSpeed float64
	sensitivity   float64

	prevX, prevY int
}

func newFreeFly(cam *Camera, movementSpeed, sensitivity float64) *FreeFly {
	return &FreeFly{
		cam:           cam,
		movementSpeed: movementSpeed,
		sensitivity:   sensitivity,
	}
}

// SetSensitivity sets the drag sensitivity.
func (f *FreeFly) SetSensitivity(s float64) {
	f.sensitivity = s
}

// SetMovementSpeed sets the distance moved per key press.
func (f *FreeFly) SetMovementSpeed(speed float64) {
	f.movementSpeed = speed
}

// HandleEvent applies a press, drag or key event.
func (f *FreeFly) HandleEvent(ev input.Event) {
	switch ev := ev.(type) {
	case input.PressEvent:
		f.Press(ev.X, ev.Y)
	case input.DragEvent:
		f.Drag(ev.X, ev.Y)
	case input.KeyEvent:
		f.Key(ev.Key)
	}
}

// Press records the pointer position a drag starts from.
func (f *FreeFly) Press(x, y int) {
	f.prevX, f.prevY = x, y
}

// Drag turns the camera by the pointer movement since the last press or
// drag. Moving right increases yaw; moving down lowers pitch. Both angles are
// kept in [0, 2π).
func (f *FreeFly) Drag(x, y int) {
	dx := float64(x - f.prevX)
	dy := float64(y - f.prevY)
	f.prevX, f.prevY = x, y

	yaw := math3d.WrapTwoPi(f.cam.yaw + dx*f.sensitivity/100)
	pitch := math3d.WrapTwoPi(f.cam.pitch - dy*f.sensitivity/100)
	f.cam.SetOrientation(yaw, pitch)
}

// Key moves the camera one step for a movement key.
func (f *FreeFly) Key(k input.Key) {
	switch k {
	case input.KeyForward:
		f.cam.MoveForward(f.movementSpeed)
	case input.KeyBack:
		f.cam.MoveForward(-f.movementSpeed)
	case input.KeyLeft:
		f.cam.MoveLeft(f.movementSpeed)
	case input.KeyRight:
		f.cam.MoveLeft(-f.movementSpeed)
	case input.KeyUp:
		f.cam.MoveUp(f.movementSpeed)
	case input.KeyDown:
		f.cam.MoveUp(-f.movementSpeed)
	}
}
