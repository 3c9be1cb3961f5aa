package render

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/input"
	"github.com/taigrr/prism/pkg/math3d"
)

type point struct {
	pos math3d.Vec3
}

func (p *point) Position() math3d.Vec3 { return p.pos }

func newOrbitCamera(t *testing.T, focus *point) (*Camera, *Orbit) {
	t.Helper()
	cam := NewCamera(math3d.Zero3(), 60, 1, 100)
	return cam, cam.SetOrbitControls(focus, 1, 5)
}

// checkOrbit verifies the camera sits on the orbit sphere and faces the focus.
func checkOrbit(t *testing.T, cam *Camera, o *Orbit, focus *point) {
	t.Helper()
	offset := cam.Position().Sub(focus.pos)
	if math.Abs(offset.Len()-o.Distance()) > 1e-9 {
		t.Errorf("camera is %v from focus, want %v", offset.Len(), o.Distance())
	}
	if !cam.Direction().ApproxEqual(offset.Normalize().Negate(), 1e-9) {
		t.Errorf("camera faces %v, want %v", cam.Direction(), offset.Normalize().Negate())
	}
}

func TestOrbitInitialState(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)

	if o.Distance() != 50.5 {
		t.Errorf("Distance = %v, want midpoint of near and far", o.Distance())
	}
	if !cam.Position().ApproxEqual(math3d.V3(0, 0, -50.5), eps) {
		t.Errorf("Position = %v", cam.Position())
	}
	if math.Abs(cam.Yaw()) > eps || math.Abs(cam.Pitch()) > eps {
		t.Errorf("orientation = %v, %v; want 0, 0", cam.Yaw(), cam.Pitch())
	}
	checkOrbit(t, cam, o, focus)
}

func TestOrbitScrollClamps(t *testing.T) {
	focus := &point{pos: math3d.V3(1, 2, 3)}
	cam, o := newOrbitCamera(t, focus)

	o.Scroll(1000)
	if o.Distance() != 100 {
		t.Errorf("Distance after scrolling out = %v, want 100", o.Distance())
	}
	checkOrbit(t, cam, o, focus)

	o.Scroll(-1000)
	if o.Distance() != 1 {
		t.Errorf("Distance after scrolling in = %v, want 1", o.Distance())
	}
	checkOrbit(t, cam, o, focus)

	o.Scroll(2)
	if o.Distance() != 11 {
		t.Errorf("Distance after two steps = %v, want 11", o.Distance())
	}
}

func TestOrbitDragYaw(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)

	o.Press(0, 0)
	o.Drag(1000, 0)

	want := math3d.V3(0, 0, -1).RotateY(0.5)
	if !o.Direction().ApproxEqual(want, 1e-9) {
		t.Errorf("Direction = %v, want %v", o.Direction(), want)
	}
	checkOrbit(t, cam, o, focus)
}

func TestOrbitDragPitch(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)

	o.Press(0, 0)
	o.Drag(0, 1000)
	if math.Abs(o.Elevation()-0.5) > 1e-9 {
		t.Fatalf("Elevation = %v, want 0.5", o.Elevation())
	}
	checkOrbit(t, cam, o, focus)

	o.Drag(0, 2000)
	if math.Abs(o.Elevation()-1.0) > 1e-9 {
		t.Fatalf("Elevation = %v, want 1.0", o.Elevation())
	}

	// A third step would reach 1.5, past the limit, so it is dropped.
	before := o.Direction()
	o.Drag(0, 3000)
	if !o.Direction().ApproxEqual(before, 1e-12) {
		t.Errorf("over-limit drag changed direction from %v to %v", before, o.Direction())
	}
	checkOrbit(t, cam, o, focus)
}

func TestOrbitPitchNeverExceedsLimit(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)

	o.Press(0, 0)
	y := 0
	for range 200 {
		y -= 37
		o.Drag(y/3, y)
		if e := o.Elevation(); e < -OrbitPitchLimit-1e-9 || e > OrbitPitchLimit+1e-9 {
			t.Fatalf("Elevation = %v, outside ±%v", e, OrbitPitchLimit)
		}
	}
	checkOrbit(t, cam, o, focus)
}

func TestOrbitRejectsLargeStep(t *testing.T) {
	focus := &point{}
	_, o := newOrbitCamera(t, focus)

	o.Press(0, 0)
	o.Drag(0, -4000)
	if !o.Direction().ApproxEqual(math3d.V3(0, 0, -1), 1e-12) {
		t.Errorf("Direction = %v, want unchanged", o.Direction())
	}
}

func TestOrbitRefreshFollowsFocus(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)

	focus.pos = math3d.V3(10, -4, 2)
	o.Refresh()
	checkOrbit(t, cam, o, focus)

	next := &point{pos: math3d.V3(-3, 3, 3)}
	o.SetFocus(next)
	if o.Focus() != Focus(next) {
		t.Error("Focus not replaced")
	}
	checkOrbit(t, cam, o, next)
}

func TestOrbitSetDirection(t *testing.T) {
	focus := &point{pos: math3d.V3(0, 1, 0)}
	cam, o := newOrbitCamera(t, focus)

	o.SetDirection(math3d.V3(3, 0, 0))
	if !o.Direction().ApproxEqual(math3d.V3(1, 0, 0), eps) {
		t.Errorf("Direction = %v, want +X", o.Direction())
	}
	checkOrbit(t, cam, o, focus)

	// Straight up is held back to the pitch limit.
	o.SetDirection(math3d.V3(0, 1, 0.0001))
	if math.Abs(o.Elevation()-OrbitPitchLimit) > 1e-9 {
		t.Errorf("Elevation = %v, want %v", o.Elevation(), OrbitPitchLimit)
	}
	checkOrbit(t, cam, o, focus)

	before := o.Direction()
	o.SetDirection(math3d.Zero3())
	if o.Direction() != before {
		t.Error("zero direction was applied")
	}
}

func TestOrbitHandleEvent(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)

	cam.HandleEvent(input.ScrollEvent{Delta: -2})
	if o.Distance() != 40.5 {
		t.Errorf("Distance = %v, want 40.5", o.Distance())
	}

	cam.HandleEvent(input.PressEvent{X: 10, Y: 10})
	cam.HandleEvent(input.DragEvent{X: 1010, Y: 10})
	want := math3d.V3(0, 0, -1).RotateY(0.5)
	if !o.Direction().ApproxEqual(want, 1e-9) {
		t.Errorf("Direction = %v, want %v", o.Direction(), want)
	}

	// Keys mean nothing to an orbit controller.
	pos := cam.Position()
	cam.HandleEvent(input.KeyEvent{Key: input.KeyForward})
	if cam.Position() != pos {
		t.Error("key event moved an orbiting camera")
	}
}

func TestSetSensitivity(t *testing.T) {
	focus := &point{}
	cam, o := newOrbitCamera(t, focus)
	cam.SetSensitivity(2)

	o.Press(0, 0)
	o.Drag(500, 0)
	want := math3d.V3(0, 0, -1).RotateY(0.5)
	if !o.Direction().ApproxEqual(want, 1e-9) {
		t.Errorf("Direction = %v, want %v", o.Direction(), want)
	}
}

func TestControllersAreExclusive(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 60, 1, 100)

	cam.SetOrbitControls(&point{}, 1, 1)
	cam.SetFreeControls(1, 1)
	if cam.OrbitControls() != nil {
		t.Error("orbit controller still active after SetFreeControls")
	}
	if cam.FreeControls() == nil {
		t.Fatal("free controller not active")
	}

	cam.SetOrbitControls(&point{}, 1, 1)
	if cam.FreeControls() != nil {
		t.Error("free controller still active after SetOrbitControls")
	}

	// Without a controller events are dropped.
	bare := NewCamera(math3d.Zero3(), 60, 1, 100)
	bare.HandleEvent(input.KeyEvent{Key: input.KeyForward})
	bare.SetSensitivity(3)
	if bare.Position() != math3d.Zero3() {
		t.Error("camera without controller moved")
	}
}

func TestFreeFlyKeys(t *testing.T) {
	tests := []struct {
		key  input.Key
		want math3d.Vec3
	}{
		{input.KeyForward, math3d.V3(0, 0, 2)},
		{input.KeyBack, math3d.V3(0, 0, -2)},
		{input.KeyLeft, math3d.V3(-2, 0, 0)},
		{input.KeyRight, math3d.V3(2, 0, 0)},
		{input.KeyUp, math3d.V3(0, 2, 0)},
		{input.KeyDown, math3d.V3(0, -2, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.key.String(), func(t *testing.T) {
			cam := NewCamera(math3d.Zero3(), 60, 1, 100)
			cam.SetFreeControls(2, 1)
			cam.HandleEvent(input.KeyEvent{Key: tc.key})
			if !cam.Position().ApproxEqual(tc.want, 1e-9) {
				t.Errorf("Position = %v, want %v", cam.Position(), tc.want)
			}
		})
	}
}

func TestFreeFlyMovesAlongView(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 60, 1, 100)
	f := cam.SetFreeControls(1, 1)
	cam.SetOrientation(math.Pi/2, 0)

	f.Key(input.KeyForward)
	if !cam.Position().ApproxEqual(math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("forward after turning right = %v", cam.Position())
	}

	f.SetMovementSpeed(3)
	f.Key(input.KeyLeft)
	if !cam.Position().ApproxEqual(math3d.V3(1, 0, 3), 1e-9) {
		t.Errorf("left after turning right = %v", cam.Position())
	}
}

func TestFreeFlyDrag(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 60, 1, 100)
	f := cam.SetFreeControls(1, 1)

	f.Press(5, 5)
	f.Drag(15, 5)
	if math.Abs(cam.Yaw()-0.1) > eps || cam.Pitch() != 0 {
		t.Errorf("after drag right: yaw %v pitch %v", cam.Yaw(), cam.Pitch())
	}

	f.Drag(15, 15)
	if math.Abs(cam.Pitch()-(2*math.Pi-0.1)) > eps {
		t.Errorf("after drag down: pitch %v, want 2π-0.1", cam.Pitch())
	}
	if !cam.Direction().ApproxEqual(math3d.AngleToVector(0.1, -0.1), 1e-9) {
		t.Errorf("Direction = %v", cam.Direction())
	}

	f.SetSensitivity(100)
	f.Press(0, 0)
	f.Drag(-10, 0)
	if y := cam.Yaw(); y < 0 || y >= 2*math.Pi {
		t.Errorf("yaw %v outside [0, 2π)", y)
	}
}
