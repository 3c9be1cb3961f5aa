package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/prism/pkg/math3d"
)

// SpinAxis tracks the accumulated angle and angular velocity about one axis.
// The velocity is pulled back to zero by a critically damped spring.
type SpinAxis struct {
	Angle    float64
	Velocity float64

	spring harmonica.Spring
	accel  float64 // spring velocity of Velocity itself
}

func newSpinAxis(fps int) SpinAxis {
	return SpinAxis{
		// Frequency 4 settles within about a second; damping 1 never overshoots.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *SpinAxis) step() float64 {
	delta := a.Velocity
	a.Angle += delta
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return delta
}

// Spinner drives a Transform with per-frame rotation increments that coast
// to a stop after an impulse.
type Spinner struct {
	Pitch, Yaw, Roll SpinAxis

	fps int
}

// NewSpinner creates a spinner stepped fps times per second.
func NewSpinner(fps int) *Spinner {
	s := &Spinner{fps: fps}
	s.Reset()
	return s
}

// Impulse adds angular velocity, in radians per frame, about each axis.
func (s *Spinner) Impulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// Reset stops all motion and clears the accumulated angles.
func (s *Spinner) Reset() {
	s.Pitch = newSpinAxis(s.fps)
	s.Yaw = newSpinAxis(s.fps)
	s.Roll = newSpinAxis(s.fps)
}

// Resting reports whether every angular velocity is below eps.
func (s *Spinner) Resting(eps float64) bool {
	return abs(s.Pitch.Velocity) < eps && abs(s.Yaw.Velocity) < eps && abs(s.Roll.Velocity) < eps
}

// Step advances one frame and rotates t by that frame's increment.
func (s *Spinner) Step(t *Transform) error {
	pitch := s.Pitch.step()
	yaw := s.Yaw.step()
	roll := s.Roll.step()
	if pitch == 0 && yaw == 0 && roll == 0 {
		return nil
	}
	return t.Rotate(math3d.QuatFromEuler(pitch, yaw, roll))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
