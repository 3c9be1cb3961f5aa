// Package lighting provides the directional light used for flat per-face shading.
package lighting

import (
	"image/color"
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Light is a single directional light. Intensity and ShadowIntensity are
// percentages in [0, 100]: Intensity scales how much a face turned toward the
// light is brightened, ShadowIntensity how much a face turned away is darkened.
type Light struct {
	Direction       math3d.Vec3
	Intensity       float64
	ShadowIntensity float64
}

// New creates a light, clamping both intensities into [0, 100].
func New(direction math3d.Vec3, intensity, shadowIntensity float64) Light {
	return Light{
		Direction:       direction,
		Intensity:       math3d.Clamp(intensity, 0, 100),
		ShadowIntensity: math3d.Clamp(shadowIntensity, 0, 100),
	}
}

// Default returns a light shining straight ahead (+Z) and slightly down.
func Default() Light {
	return New(math3d.V3(0, -0.5, 1), 50, 50)
}

// Terms returns the brightness and darkness, in 8-bit channel units, that the
// light contributes to a face with the given normal. At most one of them is
// non-zero.
//
// The sign convention follows the light's direction of travel: a normal
// pointing back against the light (angle > π/2) faces it and is brightened; a
// normal pointing along it (angle < π/2) is darkened. A zero normal or a zero
// direction contributes nothing.
func (l Light) Terms(normal math3d.Vec3) (brightness, darkness int) {
	if normal.IsZero() || l.Direction.IsZero() {
		return 0, 0
	}

	angle := l.Direction.AngleBetween(normal)
	weight := math.Abs(angle/math.Pi - 0.5)

	switch {
	case angle > math.Pi/2:
		brightness = int(weight * (l.Intensity / 100) * 255)
	case angle < math.Pi/2:
		darkness = int(weight * (l.ShadowIntensity / 100) * 255)
	}
	return brightness, darkness
}

// Shade returns base lit by l for a face with the given normal. Each of the
// red, green and blue channels is adjusted independently and clamped to
// [0, 255]. Shaded colors are always opaque.
func (l Light) Shade(base color.RGBA, normal math3d.Vec3) color.RGBA {
	brightness, darkness := l.Terms(normal)
	delta := brightness - darkness
	return color.RGBA{
		R: channel(base.R, delta),
		G: channel(base.G, delta),
		B: channel(base.B, delta),
		A: 255,
	}
}

func channel(c uint8, delta int) uint8 {
	v := int(c) + delta
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
