package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer is the pixel target for Painter. It can be drawn to a terminal
// with half-block characters, two pixels per cell, or saved as a PNG.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major, Width*Height
}

// NewFramebuffer allocates a width x height framebuffer of transparent
// pixels. Use FramebufferForCells to size one for a terminal.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

func (fb *Framebuffer) contains(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Clear sets every pixel to c.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pixels) == 0 {
		return
	}
	fb.Pixels[0] = c
	// Doubling copy fills the slice in log(n) calls.
	for filled := 1; filled < len(fb.Pixels); filled *= 2 {
		copy(fb.Pixels[filled:], fb.Pixels[:filled])
	}
}

// SetPixel sets the pixel at (x, y). Points outside the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if fb.contains(x, y) {
		fb.Pixels[y*fb.Width+x] = c
	}
}

// GetPixel returns the pixel at (x, y), or transparent black outside the
// buffer.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.contains(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a one-pixel line between two points, both included. Parts
// outside the buffer are clipped.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		fb.SetPixel(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(dx)))
		y := y0 + int(math.Round(t*float64(dy)))
		fb.SetPixel(x, y, c)
	}
}

// FillTriangle fills the screen-space triangle (x0,y0) (x1,y1) (x2,y2) with a
// single color. A pixel is covered when its center lies inside the triangle
// or on its edge; either winding is accepted.
func (fb *Framebuffer) FillTriangle(x0, y0, x1, y1, x2, y2 float64, c color.RGBA) {
	area := edge(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}

	minX := max(0, int(math.Floor(min(x0, x1, x2))))
	maxX := min(fb.Width-1, int(math.Ceil(max(x0, x1, x2))))
	minY := max(0, int(math.Floor(min(y0, y1, y2))))
	maxY := min(fb.Height-1, int(math.Ceil(max(y0, y1, y2))))

	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5
			w0 := edge(x1, y1, x2, y2, cx, cy)
			w1 := edge(x2, y2, x0, y0, cx, cy)
			w2 := edge(x0, y0, x1, y1, cx, cy)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				fb.Pixels[py*fb.Width+px] = c
			}
		}
	}
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage copies the framebuffer into an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		img.Pix[4*i] = c.R
		img.Pix[4*i+1] = c.G
		img.Pix[4*i+2] = c.B
		img.Pix[4*i+3] = c.A
	}
	return img
}

// SavePNG writes the framebuffer to path as a PNG.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
