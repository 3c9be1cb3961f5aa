package render

import (
	"image/color"
	"slices"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

// Painter draws meshes into a Framebuffer with one flat color per triangle.
// Triangles are sorted by their mean view depth and painted far to near;
// there is no depth buffer, so intersecting triangles may overlap wrongly.
type Painter struct {
	Camera     *Camera
	Background color.RGBA

	// Wireframe, when set, outlines each painted triangle in WireColor.
	Wireframe bool
	WireColor color.RGBA
}

// NewPainter creates a painter for cam with a black background.
func NewPainter(cam *Camera) *Painter {
	return &Painter{
		Camera:     cam,
		Background: color.RGBA{A: 255},
		WireColor:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

type projected struct {
	xs, ys [3]float64
	depth  float64
	color  color.RGBA
}

// Paint clears fb and draws every triangle of meshes that lies entirely in
// front of the near plane and not entirely past the far plane. It returns the
// number of triangles drawn.
func (p *Painter) Paint(fb *Framebuffer, meshes ...*models.Mesh) int {
	fb.Clear(p.Background)
	if fb.Height > 0 {
		p.Camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	}

	var tris []projected
	for _, m := range meshes {
		for _, tri := range m.Triangles() {
			if pt, ok := p.project(tri, fb); ok {
				tris = append(tris, pt)
			}
		}
	}

	slices.SortStableFunc(tris, func(a, b projected) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	for _, t := range tris {
		fb.FillTriangle(t.xs[0], t.ys[0], t.xs[1], t.ys[1], t.xs[2], t.ys[2], t.color)
		if p.Wireframe {
			for i := range 3 {
				j := (i + 1) % 3
				fb.DrawLine(int(t.xs[i]), int(t.ys[i]), int(t.xs[j]), int(t.ys[j]), p.WireColor)
			}
		}
	}
	return len(tris)
}

func (p *Painter) project(tri *models.Triangle, fb *Framebuffer) (projected, bool) {
	var pt projected
	near, far := p.Camera.Near(), p.Camera.Far()
	beyond := 0
	a, b, c := tri.Vertices()
	for i, v := range [3]math3d.Vec3{a, b, c} {
		d := p.Camera.ViewDepth(v)
		if d <= near {
			return projected{}, false
		}
		if d > far {
			beyond++
		}
		pt.depth += d / 3
		pt.xs[i], pt.ys[i], _, _ = p.Camera.WorldToScreen(v, fb.Width, fb.Height)
	}
	if beyond == 3 {
		return projected{}, false
	}
	pt.color = tri.Shaded
	return pt, true
}
