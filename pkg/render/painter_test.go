package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/bmp"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	black = color.RGBA{A: 255}
)

func TestFillTriangle(t *testing.T) {
	tests := []struct {
		name string
		xs   [3]float64
		ys   [3]float64
	}{
		{"clockwise", [3]float64{0, 10, 0}, [3]float64{0, 0, 10}},
		{"counter-clockwise", [3]float64{0, 0, 10}, [3]float64{0, 10, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(12, 12)
			fb.FillTriangle(tc.xs[0], tc.ys[0], tc.xs[1], tc.ys[1], tc.xs[2], tc.ys[2], red)

			if fb.GetPixel(1, 1) != red {
				t.Error("interior pixel not filled")
			}
			if fb.GetPixel(9, 9) != (color.RGBA{}) {
				t.Error("pixel past the hypotenuse filled")
			}
			if fb.GetPixel(11, 0) != (color.RGBA{}) {
				t.Error("pixel outside the triangle filled")
			}
		})
	}
}

func TestFillTriangleEdgeCases(t *testing.T) {
	fb := NewFramebuffer(8, 8)

	fb.FillTriangle(0, 0, 4, 4, 8, 8, red)
	for i, p := range fb.Pixels {
		if p != (color.RGBA{}) {
			t.Fatalf("degenerate triangle filled pixel %d", i)
		}
	}

	// Partly off-screen triangles are clipped to the buffer.
	fb.FillTriangle(-20, -20, 30, -20, -20, 30, green)
	if fb.GetPixel(0, 0) != green {
		t.Error("clipped triangle missed the corner pixel")
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(1, 1, 7, 4, red)

	for _, pt := range [][2]int{{1, 1}, {7, 4}, {3, 2}, {5, 3}} {
		if fb.GetPixel(pt[0], pt[1]) != red {
			t.Errorf("pixel %v not drawn", pt)
		}
	}
	count := 0
	for _, c := range fb.Pixels {
		if c == red {
			count++
		}
	}
	if count != 7 {
		t.Errorf("line covers %d pixels, want one per column (7)", count)
	}

	// Off-buffer parts are clipped, not wrapped.
	fb.Clear(black)
	fb.DrawLine(-5, 2, 12, 2, green)
	for x := range 10 {
		if fb.GetPixel(x, 2) != green {
			t.Errorf("pixel (%d, 2) not drawn", x)
		}
	}
	if fb.GetPixel(9, 1) != black || fb.GetPixel(0, 3) != black {
		t.Error("clipped line spilled into other rows")
	}
}

func TestClear(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64} {
		fb := NewFramebuffer(n, 1)
		fb.Clear(green)
		for i, c := range fb.Pixels {
			if c != green {
				t.Fatalf("width %d: pixel %d = %v", n, i, c)
			}
		}
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear(black)
	fb.SetPixel(3, 1, red)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 4 || tex.Height != 2 {
		t.Fatalf("size = %dx%d", tex.Width, tex.Height)
	}
	if tex.GetPixel(3, 1) != red || tex.GetPixel(0, 0) != black {
		t.Errorf("pixels = %v, %v", tex.GetPixel(3, 1), tex.GetPixel(0, 0))
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}

func TestFramebufferDraw(t *testing.T) {
	fb := FramebufferForCells(3, 2)
	if fb.Width != 3 || fb.Height != 4 {
		t.Fatalf("size = %dx%d, want 3x4", fb.Width, fb.Height)
	}
	fb.SetPixel(1, 2, red)
	fb.SetPixel(1, 3, green)

	scr := uv.NewScreenBuffer(3, 2)
	fb.Draw(scr, uv.Rect(0, 0, 3, 2))

	cell := scr.CellAt(1, 1)
	if cell == nil {
		t.Fatal("no cell drawn")
	}
	if cell.Content != "▀" {
		t.Errorf("content = %q", cell.Content)
	}
	if cell.Style.Fg != color.Color(red) || cell.Style.Bg != color.Color(green) {
		t.Errorf("style = %v / %v, want red over green", cell.Style.Fg, cell.Style.Bg)
	}
	if scr.CellAt(0, 0).Style.Fg != nil {
		t.Error("transparent pixel should use the default color")
	}
}

func TestTextureSample(t *testing.T) {
	tex := NewCheckerTexture(2, 2, 1, red, green)

	tests := []struct {
		name string
		u, v float64
		want color.RGBA
	}{
		{"top left", 0.25, 0.75, red},
		{"top right", 0.75, 0.75, green},
		{"bottom left", 0.25, 0.25, green},
		{"bottom right", 0.75, 0.25, red},
		{"wrapped", 1.25, 0.75, red},
		{"negative wraps", -0.25, 0.75, green},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}

	tex.WrapU = WrapClamp
	if got := tex.Sample(-3, 0.75); got != red {
		t.Errorf("clamped Sample = %v, want red", got)
	}
}

func TestTextureBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, black)
	tex.SetPixel(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	tex.FilterMode = FilterBilinear

	want := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	if got := tex.Sample(0.5, 0.5); got != want {
		t.Errorf("Sample = %v, want %v", got, want)
	}
}

func TestTextureIsSampler(t *testing.T) {
	var s models.Sampler = NewCheckerTexture(4, 4, 2, red, green)
	if s.Sample(0.1, 0.9) != red {
		t.Error("texture does not sample through models.Sampler")
	}
	if (&Texture{}).Sample(0.5, 0.5) != (color.RGBA{}) {
		t.Error("empty texture should sample transparent black")
	}
}

func TestLoadTextureMissing(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("LoadTexture of a missing file succeeded")
	}
}

func TestLoadTextureBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, green)
	img.SetRGBA(0, 1, black)
	img.SetRGBA(1, 1, black)

	path := filepath.Join(t.TempDir(), "tex.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.GetPixel(0, 0) != red || tex.GetPixel(1, 0) != green {
		t.Errorf("pixels = %v, %v", tex.GetPixel(0, 0), tex.GetPixel(1, 0))
	}
}

func quad(t *testing.T, z float64, c color.RGBA) *models.Mesh {
	t.Helper()
	m := models.NewMesh("quad", c, false)
	m.AddVertex(math3d.V3(-5, -5, z))
	m.AddVertex(math3d.V3(5, -5, z))
	m.AddVertex(math3d.V3(0, 5, z))
	if _, err := m.AddTriangle([3]int{0, 1, 2}, c); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPainterPaint(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -10), 90, 0.1, 100)
	p := NewPainter(cam)
	fb := NewFramebuffer(40, 20)

	if n := p.Paint(fb, quad(t, 0, red)); n != 1 {
		t.Fatalf("Paint drew %d triangles, want 1", n)
	}
	if got := fb.GetPixel(20, 10); got != red {
		t.Errorf("center = %v, want red", got)
	}
	if got := fb.GetPixel(0, 0); got != black {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestPainterDepthOrder(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -10), 90, 0.1, 100)
	p := NewPainter(cam)
	fb := NewFramebuffer(40, 20)

	near := quad(t, -5, green)
	far := quad(t, 5, red)

	for _, order := range [][]*models.Mesh{{near, far}, {far, near}} {
		p.Paint(fb, order...)
		if got := fb.GetPixel(20, 10); got != green {
			t.Errorf("center = %v, want the nearer green triangle", got)
		}
	}
}

func TestPainterSkipsBehindCamera(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -10), 90, 0.1, 100)
	p := NewPainter(cam)
	fb := NewFramebuffer(40, 20)

	if n := p.Paint(fb, quad(t, -20, red)); n != 0 {
		t.Errorf("Paint drew %d triangles behind the camera", n)
	}
	for _, px := range fb.Pixels {
		if px != black {
			t.Fatal("triangle behind the camera was painted")
		}
	}
}

func TestPainterFarClip(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -10), 90, 0.1, 20)
	p := NewPainter(cam)
	fb := NewFramebuffer(40, 20)

	if n := p.Paint(fb, quad(t, 15, red)); n != 0 {
		t.Errorf("Paint drew %d triangles past the far plane", n)
	}
	if got := fb.GetPixel(20, 10); got != black {
		t.Errorf("center = %v, want background", got)
	}

	// Straddling the far plane still paints.
	m := models.NewMesh("slanted", red, false)
	m.AddVertex(math3d.V3(-5, -5, 5))
	m.AddVertex(math3d.V3(5, -5, 5))
	m.AddVertex(math3d.V3(0, 5, 15))
	if _, err := m.AddTriangle([3]int{0, 1, 2}, red); err != nil {
		t.Fatal(err)
	}
	if n := p.Paint(fb, m); n != 1 {
		t.Errorf("Paint drew %d triangles, want 1 for one crossing the far plane", n)
	}
}

func TestPainterWireframe(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -10), 90, 0.1, 100)
	p := NewPainter(cam)
	p.Wireframe = true
	fb := NewFramebuffer(40, 20)

	p.Paint(fb, quad(t, 0, red))
	if got := fb.GetPixel(20, 0); got != p.WireColor {
		t.Errorf("apex = %v, want wire color", got)
	}
}
