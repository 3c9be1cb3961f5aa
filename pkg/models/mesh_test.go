package models

import (
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taigrr/prism/pkg/lighting"
	"github.com/taigrr/prism/pkg/math3d"
)

// quad returns the unit quad in the XY plane, facing -Z, without recentering.
func quad(t *testing.T, shaded bool) *Mesh {
	t.Helper()
	c := red
	offset := math3d.Zero3()
	m, err := Parse(strings.NewReader(quadOBJ), "quad", Options{Color: &c, Offset: &offset, Shaded: shaded})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return m
}

func TestLoadWarnings(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing obj", "/nonexistent/model.obj"},
		{"missing glb", "/nonexistent/model.glb"},
		{"unsupported extension", writeModel(t, "model.stl", "solid nothing")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)

			m, err := Load(tc.path, Options{Logger: zap.New(core)})
			if err != nil {
				t.Fatalf("Load() error = %v, want nil for load problems", err)
			}
			if m.VertexCount() != 0 || m.TriangleCount() != 0 {
				t.Errorf("mesh has %d vertices, %d triangles; want empty", m.VertexCount(), m.TriangleCount())
			}
			if len(m.Warnings()) != 1 {
				t.Errorf("Warnings = %v, want exactly one", m.Warnings())
			}
			if logs.Len() != 1 {
				t.Fatalf("logged %d warnings, want 1", logs.Len())
			}
			if got := logs.All()[0].ContextMap()["path"]; got != tc.path {
				t.Errorf("logged path = %v, want %q", got, tc.path)
			}
		})
	}
}

func TestLoadTextureWarnings(t *testing.T) {
	path := writeModel(t, "quad.obj", quadOBJ+"vt 0 0\nvt 1 0\nvt 1 1\n")
	failing := func(string) (Sampler, error) { return nil, errors.New("no such image") }

	tests := []struct {
		name string
		open func(string) (Sampler, error)
	}{
		{"unreadable texture", failing},
		{"no decoder", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			c := red

			m, err := Load(path, Options{
				Color:       &c,
				TexturePath: "nope.png",
				OpenTexture: tc.open,
				Logger:      zap.New(core),
			})
			if err != nil {
				t.Fatalf("Load() error = %v, want nil for a bad texture", err)
			}
			if m.TriangleCount() != 2 {
				t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
			}
			for i, tri := range m.Triangles() {
				if tri.Color != red {
					t.Errorf("triangle %d color = %v, want untextured %v", i, tri.Color, red)
				}
			}
			if w := m.Warnings(); len(w) != 1 || !strings.Contains(w[0], "nope.png") {
				t.Errorf("Warnings = %v, want one naming the texture", w)
			}
			if logs.FilterMessage("texture not loaded").Len() != 1 {
				t.Errorf("texture failure was not logged: %v", logs.All())
			}
		})
	}
}

func TestLoadOpensTexturePath(t *testing.T) {
	path := writeModel(t, "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 0.6 0\nvt 0 0.6\nf 1/1 2/2 3/3\n")

	var opened string
	m, err := Load(path, Options{
		TexturePath: "uv.png",
		OpenTexture: func(p string) (Sampler, error) {
			opened = p
			return uvSampler{}, nil
		},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if opened != "uv.png" {
		t.Errorf("opened %q, want uv.png", opened)
	}
	if len(m.Warnings()) != 0 {
		t.Errorf("Warnings = %v, want none", m.Warnings())
	}
	if got := m.Triangles()[0].Color; got.R != 51 || got.G != 51 {
		t.Errorf("color = %v, want sampled at (0.2, 0.2)", got)
	}
}

func TestLoadMalformedIsError(t *testing.T) {
	path := writeModel(t, "bad.obj", "v 0 0 0\nf 1 2 3\n")
	_, err := Load(path, Options{})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Load() error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestLoadEmptyModelSkipsRecenter(t *testing.T) {
	path := writeModel(t, "empty.obj", "# nothing here\n")
	m, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.VertexCount() != 0 {
		t.Errorf("VertexCount = %d, want 0", m.VertexCount())
	}
	if c := m.CenterOfMass(); c != math3d.Zero3() {
		t.Errorf("CenterOfMass = %v, want origin", c)
	}
}

func TestMeshMutationVisibleThroughTriangles(t *testing.T) {
	m := quad(t, false)
	tri := m.Triangles()[0]

	m.Translate(math3d.V3(0, 0, 5))
	a, _, _ := tri.Vertices()
	if a != math3d.V3(0, 0, 5) {
		t.Errorf("after Translate, corner = %v, want (0, 0, 5)", a)
	}
	if m.TotalMovement() != math3d.V3(0, 0, 5) {
		t.Errorf("TotalMovement = %v, want (0, 0, 5)", m.TotalMovement())
	}

	m.Translate(math3d.V3(1, 0, 0))
	if m.TotalMovement() != math3d.V3(1, 0, 5) {
		t.Errorf("TotalMovement = %v, want (1, 0, 5)", m.TotalMovement())
	}

	// Half turn about Y through (1, 0, 5) maps (2, 0, 5) to (0, 0, 5).
	m.Rotate(math3d.QuatFromAxisAngle(math3d.Up(), math.Pi), math3d.V3(1, 0, 5))
	_, b, _ := tri.Vertices()
	if !b.ApproxEqual(math3d.V3(0, 0, 5), 1e-12) {
		t.Errorf("after Rotate, corner = %v, want (0, 0, 5)", b)
	}
}

func TestMeshApplyMatrix(t *testing.T) {
	m := quad(t, false)
	center := math3d.V3(0.5, 0.5, 0)

	m.ApplyMatrix(math3d.NewMat3(2, 0, 0, 0, 2, 0, 0, 0, 2), center)

	if got := m.GetVertex(0); !got.ApproxEqual(math3d.V3(-0.5, -0.5, 0), 1e-12) {
		t.Errorf("vertex 0 = %v, want (-0.5, -0.5, 0)", got)
	}
	if got := m.Size(); !got.ApproxEqual(math3d.V3(2, 2, 0), 1e-12) {
		t.Errorf("Size = %v, want (2, 2, 0)", got)
	}
	if got := m.Center(); !got.ApproxEqual(center, 1e-12) {
		t.Errorf("Center = %v, want %v", got, center)
	}
}

func TestCalculateLighting(t *testing.T) {
	// The quad faces +Z by its winding; light travelling toward -Z hits it
	// head on.
	light := lighting.New(math3d.V3(0, 0, -1), 100, 100)
	base := color.RGBA{R: 100, G: 100, B: 100, A: 255}

	m := NewMesh("lit", base, true)
	for _, v := range []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}} {
		m.AddVertex(v)
	}
	tri, err := m.AddTriangle([3]int{0, 1, 2}, base)
	if err != nil {
		t.Fatalf("AddTriangle() error = %v", err)
	}

	m.CalculateLighting(light)
	want := color.RGBA{R: 227, G: 227, B: 227, A: 255}
	if tri.Shaded != want {
		t.Errorf("facing light: shaded = %v, want %v", tri.Shaded, want)
	}
	if tri.Color != base {
		t.Errorf("base color changed to %v", tri.Color)
	}

	// Turn the triangle around; RefreshLighting reuses the stored light.
	m.Rotate(math3d.QuatFromAxisAngle(math3d.Up(), math.Pi), math3d.Zero3())
	m.RefreshLighting()
	want = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	if tri.Shaded != want {
		t.Errorf("facing away: shaded = %v, want %v", tri.Shaded, want)
	}
}

func TestUnshadedMeshKeepsColors(t *testing.T) {
	m := quad(t, false)
	m.CalculateLighting(lighting.New(math3d.V3(0, 0, -1), 100, 100))

	for i, tri := range m.Triangles() {
		if tri.Shaded != red {
			t.Errorf("triangle %d shaded = %v, want %v", i, tri.Shaded, red)
		}
	}
	if _, ok := m.Light(); !ok {
		t.Error("light should be remembered even when unshaded")
	}
}

func TestRefreshLightingWithoutLight(t *testing.T) {
	m := quad(t, true)
	m.RefreshLighting()
	for i, tri := range m.Triangles() {
		if tri.Shaded != red {
			t.Errorf("triangle %d shaded = %v, want untouched %v", i, tri.Shaded, red)
		}
	}
}

func TestDegenerateTriangleKeepsBaseColor(t *testing.T) {
	m := NewMesh("flat", red, true)
	m.AddVertex(math3d.V3(0, 0, 0))
	m.AddVertex(math3d.V3(1, 1, 1))
	m.AddVertex(math3d.V3(2, 2, 2))
	tri, err := m.AddTriangle([3]int{0, 1, 2}, red)
	if err != nil {
		t.Fatalf("AddTriangle() error = %v", err)
	}

	m.CalculateLighting(lighting.New(math3d.V3(0, 0, 1), 100, 100))
	if tri.Shaded != red {
		t.Errorf("degenerate triangle shaded = %v, want %v", tri.Shaded, red)
	}
}

func TestAddTriangleOutOfRange(t *testing.T) {
	m := NewMesh("bad", red, false)
	m.AddVertex(math3d.Zero3())
	if _, err := m.AddTriangle([3]int{0, 1, 2}, red); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddTriangle() error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestTriangleGeometry(t *testing.T) {
	m := quad(t, false)
	tri := m.Triangles()[0] // (0,0,0) (1,0,0) (1,1,0)

	if n := tri.Normal().Normalize(); !n.ApproxEqual(math3d.Forward(), 1e-12) {
		t.Errorf("Normal = %v, want +Z", n)
	}
	if p := tri.Plane(); !p.Normal.ApproxEqual(math3d.Forward(), 1e-12) || math.Abs(p.D) > 1e-12 {
		t.Errorf("Plane = %+v, want z = 0 facing +Z", p)
	}
	if c := tri.Center(); !c.ApproxEqual(math3d.V3(2.0/3, 1.0/3, 0), 1e-12) {
		t.Errorf("Center = %v, want (2/3, 1/3, 0)", c)
	}
}

func TestMeshCloneIsIndependent(t *testing.T) {
	m := quad(t, true)
	m.CalculateLighting(lighting.Default())

	clone := m.Clone()
	clone.Translate(math3d.V3(10, 0, 0))

	if m.GetVertex(0) != math3d.Zero3() {
		t.Errorf("original vertex moved to %v", m.GetVertex(0))
	}
	a, _, _ := clone.Triangles()[0].Vertices()
	if a != math3d.V3(10, 0, 0) {
		t.Errorf("clone triangle corner = %v, want (10, 0, 0)", a)
	}
	if clone.Triangles()[0].Mesh() != clone {
		t.Error("clone triangles should belong to the clone")
	}
	if _, ok := clone.Light(); !ok {
		t.Error("clone should keep the last light")
	}
}
