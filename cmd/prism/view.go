package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/prism/internal/config"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// loadModel loads path with the configured model options.
func (a *app) loadModel(path string) (*models.Mesh, error) {
	m := a.cfg.Model
	base, err := m.RGBA()
	if err != nil {
		return nil, err
	}

	opts := models.Options{
		Texture:     a.embeddedTexture(path),
		TexturePath: m.Texture,
		OpenTexture: openTexture,
		Color:       base,
		Scale:       m.Scale,
		Shaded:      m.Shaded,
		Logger:      a.log,
	}
	if !m.Center {
		opts.Offset = &math3d.Vec3{}
	}
	return models.Load(path, opts)
}

// openTexture decodes an image file into a sampler for models.Load.
func openTexture(path string) (models.Sampler, error) {
	tex, err := render.LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// embeddedTexture returns the first image embedded in a glTF model unless a
// texture file is configured.
func (a *app) embeddedTexture(modelPath string) models.Sampler {
	if a.cfg.Model.Texture != "" {
		return nil
	}

	switch strings.ToLower(filepath.Ext(modelPath)) {
	case ".glb", ".gltf":
		img, err := models.EmbeddedImage(modelPath)
		if err != nil || img == nil {
			return nil
		}
		a.log.Debug("using embedded texture",
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
		return render.TextureFromImage(img)
	}
	return nil
}

// viewer is a single-model scene with a camera framed on it.
type viewer struct {
	app  *app
	path string

	scene   *scene.Scene
	object  *scene.Object
	camera  *render.Camera
	painter *render.Painter
	spinner *scene.Spinner
}

func (a *app) newViewer(path string) (*viewer, error) {
	mesh, err := a.loadModel(path)
	if err != nil {
		return nil, err
	}
	cc := a.cfg.Camera

	v := &viewer{app: a, path: path}
	v.object = scene.NewObject(filepath.Base(path), mesh, mesh.Center())
	v.scene = scene.New(a.cfg.Light.Light())
	v.scene.Add(v.object)
	v.camera = render.NewCamera(math3d.Zero3(), cc.FOV, cc.Near, cc.Far)
	v.painter = render.NewPainter(v.camera)
	v.spinner = scene.NewSpinner(cc.FPS)
	v.resetView()

	a.log.Info("loaded model",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
	return v, nil
}

// fitDistance returns a camera distance from which the whole mesh is in
// view, kept inside the camera's clip range.
func fitDistance(mesh *models.Mesh, cam *render.Camera) float64 {
	radius := mesh.Size().Len() / 2
	d := radius/math.Tan(cam.FOV()/2) + radius
	return math3d.Clamp(d, cam.Near(), cam.Far())
}

// resetView puts the camera in front of the model, looking along +Z, with
// the configured controller.
func (v *viewer) resetView() {
	cc := v.app.cfg.Camera
	dist := fitDistance(v.object.Mesh(), v.camera)

	if cc.Mode == config.ModeFree {
		focus := v.object.Position()
		v.camera.SetPosition(focus.Sub(math3d.V3(0, 0, dist)))
		v.camera.LookAt(focus)
		v.camera.SetFreeControls(cc.MovementSpeed, cc.Sensitivity)
		return
	}
	v.camera.SetOrbitControls(v.object, cc.Sensitivity, cc.ScrollSensitivity).SetDistance(dist)
}

// toggleMode switches between the orbit and free-fly controllers without
// moving the camera.
func (v *viewer) toggleMode() {
	cc := v.app.cfg.Camera
	if v.camera.OrbitControls() != nil {
		v.camera.SetFreeControls(cc.MovementSpeed, cc.Sensitivity)
		return
	}
	offset := v.camera.Position().Sub(v.object.Position())
	orbit := v.camera.SetOrbitControls(v.object, cc.Sensitivity, cc.ScrollSensitivity)
	// Stay on the current side of the model rather than jumping to -Z.
	orbit.SetDirection(offset)
	orbit.SetDistance(offset.Len())
}

// step advances the spin by one frame.
func (v *viewer) step() error {
	if err := v.spinner.Step(v.object.Transform()); err != nil {
		return err
	}
	if orbit := v.camera.OrbitControls(); orbit != nil {
		orbit.Refresh()
	}
	return nil
}

// paint draws the scene into fb and returns the triangles drawn.
func (v *viewer) paint(fb *render.Framebuffer) int {
	return v.painter.Paint(fb, v.scene.Meshes()...)
}

// reload reads the model file again and swaps the new mesh in, keeping the
// object's position and orientation.
func (v *viewer) reload() error {
	mesh, err := v.app.loadModel(v.path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", v.path, err)
	}
	mesh.Translate(v.object.Position().Sub(mesh.Center()))
	v.object.ReplaceMesh(mesh)

	v.app.log.Info("reloaded model",
		zap.String("path", v.path),
		zap.Int("triangles", mesh.TriangleCount()))
	return nil
}
