package models

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/prism/pkg/math3d"
)

var (
	// ErrMalformed is returned for model text that cannot be parsed.
	ErrMalformed = errors.New("models: malformed model")

	// ErrIndexOutOfRange is returned when a face refers past the vertex or
	// texture coordinate list.
	ErrIndexOutOfRange = errors.New("models: index out of range")
)

// Sampler returns the color of a texture at normalized coordinates
// (u, v) in [0, 1]×[0, 1], with v = 0 at the bottom.
type Sampler interface {
	Sample(u, v float64) color.RGBA
}

// Options control how a model is turned into a mesh.
//
// Every vertex is placed by rotating it by Rotation, scaling it by Scale, then
// translating it by Offset, in that order. A nil Offset recenters the mesh so
// the centroid of its vertices is the origin.
type Options struct {
	// Texture, if set, gives each triangle a flat base color sampled once at
	// the centroid of its texture coordinates.
	Texture Sampler

	// TexturePath is opened with OpenTexture when Texture is nil. A texture
	// that cannot be opened leaves the mesh untextured and adds a warning.
	TexturePath string
	OpenTexture func(path string) (Sampler, error)

	// Color is the base color for untextured triangles. Nil means DefaultColor.
	Color *color.RGBA

	Offset   *math3d.Vec3
	Rotation *math3d.Quat
	Scale    float64 // 0 means 1

	// Shaded enables CalculateLighting on the mesh.
	Shaded bool

	// Logger receives load warnings. Nil discards them.
	Logger *zap.Logger
}

func (o Options) baseColor() color.RGBA {
	if o.Color != nil {
		return *o.Color
	}
	return DefaultColor
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// place applies the load-time rotation, scale and offset to a raw vertex.
func (o Options) place(v math3d.Vec3) math3d.Vec3 {
	if o.Rotation != nil {
		v = o.Rotation.RotateVec(v)
	}
	scale := o.Scale
	if scale == 0 {
		scale = 1
	}
	v = v.Scale(scale)
	if o.Offset != nil {
		v = v.Add(*o.Offset)
	}
	return v
}

// finish recenters the mesh if no offset was given and prepares derived state.
func (o Options) finish(m *Mesh) {
	if o.Offset == nil && len(m.vertices) > 0 {
		c := m.CenterOfMass()
		for i := range m.vertices {
			m.vertices[i] = m.vertices[i].Sub(c)
		}
	}
	m.CalculateBounds()
}

// Load reads the model at path. The format is chosen by extension: .obj for
// Wavefront text and .glb/.gltf for glTF.
//
// A model or texture file that is missing, unreadable or of an unsupported
// type is not an error: Load logs a warning and records it in Mesh.Warnings,
// returning an empty mesh for a bad model and an untextured one for a bad
// texture. Malformed model content is an error wrapping ErrMalformed or
// ErrIndexOutOfRange.
func Load(path string, opts Options) (*Mesh, error) {
	texErr := opts.openTexture()

	m, err := load(path, opts)
	if err != nil {
		return nil, err
	}
	if texErr != nil {
		m.warn("%s: texture not loaded: %v", opts.TexturePath, texErr)
		opts.logger().Warn("texture not loaded",
			zap.String("path", opts.TexturePath), zap.Error(texErr))
	}
	return m, nil
}

// openTexture resolves TexturePath into Texture.
func (o *Options) openTexture() error {
	if o.Texture != nil || o.TexturePath == "" {
		return nil
	}
	if o.OpenTexture == nil {
		return errors.New("no texture decoder configured")
	}
	tex, err := o.OpenTexture(o.TexturePath)
	if err != nil {
		return err
	}
	o.Texture = tex
	return nil
}

func load(path string, opts Options) (*Mesh, error) {
	log := opts.logger()
	name := filepath.Base(path)

	empty := func(reason string, err error) *Mesh {
		m := NewMesh(name, opts.baseColor(), opts.Shaded)
		if err != nil {
			m.warn("%s: %s: %v", path, reason, err)
			log.Warn(reason, zap.String("path", path), zap.Error(err))
		} else {
			m.warn("%s: %s", path, reason)
			log.Warn(reason, zap.String("path", path))
		}
		return m
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return empty("cannot open model", err), nil
		}
		defer f.Close()

		m, err := Parse(f, name, opts)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		log.Debug("loaded model",
			zap.String("path", path),
			zap.Int("vertices", m.VertexCount()),
			zap.Int("triangles", m.TriangleCount()))
		return m, nil

	case ".glb", ".gltf":
		if _, err := os.Stat(path); err != nil {
			return empty("cannot open model", err), nil
		}
		m, err := NewGLTFLoader(opts).Load(path)
		if err != nil {
			return nil, err
		}
		return m, nil

	default:
		return empty(fmt.Sprintf("unsupported model extension %q", ext), nil), nil
	}
}
