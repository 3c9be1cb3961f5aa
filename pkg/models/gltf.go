package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/taigrr/prism/pkg/math3d"
)

// GLTFLoader loads glTF/GLB files into a Mesh using the same placement,
// recentering and coloring rules as the OBJ parser.
type GLTFLoader struct {
	opts Options
	log  *zap.Logger
}

// NewGLTFLoader creates a loader with the given options.
func NewGLTFLoader(opts Options) *GLTFLoader {
	return &GLTFLoader{opts: opts, log: opts.logger()}
}

// LoadGLB loads a binary glTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader(Options{}).Load(path)
}

// Load reads every triangle primitive of every mesh in the document into a
// single Mesh.
//
// glTF is right-handed, so Z is mirrored into the left-handed world and each
// triangle's winding is reversed to keep its normal pointing outward.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open gltf: %v", ErrMalformed, err)
	}

	mesh := NewMesh(filepath.Base(path), l.opts.baseColor(), l.opts.Shaded)
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if err := l.addPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
		}
	}

	l.opts.finish(mesh)
	l.log.Debug("loaded gltf",
		zap.String("path", path),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("triangles", mesh.TriangleCount()))

	return mesh, nil
}

func (l *GLTFLoader) addPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	// Lines and points have no faces to shade.
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	acr, err := accessor(doc, posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return fmt.Errorf("%w: positions: %v", ErrMalformed, err)
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok && l.opts.Texture != nil {
		acr, err := accessor(doc, uvIdx)
		if err != nil {
			return err
		}
		if uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return fmt.Errorf("%w: texture coordinates: %v", ErrMalformed, err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := accessor(doc, *prim.Indices)
		if err != nil {
			return err
		}
		if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return fmt.Errorf("%w: indices: %v", ErrMalformed, err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	base := mesh.VertexCount()
	for _, p := range positions {
		mesh.AddVertex(l.opts.place(math3d.V3(float64(p[0]), float64(p[1]), -float64(p[2]))))
	}

	textured := len(uvs) == len(positions)
	for i := 0; i+2 < len(indices); i += 3 {
		corners := [3]int{int(indices[i]), int(indices[i+2]), int(indices[i+1])}
		var v [3]int
		for k, c := range corners {
			if c >= len(positions) {
				return fmt.Errorf("%w: index %d of %d", ErrIndexOutOfRange, c, len(positions))
			}
			v[k] = base + c
		}

		t, err := mesh.AddTriangle(v, mesh.color)
		if err != nil {
			return err
		}
		if !textured {
			continue
		}
		for k, c := range corners {
			// glTF puts v = 0 at the top of the image.
			t.UV[k] = math3d.V2(float64(uvs[c][0]), 1-float64(uvs[c][1]))
		}
		uv := t.UVCenter()
		t.Color = l.opts.Texture.Sample(uv.X, uv.Y)
		t.Shaded = t.Color
	}
	return nil
}

func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrIndexOutOfRange, i, len(doc.Accessors))
	}
	return doc.Accessors[i], nil
}

// EmbeddedImage returns the first decodable image in a glTF/GLB file, or nil
// if there is none. It is meant to be wrapped as a Sampler and passed back to
// Load as Options.Texture.
func EmbeddedImage(path string) (image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil && *img.BufferView < len(doc.BufferViews):
			data, err = modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		case img.URI != "" && !img.IsEmbeddedResource():
			data, err = os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
		case img.URI != "":
			data, err = img.MarshalData()
		}
		if err != nil || len(data) == 0 {
			continue
		}
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return decoded, nil
		}
	}
	return nil, nil
}
