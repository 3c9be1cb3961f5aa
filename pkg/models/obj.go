package models

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taigrr/prism/pkg/math3d"
)

// objFace is a face line waiting for index validation. Indices are already
// 0-based; tex is -1 where a corner has no texture index.
type objFace struct {
	line int
	vert []int
	tex  []int
}

// Parse reads Wavefront OBJ text from r.
//
// Recognized records are "v x y z", "vt u v" (only read when opts.Texture is
// set) and "f a b c ...", where each corner is "v", "v/t", "v/t/n" or "v//n".
// Indices are 1-based; negative indices count back from the most recent
// entry. Faces with more than three corners are fan-triangulated around the
// first corner. Everything else is ignored.
func Parse(r io.Reader, name string, opts Options) (*Mesh, error) {
	m := NewMesh(name, opts.baseColor(), opts.Shaded)

	var (
		uvs   []math3d.Vec2
		faces []objFace
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			xyz, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: vertex: %v", ErrMalformed, lineNo, err)
			}
			m.AddVertex(opts.place(math3d.V3(xyz[0], xyz[1], xyz[2])))

		case "vt":
			if opts.Texture == nil {
				continue
			}
			uv, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: texture coordinate: %v", ErrMalformed, lineNo, err)
			}
			uvs = append(uvs, math3d.V2(uv[0], uv[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 corners, got %d",
					ErrMalformed, lineNo, len(fields)-1)
			}
			f := objFace{line: lineNo}
			for _, tok := range fields[1:] {
				vi, ti, err := parseCorner(tok, len(m.vertices), len(uvs), opts.Texture != nil)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				f.vert = append(f.vert, vi)
				f.tex = append(f.tex, ti)
			}
			faces = append(faces, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	for _, f := range faces {
		if err := addFace(m, f, uvs, opts.Texture); err != nil {
			return nil, err
		}
	}

	opts.finish(m)
	return m, nil
}

// addFace fan-triangulates f into m: (0,1,2), (0,2,3), ...
func addFace(m *Mesh, f objFace, uvs []math3d.Vec2, tex Sampler) error {
	for i, vi := range f.vert {
		if vi < 0 || vi >= len(m.vertices) {
			return fmt.Errorf("%w: line %d: vertex %d of %d",
				ErrIndexOutOfRange, f.line, vi+1, len(m.vertices))
		}
		if tex != nil && f.tex[i] >= len(uvs) {
			return fmt.Errorf("%w: line %d: texture coordinate %d of %d",
				ErrIndexOutOfRange, f.line, f.tex[i]+1, len(uvs))
		}
	}

	textured := tex != nil
	for _, ti := range f.tex {
		if ti < 0 {
			textured = false
		}
	}

	for i := 1; i+1 < len(f.vert); i++ {
		corners := [3]int{0, i, i + 1}

		var v [3]int
		for k, c := range corners {
			v[k] = f.vert[c]
		}
		t, err := m.AddTriangle(v, m.color)
		if err != nil {
			return err
		}

		if textured {
			for k, c := range corners {
				t.UV[k] = uvs[f.tex[c]]
			}
			uv := t.UVCenter()
			t.Color = tex.Sample(uv.X, uv.Y)
			t.Shaded = t.Color
		}
	}
	return nil
}

// parseCorner resolves one face token to 0-based vertex and texture indices.
// A missing or unwanted texture index is returned as -1.
func parseCorner(tok string, nVerts, nUVs int, wantTex bool) (vi, ti int, err error) {
	parts := strings.Split(tok, "/")

	vi, err = resolveIndex(parts[0], nVerts)
	if err != nil {
		return 0, 0, fmt.Errorf("corner %q: %w", tok, err)
	}

	ti = -1
	if wantTex && len(parts) > 1 && parts[1] != "" {
		ti, err = resolveIndex(parts[1], nUVs)
		if err != nil {
			return 0, 0, fmt.Errorf("corner %q: %w", tok, err)
		}
	}
	return vi, ti, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index to 0-based.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0 && n+i >= 0:
		return n + i, nil
	default:
		return 0, fmt.Errorf("%w: index %d with %d entries", ErrIndexOutOfRange, i, n)
	}
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
