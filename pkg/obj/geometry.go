package obj

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

// Geometry is the raw outcome of parsing a geometry file: the global
// append-only pools plus the ordered groups referencing them. Face
// indices are 0-based absolute pool positions; no 1-based or negative
// index survives parsing.
type Geometry struct {
	Vertices  []scene.Vertex
	TexCoords []scene.TexCoord
	Normals   []scene.Normal
	Groups    []Group

	// MtlLibs lists the material library names referenced via mtllib
	// directives, in encounter order.
	MtlLibs []string
}

// Group is a named contiguous run of faces sharing one material.
// Material is empty when the group has none.
type Group struct {
	Name     string
	Material string
	Faces    []scene.Face
}

// geometryParser holds the request-scoped pools and current-group state
// of a single ParseGeometry call.
type geometryParser struct {
	path      string
	materials map[string]scene.Material

	out *Geometry

	cur    Group
	opened bool
}

// ParseGeometry parses OBJ geometry text. The materials mapping (may be
// empty) is used to validate usemtl references; a usemtl naming an absent
// material fails with ErrUnknownMaterial rather than being treated as "no
// material". path is only used in error messages.
//
// The parse is a single forward pass. The first error aborts it with no
// partial result.
func ParseGeometry(data []byte, path string, materials map[string]scene.Material) (*Geometry, error) {
	p := &geometryParser{
		path:      path,
		materials: materials,
		out:       &Geometry{},
		cur:       Group{Name: "default"},
	}

	rs := newRecordScanner(data)
	for rs.Scan() {
		if err := p.directive(rs.Record()); err != nil {
			return nil, err
		}
	}
	if err := rs.Err(); err != nil {
		return nil, lineError(p.path, rs.line+1, ErrMalformedGeometry, "%v", err)
	}
	p.closeGroup()

	return p.out, nil
}

// closeGroup appends the current group to the output. A group that never
// produced a face and was never explicitly opened by a directive is
// dropped; an explicitly opened group is kept even when empty.
func (p *geometryParser) closeGroup() {
	if len(p.cur.Faces) > 0 || p.opened {
		p.out.Groups = append(p.out.Groups, p.cur)
	}
}

func (p *geometryParser) directive(rec record) error {
	switch rec.keyword {
	case "v":
		vals, err := p.floats(rec, 3, 4)
		if err != nil {
			return err
		}
		v := scene.Vertex{X: vals[0], Y: vals[1], Z: vals[2], W: 1}
		if len(vals) == 4 {
			v.W = vals[3]
		}
		p.out.Vertices = append(p.out.Vertices, v)

	case "vt":
		vals, err := p.floats(rec, 2, 3)
		if err != nil {
			return err
		}
		t := scene.TexCoord{U: vals[0], V: vals[1]}
		if len(vals) == 3 {
			t.W = vals[2]
		}
		p.out.TexCoords = append(p.out.TexCoords, t)

	case "vn":
		vals, err := p.floats(rec, 3, 3)
		if err != nil {
			return err
		}
		p.out.Normals = append(p.out.Normals, scene.Normal{X: vals[0], Y: vals[1], Z: vals[2]})

	case "f":
		face, err := p.face(rec)
		if err != nil {
			return err
		}
		p.cur.Faces = append(p.cur.Faces, face)

	case "g":
		if len(rec.args) < 1 {
			return lineError(p.path, rec.line, ErrMalformedGeometry, "'g' expects a group name")
		}
		p.closeGroup()
		// Groups subdivide within an object, so the active material
		// carries over.
		p.cur = Group{Name: rec.args[0], Material: p.cur.Material}
		p.opened = true

	case "o":
		if len(rec.args) < 1 {
			return lineError(p.path, rec.line, ErrMalformedGeometry, "'o' expects an object name")
		}
		p.closeGroup()
		// Objects stand alone: the active material resets, so a written
		// entity without a material reparses without one.
		p.cur = Group{Name: rec.args[0]}
		p.opened = true

	case "usemtl":
		if len(rec.args) != 1 {
			return lineError(p.path, rec.line, ErrMalformedGeometry, "'usemtl' expects 1 argument, got %d", len(rec.args))
		}
		name := rec.args[0]
		if _, ok := p.materials[name]; !ok {
			return lineError(p.path, rec.line, ErrUnknownMaterial, "material %q is not defined by any referenced library", name)
		}
		if len(p.cur.Faces) == 0 {
			// No faces yet: bind the material to the current group
			// instead of splitting off an empty one, so written files
			// reparse to the same group sequence.
			p.cur.Material = name
		} else {
			p.closeGroup()
			p.cur = Group{Name: p.cur.Name, Material: name}
		}
		p.opened = true

	case "mtllib":
		if len(rec.args) < 1 {
			return lineError(p.path, rec.line, ErrMalformedGeometry, "'mtllib' expects at least one library name")
		}
		p.out.MtlLibs = append(p.out.MtlLibs, rec.args...)

	default:
		// Directives outside the supported subset (s, l, p, ...) are
		// skipped.
	}

	return nil
}

// face parses one f directive. Each argument is vertex[/texcoord][/normal]
// with empty sub-fields permitted (v//n). Indices resolve against the
// pools as they stand at this directive.
func (p *geometryParser) face(rec record) (scene.Face, error) {
	if len(rec.args) < 3 {
		return nil, lineError(p.path, rec.line, ErrDegenerateFace, "face has %d vertices, need at least 3", len(rec.args))
	}

	face := make(scene.Face, 0, len(rec.args))
	for i, arg := range rec.args {
		parts := strings.Split(arg, "/")
		if len(parts) > 3 {
			return nil, lineError(p.path, rec.line, ErrMalformedGeometry, "face vertex %q has more than 3 index fields", arg)
		}
		if parts[0] == "" {
			return nil, lineError(p.path, rec.line, ErrMalformedGeometry, "face vertex %d is missing its vertex index", i+1)
		}

		fv := scene.FaceVertex{TexCoord: scene.NoIndex, Normal: scene.NoIndex}

		idx, err := resolveIndex(parts[0], len(p.out.Vertices))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: face vertex %d: %w", p.path, rec.line, i+1, err)
		}
		fv.Vertex = idx

		if len(parts) > 1 && parts[1] != "" {
			idx, err := resolveIndex(parts[1], len(p.out.TexCoords))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: face texcoord %d: %w", p.path, rec.line, i+1, err)
			}
			fv.TexCoord = idx
		}

		if len(parts) > 2 && parts[2] != "" {
			idx, err := resolveIndex(parts[2], len(p.out.Normals))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: face normal %d: %w", p.path, rec.line, i+1, err)
			}
			fv.Normal = idx
		}

		face = append(face, fv)
	}

	return face, nil
}

// resolveIndex converts a raw face index token into a 0-based absolute
// pool position. Positive tokens are 1-based absolute, negative tokens
// count back from the end of the pool as it stands right now, and zero is
// never valid. All boundary logic lives here.
func resolveIndex(tok string, poolLen int) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not an integer", ErrMalformedGeometry, tok)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: index 0 is not valid, indices start at 1", ErrIndexOutOfRange)
	}

	idx := n - 1
	if n < 0 {
		idx = poolLen + n
	}
	if idx < 0 || idx >= poolLen {
		return 0, fmt.Errorf("%w: index %d references a pool of %d entries", ErrIndexOutOfRange, n, poolLen)
	}
	return idx, nil
}

// floats parses between min and max float arguments from a directive.
func (p *geometryParser) floats(rec record, min, max int) ([]float32, error) {
	if len(rec.args) < min || len(rec.args) > max {
		return nil, lineError(p.path, rec.line, ErrMalformedGeometry, "'%s' expects %d to %d arguments, got %d", rec.keyword, min, max, len(rec.args))
	}

	vals := make([]float32, len(rec.args))
	for i, arg := range rec.args {
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return nil, lineError(p.path, rec.line, ErrMalformedGeometry, "'%s' argument %q is not a number", rec.keyword, arg)
		}
		vals[i] = float32(f)
	}
	return vals, nil
}
