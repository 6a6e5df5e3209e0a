package obj

import (
	"strconv"

	"github.com/krachzack/aitios-asset/pkg/scene"
)

// ParseMaterials parses MTL material library text into a mapping from
// material name to material. path is only used in error messages.
//
// A newmtl directive registers an all-defaults entry under its name
// immediately, so property directives always have a block to apply to and
// downstream lookups never see "declared but incomplete". A duplicate
// name overwrites the earlier definition entirely.
func ParseMaterials(data []byte, path string) (map[string]scene.Material, error) {
	materials := make(map[string]scene.Material)

	cur := ""
	haveBlock := false

	rs := newRecordScanner(data)
	for rs.Scan() {
		rec := rs.Record()

		if rec.keyword == "newmtl" {
			if len(rec.args) != 1 {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "'newmtl' expects 1 argument, got %d", len(rec.args))
			}
			cur = rec.args[0]
			haveBlock = true
			materials[cur] = scene.NewMaterial(cur)
			continue
		}

		switch rec.keyword {
		case "Ka", "Kd", "Ks":
			if !haveBlock {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "got '%s' before any 'newmtl'", rec.keyword)
			}
			rgb, err := parseColor(path, rec)
			if err != nil {
				return nil, err
			}
			m := materials[cur]
			switch rec.keyword {
			case "Ka":
				m.Ambient = rgb
			case "Kd":
				m.Diffuse = rgb
			case "Ks":
				m.Specular = rgb
			}
			materials[cur] = m

		case "Ns":
			if !haveBlock {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "got 'Ns' before any 'newmtl'")
			}
			if len(rec.args) != 1 {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "'Ns' expects 1 argument, got %d", len(rec.args))
			}
			f, err := strconv.ParseFloat(rec.args[0], 32)
			if err != nil {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "'Ns' argument %q is not a number", rec.args[0])
			}
			m := materials[cur]
			m.Shininess = float32(f)
			materials[cur] = m

		case "map_Kd":
			if !haveBlock {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "got 'map_Kd' before any 'newmtl'")
			}
			if len(rec.args) != 1 {
				return nil, lineError(path, rec.line, ErrMalformedMaterial, "'map_Kd' expects 1 argument, got %d", len(rec.args))
			}
			m := materials[cur]
			m.DiffuseMap = rec.args[0]
			materials[cur] = m

		default:
			// Properties outside the supported subset (Ke, Ni, d, illum,
			// other maps) are skipped.
		}
	}
	if err := rs.Err(); err != nil {
		return nil, lineError(path, rs.line+1, ErrMalformedMaterial, "%v", err)
	}

	return materials, nil
}

// parseColor parses a 3-component color directive.
func parseColor(path string, rec record) ([3]float32, error) {
	var rgb [3]float32
	if len(rec.args) != 3 {
		return rgb, lineError(path, rec.line, ErrMalformedMaterial, "'%s' expects 3 arguments, got %d", rec.keyword, len(rec.args))
	}
	for i, arg := range rec.args {
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return rgb, lineError(path, rec.line, ErrMalformedMaterial, "'%s' argument %q is not a number", rec.keyword, arg)
		}
		rgb[i] = float32(f)
	}
	return rgb, nil
}
